package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"testhub/internal/api/middleware"
	"testhub/pkg/errors"
	"testhub/pkg/utils"
)

// pathID 解析路径中的ID参数, 失败时直接写入 400 响应
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		utils.ErrorWithDetail(c, http.StatusBadRequest, "无效的ID", "invalid "+name)
		return 0, false
	}
	return id, true
}

// bindJSON 绑定请求体, 失败时直接写入 400 响应
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return false
	}
	return true
}

// currentUserID 当前登录用户ID, 未登录时写入 401
func currentUserID(c *gin.Context) (int64, bool) {
	user := middleware.CurrentUser(c)
	if user == nil {
		utils.Error(c, errors.ErrUnauthorized)
		return 0, false
	}
	return user.ID, true
}
