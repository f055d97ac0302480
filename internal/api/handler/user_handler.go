package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"testhub/internal/dto"
	"testhub/internal/service"
	"testhub/pkg/utils"
)

type UserHandler struct {
	userService        service.UserService
	requirementService service.RequirementService
	testCaseService    service.TestCaseService
	testRunService     service.TestRunService
}

func NewUserHandler(
	userService service.UserService,
	requirementService service.RequirementService,
	testCaseService service.TestCaseService,
	testRunService service.TestRunService,
) *UserHandler {
	return &UserHandler{
		userService:        userService,
		requirementService: requirementService,
		testCaseService:    testCaseService,
		testRunService:     testRunService,
	}
}

// Create 创建用户
// @Summary 创建用户(管理员)
// @Tags 用户
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateUserRequest true "创建用户请求"
// @Success 200 {object} utils.Response{data=dto.UserResponse}
// @Router /api/v1/admin/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Create(&req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, user)
}

// List 用户列表
// @Summary 用户列表(管理员)
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]dto.UserResponse}
// @Router /api/v1/admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, users)
}

// Lookup 按用户名或邮箱查询用户
// @Summary 按用户名或邮箱查询用户(管理员)
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Param username query string false "用户名"
// @Param email query string false "邮箱"
// @Success 200 {object} utils.Response{data=dto.UserResponse}
// @Router /api/v1/admin/users/lookup [get]
func (h *UserHandler) Lookup(c *gin.Context) {
	var (
		user *dto.UserResponse
		err  error
	)
	switch {
	case c.Query("username") != "":
		user, err = h.userService.GetByUsername(c.Query("username"))
	case c.Query("email") != "":
		user, err = h.userService.GetByEmail(c.Query("email"))
	default:
		utils.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", "username or email is required")
		return
	}
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, user)
}

// GetByID 用户详情
// @Summary 用户详情(管理员)
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "用户ID"
// @Success 200 {object} utils.Response{data=dto.UserResponse}
// @Router /api/v1/admin/users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(id)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, user)
}

// Update 更新用户
// @Summary 更新用户(管理员)
// @Tags 用户
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "用户ID"
// @Param request body dto.UpdateUserRequest true "更新用户请求"
// @Success 200 {object} utils.Response{data=dto.UserResponse}
// @Router /api/v1/admin/users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Update(id, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, user)
}

// Delete 删除用户
// @Summary 删除用户(管理员)
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "用户ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/admin/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	operatorID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(id, operatorID); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, nil)
}

// ListRequirements 用户创建的需求
// @Summary 用户创建的需求
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "用户ID"
// @Success 200 {object} utils.Response{data=[]dto.RequirementListItem}
// @Router /api/v1/users/{id}/requirements [get]
func (h *UserHandler) ListRequirements(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	items, err := h.requirementService.ListByUser(id)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, items)
}

// ListTestCases 用户创建的用例
// @Summary 用户创建的用例
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "用户ID"
// @Success 200 {object} utils.Response{data=[]dto.TestCaseListItem}
// @Router /api/v1/users/{id}/test-cases [get]
func (h *UserHandler) ListTestCases(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	items, err := h.testCaseService.ListByUser(id)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, items)
}

// ListTestRuns 用户参与执行的测试
// @Summary 用户参与执行的测试
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "用户ID"
// @Success 200 {object} utils.Response{data=[]dto.TestRunListItem}
// @Router /api/v1/users/{id}/test-runs [get]
func (h *UserHandler) ListTestRuns(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	items, err := h.testRunService.ListByUser(id)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, items)
}
