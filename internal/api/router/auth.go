package router

import (
	"github.com/gin-gonic/gin"

	"testhub/internal/api/middleware"
	"testhub/internal/pkg/auth"
)

// guarded 在处理函数前追加权限校验
func guarded(perm auth.Permission, handler gin.HandlerFunc) []gin.HandlerFunc {
	return []gin.HandlerFunc{middleware.RequirePermission(perm), handler}
}
