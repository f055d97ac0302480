package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"testhub/internal/model"
	"testhub/internal/pkg/auth"
	"testhub/internal/pkg/logger"
	"testhub/pkg/constants"
	pkgErrors "testhub/pkg/errors"
	"testhub/pkg/utils"
)

// Authenticator 校验Token并返回会话所属用户
type Authenticator interface {
	Authenticate(token string) (*model.User, *model.Session, error)
}

// AuthMiddleware 会话认证中间件; Token 取自 Cookie 或 Bearer Header
func AuthMiddleware(authenticator Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, cookieName)
		if token == "" {
			utils.ErrorWithCode(c, pkgErrors.CodeUnauthorized, "缺少认证信息")
			c.Abort()
			return
		}

		user, session, err := authenticator.Authenticate(token)
		if err != nil {
			utils.Error(c, err)
			c.Abort()
			return
		}

		c.Set(constants.ContextUserKey, user)
		c.Set(constants.ContextSessionKey, session.ID)
		c.Next()
	}
}

// RequirePermission 当前用户角色不具备权限时返回 403
func RequirePermission(need auth.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			utils.ErrorWithCode(c, pkgErrors.CodeUnauthorized, "未授权")
			c.Abort()
			return
		}
		if !auth.Allow(user.Role, need) {
			logger.Warn("权限不足",
				zap.String("username", user.Username),
				zap.String("role", user.Role),
				zap.String("permission", string(need)))
			utils.Error(c, pkgErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context, cookieName string) string {
	if cookieName == "" {
		cookieName = constants.DefaultCookieName
	}
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader(constants.HeaderAuthorization)
	if strings.HasPrefix(header, constants.HeaderBearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, constants.HeaderBearerPrefix))
	}
	return ""
}

// CurrentUser 由 AuthMiddleware 写入的当前用户
func CurrentUser(c *gin.Context) *model.User {
	value, ok := c.Get(constants.ContextUserKey)
	if !ok {
		return nil
	}
	user, _ := value.(*model.User)
	return user
}

// CurrentSessionID 当前会话ID
func CurrentSessionID(c *gin.Context) string {
	return c.GetString(constants.ContextSessionKey)
}
