package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"testhub/internal/api/middleware"
	"testhub/internal/dto"
	"testhub/internal/pkg/config"
	"testhub/internal/service"
	"testhub/pkg/constants"
	"testhub/pkg/utils"
)

type AuthHandler struct {
	cfg               *config.AuthConfig
	authService       service.AuthService
	invitationService service.InvitationService
}

func NewAuthHandler(cfg *config.AuthConfig, authService service.AuthService, invitationService service.InvitationService) *AuthHandler {
	return &AuthHandler{
		cfg:               cfg,
		authService:       authService,
		invitationService: invitationService,
	}
}

// Login 登录
// @Summary 用户登录
// @Description 用户名或邮箱登录, Token 同时写入 HttpOnly Cookie
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录请求"
// @Success 200 {object} utils.Response{data=dto.LoginResponse}
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token)
	utils.Success(c, resp)
}

// Register 凭邀请码注册
// @Summary 凭邀请码注册
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "注册请求"
// @Success 200 {object} utils.Response{data=dto.LoginResponse}
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token)
	utils.Success(c, resp)
}

// Logout 注销当前会话
// @Summary 注销
// @Tags 认证
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(middleware.CurrentSessionID(c)); err != nil {
		utils.Error(c, err)
		return
	}

	h.setSessionCookie(c, "")
	utils.Success(c, nil)
}

// GetMe 获取当前用户信息
// @Summary 获取当前用户信息
// @Tags 认证
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=dto.UserInfo}
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		utils.ErrorWithCode(c, http.StatusUnauthorized, "未登录")
		return
	}

	utils.Success(c, &dto.UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		Status:    user.Status,
	})
}

// ValidateInvitation 校验邀请码是否可用, 不消费
// @Summary 校验邀请码
// @Tags 认证
// @Produce json
// @Param code path string true "邀请码"
// @Success 200 {object} utils.Response{data=dto.InvitationValidateResponse}
// @Router /api/v1/invitations/{code}/validate [get]
func (h *AuthHandler) ValidateInvitation(c *gin.Context) {
	valid, err := h.invitationService.Validate(c.Param("code"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, &dto.InvitationValidateResponse{Valid: valid})
}

// setSessionCookie token 为空时清除 Cookie
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	name := h.cfg.Session.CookieName
	if name == "" {
		name = constants.DefaultCookieName
	}
	maxAge := int(h.cfg.SessionTTL().Seconds())
	if token == "" {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, token, maxAge, "/", "", h.cfg.Session.Secure, true)
}
