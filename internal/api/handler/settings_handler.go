package handler

import (
	"github.com/gin-gonic/gin"

	"testhub/internal/dto"
	"testhub/internal/service"
	"testhub/pkg/utils"
)

type SettingsHandler struct {
	preferenceService service.PreferenceService
}

func NewSettingsHandler(preferenceService service.PreferenceService) *SettingsHandler {
	return &SettingsHandler{preferenceService: preferenceService}
}

// GetTheme 当前用户主题
// @Summary 当前用户主题
// @Tags 设置
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=dto.ThemeResponse}
// @Router /api/v1/settings/theme [get]
func (h *SettingsHandler) GetTheme(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	theme, err := h.preferenceService.GetTheme(userID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, &dto.ThemeResponse{Theme: theme})
}

// SetTheme 设置当前用户主题
// @Summary 设置当前用户主题
// @Tags 设置
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.ThemeRequest true "主题"
// @Success 200 {object} utils.Response{data=dto.ThemeResponse}
// @Router /api/v1/settings/theme [put]
func (h *SettingsHandler) SetTheme(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.ThemeRequest
	if !bindJSON(c, &req) {
		return
	}

	theme, err := h.preferenceService.SetTheme(userID, req.Theme)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, &dto.ThemeResponse{Theme: theme})
}
