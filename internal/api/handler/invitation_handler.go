package handler

import (
	"github.com/gin-gonic/gin"

	"testhub/internal/service"
	"testhub/pkg/utils"
)

type InvitationHandler struct {
	invitationService service.InvitationService
}

func NewInvitationHandler(invitationService service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

// Generate 生成邀请码
// @Summary 生成邀请码(管理员)
// @Tags 邀请码
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=dto.InvitationResponse}
// @Router /api/v1/admin/invitations [post]
func (h *InvitationHandler) Generate(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	invitation, err := h.invitationService.Generate(adminID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, invitation)
}

// List 邀请码列表
// @Summary 邀请码列表(管理员)
// @Tags 邀请码
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]dto.InvitationResponse}
// @Router /api/v1/admin/invitations [get]
func (h *InvitationHandler) List(c *gin.Context) {
	invitations, err := h.invitationService.List()
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, invitations)
}
