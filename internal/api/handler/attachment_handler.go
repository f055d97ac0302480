package handler

import (
	"github.com/gin-gonic/gin"

	"testhub/internal/dto"
	"testhub/internal/service"
	"testhub/pkg/utils"
)

type AttachmentHandler struct {
	attachmentService service.AttachmentService
}

func NewAttachmentHandler(attachmentService service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// Create 登记附件
// @Summary 登记附件元数据
// @Description 大小不超过5MB且类型在白名单内; 必须且只能归属需求或测试结果之一
// @Tags 附件
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateAttachmentRequest true "附件元数据"
// @Success 200 {object} utils.Response{data=model.Attachment}
// @Router /api/v1/attachments [post]
func (h *AttachmentHandler) Create(c *gin.Context) {
	var req dto.CreateAttachmentRequest
	if !bindJSON(c, &req) {
		return
	}

	attachment, err := h.attachmentService.Create(&req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, attachment)
}

// GetByID 附件详情
// @Summary 附件详情
// @Tags 附件
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "附件ID"
// @Success 200 {object} utils.Response{data=model.Attachment}
// @Router /api/v1/attachments/{id} [get]
func (h *AttachmentHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	attachment, err := h.attachmentService.GetByID(id)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, attachment)
}

// Delete 删除附件
// @Summary 删除附件
// @Tags 附件
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "附件ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/attachments/{id} [delete]
func (h *AttachmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.attachmentService.Delete(id); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, nil)
}

// BulkDelete 批量删除附件
// @Summary 批量删除附件
// @Tags 附件
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.IDsRequest true "附件ID列表"
// @Success 200 {object} utils.Response{data=dto.BulkResult}
// @Router /api/v1/attachments/bulk-delete [post]
func (h *AttachmentHandler) BulkDelete(c *gin.Context) {
	var req dto.IDsRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.attachmentService.BulkDelete(req.IDs)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, result)
}
