package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"testhub/internal/dto"
	"testhub/internal/service"
	"testhub/pkg/utils"
)

type RequirementHandler struct {
	requirementService service.RequirementService
	tagService         service.TagService
	testCaseService    service.TestCaseService
	commentService     service.CommentService
	attachmentService  service.AttachmentService
}

func NewRequirementHandler(
	requirementService service.RequirementService,
	tagService service.TagService,
	testCaseService service.TestCaseService,
	commentService service.CommentService,
	attachmentService service.AttachmentService,
) *RequirementHandler {
	return &RequirementHandler{
		requirementService: requirementService,
		tagService:         tagService,
		testCaseService:    testCaseService,
		commentService:     commentService,
		attachmentService:  attachmentService,
	}
}

// Create 创建需求
// @Summary 创建需求
// @Description tags 按名称 upsert, tag_ids 关联已有标签
// @Tags 需求
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateRequirementRequest true "创建需求请求"
// @Success 200 {object} utils.Response{data=model.Requirement}
// @Router /api/v1/requirements [post]
func (h *RequirementHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateRequirementRequest
	if !bindJSON(c, &req) {
		return
	}

	requirement, err := h.requirementService.Create(userID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, requirement)
}

// List 需求列表
// @Summary 需求列表
// @Tags 需求
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param keyword query string false "标题或描述关键字"
// @Param priority query string false "优先级"
// @Param status query string false "状态"
// @Param category query string false "分类"
// @Param tag_id query int false "标签ID"
// @Success 200 {object} utils.Response{data=dto.PageResponse}
// @Router /api/v1/requirements [get]
func (h *RequirementHandler) List(c *gin.Context) {
	var query dto.RequirementQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	page, err := h.requirementService.List(&query)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, page)
}

// GetByID 需求详情
// @Summary 需求详情
// @Description 包含标签、关联需求、用例、评论与附件
// @Tags 需求
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "需求ID"
// @Success 200 {object} utils.Response{data=model.Requirement}
// @Router /api/v1/requirements/{id} [get]
func (h *RequirementHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	requirement, err := h.requirementService.GetByID(id)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, requirement)
}

// Update 更新需求
// @Summary 更新需求
// @Tags 需求
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "需求ID"
// @Param request body dto.UpdateRequirementRequest true "更新需求请求"
// @Success 200 {object} utils.Response{data=model.Requirement}
// @Router /api/v1/requirements/{id} [put]
func (h *RequirementHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateRequirementRequest
	if !bindJSON(c, &req) {
		return
	}

	requirement, err := h.requirementService.Update(id, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, requirement)
}

// Delete 删除需求
// @Summary 删除需求
// @Tags 需求
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "需求ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/requirements/{id} [delete]
func (h *RequirementHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.requirementService.Delete(id); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, nil)
}

// AddTag 关联标签
// @Summary 关联标签
// @Tags 需求
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "需求ID"
// @Param tagId path int64 true "标签ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/requirements/{id}/tags/{tagId} [post]
func (h *RequirementHandler) AddTag(c *gin.Context) {
	h.link(c, "tagId", h.requirementService.AddTag)
}

// RemoveTag 移除标签
// @Summary 移除标签
// @Tags 需求
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "需求ID"
// @Param tagId path int64 true "标签ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/requirements/{id}/tags/{tagId} [delete]
func (h *RequirementHandler) RemoveTag(c *gin.Context) {
	h.link(c, "tagId", h.requirementService.RemoveTag)
}

// AddRelated 添加关联需求
// @Summary 添加关联需求(有向)
// @Tags 需求
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "需求ID"
// @Param relatedId path int64 true "关联需求ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/requirements/{id}/related/{relatedId} [post]
func (h *RequirementHandler) AddRelated(c *gin.Context) {
	h.link(c, "relatedId", h.requirementService.AddRelated)
}

// RemoveRelated 移除关联需求
// @Summary 移除关联需求
// @Tags 需求
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "需求ID"
// @Param relatedId path int64 true "关联需求ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/requirements/{id}/related/{relatedId} [delete]
func (h *RequirementHandler) RemoveRelated(c *gin.Context) {
	h.link(c, "relatedId", h.requirementService.RemoveRelated)
}

func (h *RequirementHandler) link(c *gin.Context, param string, fn func(requirementID, otherID int64) error) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	otherID, ok := pathID(c, param)
	if !ok {
		return
	}

	if err := fn(id, otherID); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, nil)
}

// ListTags 需求的标签
// @Summary 需求的标签
// @Tags 需求
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "需求ID"
// @Success 200 {object} utils.Response{data=[]model.Tag}
// @Router /api/v1/requirements/{id}/tags [get]
func (h *RequirementHandler) ListTags(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	tags, err := h.tagService.ListByRequirement(id)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, tags)
}

// ListTestCases 需求关联的用例
// @Summary 需求关联的用例
// @Tags 需求
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "需求ID"
// @Success 200 {object} utils.Response{data=[]dto.TestCaseListItem}
// @Router /api/v1/requirements/{id}/test-cases [get]
func (h *RequirementHandler) ListTestCases(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	items, err := h.testCaseService.ListByRequirement(id)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, items)
}

// ListComments 需求评论, 最新在前
// @Summary 需求评论
// @Tags 评论
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "需求ID"
// @Success 200 {object} utils.Response{data=[]model.Comment}
// @Router /api/v1/requirements/{id}/comments [get]
func (h *RequirementHandler) ListComments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	comments, err := h.commentService.ListByRequirement(id)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, comments)
}

// AddComment 发表评论
// @Summary 发表评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "需求ID"
// @Param request body dto.CommentRequest true "评论内容"
// @Success 200 {object} utils.Response{data=model.Comment}
// @Router /api/v1/requirements/{id}/comments [post]
func (h *RequirementHandler) AddComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.Create(userID, id, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, comment)
}

// ListAttachments 需求附件
// @Summary 需求附件
// @Tags 附件
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "需求ID"
// @Success 200 {object} utils.Response{data=[]model.Attachment}
// @Router /api/v1/requirements/{id}/attachments [get]
func (h *RequirementHandler) ListAttachments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	attachments, err := h.attachmentService.ListByRequirement(id)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, attachments)
}
