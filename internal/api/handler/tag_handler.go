package handler

import (
	"github.com/gin-gonic/gin"

	"testhub/internal/dto"
	"testhub/internal/service"
	"testhub/pkg/utils"
)

type TagHandler struct {
	tagService service.TagService
}

func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// Create 创建标签
// @Summary 创建标签
// @Tags 标签
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateTagRequest true "创建标签请求"
// @Success 200 {object} utils.Response{data=model.Tag}
// @Router /api/v1/tags [post]
func (h *TagHandler) Create(c *gin.Context) {
	var req dto.CreateTagRequest
	if !bindJSON(c, &req) {
		return
	}

	tag, err := h.tagService.Create(&req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, tag)
}

// List 标签列表
// @Summary 标签列表
// @Tags 标签
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]model.Tag}
// @Router /api/v1/tags [get]
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tagService.List()
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, tags)
}

// GetByID 标签详情
// @Summary 标签详情
// @Tags 标签
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "标签ID"
// @Success 200 {object} utils.Response{data=model.Tag}
// @Router /api/v1/tags/{id} [get]
func (h *TagHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	tag, err := h.tagService.GetByID(id)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, tag)
}

// GetByName 按名称查询标签
// @Summary 按名称查询标签
// @Tags 标签
// @Produce json
// @Security ApiKeyAuth
// @Param name path string true "标签名称"
// @Success 200 {object} utils.Response{data=model.Tag}
// @Router /api/v1/tags/by-name/{name} [get]
func (h *TagHandler) GetByName(c *gin.Context) {
	tag, err := h.tagService.GetByName(c.Param("name"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, tag)
}

// Update 更新标签
// @Summary 更新标签
// @Tags 标签
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "标签ID"
// @Param request body dto.UpdateTagRequest true "更新标签请求"
// @Success 200 {object} utils.Response{data=model.Tag}
// @Router /api/v1/tags/{id} [put]
func (h *TagHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTagRequest
	if !bindJSON(c, &req) {
		return
	}

	tag, err := h.tagService.Update(id, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, tag)
}

// Delete 删除标签
// @Summary 删除标签
// @Tags 标签
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "标签ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/tags/{id} [delete]
func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.tagService.Delete(id); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, nil)
}
