package handler

import (
	"github.com/gin-gonic/gin"

	"testhub/internal/dto"
	"testhub/internal/service"
	"testhub/pkg/utils"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Update 修改评论
// @Summary 修改评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "评论ID"
// @Param request body dto.CommentRequest true "评论内容"
// @Success 200 {object} utils.Response{data=model.Comment}
// @Router /api/v1/comments/{id} [put]
func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.Update(id, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, comment)
}

// Delete 删除评论
// @Summary 删除评论
// @Tags 评论
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "评论ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.commentService.Delete(id); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, nil)
}
