package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"testhub/internal/dto"
	"testhub/internal/service"
	"testhub/pkg/utils"
)

type TestCaseHandler struct {
	testCaseService service.TestCaseService
}

func NewTestCaseHandler(testCaseService service.TestCaseService) *TestCaseHandler {
	return &TestCaseHandler{testCaseService: testCaseService}
}

// Create 创建用例
// @Summary 创建用例
// @Description 步骤编号按提交顺序从1开始
// @Tags 用例
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateTestCaseRequest true "创建用例请求"
// @Success 200 {object} utils.Response{data=model.TestCase}
// @Router /api/v1/test-cases [post]
func (h *TestCaseHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateTestCaseRequest
	if !bindJSON(c, &req) {
		return
	}

	testCase, err := h.testCaseService.Create(userID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, testCase)
}

// List 用例搜索
// @Summary 用例搜索、过滤与分页
// @Tags 用例
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param keyword query string false "标题或描述关键字"
// @Param type query string false "类型"
// @Param priority query string false "优先级"
// @Param status query string false "状态"
// @Param requirement_ids query []int false "需求ID, 命中任意一个" collectionFormat(multi)
// @Success 200 {object} utils.Response{data=dto.TestCaseListResponse}
// @Router /api/v1/test-cases [get]
func (h *TestCaseHandler) List(c *gin.Context) {
	var query dto.TestCaseQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.testCaseService.List(c.Request.Context(), &query)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// GetByID 用例详情
// @Summary 用例详情
// @Tags 用例
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "用例ID"
// @Success 200 {object} utils.Response{data=model.TestCase}
// @Router /api/v1/test-cases/{id} [get]
func (h *TestCaseHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	testCase, err := h.testCaseService.GetByID(id)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, testCase)
}

// Update 更新用例
// @Summary 更新用例
// @Description steps 出现时整体替换并重新编号
// @Tags 用例
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "用例ID"
// @Param request body dto.UpdateTestCaseRequest true "更新用例请求"
// @Success 200 {object} utils.Response{data=model.TestCase}
// @Router /api/v1/test-cases/{id} [put]
func (h *TestCaseHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTestCaseRequest
	if !bindJSON(c, &req) {
		return
	}

	testCase, err := h.testCaseService.Update(id, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, testCase)
}

// Delete 删除用例
// @Summary 删除用例
// @Tags 用例
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "用例ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/test-cases/{id} [delete]
func (h *TestCaseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.testCaseService.Delete(id); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, nil)
}

// BulkDelete 批量删除用例
// @Summary 批量删除用例
// @Tags 用例
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.IDsRequest true "用例ID列表"
// @Success 200 {object} utils.Response{data=dto.BulkResult}
// @Router /api/v1/test-cases/bulk-delete [post]
func (h *TestCaseHandler) BulkDelete(c *gin.Context) {
	var req dto.IDsRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.testCaseService.BulkDelete(req.IDs)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, result)
}

// BulkUpdate 批量更新用例
// @Summary 批量更新用例的类型、优先级、状态或自动化状态
// @Tags 用例
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.BulkUpdateTestCasesRequest true "批量更新请求"
// @Success 200 {object} utils.Response{data=dto.BulkResult}
// @Router /api/v1/test-cases/bulk-update [post]
func (h *TestCaseHandler) BulkUpdate(c *gin.Context) {
	var req dto.BulkUpdateTestCasesRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.testCaseService.BulkUpdate(&req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, result)
}

// AddRequirement 关联需求
// @Summary 用例关联需求
// @Tags 用例
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "用例ID"
// @Param requirementId path int64 true "需求ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/test-cases/{id}/requirements/{requirementId} [post]
func (h *TestCaseHandler) AddRequirement(c *gin.Context) {
	h.link(c, h.testCaseService.AddRequirement)
}

// RemoveRequirement 取消关联需求
// @Summary 用例取消关联需求
// @Tags 用例
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "用例ID"
// @Param requirementId path int64 true "需求ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/test-cases/{id}/requirements/{requirementId} [delete]
func (h *TestCaseHandler) RemoveRequirement(c *gin.Context) {
	h.link(c, h.testCaseService.RemoveRequirement)
}

func (h *TestCaseHandler) link(c *gin.Context, fn func(testCaseID, requirementID int64) error) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	requirementID, ok := pathID(c, "requirementId")
	if !ok {
		return
	}

	if err := fn(id, requirementID); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, nil)
}
