package handler

import (
	"github.com/gin-gonic/gin"

	"testhub/internal/dto"
	"testhub/internal/service"
	"testhub/pkg/utils"
)

type TestRunHandler struct {
	testRunService    service.TestRunService
	attachmentService service.AttachmentService
}

func NewTestRunHandler(testRunService service.TestRunService, attachmentService service.AttachmentService) *TestRunHandler {
	return &TestRunHandler{
		testRunService:    testRunService,
		attachmentService: attachmentService,
	}
}

// Create 创建测试执行
// @Summary 创建测试执行
// @Tags 测试执行
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateTestRunRequest true "创建测试执行请求"
// @Success 200 {object} utils.Response{data=model.TestRun}
// @Router /api/v1/test-runs [post]
func (h *TestRunHandler) Create(c *gin.Context) {
	var req dto.CreateTestRunRequest
	if !bindJSON(c, &req) {
		return
	}

	run, err := h.testRunService.Create(&req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, run)
}

// List 测试执行列表
// @Summary 测试执行列表
// @Tags 测试执行
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]dto.TestRunListItem}
// @Router /api/v1/test-runs [get]
func (h *TestRunHandler) List(c *gin.Context) {
	runs, err := h.testRunService.List()
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, runs)
}

// GetByID 测试执行详情
// @Summary 测试执行详情
// @Tags 测试执行
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "测试执行ID"
// @Success 200 {object} utils.Response{data=model.TestRun}
// @Router /api/v1/test-runs/{id} [get]
func (h *TestRunHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	run, err := h.testRunService.GetByID(id)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, run)
}

// Update 更新测试执行
// @Summary 更新测试执行
// @Tags 测试执行
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "测试执行ID"
// @Param request body dto.UpdateTestRunRequest true "更新测试执行请求"
// @Success 200 {object} utils.Response{data=model.TestRun}
// @Router /api/v1/test-runs/{id} [put]
func (h *TestRunHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTestRunRequest
	if !bindJSON(c, &req) {
		return
	}

	run, err := h.testRunService.Update(id, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, run)
}

// Delete 删除测试执行
// @Summary 删除测试执行及其结果
// @Tags 测试执行
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "测试执行ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/test-runs/{id} [delete]
func (h *TestRunHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.testRunService.Delete(id); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, nil)
}

// AddResult 记录测试结果
// @Summary 记录测试结果
// @Tags 测试结果
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "测试执行ID"
// @Param request body dto.AddTestResultRequest true "测试结果"
// @Success 200 {object} utils.Response{data=model.TestResult}
// @Router /api/v1/test-runs/{id}/results [post]
func (h *TestRunHandler) AddResult(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AddTestResultRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.testRunService.AddResult(id, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, result)
}

// GetResult 测试结果详情
// @Summary 测试结果详情
// @Tags 测试结果
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "测试结果ID"
// @Success 200 {object} utils.Response{data=model.TestResult}
// @Router /api/v1/test-results/{id} [get]
func (h *TestRunHandler) GetResult(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.testRunService.GetResult(id)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, result)
}

// UpdateResult 更新测试结果
// @Summary 更新测试结果
// @Tags 测试结果
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "测试结果ID"
// @Param request body dto.UpdateTestResultRequest true "更新测试结果请求"
// @Success 200 {object} utils.Response{data=model.TestResult}
// @Router /api/v1/test-results/{id} [put]
func (h *TestRunHandler) UpdateResult(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTestResultRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.testRunService.UpdateResult(id, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, result)
}

// DeleteResult 删除测试结果
// @Summary 删除测试结果
// @Tags 测试结果
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "测试结果ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/test-results/{id} [delete]
func (h *TestRunHandler) DeleteResult(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.testRunService.DeleteResult(id); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, nil)
}

// ListResultAttachments 测试结果附件
// @Summary 测试结果附件
// @Tags 附件
// @Produce json
// @Security ApiKeyAuth
// @Param id path int64 true "测试结果ID"
// @Success 200 {object} utils.Response{data=[]model.Attachment}
// @Router /api/v1/test-results/{id}/attachments [get]
func (h *TestRunHandler) ListResultAttachments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	attachments, err := h.attachmentService.ListByTestResult(id)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, attachments)
}
