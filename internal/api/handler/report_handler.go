package handler

import (
	"github.com/gin-gonic/gin"

	"testhub/internal/service"
	"testhub/pkg/utils"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary 覆盖率与通过率汇总
// @Summary 覆盖率与通过率汇总
// @Description 通过率按每个用例的最新结果计算
// @Tags 报表
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=dto.ReportSummary}
// @Router /api/v1/reports/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reportService.Summary(c.Request.Context())
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, summary)
}
