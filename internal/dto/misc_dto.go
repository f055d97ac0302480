package dto

// CreateTagRequest 创建标签
type CreateTagRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateTagRequest 部分更新标签
type UpdateTagRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CommentRequest 创建或修改评论
type CommentRequest struct {
	Text string `json:"text"`
}

// CreateAttachmentRequest 登记附件元数据, 文件内容由存储服务保存
type CreateAttachmentRequest struct {
	FileName      string `json:"file_name" binding:"max=255"`
	Size          int64  `json:"size" binding:"min=0"`
	Type          string `json:"type"`
	RequirementID *int64 `json:"requirement_id"`
	TestResultID  *int64 `json:"test_result_id"`
}

// ThemeRequest 设置主题
type ThemeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

// ThemeResponse 当前用户主题
type ThemeResponse struct {
	Theme string `json:"theme"`
}

// ReportSummary 覆盖率与通过率汇总; 通过率按每个用例的最新结果计算
type ReportSummary struct {
	TotalRequirements   int64   `json:"total_requirements"`
	TotalTestCases      int64   `json:"total_test_cases"`
	TotalTestRuns       int64   `json:"total_test_runs"`
	CoveredRequirements int64   `json:"covered_requirements"`
	CoveragePercent     float64 `json:"coverage_percent"`
	TestsPassed         int     `json:"tests_passed"`
	TestsFailed         int     `json:"tests_failed"`
	TestsPending        int     `json:"tests_pending"`
	PassRate            float64 `json:"pass_rate"`
}
