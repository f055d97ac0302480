package dto

import "time"

// CreateTestRunRequest 创建测试执行, 日期为字符串以便报告格式错误
type CreateTestRunRequest struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	StartDate   string                 `json:"start_date"`
	EndDate     string                 `json:"end_date"`
	Status      string                 `json:"status"`
	ExecutorIDs []int64                `json:"executor_ids"`
	Environment map[string]interface{} `json:"environment"`
}

// UpdateTestRunRequest 部分更新; executor_ids 出现时整体替换
type UpdateTestRunRequest struct {
	Name        *string                 `json:"name"`
	Description *string                 `json:"description"`
	StartDate   *string                 `json:"start_date"`
	EndDate     *string                 `json:"end_date"`
	Status      *string                 `json:"status"`
	ExecutorIDs *[]int64                `json:"executor_ids"`
	Environment *map[string]interface{} `json:"environment"`
}

// TestRunListItem 测试执行列表项
type TestRunListItem struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	Status       string      `json:"status"`
	StartDate    time.Time   `json:"start_date"`
	EndDate      *time.Time  `json:"end_date"`
	ExecutedBy   []UserBrief `json:"executed_by"`
	ResultCount  int         `json:"result_count"`
	PassCount    int         `json:"pass_count"`
	FailCount    int         `json:"fail_count"`
	PendingCount int         `json:"pending_count"`
}

// AddTestResultRequest 记录一条测试结果
type AddTestResultRequest struct {
	TestCaseID    int64  `json:"test_case_id" binding:"required,min=1"`
	Status        string `json:"status"`
	ActualResults string `json:"actual_results"`
	Comments      string `json:"comments"`
	ExecutionDate string `json:"execution_date"`
}

// UpdateTestResultRequest 部分更新测试结果
type UpdateTestResultRequest struct {
	Status        *string `json:"status"`
	ActualResults *string `json:"actual_results"`
	Comments      *string `json:"comments"`
	ExecutionDate *string `json:"execution_date"`
}
