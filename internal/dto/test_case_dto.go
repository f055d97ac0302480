package dto

import "time"

// StepInput 用例步骤, 编号由位置决定
type StepInput struct {
	Action         string `json:"action"`
	ExpectedResult string `json:"expected_result"`
}

// CreateTestCaseRequest 创建用例
type CreateTestCaseRequest struct {
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	Preconditions        string      `json:"preconditions"`
	Type                 string      `json:"type"`
	Priority             string      `json:"priority"`
	Status               string      `json:"status"`
	AutomationStatus     string      `json:"automation_status"`
	AutomationScriptPath string      `json:"automation_script_path" binding:"max=500"`
	Steps                []StepInput `json:"steps"`
	RequirementIDs       []int64     `json:"requirement_ids"`
}

// UpdateTestCaseRequest 部分更新; steps 出现时整体替换
type UpdateTestCaseRequest struct {
	Title                *string      `json:"title"`
	Description          *string      `json:"description"`
	Preconditions        *string      `json:"preconditions"`
	Type                 *string      `json:"type"`
	Priority             *string      `json:"priority"`
	Status               *string      `json:"status"`
	AutomationStatus     *string      `json:"automation_status"`
	AutomationScriptPath *string      `json:"automation_script_path" binding:"omitempty,max=500"`
	Steps                *[]StepInput `json:"steps"`
}

// TestCaseQuery 用例搜索与过滤
type TestCaseQuery struct {
	PageQuery
	Type           string  `form:"type"`
	Priority       string  `form:"priority"`
	Status         string  `form:"status"`
	RequirementIDs []int64 `form:"requirement_ids"`
}

// TestCaseListItem 用例列表项
type TestCaseListItem struct {
	ID               int64              `json:"id"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	Type             string             `json:"type"`
	Priority         string             `json:"priority"`
	Status           string             `json:"status"`
	AutomationStatus string             `json:"automation_status"`
	StepCount        int                `json:"step_count"`
	CreatedBy        *UserBrief         `json:"created_by,omitempty"`
	Requirements     []RequirementBrief `json:"requirements"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// TestCaseListResponse 用例分页列表, 附带全部需求供过滤选择
type TestCaseListResponse struct {
	PageResponse
	Requirements []RequirementBrief `json:"requirements"`
}

// BulkUpdateTestCasesRequest 批量更新, 只允许枚举字段
type BulkUpdateTestCasesRequest struct {
	IDs              []int64 `json:"ids" binding:"required,min=1,dive,min=1"`
	Type             *string `json:"type"`
	Priority         *string `json:"priority"`
	Status           *string `json:"status"`
	AutomationStatus *string `json:"automation_status"`
}
