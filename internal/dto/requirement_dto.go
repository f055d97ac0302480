package dto

import "time"

// CreateRequirementRequest 创建需求; tags 按名称 upsert, tag_ids 关联已有标签
type CreateRequirementRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Priority    string   `json:"priority"`
	Status      string   `json:"status"`
	Version     string   `json:"version" binding:"max=20"`
	TagIDs      []int64  `json:"tag_ids"`
	Tags        []string `json:"tags"`
}

// UpdateRequirementRequest 部分更新, 合并后整体校验
type UpdateRequirementRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
	Version     *string `json:"version" binding:"omitempty,max=20"`
}

// RequirementListItem 需求列表项
type RequirementListItem struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Category      string     `json:"category"`
	Priority      string     `json:"priority"`
	Status        string     `json:"status"`
	Version       string     `json:"version"`
	CreatedBy     *UserBrief `json:"created_by,omitempty"`
	Tags          []TagBrief `json:"tags"`
	TestCaseCount int        `json:"test_case_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// RequirementQuery 需求列表过滤
type RequirementQuery struct {
	PageQuery
	Priority string `form:"priority"`
	Status   string `form:"status"`
	Category string `form:"category"`
	TagID    int64  `form:"tag_id"`
}
