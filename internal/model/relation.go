package model

// 多对多关联表的行结构, 表结构与关联定义自动迁移出的一致

type RequirementTag struct {
	RequirementID int64 `gorm:"primaryKey;autoIncrement:false"`
	TagID         int64 `gorm:"primaryKey;autoIncrement:false"`
}

func (RequirementTag) TableName() string {
	return "requirement_tags"
}

// RequirementRelation 有向关联: RequirementID → RelatedRequirementID
type RequirementRelation struct {
	RequirementID        int64 `gorm:"primaryKey;autoIncrement:false"`
	RelatedRequirementID int64 `gorm:"primaryKey;autoIncrement:false"`
}

func (RequirementRelation) TableName() string {
	return "requirement_relations"
}

type TestCaseRequirement struct {
	TestCaseID    int64 `gorm:"primaryKey;autoIncrement:false"`
	RequirementID int64 `gorm:"primaryKey;autoIncrement:false"`
}

func (TestCaseRequirement) TableName() string {
	return "test_case_requirements"
}

type TestRunExecutor struct {
	TestRunID int64 `gorm:"primaryKey;autoIncrement:false"`
	UserID    int64 `gorm:"primaryKey;autoIncrement:false"`
}

func (TestRunExecutor) TableName() string {
	return "test_run_executors"
}
