package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	TestRunTableName    = "test_runs"
	TestResultTableName = "test_results"
)

// TestRun 测试执行
type TestRun struct {
	BaseModel
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	StartDate   time.Time  `gorm:"not null;index" json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Status      string     `gorm:"size:20;not null;index" json:"status"`
	// 执行环境, 例如 {"browser": "chrome", "build": "1.4.2"}
	Environment datatypes.JSONMap `gorm:"type:json" json:"environment,omitempty"`

	ExecutedBy []User       `gorm:"many2many:test_run_executors;" json:"executed_by"`
	Results    []TestResult `gorm:"foreignKey:TestRunID" json:"results"`
}

func (TestRun) TableName() string {
	return TestRunTableName
}

// TestResult 用例在某次执行中的结果
type TestResult struct {
	BaseModel
	TestRunID     int64      `gorm:"not null;index" json:"test_run_id"`
	TestCaseID    int64      `gorm:"not null;index" json:"test_case_id"`
	Status        string     `gorm:"size:10;not null;index" json:"status"`
	ActualResults string     `gorm:"type:text" json:"actual_results"`
	Comments      string     `gorm:"type:text" json:"comments"`
	ExecutionDate *time.Time `json:"execution_date"`

	TestRun     *TestRun     `gorm:"foreignKey:TestRunID" json:"test_run,omitempty"`
	TestCase    *TestCase    `gorm:"foreignKey:TestCaseID" json:"test_case,omitempty"`
	Attachments []Attachment `gorm:"foreignKey:TestResultID" json:"attachments,omitempty"`
}

func (TestResult) TableName() string {
	return TestResultTableName
}
