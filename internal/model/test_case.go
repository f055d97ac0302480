package model

const (
	TestCaseTableName = "test_cases"
	TestStepTableName = "test_steps"
)

// TestCase 测试用例
type TestCase struct {
	BaseModel
	Title                string `gorm:"size:255;not null" json:"title"`
	Description          string `gorm:"type:text" json:"description"`
	Preconditions        string `gorm:"type:text" json:"preconditions"`
	Type                 string `gorm:"size:20;not null;index" json:"type"`
	Priority             string `gorm:"size:10;not null;index" json:"priority"`
	Status               string `gorm:"size:20;not null;index" json:"status"`
	AutomationStatus     string `gorm:"size:20;not null;default:'Not Automated'" json:"automation_status"`
	AutomationScriptPath string `gorm:"size:500" json:"automation_script_path"`
	CreatedByID          int64  `gorm:"not null;index" json:"created_by_id"`

	CreatedBy    *User         `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Steps        []TestStep    `gorm:"foreignKey:TestCaseID" json:"steps"`
	Requirements []Requirement `gorm:"many2many:test_case_requirements;" json:"requirements,omitempty"`
	TestResults  []TestResult  `gorm:"foreignKey:TestCaseID" json:"test_results,omitempty"`
}

func (TestCase) TableName() string {
	return TestCaseTableName
}

// TestStep 用例步骤, StepNumber 始终为 1..N 连续编号
type TestStep struct {
	ID             int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	TestCaseID     int64  `gorm:"not null;index" json:"test_case_id"`
	StepNumber     int    `gorm:"not null" json:"step_number"`
	Action         string `gorm:"type:text" json:"action"`
	ExpectedResult string `gorm:"type:text" json:"expected_result"`
}

func (TestStep) TableName() string {
	return TestStepTableName
}
