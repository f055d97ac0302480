package repository

import (
	"gorm.io/gorm"

	"testhub/internal/model"
)

// ResultStatusRow 测试结果的最小投影
type ResultStatusRow struct {
	ID         int64
	TestCaseID int64
	Status     string
}

type ReportRepository interface {
	CountRequirements() (int64, error)
	CountTestCases() (int64, error)
	CountTestRuns() (int64, error)
	// CountCoveredRequirements 至少关联一个用例的需求数
	CountCoveredRequirements() (int64, error)
	// ListResultStatuses 全部测试结果, 按ID升序
	ListResultStatuses() ([]ResultStatusRow, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) CountRequirements() (int64, error) {
	return r.count(&model.Requirement{})
}

func (r *reportRepository) CountTestCases() (int64, error) {
	return r.count(&model.TestCase{})
}

func (r *reportRepository) CountTestRuns() (int64, error) {
	return r.count(&model.TestRun{})
}

func (r *reportRepository) count(m interface{}) (int64, error) {
	var n int64
	if err := r.db.Model(m).Count(&n).Error; err != nil {
		return 0, dbError("统计失败", err)
	}
	return n, nil
}

func (r *reportRepository) CountCoveredRequirements() (int64, error) {
	var n int64
	err := r.db.Model(&model.TestCaseRequirement{}).
		Distinct("requirement_id").
		Count(&n).Error
	if err != nil {
		return 0, dbError("统计需求覆盖失败", err)
	}
	return n, nil
}

func (r *reportRepository) ListResultStatuses() ([]ResultStatusRow, error) {
	var rows []ResultStatusRow
	err := r.db.Model(&model.TestResult{}).
		Select("id", "test_case_id", "status").
		Order("id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, dbError("查询测试结果失败", err)
	}
	return rows, nil
}
