package repository

import (
	"github.com/samber/lo"
	"gorm.io/gorm"

	"testhub/internal/model"
	pkgErrors "testhub/pkg/errors"
)

type TestRunRepository interface {
	Create(run *model.TestRun, executorIDs []int64) error
	FindByID(id int64) (*model.TestRun, error)
	List() ([]*model.TestRun, error)
	ListByExecutor(userID int64) ([]*model.TestRun, error)
	// Update 更新字段; executorIDs 非 nil 时整体替换执行人
	Update(run *model.TestRun, executorIDs []int64) error
	Delete(id int64) error

	AddResult(result *model.TestResult) error
	FindResult(id int64) (*model.TestResult, error)
	UpdateResult(result *model.TestResult) error
	DeleteResult(id int64) error
}

type testRunRepository struct {
	db *gorm.DB
}

func NewTestRunRepository(db *gorm.DB) TestRunRepository {
	return &testRunRepository{db: db}
}

var testRunAssociations = []string{"ExecutedBy", "Results"}

func (r *testRunRepository) Create(run *model.TestRun, executorIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		ids := lo.Uniq(executorIDs)
		if err := mustExistAll(tx, &model.User{}, ids, EntityUser); err != nil {
			return err
		}
		if err := tx.Omit(testRunAssociations...).Create(run).Error; err != nil {
			return dbError("创建测试执行失败", err)
		}
		return linkExecutors(tx, run.ID, ids)
	})
}

func (r *testRunRepository) FindByID(id int64) (*model.TestRun, error) {
	var run model.TestRun
	err := r.db.
		Preload("ExecutedBy").
		Preload("Results", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Results.TestCase").
		Preload("Results.Attachments").
		First(&run, id).Error
	if err != nil {
		return nil, findError(EntityTestRun, "查询测试执行失败", err)
	}
	return &run, nil
}

func (r *testRunRepository) List() ([]*model.TestRun, error) {
	return r.list()
}

func (r *testRunRepository) ListByExecutor(userID int64) ([]*model.TestRun, error) {
	return r.list(WithJoin("JOIN test_run_executors ON test_run_executors.test_run_id = test_runs.id",
		"test_run_executors.user_id = ?", userID))
}

func (r *testRunRepository) list(opts ...QueryOption) ([]*model.TestRun, error) {
	var runs []*model.TestRun
	db := applyOptions(r.db.Model(&model.TestRun{}), opts)
	err := db.Preload("ExecutedBy").Preload("Results").
		Order("test_runs.start_date DESC, test_runs.id DESC").
		Find(&runs).Error
	if err != nil {
		return nil, dbError("查询测试执行列表失败", err)
	}
	return runs, nil
}

func (r *testRunRepository) Update(run *model.TestRun, executorIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(run).
			Select("name", "description", "start_date", "end_date", "status", "environment", "updated_at").
			Updates(run).Error
		if err != nil {
			return dbError("更新测试执行失败", err)
		}
		if executorIDs == nil {
			return nil
		}

		ids := lo.Uniq(executorIDs)
		if err := mustExistAll(tx, &model.User{}, ids, EntityUser); err != nil {
			return err
		}
		if err := tx.Where("test_run_id = ?", run.ID).Delete(&model.TestRunExecutor{}).Error; err != nil {
			return dbError("删除执行人关联失败", err)
		}
		return linkExecutors(tx, run.ID, ids)
	})
}

// Delete 删除测试执行及其结果、结果附件与执行人关联
func (r *testRunRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		resultIDs := tx.Model(&model.TestResult{}).Select("id").Where("test_run_id = ?", id)
		if err := tx.Where("test_result_id IN (?)", resultIDs).Delete(&model.Attachment{}).Error; err != nil {
			return dbError("删除结果附件失败", err)
		}
		if err := tx.Where("test_run_id = ?", id).Delete(&model.TestResult{}).Error; err != nil {
			return dbError("删除测试结果失败", err)
		}
		if err := tx.Where("test_run_id = ?", id).Delete(&model.TestRunExecutor{}).Error; err != nil {
			return dbError("删除执行人关联失败", err)
		}

		result := tx.Delete(&model.TestRun{}, id)
		if result.Error != nil {
			return dbError("删除测试执行失败", result.Error)
		}
		if result.RowsAffected == 0 {
			return pkgErrors.NotFound(EntityTestRun)
		}
		return nil
	})
}

func (r *testRunRepository) AddResult(result *model.TestResult) error {
	if err := mustExist(r.db, &model.TestRun{}, result.TestRunID, EntityTestRun); err != nil {
		return err
	}
	if err := mustExist(r.db, &model.TestCase{}, result.TestCaseID, EntityTestCase); err != nil {
		return err
	}
	if err := r.db.Omit("TestRun", "TestCase", "Attachments").Create(result).Error; err != nil {
		return dbError("创建测试结果失败", err)
	}
	return nil
}

func (r *testRunRepository) FindResult(id int64) (*model.TestResult, error) {
	var result model.TestResult
	err := r.db.Preload("TestCase").Preload("Attachments").First(&result, id).Error
	if err != nil {
		return nil, findError(EntityTestResult, "查询测试结果失败", err)
	}
	return &result, nil
}

func (r *testRunRepository) UpdateResult(result *model.TestResult) error {
	err := r.db.Model(result).
		Select("status", "actual_results", "comments", "execution_date", "updated_at").
		Updates(result).Error
	if err != nil {
		return dbError("更新测试结果失败", err)
	}
	return nil
}

func (r *testRunRepository) DeleteResult(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_result_id = ?", id).Delete(&model.Attachment{}).Error; err != nil {
			return dbError("删除结果附件失败", err)
		}
		result := tx.Delete(&model.TestResult{}, id)
		if result.Error != nil {
			return dbError("删除测试结果失败", result.Error)
		}
		if result.RowsAffected == 0 {
			return pkgErrors.NotFound(EntityTestResult)
		}
		return nil
	})
}

func linkExecutors(tx *gorm.DB, runID int64, userIDs []int64) error {
	if len(userIDs) == 0 {
		return nil
	}
	rows := lo.Map(userIDs, func(userID int64, _ int) model.TestRunExecutor {
		return model.TestRunExecutor{TestRunID: runID, UserID: userID}
	})
	return link(tx, &rows)
}
