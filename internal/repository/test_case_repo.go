package repository

import (
	"github.com/samber/lo"
	"gorm.io/gorm"

	"testhub/internal/model"
	pkgErrors "testhub/pkg/errors"
)

type TestCaseRepository interface {
	// Create 在同一事务内创建用例、步骤与需求关联
	Create(testCase *model.TestCase, requirementIDs []int64) error
	FindByID(id int64) (*model.TestCase, error)
	List() ([]*model.TestCase, error)
	ListByCreator(userID int64) ([]*model.TestCase, error)
	ListByRequirement(requirementID int64) ([]*model.TestCase, error)
	// Update 更新字段; steps 非 nil 时整体替换步骤
	Update(testCase *model.TestCase, steps []model.TestStep) error
	Delete(id int64) error

	AddRequirement(testCaseID, requirementID int64) error
	RemoveRequirement(testCaseID, requirementID int64) error

	// BulkDelete / BulkUpdate 单事务内作用于整组ID, 返回影响行数
	BulkDelete(ids []int64) (int64, error)
	BulkUpdate(ids []int64, fields map[string]interface{}) (int64, error)
}

type testCaseRepository struct {
	db *gorm.DB
}

func NewTestCaseRepository(db *gorm.DB) TestCaseRepository {
	return &testCaseRepository{db: db}
}

var testCaseAssociations = []string{"CreatedBy", "Requirements", "TestResults"}

func (r *testCaseRepository) Create(testCase *model.TestCase, requirementIDs []int64) error {
	testCase.Steps = model.RenumberSteps(testCase.Steps)

	return r.db.Transaction(func(tx *gorm.DB) error {
		ids := lo.Uniq(requirementIDs)
		if err := mustExistAll(tx, &model.Requirement{}, ids, EntityRequirement); err != nil {
			return err
		}

		if err := tx.Omit(testCaseAssociations...).Create(testCase).Error; err != nil {
			return dbError("创建测试用例失败", err)
		}

		if len(ids) == 0 {
			return nil
		}
		rows := lo.Map(ids, func(reqID int64, _ int) model.TestCaseRequirement {
			return model.TestCaseRequirement{TestCaseID: testCase.ID, RequirementID: reqID}
		})
		return link(tx, &rows)
	})
}

func (r *testCaseRepository) FindByID(id int64) (*model.TestCase, error) {
	var testCase model.TestCase
	err := r.db.
		Preload("CreatedBy").
		Preload("Steps", orderedSteps).
		Preload("Requirements").
		Preload("TestResults", newestFirst).
		Preload("TestResults.TestRun").
		First(&testCase, id).Error
	if err != nil {
		return nil, findError(EntityTestCase, "查询测试用例失败", err)
	}
	return &testCase, nil
}

func (r *testCaseRepository) List() ([]*model.TestCase, error) {
	return r.list()
}

func (r *testCaseRepository) ListByCreator(userID int64) ([]*model.TestCase, error) {
	return r.list(WithWhere("created_by_id = ?", userID))
}

func (r *testCaseRepository) ListByRequirement(requirementID int64) ([]*model.TestCase, error) {
	if err := mustExist(r.db, &model.Requirement{}, requirementID, EntityRequirement); err != nil {
		return nil, err
	}
	return r.list(WithJoin("JOIN test_case_requirements ON test_case_requirements.test_case_id = test_cases.id",
		"test_case_requirements.requirement_id = ?", requirementID))
}

func (r *testCaseRepository) list(opts ...QueryOption) ([]*model.TestCase, error) {
	var testCases []*model.TestCase
	db := applyOptions(r.db.Model(&model.TestCase{}), opts)
	err := db.Preload("CreatedBy").Preload("Steps", orderedSteps).Preload("Requirements").
		Order("test_cases.updated_at DESC, test_cases.id DESC").
		Find(&testCases).Error
	if err != nil {
		return nil, dbError("查询测试用例列表失败", err)
	}
	return testCases, nil
}

func (r *testCaseRepository) Update(testCase *model.TestCase, steps []model.TestStep) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(testCase).
			Select("title", "description", "preconditions", "type", "priority", "status",
				"automation_status", "automation_script_path", "updated_at").
			Updates(testCase).Error
		if err != nil {
			return dbError("更新测试用例失败", err)
		}
		if steps == nil {
			return nil
		}

		if err := tx.Where("test_case_id = ?", testCase.ID).Delete(&model.TestStep{}).Error; err != nil {
			return dbError("删除用例步骤失败", err)
		}
		renumbered := model.RenumberSteps(steps)
		for i := range renumbered {
			renumbered[i].ID = 0
			renumbered[i].TestCaseID = testCase.ID
		}
		testCase.Steps = renumbered
		if len(renumbered) == 0 {
			return nil
		}
		if err := tx.Create(&renumbered).Error; err != nil {
			return dbError("保存用例步骤失败", err)
		}
		return nil
	})
}

func (r *testCaseRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		affected, err := deleteTestCases(tx, []int64{id})
		if err != nil {
			return err
		}
		if affected == 0 {
			return pkgErrors.NotFound(EntityTestCase)
		}
		return nil
	})
}

func (r *testCaseRepository) AddRequirement(testCaseID, requirementID int64) error {
	if err := mustExist(r.db, &model.TestCase{}, testCaseID, EntityTestCase); err != nil {
		return err
	}
	if err := mustExist(r.db, &model.Requirement{}, requirementID, EntityRequirement); err != nil {
		return err
	}
	return link(r.db, &model.TestCaseRequirement{TestCaseID: testCaseID, RequirementID: requirementID})
}

func (r *testCaseRepository) RemoveRequirement(testCaseID, requirementID int64) error {
	if err := mustExist(r.db, &model.TestCase{}, testCaseID, EntityTestCase); err != nil {
		return err
	}
	err := r.db.Where("test_case_id = ? AND requirement_id = ?", testCaseID, requirementID).
		Delete(&model.TestCaseRequirement{}).Error
	if err != nil {
		return dbError("移除用例需求关联失败", err)
	}
	return nil
}

func (r *testCaseRepository) BulkDelete(ids []int64) (int64, error) {
	ids = lo.Uniq(ids)
	if len(ids) == 0 {
		return 0, nil
	}
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		n, err := deleteTestCases(tx, ids)
		affected = n
		return err
	})
	return affected, err
}

func (r *testCaseRepository) BulkUpdate(ids []int64, fields map[string]interface{}) (int64, error) {
	ids = lo.Uniq(ids)
	if len(ids) == 0 || len(fields) == 0 {
		return 0, nil
	}
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.TestCase{}).Where("id IN ?", ids).Updates(fields)
		if result.Error != nil {
			return dbError("批量更新测试用例失败", result.Error)
		}
		affected = result.RowsAffected
		return nil
	})
	return affected, err
}

// deleteTestCases 删除用例及其步骤、需求关联、测试结果和结果附件; 需在事务内调用
func deleteTestCases(tx *gorm.DB, ids []int64) (int64, error) {
	resultIDs := tx.Model(&model.TestResult{}).Select("id").Where("test_case_id IN ?", ids)
	if err := tx.Where("test_result_id IN (?)", resultIDs).Delete(&model.Attachment{}).Error; err != nil {
		return 0, dbError("删除结果附件失败", err)
	}
	if err := tx.Where("test_case_id IN ?", ids).Delete(&model.TestResult{}).Error; err != nil {
		return 0, dbError("删除测试结果失败", err)
	}
	if err := tx.Where("test_case_id IN ?", ids).Delete(&model.TestStep{}).Error; err != nil {
		return 0, dbError("删除用例步骤失败", err)
	}
	if err := tx.Where("test_case_id IN ?", ids).Delete(&model.TestCaseRequirement{}).Error; err != nil {
		return 0, dbError("删除用例需求关联失败", err)
	}

	result := tx.Where("id IN ?", ids).Delete(&model.TestCase{})
	if result.Error != nil {
		return 0, dbError("删除测试用例失败", result.Error)
	}
	return result.RowsAffected, nil
}
