package repository

import (
	"github.com/samber/lo"
	"gorm.io/gorm"

	"testhub/internal/model"
	pkgErrors "testhub/pkg/errors"
)

type AttachmentRepository interface {
	// Create 附件必须且只能归属需求或测试结果之一, 归属对象需存在
	Create(attachment *model.Attachment) error
	FindByID(id int64) (*model.Attachment, error)
	ListByRequirement(requirementID int64) ([]*model.Attachment, error)
	ListByTestResult(testResultID int64) ([]*model.Attachment, error)
	Delete(id int64) error
	BulkDelete(ids []int64) (int64, error)
}

type attachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Create(attachment *model.Attachment) error {
	if attachment.RequirementID != nil {
		if err := mustExist(r.db, &model.Requirement{}, *attachment.RequirementID, EntityRequirement); err != nil {
			return err
		}
	}
	if attachment.TestResultID != nil {
		if err := mustExist(r.db, &model.TestResult{}, *attachment.TestResultID, EntityTestResult); err != nil {
			return err
		}
	}
	if err := r.db.Omit("Requirement", "TestResult").Create(attachment).Error; err != nil {
		return dbError("创建附件失败", err)
	}
	return nil
}

func (r *attachmentRepository) FindByID(id int64) (*model.Attachment, error) {
	var attachment model.Attachment
	if err := r.db.First(&attachment, id).Error; err != nil {
		return nil, findError(EntityAttachment, "查询附件失败", err)
	}
	return &attachment, nil
}

func (r *attachmentRepository) ListByRequirement(requirementID int64) ([]*model.Attachment, error) {
	if err := mustExist(r.db, &model.Requirement{}, requirementID, EntityRequirement); err != nil {
		return nil, err
	}
	return r.listWhere("requirement_id = ?", requirementID)
}

func (r *attachmentRepository) ListByTestResult(testResultID int64) ([]*model.Attachment, error) {
	if err := mustExist(r.db, &model.TestResult{}, testResultID, EntityTestResult); err != nil {
		return nil, err
	}
	return r.listWhere("test_result_id = ?", testResultID)
}

func (r *attachmentRepository) listWhere(query string, args ...interface{}) ([]*model.Attachment, error) {
	var attachments []*model.Attachment
	if err := r.db.Where(query, args...).Scopes(newestFirst).Find(&attachments).Error; err != nil {
		return nil, dbError("查询附件列表失败", err)
	}
	return attachments, nil
}

func (r *attachmentRepository) Delete(id int64) error {
	result := r.db.Delete(&model.Attachment{}, id)
	if result.Error != nil {
		return dbError("删除附件失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.NotFound(EntityAttachment)
	}
	return nil
}

func (r *attachmentRepository) BulkDelete(ids []int64) (int64, error) {
	ids = lo.Uniq(ids)
	if len(ids) == 0 {
		return 0, nil
	}
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id IN ?", ids).Delete(&model.Attachment{})
		if result.Error != nil {
			return dbError("批量删除附件失败", result.Error)
		}
		affected = result.RowsAffected
		return nil
	})
	return affected, err
}
