package repository

import (
	"github.com/samber/lo"
	"gorm.io/gorm"

	"testhub/internal/model"
	pkgErrors "testhub/pkg/errors"
)

type RequirementRepository interface {
	// Create 在同一事务内创建需求并关联标签(按ID或按名称 upsert)
	Create(requirement *model.Requirement, tagIDs []int64, tagNames []string) error
	FindByID(id int64) (*model.Requirement, error)
	List() ([]*model.Requirement, error)
	ListByCreator(userID int64) ([]*model.Requirement, error)
	Update(requirement *model.Requirement) error
	// Delete 删除需求及其关联行、评论与附件
	Delete(id int64) error

	AddTag(requirementID, tagID int64) error
	RemoveTag(requirementID, tagID int64) error
	AddRelated(requirementID, relatedID int64) error
	RemoveRelated(requirementID, relatedID int64) error
}

type requirementRepository struct {
	db *gorm.DB
}

func NewRequirementRepository(db *gorm.DB) RequirementRepository {
	return &requirementRepository{db: db}
}

var requirementAssociations = []string{"CreatedBy", "Tags", "RelatedRequirements", "TestCases", "Comments", "Attachments"}

func (r *requirementRepository) Create(requirement *model.Requirement, tagIDs []int64, tagNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(requirementAssociations...).Create(requirement).Error; err != nil {
			return dbError("创建需求失败", err)
		}

		ids := lo.Uniq(tagIDs)
		if err := mustExistAll(tx, &model.Tag{}, ids, EntityTag); err != nil {
			return err
		}

		tags, err := upsertTags(tx, tagNames)
		if err != nil {
			return err
		}
		ids = lo.Uniq(append(ids, lo.Map(tags, func(t model.Tag, _ int) int64 { return t.ID })...))
		if len(ids) == 0 {
			return nil
		}

		rows := lo.Map(ids, func(tagID int64, _ int) model.RequirementTag {
			return model.RequirementTag{RequirementID: requirement.ID, TagID: tagID}
		})
		return link(tx, &rows)
	})
}

func (r *requirementRepository) FindByID(id int64) (*model.Requirement, error) {
	var requirement model.Requirement
	err := r.db.
		Preload("CreatedBy").
		Preload("Tags").
		Preload("RelatedRequirements").
		Preload("TestCases").
		Preload("Comments", newestFirst).
		Preload("Comments.Author").
		Preload("Attachments", newestFirst).
		First(&requirement, id).Error
	if err != nil {
		return nil, findError(EntityRequirement, "查询需求失败", err)
	}
	return &requirement, nil
}

func (r *requirementRepository) List() ([]*model.Requirement, error) {
	return r.list()
}

func (r *requirementRepository) ListByCreator(userID int64) ([]*model.Requirement, error) {
	return r.list(WithWhere("created_by_id = ?", userID))
}

func (r *requirementRepository) list(opts ...QueryOption) ([]*model.Requirement, error) {
	var requirements []*model.Requirement
	db := applyOptions(r.db.Model(&model.Requirement{}), opts)
	err := db.Preload("CreatedBy").Preload("Tags").Preload("TestCases").
		Order("updated_at DESC, id DESC").
		Find(&requirements).Error
	if err != nil {
		return nil, dbError("查询需求列表失败", err)
	}
	return requirements, nil
}

func (r *requirementRepository) Update(requirement *model.Requirement) error {
	err := r.db.Model(requirement).
		Select("title", "description", "category", "priority", "status", "version", "updated_at").
		Updates(requirement).Error
	if err != nil {
		return dbError("更新需求失败", err)
	}
	return nil
}

func (r *requirementRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			model interface{}
			where string
			args  []interface{}
			msg   string
		}{
			{&model.RequirementTag{}, "requirement_id = ?", []interface{}{id}, "删除需求标签关联失败"},
			{&model.RequirementRelation{}, "requirement_id = ? OR related_requirement_id = ?", []interface{}{id, id}, "删除需求关联失败"},
			{&model.TestCaseRequirement{}, "requirement_id = ?", []interface{}{id}, "删除用例关联失败"},
			{&model.Comment{}, "requirement_id = ?", []interface{}{id}, "删除需求评论失败"},
			{&model.Attachment{}, "requirement_id = ?", []interface{}{id}, "删除需求附件失败"},
		}
		for _, step := range steps {
			if err := tx.Where(step.where, step.args...).Delete(step.model).Error; err != nil {
				return dbError(step.msg, err)
			}
		}

		result := tx.Delete(&model.Requirement{}, id)
		if result.Error != nil {
			return dbError("删除需求失败", result.Error)
		}
		if result.RowsAffected == 0 {
			return pkgErrors.NotFound(EntityRequirement)
		}
		return nil
	})
}

func (r *requirementRepository) AddTag(requirementID, tagID int64) error {
	if err := mustExist(r.db, &model.Requirement{}, requirementID, EntityRequirement); err != nil {
		return err
	}
	if err := mustExist(r.db, &model.Tag{}, tagID, EntityTag); err != nil {
		return err
	}
	return link(r.db, &model.RequirementTag{RequirementID: requirementID, TagID: tagID})
}

func (r *requirementRepository) RemoveTag(requirementID, tagID int64) error {
	if err := mustExist(r.db, &model.Requirement{}, requirementID, EntityRequirement); err != nil {
		return err
	}
	err := r.db.Where("requirement_id = ? AND tag_id = ?", requirementID, tagID).
		Delete(&model.RequirementTag{}).Error
	if err != nil {
		return dbError("移除需求标签失败", err)
	}
	return nil
}

func (r *requirementRepository) AddRelated(requirementID, relatedID int64) error {
	if err := mustExistAll(r.db, &model.Requirement{}, []int64{requirementID, relatedID}, EntityRequirement); err != nil {
		return err
	}
	return link(r.db, &model.RequirementRelation{RequirementID: requirementID, RelatedRequirementID: relatedID})
}

func (r *requirementRepository) RemoveRelated(requirementID, relatedID int64) error {
	if err := mustExist(r.db, &model.Requirement{}, requirementID, EntityRequirement); err != nil {
		return err
	}
	err := r.db.Where("requirement_id = ? AND related_requirement_id = ?", requirementID, relatedID).
		Delete(&model.RequirementRelation{}).Error
	if err != nil {
		return dbError("移除关联需求失败", err)
	}
	return nil
}
