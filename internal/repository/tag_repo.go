package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"testhub/internal/model"
	pkgErrors "testhub/pkg/errors"
)

type TagRepository interface {
	Create(tag *model.Tag) error
	FindByID(id int64) (*model.Tag, error)
	FindByName(name string) (*model.Tag, error)
	List() ([]*model.Tag, error)
	ListByRequirement(requirementID int64) ([]*model.Tag, error)
	// UpsertByNames 按名称取得标签, 不存在则创建; 并发创建同名标签时解析到同一行
	UpsertByNames(names []string) ([]model.Tag, error)
	Update(tag *model.Tag) error
	Delete(id int64) error
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(tag *model.Tag) error {
	if err := r.db.Omit("Requirements").Create(tag).Error; err != nil {
		return writeError("Tag name already exists", "创建标签失败", err)
	}
	return nil
}

func (r *tagRepository) FindByID(id int64) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.First(&tag, id).Error; err != nil {
		return nil, findError(EntityTag, "查询标签失败", err)
	}
	return &tag, nil
}

func (r *tagRepository) FindByName(name string) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, findError(EntityTag, "查询标签失败", err)
	}
	return &tag, nil
}

func (r *tagRepository) List() ([]*model.Tag, error) {
	var tags []*model.Tag
	if err := r.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, dbError("查询标签列表失败", err)
	}
	return tags, nil
}

func (r *tagRepository) ListByRequirement(requirementID int64) ([]*model.Tag, error) {
	if err := mustExist(r.db, &model.Requirement{}, requirementID, EntityRequirement); err != nil {
		return nil, err
	}
	var tags []*model.Tag
	err := r.db.Joins("JOIN requirement_tags ON requirement_tags.tag_id = tags.id").
		Where("requirement_tags.requirement_id = ?", requirementID).
		Order("tags.name ASC").
		Find(&tags).Error
	if err != nil {
		return nil, dbError("查询需求标签失败", err)
	}
	return tags, nil
}

func (r *tagRepository) UpsertByNames(names []string) ([]model.Tag, error) {
	return upsertTags(r.db, names)
}

func (r *tagRepository) Update(tag *model.Tag) error {
	err := r.db.Model(tag).Select("name", "description", "updated_at").Updates(tag).Error
	if err != nil {
		return writeError("Tag name already exists", "更新标签失败", err)
	}
	return nil
}

// Delete 删除标签及其与需求的关联
func (r *tagRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&model.RequirementTag{}).Error; err != nil {
			return dbError("删除标签关联失败", err)
		}
		result := tx.Delete(&model.Tag{}, id)
		if result.Error != nil {
			return dbError("删除标签失败", result.Error)
		}
		if result.RowsAffected == 0 {
			return pkgErrors.NotFound(EntityTag)
		}
		return nil
	})
}

// upsertTags INSERT ... ON CONFLICT(name) DO NOTHING 后按名称回查
func upsertTags(db *gorm.DB, names []string) ([]model.Tag, error) {
	if len(names) == 0 {
		return []model.Tag{}, nil
	}

	rows := make([]model.Tag, len(names))
	for i, name := range names {
		rows[i] = model.Tag{Name: name}
	}
	err := db.Omit("Requirements").
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&rows).Error
	if err != nil {
		return nil, dbError("创建标签失败", err)
	}

	var tags []model.Tag
	if err := db.Where("name IN ?", names).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, dbError("查询标签失败", err)
	}
	return tags, nil
}
