package repository

import (
	"gorm.io/gorm"

	"testhub/internal/model"
	pkgErrors "testhub/pkg/errors"
)

type CommentRepository interface {
	Create(comment *model.Comment) error
	FindByID(id int64) (*model.Comment, error)
	// ListByRequirement 最新的评论在前
	ListByRequirement(requirementID int64) ([]*model.Comment, error)
	UpdateText(id int64, text string) error
	Delete(id int64) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	if err := mustExist(r.db, &model.Requirement{}, comment.RequirementID, EntityRequirement); err != nil {
		return err
	}
	if err := r.db.Omit("Author", "Requirement").Create(comment).Error; err != nil {
		return dbError("创建评论失败", err)
	}
	return nil
}

func (r *commentRepository) FindByID(id int64) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.Preload("Author").First(&comment, id).Error; err != nil {
		return nil, findError(EntityComment, "查询评论失败", err)
	}
	return &comment, nil
}

func (r *commentRepository) ListByRequirement(requirementID int64) ([]*model.Comment, error) {
	if err := mustExist(r.db, &model.Requirement{}, requirementID, EntityRequirement); err != nil {
		return nil, err
	}
	var comments []*model.Comment
	err := r.db.Preload("Author").
		Where("requirement_id = ?", requirementID).
		Scopes(newestFirst).
		Find(&comments).Error
	if err != nil {
		return nil, dbError("查询评论列表失败", err)
	}
	return comments, nil
}

func (r *commentRepository) UpdateText(id int64, text string) error {
	result := r.db.Model(&model.Comment{}).Where("id = ?", id).Update("text", text)
	if result.Error != nil {
		return dbError("更新评论失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.NotFound(EntityComment)
	}
	return nil
}

func (r *commentRepository) Delete(id int64) error {
	result := r.db.Delete(&model.Comment{}, id)
	if result.Error != nil {
		return dbError("删除评论失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.NotFound(EntityComment)
	}
	return nil
}
