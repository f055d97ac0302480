package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"testhub/internal/model"
)

type PreferenceRepository interface {
	FindByUserID(userID int64) (*model.UserPreference, error)
	// Upsert 每个用户一行, 已存在时覆盖主题
	Upsert(pref *model.UserPreference) error
}

type preferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) FindByUserID(userID int64) (*model.UserPreference, error) {
	var pref model.UserPreference
	if err := r.db.Where("user_id = ?", userID).First(&pref).Error; err != nil {
		return nil, findError("Preference", "查询用户偏好失败", err)
	}
	return &pref, nil
}

func (r *preferenceRepository) Upsert(pref *model.UserPreference) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"theme", "updated_at"}),
	}).Create(pref).Error
	if err != nil {
		return dbError("保存用户偏好失败", err)
	}
	return nil
}
