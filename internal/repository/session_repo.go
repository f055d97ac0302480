package repository

import (
	"time"

	"gorm.io/gorm"

	"testhub/internal/model"
)

type SessionRepository interface {
	Create(session *model.Session) error
	FindByID(id string) (*model.Session, error)
	Delete(id string) error
	DeleteByUserID(userID int64) error
	// DeleteExpired 清理过期会话, 返回删除条数
	DeleteExpired(now time.Time) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.Session) error {
	if err := r.db.Omit("User").Create(session).Error; err != nil {
		return dbError("创建会话失败", err)
	}
	return nil
}

func (r *sessionRepository) FindByID(id string) (*model.Session, error) {
	var session model.Session
	if err := r.db.Where("id = ?", id).First(&session).Error; err != nil {
		return nil, findError(EntitySession, "查询会话失败", err)
	}
	return &session, nil
}

func (r *sessionRepository) Delete(id string) error {
	if err := r.db.Where("id = ?", id).Delete(&model.Session{}).Error; err != nil {
		return dbError("删除会话失败", err)
	}
	return nil
}

func (r *sessionRepository) DeleteByUserID(userID int64) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&model.Session{}).Error; err != nil {
		return dbError("删除用户会话失败", err)
	}
	return nil
}

func (r *sessionRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.Where("expires_at <= ?", now).Delete(&model.Session{})
	if result.Error != nil {
		return 0, dbError("清理过期会话失败", result.Error)
	}
	return result.RowsAffected, nil
}
