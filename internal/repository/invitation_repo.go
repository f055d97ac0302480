package repository

import (
	"time"

	"gorm.io/gorm"

	"testhub/internal/model"
)

type InvitationRepository interface {
	Create(invitation *model.Invitation) error
	FindByCode(code string) (*model.Invitation, error)
	List() ([]*model.Invitation, error)
	// MarkUsed 仅当邀请码未使用且未过期时置为已使用, 返回是否成功
	MarkUsed(code string, userID int64, now time.Time) (bool, error)
	CountExpiredUnused(now time.Time) (int64, error)
}

type invitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Create(invitation *model.Invitation) error {
	if err := r.db.Omit("CreatedBy").Create(invitation).Error; err != nil {
		return writeError("invitation code already exists", "创建邀请码失败", err)
	}
	return nil
}

func (r *invitationRepository) FindByCode(code string) (*model.Invitation, error) {
	var invitation model.Invitation
	if err := r.db.Where("code = ?", code).First(&invitation).Error; err != nil {
		return nil, findError(EntityInvitation, "查询邀请码失败", err)
	}
	return &invitation, nil
}

func (r *invitationRepository) List() ([]*model.Invitation, error) {
	var invitations []*model.Invitation
	err := r.db.Preload("CreatedBy").Order("created_at DESC, id DESC").Find(&invitations).Error
	if err != nil {
		return nil, dbError("查询邀请码列表失败", err)
	}
	return invitations, nil
}

func (r *invitationRepository) MarkUsed(code string, userID int64, now time.Time) (bool, error) {
	result := r.db.Model(&model.Invitation{}).
		Where("code = ? AND used_at IS NULL AND expires_at > ?", code, now).
		Updates(map[string]interface{}{
			"used_at":    now,
			"used_by_id": userID,
		})
	if result.Error != nil {
		return false, dbError("使用邀请码失败", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *invitationRepository) CountExpiredUnused(now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Invitation{}).
		Where("used_at IS NULL AND expires_at <= ?", now).
		Count(&count).Error
	if err != nil {
		return 0, dbError("统计过期邀请码失败", err)
	}
	return count, nil
}
