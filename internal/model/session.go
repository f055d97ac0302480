package model

import "time"

const (
	SessionTableName    = "sessions"
	InvitationTableName = "invitations"
)

// Session 服务端会话, ID 写入 JWT 的 jti
type Session struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Session) TableName() string {
	return SessionTableName
}

// Expired 会话是否已过期
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Invitation 注册邀请码, 单次使用且有有效期
type Invitation struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string     `gorm:"size:64;not null;uniqueIndex" json:"code"`
	CreatedByID int64      `gorm:"not null;index" json:"created_by_id"`
	ExpiresAt   time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt      *time.Time `json:"used_at"`
	UsedByID    *int64     `json:"used_by_id,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`

	CreatedBy *User `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}

func (Invitation) TableName() string {
	return InvitationTableName
}

// InvitationState 由 UsedAt 与当前时间推导, 不落库
type InvitationState string

const (
	InvitationUnused  InvitationState = "unused"
	InvitationUsed    InvitationState = "used"
	InvitationExpired InvitationState = "expired"
)

// State 邀请码当前状态; 已使用优先于已过期
func (i *Invitation) State(now time.Time) InvitationState {
	if i.UsedAt != nil {
		return InvitationUsed
	}
	if !now.Before(i.ExpiresAt) {
		return InvitationExpired
	}
	return InvitationUnused
}

// Usable 当前是否可用于注册
func (i *Invitation) Usable(now time.Time) bool {
	return i.State(now) == InvitationUnused
}
