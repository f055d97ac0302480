package dto

import "time"

// LoginRequest 登录请求, login 可以是用户名或邮箱
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest 凭邀请码注册
type RegisterRequest struct {
	InvitationCode string `json:"invitation_code" binding:"required"`
	Email          string `json:"email"`
	Password       string `json:"password" binding:"required,min=8,max=72"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
}

// LoginResponse 登录响应, token 同时写入 HttpOnly Cookie
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *UserInfo `json:"user"`
}

// UserInfo 当前用户信息
type UserInfo struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Status    string `json:"status"`
}

// InvitationResponse 邀请码
type InvitationResponse struct {
	ID        int64      `json:"id"`
	Code      string     `json:"code"`
	State     string     `json:"state"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedBy *UserBrief `json:"created_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// InvitationValidateResponse 邀请码校验结果
type InvitationValidateResponse struct {
	Valid bool `json:"valid"`
}
