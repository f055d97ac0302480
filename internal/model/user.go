package model

import "time"

const (
	UserTableName           = "users"
	UserPreferenceTableName = "user_preferences"
)

// User 用户
type User struct {
	BaseModel
	Username    string     `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email       string     `gorm:"size:100;not null;uniqueIndex" json:"email"`
	FirstName   string     `gorm:"size:100;not null" json:"first_name"`
	LastName    string     `gorm:"size:100;not null" json:"last_name"`
	Password    string     `gorm:"size:255;not null" json:"-"` // bcrypt 哈希, 不返回到前端
	Role        string     `gorm:"size:20;not null;default:User;index" json:"role"`
	Status      string     `gorm:"size:20;not null;default:Active" json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	Requirements []Requirement `gorm:"foreignKey:CreatedByID" json:"requirements,omitempty"`
	TestCases    []TestCase    `gorm:"foreignKey:CreatedByID" json:"test_cases,omitempty"`
	Comments     []Comment     `gorm:"foreignKey:AuthorID" json:"comments,omitempty"`
	TestRuns     []TestRun     `gorm:"many2many:test_run_executors;" json:"test_runs,omitempty"`
}

func (User) TableName() string {
	return UserTableName
}

// FullName 展示名
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool {
	return u.Role == "Admin"
}

// UserPreference 用户偏好, 每个用户一行
type UserPreference struct {
	BaseModel
	UserID int64  `gorm:"not null;uniqueIndex" json:"user_id"`
	Theme  string `gorm:"size:10;not null;default:light" json:"theme"`
}

func (UserPreference) TableName() string {
	return UserPreferenceTableName
}
