package constants

import "time"

// 优先级 (Requirement / TestCase)
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// 需求/用例状态
const (
	StatusDraft      = "Draft"
	StatusInReview   = "In Review"
	StatusApproved   = "Approved"
	StatusDeprecated = "Deprecated"
)

// 用例类型
const (
	TestTypeFunctional  = "Functional"
	TestTypeIntegration = "Integration"
	TestTypePerformance = "Performance"
	TestTypeSecurity    = "Security"
)

// 自动化状态
const (
	AutomationNotAutomated = "Not Automated"
	AutomationAutomated    = "Automated"
	AutomationInProgress   = "In Progress"
)

// 测试执行状态
const (
	TestRunNotStarted = "Not Started"
	TestRunInProgress = "In Progress"
	TestRunCompleted  = "Completed"
	TestRunAborted    = "Aborted"
)

// 测试结果
const (
	ResultPass    = "Pass"
	ResultFail    = "Fail"
	ResultPending = "Pending"
)

// 用户角色
const (
	RoleAdmin     = "Admin"
	RoleTester    = "Tester"
	RoleDeveloper = "Developer"
	RoleViewer    = "Viewer"
	RoleUser      = "User"
)

// 用户状态
const (
	UserStatusActive   = "Active"
	UserStatusDisabled = "Disabled"
)

// 界面主题
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// 枚举取值集合, 顺序即错误提示中的顺序
var (
	Priorities         = []string{PriorityHigh, PriorityMedium, PriorityLow}
	Statuses           = []string{StatusDraft, StatusInReview, StatusApproved, StatusDeprecated}
	TestTypes          = []string{TestTypeFunctional, TestTypeIntegration, TestTypePerformance, TestTypeSecurity}
	AutomationStatuses = []string{AutomationNotAutomated, AutomationAutomated, AutomationInProgress}
	TestRunStatuses    = []string{TestRunNotStarted, TestRunInProgress, TestRunCompleted, TestRunAborted}
	ResultStatuses     = []string{ResultPass, ResultFail, ResultPending}
	Roles              = []string{RoleAdmin, RoleTester, RoleDeveloper, RoleViewer, RoleUser}
	UserStatuses       = []string{UserStatusActive, UserStatusDisabled}
	Themes             = []string{ThemeLight, ThemeDark}
)

// 附件限制
const MaxAttachmentSize int64 = 5 * 1024 * 1024 // 5MB

var AllowedAttachmentTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/plain",
}

// 邀请码
const (
	InvitationTTL       = 7 * 24 * time.Hour
	InvitationCodeBytes = 16
)

// JWT / 会话相关
const (
	ContextUserKey    = "user"
	ContextSessionKey = "session_id"
	DefaultCookieName = "testhub_session"
)

// HTTP Header
const (
	HeaderAuthorization = "Authorization"
	HeaderBearerPrefix  = "Bearer "
)
