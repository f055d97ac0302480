package validation

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"testhub/pkg/constants"
)

// RequirementFields 需求可校验字段
type RequirementFields struct {
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
	Priority    string `json:"priority" validate:"notblank,enum=priority"`
	Status      string `json:"status" validate:"notblank,enum=status"`
	Category    string `json:"category" validate:"notblank"`
}

// TestCaseFields 测试用例可校验字段
type TestCaseFields struct {
	Title            string `json:"title" validate:"notblank"`
	Description      string `json:"description" validate:"notblank"`
	Priority         string `json:"priority" validate:"notblank,enum=priority"`
	Status           string `json:"status" validate:"notblank,enum=status"`
	Type             string `json:"type" validate:"notblank,enum=test_type"`
	AutomationStatus string `json:"automation_status" validate:"omitempty,enum=automation_status"`
}

// TestRunFields 测试执行可校验字段, 日期保留原始字符串以便报告格式错误
type TestRunFields struct {
	Name      string `json:"name" validate:"notblank"`
	StartDate string `json:"start_date" validate:"notblank"`
	Status    string `json:"status" validate:"notblank,enum=test_run_status"`
	EndDate   string `json:"end_date"`
}

// UserFields 用户可校验字段
type UserFields struct {
	Username  string `json:"username" validate:"notblank"`
	Email     string `json:"email" validate:"notblank,email_shape"`
	FirstName string `json:"first_name" validate:"notblank"`
	LastName  string `json:"last_name" validate:"notblank"`
	Role      string `json:"role" validate:"notblank,enum=role"`
}

// CommentFields 评论可校验字段
type CommentFields struct {
	Text string `json:"text" label:"Comment text" validate:"notblank,max=1000"`
}

// TagFields 标签可校验字段
type TagFields struct {
	Name        string `json:"name" label:"Tag name" validate:"notblank,max=50"`
	Description string `json:"description" label:"Tag description" validate:"max=200"`
}

// TestResultFields 测试结果可校验字段
type TestResultFields struct {
	Status string `json:"status" validate:"notblank,enum=result_status"`
}

func ValidateRequirement(f RequirementFields) Result {
	return result(check(f))
}

func ValidateTestCase(f TestCaseFields) Result {
	return result(check(f))
}

func ValidateUser(f UserFields) Result {
	return result(check(f))
}

func ValidateComment(f CommentFields) Result {
	return result(check(f))
}

func ValidateTag(f TagFields) Result {
	return result(check(f))
}

func ValidateTestResult(f TestResultFields) Result {
	return result(check(f))
}

// ValidateTestRun 字段校验之后追加日期校验
// 起止日期各自需可解析; 两者都可解析时结束日期不得早于开始日期
func ValidateTestRun(f TestRunFields) Result {
	errs := check(f)

	var start, end time.Time
	var startOK, endOK bool
	// 空白日期已由必填校验报告
	if strings.TrimSpace(f.StartDate) != "" {
		start, startOK = ParseDate(f.StartDate)
		if !startOK {
			errs = append(errs, "Invalid start date format")
		}
	}
	if strings.TrimSpace(f.EndDate) != "" {
		end, endOK = ParseDate(f.EndDate)
		if !endOK {
			errs = append(errs, "Invalid end date format")
		}
	}
	if startOK && endOK && start.After(end) {
		errs = append(errs, "End date must be after start date")
	}
	return result(errs)
}

// ValidateAttachment 先校验大小再校验类型, 只返回第一条错误
func ValidateAttachment(size int64, mimeType string) AttachmentResult {
	if size > constants.MaxAttachmentSize {
		return AttachmentResult{Valid: false, Error: "File size must be less than 5MB"}
	}
	if !lo.Contains(constants.AllowedAttachmentTypes, mimeType) {
		return AttachmentResult{Valid: false, Error: "File type not supported"}
	}
	return AttachmentResult{Valid: true}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate 解析前端可能传入的日期格式
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
