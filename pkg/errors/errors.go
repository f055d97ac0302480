package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"
)

// 错误码
const (
	CodeSuccess         = 200
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeForbidden       = 403
	CodeNotFound        = 404
	CodeConflict        = 409
	CodeInternalError   = 500
	CodeDatabaseError   = 501
	CodeAuthError       = 502
	CodeValidationError = 503
)

// AppError 应用错误
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新错误
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFound 指定实体不存在
func NotFound(entity string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", entity))
}

// Conflict 唯一约束冲突, message 为面向字段的提示(例如 "email already exists")
func Conflict(message string) *AppError {
	return New(CodeConflict, message)
}

// ValidationError 字段校验失败, 一次性携带全部错误
type ValidationError struct {
	Entity string   `json:"entity"`
	Errors []string `json:"errors"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(e.Errors, ", "))
}

// NewValidationError 创建校验错误
func NewValidationError(entity string, errs ...string) *ValidationError {
	return &ValidationError{Entity: entity, Errors: errs}
}

// CodeOf 提取错误码, 非 AppError 返回 CodeInternalError
func CodeOf(err error) int {
	var validationErr *ValidationError
	if stdErrors.As(err, &validationErr) {
		return CodeValidationError
	}
	var appErr *AppError
	if stdErrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternalError
}

// IsNotFound 是否为记录不存在
func IsNotFound(err error) bool {
	return err != nil && CodeOf(err) == CodeNotFound
}

// IsConflict 是否为唯一约束冲突
func IsConflict(err error) bool {
	return err != nil && CodeOf(err) == CodeConflict
}

// IsValidation 是否为校验错误
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return stdErrors.As(err, &validationErr)
}

// 预定义错误
var (
	ErrBadRequest      = New(CodeBadRequest, "请求参数错误")
	ErrUnauthorized    = New(CodeUnauthorized, "未授权")
	ErrForbidden       = New(CodeForbidden, "禁止访问")
	ErrNotFound        = New(CodeNotFound, "资源不存在")
	ErrConflict        = New(CodeConflict, "资源冲突")
	ErrInternalError   = New(CodeInternalError, "内部服务器错误")
	ErrDatabaseError   = New(CodeDatabaseError, "数据库错误")
	ErrAuthError       = New(CodeAuthError, "认证失败")
	ErrValidationError = New(CodeValidationError, "数据验证失败")

	// 具体业务错误
	ErrInvalidCredentials = New(CodeAuthError, "用户名或密码错误")
	ErrUserNotFound       = New(CodeNotFound, "用户不存在")
	ErrUserDisabled       = New(CodeForbidden, "用户已禁用")
	ErrInvalidToken       = New(CodeUnauthorized, "无效的Token")
	ErrTokenExpired       = New(CodeUnauthorized, "Token已过期")
	ErrSessionExpired     = New(CodeUnauthorized, "会话已失效, 请重新登录")
	ErrRecordNotFound     = New(CodeNotFound, "记录不存在")
	ErrRecordExists       = New(CodeConflict, "记录已存在")
	ErrInvalidInvitation  = New(CodeBadRequest, "Invalid invitation code")
)
