package utils

import (
	stdErrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"testhub/pkg/errors"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Detail  string      `json:"detail,omitempty"` // 详细错误信息（可选）
	Errors  []string    `json:"errors,omitempty"` // 字段校验错误列表
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    errors.CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应
// 业务错误码写入 response.code, HTTP 状态码按错误类别映射
func Error(c *gin.Context, err error) {
	var validationErr *errors.ValidationError
	if stdErrors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, Response{
			Code:    errors.CodeValidationError,
			Message: "数据验证失败",
			Errors:  validationErr.Errors,
		})
		return
	}

	var appErr *errors.AppError
	if stdErrors.As(err, &appErr) {
		c.JSON(HTTPStatus(appErr.Code), Response{
			Code:    appErr.Code,
			Message: appErr.Message,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, Response{
		Code:    errors.CodeInternalError,
		Message: "内部服务器错误",
	})
}

// ErrorWithCode 自定义错误响应
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(HTTPStatus(code), Response{
		Code:    code,
		Message: message,
	})
}

// ErrorWithDetail 带详细信息的错误响应
func ErrorWithDetail(c *gin.Context, code int, message, detail string) {
	c.JSON(HTTPStatus(code), Response{
		Code:    code,
		Message: message,
		Detail:  detail,
	})
}

// HTTPStatus 业务错误码 → HTTP 状态码
func HTTPStatus(code int) int {
	switch code {
	case errors.CodeBadRequest, errors.CodeValidationError:
		return http.StatusBadRequest
	case errors.CodeUnauthorized, errors.CodeAuthError:
		return http.StatusUnauthorized
	case errors.CodeForbidden:
		return http.StatusForbidden
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
