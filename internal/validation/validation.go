// Package validation 实体字段校验
//
// 每类实体对应一个固定签名的校验函数, 一次收集全部错误后返回, 不做短路.
// 校验不修改入参, 也不访问存储.
package validation

import (
	stdErrors "errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/samber/lo"

	"testhub/pkg/constants"
)

// Result 校验结果
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// AttachmentResult 附件校验结果, 只有单条错误
type AttachmentResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// enumSets enum=<name> 标签对应的取值集合
var enumSets = map[string][]string{
	"priority":          constants.Priorities,
	"status":            constants.Statuses,
	"test_type":         constants.TestTypes,
	"automation_status": constants.AutomationStatuses,
	"test_run_status":   constants.TestRunStatuses,
	"result_status":     constants.ResultStatuses,
	"role":              constants.Roles,
	"user_status":       constants.UserStatuses,
	"theme":             constants.Themes,
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// 错误信息中的字段名: label 优先, 其次 json 名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "notblank", validators.NotBlank)
	mustRegister(v, "enum", func(fl validator.FieldLevel) bool {
		set, ok := enumSets[fl.Param()]
		if !ok {
			return false
		}
		return lo.Contains(set, fl.Field().String())
	})
	mustRegister(v, "email_shape", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

// IsEnumValue 判断取值是否属于枚举集合
func IsEnumValue(name, value string) bool {
	return lo.Contains(enumSets[name], value)
}

// EnumError 与结构体校验相同格式的枚举错误信息
func EnumError(field, name string) string {
	return fmt.Sprintf("Invalid %s. Must be one of: %s", field, strings.Join(enumSets[name], ", "))
}

// check 执行结构体校验; 必填错误在前, 其余错误按字段顺序在后
func check(fields interface{}) []string {
	err := validate.Struct(fields)
	if err == nil {
		return []string{}
	}

	var fieldErrors validator.ValidationErrors
	if !stdErrors.As(err, &fieldErrors) {
		return []string{err.Error()}
	}

	required := make([]string, 0, len(fieldErrors))
	others := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		if fe.Tag() == "notblank" || fe.Tag() == "required" {
			required = append(required, fmt.Sprintf("%s is required", fe.Field()))
			continue
		}
		others = append(others, message(fe))
	}
	return append(required, others...)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "enum":
		return EnumError(fe.Field(), fe.Param())
	case "email_shape":
		return "Invalid email format"
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func result(errs []string) Result {
	return Result{Valid: len(errs) == 0, Errors: errs}
}
