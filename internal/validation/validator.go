// Package validation 基于 go-playground/validator v10 的请求校验。
//
// 请求结构体用 binding 标签声明字段约束（和 gin 的 ShouldBind 共用同一套标签），
// 跨字段的规则通过实现 Validate() error 表达。ValidateStruct 先跑标签校验，
// 再调用 Validate，任何失败都会转换成 *util.BadRequestError。
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"freelance_hub_backend/internal/util"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validatable 需要跨字段校验的请求实现该接口
type Validatable interface {
	Validate() error
}

func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.SetTagName("binding")
		// 错误信息里使用 json 字段名
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// ValidateStruct 校验请求，失败时返回 *util.BadRequestError
func ValidateStruct(s interface{}) error {
	if err := GetValidator().Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return &util.BadRequestError{Message: err.Error()}
		}
		messages := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			messages = append(messages, translateError(fe))
		}
		return &util.BadRequestError{Message: strings.Join(messages, "; ")}
	}

	if v, ok := s.(Validatable); ok {
		if err := v.Validate(); err != nil {
			if util.IsBadRequest(err) {
				return err
			}
			return &util.BadRequestError{Message: err.Error()}
		}
	}
	return nil
}

var errorMessageTemplates = map[string]string{
	"required": "%s is required",
	"email":    "%s must be a valid email address",
	"uuid":     "%s must be a valid UUID",
	"url":      "%s must be a valid URL",
}

var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
	"min":   "%s must be at least %s",
	"max":   "%s must be at most %s",
}

func translateError(fe validator.FieldError) string {
	field := fe.Field()
	if template, ok := errorMessageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(template, field, fe.Param())
	}
	return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
}
