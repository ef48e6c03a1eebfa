// Package validation 注册请求绑定使用的自定义校验规则。
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/foodgram-next/internal/constants"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

	registerOnce sync.Once
	registerErr  error
)

// Register 将自定义规则注册到 gin 的绑定校验器，仅执行一次
func Register() error {
	registerOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin binding validator is not go-playground/validator")
			return
		}
		engine.RegisterTagNameFunc(jsonFieldName)
		registerErr = registerRules(engine)
	})
	return registerErr
}

func registerRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"username":         validateUsername,
		"measurement_unit": validateMeasurementUnit,
		"slug":             validateSlug,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// jsonFieldName 校验错误使用 JSON 字段名，与请求体一致
func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

func validateUsername(fl validator.FieldLevel) bool {
	return IsUsername(fl.Field().String())
}

func validateMeasurementUnit(fl validator.FieldLevel) bool {
	return IsMeasurementUnit(fl.Field().String())
}

func validateSlug(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}

// IsUsername 用户名仅允许字母、数字与 .@+-_
func IsUsername(value string) bool {
	return usernamePattern.MatchString(value)
}

// IsMeasurementUnit 判断是否为白名单内的计量单位
func IsMeasurementUnit(value string) bool {
	value = strings.TrimSpace(value)
	for _, unit := range constants.MeasurementUnits {
		if unit == value {
			return true
		}
	}
	return false
}
