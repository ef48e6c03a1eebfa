package service

import (
	"strings"
	"unicode"

	"github.com/foodgram-next/internal/config"
)

// PasswordPolicyError 密码不满足策略，Key/Args 用于本地化提示
type PasswordPolicyError struct {
	key  string
	args []interface{}
}

func (e *PasswordPolicyError) Error() string { return "weak password: " + e.key }

func (e *PasswordPolicyError) Is(target error) bool { return target == ErrWeakPassword }

func (e *PasswordPolicyError) Key() string { return e.key }

func (e *PasswordPolicyError) Args() []interface{} { return e.args }

func weakPassword(key string, args ...interface{}) error {
	return &PasswordPolicyError{key: key, args: args}
}

type charClasses struct {
	upper, lower, digit, special bool
}

func classify(password string) charClasses {
	var cc charClasses
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			cc.upper = true
		case unicode.IsLower(r):
			cc.lower = true
		case unicode.IsDigit(r):
			cc.digit = true
		default:
			cc.special = true
		}
	}
	return cc
}

// validatePassword 按配置依次检查，返回第一条不满足的规则
// personal 为用户名、邮箱等不应出现在密码中的信息
func validatePassword(policy config.PasswordPolicyConfig, password string, personal ...string) error {
	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return weakPassword("error.password_min_length", policy.MinLength)
	}

	cc := classify(password)
	checks := []struct {
		enabled bool
		ok      bool
		key     string
	}{
		{policy.RequireUpper, cc.upper, "error.password_require_upper"},
		{policy.RequireLower, cc.lower, "error.password_require_lower"},
		{policy.RequireNumber, cc.digit, "error.password_require_number"},
		{policy.RequireSpecial, cc.special, "error.password_require_special"},
		{policy.RejectNumeric, password == "" || cc.upper || cc.lower || cc.special, "error.password_numeric"},
		{policy.RejectPersonal, !containsPersonal(password, personal), "error.password_personal"},
	}
	for _, check := range checks {
		if check.enabled && !check.ok {
			return weakPassword(check.key)
		}
	}
	return nil
}

// containsPersonal 密码包含用户名或邮箱本地部分（不少于 3 个字符，忽略大小写）
func containsPersonal(password string, personal []string) bool {
	lowered := strings.ToLower(password)
	for _, item := range personal {
		item = strings.ToLower(strings.TrimSpace(item))
		if at := strings.IndexByte(item, '@'); at >= 0 {
			item = item[:at]
		}
		if len([]rune(item)) >= 3 && strings.Contains(lowered, item) {
			return true
		}
	}
	return false
}
