package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	LocaleRU = "ru-RU"
	LocaleEN = "en-US"

	// DefaultLocale 默认语言
	DefaultLocale = LocaleRU

	headerLocale = "X-Locale"
)

var defaultLocale = DefaultLocale

// supported 与 matcher 的下标一一对应
var (
	supported = []string{LocaleRU, LocaleEN}
	matcher   = language.NewMatcher([]language.Tag{
		language.MustParse(LocaleRU),
		language.MustParse(LocaleEN),
	})
)

// match 返回最匹配的受支持语言，完全无法匹配时 ok 为 false
func match(tags ...language.Tag) (string, bool) {
	if len(tags) == 0 {
		return "", false
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return "", false
	}
	return supported[index], true
}

// SetDefaultLocale 设置无法识别请求语言时使用的默认语言
func SetDefaultLocale(locale string) {
	if normalized, ok := NormalizeLocale(locale); ok {
		defaultLocale = normalized
	}
}

// Default 返回当前默认语言
func Default() string {
	return defaultLocale
}

// ResolveLocale 优先取 X-Locale，其次按 Accept-Language 的 q 值协商
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return defaultLocale
	}
	if locale, ok := NormalizeLocale(c.GetHeader(headerLocale)); ok {
		return locale
	}
	tags, _, err := language.ParseAcceptLanguage(c.GetHeader("Accept-Language"))
	if err != nil {
		return defaultLocale
	}
	if locale, ok := match(tags...); ok {
		return locale
	}
	return defaultLocale
}

// NormalizeLocale 将 ru / ru_RU / en-GB 等写法归到受支持的语言
func NormalizeLocale(raw string) (string, bool) {
	value := strings.ReplaceAll(strings.TrimSpace(raw), "_", "-")
	if value == "" {
		return "", false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return "", false
	}
	return match(tag)
}

// T 返回指定语言的文案，缺失时回退到默认语言，再回退到 key 本身
func T(locale, key string) string {
	if normalized, ok := NormalizeLocale(locale); ok {
		if msg, ok := messages[normalized][key]; ok {
			return msg
		}
	}
	if msg, ok := messages[defaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 格式化文案
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
