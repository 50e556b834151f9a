package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// 支持的语言
const (
	LocaleEN      = "en"
	LocaleZH      = "zh"
	LocaleAR      = "ar"
	DefaultLocale = LocaleEN
)

var supportedLocales = []string{LocaleEN, LocaleZH, LocaleAR}

// Supported 返回支持的语言列表
func Supported() []string {
	return append([]string(nil), supportedLocales...)
}

// Normalize 归一化语言标识，zh-CN/zh_TW 等都归为 zh，无法识别时返回空
func Normalize(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return ""
	}
	if idx := strings.IndexAny(value, "-_;,"); idx > 0 {
		value = value[:idx]
	}
	for _, locale := range supportedLocales {
		if value == locale {
			return locale
		}
	}
	return ""
}

// IsSupported 判断语言是否受支持
func IsSupported(raw string) bool {
	return Normalize(raw) != ""
}

// ResolveLocale 依次从 query、路径参数、X-Locale、Accept-Language 解析语言
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	candidates := []string{
		c.Query("locale"),
		c.Param("locale"),
		c.GetHeader("X-Locale"),
	}
	for _, candidate := range candidates {
		if locale := Normalize(candidate); locale != "" {
			return locale
		}
	}
	for _, part := range strings.Split(c.GetHeader("Accept-Language"), ",") {
		if locale := Normalize(part); locale != "" {
			return locale
		}
	}
	return DefaultLocale
}

// T 翻译消息 key，缺失时回退英文，再缺失返回 key 本身
func T(locale, key string) string {
	locale = Normalize(locale)
	if locale == "" {
		locale = DefaultLocale
	}
	if msg, ok := catalogs[locale][key]; ok {
		return msg
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
