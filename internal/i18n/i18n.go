package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	LocaleES      = "es"
	LocaleEN      = "en"
	DefaultLocale = LocaleES
)

// LocaleHeader 前台显式指定语言的请求头
const LocaleHeader = "X-Locale"

// Normalize 归一化语言标识（es-VE -> es），未知语言返回空串
func Normalize(raw string) string {
	tag := strings.ToLower(strings.TrimSpace(raw))
	if idx := strings.IndexAny(tag, "-_;"); idx >= 0 {
		tag = tag[:idx]
	}
	if _, ok := messages[tag]; ok {
		return tag
	}
	return ""
}

// ResolveLocale 依次读取 ?lang、X-Locale、Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if locale := Normalize(c.Query("lang")); locale != "" {
		return locale
	}
	if locale := Normalize(c.GetHeader(LocaleHeader)); locale != "" {
		return locale
	}
	for _, part := range strings.Split(c.GetHeader("Accept-Language"), ",") {
		if locale := Normalize(part); locale != "" {
			return locale
		}
	}
	return DefaultLocale
}

// T 翻译；缺失时回退默认语言，再回退到 key 本身
func T(locale, key string) string {
	if table, ok := messages[Normalize(locale)]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 带参数的翻译
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
