package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	LocaleEN = "en"
	LocaleZH = "zh-CN"
	LocaleTW = "zh-TW"

	DefaultLocale = LocaleEN
)

// ResolveLocale 依次从 lang 参数、X-Locale、Accept-Language 解析语言
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if v := NormalizeLocale(c.Query("lang")); v != "" {
		return v
	}
	if v := NormalizeLocale(c.GetHeader("X-Locale")); v != "" {
		return v
	}
	accept := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(accept, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if v := NormalizeLocale(tag); v != "" {
			return v
		}
	}
	return DefaultLocale
}

// NormalizeLocale 归一化语言标识，不支持时返回空串
func NormalizeLocale(raw string) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case v == "":
		return ""
	case v == "zh-tw" || v == "zh-hk" || v == "zh-hant":
		return LocaleTW
	case v == "zh" || strings.HasPrefix(v, "zh-"):
		return LocaleZH
	case v == "en" || strings.HasPrefix(v, "en-"):
		return LocaleEN
	default:
		return ""
	}
}

// T 查找翻译，缺失时回退英文，再缺失返回 key
func T(locale, key string) string {
	if table, ok := catalogs[locale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if locale == LocaleTW {
		if msg, ok := catalogs[LocaleZH][key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译后格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
