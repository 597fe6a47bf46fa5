package service

import (
	"strings"
	"unicode"
)

// slugify 生成小写、短横线分隔的 URL key，非字母数字字符全部丢弃
func slugify(name string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r == '&':
			if b.Len() > 0 {
				b.WriteString("-and")
				pendingDash = true
			}
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			pendingDash = true
		}
	}
	return b.String()
}
