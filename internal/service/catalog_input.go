package service

import (
	"strings"

	"github.com/pawhaven/internal/models"
)

// matchEnum 大小写不敏感匹配，返回规范写法
func matchEnum(raw string, allowed ...string) (string, bool) {
	v := strings.TrimSpace(raw)
	for _, item := range allowed {
		if strings.EqualFold(v, item) {
			return item, true
		}
	}
	return "", false
}

func normalizeImages(images []string) models.StringArray {
	out := make(models.StringArray, 0, len(images))
	for _, img := range images {
		if v := strings.TrimSpace(img); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func validatePrice(price models.Money, field string) error {
	if price.IsNegative() {
		return newValidationError(ErrInvalidInput, field)
	}
	return nil
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
