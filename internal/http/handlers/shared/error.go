package shared

import (
	"errors"
	"strings"

	"github.com/pawhaven/internal/constants"
	"github.com/pawhaven/internal/http/response"
	"github.com/pawhaven/internal/i18n"
	"github.com/pawhaven/internal/logger"
	"github.com/pawhaven/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	RespondErrorWithMsg(c, code, i18n.T(locale, key), err)
}

// RespondErrorWithMsg 返回自定义消息错误响应，并在有原始错误时记录日志。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// MappedError 定义业务错误到接口错误响应的映射关系。
type MappedError struct {
	Target error
	Code   int
	Key    string
}

// localizedError 自带 i18n key 的业务错误
type localizedError interface {
	Key() string
	Args() []interface{}
}

// RespondMappedError 依次匹配规则；未命中时按 fallback 返回并记录原始错误。
func RespondMappedError(c *gin.Context, err error, rules []MappedError, fallbackCode int, fallbackKey string) {
	locale := i18n.ResolveLocale(c)

	var unavailable *service.ItemUnavailableError
	if errors.As(err, &unavailable) {
		msg := i18n.T(locale, "error.item_unavailable")
		if unavailable.ItemType == constants.ItemTypePuppy && unavailable.Name != "" {
			msg = i18n.Sprintf(locale, "error.puppy_sold", unavailable.Name)
		}
		response.ErrorWithData(c, response.CodeBadRequest, msg, gin.H{
			"item_type": unavailable.ItemType,
			"item_id":   unavailable.ItemID,
		})
		return
	}
	var localized localizedError
	if errors.As(err, &localized) {
		response.Error(c, response.CodeBadRequest, i18n.Sprintf(locale, localized.Key(), localized.Args()...))
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			response.Error(c, rule.Code, i18n.T(locale, rule.Key))
			return
		}
	}
	var validation *service.ValidationError
	if errors.As(err, &validation) {
		if len(validation.Fields) == 0 {
			response.Error(c, response.CodeBadRequest, i18n.T(locale, "error.bad_request"))
			return
		}
		msg := i18n.Sprintf(locale, "error.validation_fields", strings.Join(validation.Fields, ", "))
		response.ErrorWithData(c, response.CodeBadRequest, msg, gin.H{"fields": validation.Fields})
		return
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// ConcatMappedErrors 合并多组映射规则。
func ConcatMappedErrors(groups ...[]MappedError) []MappedError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]MappedError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// CommonErrorRules 各接口共用的目录对象错误
var CommonErrorRules = []MappedError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrServiceNotFound, Code: response.CodeNotFound, Key: "error.service_not_found"},
	{Target: service.ErrPuppyNotFound, Code: response.CodeNotFound, Key: "error.puppy_not_found"},
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.not_found"},
}
