package admin

import (
	"github.com/pawhaven/internal/http/handlers/shared"
	"github.com/pawhaven/internal/http/response"
	"github.com/pawhaven/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return shared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	shared.RespondError(c, code, key, err)
}

func respondMapped(c *gin.Context, err error, rules []shared.MappedError, fallbackKey string) {
	shared.RespondMappedError(c, err, rules, response.CodeInternal, fallbackKey)
}

var adminAuthErrorRules = []shared.MappedError{
	{Target: service.ErrInvalidCredential, Code: response.CodeUnauthorized, Key: "error.admin_login_failed"},
	{Target: service.ErrInvalidPassword, Code: response.CodeBadRequest, Key: "error.password_old_invalid"},
	{Target: service.ErrWeakPassword, Code: response.CodeBadRequest, Key: "error.password_weak"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.not_found"},
}

var catalogErrorRules = shared.ConcatMappedErrors([]shared.MappedError{
	{Target: service.ErrCollectionNotFound, Code: response.CodeNotFound, Key: "error.collection_not_found"},
	{Target: service.ErrCollectionExists, Code: response.CodeBadRequest, Key: "error.collection_exists"},
}, shared.CommonErrorRules)

var orderErrorRules = shared.ConcatMappedErrors([]shared.MappedError{
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrOrderStatusInvalid, Code: response.CodeBadRequest, Key: "error.order_status_invalid"},
	{Target: service.ErrPaymentStatusInvalid, Code: response.CodeBadRequest, Key: "error.payment_status_invalid"},
	{Target: service.ErrOrderStatusTransition, Code: response.CodeBadRequest, Key: "error.bad_request"},
}, shared.CommonErrorRules)

var bookingErrorRules = shared.ConcatMappedErrors([]shared.MappedError{
	{Target: service.ErrBookingNotFound, Code: response.CodeNotFound, Key: "error.booking_not_found"},
	{Target: service.ErrBookingStatus, Code: response.CodeBadRequest, Key: "error.booking_status_invalid"},
}, shared.CommonErrorRules)

var dashboardErrorRules = []shared.MappedError{
	{Target: service.ErrDashboardRangeInvalid, Code: response.CodeBadRequest, Key: "error.dashboard_range_invalid"},
}
