package shared

import (
	"github.com/pawhaven/internal/service"

	"github.com/gin-gonic/gin"
)

// RecordAuthEvent 补齐请求上下文后写入认证审计，失败只记日志
func RecordAuthEvent(c *gin.Context, recorder *service.AuthEventService, input service.AuthEventInput) {
	if recorder == nil {
		return
	}
	input.ClientIP = c.ClientIP()
	input.UserAgent = c.Request.UserAgent()
	if requestID, ok := c.Get("request_id"); ok {
		input.RequestID, _ = requestID.(string)
	}
	if err := recorder.Record(input); err != nil {
		RequestLog(c).Warnw("auth_event_record_failed", "event", input.Event, "actor_type", input.ActorType, "error", err)
	}
}
