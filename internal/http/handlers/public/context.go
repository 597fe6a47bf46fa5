package public

import (
	handlershared "github.com/pawhaven/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "user_id", "error.unauthorized", "error.context_invalid")
}

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondMapped(c *gin.Context, err error, rules []handlershared.MappedError, fallbackKey string) {
	handlershared.RespondMappedError(c, err, rules, 500, fallbackKey)
}
