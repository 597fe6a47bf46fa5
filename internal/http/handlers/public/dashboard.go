package public

import (
	"github.com/pawhaven/internal/http/handlers/shared"
	"github.com/pawhaven/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetUserDashboard 用户中心概览
func (h *Handler) GetUserDashboard(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	dashboard, err := h.UserDashboardService.Get(uid, shared.QueryInt(c, "page", 1), shared.QueryInt(c, "limit", 0))
	if err != nil {
		respondMapped(c, err, shared.CommonErrorRules, "error.internal")
		return
	}
	response.Success(c, dashboard)
}
