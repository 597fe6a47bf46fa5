package admin

import (
	"strings"

	"github.com/pawhaven/internal/http/handlers/shared"
	"github.com/pawhaven/internal/http/response"
	"github.com/pawhaven/internal/service"

	"github.com/gin-gonic/gin"
)

func parseDashboardQuery(c *gin.Context) (service.DashboardQueryInput, bool) {
	from, err := parseTimeValue(c.Query("from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.dashboard_range_invalid", nil)
		return service.DashboardQueryInput{}, false
	}
	to, err := parseTimeValue(c.Query("to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.dashboard_range_invalid", nil)
		return service.DashboardQueryInput{}, false
	}
	return service.DashboardQueryInput{
		Range:        strings.TrimSpace(c.Query("range")),
		From:         from,
		To:           to,
		Timezone:     strings.TrimSpace(c.Query("tz")),
		ForceRefresh: shared.QueryBool(c, "force_refresh"),
	}, true
}

// GetDashboardOverview 仪表盘总览
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	input, ok := parseDashboardQuery(c)
	if !ok {
		return
	}
	data, err := h.DashboardService.GetOverview(c.Request.Context(), input)
	if err != nil {
		respondMapped(c, err, dashboardErrorRules, "error.internal")
		return
	}
	response.Success(c, data)
}

// GetDashboardTrends 趋势
func (h *Handler) GetDashboardTrends(c *gin.Context) {
	input, ok := parseDashboardQuery(c)
	if !ok {
		return
	}
	data, err := h.DashboardService.GetTrends(c.Request.Context(), input)
	if err != nil {
		respondMapped(c, err, dashboardErrorRules, "error.internal")
		return
	}
	response.Success(c, data)
}

// GetDashboardRankings 排行
func (h *Handler) GetDashboardRankings(c *gin.Context) {
	input, ok := parseDashboardQuery(c)
	if !ok {
		return
	}
	data, err := h.DashboardService.GetRankings(c.Request.Context(), input)
	if err != nil {
		respondMapped(c, err, dashboardErrorRules, "error.internal")
		return
	}
	response.Success(c, data)
}
