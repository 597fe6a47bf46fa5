package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pawhaven/internal/cache"
	"github.com/pawhaven/internal/repository"
)

const (
	dashboardCacheTTL         = 45 * time.Second
	dashboardCustomMaxDays    = 90
	dashboardLowStockLimit    = 5
	dashboardTopItemsLimit    = 5
	dashboardPendingThreshold = 10
)

// DashboardService 后台仪表盘服务
// 说明：聚合后台首页经营数据，结果短时缓存。
type DashboardService struct {
	repo  repository.DashboardRepository
	cache *cache.Store
	now   func() time.Time
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(repo repository.DashboardRepository, store *cache.Store) *DashboardService {
	return &DashboardService{repo: repo, cache: store, now: time.Now}
}

// DashboardQueryInput 仪表盘查询输入
type DashboardQueryInput struct {
	Range        string
	From         *time.Time
	To           *time.Time
	Timezone     string
	ForceRefresh bool
}

// DashboardOverviewResponse 仪表盘总览
type DashboardOverviewResponse struct {
	Range    string               `json:"range"`
	From     string               `json:"from"`
	To       string               `json:"to"`
	Timezone string               `json:"timezone"`
	KPI      DashboardKPI         `json:"kpi"`
	Alerts   []DashboardAlertItem `json:"alerts"`
}

// DashboardKPI 核心指标
type DashboardKPI struct {
	OrdersTotal        int64  `json:"orders_total"`
	PendingOrders      int64  `json:"pending_orders"`
	ProcessingOrders   int64  `json:"processing_orders"`
	ShippedOrders      int64  `json:"shipped_orders"`
	DeliveredOrders    int64  `json:"delivered_orders"`
	CancelledOrders    int64  `json:"cancelled_orders"`
	PaidOrders         int64  `json:"paid_orders"`
	RevenuePaid        string `json:"revenue_paid"`
	NewUsers           int64  `json:"new_users"`
	PendingBookings    int64  `json:"pending_bookings"`
	ActiveProducts     int64  `json:"active_products"`
	OutOfStockProducts int64  `json:"out_of_stock_products"`
	LowStockProducts   int64  `json:"low_stock_products"`
	AvailablePuppies   int64  `json:"available_puppies"`
	ActiveServices     int64  `json:"active_services"`
}

// DashboardAlertItem 告警项
type DashboardAlertItem struct {
	Type  string `json:"type"`
	Level string `json:"level"`
	Value int64  `json:"value"`
}

// DashboardTrendResponse 趋势
type DashboardTrendResponse struct {
	Range    string                `json:"range"`
	From     string                `json:"from"`
	To       string                `json:"to"`
	Timezone string                `json:"timezone"`
	Points   []DashboardTrendPoint `json:"points"`
}

// DashboardTrendPoint 趋势点
type DashboardTrendPoint struct {
	Date   string `json:"date"`
	Orders int64  `json:"orders"`
	Amount string `json:"amount"`
}

// DashboardRankingsResponse 排行榜
type DashboardRankingsResponse struct {
	Range    string                 `json:"range"`
	From     string                 `json:"from"`
	To       string                 `json:"to"`
	Timezone string                 `json:"timezone"`
	TopItems []DashboardItemRanking `json:"top_items"`
}

// DashboardItemRanking 排行项
type DashboardItemRanking struct {
	ItemType string `json:"item_type"`
	ItemID   uint   `json:"item_id"`
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	Amount   string `json:"amount"`
}

type dashboardWindow struct {
	rangeKey string
	startAt  time.Time
	endAt    time.Time
	timezone string
}

func (w dashboardWindow) cacheKey(kind string) string {
	return fmt.Sprintf("dashboard:%s:%s:%d:%d:%s", kind, w.rangeKey, w.startAt.Unix(), w.endAt.Unix(), w.timezone)
}

// GetOverview 获取总览
func (s *DashboardService) GetOverview(ctx context.Context, input DashboardQueryInput) (*DashboardOverviewResponse, error) {
	window, err := resolveDashboardWindow(input, s.now())
	if err != nil {
		return nil, err
	}
	cacheKey := window.cacheKey("overview")
	if !input.ForceRefresh {
		var cached DashboardOverviewResponse
		if hit, cacheErr := s.cache.GetJSON(ctx, cacheKey, &cached); cacheErr == nil && hit {
			return &cached, nil
		}
	}

	overview, err := s.repo.GetOverview(window.startAt, window.endAt)
	if err != nil {
		return nil, err
	}
	stock, err := s.repo.GetStockStats(dashboardLowStockLimit)
	if err != nil {
		return nil, err
	}

	response := &DashboardOverviewResponse{
		Range:    window.rangeKey,
		From:     window.startAt.Format(time.RFC3339),
		To:       window.endAt.Add(-time.Second).Format(time.RFC3339),
		Timezone: window.timezone,
		KPI: DashboardKPI{
			OrdersTotal:        overview.OrdersTotal,
			PendingOrders:      overview.PendingOrders,
			ProcessingOrders:   overview.ProcessingOrders,
			ShippedOrders:      overview.ShippedOrders,
			DeliveredOrders:    overview.DeliveredOrders,
			CancelledOrders:    overview.CancelledOrders,
			PaidOrders:         overview.PaidOrders,
			RevenuePaid:        formatMoneyValue(overview.RevenuePaid),
			NewUsers:           overview.NewUsers,
			PendingBookings:    overview.PendingBookings,
			ActiveProducts:     stock.ActiveProducts,
			OutOfStockProducts: stock.OutOfStockProducts,
			LowStockProducts:   stock.LowStockProducts,
			AvailablePuppies:   stock.AvailablePuppies,
			ActiveServices:     stock.ActiveServices,
		},
		Alerts: buildDashboardAlerts(overview, stock),
	}
	_ = s.cache.SetJSON(ctx, cacheKey, response, dashboardCacheTTL)
	return response, nil
}

// GetTrends 获取按天趋势，无数据的日期补零
func (s *DashboardService) GetTrends(ctx context.Context, input DashboardQueryInput) (*DashboardTrendResponse, error) {
	window, err := resolveDashboardWindow(input, s.now())
	if err != nil {
		return nil, err
	}
	cacheKey := window.cacheKey("trends")
	if !input.ForceRefresh {
		var cached DashboardTrendResponse
		if hit, cacheErr := s.cache.GetJSON(ctx, cacheKey, &cached); cacheErr == nil && hit {
			return &cached, nil
		}
	}

	rows, err := s.repo.GetOrderTrends(window.startAt, window.endAt)
	if err != nil {
		return nil, err
	}
	byDay := make(map[string]repository.DashboardOrderTrendRow, len(rows))
	for _, row := range rows {
		byDay[row.Day] = row
	}
	points := make([]DashboardTrendPoint, 0)
	start := window.startAt
	for cursor := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()); cursor.Before(window.endAt); cursor = cursor.AddDate(0, 0, 1) {
		day := cursor.Format("2006-01-02")
		row := byDay[day]
		points = append(points, DashboardTrendPoint{Date: day, Orders: row.Orders, Amount: formatMoneyValue(row.Amount)})
	}

	response := &DashboardTrendResponse{
		Range:    window.rangeKey,
		From:     window.startAt.Format(time.RFC3339),
		To:       window.endAt.Add(-time.Second).Format(time.RFC3339),
		Timezone: window.timezone,
		Points:   points,
	}
	_ = s.cache.SetJSON(ctx, cacheKey, response, dashboardCacheTTL)
	return response, nil
}

// GetRankings 获取热销排行
func (s *DashboardService) GetRankings(ctx context.Context, input DashboardQueryInput) (*DashboardRankingsResponse, error) {
	window, err := resolveDashboardWindow(input, s.now())
	if err != nil {
		return nil, err
	}
	cacheKey := window.cacheKey("rankings")
	if !input.ForceRefresh {
		var cached DashboardRankingsResponse
		if hit, cacheErr := s.cache.GetJSON(ctx, cacheKey, &cached); cacheErr == nil && hit {
			return &cached, nil
		}
	}

	rows, err := s.repo.GetTopItems(window.startAt, window.endAt, dashboardTopItemsLimit)
	if err != nil {
		return nil, err
	}
	items := make([]DashboardItemRanking, 0, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(row.ItemName)
		if name == "" {
			name = "-"
		}
		items = append(items, DashboardItemRanking{
			ItemType: row.ItemType,
			ItemID:   row.ItemID,
			Name:     name,
			Quantity: row.Quantity,
			Amount:   formatMoneyValue(row.Amount),
		})
	}
	response := &DashboardRankingsResponse{
		Range:    window.rangeKey,
		From:     window.startAt.Format(time.RFC3339),
		To:       window.endAt.Add(-time.Second).Format(time.RFC3339),
		Timezone: window.timezone,
		TopItems: items,
	}
	_ = s.cache.SetJSON(ctx, cacheKey, response, dashboardCacheTTL)
	return response, nil
}

func resolveDashboardWindow(input DashboardQueryInput, now time.Time) (dashboardWindow, error) {
	rangeKey := strings.ToLower(strings.TrimSpace(input.Range))
	if rangeKey == "" {
		rangeKey = "7d"
	}

	timezone := strings.TrimSpace(input.Timezone)
	location := time.UTC
	if timezone != "" {
		if parsed, err := time.LoadLocation(timezone); err == nil {
			location = parsed
		} else {
			timezone = ""
		}
	}
	if timezone == "" {
		timezone = location.String()
	}

	localNow := now.In(location)
	todayStart := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, location)
	window := dashboardWindow{rangeKey: rangeKey, timezone: timezone}

	switch rangeKey {
	case "today":
		window.startAt = todayStart
		window.endAt = todayStart.AddDate(0, 0, 1)
	case "7d":
		window.startAt = todayStart.AddDate(0, 0, -6)
		window.endAt = todayStart.AddDate(0, 0, 1)
	case "30d":
		window.startAt = todayStart.AddDate(0, 0, -29)
		window.endAt = todayStart.AddDate(0, 0, 1)
	case "custom":
		if input.From == nil || input.To == nil {
			return dashboardWindow{}, ErrDashboardRangeInvalid
		}
		startAt := input.From.In(location)
		endAt := input.To.In(location)
		if endAt.Before(startAt) || endAt.Sub(startAt) > time.Hour*24*dashboardCustomMaxDays {
			return dashboardWindow{}, ErrDashboardRangeInvalid
		}
		window.startAt = startAt
		window.endAt = endAt.Add(time.Second)
	default:
		return dashboardWindow{}, ErrDashboardRangeInvalid
	}
	return window, nil
}

func formatMoneyValue(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func buildDashboardAlerts(overview repository.DashboardOverviewRow, stock repository.DashboardStockStatsRow) []DashboardAlertItem {
	alerts := make([]DashboardAlertItem, 0, 3)
	if stock.OutOfStockProducts > 0 {
		alerts = append(alerts, DashboardAlertItem{Type: "out_of_stock_products", Level: "error", Value: stock.OutOfStockProducts})
	}
	if stock.LowStockProducts > 0 {
		alerts = append(alerts, DashboardAlertItem{Type: "low_stock_products", Level: "warning", Value: stock.LowStockProducts})
	}
	if overview.PendingOrders >= dashboardPendingThreshold {
		alerts = append(alerts, DashboardAlertItem{Type: "pending_orders", Level: "warning", Value: overview.PendingOrders})
	}
	return alerts
}
