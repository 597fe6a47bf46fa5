package repository

import (
	"time"

	"github.com/pawhaven/internal/constants"
	"github.com/pawhaven/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 后台仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error)
	GetOrderTrends(startAt, endAt time.Time) ([]DashboardOrderTrendRow, error)
	GetStockStats(lowStockThreshold int64) (DashboardStockStatsRow, error)
	GetTopItems(startAt, endAt time.Time, limit int) ([]DashboardItemRankingRow, error)
}

// DashboardOverviewRow 总览原始统计
type DashboardOverviewRow struct {
	OrdersTotal      int64
	PendingOrders    int64
	ProcessingOrders int64
	ShippedOrders    int64
	DeliveredOrders  int64
	CancelledOrders  int64
	PaidOrders       int64
	RevenuePaid      float64
	NewUsers         int64
	PendingBookings  int64
}

// DashboardOrderTrendRow 按天订单统计
type DashboardOrderTrendRow struct {
	Day    string
	Orders int64
	Amount float64
}

// DashboardStockStatsRow 库存统计
type DashboardStockStatsRow struct {
	ActiveProducts     int64
	OutOfStockProducts int64
	LowStockProducts   int64
	AvailablePuppies   int64
	ActiveServices     int64
}

// DashboardItemRankingRow 热销排行原始行
type DashboardItemRankingRow struct {
	ItemType string
	ItemID   uint
	ItemName string
	Quantity int64
	Amount   float64
}

// GormDashboardRepository GORM 仪表盘聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview 获取区间总览
func (r *GormDashboardRepository) GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error) {
	result := DashboardOverviewRow{}
	orderBase := func() *gorm.DB {
		return r.db.Model(&models.Order{}).Where("created_at >= ? AND created_at < ?", startAt, endAt)
	}

	if err := orderBase().Count(&result.OrdersTotal).Error; err != nil {
		return result, err
	}
	byStatus := []struct {
		status string
		target *int64
	}{
		{constants.OrderStatusPending, &result.PendingOrders},
		{constants.OrderStatusProcessing, &result.ProcessingOrders},
		{constants.OrderStatusShipped, &result.ShippedOrders},
		{constants.OrderStatusDelivered, &result.DeliveredOrders},
		{constants.OrderStatusCancelled, &result.CancelledOrders},
	}
	for _, row := range byStatus {
		if err := orderBase().Where("status = ?", row.status).Count(row.target).Error; err != nil {
			return result, err
		}
	}
	if err := orderBase().Where("payment_status = ?", constants.PaymentStatusPaid).Count(&result.PaidOrders).Error; err != nil {
		return result, err
	}
	if err := orderBase().
		Where("payment_status = ? AND status <> ?", constants.PaymentStatusPaid, constants.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&result.RevenuePaid).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.User{}).
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Count(&result.NewUsers).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Booking{}).
		Where("status = ?", constants.BookingStatusPending).
		Count(&result.PendingBookings).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetOrderTrends 按天聚合订单数与金额
func (r *GormDashboardRepository) GetOrderTrends(startAt, endAt time.Time) ([]DashboardOrderTrendRow, error) {
	dayExpr := "CAST(date(created_at) AS TEXT)"
	var rows []DashboardOrderTrendRow
	if err := r.db.Model(&models.Order{}).
		Select(dayExpr+" as day, COUNT(*) as orders, COALESCE(SUM(total_amount), 0) as amount").
		Where("created_at >= ? AND created_at < ? AND status <> ?", startAt, endAt, constants.OrderStatusCancelled).
		Group(dayExpr).
		Order("day asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetStockStats 目录库存统计
func (r *GormDashboardRepository) GetStockStats(lowStockThreshold int64) (DashboardStockStatsRow, error) {
	result := DashboardStockStatsRow{}
	products := func() *gorm.DB {
		return r.db.Model(&models.Product{}).Where("is_active = ?", true)
	}
	if err := products().Count(&result.ActiveProducts).Error; err != nil {
		return result, err
	}
	if err := products().Where("stock <= 0").Count(&result.OutOfStockProducts).Error; err != nil {
		return result, err
	}
	if err := products().Where("stock > 0 AND stock <= ?", lowStockThreshold).Count(&result.LowStockProducts).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Puppy{}).Where("is_available = ?", true).Count(&result.AvailablePuppies).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Service{}).Where("is_active = ?", true).Count(&result.ActiveServices).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetTopItems 区间内销量排行（不含已取消订单）
func (r *GormDashboardRepository) GetTopItems(startAt, endAt time.Time, limit int) ([]DashboardItemRankingRow, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []DashboardItemRankingRow
	if err := r.db.Table("order_items AS oi").
		Select("oi.item_type, oi.item_id, MAX(oi.item_name) AS item_name, SUM(oi.quantity) AS quantity, COALESCE(SUM(oi.total_price), 0) AS amount").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.deleted_at IS NULL AND o.created_at >= ? AND o.created_at < ? AND o.status <> ?", startAt, endAt, constants.OrderStatusCancelled).
		Group("oi.item_type, oi.item_id").
		Order("quantity desc, amount desc").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
