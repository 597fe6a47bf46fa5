package service

import (
	"math"
	"strings"

	"github.com/pawhaven/internal/constants"
	"github.com/pawhaven/internal/models"
	"github.com/pawhaven/internal/repository"
)

const defaultDashboardRecentLimit = 3

// UserDashboardService 用户中心概览
type UserDashboardService struct {
	userRepo     repository.UserRepository
	orderRepo    repository.OrderRepository
	wishlistRepo repository.WishlistRepository
	cartRepo     repository.CartRepository
}

// NewUserDashboardService 创建用户概览服务
func NewUserDashboardService(userRepo repository.UserRepository, orderRepo repository.OrderRepository, wishlistRepo repository.WishlistRepository, cartRepo repository.CartRepository) *UserDashboardService {
	return &UserDashboardService{
		userRepo:     userRepo,
		orderRepo:    orderRepo,
		wishlistRepo: wishlistRepo,
		cartRepo:     cartRepo,
	}
}

// QuickStats 计数卡片
type QuickStats struct {
	OrdersCount   int64 `json:"orders_count"`
	WishlistCount int64 `json:"wishlist_count"`
	CartCount     int64 `json:"cart_count"`
}

// RecentOrder 最近订单，DisplayStatus 为前端展示用的小写状态
type RecentOrder struct {
	models.Order
	DisplayStatus string `json:"display_status"`
}

// Pagination 分页信息
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// UserDashboard 用户概览
type UserDashboard struct {
	User         *models.User  `json:"user"`
	QuickStats   QuickStats    `json:"quick_stats"`
	RecentOrders []RecentOrder `json:"recent_orders"`
	Pagination   Pagination    `json:"pagination"`
}

// Get 获取用户概览，page 与 limit 非正时取默认值
func (s *UserDashboardService) Get(userID uint, page, limit int) (*UserDashboard, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultDashboardRecentLimit
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	ordersCount, err := s.orderRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	wishlistCount, err := s.wishlistRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	cartCount, err := s.cartRepo.SumQuantityByUser(userID)
	if err != nil {
		return nil, err
	}

	orders, total, err := s.orderRepo.ListByUser(repository.OrderListFilter{UserID: userID, Page: page, PageSize: limit})
	if err != nil {
		return nil, err
	}
	recent := make([]RecentOrder, 0, len(orders))
	for _, order := range orders {
		recent = append(recent, RecentOrder{Order: order, DisplayStatus: displayOrderStatus(order.Status)})
	}

	return &UserDashboard{
		User: user,
		QuickStats: QuickStats{
			OrdersCount:   ordersCount,
			WishlistCount: wishlistCount,
			CartCount:     cartCount,
		},
		RecentOrders: recent,
		Pagination: Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}

// displayOrderStatus 未开始处理的订单展示为 processing
func displayOrderStatus(status string) string {
	switch status {
	case constants.OrderStatusShipped, constants.OrderStatusDelivered, constants.OrderStatusCancelled:
		return strings.ToLower(status)
	default:
		return "processing"
	}
}
