package service

import (
	"fmt"
	"strings"

	"github.com/pawhaven/internal/models"
	"github.com/pawhaven/internal/repository"
)

// ListMyOrders 当前用户订单，最新在前
func (s *OrderService) ListMyOrders(userID uint, status string, page, pageSize int) ([]models.Order, int64, error) {
	filter := repository.OrderListFilter{UserID: userID, Page: page, PageSize: pageSize}
	if strings.TrimSpace(status) != "" {
		normalized, ok := NormalizeOrderStatus(status)
		if !ok {
			return nil, 0, newValidationError(ErrOrderStatusInvalid, "status")
		}
		filter.Status = normalized
	}
	orders, total, err := s.orderRepo.ListByUser(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	return orders, total, nil
}

// GetMyOrder 用户只能查看自己的订单
func (s *OrderService) GetMyOrder(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListAdminOrders 管理端订单列表
func (s *OrderService) ListAdminOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if strings.TrimSpace(filter.Status) != "" {
		normalized, ok := NormalizeOrderStatus(filter.Status)
		if !ok {
			return nil, 0, newValidationError(ErrOrderStatusInvalid, "status")
		}
		filter.Status = normalized
	}
	filter.OrderNo = strings.TrimSpace(filter.OrderNo)
	orders, total, err := s.orderRepo.ListAdmin(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	return orders, total, nil
}

// GetAdminOrder 管理端订单详情
func (s *OrderService) GetAdminOrder(orderID uint) (*models.Order, error) {
	return s.loadOrder(orderID)
}
