package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/pawhaven/internal/constants"
	"github.com/pawhaven/internal/logger"
	"github.com/pawhaven/internal/models"
)

// allowedTransitions 订单状态流转表，Delivered/Cancelled 为终态
var allowedTransitions = map[string][]string{
	constants.OrderStatusPending: {
		constants.OrderStatusProcessing,
		constants.OrderStatusShipped,
		constants.OrderStatusDelivered,
		constants.OrderStatusCancelled,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusShipped,
		constants.OrderStatusDelivered,
		constants.OrderStatusCancelled,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered,
		constants.OrderStatusCancelled,
	},
}

// NormalizeOrderStatus 大小写不敏感地解析状态，兼容 Canceled 拼写
func NormalizeOrderStatus(raw string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch v {
	case "pending":
		return constants.OrderStatusPending, true
	case "processing":
		return constants.OrderStatusProcessing, true
	case "shipped":
		return constants.OrderStatusShipped, true
	case "delivered":
		return constants.OrderStatusDelivered, true
	case "cancelled", "canceled":
		return constants.OrderStatusCancelled, true
	}
	return "", false
}

func canTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NormalizePaymentStatus 解析支付状态
func NormalizePaymentStatus(raw string) (string, bool) {
	for _, status := range []string{
		constants.PaymentStatusPending,
		constants.PaymentStatusPaid,
		constants.PaymentStatusFailed,
	} {
		if strings.EqualFold(strings.TrimSpace(raw), status) {
			return status, true
		}
	}
	return "", false
}

// UpdateOrderStatus 管理员修改订单状态，实际变更时发送一次通知；取消不释放幼犬
func (s *OrderService) UpdateOrderStatus(orderID uint, rawStatus string) (*models.Order, error) {
	status, ok := NormalizeOrderStatus(rawStatus)
	if !ok {
		return nil, newValidationError(ErrOrderStatusInvalid, "status")
	}
	order, err := s.loadOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == status {
		return order, nil
	}
	if !canTransition(order.Status, status) {
		return nil, &StatusTransitionError{From: order.Status, To: status}
	}

	updates := map[string]interface{}{}
	if status == constants.OrderStatusDelivered {
		updates["delivered_at"] = s.now()
	}
	changed, err := s.orderRepo.TransitionStatus(order.ID, order.Status, status, updates)
	if err != nil {
		logger.Errorw("order_status_update_failed", "order_id", order.ID, "status", status, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrOrderUpdateFailed, err)
	}
	if !changed {
		// 并发修改，以最新状态重新判定
		latest, err := s.loadOrder(orderID)
		if err != nil {
			return nil, err
		}
		if latest.Status == status {
			return latest, nil
		}
		return nil, &StatusTransitionError{From: latest.Status, To: status}
	}
	logger.Infow("order_status_updated", "order_id", order.ID, "from", order.Status, "to", status)

	if s.notifier != nil {
		var hooks postCommitHooks
		hooks.add("order_status_email", func() error {
			return s.notifier.NotifyOrderStatusChanged(order.ID, status)
		})
		hooks.run("order_id", order.ID, "status", status)
	}
	return s.loadOrder(orderID)
}

// UpdateOrderTrackingInput 物流与支付信息
type UpdateOrderTrackingInput struct {
	TrackingNumber *string
	PaymentStatus  *string
	DeliveryDate   *time.Time
}

// UpdateOrderTracking 修改物流单号、支付状态与预计送达时间
func (s *OrderService) UpdateOrderTracking(orderID uint, input UpdateOrderTrackingInput) (*models.Order, error) {
	order, err := s.loadOrder(orderID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if input.TrackingNumber != nil {
		updates["tracking_number"] = strings.TrimSpace(*input.TrackingNumber)
	}
	if input.PaymentStatus != nil {
		status, ok := NormalizePaymentStatus(*input.PaymentStatus)
		if !ok {
			return nil, newValidationError(ErrPaymentStatusInvalid, "paymentStatus")
		}
		updates["payment_status"] = status
		if status == constants.PaymentStatusPaid && order.PaidAt == nil {
			updates["paid_at"] = s.now()
		}
	}
	if input.DeliveryDate != nil {
		updates["delivery_date"] = *input.DeliveryDate
	}
	if len(updates) == 0 {
		return order, nil
	}
	if err := s.orderRepo.UpdateFields(order.ID, updates); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderUpdateFailed, err)
	}
	return s.loadOrder(orderID)
}

func (s *OrderService) loadOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// StatusTransitionError 不允许的状态流转
type StatusTransitionError struct {
	From string
	To   string
}

func (e *StatusTransitionError) Error() string {
	return fmt.Sprintf("order status cannot change from %s to %s", e.From, e.To)
}

func (e *StatusTransitionError) Unwrap() error {
	return ErrOrderStatusTransition
}

// Key 对应的 i18n 文案
func (e *StatusTransitionError) Key() string { return "error.order_status_transition" }

// Args 文案参数
func (e *StatusTransitionError) Args() []interface{} { return []interface{}{e.From, e.To} }
