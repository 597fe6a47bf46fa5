package service

import (
	"context"
	"strings"

	"github.com/pawhaven/internal/logger"
	"github.com/pawhaven/internal/queue"
	"github.com/pawhaven/internal/repository"
)

// OrderNotifier 订单通知出口，下单与状态变更各触发一次
type OrderNotifier interface {
	NotifyOrderPlaced(orderID uint) error
	NotifyOrderStatusChanged(orderID uint, status string) error
}

// OrderNotificationService 队列可用时异步投递，否则直接发送邮件
type OrderNotificationService struct {
	orderRepo   repository.OrderRepository
	queueClient *queue.Client
	email       *EmailService
	currency    string
}

// NewOrderNotificationService 创建订单通知服务
func NewOrderNotificationService(orderRepo repository.OrderRepository, queueClient *queue.Client, email *EmailService, currency string) *OrderNotificationService {
	return &OrderNotificationService{
		orderRepo:   orderRepo,
		queueClient: queueClient,
		email:       email,
		currency:    strings.TrimSpace(currency),
	}
}

// NotifyOrderPlaced 下单确认
func (s *OrderNotificationService) NotifyOrderPlaced(orderID uint) error {
	if s.queueClient.Enabled() {
		return s.queueClient.EnqueueOrderConfirmationEmail(queue.OrderConfirmationEmailPayload{OrderID: orderID})
	}
	return s.DeliverOrderConfirmation(context.Background(), orderID)
}

// NotifyOrderStatusChanged 状态变更通知
func (s *OrderNotificationService) NotifyOrderStatusChanged(orderID uint, status string) error {
	if s.queueClient.Enabled() {
		return s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{OrderID: orderID, Status: status})
	}
	return s.DeliverOrderStatus(context.Background(), orderID, status)
}

// DeliverOrderConfirmation 发送下单确认邮件
func (s *OrderNotificationService) DeliverOrderConfirmation(ctx context.Context, orderID uint) error {
	if !s.email.Enabled() {
		logger.Debugw("order_email_skipped", "order_id", orderID, "reason", "email_disabled")
		return nil
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	receiver, err := s.orderRepo.ResolveReceiverByOrderID(orderID)
	if err != nil {
		return err
	}
	if receiver.Email == "" {
		logger.Warnw("order_email_receiver_missing", "order_id", orderID)
		return nil
	}
	subject, body, err := renderOrderConfirmation(order, receiver.Name, s.currency)
	if err != nil {
		return err
	}
	return s.email.Send(ctx, receiver.Email, subject, body)
}

// DeliverOrderStatus 发送状态变更邮件
func (s *OrderNotificationService) DeliverOrderStatus(ctx context.Context, orderID uint, status string) error {
	if !s.email.Enabled() {
		logger.Debugw("order_email_skipped", "order_id", orderID, "reason", "email_disabled")
		return nil
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	receiver, err := s.orderRepo.ResolveReceiverByOrderID(orderID)
	if err != nil {
		return err
	}
	if receiver.Email == "" {
		logger.Warnw("order_email_receiver_missing", "order_id", orderID)
		return nil
	}
	if strings.TrimSpace(status) == "" {
		status = order.Status
	}
	subject, body, err := renderOrderStatus(order, receiver.Name, status)
	if err != nil {
		return err
	}
	return s.email.Send(ctx, receiver.Email, subject, body)
}
