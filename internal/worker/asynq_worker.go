package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/pawhaven/internal/logger"
	"github.com/pawhaven/internal/provider"
	"github.com/pawhaven/internal/queue"
	"github.com/pawhaven/internal/service"

	"github.com/hibiken/asynq"
)

// OrderEmailDeliverer 订单邮件发送出口
type OrderEmailDeliverer interface {
	DeliverOrderConfirmation(ctx context.Context, orderID uint) error
	DeliverOrderStatus(ctx context.Context, orderID uint, status string) error
}

// Consumer 异步任务消费者
type Consumer struct {
	emails OrderEmailDeliverer
}

// NewConsumer 从容器创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	if c == nil {
		return &Consumer{}
	}
	return &Consumer{emails: c.OrderNotificationService}
}

// NewConsumerWith 使用指定发送出口创建消费者
func NewConsumerWith(emails OrderEmailDeliverer) *Consumer {
	return &Consumer{emails: emails}
}

// Register 注册任务处理函数
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderConfirmationEmail, c.handleOrderConfirmationEmail)
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
}

func (c *Consumer) handleOrderConfirmationEmail(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.emails == nil {
		logger.Debugw("worker_order_confirmation_email_skip_nil", "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseOrderConfirmationEmailPayload(task)
	if err != nil {
		logger.Warnw("worker_order_confirmation_email_unmarshal_failed", "error", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_confirmation_email_skip_invalid_payload")
		return nil
	}
	err = c.emails.DeliverOrderConfirmation(ctx, payload.OrderID)
	return classifyDeliveryError("worker_order_confirmation_email", payload.OrderID, err)
}

func (c *Consumer) handleOrderStatusEmail(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.emails == nil {
		logger.Debugw("worker_order_status_email_skip_nil", "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseOrderStatusEmailPayload(task)
	if err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_email_skip_invalid_payload")
		return nil
	}
	err = c.emails.DeliverOrderStatus(ctx, payload.OrderID, payload.Status)
	return classifyDeliveryError("worker_order_status_email", payload.OrderID, err)
}

// classifyDeliveryError 订单不存在或邮件关闭时丢弃任务，收件人被拒时不再重试
func classifyDeliveryError(event string, orderID uint, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, service.ErrOrderNotFound):
		logger.Debugw(event+"_skip_order_not_found", "order_id", orderID)
		return nil
	case errors.Is(err, service.ErrEmailServiceDisabled), errors.Is(err, service.ErrEmailServiceNotConfigured):
		logger.Debugw(event+"_skip_email_disabled", "order_id", orderID)
		return nil
	case errors.Is(err, service.ErrEmailRecipientRejected):
		logger.Warnw(event+"_recipient_rejected", "order_id", orderID, "error", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	default:
		logger.Warnw(event+"_send_failed", "order_id", orderID, "error", err)
		return err
	}
}
