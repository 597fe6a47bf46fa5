package queue

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderConfirmationEmail 下单确认邮件任务
	TaskOrderConfirmationEmail = "order:confirmation_email"
	// TaskOrderStatusEmail 订单状态变更邮件任务
	TaskOrderStatusEmail = "order:status_email"
)

// OrderConfirmationEmailPayload 下单确认邮件载荷
type OrderConfirmationEmailPayload struct {
	OrderID uint `json:"order_id"`
}

// OrderStatusEmailPayload 订单状态邮件载荷
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// NewOrderConfirmationEmailTask 创建下单确认邮件任务
func NewOrderConfirmationEmailTask(payload OrderConfirmationEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderConfirmationEmail, body), nil
}

// NewOrderStatusEmailTask 创建订单状态邮件任务
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}

// ParseOrderConfirmationEmailPayload 解析下单确认邮件载荷
func ParseOrderConfirmationEmailPayload(task *asynq.Task) (OrderConfirmationEmailPayload, error) {
	var payload OrderConfirmationEmailPayload
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}

// ParseOrderStatusEmailPayload 解析订单状态邮件载荷
func ParseOrderStatusEmailPayload(task *asynq.Task) (OrderStatusEmailPayload, error) {
	var payload OrderStatusEmailPayload
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
