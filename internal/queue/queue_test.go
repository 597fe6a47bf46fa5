package queue

import (
	"testing"

	"github.com/pawhaven/internal/config"
)

func TestDisabledClientIsNoop(t *testing.T) {
	client, err := NewClient(nil)
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("nil config should yield disabled client")
	}
	if err := client.EnqueueOrderStatusEmail(OrderStatusEmailPayload{OrderID: 1, Status: "Shipped"}); err != nil {
		t.Fatalf("disabled enqueue should be noop, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

func TestTaskPayloadRoundTrip(t *testing.T) {
	task, err := NewOrderStatusEmailTask(OrderStatusEmailPayload{OrderID: 42, Status: "Delivered"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskOrderStatusEmail {
		t.Fatalf("unexpected task type: %s", task.Type())
	}
	payload, err := ParseOrderStatusEmailPayload(task)
	if err != nil || payload.OrderID != 42 || payload.Status != "Delivered" {
		t.Fatalf("unexpected payload: %+v err=%v", payload, err)
	}
}

func TestBuildServerConfig(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{Host: "redis", Port: 6380, DB: 2, Concurrency: 3})
	if opt.Addr != "redis:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt: %+v", opt)
	}
	if cfg.Concurrency != 3 || cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
}
