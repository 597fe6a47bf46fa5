package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pawhaven/internal/config"
	"github.com/pawhaven/internal/constants"
	"github.com/pawhaven/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEmailService(t *testing.T, transport mailTransport) *EmailService {
	t.Helper()
	svc := NewEmailService(&config.EmailConfig{
		Enabled:            true,
		Host:               "smtp.example.test",
		Port:               2525,
		From:               "shop@example.test",
		FromName:           "PawHaven",
		SendTimeoutSeconds: 1,
		BreakerMaxFailures: 2,
		BreakerOpenSeconds: 60,
	})
	svc.transport = transport
	return svc
}

func TestEmailServiceSendBuildsHTMLMessage(t *testing.T) {
	var captured string
	svc := newTestEmailService(t, func(ctx context.Context, from string, to []string, msg []byte) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		assert.Equal(t, "shop@example.test", from)
		assert.Equal(t, []string{"buyer@example.test"}, to)
		captured = string(msg)
		return nil
	})

	require.NoError(t, svc.Send(context.Background(), "buyer@example.test", "Hello", "<p>hi</p>"))
	assert.Contains(t, captured, "Content-Type: text/html; charset=UTF-8")
	assert.Contains(t, captured, "<p>hi</p>")
}

func TestEmailServiceDisabled(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: false})
	err := svc.Send(context.Background(), "buyer@example.test", "s", "b")
	assert.ErrorIs(t, err, ErrEmailServiceDisabled)

	svc = NewEmailService(&config.EmailConfig{Enabled: true})
	err = svc.Send(context.Background(), "buyer@example.test", "s", "b")
	assert.ErrorIs(t, err, ErrEmailServiceNotConfigured)
}

func TestEmailServiceRejectsInvalidRecipient(t *testing.T) {
	svc := newTestEmailService(t, func(context.Context, string, []string, []byte) error {
		t.Fatal("transport should not be called")
		return nil
	})
	assert.ErrorIs(t, svc.Send(context.Background(), "not-an-email", "s", "b"), ErrInvalidEmail)
}

func TestEmailServiceBreakerOpensAfterFailures(t *testing.T) {
	calls := 0
	svc := newTestEmailService(t, func(context.Context, string, []string, []byte) error {
		calls++
		return errors.New("dial tcp: connection refused")
	})

	for i := 0; i < 2; i++ {
		err := svc.Send(context.Background(), "buyer@example.test", "s", "b")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrEmailCircuitOpen)
	}
	err := svc.Send(context.Background(), "buyer@example.test", "s", "b")
	assert.ErrorIs(t, err, ErrEmailCircuitOpen)
	assert.Equal(t, 2, calls)
}

func TestEmailServiceRecipientRejectionDoesNotTripBreaker(t *testing.T) {
	calls := 0
	svc := newTestEmailService(t, func(context.Context, string, []string, []byte) error {
		calls++
		return errors.New("550 5.1.1 <buyer@example.test>: Recipient address rejected")
	})

	for i := 0; i < 4; i++ {
		err := svc.Send(context.Background(), "buyer@example.test", "s", "b")
		assert.ErrorIs(t, err, ErrEmailRecipientRejected)
	}
	assert.Equal(t, 4, calls)
}

func TestEmailServiceTransportHonorsTimeout(t *testing.T) {
	svc := newTestEmailService(t, func(ctx context.Context, _ string, _ []string, _ []byte) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
			return nil
		}
	})
	start := time.Now()
	err := svc.Send(context.Background(), "buyer@example.test", "s", "b")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestIsEmailRecipientRejected(t *testing.T) {
	assert.True(t, isEmailRecipientRejected(errors.New("550 mailbox unavailable")))
	assert.True(t, isEmailRecipientRejected(errors.New("User unknown")))
	assert.False(t, isEmailRecipientRejected(errors.New("connection reset by peer")))
}

func TestRenderOrderEmails(t *testing.T) {
	order := &models.Order{
		OrderNo:       "PH20261017-000001",
		PaymentMethod: constants.PaymentMethodCashOnDelivery,
		TotalAmount:   models.MustMoney("70.00"),
		ShippingAddress: models.ShippingAddress{
			FullName: "Ama", AddressLine: "12 Ring Rd", City: "Accra", Region: "Greater Accra",
		},
		Items: []models.OrderItem{
			{ItemName: "Chew <Toy>", Quantity: 2, UnitPrice: models.MustMoney("10.00"), TotalPrice: models.MustMoney("20.00")},
			{ItemName: "Bella", Quantity: 1, UnitPrice: models.MustMoney("50.00"), TotalPrice: models.MustMoney("50.00")},
		},
	}

	subject, body, err := renderOrderConfirmation(order, "Ama", "GHS")
	require.NoError(t, err)
	assert.Equal(t, "Your Order Confirmation", subject)
	assert.Contains(t, body, "Thank you for your order, Ama!")
	assert.Contains(t, body, "Chew &lt;Toy&gt;")
	assert.Contains(t, body, "GHS 70.00")
	assert.Equal(t, 2, strings.Count(body, "<tr><td>"))

	subject, body, err = renderOrderStatus(order, "Ama", constants.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, "Your order status has been updated", subject)
	assert.Contains(t, body, "status is now: <strong>Shipped</strong>")
	assert.Contains(t, body, "Thank you for shopping with us!")
}
