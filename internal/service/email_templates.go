package service

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/pawhaven/internal/models"
)

const (
	orderConfirmationSubject = "Your Order Confirmation"
	orderStatusSubject       = "Your order status has been updated"
)

var orderConfirmationTemplate = template.Must(template.New("order_confirmation").Parse(`<h2>Thank you for your order, {{.Name}}!</h2>
<p>Order No: <strong>{{.OrderNo}}</strong></p>
<table border="1" cellpadding="6" cellspacing="0">
<thead><tr><th>Item</th><th>Qty</th><th>Price</th><th>Subtotal</th></tr></thead>
<tbody>
{{- range .Items}}
<tr><td>{{.ItemName}}</td><td>{{.Quantity}}</td><td>{{$.Currency}} {{.UnitPrice}}</td><td>{{$.Currency}} {{.TotalPrice}}</td></tr>
{{- end}}
</tbody>
</table>
<p>Total: <strong>{{.Currency}} {{.Total}}</strong></p>
<p>Payment method: {{.PaymentMethod}}</p>
<p>Shipping to: {{.Address}}</p>
`))

var orderStatusTemplate = template.Must(template.New("order_status").Parse(`<p>Hello {{.Name}},</p>
<p>Your order <strong>{{.OrderNo}}</strong> status is now: <strong>{{.Status}}</strong>.</p>
{{- if .TrackingNumber}}
<p>Tracking number: {{.TrackingNumber}}</p>
{{- end}}
<p>Thank you for shopping with us!</p>
`))

type orderConfirmationView struct {
	Name          string
	OrderNo       string
	Currency      string
	Items         []models.OrderItem
	Total         string
	PaymentMethod string
	Address       string
}

type orderStatusView struct {
	Name           string
	OrderNo        string
	Status         string
	TrackingNumber string
}

func renderOrderConfirmation(order *models.Order, name, currency string) (string, string, error) {
	view := orderConfirmationView{
		Name:          name,
		OrderNo:       order.OrderNo,
		Currency:      currency,
		Items:         order.Items,
		Total:         order.TotalAmount.String(),
		PaymentMethod: order.PaymentMethod,
		Address:       formatAddress(order.ShippingAddress),
	}
	var buf bytes.Buffer
	if err := orderConfirmationTemplate.Execute(&buf, view); err != nil {
		return "", "", err
	}
	return orderConfirmationSubject, buf.String(), nil
}

func renderOrderStatus(order *models.Order, name, status string) (string, string, error) {
	view := orderStatusView{
		Name:           name,
		OrderNo:        order.OrderNo,
		Status:         status,
		TrackingNumber: order.TrackingNumber,
	}
	var buf bytes.Buffer
	if err := orderStatusTemplate.Execute(&buf, view); err != nil {
		return "", "", err
	}
	return orderStatusSubject, buf.String(), nil
}

func formatAddress(a models.ShippingAddress) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.AddressLine, a.City, a.Region} {
		if v := strings.TrimSpace(p); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}
