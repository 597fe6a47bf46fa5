package repository

import (
	"testing"
	"time"

	"github.com/pawhaven/internal/constants"
	"github.com/pawhaven/internal/models"

	"gorm.io/gorm"
)

func createDashboardOrder(t *testing.T, db *gorm.DB, orderNo, status, paymentStatus, amount string, createdAt time.Time, items ...models.OrderItem) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:       orderNo,
		UserID:        1,
		PaymentMethod: constants.PaymentMethodCashOnDelivery,
		Status:        status,
		PaymentStatus: paymentStatus,
		TotalAmount:   models.MustMoney(amount),
		CreatedAt:     createdAt,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	for i := range items {
		items[i].OrderID = order.ID
		if err := db.Create(&items[i]).Error; err != nil {
			t.Fatalf("create order item failed: %v", err)
		}
	}
	return order
}

func TestDashboardOverviewCountsByStatus(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewDashboardRepository(db)
	now := time.Now()

	createDashboardOrder(t, db, "PH-1", constants.OrderStatusPending, constants.PaymentStatusPending, "40.00", now)
	createDashboardOrder(t, db, "PH-2", constants.OrderStatusShipped, constants.PaymentStatusPaid, "60.00", now)
	createDashboardOrder(t, db, "PH-3", constants.OrderStatusCancelled, constants.PaymentStatusPaid, "25.00", now)
	createDashboardOrder(t, db, "PH-OLD", constants.OrderStatusPending, constants.PaymentStatusPending, "99.00", now.AddDate(0, 0, -40))

	row, err := repo.GetOverview(now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("get overview failed: %v", err)
	}
	if row.OrdersTotal != 3 {
		t.Fatalf("orders total want 3 got %d", row.OrdersTotal)
	}
	if row.PendingOrders != 1 || row.ShippedOrders != 1 || row.CancelledOrders != 1 {
		t.Fatalf("unexpected status counts: %+v", row)
	}
	if row.PaidOrders != 2 {
		t.Fatalf("paid orders want 2 got %d", row.PaidOrders)
	}
	if row.RevenuePaid != 60 {
		t.Fatalf("revenue want 60 got %.2f", row.RevenuePaid)
	}
}

func TestDashboardTopItemsSkipsCancelledOrders(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewDashboardRepository(db)
	now := time.Now()

	item := func(id uint, name string, qty int, total string) models.OrderItem {
		return models.OrderItem{
			ItemType:     constants.ItemTypeProduct,
			ItemID:       id,
			ItemName:     name,
			UnitPrice:    models.MustMoney("5.00"),
			Quantity:     qty,
			TotalPrice:   models.MustMoney(total),
			DeliveryType: constants.DeliveryTypePickup,
		}
	}
	createDashboardOrder(t, db, "PH-A", constants.OrderStatusProcessing, constants.PaymentStatusPending, "25.00", now,
		item(1, "Shampoo", 3, "15.00"), item(2, "Leash", 1, "10.00"))
	createDashboardOrder(t, db, "PH-B", constants.OrderStatusDelivered, constants.PaymentStatusPaid, "10.00", now,
		item(1, "Shampoo", 2, "10.00"))
	createDashboardOrder(t, db, "PH-C", constants.OrderStatusCancelled, constants.PaymentStatusPending, "50.00", now,
		item(2, "Leash", 5, "50.00"))

	rows, err := repo.GetTopItems(now.Add(-time.Hour), now.Add(time.Hour), 5)
	if err != nil {
		t.Fatalf("get top items failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows len want 2 got %d", len(rows))
	}
	if rows[0].ItemID != 1 || rows[0].Quantity != 5 || rows[0].Amount != 25 {
		t.Fatalf("unexpected top row: %+v", rows[0])
	}
	if rows[1].ItemID != 2 || rows[1].Quantity != 1 {
		t.Fatalf("cancelled quantity leaked into ranking: %+v", rows[1])
	}
}

func TestDashboardStockStats(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewDashboardRepository(db)

	createTestProduct(t, db, "Food", "10.00")
	low := createTestProduct(t, db, "Treats", "3.00")
	empty := createTestProduct(t, db, "Collar", "8.00")
	db.Model(low).Update("stock", 2)
	db.Model(empty).Update("stock", 0)
	createTestPuppy(t, db, "Max")
	sold := createTestPuppy(t, db, "Luna")
	db.Model(sold).Update("is_available", false)

	row, err := repo.GetStockStats(5)
	if err != nil {
		t.Fatalf("get stock stats failed: %v", err)
	}
	if row.ActiveProducts != 3 || row.LowStockProducts != 1 || row.OutOfStockProducts != 1 {
		t.Fatalf("unexpected product stats: %+v", row)
	}
	if row.AvailablePuppies != 1 {
		t.Fatalf("available puppies want 1 got %d", row.AvailablePuppies)
	}
}
