package repository

import (
	"testing"

	"github.com/pawhaven/internal/constants"
	"github.com/pawhaven/internal/models"
)

func createTestOrder(t *testing.T, repo *GormOrderRepository, userID uint, no string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:         no,
		UserID:          userID,
		ShippingAddress: models.ShippingAddress{FullName: "Kofi", Phone: "0200000000", AddressLine: "1 Ring Rd", City: "Accra", Region: "Greater Accra"},
		PaymentMethod:   constants.PaymentMethodMobileMoney,
		TotalAmount:     models.MustMoney("20.00"),
		Status:          constants.OrderStatusPending,
		PaymentStatus:   constants.PaymentStatusPending,
	}
	items := []models.OrderItem{{
		ItemType:     constants.ItemTypeProduct,
		ItemID:       1,
		ItemName:     "Kibble",
		UnitPrice:    models.MustMoney("10.00"),
		Quantity:     2,
		TotalPrice:   models.MustMoney("20.00"),
		DeliveryType: constants.DeliveryTypePickup,
	}}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestOrderCreateAndScopedGet(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	order := createTestOrder(t, repo, 3, "PH-1")

	got, err := repo.GetByIDAndUser(order.ID, 3)
	if err != nil || got == nil || len(got.Items) != 1 {
		t.Fatalf("owner should see order: %+v err=%v", got, err)
	}
	if got.ShippingAddress.City != "Accra" {
		t.Fatalf("shipping snapshot not persisted: %+v", got.ShippingAddress)
	}
	other, err := repo.GetByIDAndUser(order.ID, 4)
	if err != nil || other != nil {
		t.Fatalf("other user must not see order: %+v err=%v", other, err)
	}
}

func TestOrderTransitionStatusGuardsCurrentStatus(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	order := createTestOrder(t, repo, 3, "PH-2")

	ok, err := repo.TransitionStatus(order.ID, constants.OrderStatusPending, constants.OrderStatusShipped, nil)
	if err != nil || !ok {
		t.Fatalf("transition should apply: ok=%v err=%v", ok, err)
	}
	ok, err = repo.TransitionStatus(order.ID, constants.OrderStatusPending, constants.OrderStatusCancelled, nil)
	if err != nil || ok {
		t.Fatalf("stale transition must not apply: ok=%v err=%v", ok, err)
	}
	got, _ := repo.GetByID(order.ID)
	if got.Status != constants.OrderStatusShipped {
		t.Fatalf("unexpected status: %s", got.Status)
	}
}

func TestOrderResolveReceiver(t *testing.T) {
	db := setupRepositoryTestDB(t)
	user := &models.User{Email: "ama@example.com", PasswordHash: "x", DisplayName: "Ama"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	repo := NewOrderRepository(db)
	order := createTestOrder(t, repo, user.ID, "PH-3")

	receiver, err := repo.ResolveReceiverByOrderID(order.ID)
	if err != nil {
		t.Fatalf("resolve receiver failed: %v", err)
	}
	if receiver.Email != "ama@example.com" || receiver.Name != "Ama" {
		t.Fatalf("unexpected receiver: %+v", receiver)
	}
	missing, err := repo.ResolveReceiverByOrderID(999)
	if err != nil || missing.Email != "" {
		t.Fatalf("missing order should resolve empty: %+v err=%v", missing, err)
	}
}

func TestOrderListByUserPaginates(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	for _, no := range []string{"PH-a", "PH-b", "PH-c"} {
		createTestOrder(t, repo, 9, no)
	}
	createTestOrder(t, repo, 10, "PH-d")

	orders, total, err := repo.ListByUser(OrderListFilter{UserID: 9, Page: 1, PageSize: 2})
	if err != nil || total != 3 || len(orders) != 2 {
		t.Fatalf("unexpected page: len=%d total=%d err=%v", len(orders), total, err)
	}
	count, _ := repo.CountByUser(9)
	if count != 3 {
		t.Fatalf("unexpected count: %d", count)
	}
	all, total, err := repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 10})
	if err != nil || total != 4 || len(all) != 4 {
		t.Fatalf("unexpected admin list: len=%d total=%d err=%v", len(all), total, err)
	}
}
