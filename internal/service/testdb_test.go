package service

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/pawhaven/internal/constants"
	"github.com/pawhaven/internal/models"
	"github.com/pawhaven/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "service.db") + "?_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

type statusNotification struct {
	OrderID uint
	Status  string
}

// recordingNotifier 记录通知调用次数
type recordingNotifier struct {
	mu      sync.Mutex
	placed  []uint
	changed []statusNotification
	err     error
}

func (n *recordingNotifier) NotifyOrderPlaced(orderID uint) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.placed = append(n.placed, orderID)
	return n.err
}

func (n *recordingNotifier) NotifyOrderStatusChanged(orderID uint, status string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changed = append(n.changed, statusNotification{OrderID: orderID, Status: status})
	return n.err
}

func (n *recordingNotifier) placedCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.placed)
}

func (n *recordingNotifier) changedCalls() []statusNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]statusNotification(nil), n.changed...)
}

type shopFixture struct {
	db       *gorm.DB
	cart     *CartService
	orders   *OrderService
	notifier *recordingNotifier
}

func newShopFixture(t *testing.T) *shopFixture {
	t.Helper()
	return newShopFixtureOn(t, setupServiceTestDB(t))
}

func newShopFixtureOn(t *testing.T, db *gorm.DB) *shopFixture {
	t.Helper()
	cartRepo := repository.NewCartRepository(db)
	puppyRepo := repository.NewPuppyRepository(db)
	notifier := &recordingNotifier{}
	return &shopFixture{
		db:       db,
		cart:     NewCartService(cartRepo, repository.NewProductRepository(db), repository.NewServiceRepository(db), puppyRepo),
		orders:   NewOrderService(db, repository.NewOrderRepository(db), cartRepo, puppyRepo, notifier),
		notifier: notifier,
	}
}

func (f *shopFixture) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "x", DisplayName: "Buyer"}
	if err := f.db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func (f *shopFixture) createProduct(t *testing.T, name, price string) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, Category: "Food", Price: models.MustMoney(price), Stock: 10, IsActive: true}
	if err := f.db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func (f *shopFixture) createService(t *testing.T, name, price string) *models.Service {
	t.Helper()
	svc := &models.Service{Name: name, Category: "Grooming", Price: models.MustMoney(price), IsActive: true}
	if err := f.db.Create(svc).Error; err != nil {
		t.Fatalf("create service failed: %v", err)
	}
	return svc
}

func (f *shopFixture) createPuppy(t *testing.T, name, price string) *models.Puppy {
	t.Helper()
	puppy := &models.Puppy{Name: name, Breed: "Beagle", Gender: "Female", Price: models.MustMoney(price), IsAvailable: true}
	if err := f.db.Create(puppy).Error; err != nil {
		t.Fatalf("create puppy failed: %v", err)
	}
	return puppy
}

func (f *shopFixture) markPuppySold(t *testing.T, puppyID uint) {
	t.Helper()
	if err := f.db.Model(&models.Puppy{}).Where("id = ?", puppyID).Update("is_available", false).Error; err != nil {
		t.Fatalf("mark puppy sold failed: %v", err)
	}
}

func (f *shopFixture) puppyAvailable(t *testing.T, puppyID uint) bool {
	t.Helper()
	var puppy models.Puppy
	if err := f.db.First(&puppy, puppyID).Error; err != nil {
		t.Fatalf("load puppy failed: %v", err)
	}
	return puppy.IsAvailable
}

func (f *shopFixture) addLine(t *testing.T, userID uint, in CartLineInput) *CartView {
	t.Helper()
	line, err := NewCartLine(in)
	if err != nil {
		t.Fatalf("build cart line failed: %v", err)
	}
	view, err := f.cart.AddItem(userID, line)
	if err != nil {
		t.Fatalf("add cart item failed: %v", err)
	}
	return view
}

func (f *shopFixture) countOrders(t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := f.db.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	return count
}

func testAddress() models.ShippingAddress {
	return models.ShippingAddress{
		FullName:    "Ama Mensah",
		Phone:       "+233200000000",
		AddressLine: "12 Ring Road",
		City:        "Accra",
		Region:      "Greater Accra",
	}
}

func placeInput(userID uint) PlaceOrderInput {
	return PlaceOrderInput{
		UserID:          userID,
		ShippingAddress: testAddress(),
		PaymentMethod:   constants.PaymentMethodCashOnDelivery,
	}
}

func unavailableItem(err error) (*ItemUnavailableError, error) {
	var unavailable *ItemUnavailableError
	if !errors.As(err, &unavailable) {
		return nil, fmt.Errorf("expected ItemUnavailableError, got %v", err)
	}
	return unavailable, nil
}
