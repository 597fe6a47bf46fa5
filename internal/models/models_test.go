package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/pawhaven/internal/constants"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	t.Cleanup(func() { _ = CloseDB(db) })
	return db
}

func TestMoneyArithmetic(t *testing.T) {
	price := NewMoneyFromCents(1999)
	if got := price.Times(3).String(); got != "59.97" {
		t.Fatalf("unexpected total: %s", got)
	}
	if got := price.Plus(MustMoney("0.01")).String(); got != "20.00" {
		t.Fatalf("unexpected sum: %s", got)
	}
}

func TestMoneyJSON(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`12.5`), &m); err != nil {
		t.Fatalf("unmarshal number failed: %v", err)
	}
	out, _ := json.Marshal(m)
	if string(out) != `"12.50"` {
		t.Fatalf("unexpected json: %s", out)
	}
	if err := json.Unmarshal([]byte(`"abc"`), &m); err == nil {
		t.Fatalf("expected error for invalid amount")
	}
}

func TestNewCartItemPinsPuppyQuantity(t *testing.T) {
	item, err := NewCartItem(1, ItemRef{Type: constants.ItemTypePuppy, ID: 7}, 5)
	if err != nil {
		t.Fatalf("new cart item failed: %v", err)
	}
	if item.Quantity != 1 || item.RefKey != "Puppy:7" || item.PuppyID == nil {
		t.Fatalf("unexpected puppy item: %+v", item)
	}

	if _, err := NewCartItem(1, ItemRef{Type: "Cat", ID: 1}, 1); !errors.Is(err, ErrCartItemRef) {
		t.Fatalf("expected ErrCartItemRef, got %v", err)
	}
}

func TestCartItemRejectsMultipleRefs(t *testing.T) {
	db := openTestDB(t)
	p, s := uint(1), uint(2)
	item := &CartItem{CartID: 1, ProductID: &p, ServiceID: &s, Quantity: 1}
	if err := db.Create(item).Error; !errors.Is(err, ErrCartItemRef) {
		t.Fatalf("expected ErrCartItemRef on create, got %v", err)
	}
	empty := &CartItem{CartID: 1, Quantity: 1}
	if err := db.Create(empty).Error; !errors.Is(err, ErrCartItemRef) {
		t.Fatalf("expected ErrCartItemRef for empty ref, got %v", err)
	}
}

func TestShippingAddressMissingFields(t *testing.T) {
	addr := ShippingAddress{FullName: "Ama", Phone: " ", City: "Accra"}
	missing := addr.MissingFields()
	if len(missing) != 3 {
		t.Fatalf("unexpected missing fields: %v", missing)
	}
}

func TestStringArrayRoundTrip(t *testing.T) {
	db := openTestDB(t)
	p := Product{Name: "Oat Shampoo", Category: constants.ProductCategoryShampoo, Price: MustMoney("9.99"), Images: StringArray{"a.jpg", "b.jpg"}}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	var got Product
	if err := db.First(&got, p.ID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if len(got.Images) != 2 || got.Price.String() != "9.99" {
		t.Fatalf("unexpected product: %+v", got)
	}
}

func TestInitDefaultAdmin(t *testing.T) {
	db := openTestDB(t)
	if err := InitDefaultAdmin(db, "", "s3cret-pass"); err != nil {
		t.Fatalf("init admin failed: %v", err)
	}
	if err := InitDefaultAdmin(db, "", ""); err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	var admins []Admin
	db.Find(&admins)
	if len(admins) != 1 || !admins[0].IsSuper {
		t.Fatalf("unexpected admins: %+v", admins)
	}
}
