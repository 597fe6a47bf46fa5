package repository

import (
	"testing"

	"github.com/pawhaven/internal/constants"
	"github.com/pawhaven/internal/models"

	"gorm.io/gorm"
)

func TestCartGetOrCreate(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCartRepository(db)

	cart, created, err := repo.GetOrCreate(1)
	if err != nil || !created || cart.ID == 0 {
		t.Fatalf("first call should create: cart=%+v created=%v err=%v", cart, created, err)
	}
	again, created, err := repo.GetOrCreate(1)
	if err != nil || created || again.ID != cart.ID {
		t.Fatalf("second call should reuse: cart=%+v created=%v err=%v", again, created, err)
	}
}

func TestCartGetByUserForUpdate(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCartRepository(db)
	cart, _, err := repo.GetOrCreate(7)
	if err != nil {
		t.Fatalf("create cart failed: %v", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		txRepo := repo.WithTx(tx)
		locked, err := txRepo.GetByUserForUpdate(7)
		if err != nil {
			return err
		}
		if locked == nil || locked.ID != cart.ID {
			t.Fatalf("locked cart mismatch: %+v", locked)
		}
		missing, err := txRepo.GetByUserForUpdate(8)
		if err != nil {
			return err
		}
		if missing != nil {
			t.Fatalf("missing cart should be nil, got %+v", missing)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("transaction failed: %v", err)
	}
}

func TestCartIncrementAndDecrement(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCartRepository(db)
	product := createTestProduct(t, db, "Kibble", "12.50")
	cart, _, _ := repo.GetOrCreate(1)

	item, err := models.NewCartItem(cart.ID, models.ItemRef{Type: constants.ItemTypeProduct, ID: product.ID}, 1)
	if err != nil {
		t.Fatalf("new item failed: %v", err)
	}
	if err := repo.CreateItem(item); err != nil {
		t.Fatalf("create item failed: %v", err)
	}
	if err := repo.IncrementItem(item.ID, 2, map[string]interface{}{"delivery_option_id": "2"}); err != nil {
		t.Fatalf("increment failed: %v", err)
	}

	got, _ := repo.GetItem(cart.ID, item.RefKey)
	if got.Quantity != 3 || got.DeliveryOptionID != "2" {
		t.Fatalf("unexpected item after increment: %+v", got)
	}

	ok, err := repo.DecrementItem(item.ID)
	if err != nil || !ok {
		t.Fatalf("decrement should succeed: ok=%v err=%v", ok, err)
	}
	got, _ = repo.GetItem(cart.ID, item.RefKey)
	if got.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", got.Quantity)
	}

	_ = repo.UpdateItem(item.ID, map[string]interface{}{"quantity": 1})
	ok, err = repo.DecrementItem(item.ID)
	if err != nil || ok {
		t.Fatalf("decrement at 1 should report false: ok=%v err=%v", ok, err)
	}
}

func TestCartUniqueRefPerCart(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCartRepository(db)
	puppy := createTestPuppy(t, db, "Rex")
	cart, _, _ := repo.GetOrCreate(1)

	ref := models.ItemRef{Type: constants.ItemTypePuppy, ID: puppy.ID}
	first, _ := models.NewCartItem(cart.ID, ref, 1)
	if err := repo.CreateItem(first); err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	second, _ := models.NewCartItem(cart.ID, ref, 1)
	if err := repo.CreateItem(second); err == nil {
		t.Fatalf("duplicate ref should violate unique index")
	}
}

func TestCartListItemsAndClear(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCartRepository(db)
	product := createTestProduct(t, db, "Leash", "8.00")
	puppy := createTestPuppy(t, db, "Luna")
	cart, _, _ := repo.GetOrCreate(7)

	p, _ := models.NewCartItem(cart.ID, models.ItemRef{Type: constants.ItemTypeProduct, ID: product.ID}, 2)
	d, _ := models.NewCartItem(cart.ID, models.ItemRef{Type: constants.ItemTypePuppy, ID: puppy.ID}, 1)
	_ = repo.CreateItem(p)
	_ = repo.CreateItem(d)

	items, err := repo.ListItems(cart.ID)
	if err != nil || len(items) != 2 {
		t.Fatalf("unexpected items: %+v err=%v", items, err)
	}
	if items[0].Product == nil || items[1].Puppy == nil {
		t.Fatalf("catalog data should be preloaded: %+v", items)
	}

	sum, err := repo.SumQuantityByUser(7)
	if err != nil || sum != 3 {
		t.Fatalf("unexpected quantity sum: %d err=%v", sum, err)
	}

	n, err := repo.ClearItems(cart.ID)
	if err != nil || n != 2 {
		t.Fatalf("clear failed: n=%d err=%v", n, err)
	}
	if still, _ := repo.GetByUser(7); still == nil {
		t.Fatalf("cart should survive clear")
	}
}
