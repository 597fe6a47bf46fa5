package repository

import (
	"testing"

	"github.com/pawhaven/internal/models"
)

func TestProductListFiltersAndSearch(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProductRepository(db)

	createTestProduct(t, db, "Salmon Kibble", "90.00")
	leash := &models.Product{Name: "Rope Leash", Category: "Accessories", Brand: "TrailTail", Price: models.MustMoney("40.00"), Stock: 5, IsActive: true}
	if err := repo.Create(leash); err != nil {
		t.Fatalf("create leash failed: %v", err)
	}
	hidden := &models.Product{Name: "Old Collar", Category: "Accessories", Price: models.MustMoney("10.00"), IsActive: false}
	if err := repo.Create(hidden); err != nil {
		t.Fatalf("create hidden failed: %v", err)
	}

	stored, err := repo.GetByID(hidden.ID)
	if err != nil || stored == nil || stored.IsActive {
		t.Fatalf("inactive product should persist as inactive: %+v err=%v", stored, err)
	}

	active, total, err := repo.List(ProductListFilter{OnlyActive: true})
	if err != nil || total != 2 || len(active) != 2 {
		t.Fatalf("unexpected active list: total=%d err=%v", total, err)
	}

	all, total, err := repo.List(ProductListFilter{Category: "Accessories"})
	if err != nil || total != 2 || len(all) != 2 {
		t.Fatalf("unexpected category list: total=%d err=%v", total, err)
	}

	found, total, err := repo.List(ProductListFilter{Search: "trail"})
	if err != nil || total != 1 || found[0].ID != leash.ID {
		t.Fatalf("brand search should match case-insensitively on sqlite ascii: %+v total=%d err=%v", found, total, err)
	}
}

func TestProductDeleteIsSoft(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProductRepository(db)
	product := createTestProduct(t, db, "Treat Pouch", "15.00")

	deleted, err := repo.Delete(product.ID)
	if err != nil || !deleted {
		t.Fatalf("delete failed: deleted=%v err=%v", deleted, err)
	}
	if got, err := repo.GetByID(product.ID); err != nil || got != nil {
		t.Fatalf("deleted product should be hidden: %+v err=%v", got, err)
	}
	var count int64
	if err := db.Unscoped().Model(&models.Product{}).Where("id = ?", product.ID).Count(&count).Error; err != nil || count != 1 {
		t.Fatalf("row should remain for order history: count=%d err=%v", count, err)
	}

	deleted, err = repo.Delete(product.ID)
	if err != nil || deleted {
		t.Fatalf("second delete should report nothing deleted: deleted=%v err=%v", deleted, err)
	}
}
