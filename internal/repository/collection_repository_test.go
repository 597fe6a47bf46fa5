package repository

import (
	"testing"

	"github.com/pawhaven/internal/models"
)

func TestCollectionMembersRoundTrip(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCollectionRepository(db)
	product := createTestProduct(t, db, "Shampoo", "5.00")
	puppy := createTestPuppy(t, db, "Coco")

	collection := &models.Collection{
		Key:      "spring-picks",
		Name:     "Spring Picks",
		Products: []models.Product{{ID: product.ID}},
		Puppies:  []models.Puppy{{ID: puppy.ID}},
	}
	if err := repo.Create(collection); err != nil {
		t.Fatalf("create collection failed: %v", err)
	}

	got, err := repo.GetByKey("spring-picks")
	if err != nil || got == nil {
		t.Fatalf("get by key failed: %v", err)
	}
	if len(got.Products) != 1 || got.Products[0].Name != "Shampoo" || len(got.Puppies) != 1 {
		t.Fatalf("members not loaded: %+v", got)
	}

	got.Products = nil
	if err := repo.Update(got); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	reloaded, _ := repo.GetByID(got.ID)
	if len(reloaded.Products) != 0 || len(reloaded.Puppies) != 1 {
		t.Fatalf("products should be replaced: %+v", reloaded)
	}

	ok, err := repo.Delete(got.ID)
	if err != nil || !ok {
		t.Fatalf("delete failed: ok=%v err=%v", ok, err)
	}
	if missing, _ := repo.GetByKey("spring-picks"); missing != nil {
		t.Fatalf("collection should be gone")
	}
}
