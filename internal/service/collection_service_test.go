package service

import (
	"testing"

	"github.com/pawhaven/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCollectionServiceForTest(f *shopFixture) *CollectionService {
	return NewCollectionService(
		repository.NewCollectionRepository(f.db),
		repository.NewProductRepository(f.db),
		repository.NewPuppyRepository(f.db),
		repository.NewServiceRepository(f.db),
	)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Summer Picks":          "summer-picks",
		"  Food & Treats!  ":    "food-and-treats",
		"Best__of--2024":        "best-of-2024",
		"Café Collection":       "caf-collection",
		"!!!":                   "",
		"Grooming   Essentials": "grooming-essentials",
	}
	for in, want := range cases {
		assert.Equal(t, want, slugify(in), in)
	}
}

func TestCollectionLifecycle(t *testing.T) {
	f := newShopFixture(t)
	svc := newCollectionServiceForTest(f)
	shampoo := f.createProduct(t, "Shampoo", "5.00")
	leash := f.createProduct(t, "Leash", "9.00")
	puppy := f.createPuppy(t, "Coco", "300.00")
	grooming := f.createService(t, "Full Groom", "40.00")

	created, err := svc.Create(CollectionInput{
		Name:       "Spring Picks",
		ProductIDs: []uint{shampoo.ID, shampoo.ID},
		PuppyIDs:   []uint{puppy.ID},
		ServiceIDs: []uint{grooming.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "spring-picks", created.Key)
	assert.Len(t, created.Products, 1)
	assert.Len(t, created.Puppies, 1)
	assert.Len(t, created.Services, 1)

	_, err = svc.Create(CollectionInput{Name: "spring picks"})
	assert.ErrorIs(t, err, ErrCollectionExists)

	updated, err := svc.Update(created.ID, CollectionInput{Name: "Summer Picks", ProductIDs: []uint{leash.ID}})
	require.NoError(t, err)
	assert.Equal(t, "summer-picks", updated.Key)
	require.Len(t, updated.Products, 1)
	assert.Equal(t, "Leash", updated.Products[0].Name)
	assert.Len(t, updated.Puppies, 1, "nil member list keeps existing members")

	got, err := svc.GetByKey("SUMMER-PICKS")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetByKey("spring-picks")
	assert.ErrorIs(t, err, ErrCollectionNotFound)

	require.NoError(t, svc.Delete(created.ID))
	assert.ErrorIs(t, svc.Delete(created.ID), ErrCollectionNotFound)

	var productCount int64
	require.NoError(t, f.db.Table("products").Count(&productCount).Error)
	assert.EqualValues(t, 2, productCount, "deleting a collection keeps catalog rows")
}

func TestCollectionRejectsUnknownMembers(t *testing.T) {
	f := newShopFixture(t)
	svc := newCollectionServiceForTest(f)

	_, err := svc.Create(CollectionInput{Name: "Ghosts", ProductIDs: []uint{999}})
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = svc.Create(CollectionInput{Name: "Ghost Pups", PuppyIDs: []uint{999}})
	assert.ErrorIs(t, err, ErrPuppyNotFound)

	_, err = svc.Create(CollectionInput{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(999, CollectionInput{Name: "Nope"})
	assert.ErrorIs(t, err, ErrCollectionNotFound)
}

func TestCollectionRenameConflict(t *testing.T) {
	f := newShopFixture(t)
	svc := newCollectionServiceForTest(f)

	_, err := svc.Create(CollectionInput{Name: "Puppy Starter"})
	require.NoError(t, err)
	other, err := svc.Create(CollectionInput{Name: "Grooming"})
	require.NoError(t, err)

	_, err = svc.Update(other.ID, CollectionInput{Name: "Puppy  Starter"})
	assert.ErrorIs(t, err, ErrCollectionExists)
}
