package service

import (
	"testing"

	"github.com/pawhaven/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWishlistServiceForTest(f *shopFixture) *WishlistService {
	return NewWishlistService(
		repository.NewWishlistRepository(f.db),
		repository.NewProductRepository(f.db),
		repository.NewPuppyRepository(f.db),
	)
}

func TestWishlistAddAndRemove(t *testing.T) {
	f := newShopFixture(t)
	svc := newWishlistServiceForTest(f)
	user := f.createUser(t, "fan@example.test")
	food := f.createProduct(t, "Puppy Food", "12.00")
	puppy := f.createPuppy(t, "Bella", "400.00")

	view, err := svc.Add(user.ID, "product", food.ID)
	require.NoError(t, err)
	assert.Len(t, view.Products, 1)
	assert.Empty(t, view.Puppies)

	view, err = svc.Add(user.ID, "Puppy", puppy.ID)
	require.NoError(t, err)
	assert.Len(t, view.Puppies, 1)

	_, err = svc.Add(user.ID, "product", food.ID)
	assert.ErrorIs(t, err, ErrWishlistDuplicate)

	view, err = svc.Remove(user.ID, "Product", food.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Products)
	assert.Len(t, view.Puppies, 1)

	_, err = svc.Remove(user.ID, "Product", food.ID)
	assert.ErrorIs(t, err, ErrWishlistMissing)
}

func TestWishlistValidatesReference(t *testing.T) {
	f := newShopFixture(t)
	svc := newWishlistServiceForTest(f)
	user := f.createUser(t, "fan@example.test")

	_, err := svc.Add(user.ID, "", 0)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"itemType", "itemId"}, verr.Fields)

	_, err = svc.Add(user.ID, "Service", 1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Add(user.ID, "Product", 404)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = svc.Add(user.ID, "Puppy", 404)
	assert.ErrorIs(t, err, ErrPuppyNotFound)
}

func TestWishlistSkipsDeletedCatalogRows(t *testing.T) {
	f := newShopFixture(t)
	svc := newWishlistServiceForTest(f)
	user := f.createUser(t, "fan@example.test")
	food := f.createProduct(t, "Puppy Food", "12.00")

	_, err := svc.Add(user.ID, "product", food.ID)
	require.NoError(t, err)
	require.NoError(t, f.db.Delete(food).Error)

	view, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Products)
}
