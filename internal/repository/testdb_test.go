package repository

import (
	"path/filepath"
	"testing"

	"github.com/pawhaven/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "repo.db") + "?_pragma=busy_timeout(5000)"
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

func createTestPuppy(t *testing.T, db *gorm.DB, name string) *models.Puppy {
	t.Helper()
	puppy := &models.Puppy{Name: name, Breed: "Beagle", Gender: "Male", Price: models.MustMoney("450.00"), IsAvailable: true}
	if err := db.Create(puppy).Error; err != nil {
		t.Fatalf("create puppy failed: %v", err)
	}
	return puppy
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price string) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, Category: "Food", Price: models.MustMoney(price), Stock: 10, IsActive: true}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}
