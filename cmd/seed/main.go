package main

import (
	"github.com/pawhaven/internal/app"
	"github.com/pawhaven/internal/config"
	"github.com/pawhaven/internal/constants"
	"github.com/pawhaven/internal/logger"
	"github.com/pawhaven/internal/models"
	"github.com/pawhaven/internal/repository"
	"github.com/pawhaven/internal/service"

	"gorm.io/gorm"
)

const (
	demoUserEmail    = "demo@pawhaven.local"
	demoUserPassword = "demo12345"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	db, err := app.OpenDatabase(cfg)
	if err != nil {
		stdLog.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = models.CloseDB(db) }()

	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		stdLog.Fatalf("Failed to inspect catalog: %v", err)
	}
	if count > 0 {
		logger.Infow("seed_skipped", "reason", "catalog_not_empty", "products", count)
		return
	}

	products := seedProducts()
	puppies := seedPuppies()
	offerings := seedServices()
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&products).Error; err != nil {
			return err
		}
		if err := tx.Create(&puppies).Error; err != nil {
			return err
		}
		return tx.Create(&offerings).Error
	})
	if err != nil {
		stdLog.Fatalf("Failed to seed catalog: %v", err)
	}
	logger.Infow("seed_catalog_created", "products", len(products), "puppies", len(puppies), "services", len(offerings))

	collections := service.NewCollectionService(
		repository.NewCollectionRepository(db),
		repository.NewProductRepository(db),
		repository.NewPuppyRepository(db),
		repository.NewServiceRepository(db),
	)
	for _, input := range seedCollections(products, puppies, offerings) {
		collection, err := collections.Create(input)
		if err != nil {
			stdLog.Printf("Failed to seed collection %s: %v", input.Name, err)
			continue
		}
		logger.Infow("seed_collection_created", "key", collection.Key)
	}

	if err := seedDemoUser(repository.NewUserRepository(db)); err != nil {
		stdLog.Printf("Failed to seed demo user: %v", err)
	}
	stdLog.Println("Seed completed")
}

func seedProducts() []models.Product {
	return []models.Product{
		{
			Name:        "Oatmeal Soothing Shampoo",
			Description: "Gentle oatmeal formula for sensitive skin.",
			Category:    constants.ProductCategoryShampoo,
			Brand:       "FurFresh",
			Price:       models.MustMoney("45.00"),
			Stock:       40,
			Images:      models.StringArray{"/images/products/oatmeal-shampoo.jpg"},
			IsActive:    true,
		},
		{
			Name:        "Puppy Starter Kibble 5kg",
			Description: "Balanced dry food for puppies up to 12 months.",
			Category:    constants.ProductCategoryFood,
			Brand:       "HappyBowl",
			Price:       models.MustMoney("180.00"),
			Stock:       25,
			Images:      models.StringArray{"/images/products/starter-kibble.jpg"},
			IsActive:    true,
		},
		{
			Name:        "Reflective Nylon Leash",
			Description: "1.5m leash with reflective stitching.",
			Category:    constants.ProductCategoryAccessories,
			Brand:       "TrailTail",
			Price:       models.MustMoney("60.00"),
			Stock:       60,
			Images:      models.StringArray{"/images/products/reflective-leash.jpg"},
			IsActive:    true,
		},
		{
			Name:        "Cotton Chew Rope",
			Description: "Braided rope toy for teething puppies.",
			Category:    constants.ProductCategoryOther,
			Brand:       "TrailTail",
			Price:       models.MustMoney("25.50"),
			Stock:       80,
			Images:      models.StringArray{"/images/products/chew-rope.jpg"},
			IsActive:    true,
		},
	}
}

func seedPuppies() []models.Puppy {
	return []models.Puppy{
		{
			Name:        "Bella",
			Breed:       "Golden Retriever",
			AgeInWeeks:  10,
			Gender:      constants.GenderFemale,
			Price:       models.MustMoney("3500.00"),
			Description: "Playful and great with children.",
			Images:      models.StringArray{"/images/puppies/bella.jpg"},
			Vaccinated:  true,
			Dewormed:    true,
			BestSeller:  true,
			IsAvailable: true,
		},
		{
			Name:        "Rocky",
			Breed:       "German Shepherd",
			AgeInWeeks:  12,
			Gender:      constants.GenderMale,
			Price:       models.MustMoney("4200.00"),
			Description: "Alert, loyal and quick to learn.",
			Images:      models.StringArray{"/images/puppies/rocky.jpg"},
			Vaccinated:  true,
			Dewormed:    true,
			Trained:     true,
			BestSeller:  true,
			IsAvailable: true,
		},
		{
			Name:        "Coco",
			Breed:       "Poodle",
			AgeInWeeks:  9,
			Gender:      constants.GenderFemale,
			Price:       models.MustMoney("2800.00"),
			Description: "Low-shedding coat and calm temperament.",
			Images:      models.StringArray{"/images/puppies/coco.jpg"},
			Vaccinated:  true,
			IsAvailable: true,
		},
	}
}

func seedServices() []models.Service {
	return []models.Service{
		{
			Name:            "Full Grooming Session",
			Description:     "Bath, haircut, nail trim and ear cleaning.",
			Category:        constants.ServiceCategoryGrooming,
			Price:           models.MustMoney("150.00"),
			DurationMinutes: 90,
			Images:          models.StringArray{"/images/services/grooming.jpg"},
			IsActive:        true,
		},
		{
			Name:            "Basic Obedience Class",
			Description:     "Sit, stay and recall over one session.",
			Category:        constants.ServiceCategoryTraining,
			Price:           models.MustMoney("200.00"),
			DurationMinutes: 60,
			Images:          models.StringArray{"/images/services/obedience.jpg"},
			IsActive:        true,
		},
	}
}

func seedCollections(products []models.Product, puppies []models.Puppy, offerings []models.Service) []service.CollectionInput {
	return []service.CollectionInput{
		{
			Name:            "New Puppy Essentials",
			Description:     "Everything a new puppy needs in the first month.",
			BackgroundImage: "/images/collections/new-puppy.jpg",
			ProductIDs:      []uint{products[1].ID, products[2].ID, products[3].ID},
			PuppyIDs:        []uint{puppies[2].ID},
			ServiceIDs:      []uint{offerings[1].ID},
		},
		{
			Name:            "Spa Day",
			Description:     "Grooming favourites.",
			BackgroundImage: "/images/collections/spa-day.jpg",
			ProductIDs:      []uint{products[0].ID},
			ServiceIDs:      []uint{offerings[0].ID},
		},
	}
}

func seedDemoUser(users repository.UserRepository) error {
	existing, err := users.GetByEmail(demoUserEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	hash, err := service.HashPassword(demoUserPassword)
	if err != nil {
		return err
	}
	user := &models.User{
		Email:        demoUserEmail,
		PasswordHash: hash,
		DisplayName:  "Demo Customer",
		Locale:       "en",
		Status:       constants.UserStatusActive,
	}
	if err := users.Create(user); err != nil {
		return err
	}
	logger.Infow("seed_demo_user_created", "email", demoUserEmail)
	return nil
}
