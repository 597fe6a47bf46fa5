package service

import (
	"context"
	"strings"
	"time"

	"github.com/pawhaven/internal/cache"
	"github.com/pawhaven/internal/constants"
	"github.com/pawhaven/internal/logger"
	"github.com/pawhaven/internal/models"
	"github.com/pawhaven/internal/repository"
)

const (
	bestSellersCacheKey = "puppies:best_sellers"
	bestSellersCacheTTL = 5 * time.Minute
	bestSellersLimit    = 100
)

// PuppyService 幼犬目录
type PuppyService struct {
	repo  repository.PuppyRepository
	cache *cache.Store
}

// NewPuppyService 创建幼犬服务
func NewPuppyService(repo repository.PuppyRepository, store *cache.Store) *PuppyService {
	return &PuppyService{repo: repo, cache: store}
}

// PuppyInput 幼犬创建/更新参数
type PuppyInput struct {
	Name        string
	Breed       string
	AgeInWeeks  int
	Gender      string
	Price       models.Money
	Description string
	Images      []string
	Vaccinated  bool
	Dewormed    bool
	Trained     bool
	BestSeller  *bool
	IsAvailable *bool
}

// List 幼犬列表
func (s *PuppyService) List(filter repository.PuppyListFilter) ([]models.Puppy, int64, error) {
	filter.Breed = strings.TrimSpace(filter.Breed)
	return s.repo.List(filter)
}

// Get 幼犬详情
func (s *PuppyService) Get(id uint) (*models.Puppy, error) {
	puppy, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if puppy == nil {
		return nil, ErrPuppyNotFound
	}
	return puppy, nil
}

// BestSellers 可售的热销幼犬，Redis 启用时缓存
func (s *PuppyService) BestSellers(ctx context.Context) ([]models.Puppy, error) {
	var cached []models.Puppy
	if hit, err := s.cache.GetJSON(ctx, bestSellersCacheKey, &cached); err == nil && hit {
		return cached, nil
	} else if err != nil {
		logger.Warnw("best_sellers_cache_read_failed", "error", err)
	}
	puppies, _, err := s.repo.List(repository.PuppyListFilter{
		OnlyAvailable:  true,
		OnlyBestSeller: true,
		Page:           1,
		PageSize:       bestSellersLimit,
	})
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(ctx, bestSellersCacheKey, puppies, bestSellersCacheTTL); err != nil {
		logger.Warnw("best_sellers_cache_write_failed", "error", err)
	}
	return puppies, nil
}

// SetBestSeller 设置热销标记
func (s *PuppyService) SetBestSeller(ctx context.Context, id uint, bestSeller bool) (*models.Puppy, error) {
	updated, err := s.repo.SetBestSeller(id, bestSeller)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrPuppyNotFound
	}
	s.invalidateBestSellers(ctx)
	return s.Get(id)
}

// Create 新建幼犬
func (s *PuppyService) Create(ctx context.Context, input PuppyInput) (*models.Puppy, error) {
	puppy := &models.Puppy{IsAvailable: true}
	if err := applyPuppyInput(puppy, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(puppy); err != nil {
		return nil, err
	}
	if puppy.BestSeller {
		s.invalidateBestSellers(ctx)
	}
	return puppy, nil
}

// Update 更新幼犬，管理员可在此重新上架
func (s *PuppyService) Update(ctx context.Context, id uint, input PuppyInput) (*models.Puppy, error) {
	puppy, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if puppy == nil {
		return nil, ErrPuppyNotFound
	}
	if err := applyPuppyInput(puppy, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(puppy); err != nil {
		return nil, err
	}
	s.invalidateBestSellers(ctx)
	return puppy, nil
}

// Delete 删除幼犬
func (s *PuppyService) Delete(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPuppyNotFound
	}
	s.invalidateBestSellers(ctx)
	return nil
}

func (s *PuppyService) invalidateBestSellers(ctx context.Context) {
	if err := s.cache.Del(ctx, bestSellersCacheKey); err != nil {
		logger.Warnw("best_sellers_cache_invalidate_failed", "error", err)
	}
}

func applyPuppyInput(puppy *models.Puppy, input PuppyInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return newValidationError(ErrInvalidInput, "name")
	}
	breed := strings.TrimSpace(input.Breed)
	if breed == "" {
		return newValidationError(ErrInvalidInput, "breed")
	}
	gender, ok := matchEnum(input.Gender, constants.GenderMale, constants.GenderFemale)
	if !ok {
		return newValidationError(ErrInvalidInput, "gender")
	}
	if input.AgeInWeeks < 0 {
		return newValidationError(ErrInvalidInput, "ageInWeeks")
	}
	if err := validatePrice(input.Price, "price"); err != nil {
		return err
	}
	puppy.Name = name
	puppy.Breed = breed
	puppy.AgeInWeeks = input.AgeInWeeks
	puppy.Gender = gender
	puppy.Price = input.Price
	puppy.Description = strings.TrimSpace(input.Description)
	puppy.Images = normalizeImages(input.Images)
	puppy.Vaccinated = input.Vaccinated
	puppy.Dewormed = input.Dewormed
	puppy.Trained = input.Trained
	puppy.BestSeller = boolOr(input.BestSeller, puppy.BestSeller)
	puppy.IsAvailable = boolOr(input.IsAvailable, puppy.IsAvailable)
	return nil
}
