package service

import (
	"strings"

	"github.com/pawhaven/internal/constants"
	"github.com/pawhaven/internal/models"
	"github.com/pawhaven/internal/repository"
)

// ProductService 商品服务
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// ProductInput 商品创建/更新参数
type ProductInput struct {
	Name        string
	Description string
	Category    string
	Brand       string
	Price       models.Money
	Stock       int
	Images      []string
	IsActive    *bool
}

// List 商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	if filter.Category != "" {
		category, ok := matchEnum(filter.Category, productCategories()...)
		if !ok {
			return []models.Product{}, 0, nil
		}
		filter.Category = category
	}
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.List(filter)
}

// Get 商品详情，onlyActive 时下架商品视为不存在
func (s *ProductService) Get(id uint, onlyActive bool) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || (onlyActive && !product.IsActive) {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 新建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	product := &models.Product{IsActive: true}
	if err := applyProductInput(product, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update 更新商品
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := applyProductInput(product, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品
func (s *ProductService) Delete(id uint) error {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProductNotFound
	}
	return nil
}

func applyProductInput(product *models.Product, input ProductInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return newValidationError(ErrInvalidInput, "name")
	}
	category, ok := matchEnum(input.Category, productCategories()...)
	if !ok {
		return newValidationError(ErrInvalidInput, "category")
	}
	if err := validatePrice(input.Price, "price"); err != nil {
		return err
	}
	if input.Stock < 0 {
		return newValidationError(ErrInvalidInput, "stock")
	}
	product.Name = name
	product.Description = strings.TrimSpace(input.Description)
	product.Category = category
	product.Brand = strings.TrimSpace(input.Brand)
	product.Price = input.Price
	product.Stock = input.Stock
	product.Images = normalizeImages(input.Images)
	product.IsActive = boolOr(input.IsActive, product.IsActive)
	return nil
}

func productCategories() []string {
	return []string{
		constants.ProductCategoryShampoo,
		constants.ProductCategoryAccessories,
		constants.ProductCategoryFood,
		constants.ProductCategoryOther,
	}
}
