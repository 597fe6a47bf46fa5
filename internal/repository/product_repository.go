package repository

import (
	"errors"

	"github.com/pawhaven/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) (bool, error)
	WithTx(tx *gorm.DB) *GormProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) *GormProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	query = applySearch(query, filter.Search, "name", "brand")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("Collections").Order("id desc").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID 根据 ID 获取商品（含所属专题）
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Collections").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	// 列带 default:true，零值 false 会被默认值覆盖，需补写
	wanted := product.IsActive
	if err := r.db.Create(product).Error; err != nil {
		return err
	}
	if !wanted {
		product.IsActive = false
		return r.db.Model(product).Update("is_active", false).Error
	}
	return nil
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Omit("Collections").Save(product).Error
}

// Delete 软删除商品
func (r *GormProductRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&models.Product{}, id)
	return result.RowsAffected > 0, result.Error
}
