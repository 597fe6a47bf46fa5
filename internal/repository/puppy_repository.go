package repository

import (
	"errors"

	"github.com/pawhaven/internal/models"

	"gorm.io/gorm"
)

// PuppyRepository 幼犬数据访问接口
type PuppyRepository interface {
	List(filter PuppyListFilter) ([]models.Puppy, int64, error)
	GetByID(id uint) (*models.Puppy, error)
	Create(puppy *models.Puppy) error
	Update(puppy *models.Puppy) error
	Delete(id uint) (bool, error)
	Reserve(id uint) (bool, error)
	SetBestSeller(id uint, bestSeller bool) (bool, error)
	WithTx(tx *gorm.DB) *GormPuppyRepository
}

// GormPuppyRepository GORM 实现
type GormPuppyRepository struct {
	db *gorm.DB
}

// NewPuppyRepository 创建幼犬仓库
func NewPuppyRepository(db *gorm.DB) *GormPuppyRepository {
	return &GormPuppyRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPuppyRepository) WithTx(tx *gorm.DB) *GormPuppyRepository {
	if tx == nil {
		return r
	}
	return &GormPuppyRepository{db: tx}
}

// List 幼犬列表，按创建时间倒序
func (r *GormPuppyRepository) List(filter PuppyListFilter) ([]models.Puppy, int64, error) {
	query := r.db.Model(&models.Puppy{})
	if filter.OnlyAvailable {
		query = query.Where("is_available = ?", true)
	}
	if filter.OnlyBestSeller {
		query = query.Where("best_seller = ?", true)
	}
	if filter.Breed != "" {
		query = query.Where("breed = ?", filter.Breed)
	}
	query = applySearch(query, filter.Search, "name", "breed")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var puppies []models.Puppy
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at desc").Order("id desc").Find(&puppies).Error; err != nil {
		return nil, 0, err
	}
	return puppies, total, nil
}

// GetByID 根据 ID 获取幼犬
func (r *GormPuppyRepository) GetByID(id uint) (*models.Puppy, error) {
	var puppy models.Puppy
	if err := r.db.First(&puppy, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &puppy, nil
}

// Create 创建幼犬
func (r *GormPuppyRepository) Create(puppy *models.Puppy) error {
	// 列带 default:true，零值 false 会被默认值覆盖，需补写
	wanted := puppy.IsAvailable
	if err := r.db.Create(puppy).Error; err != nil {
		return err
	}
	if !wanted {
		puppy.IsAvailable = false
		return r.db.Model(puppy).Update("is_available", false).Error
	}
	return nil
}

// Update 更新幼犬（管理端可重新上架）
func (r *GormPuppyRepository) Update(puppy *models.Puppy) error {
	return r.db.Save(puppy).Error
}

// Delete 软删除幼犬
func (r *GormPuppyRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&models.Puppy{}, id)
	return result.RowsAffected > 0, result.Error
}

// Reserve 原子占用幼犬：仅当仍可售时置为不可售
func (r *GormPuppyRepository) Reserve(id uint) (bool, error) {
	result := r.db.Model(&models.Puppy{}).
		Where("id = ? AND is_available = ?", id, true).
		Update("is_available", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// SetBestSeller 设置热销标记
func (r *GormPuppyRepository) SetBestSeller(id uint, bestSeller bool) (bool, error) {
	result := r.db.Model(&models.Puppy{}).Where("id = ?", id).Update("best_seller", bestSeller)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
