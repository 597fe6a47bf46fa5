package repository

import (
	"errors"

	"github.com/pawhaven/internal/models"

	"gorm.io/gorm"
)

// CollectionRepository 专题数据访问接口
type CollectionRepository interface {
	List() ([]models.Collection, error)
	GetByKey(key string) (*models.Collection, error)
	GetByID(id uint) (*models.Collection, error)
	Create(collection *models.Collection) error
	Update(collection *models.Collection) error
	Delete(id uint) (bool, error)
	WithTx(tx *gorm.DB) *GormCollectionRepository
}

// GormCollectionRepository GORM 实现
type GormCollectionRepository struct {
	db *gorm.DB
}

// NewCollectionRepository 创建专题仓库
func NewCollectionRepository(db *gorm.DB) *GormCollectionRepository {
	return &GormCollectionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCollectionRepository) WithTx(tx *gorm.DB) *GormCollectionRepository {
	if tx == nil {
		return r
	}
	return &GormCollectionRepository{db: tx}
}

func (r *GormCollectionRepository) withMembers() *gorm.DB {
	return r.db.Preload("Products").Preload("Puppies").Preload("Services")
}

// List 专题列表
func (r *GormCollectionRepository) List() ([]models.Collection, error) {
	var collections []models.Collection
	if err := r.withMembers().Order("id asc").Find(&collections).Error; err != nil {
		return nil, err
	}
	return collections, nil
}

// GetByKey 根据 slug 获取专题
func (r *GormCollectionRepository) GetByKey(key string) (*models.Collection, error) {
	var collection models.Collection
	if err := r.withMembers().Where("slug = ?", key).First(&collection).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &collection, nil
}

// GetByID 根据 ID 获取专题
func (r *GormCollectionRepository) GetByID(id uint) (*models.Collection, error) {
	var collection models.Collection
	if err := r.withMembers().First(&collection, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &collection, nil
}

// Create 创建专题及成员关联
func (r *GormCollectionRepository) Create(collection *models.Collection) error {
	return r.db.Omit("Products.*", "Puppies.*", "Services.*").Create(collection).Error
}

// Update 更新专题并替换成员关联
func (r *GormCollectionRepository) Update(collection *models.Collection) error {
	if err := r.db.Omit("Products", "Puppies", "Services").Save(collection).Error; err != nil {
		return err
	}
	if err := r.db.Model(collection).Association("Products").Replace(collection.Products); err != nil {
		return err
	}
	if err := r.db.Model(collection).Association("Puppies").Replace(collection.Puppies); err != nil {
		return err
	}
	return r.db.Model(collection).Association("Services").Replace(collection.Services)
}

// Delete 删除专题及关联
func (r *GormCollectionRepository) Delete(id uint) (bool, error) {
	collection := models.Collection{ID: id}
	if err := r.db.Model(&collection).Association("Products").Clear(); err != nil {
		return false, err
	}
	if err := r.db.Model(&collection).Association("Puppies").Clear(); err != nil {
		return false, err
	}
	if err := r.db.Model(&collection).Association("Services").Clear(); err != nil {
		return false, err
	}
	result := r.db.Delete(&models.Collection{}, id)
	return result.RowsAffected > 0, result.Error
}
