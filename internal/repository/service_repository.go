package repository

import (
	"errors"

	"github.com/pawhaven/internal/models"

	"gorm.io/gorm"
)

// ServiceRepository 服务项目数据访问接口
type ServiceRepository interface {
	List(filter ServiceListFilter) ([]models.Service, int64, error)
	GetByID(id uint) (*models.Service, error)
	Create(service *models.Service) error
	Update(service *models.Service) error
	Delete(id uint) (bool, error)
	WithTx(tx *gorm.DB) *GormServiceRepository
}

// GormServiceRepository GORM 实现
type GormServiceRepository struct {
	db *gorm.DB
}

// NewServiceRepository 创建服务仓库
func NewServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

// WithTx 绑定事务
func (r *GormServiceRepository) WithTx(tx *gorm.DB) *GormServiceRepository {
	if tx == nil {
		return r
	}
	return &GormServiceRepository{db: tx}
}

// List 服务列表，按创建时间倒序
func (r *GormServiceRepository) List(filter ServiceListFilter) ([]models.Service, int64, error) {
	query := r.db.Model(&models.Service{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var services []models.Service
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at desc").Find(&services).Error; err != nil {
		return nil, 0, err
	}
	return services, total, nil
}

// GetByID 根据 ID 获取服务
func (r *GormServiceRepository) GetByID(id uint) (*models.Service, error) {
	var service models.Service
	if err := r.db.First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

// Create 创建服务
func (r *GormServiceRepository) Create(service *models.Service) error {
	// 列带 default:true，零值 false 会被默认值覆盖，需补写
	wanted := service.IsActive
	if err := r.db.Create(service).Error; err != nil {
		return err
	}
	if !wanted {
		service.IsActive = false
		return r.db.Model(service).Update("is_active", false).Error
	}
	return nil
}

// Update 更新服务
func (r *GormServiceRepository) Update(service *models.Service) error {
	return r.db.Save(service).Error
}

// Delete 软删除服务
func (r *GormServiceRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&models.Service{}, id)
	return result.RowsAffected > 0, result.Error
}
