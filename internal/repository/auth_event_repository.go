package repository

import (
	"github.com/pawhaven/internal/models"

	"gorm.io/gorm"
)

// AuthEventRepository 认证审计数据访问接口
type AuthEventRepository interface {
	Create(event *models.AuthEvent) error
	List(filter AuthEventListFilter) ([]models.AuthEvent, int64, error)
}

// GormAuthEventRepository GORM 实现
type GormAuthEventRepository struct {
	db *gorm.DB
}

// NewAuthEventRepository 创建认证审计仓库
func NewAuthEventRepository(db *gorm.DB) *GormAuthEventRepository {
	return &GormAuthEventRepository{db: db}
}

// Create 写入一条审计记录
func (r *GormAuthEventRepository) Create(event *models.AuthEvent) error {
	if event == nil {
		return nil
	}
	return r.db.Create(event).Error
}

// List 按条件倒序分页查询
func (r *GormAuthEventRepository) List(filter AuthEventListFilter) ([]models.AuthEvent, int64, error) {
	query := r.db.Model(&models.AuthEvent{})
	if filter.ActorType != "" {
		query = query.Where("actor_type = ?", filter.ActorType)
	}
	if filter.ActorID != 0 {
		query = query.Where("actor_id = ?", filter.ActorID)
	}
	if filter.Identifier != "" {
		query = query.Where("identifier = ?", filter.Identifier)
	}
	if filter.Event != "" {
		query = query.Where("event = ?", filter.Event)
	}
	if filter.Result != "" {
		query = query.Where("result = ?", filter.Result)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var events []models.AuthEvent
	if err := applyPagination(query, filter.Page, filter.PageSize).Order("id desc").Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}
