package repository

import (
	"errors"

	"github.com/pawhaven/internal/models"

	"gorm.io/gorm"
)

// BookingRepository 预约数据访问接口
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id uint) (*models.Booking, error)
	List(filter BookingListFilter) ([]models.Booking, int64, error)
	UpdateStatus(id uint, status string) error
	Delete(id uint) (bool, error)
}

// GormBookingRepository GORM 实现
type GormBookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository 创建预约仓库
func NewBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Create 创建预约
func (r *GormBookingRepository) Create(booking *models.Booking) error {
	return r.db.Omit("User", "Service").Create(booking).Error
}

// GetByID 根据 ID 获取预约
func (r *GormBookingRepository) GetByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.Preload("Service").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// List 预约列表，按预约时间升序
func (r *GormBookingRepository) List(filter BookingListFilter) ([]models.Booking, int64, error) {
	query := r.db.Model(&models.Booking{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []models.Booking
	query = applyPagination(query, filter.Page, filter.PageSize)
	if filter.UserID == 0 {
		query = query.Preload("User")
	}
	if err := query.Preload("Service").Order("appointment_date asc").Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// UpdateStatus 更新预约状态
func (r *GormBookingRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Booking{}).Where("id = ?", id).Update("status", status).Error
}

// Delete 删除预约
func (r *GormBookingRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&models.Booking{}, id)
	return result.RowsAffected > 0, result.Error
}
