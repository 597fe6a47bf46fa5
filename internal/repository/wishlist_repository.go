package repository

import (
	"github.com/pawhaven/internal/models"

	"gorm.io/gorm"
)

// WishlistRepository 心愿单数据访问接口
type WishlistRepository interface {
	ListByUser(userID uint) ([]models.WishlistItem, error)
	Exists(userID uint, itemType string, itemID uint) (bool, error)
	Create(item *models.WishlistItem) error
	Delete(userID uint, itemType string, itemID uint) (bool, error)
	CountByUser(userID uint) (int64, error)
}

// GormWishlistRepository GORM 实现
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建心愿单仓库
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// ListByUser 获取用户心愿单
func (r *GormWishlistRepository) ListByUser(userID uint) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := r.db.Where("user_id = ?", userID).Order("id desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Exists 判断是否已收藏
func (r *GormWishlistRepository) Exists(userID uint, itemType string, itemID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.WishlistItem{}).
		Where("user_id = ? AND item_type = ? AND item_id = ?", userID, itemType, itemID).
		Count(&count).Error
	return count > 0, err
}

// Create 添加心愿单项
func (r *GormWishlistRepository) Create(item *models.WishlistItem) error {
	return r.db.Create(item).Error
}

// Delete 删除心愿单项，返回是否存在
func (r *GormWishlistRepository) Delete(userID uint, itemType string, itemID uint) (bool, error) {
	result := r.db.Where("user_id = ? AND item_type = ? AND item_id = ?", userID, itemType, itemID).
		Delete(&models.WishlistItem{})
	return result.RowsAffected > 0, result.Error
}

// CountByUser 统计心愿单数量
func (r *GormWishlistRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.WishlistItem{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
