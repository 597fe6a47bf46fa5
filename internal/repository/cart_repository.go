package repository

import (
	"errors"

	"github.com/pawhaven/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetByUser(userID uint) (*models.Cart, error)
	GetByUserForUpdate(userID uint) (*models.Cart, error)
	GetOrCreate(userID uint) (*models.Cart, bool, error)
	ListItems(cartID uint) ([]models.CartItem, error)
	GetItem(cartID uint, refKey string) (*models.CartItem, error)
	CreateItem(item *models.CartItem) error
	IncrementItem(itemID uint, delta int, updates map[string]interface{}) error
	UpdateItem(itemID uint, updates map[string]interface{}) error
	DecrementItem(itemID uint) (bool, error)
	DeleteItem(itemID uint) error
	ClearItems(cartID uint) (int64, error)
	SumQuantityByUser(userID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetByUser 获取用户购物车，不存在返回 nil
func (r *GormCartRepository) GetByUser(userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetByUserForUpdate 事务内加行锁读取购物车，同一用户的结算串行执行
func (r *GormCartRepository) GetByUserForUpdate(userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetOrCreate 获取或懒创建购物车，第二个返回值表示是否新建
func (r *GormCartRepository) GetOrCreate(userID uint) (*models.Cart, bool, error) {
	cart, err := r.GetByUser(userID)
	if err != nil || cart != nil {
		return cart, false, err
	}
	cart = &models.Cart{UserID: userID}
	if err := r.db.Create(cart).Error; err != nil {
		// 并发创建时唯一索引冲突，回读已存在的购物车
		existing, getErr := r.GetByUser(userID)
		if getErr == nil && existing != nil {
			return existing, false, nil
		}
		return nil, false, err
	}
	return cart, true, nil
}

// ListItems 获取购物车项并加载目录数据
func (r *GormCartRepository) ListItems(cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").Preload("Service").Preload("Puppy").
		Where("cart_id = ?", cartID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem 根据引用键获取购物车项
func (r *GormCartRepository) GetItem(cartID uint, refKey string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("cart_id = ? AND ref_key = ?", cartID, refKey).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem 新增购物车项
func (r *GormCartRepository) CreateItem(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// IncrementItem 原子增加数量并更新附加字段
func (r *GormCartRepository) IncrementItem(itemID uint, delta int, updates map[string]interface{}) error {
	values := map[string]interface{}{}
	for k, v := range updates {
		values[k] = v
	}
	values["quantity"] = gorm.Expr("quantity + ?", delta)
	return r.db.Model(&models.CartItem{}).Where("id = ?", itemID).Updates(values).Error
}

// UpdateItem 更新购物车项字段
func (r *GormCartRepository) UpdateItem(itemID uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.CartItem{}).Where("id = ?", itemID).Updates(updates).Error
}

// DecrementItem 数量大于 1 时原子减一，返回是否成功减少
func (r *GormCartRepository) DecrementItem(itemID uint) (bool, error) {
	result := r.db.Model(&models.CartItem{}).
		Where("id = ? AND quantity > 1", itemID).
		Update("quantity", gorm.Expr("quantity - 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// DeleteItem 删除购物车项
func (r *GormCartRepository) DeleteItem(itemID uint) error {
	return r.db.Delete(&models.CartItem{}, itemID).Error
}

// ClearItems 清空购物车项，保留购物车
func (r *GormCartRepository) ClearItems(cartID uint) (int64, error) {
	result := r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// SumQuantityByUser 统计用户购物车商品总数
func (r *GormCartRepository) SumQuantityByUser(userID uint) (int64, error) {
	var total int64
	err := r.db.Model(&models.CartItem{}).
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("carts.user_id = ?", userID).
		Select("COALESCE(SUM(cart_items.quantity), 0)").
		Scan(&total).Error
	return total, err
}
