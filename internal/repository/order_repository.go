package repository

import (
	"errors"
	"strings"

	"github.com/pawhaven/internal/models"

	"gorm.io/gorm"
)

// OrderReceiver 订单通知收件人
type OrderReceiver struct {
	Email string
	Name  string
}

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderItem) error
	GetByID(id uint) (*models.Order, error)
	GetByIDAndUser(id uint, userID uint) (*models.Order, error)
	ResolveReceiverByOrderID(orderID uint) (OrderReceiver, error)
	ListByUser(filter OrderListFilter) ([]models.Order, int64, error)
	ListAdmin(filter OrderListFilter) ([]models.Order, int64, error)
	CountByUser(userID uint) (int64, error)
	TransitionStatus(id uint, from, to string, updates map[string]interface{}) (bool, error)
	UpdateFields(id uint, updates map[string]interface{}) error
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Create 创建订单与订单项
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	if err := r.db.Omit("Items", "User").Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	order.Items = items
	return nil
}

// GetByID 根据 ID 获取订单
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").Preload("User").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDAndUser 获取用户自己的订单
func (r *GormOrderRepository) GetByIDAndUser(id uint, userID uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ResolveReceiverByOrderID 解析订单通知的收件邮箱与称呼
func (r *GormOrderRepository) ResolveReceiverByOrderID(orderID uint) (OrderReceiver, error) {
	if orderID == 0 {
		return OrderReceiver{}, nil
	}
	var row struct {
		Email       string
		DisplayName string
		FullName    string
	}
	err := r.db.Model(&models.Order{}).
		Select("users.email AS email, users.display_name AS display_name, orders.ship_full_name AS full_name").
		Joins("JOIN users ON users.id = orders.user_id").
		Where("orders.id = ?", orderID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderReceiver{}, nil
		}
		return OrderReceiver{}, err
	}
	name := strings.TrimSpace(row.DisplayName)
	if name == "" {
		name = strings.TrimSpace(row.FullName)
	}
	return OrderReceiver{Email: strings.TrimSpace(row.Email), Name: name}, nil
}

// ListByUser 用户订单列表，最新在前
func (r *GormOrderRepository) ListByUser(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Where("user_id = ?", filter.UserID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	return r.list(query, filter, false)
}

// ListAdmin 管理端订单列表
func (r *GormOrderRepository) ListAdmin(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no = ?", filter.OrderNo)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}
	return r.list(query, filter, true)
}

func (r *GormOrderRepository) list(query *gorm.DB, filter OrderListFilter, withUser bool) ([]models.Order, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var orders []models.Order
	query = applyPagination(query, filter.Page, filter.PageSize)
	if withUser {
		query = query.Preload("User")
	}
	if err := query.Preload("Items").Order("created_at desc").Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// CountByUser 统计用户订单数
func (r *GormOrderRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// TransitionStatus 仅当当前状态为 from 时更新为 to
func (r *GormOrderRepository) TransitionStatus(id uint, from, to string, updates map[string]interface{}) (bool, error) {
	values := map[string]interface{}{}
	for k, v := range updates {
		values[k] = v
	}
	values["status"] = to
	result := r.db.Model(&models.Order{}).Where("id = ? AND status = ?", id, from).Updates(values)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// UpdateFields 更新物流与支付字段
func (r *GormOrderRepository) UpdateFields(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
}
