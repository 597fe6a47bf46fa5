package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/pawhaven/internal/constants"

	"gorm.io/gorm"
)

// ErrCartItemRef 购物车项必须且只能引用一个目录对象
var ErrCartItemRef = errors.New("cart item must reference exactly one of product, service or puppy")

// Cart 购物车，每个用户一个
type Cart struct {
	ID        uint       `gorm:"primarykey" json:"id"`                // 主键
	UserID    uint       `gorm:"not null;uniqueIndex" json:"user_id"` // 用户ID
	CreatedAt time.Time  `json:"created_at"`                          // 创建时间
	UpdatedAt time.Time  `json:"updated_at"`                          // 更新时间
	Items     []CartItem `gorm:"foreignKey:CartID" json:"items"`      // 购物车项
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// ItemRef 目录对象引用
type ItemRef struct {
	Type string `json:"type"`
	ID   uint   `json:"id"`
}

// Key 返回唯一键，如 Product:12
func (r ItemRef) Key() string {
	return fmt.Sprintf("%s:%d", r.Type, r.ID)
}

// CartItem 购物车项，product/service/puppy 三选一
type CartItem struct {
	ID               uint       `gorm:"primarykey" json:"id"`                                             // 主键
	CartID           uint       `gorm:"not null;uniqueIndex:idx_cart_item_ref" json:"cart_id"`            // 购物车ID
	ItemType         string     `gorm:"type:varchar(16);not null" json:"item_type"`                       // 引用类型
	ProductID        *uint      `gorm:"index" json:"product_id,omitempty"`                                // 商品ID
	ServiceID        *uint      `gorm:"index" json:"service_id,omitempty"`                                // 服务ID
	PuppyID          *uint      `gorm:"index" json:"puppy_id,omitempty"`                                  // 幼犬ID
	RefKey           string     `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_item_ref" json:"-"` // 引用唯一键
	Quantity         int        `gorm:"not null;default:1" json:"quantity"`                               // 数量
	ServiceDate      *time.Time `json:"service_date,omitempty"`                                           // 服务日期
	ServiceOptionID  string     `gorm:"type:varchar(32)" json:"service_option_id,omitempty"`              // 服务选项
	DeliveryOptionID string     `gorm:"type:varchar(32);not null;default:'1'" json:"delivery_option_id"`  // 配送选项
	CreatedAt        time.Time  `json:"created_at"`                                                       // 创建时间
	UpdatedAt        time.Time  `json:"updated_at"`                                                       // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Puppy   *Puppy   `gorm:"foreignKey:PuppyID" json:"puppy,omitempty"`
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}

// Ref 返回引用，校验失败时返回 ErrCartItemRef
func (i *CartItem) Ref() (ItemRef, error) {
	set := 0
	var ref ItemRef
	if i.ProductID != nil {
		set++
		ref = ItemRef{Type: constants.ItemTypeProduct, ID: *i.ProductID}
	}
	if i.ServiceID != nil {
		set++
		ref = ItemRef{Type: constants.ItemTypeService, ID: *i.ServiceID}
	}
	if i.PuppyID != nil {
		set++
		ref = ItemRef{Type: constants.ItemTypePuppy, ID: *i.PuppyID}
	}
	if set != 1 || ref.ID == 0 {
		return ItemRef{}, ErrCartItemRef
	}
	return ref, nil
}

// BeforeCreate 写入前校验三选一并同步 RefKey
func (i *CartItem) BeforeCreate(_ *gorm.DB) error {
	return i.syncRef()
}

func (i *CartItem) syncRef() error {
	ref, err := i.Ref()
	if err != nil {
		return err
	}
	if i.Quantity < 1 {
		i.Quantity = 1
	}
	if ref.Type == constants.ItemTypePuppy {
		i.Quantity = 1
	}
	i.ItemType = ref.Type
	i.RefKey = ref.Key()
	return nil
}

// NewCartItem 根据引用构造购物车项
func NewCartItem(cartID uint, ref ItemRef, quantity int) (*CartItem, error) {
	item := &CartItem{CartID: cartID, Quantity: quantity, DeliveryOptionID: constants.DeliveryOptionPickup}
	id := ref.ID
	switch ref.Type {
	case constants.ItemTypeProduct:
		item.ProductID = &id
	case constants.ItemTypeService:
		item.ServiceID = &id
	case constants.ItemTypePuppy:
		item.PuppyID = &id
	default:
		return nil, ErrCartItemRef
	}
	if err := item.syncRef(); err != nil {
		return nil, err
	}
	return item, nil
}
