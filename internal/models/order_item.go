package models

import "time"

// OrderItem 订单项，下单时快照名称与单价
type OrderItem struct {
	ID              uint       `gorm:"primarykey" json:"id"`                                     // 主键
	OrderID         uint       `gorm:"index;not null" json:"order_id"`                           // 订单ID
	ItemType        string     `gorm:"type:varchar(16);not null" json:"item_type"`               // 类型
	ItemID          uint       `gorm:"not null;index" json:"item_id"`                            // 目录对象ID
	ItemName        string     `gorm:"type:varchar(200);not null" json:"item_name"`              // 名称快照
	UnitPrice       Money      `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`  // 单价快照
	Quantity        int        `gorm:"not null" json:"quantity"`                                 // 数量
	TotalPrice      Money      `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 小计
	DeliveryType    string     `gorm:"type:varchar(20);not null" json:"delivery_type"`           // 交付方式
	ServiceDate     *time.Time `json:"service_date,omitempty"`                                   // 服务日期
	ServiceOptionID string     `gorm:"type:varchar(32)" json:"service_option_id,omitempty"`      // 服务选项
	CreatedAt       time.Time  `json:"created_at"`                                               // 创建时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
