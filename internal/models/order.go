package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// ShippingAddress 收货地址快照
type ShippingAddress struct {
	FullName    string `gorm:"type:varchar(120)" json:"full_name"`    // 收件人
	Phone       string `gorm:"type:varchar(40)" json:"phone"`         // 电话
	AddressLine string `gorm:"type:varchar(255)" json:"address_line"` // 详细地址
	City        string `gorm:"type:varchar(120)" json:"city"`         // 城市
	Region      string `gorm:"type:varchar(120)" json:"region"`       // 地区
}

// MissingFields 返回未填写的字段名
func (a ShippingAddress) MissingFields() []string {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	check("full_name", a.FullName)
	check("phone", a.Phone)
	check("address_line", a.AddressLine)
	check("city", a.City)
	check("region", a.Region)
	return missing
}

// Order 订单表，创建后仅状态、支付、物流字段可变
type Order struct {
	ID              uint            `gorm:"primarykey" json:"id"`                                              // 主键
	OrderNo         string          `gorm:"type:varchar(40);uniqueIndex;not null" json:"order_no"`             // 订单编号
	UserID          uint            `gorm:"index;not null" json:"user_id"`                                     // 用户ID
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`             // 收货地址
	PaymentMethod   string          `gorm:"type:varchar(32);not null" json:"payment_method"`                   // 支付方式
	TotalAmount     Money           `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`         // 订单总额
	PaymentStatus   string          `gorm:"type:varchar(16);not null;default:'Pending'" json:"payment_status"` // 支付状态
	Status          string          `gorm:"type:varchar(16);not null;default:'Pending';index" json:"status"`   // 订单状态
	TrackingNumber  string          `gorm:"type:varchar(120)" json:"tracking_number"`                          // 物流单号
	PaidAt          *time.Time      `json:"paid_at"`                                                           // 支付时间
	DeliveredAt     *time.Time      `json:"delivered_at"`                                                      // 送达时间
	DeliveryDate    *time.Time      `json:"delivery_date"`                                                     // 预计送达
	CreatedAt       time.Time       `gorm:"index" json:"created_at"`                                           // 创建时间
	UpdatedAt       time.Time       `json:"updated_at"`                                                        // 更新时间
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`                                                    // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`   // 下单用户
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
