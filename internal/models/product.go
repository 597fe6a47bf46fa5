package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表（洗护、配件、食品）
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                        // 主键
	Name        string         `gorm:"type:varchar(200);not null" json:"name"`                      // 名称
	Description string         `gorm:"type:text" json:"description"`                                // 描述
	Category    string         `gorm:"type:varchar(32);not null;index" json:"category"`             // 分类
	Brand       string         `gorm:"type:varchar(120)" json:"brand"`                              // 品牌
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`          // 单价
	Stock       int            `gorm:"not null;default:0" json:"stock"`                             // 库存
	Images      StringArray    `gorm:"type:json" json:"images"`                                     // 图片
	IsActive    bool           `gorm:"not null;default:true;index" json:"is_active"`                // 是否上架
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                  // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间
	Collections []Collection   `gorm:"many2many:collection_products;" json:"collections,omitempty"` // 所属专题
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
