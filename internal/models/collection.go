package models

import "time"

// Collection 专题（精选商品、幼犬、服务）
type Collection struct {
	ID              uint      `gorm:"primarykey" json:"id"`                                          // 主键
	Key             string    `gorm:"column:slug;type:varchar(160);uniqueIndex;not null" json:"key"` // slug
	Name            string    `gorm:"type:varchar(160);not null" json:"name"`                        // 名称
	Description     string    `gorm:"type:text" json:"description"`                                  // 描述
	BackgroundImage string    `gorm:"type:varchar(500)" json:"background_image"`                     // 背景图
	CreatedAt       time.Time `json:"created_at"`                                                    // 创建时间
	UpdatedAt       time.Time `json:"updated_at"`                                                    // 更新时间

	Products []Product `gorm:"many2many:collection_products;" json:"products"`
	Puppies  []Puppy   `gorm:"many2many:collection_puppies;" json:"puppies"`
	Services []Service `gorm:"many2many:collection_services;" json:"services"`
}

// TableName 指定表名
func (Collection) TableName() string {
	return "collections"
}
