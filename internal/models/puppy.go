package models

import (
	"time"

	"gorm.io/gorm"
)

// Puppy 幼犬表，每条记录只能售出一次
type Puppy struct {
	ID          uint           `gorm:"primarykey" json:"id"`                               // 主键
	Name        string         `gorm:"type:varchar(120);not null" json:"name"`             // 名字
	Breed       string         `gorm:"type:varchar(120);not null;index" json:"breed"`      // 品种
	AgeInWeeks  int            `gorm:"not null;default:0" json:"age_in_weeks"`             // 周龄
	Gender      string         `gorm:"type:varchar(16);not null" json:"gender"`            // 性别
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 价格
	Description string         `gorm:"type:text" json:"description"`                       // 描述
	Images      StringArray    `gorm:"type:json" json:"images"`                            // 图片
	Vaccinated  bool           `gorm:"not null;default:false" json:"vaccinated"`           // 已接种
	Dewormed    bool           `gorm:"not null;default:false" json:"dewormed"`             // 已驱虫
	Trained     bool           `gorm:"not null;default:false" json:"trained"`              // 已训练
	BestSeller  bool           `gorm:"not null;default:false;index" json:"best_seller"`    // 热销
	IsAvailable bool           `gorm:"not null;default:true;index" json:"is_available"`    // 是否可售
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间
}

// TableName 指定表名
func (Puppy) TableName() string {
	return "puppies"
}
