package models

import (
	"time"

	"gorm.io/gorm"
)

// Service 到店服务表（美容、训练）
type Service struct {
	ID              uint           `gorm:"primarykey" json:"id"`                               // 主键
	Name            string         `gorm:"type:varchar(200);not null" json:"name"`             // 名称
	Description     string         `gorm:"type:text" json:"description"`                       // 描述
	Category        string         `gorm:"type:varchar(32);not null;index" json:"category"`    // 分类
	Price           Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 单价
	DurationMinutes int            `gorm:"not null;default:60" json:"duration_minutes"`        // 时长（分钟）
	Images          StringArray    `gorm:"type:json" json:"images"`                            // 图片
	IsActive        bool           `gorm:"not null;default:true;index" json:"is_active"`       // 是否可预约
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间
}

// TableName 指定表名
func (Service) TableName() string {
	return "services"
}
