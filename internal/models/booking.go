package models

import "time"

// Booking 服务预约
type Booking struct {
	ID              uint      `gorm:"primarykey" json:"id"`                                      // 主键
	UserID          uint      `gorm:"not null;index" json:"user_id"`                             // 用户ID
	ServiceID       uint      `gorm:"not null;index" json:"service_id"`                          // 服务ID
	AppointmentDate time.Time `gorm:"not null;index" json:"appointment_date"`                    // 预约时间
	Status          string    `gorm:"type:varchar(16);not null;default:'Pending'" json:"status"` // 状态
	Notes           string    `gorm:"type:text" json:"notes"`                                    // 备注
	CreatedAt       time.Time `json:"created_at"`                                                // 创建时间
	UpdatedAt       time.Time `json:"updated_at"`                                                // 更新时间

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

// TableName 指定表名
func (Booking) TableName() string {
	return "bookings"
}
