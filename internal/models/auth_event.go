package models

import "time"

// AuthEvent 认证审计记录，覆盖顾客与管理员的登录、注册、改密
type AuthEvent struct {
	ID         uint      `gorm:"primarykey" json:"id"`                              // 主键
	ActorType  string    `gorm:"type:varchar(16);index;not null" json:"actor_type"` // user / admin
	ActorID    uint      `gorm:"index" json:"actor_id"`                             // 失败时可为 0
	Identifier string    `gorm:"type:varchar(255);index" json:"identifier"`         // 邮箱或用户名
	Event      string    `gorm:"type:varchar(32);index;not null" json:"event"`      // login / register / password_change
	Result     string    `gorm:"type:varchar(16);index;not null" json:"result"`     // success / failed
	FailReason string    `gorm:"type:varchar(64)" json:"fail_reason"`               // 失败原因
	ClientIP   string    `gorm:"type:varchar(64);index" json:"client_ip"`           // 客户端 IP
	UserAgent  string    `gorm:"type:text" json:"user_agent"`                       // 客户端 UA
	RequestID  string    `gorm:"type:varchar(64)" json:"request_id"`                // 请求追踪 ID
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                           // 记录时间
}

// TableName 指定表名
func (AuthEvent) TableName() string {
	return "auth_events"
}
