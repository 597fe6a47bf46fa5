package models

import "time"

// WishlistItem 心愿单项（商品或幼犬）
type WishlistItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                                          // 主键
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_item" json:"user_id"`                    // 用户ID
	ItemType  string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_wishlist_user_item" json:"item_type"` // 类型
	ItemID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_item" json:"item_id"`                    // 目录对象ID
	CreatedAt time.Time `json:"created_at"`                                                                    // 加入时间
}

// TableName 指定表名
func (WishlistItem) TableName() string {
	return "wishlist_items"
}
