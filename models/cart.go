package models

import "time"

type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"uniqueIndex;not null" json:"user_id"` // Enforces ONE cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time
}

type CartItem struct {
	ID       uint `gorm:"primaryKey"`
	CartID   uint `gorm:"uniqueIndex:idx_cart_item;not null"`
	ItemID   uint `gorm:"uniqueIndex:idx_cart_item;not null"`
	Quantity int  `gorm:"not null;default:1;check:chk_cart_item_quantity,quantity > 0"`
	AddedAt  time.Time
}
