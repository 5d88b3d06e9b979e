package models

import "time"

type User struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ChatID    int64   `gorm:"uniqueIndex;not null" json:"chat_id"` // messaging channel identity
	FullName  string  `gorm:"size:128" json:"full_name"`
	Phone     string  `gorm:"size:128" json:"phone"`
	Address   string  `gorm:"size:256" json:"address"`
	Cart      Cart    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	Orders    []Order `gorm:"foreignKey:UserID" json:"orders"`
	CreatedAt time.Time
}
