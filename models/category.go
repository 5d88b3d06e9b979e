package models

import "github.com/shopspring/decimal"

type Category struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"size:128;unique;not null" json:"name"`
	Items []Item `gorm:"foreignKey:CategoryID" json:"items"`
}

type Item struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:128;unique;not null" json:"name"` // unique to simplify admin management
	Description string          `gorm:"size:256" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`
	PhotoPath   string          `gorm:"size:128" json:"photo_path"`
	CategoryID  uint            `gorm:"index;not null" json:"category_id"`
}
