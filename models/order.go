package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeliveryType string

const (
	DeliveryPickup DeliveryType = "PICKUP"
	DeliveryToHome DeliveryType = "TO_HOME"
)

// Label returns the user-facing name of a delivery type.
func (d DeliveryType) Label() string {
	switch d {
	case DeliveryPickup:
		return "Pickup from store"
	case DeliveryToHome:
		return "Courier to your address"
	default:
		return string(d)
	}
}

const OrderStatusCreated = "Created"

type Order struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Number       uuid.UUID    `gorm:"type:uuid;uniqueIndex;not null" json:"number"`
	Approved     bool         `gorm:"not null;default:false" json:"approved"`
	DeliveryType DeliveryType `gorm:"type:VARCHAR(20);not null" json:"delivery_type"`
	Status       string       `gorm:"size:256;not null;default:'Created'" json:"status"`
	UserID       uint         `gorm:"index;not null" json:"user_id"`
	CreatedAt    time.Time    `json:"created_at"`
}

// BeforeCreate allocates the user-facing order number.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.Number == uuid.Nil {
		o.Number = uuid.New()
	}
	return nil
}
