package orderEngine

import (
	"errors"

	"gorm.io/gorm"

	"github.com/rs-sku/shop-tg-bot/models"
)

// Create allocates an order for the user with a fresh number and default
// status, then flips the approval flag as the terminal step of checkout
// (the user has already confirmed in-conversation). Returns the created
// order for user display.
func Create(db *gorm.DB, userID uint, deliveryType models.DeliveryType) (*models.Order, error) {
	order := models.Order{
		UserID:       userID,
		DeliveryType: deliveryType,
		Status:       models.OrderStatusCreated,
	}
	if err := db.Create(&order).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).
		Where("id = ?", order.ID).
		Update("approved", true).Error; err != nil {
		return nil, err
	}
	order.Approved = true

	broadcastNewOrder(order)
	return &order, nil
}

// ChangeStatus overwrites the free-text status of an order.
func ChangeStatus(db *gorm.DB, orderID uint, newStatus string) error {
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrOrderNotFound
		}
		return err
	}
	return db.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", newStatus).Error
}

// ListAll returns every order for operator review.
func ListAll(db *gorm.DB) ([]models.Order, error) {
	var orders []models.Order
	if err := db.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
