package userEngine

import (
	"errors"

	"gorm.io/gorm"

	"github.com/rs-sku/shop-tg-bot/models"
)

// Register creates a user for the given chat id together with their cart.
// Both rows are written in one transaction so a user never exists without
// a cart.
func Register(db *gorm.DB, chatID int64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		user := models.User{ChatID: chatID}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Cart{UserID: user.ID}).Error
	})
}

// GetByChatID resolves a registered user. A chat id with no user row yields
// models.ErrUnknownUser.
func GetByChatID(db *gorm.DB, chatID int64) (*models.User, error) {
	var user models.User
	if err := db.Where("chat_id = ?", chatID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUnknownUser
		}
		return nil, err
	}
	return &user, nil
}

// CartIDByChatID resolves chat id -> user -> cart. Every cart flow calls
// this first and fails fast with models.ErrUnknownUser for unregistered
// chats.
func CartIDByChatID(db *gorm.DB, chatID int64) (uint, error) {
	user, err := GetByChatID(db, chatID)
	if err != nil {
		return 0, err
	}
	var cart models.Cart
	if err := db.Where("user_id = ?", user.ID).First(&cart).Error; err != nil {
		return 0, err
	}
	return cart.ID, nil
}

// SaveContacts fills the profile fields captured during checkout.
func SaveContacts(db *gorm.DB, userID uint, fullName, phone, address string) error {
	return db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"full_name": fullName,
			"phone":     phone,
			"address":   address,
		}).Error
}
