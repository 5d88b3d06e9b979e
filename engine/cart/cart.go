package cartEngine

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rs-sku/shop-tg-bot/models"
)

// Line is one cart entry joined with its catalog item.
type Line struct {
	Item     models.Item
	Quantity int
}

// lockForUpdate applies SELECT ... FOR UPDATE where the dialect supports it.
// SQLite has no row locks; its single-writer database lock serializes the
// same race.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// AddOne increments the quantity of an item in the cart by one, inserting
// the line with quantity 1 if it is not there yet. The (cart,item) row is
// locked for the duration of the transaction so concurrent increments
// serialize instead of losing updates.
func AddOne(db *gorm.DB, cartID, itemID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var line models.CartItem
		err := lockForUpdate(tx).
			Where("cart_id = ? AND item_id = ?", cartID, itemID).
			First(&line).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(&models.CartItem{
					CartID:   cartID,
					ItemID:   itemID,
					Quantity: 1,
					AddedAt:  time.Now(),
				}).Error
			}
			return err
		}
		return tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND item_id = ?", cartID, itemID).
			Update("quantity", line.Quantity+1).Error
	})
}

// SetQuantity overwrites the quantity of a cart line. A non-positive
// quantity removes the line instead; the positive-quantity constraint is
// also enforced by the store, and a violation slipping through rolls back
// and is recovered by deleting the offending row.
func SetQuantity(db *gorm.DB, cartID, itemID uint, newQuantity int) error {
	if newQuantity <= 0 {
		return Remove(db, cartID, itemID)
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		var line models.CartItem
		if err := lockForUpdate(tx).
			Where("cart_id = ? AND item_id = ?", cartID, itemID).
			First(&line).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // nothing to update; absence is not an error
			}
			return err
		}
		return tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND item_id = ?", cartID, itemID).
			Update("quantity", newQuantity).Error
	})
	if err != nil && isConstraintViolation(err) {
		if delErr := Remove(db, cartID, itemID); delErr != nil {
			return delErr
		}
		log.Printf("quantity constraint violated for cart %d item %d, line deleted: %v", cartID, itemID, err)
		return nil
	}
	return err
}

// Remove deletes a cart line. Deleting an absent line is not an error.
func Remove(db *gorm.DB, cartID, itemID uint) error {
	return db.
		Where("cart_id = ? AND item_id = ?", cartID, itemID).
		Delete(&models.CartItem{}).Error
}

// ListWithQuantities returns the cart contents joined with their catalog
// items, ordered by item id for stable rendering.
func ListWithQuantities(db *gorm.DB, cartID uint) ([]Line, error) {
	var rows []models.CartItem
	if err := db.
		Where("cart_id = ?", cartID).
		Order("item_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	itemIDs := make([]uint, 0, len(rows))
	for _, row := range rows {
		itemIDs = append(itemIDs, row.ItemID)
	}
	var items []models.Item
	if err := db.Where("id IN ?", itemIDs).Find(&items).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	lines := make([]Line, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, Line{Item: byID[row.ItemID], Quantity: row.Quantity})
	}
	return lines, nil
}

// TotalCost sums price*quantity over the cart with exact decimal arithmetic.
func TotalCost(db *gorm.DB, cartID uint) (decimal.Decimal, error) {
	lines, err := ListWithQuantities(db, cartID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Item.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total, nil
}

func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	// Driver errors differ between postgres and sqlite; match on message.
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "constraint")
}
