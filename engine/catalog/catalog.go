package catalogEngine

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rs-sku/shop-tg-bot/models"
)

// ItemInput carries the fields of a new catalog item. All fields are
// required by the admin add-item format.
type ItemInput struct {
	Name         string
	Description  string
	Price        decimal.Decimal
	PhotoPath    string
	CategoryName string
}

// ItemUpdate carries a partial update; nil fields are left unchanged.
type ItemUpdate struct {
	Name         *string
	Description  *string
	Price        *decimal.Decimal
	CategoryName *string
}

// CategoriesWithItems returns the whole catalog for browsing.
func CategoriesWithItems(db *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	if err := db.Preload("Items").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// CategoryIDByName resolves the admin-facing category key.
func CategoryIDByName(db *gorm.DB, name string) (uint, error) {
	var category models.Category
	if err := db.Where("name = ?", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, models.ErrCategoryNotFound
		}
		return 0, err
	}
	return category.ID, nil
}

// AddItem creates a catalog item, resolving its category by name.
func AddItem(db *gorm.DB, in ItemInput) error {
	categoryID, err := CategoryIDByName(db, in.CategoryName)
	if err != nil {
		return err
	}
	return db.Create(&models.Item{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		PhotoPath:   in.PhotoPath,
		CategoryID:  categoryID,
	}).Error
}

// UpdateItem applies a partial update to the item with the given name,
// holding the row locked while the new values are written.
func UpdateItem(db *gorm.DB, name string, upd ItemUpdate) error {
	values := map[string]interface{}{}
	if upd.Name != nil {
		values["name"] = *upd.Name
	}
	if upd.Description != nil {
		values["description"] = *upd.Description
	}
	if upd.Price != nil {
		values["price"] = *upd.Price
	}
	if upd.CategoryName != nil {
		categoryID, err := CategoryIDByName(db, *upd.CategoryName)
		if err != nil {
			return err
		}
		values["category_id"] = categoryID
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var item models.Item
		locked := tx
		if tx.Dialector.Name() != "sqlite" {
			locked = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := locked.Where("name = ?", name).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrItemNotFound
			}
			return err
		}
		if len(values) == 0 {
			return nil
		}
		return tx.Model(&models.Item{}).Where("id = ?", item.ID).Updates(values).Error
	})
}
