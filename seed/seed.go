package seed

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	catalogEngine "github.com/rs-sku/shop-tg-bot/engine/catalog"
	"github.com/rs-sku/shop-tg-bot/models"
)

type seedFile struct {
	Categories []struct {
		Name string `json:"name"`
	} `json:"categories"`
	Goods []struct {
		Name          string          `json:"name"`
		Description   string          `json:"description"`
		Price         decimal.Decimal `json:"price"`
		PhotoFilePath string          `json:"photo_file_path"`
		CategoryName  string          `json:"category_name"`
	} `json:"goods"`
}

// LoadInitialData bulk-loads categories and items from a JSON fixture.
// Categories are inserted first; items resolve their category by name.
func LoadInitialData(db *gorm.DB, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var data seedFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return err
	}

	for _, category := range data.Categories {
		if err := db.Create(&models.Category{Name: category.Name}).Error; err != nil {
			return fmt.Errorf("category %q: %w", category.Name, err)
		}
	}
	for _, good := range data.Goods {
		categoryID, err := catalogEngine.CategoryIDByName(db, good.CategoryName)
		if err != nil {
			return fmt.Errorf("item %q: %w", good.Name, err)
		}
		item := models.Item{
			Name:        good.Name,
			Description: good.Description,
			Price:       good.Price,
			PhotoPath:   good.PhotoFilePath,
			CategoryID:  categoryID,
		}
		if err := db.Create(&item).Error; err != nil {
			return fmt.Errorf("item %q: %w", good.Name, err)
		}
	}
	return nil
}
