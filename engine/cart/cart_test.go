package cartEngine

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rs-sku/shop-tg-bot/models"
)

// Create DB connection for tests
func getTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Item{},
		&models.Cart{}, &models.CartItem{}, &models.Order{},
	))
	return db
}

func createCart(t *testing.T, db *gorm.DB, chatID int64) uint {
	user := models.User{ChatID: chatID}
	require.NoError(t, db.Create(&user).Error)
	cart := models.Cart{UserID: user.ID}
	require.NoError(t, db.Create(&cart).Error)
	return cart.ID
}

func createItem(t *testing.T, db *gorm.DB, name, price string) models.Item {
	category := models.Category{Name: "Category for " + name}
	require.NoError(t, db.Create(&category).Error)
	item := models.Item{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		CategoryID: category.ID,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func lineQuantity(t *testing.T, db *gorm.DB, cartID, itemID uint) int {
	lines, err := ListWithQuantities(db, cartID)
	require.NoError(t, err)
	for _, line := range lines {
		if line.Item.ID == itemID {
			return line.Quantity
		}
	}
	return 0
}

func TestAddOneConcurrentNoLostUpdates(t *testing.T) {
	db := getTestDB(t)
	cartID := createCart(t, db, 1)
	item := createItem(t, db, "Bread", "3.50")

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, AddOne(db, cartID, item.ID))
		}()
	}
	wg.Wait()

	assert.Equal(t, n, lineQuantity(t, db, cartID, item.ID))
}

func TestAddOneInsertsThenIncrements(t *testing.T) {
	db := getTestDB(t)
	cartID := createCart(t, db, 1)
	item := createItem(t, db, "Milk", "1.20")

	require.NoError(t, AddOne(db, cartID, item.ID))
	assert.Equal(t, 1, lineQuantity(t, db, cartID, item.ID))

	require.NoError(t, AddOne(db, cartID, item.ID))
	assert.Equal(t, 2, lineQuantity(t, db, cartID, item.ID))
}

func TestSetQuantityOverwrites(t *testing.T) {
	db := getTestDB(t)
	cartID := createCart(t, db, 1)
	item := createItem(t, db, "Tea", "4.00")

	require.NoError(t, AddOne(db, cartID, item.ID))
	require.NoError(t, SetQuantity(db, cartID, item.ID, 7))
	assert.Equal(t, 7, lineQuantity(t, db, cartID, item.ID))
}

func TestSetQuantityNonPositiveRemovesLine(t *testing.T) {
	for _, quantity := range []int{0, -3} {
		db := getTestDB(t)
		cartID := createCart(t, db, 1)
		item := createItem(t, db, "Coffee", "8.90")

		require.NoError(t, AddOne(db, cartID, item.ID))
		require.NoError(t, SetQuantity(db, cartID, item.ID, quantity))

		lines, err := ListWithQuantities(db, cartID)
		require.NoError(t, err)
		assert.Empty(t, lines)
	}
}

func TestSetQuantityAbsentLineIsNoop(t *testing.T) {
	db := getTestDB(t)
	cartID := createCart(t, db, 1)
	item := createItem(t, db, "Juice", "2.30")

	assert.NoError(t, SetQuantity(db, cartID, item.ID, 5))

	lines, err := ListWithQuantities(db, cartID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestRemoveIsIdempotent(t *testing.T) {
	db := getTestDB(t)
	cartID := createCart(t, db, 1)
	item := createItem(t, db, "Butter", "5.10")

	require.NoError(t, AddOne(db, cartID, item.ID))
	require.NoError(t, Remove(db, cartID, item.ID))
	assert.NoError(t, Remove(db, cartID, item.ID))

	lines, err := ListWithQuantities(db, cartID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestTotalCostExactDecimalSum(t *testing.T) {
	db := getTestDB(t)
	cartID := createCart(t, db, 1)
	cake := createItem(t, db, "Cake", "10.50")
	bun := createItem(t, db, "Bun", "3.25")

	require.NoError(t, AddOne(db, cartID, cake.ID))
	require.NoError(t, SetQuantity(db, cartID, cake.ID, 2))
	require.NoError(t, AddOne(db, cartID, bun.ID))
	require.NoError(t, SetQuantity(db, cartID, bun.ID, 4))

	total, err := TotalCost(db, cartID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("34.00")), "got %s", total)
}

func TestTotalCostEmptyCartIsZero(t *testing.T) {
	db := getTestDB(t)
	cartID := createCart(t, db, 1)

	total, err := TotalCost(db, cartID)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestListWithQuantitiesOrderedByItemID(t *testing.T) {
	db := getTestDB(t)
	cartID := createCart(t, db, 1)
	first := createItem(t, db, "Apple", "1.00")
	second := createItem(t, db, "Pear", "2.00")

	require.NoError(t, AddOne(db, cartID, second.ID))
	require.NoError(t, AddOne(db, cartID, first.ID))

	lines, err := ListWithQuantities(db, cartID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, first.ID, lines[0].Item.ID)
	assert.Equal(t, second.ID, lines[1].Item.ID)
}
