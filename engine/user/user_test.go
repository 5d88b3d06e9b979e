package userEngine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rs-sku/shop-tg-bot/models"
)

func getTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Item{},
		&models.Cart{}, &models.CartItem{}, &models.Order{},
	))
	return db
}

func TestRegisterCreatesUserWithCart(t *testing.T) {
	db := getTestDB(t)

	require.NoError(t, Register(db, 42))

	user, err := GetByChatID(db, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ChatID)

	cartID, err := CartIDByChatID(db, 42)
	require.NoError(t, err)
	assert.NotZero(t, cartID)
}

func TestGetByChatIDUnknownUser(t *testing.T) {
	db := getTestDB(t)

	_, err := GetByChatID(db, 99)
	assert.ErrorIs(t, err, models.ErrUnknownUser)

	_, err = CartIDByChatID(db, 99)
	assert.ErrorIs(t, err, models.ErrUnknownUser)
}

func TestSaveContacts(t *testing.T) {
	db := getTestDB(t)
	require.NoError(t, Register(db, 42))
	user, err := GetByChatID(db, 42)
	require.NoError(t, err)

	require.NoError(t, SaveContacts(db, user.ID, "Jane Doe", "+71234567890", "221B Baker St"))

	updated, err := GetByChatID(db, 42)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", updated.FullName)
	assert.Equal(t, "+71234567890", updated.Phone)
	assert.Equal(t, "221B Baker St", updated.Address)
}
