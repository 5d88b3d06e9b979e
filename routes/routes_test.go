package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rs-sku/shop-tg-bot/bot"
	userEngine "github.com/rs-sku/shop-tg-bot/engine/user"
	"github.com/rs-sku/shop-tg-bot/models"
)

const testAPIKey = "test-api-key"

type memorySender struct {
	mu      sync.Mutex
	replies []bot.Reply
}

func (s *memorySender) Send(_ int64, reply bot.Reply) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, reply)
	return nil
}

func setupTestRouter(t *testing.T) (*gin.Engine, *memorySender, *gorm.DB) {
	t.Setenv("GATEWAY_API_KEY", testAPIKey)
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Item{},
		&models.Cart{}, &models.CartItem{}, &models.Order{},
	))

	sender := &memorySender{}
	b := bot.New(db, sender, "admin-token")

	r := gin.New()
	SetupRoutes(r, db, b)
	return r, sender, db
}

func TestHealth(t *testing.T) {
	r, _, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhookRequiresAPIKey(t *testing.T) {
	r, _, _ := setupTestRouter(t)

	body, _ := json.Marshal(map[string]interface{}{"chat_id": 1, "text": "/start"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/webhook", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhookDispatchesMessage(t *testing.T) {
	r, sender, db := setupTestRouter(t)

	body, _ := json.Marshal(map[string]interface{}{"chat_id": 1, "text": "/start"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/webhook", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", testAPIKey)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	_, err := userEngine.GetByChatID(db, 1)
	assert.NoError(t, err)
	require.NotEmpty(t, sender.replies)
	assert.Equal(t, bot.TextGreetings, sender.replies[0].Text)
}

func TestWebhookRejectsEmptyEvent(t *testing.T) {
	r, _, _ := setupTestRouter(t)

	body, _ := json.Marshal(map[string]interface{}{"chat_id": 1})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/webhook", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", testAPIKey)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminListOrders(t *testing.T) {
	r, _, db := setupTestRouter(t)
	require.NoError(t, userEngine.Register(db, 5))
	user, err := userEngine.GetByChatID(db, 5)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Order{
		UserID:       user.ID,
		DeliveryType: models.DeliveryPickup,
		Status:       models.OrderStatusCreated,
	}).Error)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/orders", nil)
	req.Header.Set("X-API-KEY", testAPIKey)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, user.ID, orders[0].UserID)
}

func TestAdminExportOrdersExcel(t *testing.T) {
	r, _, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/orders/export-excel", nil)
	req.Header.Set("X-API-KEY", testAPIKey)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.NotZero(t, w.Body.Len())
}

func TestAdminUserCart(t *testing.T) {
	r, _, db := setupTestRouter(t)
	require.NoError(t, userEngine.Register(db, 9))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/user-cart/9", nil)
	req.Header.Set("X-API-KEY", testAPIKey)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestAdminUserCartUnknownUser(t *testing.T) {
	r, _, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/user-cart/404", nil)
	req.Header.Set("X-API-KEY", testAPIKey)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
