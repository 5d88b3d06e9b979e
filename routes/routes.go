package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rs-sku/shop-tg-bot/bot"
	webhookController "github.com/rs-sku/shop-tg-bot/controllers/webhook"
	"github.com/rs-sku/shop-tg-bot/middleware"
)

// SetupRoutes is the single entry-point that wires up the gateway webhook
// and the admin route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB, b *bot.Bot) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/webhook", middleware.ValidateAPIKey, webhookController.HandleEvent(b))

	SetupAdminRoutes(r, db)
}
