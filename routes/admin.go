package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminController "github.com/rs-sku/shop-tg-bot/controllers/admin"
	orderEngine "github.com/rs-sku/shop-tg-bot/engine/order"
	"github.com/rs-sku/shop-tg-bot/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires the shared
// API-key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── Order Review ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", adminController.ListOrders(db))
			orderAdmin.GET("/export-excel", adminController.ExportOrdersToExcel(db))
			orderAdmin.GET("/ws", orderEngine.OrderWebSocketHandler)
		}

		// ─────────── Cart Inspection ───────────
		adminGroup.GET("/user-cart/:chat_id", adminController.GetUserCart(db))
	}
}
