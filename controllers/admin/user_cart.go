package adminController

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartEngine "github.com/rs-sku/shop-tg-bot/engine/cart"
	userEngine "github.com/rs-sku/shop-tg-bot/engine/user"
)

// GET /admin/user-cart/:chat_id
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID, err := strconv.ParseInt(c.Param("chat_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chat_id must be an integer"})
			return
		}

		cartID, err := userEngine.CartIDByChatID(db, chatID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User cart not found"})
			return
		}

		lines, err := cartEngine.ListWithQuantities(db, cartID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		type cartLine struct {
			ItemID   uint   `json:"item_id"`
			Name     string `json:"name"`
			Price    string `json:"price"`
			Quantity int    `json:"quantity"`
		}
		out := make([]cartLine, 0, len(lines))
		for _, line := range lines {
			out = append(out, cartLine{
				ItemID:   line.Item.ID,
				Name:     line.Item.Name,
				Price:    line.Item.Price.String(),
				Quantity: line.Quantity,
			})
		}
		c.JSON(http.StatusOK, out)
	}
}
