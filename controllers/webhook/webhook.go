package webhookController

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rs-sku/shop-tg-bot/bot"
)

// Event is one inbound gateway event: either a free-text message or a
// button-press callback from a chat.
type Event struct {
	ChatID       int64  `json:"chat_id" binding:"required"`
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

// POST /webhook
func HandleEvent(b *bot.Bot) gin.HandlerFunc {
	return func(c *gin.Context) {
		var event Event
		if err := c.ShouldBindJSON(&event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		switch {
		case event.CallbackData != "":
			b.HandleCallback(event.ChatID, event.CallbackData)
		case event.Text != "":
			b.HandleMessage(event.ChatID, event.Text)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Event carries neither text nor callback_data"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "processed"})
	}
}
