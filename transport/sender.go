package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs-sku/shop-tg-bot/bot"
)

// HTTPSender delivers replies to the messaging gateway as JSON posts. The
// gateway owns rendering the keyboard and attaching the photo for the
// concrete messenger.
type HTTPSender struct {
	URL    string
	Client *http.Client
}

func NewHTTPSender(url string) *HTTPSender {
	return &HTTPSender{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

type outboundMessage struct {
	ChatID int64 `json:"chat_id"`
	bot.Reply
}

func (s *HTTPSender) Send(chatID int64, reply bot.Reply) error {
	body, err := json.Marshal(outboundMessage{ChatID: chatID, Reply: reply})
	if err != nil {
		return err
	}
	resp, err := s.Client.Post(s.URL, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("gateway responded %s", resp.Status)
	}
	return nil
}
