package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rs-sku/shop-tg-bot/bot"
)

func TestHTTPSenderPostsReply(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := NewHTTPSender(srv.URL)
	err := sender.Send(7, bot.Reply{
		Text:    "hello",
		Buttons: [][]bot.Button{{{Text: "Add to cart", CallbackData: "add:1"}}},
	})
	require.NoError(t, err)

	assert.Equal(t, float64(7), got["chat_id"])
	assert.Equal(t, "hello", got["text"])
	assert.NotNil(t, got["buttons"])
}

func TestHTTPSenderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	sender := NewHTTPSender(srv.URL)
	err := sender.Send(7, bot.Reply{Text: "hello"})
	assert.Error(t, err)
}
