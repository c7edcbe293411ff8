package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"iot-backend/ws"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// FeedHandler serves the live telemetry feed: every stored sensor reading
// is pushed to all connected clients as JSON.
type FeedHandler struct {
	hub *ws.Hub
}

func NewFeedHandler(hub *ws.Hub) *FeedHandler {
	return &FeedHandler{hub: hub}
}

// HandleFeed upgrades to websocket and keeps the connection registered
// until the client goes away. GET /ws
func (h *FeedHandler) HandleFeed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	h.hub.Register(conn)
	log.Info().Str("remote", conn.RemoteAddr().String()).Msg("feed client connected")

	defer func() {
		h.hub.Unregister(conn)
		log.Info().Str("remote", conn.RemoteAddr().String()).Msg("feed client disconnected")
	}()

	// The feed is one-way; drain control frames until the peer closes.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
