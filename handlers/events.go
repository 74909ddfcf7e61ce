package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/joejung/mira/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now
	},
}

// EventHandler serves the live event stream.
type EventHandler struct {
	hub *services.EventHub
}

func NewEventHandler(hub *services.EventHub) *EventHandler {
	return &EventHandler{hub: hub}
}

// Stream handles WebSocket connections on /ws/events
func (h *EventHandler) Stream(c *gin.Context) {
	if h.hub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Event hub not initialized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("⚠️ WebSocket upgrade failed: %v", err)
		return
	}

	client := services.NewEventClient(h.hub, conn, c.ClientIP())
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

// Stats handles GET /api/events/stats
func (h *EventHandler) Stats(c *gin.Context) {
	if h.hub == nil {
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}

	stats := h.hub.Stats()
	c.JSON(http.StatusOK, gin.H{
		"enabled":       true,
		"clients":       stats.Clients,
		"subscriptions": stats.Subscriptions,
	})
}
