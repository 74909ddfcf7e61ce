package services

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4 * 1024

	// Send buffer size
	sendBufferSize = 64
)

// clientMessage is a control message sent by the client.
type clientMessage struct {
	Type      string `json:"type"` // subscribe, unsubscribe, ping
	ProjectID uint   `json:"projectId"`
}

// NewEventClient creates a new event client.
func NewEventClient(hub *EventHub, conn *websocket.Conn, remoteAddr string) *EventClient {
	return &EventClient{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBufferSize),
		projects:   make(map[uint]bool),
		remoteAddr: remoteAddr,
	}
}

// ReadPump pumps control messages from the WebSocket connection to the hub.
func (c *EventClient) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("⚠️ WebSocket error: %v", err)
			}
			break
		}

		var msg clientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("⚠️ Invalid message from %s: %v", c.remoteAddr, err)
			continue
		}

		switch msg.Type {
		case "subscribe":
			if msg.ProjectID != 0 {
				c.projectsMu.Lock()
				c.projects[msg.ProjectID] = true
				c.projectsMu.Unlock()
			}

		case "unsubscribe":
			if msg.ProjectID != 0 {
				c.projectsMu.Lock()
				delete(c.projects, msg.ProjectID)
				c.projectsMu.Unlock()
			}

		case "ping":
			c.sendPong()

		default:
			log.Printf("⚠️ Unknown message type: %s", msg.Type)
		}
	}
}

// WritePump pumps events from the hub to the WebSocket connection.
func (c *EventClient) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *EventClient) sendPong() {
	msgBytes, _ := json.Marshal(map[string]string{"type": "pong"})
	select {
	case c.send <- msgBytes:
	default:
	}
}
