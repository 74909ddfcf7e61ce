package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
)

// EventHub fans mutation events out from NATS to WebSocket clients. It
// subscribes once to the issue and comment subjects; clients may narrow
// what they receive to a set of projects.
type EventHub struct {
	natsConn *nats.Conn

	clients   map[*EventClient]bool
	clientsMu sync.RWMutex

	register   chan *EventClient
	unregister chan *EventClient

	subs []*nats.Subscription
}

// NewEventHub creates an event hub on the given NATS connection.
func NewEventHub(natsConn *nats.Conn) *EventHub {
	return &EventHub{
		natsConn:   natsConn,
		clients:    make(map[*EventClient]bool),
		register:   make(chan *EventClient),
		unregister: make(chan *EventClient),
	}
}

// Start subscribes to the mutation subjects.
func (h *EventHub) Start() error {
	for _, subject := range []string{"issues.>", "comments.>"} {
		sub, err := h.natsConn.Subscribe(subject, func(msg *nats.Msg) {
			h.broadcast(msg.Data)
		})
		if err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
		}
		h.subs = append(h.subs, sub)
	}
	return nil
}

// Register adds a client to the hub.
func (h *EventHub) Register(client *EventClient) {
	h.register <- client
}

// Run starts the hub's main loop.
func (h *EventHub) Run() {
	log.Println("📺 Event hub started")

	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			h.clients[client] = true
			h.clientsMu.Unlock()
			log.Printf("📺 Client connected: %s", client.remoteAddr)

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.clientsMu.Unlock()
			log.Printf("📺 Client disconnected: %s", client.remoteAddr)
		}
	}
}

// broadcast sends an event envelope to every client whose project filter
// matches. Slow clients drop events rather than block the hub.
func (h *EventHub) broadcast(data []byte) {
	var header struct {
		ProjectID uint `json:"projectId"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		log.Printf("⚠️ Failed to decode event envelope: %v", err)
		return
	}

	h.clientsMu.RLock()
	for client := range h.clients {
		if !client.wants(header.ProjectID) {
			continue
		}
		select {
		case client.send <- data:
		default:
			// Client buffer full, drop event
		}
	}
	h.clientsMu.RUnlock()
}

// HubStats describes the hub for the stats endpoint.
type HubStats struct {
	Clients       int `json:"clients"`
	Subscriptions int `json:"subscriptions"`
}

func (h *EventHub) Stats() HubStats {
	h.clientsMu.RLock()
	clientCount := len(h.clients)
	h.clientsMu.RUnlock()

	return HubStats{
		Clients:       clientCount,
		Subscriptions: len(h.subs),
	}
}

// EventClient represents a WebSocket client receiving events.
type EventClient struct {
	hub        *EventHub
	conn       *websocket.Conn
	send       chan []byte
	remoteAddr string

	// projects this client filtered to; empty means everything
	projects   map[uint]bool
	projectsMu sync.RWMutex
}

func (c *EventClient) wants(projectID uint) bool {
	c.projectsMu.RLock()
	defer c.projectsMu.RUnlock()
	if len(c.projects) == 0 {
		return true
	}
	return c.projects[projectID]
}
