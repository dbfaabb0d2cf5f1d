package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Hub fans sheet-refresh events out to every connected browser tab.
// Clients never send domain messages; the socket exists so open
// dashboards reload the moment a sync pass lands.
type Hub struct {
	clients map[string]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
		clients:    make(map[string]*Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			log.Printf("🔌 Client connected: %s", client.ID)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.send)
				log.Printf("🔌 Client disconnected: %s", client.ID)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				select {
				case client.send <- message:
				default:
					// buffer full or client dead, drop the event
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast pushes a refresh event to every connected client. It
// satisfies the sync service's notifier hook.
func (h *Hub) Broadcast(event string) {
	msg, err := json.Marshal(map[string]string{
		"type":  "refresh",
		"event": event,
		"at":    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("Error marshaling refresh event: %v", err)
		return
	}

	select {
	case h.broadcast <- msg:
	default:
		// hub loop backed up, skip rather than block a sync pass
	}
}
