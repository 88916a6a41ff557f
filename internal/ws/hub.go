package ws

import (
	"encoding/json"
	"sync"
)

// Event represents a floor broadcast: an order changed state or the
// restaurant closed.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub maintains the set of connected floor displays and fans events out to
// them. There is a single room: every connected client sees every event.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client

	broadcast chan Event

	mu sync.RWMutex
}

// NewHub creates a new Hub instance.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 256),
	}
}

// Run starts the hub's main loop.
// This should be called as a goroutine: go hub.Run()
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, exists := h.clients[client]; exists {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.Lock()
			message, err := json.Marshal(event)
			if err != nil {
				h.mu.Unlock()
				continue
			}
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client's send buffer is full, close and unregister
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends an event to every connected client.
func (h *Hub) Broadcast(event Event) {
	h.broadcast <- event
}

// BroadcastJSON marshals the payload and broadcasts it under the given
// event type. Marshal failures are dropped; payloads are our own structs.
func (h *Hub) BroadcastJSON(eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.Broadcast(Event{Type: eventType, Payload: data})
}
