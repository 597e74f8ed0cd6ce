// Package websocket pushes notifications to connected users in real time.
package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/winshaurya/alumnet/internal/pkg/logger"
)

// Event is the payload pushed to connected clients.
type Event struct {
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub maintains the set of active clients keyed by user ID and delivers
// notification events to them.
type Hub struct {
	// Registered clients per user. A user may hold several connections
	// (multiple tabs or devices).
	clients map[int64]map[*Client]bool

	register   chan *Client
	unregister chan *Client

	mu     sync.RWMutex
	logger zerolog.Logger
}

// NewHub creates a new notification hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger.With("websocket_hub"),
	}
}

// Run processes register/unregister requests. Call it in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]bool)
			}
			h.clients[client.userID][client] = true
			h.mu.Unlock()
			h.logger.Debug().Int64("userID", client.userID).Msg("Client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.clients[client.userID]; ok {
				if _, ok := conns[client]; ok {
					delete(conns, client)
					close(client.send)
					if len(conns) == 0 {
						delete(h.clients, client.userID)
					}
				}
			}
			h.mu.Unlock()
			h.logger.Debug().Int64("userID", client.userID).Msg("Client disconnected")
		}
	}
}

// SendToUser delivers an event to every open connection of the given user.
// Users without an open connection are skipped silently; delivery is best
// effort and the notification row remains the source of truth.
func (h *Hub) SendToUser(userID int64, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to marshal event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[userID] {
		select {
		case client.send <- payload:
		default:
			// Slow consumer, drop the event rather than block the caller
			h.logger.Warn().Int64("userID", userID).Msg("Client send buffer full, dropping event")
		}
	}
}

// ConnectedUsers returns the number of distinct users with open connections.
func (h *Hub) ConnectedUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
