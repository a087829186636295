package sse

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// EventType is the kind of change carried by an update event.
type EventType string

const (
	EventQuoteCreated   EventType = "quote.created"
	EventQuoteConverted EventType = "quote.converted"
	EventQuoteDeleted   EventType = "quote.deleted"
	EventLeadCreated    EventType = "lead.created"
	EventLeadUpdated    EventType = "lead.updated"
	EventLeadDeleted    EventType = "lead.deleted"
	EventCatalogUpdated EventType = "catalog.updated"
)

// Event is the JSON payload of an update event.
type Event struct {
	Event      EventType `json:"event"`
	ID         string    `json:"id,omitempty"`
	ClientName string    `json:"clientName,omitempty"`
	Type       string    `json:"type,omitempty"`
	Status     string    `json:"status,omitempty"`
	FinalTotal *float64  `json:"finalTotal,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Client is one open event stream of a signed-in user.
type Client struct {
	ID     string
	UserID int
	Events chan []byte
}

// Hub fans events out to every open stream. Slow streams lose events
// rather than block publishers.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	seq     uint64
	buffer  int
	closed  bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		buffer:  64,
	}
}

// Register opens a stream for userID. Once the hub is closed the returned
// client's channel is already closed.
func (h *Hub) Register(userID int) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	c := &Client{
		ID:     fmt.Sprintf("user-%d-%d", userID, h.seq),
		UserID: userID,
		Events: make(chan []byte, h.buffer),
	}
	if h.closed {
		close(c.Events)
		return c
	}
	h.clients[c.ID] = c
	log.Debug().Str("client_id", c.ID).Int("streams", len(h.clients)).Msg("event stream opened")
	return c
}

// Unregister closes the stream with the given id. Unknown ids are ignored.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.clients[id]; ok {
		close(c.Events)
		delete(h.clients, id)
		log.Debug().Str("client_id", id).Int("streams", len(h.clients)).Msg("event stream closed")
	}
}

// Broadcast sends event to every open stream.
func (h *Hub) Broadcast(event *Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("event", string(event.Event)).Msg("failed to encode event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		select {
		case c.Events <- data:
		default:
			log.Warn().Str("client_id", c.ID).Str("event", string(event.Event)).Msg("event stream full, dropping event")
		}
	}
}

// ClientCount returns the number of open streams.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close ends every open stream and refuses new ones. It is called on
// shutdown since streaming requests never go idle on their own.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, c := range h.clients {
		close(c.Events)
		delete(h.clients, id)
	}
	log.Info().Msg("event streams closed")
}
