// Package hub fans service events out to browsers over Server-Sent Events.
package hub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"physmap/internal/service"
)

// KeepAliveInterval is how often an idle stream gets a comment line
var KeepAliveInterval = 30 * time.Second

// Client represents a connected SSE client
type Client struct {
	id     string
	events chan []byte
}

// Hub manages SSE client connections
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan service.Event
	logger     *zap.Logger
}

// New creates a new Hub
func New(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan service.Event, 256),
		logger:     logger.Named("sse"),
	}
}

// Run starts the hub's event loop. It returns when done is closed.
func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.events)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("SSE client connected", zap.String("client", client.id), zap.Int("total", total))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.events)
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("SSE client disconnected", zap.String("client", client.id), zap.Int("total", total))

		case event := <-h.broadcast:
			msg, err := encode(event)
			if err != nil {
				h.logger.Error("Failed to marshal event", zap.String("type", string(event.Type)), zap.Error(err))
				continue
			}

			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.events <- msg:
				default:
					h.logger.Warn("SSE client is slow, skipping message", zap.String("client", client.id))
				}
			}
			h.mu.RUnlock()
		}
	}
}

// encode frames an event with its type as the SSE event name
func encode(event service.Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event.Type, data)), nil
}

// Broadcast sends an event to all connected clients
func (h *Hub) Broadcast(event service.Event) {
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("Broadcast channel full, dropping event", zap.String("type", string(event.Type)))
	}
}

// Forward subscribes to the bus and broadcasts everything it publishes
func (h *Hub) Forward(bus *service.EventBus, done <-chan struct{}) {
	events := make(chan service.Event, 100)
	bus.Subscribe(events)
	go func() {
		for {
			select {
			case event := <-events:
				h.Broadcast(event)
			case <-done:
				return
			}
		}
	}()
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP handles SSE connections
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	client := &Client{
		id:     uuid.NewString(),
		events: make(chan []byte, 64),
	}

	select {
	case h.register <- client:
	case <-r.Context().Done():
		return
	}

	defer func() {
		select {
		case h.unregister <- client:
		case <-time.After(time.Second):
		}
	}()

	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()

	ticker := time.NewTicker(KeepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-client.events:
			if !ok {
				return
			}
			if _, err := w.Write(msg); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := fmt.Fprintf(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
