package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 25 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard is served from anywhere during development
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub broadcasts signal/trade lifecycle events to connected dashboard
// clients over WebSocket so the operator surface refreshes without polling
type Hub struct {
	clients    map[chan []byte]bool
	register   chan chan []byte
	unregister chan chan []byte
	broadcast  chan []byte
	mu         sync.RWMutex
}

// NewHub creates a new realtime hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[chan []byte]bool),
		register:   make(chan chan []byte),
		unregister: make(chan chan []byte),
		broadcast:  make(chan []byte, 256),
	}
}

// Run starts the hub loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("WS client connected. Total: %d", len(h.clients))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client)
				log.Printf("WS client disconnected. Total: %d", len(h.clients))
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client <- msg:
				default:
					// Skip if client buffer is full to prevent blocking
				}
			}
			h.mu.RUnlock()
		}
	}
}

// ServeHTTP upgrades the connection and streams broadcast events until the
// client goes away
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("⚠️  WS upgrade failed: %v", err)
		return
	}

	clientChan := make(chan []byte, 16)
	h.register <- clientChan

	done := make(chan struct{})

	// Reader: discard inbound frames, detect disconnect
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.unregister <- clientChan
		conn.Close()
	}()

	for {
		select {
		case <-done:
			return
		case msg, ok := <-clientChan:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Broadcast sends an event with payload to all connected clients
func (h *Hub) Broadcast(event string, payload interface{}) {
	data := map[string]interface{}{
		"event":   event,
		"payload": payload,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}

	msg, err := json.Marshal(data)
	if err != nil {
		log.Printf("⚠️  Failed to marshal WS event %s: %v", event, err)
		return
	}

	h.BroadcastRaw(msg)
}

// BroadcastRaw queues an already-encoded message for all connected
// clients. Used by the event relay, which receives messages from Redis in
// their final wire shape.
func (h *Hub) BroadcastRaw(msg []byte) {
	select {
	case h.broadcast <- msg:
	default:
		// Drop when the broadcast buffer is full
	}
}
