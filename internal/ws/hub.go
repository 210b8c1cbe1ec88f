// Package ws pushes print-job events to connected cashier frontends.
package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type EventType string

const (
	EventPrinted     EventType = "printed"
	EventPrintFailed EventType = "print_failed"
)

// Event is one job outcome, broadcast as JSON to every connected client.
type Event struct {
	Type    EventType `json:"type"`
	JobID   string    `json:"job_id"`
	Printer string    `json:"printer"`
	OrderID int64     `json:"order_id"`
	Error   string    `json:"error,omitempty"`
}

// Hub fans job events out to websocket subscribers. Clients that fail a
// write are dropped; there is no replay.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewHub(checkOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: checkOrigin},
		clients:  make(map[*websocket.Conn]struct{}),
	}
}

// Handler upgrades the request and keeps the connection registered until
// the peer goes away. Inbound frames are read and discarded to service
// control messages.
func (h *Hub) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[ws] upgrade: %v", err)
			return
		}
		h.add(conn)
		go h.reader(conn)
	}
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

func (h *Hub) reader(conn *websocket.Conn) {
	defer h.remove(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends ev to every connected client.
func (h *Hub) Broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(ev); err != nil {
			log.Printf("[ws] write: %v", err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// ClientCount reports the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
