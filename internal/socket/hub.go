// server/internal/socket/hub.go
package socket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/op/go-logging"
)

const (
	// Thời gian tối đa cho một lần ghi xuống client.
	writeWait = 10 * time.Second
	// Số tin nhắn được xếp hàng cho mỗi client trước khi client bị coi là chậm.
	sendBufferSize = 16
)

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub quản lý tất cả các client WebSocket của dashboard.
// Each client has its own writer goroutine; the hub only queues messages.
type Hub struct {
	// clients: key là clientID (một user có thể mở nhiều tab).
	clients map[string]*client
	mu      sync.RWMutex
	log     *logging.Logger
}

func NewHub(log *logging.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*client),
		log:     log,
	}
}

func (h *Hub) Register(clientID string, conn *websocket.Conn) {
	c := &client{id: clientID, conn: conn, send: make(chan []byte, sendBufferSize)}

	h.mu.Lock()
	old := h.clients[clientID]
	h.clients[clientID] = c
	h.mu.Unlock()

	if old != nil {
		h.closeClient(old)
	}
	go h.writePump(c)
	h.log.Infof("WebSocket client registered: %s", clientID)
}

func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	c, ok := h.clients[clientID]
	if ok {
		delete(h.clients, clientID)
	}
	h.mu.Unlock()

	if ok {
		h.closeClient(c)
		h.log.Infof("WebSocket client unregistered: %s", clientID)
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast xếp tin nhắn vào hàng đợi của từng client và không bao giờ chờ
// socket. A client whose queue is full is dropped.
func (h *Hub) Broadcast(message []byte) {
	var slow []*client

	h.mu.RLock()
	for _, c := range h.clients {
		select {
		case c.send <- message:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.log.Warningf("Dropping slow WebSocket client %s", c.id)
		h.remove(c)
	}
}

// remove drops c only if it is still the registered client for its id.
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	current, ok := h.clients[c.id]
	if ok && current == c {
		delete(h.clients, c.id)
	}
	h.mu.Unlock()

	if ok && current == c {
		h.closeClient(c)
	}
}

// closeClient must run once per client, after it left the map.
func (h *Hub) closeClient(c *client) {
	close(c.send)
	c.conn.Close()
}

func (h *Hub) writePump(c *client) {
	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			h.log.Warningf("Dropping WebSocket client %s: %v", c.id, err)
			h.remove(c)
			return
		}
	}
}
