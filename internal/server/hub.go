package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"allocation-dashboard/internal/domain"
	"allocation-dashboard/internal/observability"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	clientSendSize = 4
)

// Message is what the hub pushes to browsers.
type Message struct {
	Type      string            `json:"type"`
	Dashboard *domain.Dashboard `json:"dashboard"`
}

// MessageTypeDashboard marks a freshly applied dashboard.
const MessageTypeDashboard = "dashboard"

// Hub fans applied dashboards out to websocket clients.
type Hub struct {
	upgrader websocket.Upgrader
	current  func() *domain.Dashboard
	logger   *zap.Logger
	metrics  *observability.Metrics

	mu      sync.Mutex
	clients map[*wsClient]struct{}
	closed  bool
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

// NewHub creates a hub. current, when non-nil, supplies the dashboard sent
// to each client right after it connects.
func NewHub(current func() *domain.Dashboard, logger *zap.Logger, m *observability.Metrics) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		current: current,
		logger:  logger,
		metrics: m,
		clients: make(map[*wsClient]struct{}),
	}
}

// Run broadcasts every dashboard from updates until ctx is done or updates
// is closed, then disconnects all clients.
func (h *Hub) Run(ctx context.Context, updates <-chan *domain.Dashboard) {
	defer h.closeAll()
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-updates:
			if !ok {
				return
			}
			h.Broadcast(d)
		}
	}
}

// Broadcast sends d to every client. Clients whose buffer is full are dropped.
func (h *Hub) Broadcast(d *domain.Dashboard) {
	data, err := encodeDashboard(d)
	if err != nil {
		h.logger.Error("encode dashboard", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("websocket client too slow, dropping")
			h.removeLocked(c)
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and registers the client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &wsClient{conn: conn, send: make(chan []byte, clientSendSize)}

	if h.current != nil {
		if d := h.current(); d != nil {
			if data, err := encodeDashboard(d); err == nil {
				c.send <- data
			}
		}
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	h.metrics.WSClients.Inc()
	h.mu.Unlock()

	go h.writePump(c)
	go h.readPump(c)
}

func (h *Hub) remove(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *wsClient) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	h.metrics.WSClients.Dec()
	c.once.Do(func() { close(c.send) })
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}

// readPump discards inbound messages and detects disconnects.
func (h *Hub) readPump(c *wsClient) {
	defer func() {
		h.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump owns all writes to the connection.
func (h *Hub) writePump(c *wsClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func encodeDashboard(d *domain.Dashboard) ([]byte, error) {
	return json.Marshal(Message{Type: MessageTypeDashboard, Dashboard: d})
}
