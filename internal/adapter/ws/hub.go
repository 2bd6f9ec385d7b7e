// Package ws pushes produced alerts to connected browser clients over
// websocket connections.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/couchcryptid/quake-alert-service/internal/domain"
	"nhooyr.io/websocket"
)

const (
	pingInterval = 30 * time.Second
	sendBuffer   = 16
)

// Hub fans produced alerts out to connected clients. Delivery is
// best-effort: a client that cannot keep up is skipped, not waited for.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan []byte

	mu          sync.Mutex
	minSeverity domain.Severity // zero value means no filter
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[*client]struct{}),
	}
}

// Broadcast sends one alert to every connected client whose severity filter
// admits it.
func (h *Hub) Broadcast(alert domain.Alert) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.clients) == 0 {
		return
	}

	data, err := json.Marshal(map[string]any{
		"type":  "alert",
		"alert": alert,
	})
	if err != nil {
		h.logger.Error("marshal alert broadcast", "error", err)
		return
	}

	for c := range h.clients {
		if !c.wants(alert.Severity) {
			continue
		}
		select {
		case c.send <- data:
		default:
			// client too slow, skip
		}
	}
}

func (c *client) wants(s domain.Severity) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.minSeverity == 0 || s >= c.minSeverity
}

func (c *client) setMinSeverity(s domain.Severity) {
	c.mu.Lock()
	c.minSeverity = s
	c.mu.Unlock()
}

// HandleWS upgrades the request and serves the connection until the client
// goes away.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket accept failed", "error", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	ctx := r.Context()
	go c.pingLoop(ctx)
	go c.writePump(ctx)
	c.readPump(ctx)

	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	close(c.send)
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
}

// subscribeMessage is the only inbound message clients may send: an optional
// minimum severity for the alerts they want.
type subscribeMessage struct {
	Type        string `json:"type"`
	MinSeverity string `json:"min_severity"`
}

func (c *client) readPump(ctx context.Context) {
	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			return
		}

		var msg subscribeMessage
		if err := json.Unmarshal(data, &msg); err != nil || msg.Type != "subscribe" {
			continue
		}
		if msg.MinSeverity == "" {
			c.setMinSeverity(0)
			continue
		}
		severity, err := domain.ParseSeverity(msg.MinSeverity)
		if err != nil {
			continue
		}
		c.setMinSeverity(severity)
	}
}

func (c *client) writePump(ctx context.Context) {
	for data := range c.send {
		if err := c.conn.Write(ctx, websocket.MessageText, data); err != nil {
			return
		}
	}
}

func (c *client) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.conn.Ping(ctx); err != nil {
				return
			}
		}
	}
}
