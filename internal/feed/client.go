// Package feed maintains the persistent push-feed connection and turns
// inbound frames into alerts.
package feed

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/quake-alert-service/internal/domain"
	"github.com/couchcryptid/quake-alert-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// State is the connection lifecycle state of a Client.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateOpen
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// Conn is one live feed connection.
type Conn interface {
	// ReadMessage blocks until the next frame arrives or the connection fails.
	ReadMessage(ctx context.Context) ([]byte, error)
	Close() error
}

// Dialer opens feed connections. Production uses WebsocketDialer; tests
// inject fakes.
type Dialer interface {
	Dial(ctx context.Context, uri string) (Conn, error)
}

// Consumer receives each produced alert.
type Consumer func(domain.Alert)

// Config carries the injectable knobs of a Client.
type Config struct {
	URI            string
	ReconnectDelay time.Duration
	DedupSize      int
	Clock          clockwork.Clock // nil means real time
}

// Client owns the push-feed connection: it dials, reads frames, classifies
// events, and hands alerts to the consumer. A lost connection is always
// retried after a fixed delay, forever; there is no terminal failure state.
type Client struct {
	uri            string
	reconnectDelay time.Duration
	dialer         Dialer
	clock          clockwork.Clock
	consumer       Consumer
	logger         *slog.Logger
	metrics        *observability.Metrics
	seen           *dedupCache

	state   atomic.Int32
	running atomic.Bool
	ready   atomic.Bool
}

// New creates a feed client. The consumer is invoked from the read loop, in
// delivery order, once per perceptible event.
func New(cfg Config, dialer Dialer, consumer Consumer, logger *slog.Logger, metrics *observability.Metrics) *Client {
	clk := cfg.Clock
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	return &Client{
		uri:            cfg.URI,
		reconnectDelay: cfg.ReconnectDelay,
		dialer:         dialer,
		clock:          clk,
		consumer:       consumer,
		logger:         logger,
		metrics:        metrics,
		seen:           newDedupCache(cfg.DedupSize),
	}
}

// State returns the current connection state.
func (c *Client) State() State {
	return State(c.state.Load())
}

// CheckReadiness reports nil once the feed connection has been open at least once.
func (c *Client) CheckReadiness(_ context.Context) error {
	if !c.ready.Load() {
		return errors.New("feed connection has not been established yet")
	}
	return nil
}

// Start launches the client in a goroutine. Safe to call repeatedly: while a
// run loop is already connecting or connected, further starts are no-ops.
func (c *Client) Start(ctx context.Context) {
	go func() {
		_ = c.Run(ctx)
	}()
}

// Run executes the connect-read-reconnect loop until the context is
// cancelled. Each lost session arms exactly one retry timer on the injected
// clock; the delay is fixed, with no backoff growth and no attempt cap.
// Returns immediately if the client is already running.
func (c *Client) Run(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		return nil
	}
	defer c.running.Store(false)

	c.logger.Info("feed client started", "uri", c.uri, "reconnect_delay", c.reconnectDelay)

	for {
		c.session(ctx)
		if ctx.Err() != nil {
			c.logger.Info("feed client stopping", "reason", ctx.Err())
			return nil
		}

		c.metrics.Reconnects.Inc()
		c.logger.Info("feed disconnected, reconnecting", "delay", c.reconnectDelay)
		select {
		case <-ctx.Done():
			return nil
		case <-c.clock.After(c.reconnectDelay):
		}
	}
}

// session runs one connection from dial to disconnect. Read errors and
// remote closes land on the same return path, so the caller schedules at
// most one reconnect per session.
func (c *Client) session(ctx context.Context) {
	c.state.Store(int32(StateConnecting))

	conn, err := c.dialer.Dial(ctx, c.uri)
	if err != nil {
		c.state.Store(int32(StateDisconnected))
		if ctx.Err() == nil {
			c.logger.Warn("feed dial failed", "error", err)
		}
		return
	}

	c.state.Store(int32(StateOpen))
	c.ready.Store(true)
	c.metrics.ConnectionUp.Set(1)
	defer c.metrics.ConnectionUp.Set(0)
	c.logger.Info("feed connected")

	for {
		data, err := conn.ReadMessage(ctx)
		if err != nil {
			c.state.Store(int32(StateClosing))
			_ = conn.Close()
			c.state.Store(int32(StateDisconnected))
			if ctx.Err() == nil {
				c.logger.Warn("feed connection lost", "error", err)
			}
			return
		}
		c.handleFrame(data)
	}
}

// handleFrame processes one inbound frame. Failures are per-frame and
// non-fatal: the frame is counted, dropped, and the connection stays up.
func (c *Client) handleFrame(data []byte) {
	c.metrics.FramesReceived.Inc()

	event, err := domain.ParseFrame(data)
	if err != nil {
		c.metrics.FramesDropped.WithLabelValues("malformed").Inc()
		c.logger.Debug("dropping frame", "error", err)
		return
	}

	if c.seen.Seen(event.Key()) {
		c.metrics.FramesDropped.WithLabelValues("duplicate").Inc()
		return
	}

	classification, ok := domain.Classify(event.Magnitude, event.Depth)
	if !ok {
		return
	}

	alert := domain.NewAlert(classification, event)
	c.metrics.AlertsProduced.WithLabelValues(classification.Severity.String()).Inc()
	c.logger.Info("seismic alert",
		"severity", classification.Severity.String(),
		"region", event.Region,
		"magnitude", event.Magnitude,
		"depth_km", event.Depth,
	)
	c.consumer(alert)
}
