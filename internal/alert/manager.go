// Package alert maintains the bounded set of currently visible alerts.
package alert

import (
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/quake-alert-service/internal/domain"
	"github.com/couchcryptid/quake-alert-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Manager applies the visible-alert policy: alerts are kept oldest first,
// each auto-hides after a fixed delay measured from its own arrival, and the
// set never grows past maxVisible — appending past the cap evicts the oldest
// alert immediately. Removal is idempotent, so an auto-hide timer firing for
// an already evicted alert is harmless.
type Manager struct {
	clock      clockwork.Clock
	maxVisible int
	hideDelay  time.Duration
	logger     *slog.Logger
	metrics    *observability.Metrics

	mu      sync.Mutex
	visible []entry
	nextID  uint64
}

type entry struct {
	id    uint64
	alert domain.Alert
}

// NewManager creates a Manager. maxVisible below 1 is raised to 1.
func NewManager(maxVisible int, hideDelay time.Duration, clk clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Manager {
	if maxVisible < 1 {
		maxVisible = 1
	}
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	return &Manager{
		clock:      clk,
		maxVisible: maxVisible,
		hideDelay:  hideDelay,
		logger:     logger,
		metrics:    metrics,
	}
}

// Add appends an alert to the visible set, evicting the oldest alert if the
// set is full, and arms the alert's independent auto-hide timer.
func (m *Manager) Add(a domain.Alert) {
	m.mu.Lock()

	id := m.nextID
	m.nextID++
	m.visible = append(m.visible, entry{id: id, alert: a})

	for len(m.visible) > m.maxVisible {
		evicted := m.visible[0]
		m.visible = m.visible[1:]
		m.metrics.AlertsEvicted.Inc()
		m.logger.Debug("alert evicted", "region", evicted.alert.Region)
	}
	m.metrics.AlertsVisible.Set(float64(len(m.visible)))

	m.mu.Unlock()

	m.clock.AfterFunc(m.hideDelay, func() { m.remove(id) })
}

// remove drops the alert with the given id if it is still visible.
func (m *Manager) remove(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.visible {
		if e.id == id {
			m.visible = append(m.visible[:i], m.visible[i+1:]...)
			m.metrics.AlertsVisible.Set(float64(len(m.visible)))
			return
		}
	}
}

// Visible returns a snapshot of the visible alerts, oldest first.
func (m *Manager) Visible() []domain.Alert {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Alert, len(m.visible))
	for i, e := range m.visible {
		out[i] = e.alert
	}
	return out
}
