package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/quake-alert-service/internal/domain"
	"github.com/couchcryptid/quake-alert-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Fetcher retrieves the catalog feed. Client implements it; tests inject fakes.
type Fetcher interface {
	Fetch(ctx context.Context) (domain.CatalogFeed, error)
}

// Poller refreshes the catalog snapshot on a fixed cadence. A failed refresh
// keeps the previous snapshot; the poller never stops on error.
type Poller struct {
	fetcher  Fetcher
	interval time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
	metrics  *observability.Metrics

	mu       sync.RWMutex
	snapshot domain.FeatureCollection
	hasData  bool
}

// NewPoller creates a Poller. Pass a nil clock for real time.
func NewPoller(fetcher Fetcher, interval time.Duration, clk clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Poller {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	return &Poller{
		fetcher:  fetcher,
		interval: interval,
		clock:    clk,
		logger:   logger,
		metrics:  metrics,
	}
}

// Run fetches immediately, then on every interval tick until the context is
// cancelled.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("catalog poller started", "interval", p.interval)
	p.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("catalog poller stopping", "reason", ctx.Err())
			return nil
		case <-p.clock.After(p.interval):
		}
		p.refresh(ctx)
	}
}

func (p *Poller) refresh(ctx context.Context) {
	feed, err := p.fetcher.Fetch(ctx)
	if err != nil {
		p.metrics.CatalogRefreshes.WithLabelValues("error").Inc()
		if ctx.Err() == nil {
			p.logger.Warn("catalog refresh failed", "error", err)
		}
		return
	}

	p.metrics.CatalogRefreshes.WithLabelValues("success").Inc()
	p.metrics.CatalogEvents.Set(float64(len(feed.Events)))

	p.mu.Lock()
	p.snapshot = feed.GeoJSON()
	p.hasData = true
	p.mu.Unlock()

	p.logger.Debug("catalog refreshed", "events", len(feed.Events))
}

// Snapshot returns the latest GeoJSON projection. The second return value is
// false until the first successful refresh.
func (p *Poller) Snapshot() (domain.FeatureCollection, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot, p.hasData
}
