// Package http exposes the service's HTTP surface: health, readiness,
// metrics, the alert and catalog APIs, and the websocket upgrade.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/quake-alert-service/internal/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// AlertSource provides the currently visible alerts.
type AlertSource interface {
	Visible() []domain.Alert
}

// CatalogSource provides the latest catalog GeoJSON snapshot.
type CatalogSource interface {
	Snapshot() (domain.FeatureCollection, bool)
}

// Server exposes the service's HTTP endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates the HTTP server. catalog and wsHandler may be nil when
// those features are disabled; their routes are then not registered.
func NewServer(addr string, ready ReadinessChecker, alerts AlertSource, catalog CatalogSource, wsHandler http.Handler, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/alerts", handleAlerts(alerts))
	if catalog != nil {
		mux.HandleFunc("GET /api/catalog", handleCatalog(catalog))
	}
	if wsHandler != nil {
		mux.Handle("GET /ws", wsHandler)
	}

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func handleAlerts(alerts AlertSource) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		visible := alerts.Visible()
		if visible == nil {
			visible = []domain.Alert{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"alerts": visible})
	}
}

func handleCatalog(catalog CatalogSource) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		snapshot, ok := catalog.Snapshot()
		if !ok {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "catalog not loaded yet",
			})
			return
		}
		writeJSON(w, http.StatusOK, snapshot)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
