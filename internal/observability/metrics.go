package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and gauges for the alert service.
type Metrics struct {
	FramesReceived prometheus.Counter
	FramesDropped  *prometheus.CounterVec // labels: reason={malformed,duplicate}
	AlertsProduced *prometheus.CounterVec // labels: severity={info,warning,danger}
	AlertsEvicted  prometheus.Counter
	AlertsVisible  prometheus.Gauge

	// Feed connection metrics.
	ConnectionUp prometheus.Gauge
	Reconnects   prometheus.Counter

	// Catalog polling metrics.
	CatalogRefreshes *prometheus.CounterVec // labels: outcome={success,error}
	CatalogEvents    prometheus.Gauge

	// Kafka sink metrics.
	SinkPublished prometheus.Counter
	SinkErrors    prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FramesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_alert",
			Name:      "frames_received_total",
			Help:      "Total frames read from the push feed.",
		}),
		FramesDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_alert",
			Name:      "frames_dropped_total",
			Help:      "Frames dropped before classification, by reason.",
		}, []string{"reason"}),
		AlertsProduced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_alert",
			Name:      "alerts_produced_total",
			Help:      "Alerts produced for perceptible events, by severity.",
		}, []string{"severity"}),
		AlertsEvicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_alert",
			Name:      "alerts_evicted_total",
			Help:      "Alerts evicted early because the visible set was full.",
		}),
		AlertsVisible: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_alert",
			Name:      "alerts_visible",
			Help:      "Alerts currently in the visible set.",
		}),
		ConnectionUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_alert",
			Name:      "feed_connection_up",
			Help:      "1 while the push-feed connection is open, 0 otherwise.",
		}),
		Reconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_alert",
			Name:      "feed_reconnects_total",
			Help:      "Reconnect attempts scheduled after a lost feed connection.",
		}),
		CatalogRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_alert",
			Name:      "catalog_refreshes_total",
			Help:      "Catalog feed refresh attempts by outcome.",
		}, []string{"outcome"}),
		CatalogEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_alert",
			Name:      "catalog_events",
			Help:      "Events in the most recent catalog snapshot.",
		}),
		SinkPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_alert",
			Name:      "sink_published_total",
			Help:      "Alerts published to the Kafka sink topic.",
		}),
		SinkErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_alert",
			Name:      "sink_errors_total",
			Help:      "Failed publishes to the Kafka sink topic.",
		}),
	}

	prometheus.MustRegister(
		m.FramesReceived,
		m.FramesDropped,
		m.AlertsProduced,
		m.AlertsEvicted,
		m.AlertsVisible,
		m.ConnectionUp,
		m.Reconnects,
		m.CatalogRefreshes,
		m.CatalogEvents,
		m.SinkPublished,
		m.SinkErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FramesReceived:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_alert", Name: "frames_received_total"}),
		FramesDropped:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "quake_alert", Name: "frames_dropped_total"}, []string{"reason"}),
		AlertsProduced:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "quake_alert", Name: "alerts_produced_total"}, []string{"severity"}),
		AlertsEvicted:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_alert", Name: "alerts_evicted_total"}),
		AlertsVisible:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "quake_alert", Name: "alerts_visible"}),
		ConnectionUp:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "quake_alert", Name: "feed_connection_up"}),
		Reconnects:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_alert", Name: "feed_reconnects_total"}),
		CatalogRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "quake_alert", Name: "catalog_refreshes_total"}, []string{"outcome"}),
		CatalogEvents:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "quake_alert", Name: "catalog_events"}),
		SinkPublished:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_alert", Name: "sink_published_total"}),
		SinkErrors:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_alert", Name: "sink_errors_total"}),
	}
}
