package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "github.com/couchcryptid/quake-alert-service/internal/adapter/http"
	"github.com/couchcryptid/quake-alert-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReadiness struct {
	err error
}

func (s stubReadiness) CheckReadiness(context.Context) error { return s.err }

type stubAlerts struct {
	alerts []domain.Alert
}

func (s stubAlerts) Visible() []domain.Alert { return s.alerts }

type stubCatalog struct {
	snapshot domain.FeatureCollection
	ok       bool
}

func (s stubCatalog) Snapshot() (domain.FeatureCollection, bool) { return s.snapshot, s.ok }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func get(t *testing.T, srv *httpadapter.Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(stdhttp.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv := httpadapter.NewServer(":0", stubReadiness{}, stubAlerts{}, nil, nil, discardLogger())

	rec := get(t, srv, "/healthz")

	assert.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestReadyzReady(t *testing.T) {
	srv := httpadapter.NewServer(":0", stubReadiness{}, stubAlerts{}, nil, nil, discardLogger())

	rec := get(t, srv, "/readyz")

	assert.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
}

func TestReadyzNotReady(t *testing.T) {
	srv := httpadapter.NewServer(":0", stubReadiness{err: errors.New("no connection established yet")}, stubAlerts{}, nil, nil, discardLogger())

	rec := get(t, srv, "/readyz")

	assert.Equal(t, stdhttp.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "no connection established yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := httpadapter.NewServer(":0", stubReadiness{}, stubAlerts{}, nil, nil, discardLogger())

	rec := get(t, srv, "/metrics")

	assert.Equal(t, stdhttp.StatusOK, rec.Code)
}

func TestAlertsEmpty(t *testing.T) {
	srv := httpadapter.NewServer(":0", stubReadiness{}, stubAlerts{}, nil, nil, discardLogger())

	rec := get(t, srv, "/api/alerts")

	assert.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"alerts":[]}`, rec.Body.String())
}

func TestAlertsReturnsVisibleSet(t *testing.T) {
	alerts := []domain.Alert{
		{
			Severity:  domain.SeverityDanger,
			Message:   "Fuerte sismo detectado en",
			Region:    "OFFSHORE VALPARAISO, CHILE",
			Time:      "31-08-2026 12:04",
			Magnitude: 7.1,
			Depth:     35,
			Unit:      "Mw",
			CreatedAt: time.Date(2026, 8, 31, 12, 4, 30, 0, time.UTC),
		},
	}
	srv := httpadapter.NewServer(":0", stubReadiness{}, stubAlerts{alerts: alerts}, nil, nil, discardLogger())

	rec := get(t, srv, "/api/alerts")

	assert.Equal(t, stdhttp.StatusOK, rec.Code)

	var body struct {
		Alerts []domain.Alert `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Alerts, 1)
	assert.Equal(t, domain.SeverityDanger, body.Alerts[0].Severity)
	assert.Equal(t, "OFFSHORE VALPARAISO, CHILE", body.Alerts[0].Region)
}

func TestCatalogNotRegisteredWhenDisabled(t *testing.T) {
	srv := httpadapter.NewServer(":0", stubReadiness{}, stubAlerts{}, nil, nil, discardLogger())

	rec := get(t, srv, "/api/catalog")

	assert.Equal(t, stdhttp.StatusNotFound, rec.Code)
}

func TestCatalogBeforeFirstFetch(t *testing.T) {
	srv := httpadapter.NewServer(":0", stubReadiness{}, stubAlerts{}, stubCatalog{}, nil, discardLogger())

	rec := get(t, srv, "/api/catalog")

	assert.Equal(t, stdhttp.StatusServiceUnavailable, rec.Code)
}

func TestCatalogReturnsSnapshot(t *testing.T) {
	snapshot := domain.FeatureCollection{
		Type: "FeatureCollection",
		Features: []domain.Feature{
			{
				Type:     "Feature",
				Geometry: domain.Geometry{Type: "Point", Coordinates: []float64{-71.5, -33.0}},
				Properties: map[string]any{
					"magnitude": 5.2,
				},
			},
		},
	}
	srv := httpadapter.NewServer(":0", stubReadiness{}, stubAlerts{}, stubCatalog{snapshot: snapshot, ok: true}, nil, discardLogger())

	rec := get(t, srv, "/api/catalog")

	assert.Equal(t, stdhttp.StatusOK, rec.Code)

	var got domain.FeatureCollection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "FeatureCollection", got.Type)
	require.Len(t, got.Features, 1)
	assert.Equal(t, []float64{-71.5, -33.0}, got.Features[0].Geometry.Coordinates)
}

func TestWebsocketRouteDelegates(t *testing.T) {
	called := false
	handler := stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		called = true
		w.WriteHeader(stdhttp.StatusOK)
	})
	srv := httpadapter.NewServer(":0", stubReadiness{}, stubAlerts{}, nil, handler, discardLogger())

	rec := get(t, srv, "/ws")

	assert.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.True(t, called)
}
