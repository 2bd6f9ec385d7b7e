package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntensityFromMagnitude(t *testing.T) {
	tests := []struct {
		magnitude float64
		class     string
		color     string
		display   int
	}{
		{9.1, "intensity-7", "#8e24aa", 9},
		{8.0, "intensity-6", "#e53935", 8},
		{7.4, "intensity-5", "#ff7043", 7},
		{6.0, "intensity-4", "#fbc02d", 6},
		{5.9, "intensity-3", "#26a69a", 5},
		{4.0, "intensity-2", "#2a73cc", 4},
		{3.9, "intensity-1", "#5a5a5a", 3},
		{0, "intensity-1", "#5a5a5a", 0},
	}

	for _, tt := range tests {
		got := IntensityFromMagnitude(tt.magnitude)
		assert.Equal(t, tt.class, got.Class, "magnitude %.1f", tt.magnitude)
		assert.Equal(t, tt.color, got.Color, "magnitude %.1f", tt.magnitude)
		assert.Equal(t, tt.display, got.Display, "magnitude %.1f", tt.magnitude)
	}
}

func TestMarkerSize(t *testing.T) {
	assert.Equal(t, 8.0, MarkerSize(-2))   // clamped low
	assert.Equal(t, 20.0, MarkerSize(4))   // 8 + 4*3
	assert.Equal(t, 30.0, MarkerSize(9.5)) // clamped high
}

func TestFormatLocalDate(t *testing.T) {
	assert.Equal(t, "30-08-2026 04:12", FormatLocalDate("2026-08-30 04:12:55"))
	assert.Equal(t, "garbage", FormatLocalDate("garbage"))
}

func TestCatalogFeed_GeoJSON(t *testing.T) {
	feed := CatalogFeed{Events: []CatalogEvent{
		{
			ID:        "evt-1",
			Magnitude: CatalogMagnitude{Value: 6.4, MeasureUnit: "Mw"},
			Depth:     33,
			Latitude:  -33.45,
			Longitude: -70.67,
			GeoRef:    "42 km al NO de Valparaíso",
			LocalDate: "2026-08-30 04:12:55",
			URL:       "https://example.cl/evt-1",
		},
		{
			ID:        "evt-2",
			Magnitude: CatalogMagnitude{Value: 3.1, MeasureUnit: "Ml"},
			Depth:     90,
			Latitude:  -20.21,
			Longitude: -69.15,
			GeoRef:    "15 km al E de Pica",
			LocalDate: "2026-08-30 03:01:10",
		},
	}}

	fc := feed.GeoJSON()

	require.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 2)

	first := fc.Features[0]
	assert.Equal(t, "Feature", first.Type)
	assert.Equal(t, "Point", first.Geometry.Type)
	assert.Equal(t, []float64{-70.67, -33.45}, first.Geometry.Coordinates)
	assert.Equal(t, "intensity-4", first.Properties["intensity"])
	assert.Equal(t, "30-08-2026 04:12", first.Properties["date"])
	assert.Equal(t, 8+6.4*3, first.Properties["size"])
	assert.Equal(t, "https://example.cl/evt-1", first.Properties["url"])

	second := fc.Features[1]
	assert.Equal(t, "intensity-1", second.Properties["intensity"])
	assert.NotContains(t, second.Properties, "url")

	// The projection must stay JSON-serializable for the HTTP layer.
	_, err := json.Marshal(fc)
	require.NoError(t, err)
}
