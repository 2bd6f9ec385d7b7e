package domain

import (
	"math"
	"time"
)

// catalogDateLayout is the local_date format published by the catalog feed.
const catalogDateLayout = "2006-01-02 15:04:05"

// CatalogMagnitude carries a magnitude value and its measurement scale.
type CatalogMagnitude struct {
	Value       float64 `json:"value"`
	MeasureUnit string  `json:"measure_unit"`
}

// CatalogEvent is one entry of the polled earthquake catalog feed.
type CatalogEvent struct {
	ID        string           `json:"id"`
	Magnitude CatalogMagnitude `json:"magnitude"`
	Depth     float64          `json:"depth"` // km
	Latitude  float64          `json:"latitude"`
	Longitude float64          `json:"longitude"`
	GeoRef    string           `json:"geo_reference"`
	LocalDate string           `json:"local_date"` // "YYYY-MM-DD HH:MM:SS"
	URL       string           `json:"url,omitempty"`
}

// CatalogFeed is the catalog document: a list of recent events, newest first.
type CatalogFeed struct {
	Events []CatalogEvent `json:"events"`
}

// Intensity is the display bucket for a catalog magnitude: the truncated
// magnitude shown on the marker, the CSS class of the bucket, and its color.
type Intensity struct {
	Display int    `json:"display"`
	Class   string `json:"class"`
	Color   string `json:"color"`
}

// IntensityFromMagnitude maps a magnitude to its display bucket. The bucket
// boundaries and colors are fixed by the map UI's legend.
func IntensityFromMagnitude(magnitude float64) Intensity {
	display := int(math.Trunc(magnitude))
	switch {
	case magnitude >= 9.0:
		return Intensity{display, "intensity-7", "#8e24aa"}
	case magnitude >= 8.0:
		return Intensity{display, "intensity-6", "#e53935"}
	case magnitude >= 7.0:
		return Intensity{display, "intensity-5", "#ff7043"}
	case magnitude >= 6.0:
		return Intensity{display, "intensity-4", "#fbc02d"}
	case magnitude >= 5.0:
		return Intensity{display, "intensity-3", "#26a69a"}
	case magnitude >= 4.0:
		return Intensity{display, "intensity-2", "#2a73cc"}
	default:
		return Intensity{display, "intensity-1", "#5a5a5a"}
	}
}

// MarkerSize scales a map marker with magnitude, clamped to [8, 30] pixels.
func MarkerSize(magnitude float64) float64 {
	size := 8 + magnitude*3
	if size < 8 {
		return 8
	}
	if size > 30 {
		return 30
	}
	return size
}

// FormatLocalDate reformats a catalog local_date ("YYYY-MM-DD HH:MM:SS")
// into the display form "DD-MM-YYYY HH:MM". Unparseable input is returned
// unchanged rather than hidden.
func FormatLocalDate(value string) string {
	t, err := time.Parse(catalogDateLayout, value)
	if err != nil {
		return value
	}
	return t.Format(displayTimeLayout)
}

// FeatureCollection is a GeoJSON document for the map layer.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is one GeoJSON point feature.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Geometry holds a GeoJSON point; coordinates are [longitude, latitude].
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// GeoJSON projects the catalog feed into the FeatureCollection the map layer
// renders: one point per event, styled by intensity bucket.
func (f CatalogFeed) GeoJSON() FeatureCollection {
	features := make([]Feature, 0, len(f.Events))
	for _, e := range f.Events {
		intensity := IntensityFromMagnitude(e.Magnitude.Value)
		props := map[string]any{
			"id":           e.ID,
			"magnitude":    e.Magnitude.Value,
			"measure_unit": e.Magnitude.MeasureUnit,
			"depth":        e.Depth,
			"location":     e.GeoRef,
			"date":         FormatLocalDate(e.LocalDate),
			"intensity":    intensity.Class,
			"color":        intensity.Color,
			"size":         MarkerSize(e.Magnitude.Value),
		}
		if e.URL != "" {
			props["url"] = e.URL
		}
		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{e.Longitude, e.Latitude},
			},
			Properties: props,
		})
	}
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}
