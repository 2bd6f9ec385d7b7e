package domain

import "time"

// displayTimeLayout renders instants the way Chilean users read them.
const displayTimeLayout = "02-01-2006 15:04"

// Alert is the presentation record handed to consumers for a perceptible
// event. Time is pre-formatted for display; CreatedAt drives the visible-set
// auto-hide policy.
type Alert struct {
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	Region    string    `json:"region"`
	Time      string    `json:"time"`
	Magnitude float64   `json:"magnitude"`
	Depth     float64   `json:"depth"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAlert builds the presentation record for a classified event.
func NewAlert(c Classification, e SeismicEvent) Alert {
	return Alert{
		Severity:  c.Severity,
		Message:   c.Message,
		Region:    e.Region,
		Time:      FormatEventTime(e.Time),
		Magnitude: e.Magnitude,
		Depth:     e.Depth,
		Unit:      e.Unit,
		CreatedAt: clock.Now(),
	}
}

// FormatEventTime renders an instant as "DD-MM-YYYY HH:MM".
func FormatEventTime(t time.Time) string {
	return t.Format(displayTimeLayout)
}
