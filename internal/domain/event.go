package domain

import (
	"fmt"
	"time"
)

// DefaultUnit is the magnitude scale assumed when the feed omits one.
// The push feed publishes moment magnitude unless stated otherwise.
const DefaultUnit = "Mw"

// SeismicEvent is one event parsed from a push-feed frame. It exists only
// for the duration of one frame's processing and is not retained.
type SeismicEvent struct {
	Magnitude float64
	Depth     float64 // hypocenter depth, km
	Region    string
	Time      time.Time
	Unit      string
}

// Key identifies an event for duplicate suppression. The push feed carries
// no stable event ID, so the key is built from the fields that together
// distinguish one event from another.
func (e SeismicEvent) Key() string {
	return fmt.Sprintf("%s|%s|%g|%g", e.Region, e.Time.UTC().Format(time.RFC3339), e.Magnitude, e.Depth)
}
