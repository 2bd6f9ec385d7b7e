package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// Severity is the urgency tier of an alert, ordered Info < Warning < Danger.
type Severity int

const (
	SeverityInfo Severity = iota + 1
	SeverityWarning
	SeverityDanger
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityDanger:
		return "danger"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the severity as its lowercase name so downstream
// consumers (browser clients, Kafka readers) see "info"/"warning"/"danger"
// rather than an opaque integer.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes the lowercase name produced by MarshalJSON, so
// alerts read back from the sink topic or the hub round-trip cleanly.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity converts a lowercase severity name back to a Severity.
func ParseSeverity(name string) (Severity, error) {
	switch name {
	case "info":
		return SeverityInfo, nil
	case "warning":
		return SeverityWarning, nil
	case "danger":
		return SeverityDanger, nil
	default:
		return 0, fmt.Errorf("unknown severity %q", name)
	}
}

// Classification is the outcome of the perceptibility rules for one event.
type Classification struct {
	Severity Severity
	Message  string
}

// Notification headlines, kept in Spanish for the Chilean audience.
const (
	msgStrong   = "Fuerte sismo detectado en"
	msgModerate = "Sismo moderado detectado en"
	msgLight    = "Leve sismo detectado en"
)

// anyDepth disables the depth bound for a rule.
const anyDepth = math.MaxFloat64

// classificationRules is evaluated top to bottom, first match wins. Order is
// load-bearing: earlier rows are more urgent and more specific, and must
// shadow the broader rows below them (a mag-6.3 at 40 km is a warning, not
// an info, even though both rows match).
var classificationRules = []struct {
	minMagnitude float64
	maxDepth     float64 // km
	result       Classification
}{
	{6.8, 70, Classification{SeverityDanger, msgStrong}},
	{5.5, 30, Classification{SeverityDanger, msgStrong}},
	{6.0, 120, Classification{SeverityWarning, msgModerate}},
	{5.0, 60, Classification{SeverityWarning, msgModerate}},
	{6.0, anyDepth, Classification{SeverityInfo, msgLight}},
	{4.0, 100, Classification{SeverityInfo, msgLight}},
}

// Classify maps an event's magnitude and depth to a severity and headline.
// The second return value is false when the event would not be perceptible
// and no alert should be produced. Pure and total for all finite inputs,
// including negative depth and non-positive magnitude; callers validate
// against NaN upstream.
func Classify(magnitude, depth float64) (Classification, bool) {
	for _, r := range classificationRules {
		if magnitude >= r.minMagnitude && depth <= r.maxDepth {
			return r.result, true
		}
	}
	return Classification{}, false
}
