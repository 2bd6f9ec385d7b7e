package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// flexFloat accepts a JSON number or a numeric string. The push feed is
// inconsistent about which encoding it uses for mag and depth.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' {
		var err error
		s, err = strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("numeric string: %w", err)
		}
		s = strings.TrimSpace(s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse number %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("non-finite number %q", s)
	}
	*f = flexFloat(v)
	return nil
}

// frameEnvelope mirrors the push-feed message shape documented in the
// package comment. Pointer fields distinguish absent from zero.
type frameEnvelope struct {
	Data struct {
		Properties struct {
			Mag     *flexFloat `json:"mag"`
			Depth   *flexFloat `json:"depth"`
			Region  string     `json:"flynn_region"`
			Time    string     `json:"time"`
			MagType string     `json:"magtype"`
		} `json:"properties"`
	} `json:"data"`
}

// frameTimeLayouts are tried in order. The feed mostly emits RFC 3339 with
// fractional seconds, but bare timestamps without a zone have been observed.
var frameTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseFrame deserializes one push-feed frame into a SeismicEvent. It
// returns an error for anything that must not reach the classifier: frames
// that are not JSON, missing or non-numeric mag/depth, an empty region, or
// an unparseable timestamp.
func ParseFrame(data []byte) (SeismicEvent, error) {
	var env frameEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return SeismicEvent{}, fmt.Errorf("parse frame: %w", err)
	}

	props := env.Data.Properties
	if props.Mag == nil {
		return SeismicEvent{}, errors.New("frame missing mag")
	}
	if props.Depth == nil {
		return SeismicEvent{}, errors.New("frame missing depth")
	}

	region := strings.TrimSpace(props.Region)
	if region == "" {
		return SeismicEvent{}, errors.New("frame missing flynn_region")
	}

	eventTime, err := parseFrameTime(props.Time)
	if err != nil {
		return SeismicEvent{}, err
	}

	unit := strings.TrimSpace(props.MagType)
	if unit == "" {
		unit = DefaultUnit
	}

	return SeismicEvent{
		Magnitude: float64(*props.Mag),
		Depth:     float64(*props.Depth),
		Region:    region,
		Time:      eventTime,
		Unit:      unit,
	}, nil
}

func parseFrameTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("frame missing time")
	}
	for _, layout := range frameTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable frame time %q", value)
}
