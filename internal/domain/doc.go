// Package domain models Chilean seismic event data and the perceptibility
// rules that decide which events become user-facing alerts.
//
// # Data Sources
//
// Two upstream feeds exist, with different shapes:
//
// Push feed: a persistent websocket delivering one JSON envelope per event,
//
//	{"data": {"properties": {"mag": 6.2, "depth": "48", "flynn_region": "OFFSHORE VALPARAISO, CHILE", "time": "2026-08-30T04:12:55.0Z", "magtype": "mw"}}}
//
// "mag" and "depth" arrive as JSON numbers or numeric strings depending on
// the publisher; both encodings are accepted. "magtype" is optional and
// defaults to Mw (moment magnitude), which is what the push feed publishes
// in practice. See [ParseFrame].
//
// Catalog feed: a polled JSON document with a top-level "events" list, each
// entry carrying magnitude {value, measure_unit}, depth in km, coordinates,
// a geo_reference label, and a local_date formatted "YYYY-MM-DD HH:MM:SS"
// (Chilean local time). See [CatalogFeed].
//
// # Perceptibility Classification
//
// Whether an event is surfaced, and at what severity, depends on magnitude
// and hypocenter depth together: a shallow magnitude-5.5 shakes harder at
// the surface than a deep magnitude-6.5. The rules live in an ordered table
// evaluated first-match-wins, so the more urgent, more specific conditions
// shadow the broader ones:
//
//	mag ≥ 6.8, depth ≤ 70 km    danger
//	mag ≥ 5.5, depth ≤ 30 km    danger
//	mag ≥ 6.0, depth ≤ 120 km   warning
//	mag ≥ 5.0, depth ≤ 60 km    warning
//	mag ≥ 6.0, any depth        info
//	mag ≥ 4.0, depth ≤ 100 km   info
//	otherwise                   not perceptible (no alert)
//
// The overlap between the warning and info rules at mag ≥ 6.0 is deliberate:
// ordering favors the more urgent classification. See [Classify].
//
// # Display Conventions
//
// Times are rendered "DD-MM-YYYY HH:MM" as Chilean users expect. Catalog
// magnitudes map to seven intensity buckets with fixed colors for the map
// and list UI; marker sizes grow with magnitude, clamped to [8, 30] pixels.
package domain
