package core

import (
	"regexp"
	"time"
)

// markerPattern matches an embedded recurring marker:
// [recurring:<templateID>:<YYYY-MM-DD>].
var markerPattern = regexp.MustCompile(`\[recurring:[^:\[\]]+:\d{4}-\d{2}-\d{2}\]`)

// DateKey formats a date as the local calendar day key (YYYY-MM-DD).
// The key is derived from the time value's own location; callers pick
// the user's zone, not UTC, so materialization does not slip a day at
// midnight boundaries.
func DateKey(date time.Time) string {
	return date.Format("2006-01-02")
}

// Marker builds the recurring marker for a template on a date.
func Marker(templateID string, date time.Time) string {
	return "[recurring:" + templateID + ":" + DateKey(date) + "]"
}

// ExtractMarker returns the first recurring marker embedded in a task
// description, if any.
func ExtractMarker(description string) (string, bool) {
	m := markerPattern.FindString(description)
	if m == "" {
		return "", false
	}
	return m, true
}
