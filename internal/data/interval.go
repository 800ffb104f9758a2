package data

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Timestamp layouts seen in SCED exports (Grid Status JSON, pandas CSV).
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses an interval start as found in offer exports.
// Timestamps without an offset are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// IntervalFilter selects offers by interval start. Empty fields match
// everything; the wall clock of the timestamp as published is compared.
type IntervalFilter struct {
	Date   string // YYYY-MM-DD
	Hour   string // HH
	Minute string // MM
}

func (f IntervalFilter) IsZero() bool {
	return f.Date == "" && f.Hour == "" && f.Minute == ""
}

// Match reports whether t falls in the selected date/hour/minute.
// A zero t only matches an empty filter.
func (f IntervalFilter) Match(t time.Time) bool {
	if f.IsZero() {
		return true
	}
	if t.IsZero() {
		return false
	}
	if f.Date != "" && t.Format("2006-01-02") != f.Date {
		return false
	}
	if f.Hour != "" && !clockFieldEquals(f.Hour, t.Hour()) {
		return false
	}
	if f.Minute != "" && !clockFieldEquals(f.Minute, t.Minute()) {
		return false
	}
	return true
}

func clockFieldEquals(want string, got int) bool {
	n, err := strconv.Atoi(strings.TrimSpace(want))
	return err == nil && n == got
}
