package data

import (
	"fmt"
	"path/filepath"
	"strings"

	"supply-curve/internal/model"

	"github.com/sirupsen/logrus"
)

// LoadStats summarizes one load. Rows dropped here never reach the pipeline.
type LoadStats struct {
	Rows          int
	Selected      int
	BadTimestamps int
	BadRecords    int
}

// Loader reads offer batches from disk into model.RawOffer values.
//
// Problems with a single row (bad timestamp, unreadable record) are logged
// and absorbed; only file-level problems are returned as errors.
type Loader struct {
	Filter IntervalFilter
	Logger logrus.FieldLogger
}

func NewLoader(filter IntervalFilter, logger logrus.FieldLogger) *Loader {
	if logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		logger = l
	}
	return &Loader{Filter: filter, Logger: logger}
}

// Load dispatches on format ("csv" or "json"); an empty format is inferred
// from the file extension.
func (l *Loader) Load(path, format string) ([]model.RawOffer, LoadStats, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch format {
	case "csv":
		return l.LoadCSV(path)
	case "json":
		return l.LoadJSON(path)
	default:
		return nil, LoadStats{}, fmt.Errorf("unsupported input format %q for %s", format, path)
	}
}

// keep applies the interval filter to one row and updates stats.
func (l *Loader) keep(stats *LoadStats, offer *model.RawOffer, rawTime string, row int) bool {
	if rawTime != "" {
		t, err := ParseTimestamp(rawTime)
		if err != nil {
			stats.BadTimestamps++
			l.Logger.WithFields(logrus.Fields{
				"row":      row,
				"resource": offer.ResourceName,
			}).Debugf("ignoring interval start: %v", err)
		} else {
			offer.IntervalStart = t
		}
	}
	if !l.Filter.Match(offer.IntervalStart) {
		return false
	}
	stats.Selected++
	return true
}

func (l *Loader) logLoaded(path string, stats LoadStats) {
	l.Logger.WithFields(logrus.Fields{
		"path":           path,
		"rows":           stats.Rows,
		"selected":       stats.Selected,
		"bad_timestamps": stats.BadTimestamps,
		"bad_records":    stats.BadRecords,
	}).Info("loaded offers")
}
