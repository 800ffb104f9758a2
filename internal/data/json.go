package data

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"supply-curve/internal/model"

	"github.com/sirupsen/logrus"
)

func LoadGridStatusJSON(path string) (*model.GridStatusOfferResponse, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var resp model.GridStatusOfferResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &resp, nil
}

// LoadJSON reads a Grid Status style offer document.
func (l *Loader) LoadJSON(path string) ([]model.RawOffer, LoadStats, error) {
	resp, err := LoadGridStatusJSON(path)
	if err != nil {
		return nil, LoadStats{}, err
	}
	offers, stats := l.fromRows(resp.Data)
	l.logLoaded(path, stats)
	return offers, stats, nil
}

// ReadJSON is LoadJSON over an arbitrary reader.
func (l *Loader) ReadJSON(r io.Reader) ([]model.RawOffer, LoadStats, error) {
	var resp model.GridStatusOfferResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, LoadStats{}, fmt.Errorf("decode offers: %w", err)
	}
	offers, stats := l.fromRows(resp.Data)
	return offers, stats, nil
}

func (l *Loader) fromRows(rows []model.OfferRow) ([]model.RawOffer, LoadStats) {
	stats := LoadStats{Rows: len(rows)}
	out := make([]model.RawOffer, 0, len(rows))
	for i, row := range rows {
		offer := model.RawOffer{
			ResourceName:      row.ResourceName,
			ResourceType:      row.ResourceType,
			TelemeteredStatus: row.TelemeteredStatus,
		}
		l.setCurve(&offer, row.OfferCurve, i)
		if !l.keep(&stats, &offer, row.IntervalStartText(), i) {
			continue
		}
		out = append(out, offer)
	}
	return out, stats
}

// setCurve maps the curve field, which is either a native array of pairs or
// a string holding the textual form.
func (l *Loader) setCurve(offer *model.RawOffer, raw json.RawMessage, row int) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			offer.CurveText = s
			return
		}
	}
	var tuples []model.OfferTuple
	if err := json.Unmarshal(trimmed, &tuples); err == nil {
		offer.Curve = tuples
		return
	}
	// Let the curve decoder reject it so the failure is counted in one place.
	l.Logger.WithFields(logrus.Fields{
		"row":      row,
		"resource": offer.ResourceName,
	}).Debug("offer curve is not a numeric array")
	offer.CurveText = string(trimmed)
}
