package model

import "encoding/json"

// GridStatusOfferResponse matches the JSON shape of a Grid Status SCED offer export.
//
// Example:
//
//	{
//	  "status_code": 200,
//	  "data": [ ... ]
//	}
type GridStatusOfferResponse struct {
	StatusCode int        `json:"status_code"`
	Data       []OfferRow `json:"data"`
}

// OfferRow represents one resource row from the SCED offer dataset.
//
// Timestamps are kept as strings so a single malformed row does not fail the
// whole document; they are parsed per row by the loader.
type OfferRow struct {
	IntervalStartUTC  string `json:"interval_start_utc"`
	IntervalStart     string `json:"interval_start"`
	ResourceName      string `json:"resource_name"`
	ResourceType      string `json:"resource_type"`
	TelemeteredStatus string `json:"telemetered_resource_status"`

	// Either a JSON array of [mw, price] pairs or a string holding the
	// textual encoding of the same.
	OfferCurve json.RawMessage `json:"sced_tpo_offer_curve"`
}

// IntervalStartText returns the best available interval start column.
func (r OfferRow) IntervalStartText() string {
	// Prefer UTC because it's unambiguous.
	if r.IntervalStartUTC != "" {
		return r.IntervalStartUTC
	}
	return r.IntervalStart
}
