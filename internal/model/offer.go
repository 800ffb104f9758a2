package model

import (
	"math"
	"time"
)

// OfferPoint is one vertex of a resource's offer curve.
// Units:
// - MW: cumulative MW offered up to and including this vertex
// - Price: $/MWh
type OfferPoint struct {
	MW    float64
	Price float64
}

// OfferTuple is one decoded curve element before arity is checked.
// Well-formed elements are (mw, price) pairs; anything else is dropped by expansion.
type OfferTuple []float64

// Point returns the tuple as an OfferPoint when it has exactly two finite fields.
func (t OfferTuple) Point() (OfferPoint, bool) {
	if len(t) != 2 {
		return OfferPoint{}, false
	}
	for _, v := range t {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return OfferPoint{}, false
		}
	}
	return OfferPoint{MW: t[0], Price: t[1]}, true
}

// RawOffer is one resource's row from a SCED offer dataset.
//
// The curve arrives either already structured (Curve) or as the textual
// encoding found in CSV exports (CurveText), e.g. "[(100, 10.5), (150, 20)]".
// When Curve is non-nil it wins.
type RawOffer struct {
	ResourceName      string
	ResourceType      string
	IntervalStart     time.Time
	TelemeteredStatus string

	Curve     []OfferTuple
	CurveText string
}

// Segment is one incremental block of capacity at a single price.
type Segment struct {
	ResourceName      string  `json:"resource_name"`
	ResourceType      string  `json:"resource_type"`
	MW                float64 `json:"mw"`
	Price             float64 `json:"price"`
	TelemeteredStatus string  `json:"telemetered_status"`
}
