package supply

import "supply-curve/internal/model"

// Expand turns one offer's curve elements into incremental segments.
// Elements that are not (mw, price) pairs are skipped without moving the
// running MW baseline; the number skipped is returned alongside.
func Expand(offer model.RawOffer, tuples []model.OfferTuple) ([]model.Segment, int) {
	points := make([]model.OfferPoint, 0, len(tuples))
	malformed := 0
	for _, t := range tuples {
		p, ok := t.Point()
		if !ok {
			malformed++
			continue
		}
		points = append(points, p)
	}
	return ExpandPoints(offer, points), malformed
}

// ExpandPoints differences a cumulative offer curve into segments.
//
// Each vertex contributes MW - prev at its own price when that increment is
// strictly positive. prev always advances to the vertex MW, so a flat or
// backwards step emits nothing but later deltas are taken from it.
func ExpandPoints(offer model.RawOffer, points []model.OfferPoint) []model.Segment {
	out := make([]model.Segment, 0, len(points))
	prev := 0.0
	for _, p := range points {
		if inc := p.MW - prev; inc > 0 {
			out = append(out, model.Segment{
				ResourceName:      offer.ResourceName,
				ResourceType:      offer.ResourceType,
				MW:                inc,
				Price:             p.Price,
				TelemeteredStatus: offer.TelemeteredStatus,
			})
		}
		prev = p.MW
	}
	return out
}
