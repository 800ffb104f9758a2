package supply

import (
	"math"

	"supply-curve/internal/model"
)

// StatusSet is a set of telemetered status codes.
type StatusSet map[model.Status]struct{}

func NewStatusSet(statuses ...model.Status) StatusSet {
	s := make(StatusSet, len(statuses))
	for _, st := range statuses {
		s[model.NormalizeStatus(string(st))] = struct{}{}
	}
	return s
}

// DefaultExcludedStatuses returns the statuses whose capacity is not offered.
func DefaultExcludedStatuses() StatusSet {
	return NewStatusSet(model.UnavailableStatuses()...)
}

// Contains reports whether the raw status code is in the set.
func (s StatusSet) Contains(raw string) bool {
	_, ok := s[model.NormalizeStatus(raw)]
	return ok
}

// Filter keeps segments whose status is not excluded, whose MW is
// strictly positive and whose price is finite. Input order is preserved.
func Filter(segments []model.Segment, excluded StatusSet) []model.Segment {
	out, _ := filterCounted(segments, excluded)
	return out
}

type filterCounts struct {
	byStatus    int
	nonPositive int
	badPrice    int
}

func filterCounted(segments []model.Segment, excluded StatusSet) ([]model.Segment, filterCounts) {
	var n filterCounts
	out := make([]model.Segment, 0, len(segments))
	for _, seg := range segments {
		if excluded.Contains(seg.TelemeteredStatus) {
			n.byStatus++
			continue
		}
		// Written as !(x > 0) so NaN is dropped too.
		if !(seg.MW > 0) {
			n.nonPositive++
			continue
		}
		if math.IsNaN(seg.Price) || math.IsInf(seg.Price, 0) {
			n.badPrice++
			continue
		}
		out = append(out, seg)
	}
	return out, n
}
