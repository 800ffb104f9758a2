package supply

import (
	"math"
	"sort"

	"supply-curve/internal/model"
)

// SupplyCurve is the market-wide merit order.
//
// Segments are sorted by price ascending, ties by MW ascending, and fully
// equal keys keep their encounter order. CumulativeMW[i] is the sum of
// Segments[0..i].MW. A SupplyCurve is built once by Aggregate and never
// updated in place.
type SupplyCurve struct {
	Segments     []model.Segment
	CumulativeMW []float64
}

// Row is one line of the supply curve table.
type Row struct {
	Index int
	model.Segment
	CumulativeMW float64
}

// Aggregate sorts segments into merit order and computes cumulative MW.
// The input slice is not modified.
func Aggregate(segments []model.Segment) *SupplyCurve {
	sorted := make([]model.Segment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return meritLess(sorted[i], sorted[j])
	})

	cum := make([]float64, len(sorted))
	total := 0.0
	for i, seg := range sorted {
		total += seg.MW
		cum[i] = total
	}
	return &SupplyCurve{Segments: sorted, CumulativeMW: cum}
}

// meritLess orders by price, then MW. NaN sorts after every number so the
// order stays total for segments that did not pass through Filter.
func meritLess(a, b model.Segment) bool {
	if c := compareFloat(a.Price, b.Price); c != 0 {
		return c < 0
	}
	return compareFloat(a.MW, b.MW) < 0
}

func compareFloat(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (c *SupplyCurve) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Segments)
}

// TotalMW is the cumulative MW of the last segment, or 0 when empty.
func (c *SupplyCurve) TotalMW() float64 {
	if c.Len() == 0 {
		return 0
	}
	return c.CumulativeMW[len(c.CumulativeMW)-1]
}

// Rows returns the curve as a table in merit order.
func (c *SupplyCurve) Rows() []Row {
	out := make([]Row, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		out = append(out, Row{
			Index:        i,
			Segment:      c.Segments[i],
			CumulativeMW: c.CumulativeMW[i],
		})
	}
	return out
}
