package supply

import (
	"math"

	"supply-curve/internal/model"
)

// Clearing is the outcome of a clearing-price lookup.
type Clearing struct {
	Demand  float64
	Price   float64
	Index   int
	Segment model.Segment

	CumulativeMW float64

	// Shortfall is set when demand exceeds total capacity. Price is then the
	// last segment in merit order rather than a scarcity signal.
	Shortfall bool
}

// Resolve finds the marginal segment for demand: the first segment in merit
// order whose cumulative MW is >= demand, or the last segment when no
// segment reaches it.
func (c *SupplyCurve) Resolve(demand float64) (Clearing, error) {
	if math.IsNaN(demand) || math.IsInf(demand, 0) || demand < 0 {
		return Clearing{}, ErrInvalidDemand
	}
	n := c.Len()
	if n == 0 {
		return Clearing{}, ErrEmptyCurve
	}

	idx, shortfall := n-1, true
	for i, cum := range c.CumulativeMW {
		if cum >= demand {
			idx, shortfall = i, false
			break
		}
	}
	return Clearing{
		Demand:       demand,
		Price:        c.Segments[idx].Price,
		Index:        idx,
		Segment:      c.Segments[idx],
		CumulativeMW: c.CumulativeMW[idx],
		Shortfall:    shortfall,
	}, nil
}

// ClearingPrice returns the price and the marginal segment for demand.
func (c *SupplyCurve) ClearingPrice(demand float64) (float64, model.Segment, error) {
	res, err := c.Resolve(demand)
	if err != nil {
		return 0, model.Segment{}, err
	}
	return res.Price, res.Segment, nil
}
