package supply

import (
	"math"
	"testing"

	"supply-curve/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cumulative capacities 100, 250, 400
func boundaryCurve() *SupplyCurve {
	return Aggregate([]model.Segment{
		seg("base", 100, 10, "ON"),
		seg("mid", 150, 20, "ON"),
		seg("peak", 150, 30, "ON"),
	})
}

func TestClearingPriceBoundaries(t *testing.T) {
	curve := boundaryCurve()
	require.Equal(t, []float64{100, 250, 400}, curve.CumulativeMW)

	tests := []struct {
		name      string
		demand    float64
		wantName  string
		wantPrice float64
		wantCum   float64
		shortfall bool
	}{
		{"zero demand", 0, "base", 10, 100, false},
		{"inside first", 60, "base", 10, 100, false},
		{"exact boundary is inclusive", 250, "mid", 20, 250, false},
		{"just past boundary", 251, "peak", 30, 400, false},
		{"exactly total", 400, "peak", 30, 400, false},
		{"exceeds total", 500, "peak", 30, 400, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := curve.Resolve(tt.demand)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, res.Segment.ResourceName)
			assert.Equal(t, tt.wantPrice, res.Price)
			assert.Equal(t, tt.wantCum, res.CumulativeMW)
			assert.Equal(t, tt.shortfall, res.Shortfall)
			assert.Equal(t, tt.demand, res.Demand)

			price, s, err := curve.ClearingPrice(tt.demand)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPrice, price)
			assert.Equal(t, tt.wantName, s.ResourceName)
		})
	}
}

func TestClearingPriceEmptyCurve(t *testing.T) {
	_, _, err := Aggregate(nil).ClearingPrice(10)
	assert.ErrorIs(t, err, ErrEmptyCurve)

	var nilCurve *SupplyCurve
	_, err = nilCurve.Resolve(0)
	assert.ErrorIs(t, err, ErrEmptyCurve)
}

func TestClearingPriceInvalidDemand(t *testing.T) {
	curve := boundaryCurve()
	for _, d := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, _, err := curve.ClearingPrice(d)
		assert.ErrorIs(t, err, ErrInvalidDemand)
	}
}

func TestClearingPriceTieBreakPicksSmallerSegment(t *testing.T) {
	curve := Aggregate([]model.Segment{
		seg("large", 300, 25, "ON"),
		seg("small", 50, 25, "ON"),
	})

	_, s, err := curve.ClearingPrice(10)

	require.NoError(t, err)
	assert.Equal(t, "small", s.ResourceName)
}
