package supply

import (
	"math"
	"math/rand"
	"testing"

	"supply-curve/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateMeritOrder(t *testing.T) {
	in := []model.Segment{
		seg("c", 50, 30, "ON"),
		seg("b", 80, 10, "ON"),
		seg("a", 20, 10, "ON"),
		seg("d", 5, -20, "ON"),
	}

	curve := Aggregate(in)

	names := []string{}
	for _, s := range curve.Segments {
		names = append(names, s.ResourceName)
	}
	assert.Equal(t, []string{"d", "a", "b", "c"}, names)
	assert.Equal(t, []float64{5, 25, 105, 155}, curve.CumulativeMW)
	assert.Equal(t, 155.0, curve.TotalMW())

	// input untouched
	assert.Equal(t, "c", in[0].ResourceName)
}

func TestAggregateEqualKeysKeepEncounterOrder(t *testing.T) {
	in := []model.Segment{
		seg("first", 10, 5, "ON"),
		seg("second", 10, 5, "ON"),
		seg("third", 10, 5, "ON"),
	}

	curve := Aggregate(in)

	assert.Equal(t, "first", curve.Segments[0].ResourceName)
	assert.Equal(t, "second", curve.Segments[1].ResourceName)
	assert.Equal(t, "third", curve.Segments[2].ResourceName)
}

func TestAggregateSortsNaNPriceLast(t *testing.T) {
	in := []model.Segment{
		seg("a", 10, 30, "ON"),
		seg("nan", 10, math.NaN(), "ON"),
		seg("b", 10, 5, "ON"),
	}

	curve := Aggregate(in)

	names := []string{}
	for _, s := range curve.Segments {
		names = append(names, s.ResourceName)
	}
	assert.Equal(t, []string{"b", "a", "nan"}, names)
	assert.Equal(t, []float64{10, 20, 30}, curve.CumulativeMW)
}

func TestAggregateInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	in := make([]model.Segment, 0, 500)
	for i := 0; i < 500; i++ {
		// Coarse prices and sizes so ties are common.
		price := float64(rng.Intn(40) - 10)
		mw := float64(rng.Intn(20) + 1)
		in = append(in, seg("r", mw, price, "ON"))
	}

	curve := Aggregate(in)
	require.Equal(t, len(in), curve.Len())

	sum := 0.0
	for i, s := range curve.Segments {
		sum += s.MW
		assert.Equal(t, sum, curve.CumulativeMW[i])
		if i == 0 {
			continue
		}
		prev := curve.Segments[i-1]
		assert.LessOrEqual(t, prev.Price, s.Price)
		if prev.Price == s.Price {
			assert.LessOrEqual(t, prev.MW, s.MW)
		}
		assert.LessOrEqual(t, curve.CumulativeMW[i-1], curve.CumulativeMW[i])
	}
}

func TestEmptyCurve(t *testing.T) {
	curve := Aggregate(nil)
	assert.Equal(t, 0, curve.Len())
	assert.Equal(t, 0.0, curve.TotalMW())
	assert.Empty(t, curve.Rows())

	var nilCurve *SupplyCurve
	assert.Equal(t, 0, nilCurve.Len())
}

func TestRows(t *testing.T) {
	curve := Aggregate([]model.Segment{
		seg("b", 30, 2, "ON"),
		seg("a", 10, 1, "ON"),
	})

	rows := curve.Rows()

	require.Len(t, rows, 2)
	assert.Equal(t, 0, rows[0].Index)
	assert.Equal(t, "a", rows[0].ResourceName)
	assert.Equal(t, 10.0, rows[0].CumulativeMW)
	assert.Equal(t, 1, rows[1].Index)
	assert.Equal(t, "b", rows[1].ResourceName)
	assert.Equal(t, 40.0, rows[1].CumulativeMW)
}
