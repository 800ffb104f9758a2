package supply

import (
	"fmt"
	"testing"

	"supply-curve/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOffers() []model.RawOffer {
	return []model.RawOffer{
		{
			ResourceName:      "WIND_1",
			ResourceType:      "WIND",
			TelemeteredStatus: "ON",
			CurveText:         "[(0, -25), (120, -5)]",
		},
		{
			ResourceName:      "CC_1",
			ResourceType:      "CCGT90",
			TelemeteredStatus: "ON",
			Curve:             []model.OfferTuple{{100, 10}, {150, 20}, {150, 5}, {300, 30}},
		},
		{
			ResourceName:      "GT_OFF",
			ResourceType:      "SCGT90",
			TelemeteredStatus: "OFF",
			CurveText:         "[(50, 60)]",
		},
		{
			ResourceName:      "BROKEN",
			ResourceType:      "GSREH",
			TelemeteredStatus: "ON",
			CurveText:         "[(50, 60)",
		},
		{
			ResourceName:      "EMPTY",
			ResourceType:      "PVGR",
			TelemeteredStatus: "ON",
			CurveText:         "[]",
		},
		{
			ResourceName:      "ODD",
			ResourceType:      "PWRSTR",
			TelemeteredStatus: "ON",
			CurveText:         "[(10, 1, 1), (20, 15)]",
		},
	}
}

func TestBuild(t *testing.T) {
	curve, stats := Build(sampleOffers(), BuildOptions{})

	assert.Equal(t, BuildStats{
		Offers:          6,
		DecodeFailures:  1,
		EmptyCurves:     1,
		MalformedPoints: 1,
		Expanded:        6,
		ExcludedStatus:  1,
		NonPositive:     0,
		Segments:        5,
	}, stats)

	got := []string{}
	for _, r := range curve.Rows() {
		got = append(got, fmt.Sprintf("%s %.0f@%.0f cum=%.0f", r.ResourceName, r.MW, r.Price, r.CumulativeMW))
	}
	assert.Equal(t, []string{
		"WIND_1 120@-5 cum=120",
		"CC_1 100@10 cum=220",
		"ODD 20@15 cum=240",
		"CC_1 50@20 cum=290",
		"CC_1 150@30 cum=440",
	}, got)
}

func TestBuildIsDeterministic(t *testing.T) {
	offers := sampleOffers()
	for i := 0; i < 200; i++ {
		offers = append(offers, model.RawOffer{
			ResourceName:      fmt.Sprintf("GEN_%03d", i),
			ResourceType:      "CCGT90",
			TelemeteredStatus: "ON",
			CurveText:         fmt.Sprintf("[(%d, %d), (%d, %d)]", 10+i%7, i%5, 40+i%11, 10+i%3),
		})
	}

	first, firstStats := Build(offers, BuildOptions{})
	second, secondStats := Build(offers, BuildOptions{})
	parallel, parallelStats := Build(offers, BuildOptions{Workers: 8})

	assert.Equal(t, first, second)
	assert.Equal(t, firstStats, secondStats)
	assert.Equal(t, first, parallel)
	assert.Equal(t, firstStats, parallelStats)
}

func TestBuildAllRowsUndecodable(t *testing.T) {
	offers := []model.RawOffer{
		{ResourceName: "A", TelemeteredStatus: "ON", CurveText: "not a curve"},
		{ResourceName: "B", TelemeteredStatus: "ON", CurveText: "[(1, 2"},
	}

	curve, stats := Build(offers, BuildOptions{Workers: 2})

	assert.Equal(t, 0, curve.Len())
	assert.Equal(t, 2, stats.DecodeFailures)

	_, _, err := curve.ClearingPrice(100)
	require.ErrorIs(t, err, ErrEmptyCurve)
}

func TestBuildCustomExclusions(t *testing.T) {
	curve, stats := Build(sampleOffers(), BuildOptions{Excluded: StatusSet{}})

	assert.Equal(t, 0, stats.ExcludedStatus)
	assert.Equal(t, 6, curve.Len())
}
