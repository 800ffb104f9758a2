package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"supply-curve/internal/analysis"
	"supply-curve/internal/model"
	"supply-curve/internal/supply"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOffers() []model.RawOffer {
	return []model.RawOffer{
		{ResourceName: "CC_1", ResourceType: "CCGT90", TelemeteredStatus: "ON", CurveText: "[(100, 10), (150, 20)]"},
		{ResourceName: "WIND_1", ResourceType: "WIND", TelemeteredStatus: "ON", CurveText: "[(0, -25), (120, -5.5)]"},
	}
}

func TestEncodeSupplyCurveCSV(t *testing.T) {
	curve, _ := supply.Build(sampleOffers(), supply.BuildOptions{})

	var buf bytes.Buffer
	require.NoError(t, EncodeSupplyCurveCSV(&buf, curve))

	want := "index,resource_name,resource_type,mw,price,cumulative_mw,telemetered_status\n" +
		"0,WIND_1,WIND,120.000000,-5.500000,120.000000,ON\n" +
		"1,CC_1,CCGT90,100.000000,10.000000,220.000000,ON\n" +
		"2,CC_1,CCGT90,50.000000,20.000000,270.000000,ON\n"
	assert.Equal(t, want, buf.String())
}

func TestSupplyCurveCSVIsReproducible(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a", "curve.csv")
	second := filepath.Join(dir, "b", "curve.csv")

	c1, _ := supply.Build(sampleOffers(), supply.BuildOptions{})
	c2, _ := supply.Build(sampleOffers(), supply.BuildOptions{Workers: 4})
	require.NoError(t, WriteSupplyCurveCSV(first, c1))
	require.NoError(t, WriteSupplyCurveCSV(second, c2))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestWriteSummaryJSON(t *testing.T) {
	curve, stats := supply.Build(sampleOffers(), supply.BuildOptions{})
	demand := 200.0
	s, err := analysis.Summarize(curve, stats, &demand)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "summary.json")
	require.NoError(t, WriteSummaryJSON(path, s))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, s.RunID, got["run_id"])
	assert.Equal(t, float64(3), got["segments"])
	clearing, ok := got["clearing"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 10.0, clearing["price"])
	assert.Equal(t, "CC_1", clearing["resource_name"])
}
