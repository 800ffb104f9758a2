package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"supply-curve/internal/analysis"
	"supply-curve/internal/data"
	"supply-curve/internal/logging"
	"supply-curve/internal/model"
	"supply-curve/internal/supply"
)

// Demo:
// - Generate a synthetic SCED offer batch (seeded, so runs repeat)
// - Round-trip it through the CSV loader
// - Build the supply curve and report the clearing price
func main() {
	opts := demoOptions{}
	flag.IntVar(&opts.n, "n", 40, "Number of synthetic resources")
	flag.Int64Var(&opts.seed, "seed", 7, "Random seed")
	flag.Float64Var(&opts.demand, "demand", 0, "Demand in MW (0 = 75% of capacity)")
	flag.StringVar(&opts.outCSV, "out", "", "Optional path to write the synthetic offer CSV")
	flag.Parse()

	if err := run(os.Stdout, opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type demoOptions struct {
	n      int
	seed   int64
	demand float64
	outCSV string
}

func run(w io.Writer, opts demoOptions) error {
	start := time.Date(2024, 7, 15, 17, 0, 0, 0, time.UTC)
	offers := generateOffers(rand.New(rand.NewSource(opts.seed)), opts.n, start)

	var buf bytes.Buffer
	if err := data.WriteOfferCSV(&buf, offers); err != nil {
		return err
	}
	if opts.outCSV != "" {
		if err := os.MkdirAll(filepath.Dir(opts.outCSV), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(opts.outCSV, buf.Bytes(), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote synthetic offers: %s\n", opts.outCSV)
	}

	loaded, loadStats, err := data.NewLoader(data.IntervalFilter{}, logging.Discard()).ReadCSV(&buf)
	if err != nil {
		return err
	}
	curve, stats := supply.Build(loaded, supply.BuildOptions{Workers: 4})
	fmt.Fprintf(w, "Loaded %d offers (%d bad records) for %s\n", loadStats.Selected, loadStats.BadRecords, start.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Decode failures=%d malformed points=%d excluded=%d segments=%d\n\n",
		stats.DecodeFailures, stats.MalformedPoints, stats.ExcludedStatus, stats.Segments)

	for _, r := range curve.Rows() {
		if r.Index >= 12 {
			break
		}
		fmt.Fprintf(w, "%3d %-14s %-8s mw=%7.2f price=%8.2f cum=%9.2f\n",
			r.Index, r.ResourceName, r.ResourceType, r.MW, r.Price, r.CumulativeMW)
	}

	d := opts.demand
	if d <= 0 {
		d = 0.75 * curve.TotalMW()
	}
	summary, err := analysis.Summarize(curve, stats, &d)
	if errors.Is(err, supply.ErrEmptyCurve) {
		fmt.Fprintln(w, "no supply segments survived filtering; no clearing price exists")
		return nil
	}
	if err != nil {
		return err
	}
	c := summary.Clearing
	fmt.Fprintf(w, "\nTotal=%.0f MW Demand=%.0f MW Clearing price=$%.2f/MWh (marginal: %s)\n",
		summary.TotalMW, c.DemandMW, c.Price, c.ResourceName)
	if c.Shortfall {
		fmt.Fprintln(w, "warning: demand exceeds offered capacity")
	}
	return nil
}

type resourceKind struct {
	resourceType string
	maxMW        float64
	basePrice    float64
	spread       float64
}

var kinds = []resourceKind{
	{"WIND", 250, -20, 15},
	{"PVGR", 200, -10, 10},
	{"NUC", 1300, 5, 5},
	{"CLLIG", 700, 18, 12},
	{"CCGT90", 450, 25, 40},
	{"SCGT90", 120, 60, 120},
	{"GSREH", 400, 35, 60},
	{"PWRSTR", 100, 40, 300},
}

var statuses = []model.Status{
	model.StatusOnline, model.StatusOnline, model.StatusOnline, model.StatusOnline,
	model.StatusOnTest, model.StatusOffQS, model.StatusOut,
}

// generateOffers builds offers with increasing MW breakpoints. A few carry
// a malformed point or an empty curve so the skip paths show up in stats.
func generateOffers(rng *rand.Rand, n int, start time.Time) []model.RawOffer {
	var offers []model.RawOffer
	for i := 0; i < n; i++ {
		k := kinds[rng.Intn(len(kinds))]
		o := model.RawOffer{
			ResourceName:      fmt.Sprintf("%s_UNIT%d", k.resourceType, i+1),
			ResourceType:      k.resourceType,
			IntervalStart:     start,
			TelemeteredStatus: string(statuses[rng.Intn(len(statuses))]),
		}

		steps := 1 + rng.Intn(5)
		mw := math.Round(k.maxMW*(0.2+0.3*rng.Float64())*10) / 10
		price := k.basePrice
		curve := []model.OfferTuple{{0, price}}
		for s := 0; s < steps; s++ {
			price = math.Round((price+k.spread*rng.Float64())*100) / 100
			curve = append(curve, model.OfferTuple{mw, price})
			mw = math.Min(k.maxMW, math.Round((mw+k.maxMW*0.15*rng.Float64())*10)/10)
		}
		switch rng.Intn(20) {
		case 0:
			curve = nil
		case 1:
			curve = append(curve, model.OfferTuple{k.maxMW})
		}
		if curve == nil {
			o.CurveText = "[]"
		} else {
			o.Curve = curve
		}
		offers = append(offers, o)
	}
	return offers
}
