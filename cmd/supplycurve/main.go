package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"supply-curve/internal/analysis"
	"supply-curve/internal/config"
	"supply-curve/internal/data"
	"supply-curve/internal/logging"
	"supply-curve/internal/model"
	"supply-curve/internal/report"
	"supply-curve/internal/supply"

	"github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "build":
		cmdBuild(os.Args[2:])
	case "clear":
		cmdClear(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  supplycurve build --data offers.csv --out results/supply_curve.csv --summary results/summary.json")
	fmt.Println("  supplycurve clear --data offers.json --demand 52000")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - --config loads a YAML file; flags override it")
	fmt.Println("  - without --demand, demand = load_factor * total capacity (default 0.75)")
	fmt.Println("  - --demand 0 counts as unset, so an explicit zero demand is not expressible")
	fmt.Println("  - --date/--hour/--minute select rows by interval start")
}

type commonFlags struct {
	cfgPath    *string
	dataPath   *string
	date       *string
	hour       *string
	minute     *string
	demand     *float64
	loadFactor *float64
	workers    *int
	logLevel   *string
}

func registerCommon(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		cfgPath:    fs.String("config", "", "Path to YAML config"),
		dataPath:   fs.String("data", "", "Path to offer data (.csv or .json)"),
		date:       fs.String("date", "", "Interval date filter (YYYY-MM-DD)"),
		hour:       fs.String("hour", "", "Interval hour filter (HH)"),
		minute:     fs.String("minute", "", "Interval minute filter (MM)"),
		demand:     fs.Float64("demand", 0, "Demand in MW (0 = unset, use load factor)"),
		loadFactor: fs.Float64("load-factor", 0, "Demand as a fraction of total capacity"),
		workers:    fs.Int("workers", 0, "Parallel curve expansion workers"),
		logLevel:   fs.String("log-level", "", "Log level (debug, info, warn, error)"),
	}
}

func (f commonFlags) config() (*config.Config, error) {
	cfg := config.Default()
	if *f.cfgPath != "" {
		loaded, err := config.LoadUnchecked(*f.cfgPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.MergeOverrides(config.Overrides{
		InputPath:  *f.dataPath,
		Date:       *f.date,
		Hour:       *f.hour,
		Minute:     *f.minute,
		DemandMW:   *f.demand,
		LoadFactor: *f.loadFactor,
		Workers:    *f.workers,
		LogLevel:   *f.logLevel,
	})
	if cfg.Input.Path == "" {
		return nil, errors.New("--data (or input.path in --config) is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildCurve loads the batch and runs the pipeline.
func buildCurve(cfg *config.Config, logger *logrus.Logger) (*supply.SupplyCurve, supply.BuildStats, error) {
	loader := data.NewLoader(data.IntervalFilter{
		Date:   cfg.Interval.Date,
		Hour:   cfg.Interval.Hour,
		Minute: cfg.Interval.Minute,
	}, logger)
	offers, _, err := loader.Load(cfg.Input.Path, cfg.InputFormat())
	if err != nil {
		return nil, supply.BuildStats{}, err
	}

	curve, stats := supply.Build(offers, supply.BuildOptions{
		Excluded: supply.NewStatusSet(cfg.ExcludedStatuses()...),
		Workers:  cfg.Workers,
	})
	logger.WithFields(logrus.Fields{
		"offers":           stats.Offers,
		"decode_failures":  stats.DecodeFailures,
		"empty_curves":     stats.EmptyCurves,
		"malformed_points": stats.MalformedPoints,
		"excluded":         stats.ExcludedStatus,
		"segments":         stats.Segments,
		"total_mw":         curve.TotalMW(),
	}).Info("built supply curve")
	return curve, stats, nil
}

func cmdBuild(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	common := registerCommon(fs)
	outPath := fs.String("out", "results/supply_curve.csv", "Output CSV path")
	summaryPath := fs.String("summary", "", "Optional: write a JSON summary here")
	_ = fs.Parse(args)

	cfg, err := common.config()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	curve, stats, err := buildCurve(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to build supply curve: %v", err)
	}
	if err := report.WriteSupplyCurveCSV(*outPath, curve); err != nil {
		logger.Fatalf("failed to write %s: %v", *outPath, err)
	}
	fmt.Printf("Wrote %d segments to %s\n", curve.Len(), *outPath)

	var demand *float64
	if curve.Len() > 0 {
		d := cfg.Demand.Resolve(curve.TotalMW())
		demand = &d
	}
	summary, err := analysis.Summarize(curve, stats, demand)
	if err != nil {
		logger.Fatalf("failed to summarize supply curve: %v", err)
	}
	printSummary(summary)

	if *summaryPath != "" {
		if err := report.WriteSummaryJSON(*summaryPath, summary); err != nil {
			logger.Fatalf("failed to write %s: %v", *summaryPath, err)
		}
		fmt.Printf("Wrote summary to %s\n", *summaryPath)
	}
}

func cmdClear(args []string) {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	common := registerCommon(fs)
	_ = fs.Parse(args)

	cfg, err := common.config()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	curve, _, err := buildCurve(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to build supply curve: %v", err)
	}

	demand := cfg.Demand.Resolve(curve.TotalMW())
	res, err := curve.Resolve(demand)
	if errors.Is(err, supply.ErrEmptyCurve) {
		logger.Fatal("no supply segments survived filtering; no clearing price exists")
	}
	if err != nil {
		logger.Fatalf("failed to resolve clearing price: %v", err)
	}
	printClearing(res.Demand, res.Price, res.Segment, res.CumulativeMW, res.Shortfall)
}

func printSummary(s analysis.CurveSummary) {
	fmt.Printf("Segments=%d Total=%.0f MW Price min/max=%.2f/%.2f P05/P95=%.2f/%.2f\n",
		s.Segments, s.TotalMW, s.MinPrice, s.MaxPrice, s.P05Price, s.P95Price)
	if len(s.Categories) > 0 {
		fmt.Printf("%-16s %-8s %-12s %-10s\n", "category", "count", "mw", "avg$")
		for _, c := range s.Categories {
			fmt.Printf("%-16s %-8d %-12.1f %-10.2f\n", c.Category, c.Segments, c.MW, c.WeightedPrice)
		}
	}
	if c := s.Clearing; c != nil {
		printClearing(c.DemandMW, c.Price, model.Segment{
			ResourceName: c.ResourceName,
			ResourceType: c.ResourceType,
		}, c.CumulativeMW, c.Shortfall)
	}
}

func printClearing(demand, price float64, seg model.Segment, cumMW float64, shortfall bool) {
	fmt.Printf("Demand=%.0f MW Clearing price=$%.2f/MWh (marginal: %s %s, cumulative %.0f MW)\n",
		demand, price, seg.ResourceName, seg.ResourceType, cumMW)
	if shortfall {
		fmt.Println("warning: demand exceeds offered capacity; price is the last unit in merit order")
	}
}
