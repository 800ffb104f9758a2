package supply

import (
	"errors"

	"supply-curve/internal/model"

	"golang.org/x/sync/errgroup"
)

// BuildOptions controls a pipeline run.
type BuildOptions struct {
	// Excluded statuses; nil means DefaultExcludedStatuses.
	Excluded StatusSet
	// Workers > 1 expands offers concurrently. Output is identical either way.
	Workers int
}

// BuildStats counts what each stage absorbed. None of these are errors.
type BuildStats struct {
	Offers          int `json:"offers"`
	DecodeFailures  int `json:"decode_failures"`
	EmptyCurves     int `json:"empty_curves"`
	MalformedPoints int `json:"malformed_points"`
	Expanded        int `json:"expanded_segments"`
	ExcludedStatus  int `json:"excluded_by_status"`
	NonPositive     int `json:"non_positive"`
	NonFinitePrice  int `json:"non_finite_price"`
	Segments        int `json:"segments"`
}

type offerResult struct {
	segments  []model.Segment
	malformed int
	err       error
}

// Build runs parse, expand, filter and aggregate over a batch of offers.
//
// Offers whose curve is empty or fails to decode contribute nothing; the
// batch always produces a curve, possibly an empty one.
func Build(offers []model.RawOffer, opts BuildOptions) (*SupplyCurve, BuildStats) {
	excluded := opts.Excluded
	if excluded == nil {
		excluded = DefaultExcludedStatuses()
	}

	results := make([]offerResult, len(offers))
	if opts.Workers > 1 && len(offers) > 1 {
		var g errgroup.Group
		g.SetLimit(opts.Workers)
		for i := range offers {
			i := i
			g.Go(func() error {
				results[i] = expandOffer(offers[i])
				return nil
			})
		}
		// expandOffer absorbs every per-offer problem, so Wait has nothing to report.
		_ = g.Wait()
	} else {
		for i := range offers {
			results[i] = expandOffer(offers[i])
		}
	}

	stats := BuildStats{Offers: len(offers)}
	var expanded []model.Segment
	for _, r := range results {
		switch {
		case errors.Is(r.err, ErrNoOfferCurve):
			stats.EmptyCurves++
		case r.err != nil:
			stats.DecodeFailures++
		}
		stats.MalformedPoints += r.malformed
		expanded = append(expanded, r.segments...)
	}
	stats.Expanded = len(expanded)

	kept, n := filterCounted(expanded, excluded)
	stats.ExcludedStatus = n.byStatus
	stats.NonPositive = n.nonPositive
	stats.NonFinitePrice = n.badPrice

	curve := Aggregate(kept)
	stats.Segments = curve.Len()
	return curve, stats
}

func expandOffer(offer model.RawOffer) offerResult {
	tuples, err := ParseCurve(offer)
	if err != nil {
		return offerResult{err: err}
	}
	segs, malformed := Expand(offer, tuples)
	return offerResult{segments: segs, malformed: malformed}
}
