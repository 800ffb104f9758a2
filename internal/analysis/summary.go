package analysis

import (
	"math"
	"sort"
	"time"

	"supply-curve/internal/supply"

	"github.com/google/uuid"
)

// CurveSummary is a curve-level digest for reporting.
type CurveSummary struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Segments int     `json:"segments"`
	TotalMW  float64 `json:"total_mw"`

	MinPrice      float64 `json:"min_price"`
	MaxPrice      float64 `json:"max_price"`
	MeanPrice     float64 `json:"mean_price"`
	WeightedPrice float64 `json:"capacity_weighted_price"`
	P05Price      float64 `json:"p05_price"`
	P95Price      float64 `json:"p95_price"`

	// NegativeMW is capacity offered below $0/MWh.
	NegativeMW float64 `json:"negative_mw"`

	Categories []CategoryCapacity `json:"categories"`

	Clearing *ClearingSummary `json:"clearing,omitempty"`

	Build supply.BuildStats `json:"build"`
}

// CategoryCapacity is the capacity offered by one resource category.
type CategoryCapacity struct {
	Category      supply.Category `json:"category"`
	Segments      int             `json:"segments"`
	MW            float64         `json:"mw"`
	WeightedPrice float64         `json:"capacity_weighted_price"`
}

// ClearingSummary is the clearing result at the resolved demand.
type ClearingSummary struct {
	DemandMW     float64 `json:"demand_mw"`
	Price        float64 `json:"price"`
	ResourceName string  `json:"resource_name"`
	ResourceType string  `json:"resource_type"`
	CumulativeMW float64 `json:"cumulative_mw"`
	Shortfall    bool    `json:"shortfall"`
}

// Summarize computes price and capacity statistics for a supply curve.
// When demand is non-nil the clearing result at that demand is included;
// an empty curve yields supply.ErrEmptyCurve in that case.
func Summarize(curve *supply.SupplyCurve, stats supply.BuildStats, demand *float64) (CurveSummary, error) {
	s := CurveSummary{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Segments:    curve.Len(),
		TotalMW:     curve.TotalMW(),
		Build:       stats,
		Categories:  []CategoryCapacity{},
	}

	if curve.Len() > 0 {
		prices := make([]float64, 0, curve.Len())
		sum, weighted := 0.0, 0.0
		byCat := map[supply.Category]*CategoryCapacity{}
		for _, seg := range curve.Segments {
			prices = append(prices, seg.Price)
			sum += seg.Price
			weighted += seg.Price * seg.MW
			if seg.Price < 0 {
				s.NegativeMW += seg.MW
			}

			cat := supply.Classify(seg.ResourceType)
			cc, ok := byCat[cat]
			if !ok {
				cc = &CategoryCapacity{Category: cat}
				byCat[cat] = cc
			}
			cc.Segments++
			cc.MW += seg.MW
			// price*MW accumulated here, divided out below
			cc.WeightedPrice += seg.Price * seg.MW
		}

		// Segments are in merit order, so prices are already sorted.
		s.MinPrice = prices[0]
		s.MaxPrice = prices[len(prices)-1]
		s.MeanPrice = sum / float64(len(prices))
		if s.TotalMW > 0 {
			s.WeightedPrice = weighted / s.TotalMW
		}
		s.P05Price = percentileSorted(prices, 0.05)
		s.P95Price = percentileSorted(prices, 0.95)

		for _, cc := range byCat {
			if cc.MW > 0 {
				cc.WeightedPrice /= cc.MW
			}
			s.Categories = append(s.Categories, *cc)
		}
		sort.Slice(s.Categories, func(i, j int) bool {
			if s.Categories[i].MW != s.Categories[j].MW {
				return s.Categories[i].MW > s.Categories[j].MW
			}
			return s.Categories[i].Category < s.Categories[j].Category
		})
	}

	if demand != nil {
		res, err := curve.Resolve(*demand)
		if err != nil {
			return s, err
		}
		s.Clearing = &ClearingSummary{
			DemandMW:     res.Demand,
			Price:        res.Price,
			ResourceName: res.Segment.ResourceName,
			ResourceType: res.Segment.ResourceType,
			CumulativeMW: res.CumulativeMW,
			Shortfall:    res.Shortfall,
		}
	}
	return s, nil
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
