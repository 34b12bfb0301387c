// Package market implements the TAM/SAM/SOM market-sizing funnel with two
// mutually exclusive computation paths: a top-down percentage cascade and a
// bottom-up segment aggregation. Both emit the same MarketSizes shape with a
// method tag, so callers switch on Method with exhaustive branches.
package market

import (
	"fmt"

	"pm_compass/pkg/core/validate"
)

// Method tags the computation path that produced a MarketSizes.
type Method string

const (
	MethodTopDown  Method = "top-down"
	MethodBottomUp Method = "bottom-up"
)

// Sizes is the computed funnel. Invariant: 0 <= SOM <= SAM <= TAM.
// Assumptions is a required output: downstream consumers display it as the
// confidence-building narrative behind the numbers.
type Sizes struct {
	TAM         float64  `json:"tam"`
	SAM         float64  `json:"sam"`
	SOM         float64  `json:"som"`
	Method      Method   `json:"method"`
	Assumptions []string `json:"assumptions"`
	Confidence  float64  `json:"confidence"` // 0-100
}

// TopDownParams drives the percentage cascade.
type TopDownParams struct {
	TAM    float64 `json:"tam"`     // total market value, >= 0
	SAMPct float64 `json:"sam_pct"` // % of TAM that is serviceable, 0-100
	SOMPct float64 `json:"som_pct"` // % of SAM that is obtainable, 0-100
}

// Segment is one customer segment in a bottom-up build.
type Segment struct {
	Name            string  `json:"name"`
	Users           float64 `json:"users"`            // addressable users, >= 0
	AvgPrice        float64 `json:"avg_price"`        // annual revenue per user, >= 0
	GrowthRate      float64 `json:"growth_rate"`      // % per year, narrative only
	PenetrationRate float64 `json:"penetration_rate"` // % reachable, narrative only
}

// BottomUpParams drives the segment aggregation. When TargetSharePct is zero
// the obtainable share falls back to the competitor heuristic
// 100/(competitors+1).
type BottomUpParams struct {
	Segments        []Segment `json:"segments"`
	PenetrationPct  float64   `json:"penetration_pct"`  // TAM -> SAM, 0-100
	TargetSharePct  float64   `json:"target_share_pct"` // SAM -> SOM, 0-100; 0 = use heuristic
	CompetitorCount int       `json:"competitor_count"` // >= 0, feeds the share heuristic
}

// SegmentDetail is the per-segment breakdown side artifact.
type SegmentDetail struct {
	Name  string  `json:"name"`
	TAM   float64 `json:"tam"`
	Share float64 `json:"share"` // % of total TAM, 0 when TAM is 0
}

// Base confidence by method; bottom-up earns more because it is built from
// observable segment data rather than a single headline figure.
const (
	confidenceTopDown  = 65.0
	confidenceBottomUp = 80.0
)

// TopDown computes the funnel as a percentage cascade.
// A zero TAM short-circuits to an all-zero result with no assumptions: there
// is nothing to narrate and no percentage-of-TAM display to divide for.
func TopDown(p TopDownParams) (Sizes, error) {
	if err := validate.NonNegative("tam", p.TAM); err != nil {
		return Sizes{}, err
	}
	if err := validate.Percentage("sam_pct", p.SAMPct); err != nil {
		return Sizes{}, err
	}
	if err := validate.Percentage("som_pct", p.SOMPct); err != nil {
		return Sizes{}, err
	}

	if p.TAM == 0 {
		return Sizes{Method: MethodTopDown, Assumptions: []string{}}, nil
	}

	sam := p.TAM * (p.SAMPct / 100)
	som := sam * (p.SOMPct / 100)

	assumptions := []string{
		"Top-down sizing from a single total-market figure",
		fmt.Sprintf("Serviceable market assumed at %.1f%% of TAM", p.SAMPct),
		fmt.Sprintf("Obtainable market assumed at %.1f%% of SAM", p.SOMPct),
	}

	return Sizes{
		TAM:         p.TAM,
		SAM:         sam,
		SOM:         som,
		Method:      MethodTopDown,
		Assumptions: assumptions,
		Confidence:  confidenceTopDown,
	}, nil
}

// BottomUp aggregates segments into a TAM, then applies the overall
// penetration rate for SAM and the target-share (or competitor heuristic)
// for SOM. The per-segment detail is returned alongside for charting.
func BottomUp(p BottomUpParams) (Sizes, []SegmentDetail, error) {
	if err := validate.Percentage("penetration_pct", p.PenetrationPct); err != nil {
		return Sizes{}, nil, err
	}
	if err := validate.Percentage("target_share_pct", p.TargetSharePct); err != nil {
		return Sizes{}, nil, err
	}
	if p.CompetitorCount < 0 {
		return Sizes{}, nil, validate.NewFieldError("competitor_count", "must not be negative, got %d", p.CompetitorCount)
	}
	for i, s := range p.Segments {
		field := fmt.Sprintf("segments[%d]", i)
		if err := validate.NonNegative(field+".users", s.Users); err != nil {
			return Sizes{}, nil, err
		}
		if err := validate.NonNegative(field+".avg_price", s.AvgPrice); err != nil {
			return Sizes{}, nil, err
		}
	}

	var tam float64
	details := make([]SegmentDetail, 0, len(p.Segments))
	for _, s := range p.Segments {
		segTAM := s.Users * s.AvgPrice
		tam += segTAM
		details = append(details, SegmentDetail{Name: s.Name, TAM: segTAM})
	}
	for i := range details {
		if tam > 0 {
			details[i].Share = details[i].TAM / tam * 100
		}
	}

	if tam == 0 {
		return Sizes{Method: MethodBottomUp, Assumptions: []string{}}, details, nil
	}

	sam := tam * (p.PenetrationPct / 100)

	share := p.TargetSharePct
	shareNote := fmt.Sprintf("Target market share of %.1f%% of SAM", share)
	if share == 0 {
		// Even-split heuristic across us and the named competitors
		share = 100 / float64(p.CompetitorCount+1)
		shareNote = fmt.Sprintf("Market share estimated at %.1f%% (even split across %d competitors plus us)", share, p.CompetitorCount)
	}
	som := sam * (share / 100)

	assumptions := []string{
		fmt.Sprintf("Bottom-up sizing across %d segments (users x average price)", len(p.Segments)),
		fmt.Sprintf("Overall penetration of %.1f%% applied for serviceable market", p.PenetrationPct),
		shareNote,
	}

	confidence := confidenceBottomUp
	if len(p.Segments) < 2 {
		// A single segment is barely better than a headline number
		confidence = confidenceTopDown
	}

	return Sizes{
		TAM:         tam,
		SAM:         sam,
		SOM:         som,
		Method:      MethodBottomUp,
		Assumptions: assumptions,
		Confidence:  confidence,
	}, details, nil
}

// Efficiency is the SOM/TAM capture ratio. Zero TAM returns 0, never NaN.
func Efficiency(s Sizes) float64 {
	if s.TAM == 0 {
		return 0
	}
	return s.SOM / s.TAM
}
