// Package rice implements the RICE prioritization score:
// Reach x Impact x Confidence / Effort.
//
// Canonical scale: reach is a raw user count per period, impact a continuous
// multiplier (conventionally 0.25-3), confidence a percentage and effort
// person-months. Scores are rounded to one decimal place.
package rice

import (
	"math"
	"sort"

	"pm_compass/pkg/core/validate"
)

// Inputs holds the four RICE factors for a single initiative.
type Inputs struct {
	Reach      float64 `json:"reach"`      // users per period, >= 0
	Impact     float64 `json:"impact"`     // multiplier, >= 0
	Confidence float64 `json:"confidence"` // percent, 0-100
	Effort     float64 `json:"effort"`     // person-months, > 0
}

// Category buckets a score into a priority tier.
type Category struct {
	Label string `json:"label"` // e.g. "Must Do"
	Color string `json:"color"` // display hint for the caller
	Rank  int    `json:"rank"`  // 1 (highest) .. 4, used for sorting
}

// Fixed category breakpoints. A score of exactly 100 is "Must Do".
var categories = []struct {
	min float64
	cat Category
}{
	{100, Category{Label: "Must Do", Color: "green", Rank: 1}},
	{50, Category{Label: "Should Do", Color: "blue", Rank: 2}},
	{20, Category{Label: "Could Do", Color: "yellow", Rank: 3}},
	{0, Category{Label: "Won't Do", Color: "gray", Rank: 4}},
}

// Contribution is a heuristic attribution of the score to its factors.
// Reach/impact/confidence are shares of the numerator product and effort a
// negative drag percentage; it is a narrative aid, not an exact decomposition.
type Contribution struct {
	ReachPct      float64 `json:"reach_pct"`
	ImpactPct     float64 `json:"impact_pct"`
	ConfidencePct float64 `json:"confidence_pct"`
	EffortPct     float64 `json:"effort_pct"` // <= 0
}

// Result holds the computed score and its classification.
type Result struct {
	Score        float64      `json:"score"`
	Category     Category     `json:"category"`
	Contribution Contribution `json:"contribution"`
}

// Score validates the inputs and computes the RICE score.
// Effort of zero is rejected, never coerced: it would divide by zero.
func Score(in Inputs) (Result, error) {
	if err := validate.NonNegative("reach", in.Reach); err != nil {
		return Result{}, err
	}
	if err := validate.NonNegative("impact", in.Impact); err != nil {
		return Result{}, err
	}
	if err := validate.Percentage("confidence", in.Confidence); err != nil {
		return Result{}, err
	}
	if err := validate.Positive("effort", in.Effort); err != nil {
		return Result{}, err
	}

	raw := in.Reach * in.Impact * (in.Confidence / 100) / in.Effort
	score := math.Round(raw*10) / 10

	return Result{
		Score:        score,
		Category:     Categorize(score),
		Contribution: contribution(in),
	}, nil
}

// Categorize maps a score onto its fixed priority tier.
func Categorize(score float64) Category {
	for _, c := range categories {
		if score >= c.min {
			return c.cat
		}
	}
	// Unreachable for score >= 0; negative scores cannot arise from valid inputs
	return categories[len(categories)-1].cat
}

func contribution(in Inputs) Contribution {
	numerator := in.Reach * in.Impact * (in.Confidence / 100)
	c := Contribution{}
	if numerator > 0 {
		c.ReachPct = in.Reach / numerator * 100
		c.ImpactPct = in.Impact / numerator * 100
		c.ConfidencePct = (in.Confidence / 100) / numerator * 100
	}
	// Effort drags the score down; express it as the share of the raw
	// product lost to division. Effort of 1 is neutral.
	if in.Effort > 1 {
		c.EffortPct = -((in.Effort - 1) / in.Effort) * 100
	}
	return c
}

// ScoredItem pairs an initiative identifier with its result, for ranking.
type ScoredItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Result Result `json:"result"`
}

// Rank sorts items by category rank (ascending), then score (descending),
// then name for a stable display order. The input slice is not modified.
func Rank(items []ScoredItem) []ScoredItem {
	ranked := make([]ScoredItem, len(items))
	copy(ranked, items)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Result.Category.Rank != b.Result.Category.Rank {
			return a.Result.Category.Rank < b.Result.Category.Rank
		}
		if a.Result.Score != b.Result.Score {
			return a.Result.Score > b.Result.Score
		}
		return a.Name < b.Name
	})
	return ranked
}
