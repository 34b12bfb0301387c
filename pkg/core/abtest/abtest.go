// Package abtest implements the controlled-experiment statistics engine:
// two-proportion z-tests, confidence intervals, uplift and observed power,
// plus a closed-form sample-size/power calculator. Both entry points share
// the normal-distribution utilities in pkg/core/numeric.
package abtest

import (
	"math"

	"pm_compass/pkg/core/numeric"
	"pm_compass/pkg/core/validate"
)

// Direction selects a one- or two-tailed test.
type Direction string

const (
	OneTailed Direction = "one-tailed"
	TwoTailed Direction = "two-tailed"
)

// Variation is one arm of the experiment.
type Variation struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Visitors    int      `json:"visitors"`    // >= 0
	Conversions int      `json:"conversions"` // 0 <= conversions <= visitors
	Revenue     *float64 `json:"revenue,omitempty"`
}

// TestConfig holds the test parameters.
type TestConfig struct {
	ConfidenceLevel float64   `json:"confidence_level"` // 90, 95 or 99
	Direction       Direction `json:"direction"`
	MinimumEffect   float64   `json:"minimum_effect"` // relative %, informational
}

// Interval is the confidence interval on the absolute difference p2-p1.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Result is the full analysis output. When either arm has zero visitors the
// result degrades to the documented NaN-safe defaults: PValue 1, nothing
// significant, zero interval, zero uplift.
type Result struct {
	ControlRate   float64  `json:"control_rate"`
	VariantRate   float64  `json:"variant_rate"`
	ZScore        float64  `json:"z_score"`
	PValue        float64  `json:"p_value"`
	IsSignificant bool     `json:"is_significant"`
	Interval      Interval `json:"confidence_interval"`
	Uplift        float64  `json:"uplift"` // relative %, (p2-p1)/p1*100
	Power         float64  `json:"power"`  // observed power, 0-1
	EffectSize    float64  `json:"effect_size"` // Cohen's h
}

// Analyze runs the two-proportion z-test of variant against control.
func Analyze(control, variant Variation, cfg TestConfig) (Result, error) {
	if err := validateVariation("control", control); err != nil {
		return Result{}, err
	}
	if err := validateVariation("variant", variant); err != nil {
		return Result{}, err
	}
	if err := validateConfig(cfg); err != nil {
		return Result{}, err
	}

	// Zero traffic on either side: no inference possible, fail soft
	if control.Visitors == 0 || variant.Visitors == 0 {
		return Result{PValue: 1}, nil
	}

	v1 := float64(control.Visitors)
	v2 := float64(variant.Visitors)
	p1 := float64(control.Conversions) / v1
	p2 := float64(variant.Conversions) / v2
	diff := p2 - p1

	pooled := (float64(control.Conversions) + float64(variant.Conversions)) / (v1 + v2)
	se := math.Sqrt(pooled * (1 - pooled) * (1/v1 + 1/v2))

	res := Result{
		ControlRate: p1,
		VariantRate: p2,
		PValue:      1,
	}

	// Identical all-zero or all-converting arms give se = 0; there is no
	// evidence of a difference, so the defaults stand.
	if se == 0 {
		return res, nil
	}

	z := diff / se
	res.ZScore = z

	twoSided := cfg.Direction == TwoTailed
	if twoSided {
		res.PValue = 2 * (1 - numeric.NormalCDF(math.Abs(z)))
	} else {
		res.PValue = 1 - numeric.NormalCDF(z)
	}

	alpha := 1 - cfg.ConfidenceLevel/100
	res.IsSignificant = res.PValue < alpha

	// Interval on the difference always uses the two-sided critical value
	zCrit := numeric.ZCritical(cfg.ConfidenceLevel, true)
	res.Interval = Interval{Lower: diff - zCrit*se, Upper: diff + zCrit*se}

	if p1 > 0 {
		res.Uplift = diff / p1 * 100
	}

	// Observed power: probability of detecting the measured effect at the
	// configured threshold, under the normal approximation
	zThreshold := numeric.ZCritical(cfg.ConfidenceLevel, twoSided)
	res.Power = numeric.NormalCDF(math.Abs(z) - zThreshold)

	// Cohen's h effect size
	res.EffectSize = 2*math.Asin(math.Sqrt(p2)) - 2*math.Asin(math.Sqrt(p1))

	return res, nil
}

func validateVariation(field string, v Variation) error {
	if v.Visitors < 0 {
		return validate.NewFieldError(field+".visitors", "must not be negative, got %d", v.Visitors)
	}
	if v.Conversions < 0 || v.Conversions > v.Visitors {
		return validate.NewFieldError(field+".conversions", "must be between 0 and visitors (%d), got %d", v.Visitors, v.Conversions)
	}
	return nil
}

func validateConfig(cfg TestConfig) error {
	switch cfg.ConfidenceLevel {
	case 90, 95, 99:
	default:
		return validate.NewFieldError("confidence_level", "must be 90, 95 or 99, got %v", cfg.ConfidenceLevel)
	}
	switch cfg.Direction {
	case OneTailed, TwoTailed:
	default:
		return validate.NewFieldError("direction", "must be one-tailed or two-tailed, got %q", cfg.Direction)
	}
	return nil
}
