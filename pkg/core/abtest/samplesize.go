package abtest

import (
	"math"

	"pm_compass/pkg/core/numeric"
	"pm_compass/pkg/core/validate"
)

// SampleSizeInputs drives the pre-test planning calculator.
type SampleSizeInputs struct {
	BaselineRate    float64   `json:"baseline_rate"`    // conversion %, 0-100 exclusive of 0
	MinimumEffect   float64   `json:"minimum_effect"`   // relative %, > 0 (e.g. 10 = +10%)
	ConfidenceLevel float64   `json:"confidence_level"` // 90, 95 or 99
	Direction       Direction `json:"direction"`
	TargetPower     float64   `json:"target_power"` // %, e.g. 80
}

// SampleSizeResult is the planning output.
type SampleSizeResult struct {
	PerVariation int     `json:"per_variation"`
	Total        int     `json:"total"`
	ExpectedRate float64 `json:"expected_rate"` // baseline scaled by the effect, as a proportion
}

// SampleSize solves the standard two-proportion formula
//
//	n = 2 * (z_alpha + z_beta)^2 * pBar*(1-pBar) / (p2-p1)^2
//
// for the per-variation sample size, rounded up. Closed-form, using the same
// inverse normal CDF as the significance engine.
func SampleSize(in SampleSizeInputs) (SampleSizeResult, error) {
	if in.BaselineRate <= 0 || in.BaselineRate >= 100 {
		return SampleSizeResult{}, validate.NewFieldError("baseline_rate", "must be strictly between 0 and 100, got %v", in.BaselineRate)
	}
	if in.MinimumEffect <= 0 {
		return SampleSizeResult{}, validate.NewFieldError("minimum_effect", "must be greater than zero, got %v", in.MinimumEffect)
	}
	if err := validateConfig(TestConfig{ConfidenceLevel: in.ConfidenceLevel, Direction: in.Direction}); err != nil {
		return SampleSizeResult{}, err
	}
	if in.TargetPower <= 0 || in.TargetPower >= 100 {
		return SampleSizeResult{}, validate.NewFieldError("target_power", "must be strictly between 0 and 100, got %v", in.TargetPower)
	}

	p1 := in.BaselineRate / 100
	p2 := p1 * (1 + in.MinimumEffect/100)
	if p2 >= 1 {
		return SampleSizeResult{}, validate.NewFieldError("minimum_effect", "effect pushes the expected rate to %v, beyond 100%%", p2*100)
	}

	zAlpha := numeric.ZCritical(in.ConfidenceLevel, in.Direction == TwoTailed)
	zBeta := numeric.NormalInverseCDF(in.TargetPower / 100)

	pBar := (p1 + p2) / 2
	delta := p2 - p1
	n := 2 * math.Pow(zAlpha+zBeta, 2) * pBar * (1 - pBar) / (delta * delta)

	perVariation := int(math.Ceil(n))
	return SampleSizeResult{
		PerVariation: perVariation,
		Total:        perVariation * 2,
		ExpectedRate: p2,
	}, nil
}

// AchievedPower computes the power a per-variation sample size n delivers
// for the same baseline/effect assumptions: the inverse of SampleSize,
// used for round-trip planning checks.
func AchievedPower(in SampleSizeInputs, perVariation int) (float64, error) {
	if perVariation <= 0 {
		return 0, validate.NewFieldError("per_variation", "must be greater than zero, got %d", perVariation)
	}
	if in.BaselineRate <= 0 || in.BaselineRate >= 100 {
		return 0, validate.NewFieldError("baseline_rate", "must be strictly between 0 and 100, got %v", in.BaselineRate)
	}
	if err := validateConfig(TestConfig{ConfidenceLevel: in.ConfidenceLevel, Direction: in.Direction}); err != nil {
		return 0, err
	}

	p1 := in.BaselineRate / 100
	p2 := p1 * (1 + in.MinimumEffect/100)
	pBar := (p1 + p2) / 2
	delta := p2 - p1

	se := math.Sqrt(2 * pBar * (1 - pBar) / float64(perVariation))
	if se == 0 {
		return 0, nil
	}

	zAlpha := numeric.ZCritical(in.ConfidenceLevel, in.Direction == TwoTailed)
	return numeric.NormalCDF(math.Abs(delta)/se - zAlpha), nil
}
