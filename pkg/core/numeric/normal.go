// Package numeric provides the shared numerical primitives used by the
// calculation engines: the standard normal distribution (CDF and inverse CDF)
// and a bounded Newton-Raphson root finder.
package numeric

import "math"

// NormalCDF computes the standard normal cumulative distribution Φ(z)
// via the error function: Φ(z) = (1 + erf(z/√2)) / 2.
// Accurate to machine precision across the full range.
func NormalCDF(z float64) float64 {
	return 0.5 * (1 + math.Erf(z/math.Sqrt2))
}

// Acklam rational approximation coefficients for the inverse normal CDF.
// Relative error below 1.15e-9 over the full domain.
var (
	invNormA = [6]float64{-3.969683028665376e+01, 2.209460984245205e+02, -2.759285104469687e+02, 1.383577518672690e+02, -3.066479806614716e+01, 2.506628277459239e+00}
	invNormB = [5]float64{-5.447609879822406e+01, 1.615858368580409e+02, -1.556989798598866e+02, 6.680131188771972e+01, -1.328068155288572e+01}
	invNormC = [6]float64{-7.784894002430293e-03, -3.223964580411365e-01, -2.400758277161838e+00, -2.549732539343734e+00, 4.374664141464968e+00, 2.938163982698783e+00}
	invNormD = [4]float64{7.784695709041462e-03, 3.224671290700398e-01, 2.445134137142996e+00, 3.754408661907416e+00}
)

// NormalInverseCDF computes Φ⁻¹(p), the z-value such that NormalCDF(z) = p.
// Returns ±Inf at the boundaries p=0 / p=1 and NaN outside [0,1].
func NormalInverseCDF(p float64) float64 {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return math.NaN()
	}
	if p == 0 {
		return math.Inf(-1)
	}
	if p == 1 {
		return math.Inf(1)
	}

	const pLow = 0.02425
	var z float64

	switch {
	case p < pLow:
		// Lower tail
		q := math.Sqrt(-2 * math.Log(p))
		z = (((((invNormC[0]*q+invNormC[1])*q+invNormC[2])*q+invNormC[3])*q+invNormC[4])*q + invNormC[5]) /
			((((invNormD[0]*q+invNormD[1])*q+invNormD[2])*q+invNormD[3])*q + 1)
	case p <= 1-pLow:
		// Central region
		q := p - 0.5
		r := q * q
		z = (((((invNormA[0]*r+invNormA[1])*r+invNormA[2])*r+invNormA[3])*r+invNormA[4])*r + invNormA[5]) * q /
			(((((invNormB[0]*r+invNormB[1])*r+invNormB[2])*r+invNormB[3])*r+invNormB[4])*r + 1)
	default:
		// Upper tail (mirror of lower)
		q := math.Sqrt(-2 * math.Log(1-p))
		z = -(((((invNormC[0]*q+invNormC[1])*q+invNormC[2])*q+invNormC[3])*q+invNormC[4])*q + invNormC[5]) /
			((((invNormD[0]*q+invNormD[1])*q+invNormD[2])*q+invNormD[3])*q + 1)
	}

	// One Halley refinement step to push toward machine precision.
	// Skipped in the extreme tails where exp(z^2/2) overflows.
	if p > 1e-300 && p < 1-1e-16 && math.Abs(z) < 37 {
		e := NormalCDF(z) - p
		u := e * math.Sqrt(2*math.Pi) * math.Exp(z*z/2)
		z = z - u/(1+z*u/2)
	}

	return z
}

// ZCritical returns the critical z-value for a confidence level (e.g. 95)
// and test direction. Two-sided: Φ⁻¹(1 - α/2); one-sided: Φ⁻¹(1 - α).
func ZCritical(confidenceLevel float64, twoSided bool) float64 {
	alpha := 1 - confidenceLevel/100
	if twoSided {
		return NormalInverseCDF(1 - alpha/2)
	}
	return NormalInverseCDF(1 - alpha)
}
