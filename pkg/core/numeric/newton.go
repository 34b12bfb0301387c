package numeric

import "math"

// NewtonResult reports the outcome of a Newton-Raphson solve.
// Converged distinguishes a genuine root from "gave up after MaxIter":
// callers must check it before trusting Root.
type NewtonResult struct {
	Root       float64
	Iterations int
	Converged  bool
}

// SolveNewton finds a root of f starting from seed using Newton-Raphson:
// x ← x - f(x)/fprime(x), stopping when the step magnitude drops below tol
// or after maxIter iterations. A vanishing or non-finite derivative aborts
// the solve with Converged=false rather than dividing by zero.
func SolveNewton(f, fprime func(float64) float64, seed, tol float64, maxIter int) NewtonResult {
	x := seed
	for i := 1; i <= maxIter; i++ {
		fx := f(x)
		dfx := fprime(x)

		if math.Abs(dfx) < 1e-12 || math.IsNaN(dfx) || math.IsInf(dfx, 0) {
			return NewtonResult{Root: math.NaN(), Iterations: i, Converged: false}
		}

		step := fx / dfx
		x -= step

		if math.IsNaN(x) || math.IsInf(x, 0) {
			return NewtonResult{Root: math.NaN(), Iterations: i, Converged: false}
		}

		if math.Abs(step) < tol {
			return NewtonResult{Root: x, Iterations: i, Converged: true}
		}
	}
	return NewtonResult{Root: math.NaN(), Iterations: maxIter, Converged: false}
}
