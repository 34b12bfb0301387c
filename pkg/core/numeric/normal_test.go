package numeric

import (
	"math"
	"testing"
)

func TestNormalCDFTableValues(t *testing.T) {
	// Standard normal table checks
	cases := []struct {
		z, want float64
	}{
		{0, 0.5},
		{1.0, 0.841345},
		{1.645, 0.950015},
		{1.96, 0.975002},
		{2.576, 0.995002},
		{-1.0, 0.158655},
		{-3.0, 0.001350},
	}
	for _, c := range cases {
		got := NormalCDF(c.z)
		if math.Abs(got-c.want) > 1e-5 {
			t.Errorf("NormalCDF(%v) = %f, want %f", c.z, got, c.want)
		}
	}
}

func TestNormalInverseCDFCriticalValues(t *testing.T) {
	// The three confidence levels the engines use
	cases := []struct {
		p, want float64
	}{
		{0.95, 1.6449},  // 90% two-sided
		{0.975, 1.9600}, // 95% two-sided
		{0.995, 2.5758}, // 99% two-sided
		{0.5, 0.0},
		{0.8, 0.8416}, // 80% power -> z_beta
	}
	for _, c := range cases {
		got := NormalInverseCDF(c.p)
		if math.Abs(got-c.want) > 1e-4 {
			t.Errorf("NormalInverseCDF(%v) = %f, want %f", c.p, got, c.want)
		}
	}
}

func TestNormalInverseCDFRoundTrip(t *testing.T) {
	for p := 0.001; p < 1.0; p += 0.013 {
		z := NormalInverseCDF(p)
		back := NormalCDF(z)
		if math.Abs(back-p) > 1e-9 {
			t.Errorf("round trip failed at p=%f: z=%f back=%f", p, z, back)
		}
	}
}

func TestNormalInverseCDFBoundaries(t *testing.T) {
	if !math.IsInf(NormalInverseCDF(0), -1) {
		t.Error("expected -Inf at p=0")
	}
	if !math.IsInf(NormalInverseCDF(1), 1) {
		t.Error("expected +Inf at p=1")
	}
	if !math.IsNaN(NormalInverseCDF(1.5)) {
		t.Error("expected NaN outside [0,1]")
	}
}

func TestZCritical(t *testing.T) {
	if got := ZCritical(95, true); math.Abs(got-1.96) > 1e-3 {
		t.Errorf("two-sided 95%% critical = %f, want 1.96", got)
	}
	if got := ZCritical(95, false); math.Abs(got-1.6449) > 1e-3 {
		t.Errorf("one-sided 95%% critical = %f, want 1.6449", got)
	}
	if got := ZCritical(99, true); math.Abs(got-2.5758) > 1e-3 {
		t.Errorf("two-sided 99%% critical = %f, want 2.5758", got)
	}
}

func TestSolveNewtonQuadratic(t *testing.T) {
	// f(x) = x^2 - 4, roots at +/-2
	f := func(x float64) float64 { return x*x - 4 }
	fp := func(x float64) float64 { return 2 * x }

	res := SolveNewton(f, fp, 10, 1e-10, 100)
	if !res.Converged {
		t.Fatal("expected convergence on x^2-4")
	}
	if math.Abs(res.Root-2.0) > 1e-8 {
		t.Errorf("root = %f, want 2", res.Root)
	}

	res = SolveNewton(f, fp, -10, 1e-10, 100)
	if !res.Converged || math.Abs(res.Root+2.0) > 1e-8 {
		t.Errorf("root = %f, want -2", res.Root)
	}
}

func TestSolveNewtonNoRoot(t *testing.T) {
	// f(x) = x^2 + 1 has no real root; solver must give up, not loop or lie
	f := func(x float64) float64 { return x*x + 1 }
	fp := func(x float64) float64 { return 2 * x }

	res := SolveNewton(f, fp, 3, 1e-10, 50)
	if res.Converged {
		t.Errorf("expected non-convergence, got root %f", res.Root)
	}
	if !math.IsNaN(res.Root) {
		t.Errorf("expected NaN root on failure, got %f", res.Root)
	}
}

func TestSolveNewtonFlatDerivative(t *testing.T) {
	// Derivative is zero at the seed; solver must abort cleanly
	f := func(x float64) float64 { return x * x }
	fp := func(x float64) float64 { return 2 * x }

	res := SolveNewton(f, fp, 0, 1e-10, 50)
	if res.Converged {
		t.Error("expected failure on zero derivative at seed")
	}
}
