package roi

import (
	"fmt"
	"math"

	"pm_compass/pkg/core/numeric"
	"pm_compass/pkg/core/validate"
)

const (
	irrSeedAnnual = 0.10 // 10%/yr starting guess for the Newton solve
	irrTolerance  = 1e-7
	irrMaxIter    = 100
)

// Compute validates the calculation, builds the monthly cash-flow series and
// derives every metric plus the projection side artifact for charting.
func Compute(c Calculation) (Metrics, []ProjectionPoint, error) {
	if err := validateCalculation(c); err != nil {
		return Metrics{}, nil, err
	}

	flows := buildCashFlows(c)
	monthlyRate := c.DiscountRate / 100 / 12

	totalCosts, totalBenefits := totals(c)

	m := Metrics{
		TotalCosts:    totalCosts,
		TotalBenefits: totalBenefits,
		Currency:      c.Currency,
	}

	// Simple ROI. Zero total cost means the ratio is undefined; report 0.
	if totalCosts > 0 {
		m.SimpleROI = (totalBenefits - totalCosts) / totalCosts * 100
	}

	m.NPV = npv(flows, monthlyRate)

	m.IRR, m.IRRConverged = solveIRR(flows)
	m.MIRR, m.MIRRAvailable = solveMIRR(flows, c)

	if c.InitialCost > 0 {
		m.PI = m.NPV / c.InitialCost
	}

	// EVA: profit net of the cost-of-capital charge on the invested capital
	// over the horizon (linear annual charge, matching the rate convention).
	capitalCharge := c.InitialCost * (c.DiscountRate / 100) * (float64(c.TimeHorizon) / 12)
	m.EVA = (totalBenefits - totalCosts) - capitalCharge

	projection := project(flows, monthlyRate)
	m.PaybackMonth = firstNonNegative(projection, false)
	m.DiscountedPaybackMonth = firstNonNegative(projection, true)
	m.BreakEvenMonth = breakEven(flows)

	return m, projection, nil
}

func validateCalculation(c Calculation) error {
	if err := validate.NonNegative("initial_cost", c.InitialCost); err != nil {
		return err
	}
	if err := validate.IntRange("time_horizon", c.TimeHorizon, 1, 120); err != nil {
		return err
	}
	if err := validate.Range("discount_rate", c.DiscountRate, 0, 50); err != nil {
		return err
	}
	for i, item := range c.Costs {
		if err := validateItem(fmt.Sprintf("costs[%d]", i), item, c.TimeHorizon); err != nil {
			return err
		}
	}
	for i, item := range c.Benefits {
		if err := validateItem(fmt.Sprintf("benefits[%d]", i), item, c.TimeHorizon); err != nil {
			return err
		}
	}
	return nil
}

func validateItem(field string, item LineItem, horizon int) error {
	if err := validate.NonNegative(field+".amount", item.Amount); err != nil {
		return err
	}
	if item.StartMonth < 1 || item.StartMonth > horizon {
		return validate.NewFieldError(field+".start_month", "must be between 1 and %d, got %d", horizon, item.StartMonth)
	}
	if item.Months < 1 {
		return validate.NewFieldError(field+".months", "must be at least 1, got %d", item.Months)
	}
	if item.StartMonth+item.Months-1 > horizon {
		return validate.NewFieldError(field+".months", "item runs to month %d, beyond the %d-month horizon", item.StartMonth+item.Months-1, horizon)
	}
	if item.Probability != nil {
		if err := validate.Percentage(field+".probability", *item.Probability); err != nil {
			return err
		}
	}
	return nil
}

// effectiveAmount applies the risk-adjustment weight for benefit items.
// Costs are committed spend and are never discounted by probability.
func effectiveAmount(item LineItem, benefit bool) float64 {
	amt := item.Amount
	if benefit && item.Probability != nil {
		amt *= *item.Probability / 100
	}
	return amt
}

// buildCashFlows produces the month-indexed series of length TimeHorizon+1.
// Index 0 carries -InitialCost; indices 1..N are calendar months.
func buildCashFlows(c Calculation) []float64 {
	flows := make([]float64, c.TimeHorizon+1)
	flows[0] = -c.InitialCost

	apply := func(item LineItem, sign float64, benefit bool) {
		amt := effectiveAmount(item, benefit)
		if item.IsRecurring {
			for m := item.StartMonth; m < item.StartMonth+item.Months; m++ {
				flows[m] += sign * amt
			}
		} else {
			flows[item.StartMonth] += sign * amt
		}
	}

	for _, item := range c.Costs {
		apply(item, -1, false)
	}
	for _, item := range c.Benefits {
		apply(item, +1, true)
	}
	return flows
}

// totals sums costs (including the initial outlay) and risk-adjusted
// benefits over the full horizon, mirroring the cash-flow rules.
func totals(c Calculation) (costs, benefits float64) {
	costs = c.InitialCost
	for _, item := range c.Costs {
		amt := effectiveAmount(item, false)
		if item.IsRecurring {
			costs += amt * float64(item.Months)
		} else {
			costs += amt
		}
	}
	for _, item := range c.Benefits {
		amt := effectiveAmount(item, true)
		if item.IsRecurring {
			benefits += amt * float64(item.Months)
		} else {
			benefits += amt
		}
	}
	return costs, benefits
}

// npv discounts each month's flow by (1+rate)^month. At rate 0 this
// degenerates to a plain sum.
func npv(flows []float64, monthlyRate float64) float64 {
	total := 0.0
	for m, cf := range flows {
		total += cf / math.Pow(1+monthlyRate, float64(m))
	}
	return total
}

// solveIRR finds the monthly rate where NPV is zero and annualizes it (x12).
// A series without a sign change has no IRR; that and a Newton solve that
// gives up are both surfaced as (NaN, false), never a plausible wrong number.
func solveIRR(flows []float64) (float64, bool) {
	if !hasSignChange(flows) {
		return math.NaN(), false
	}

	f := func(r float64) float64 { return npv(flows, r) }
	fprime := func(r float64) float64 {
		d := 0.0
		for m, cf := range flows {
			if m == 0 {
				continue
			}
			d -= float64(m) * cf / math.Pow(1+r, float64(m+1))
		}
		return d
	}

	res := numeric.SolveNewton(f, fprime, irrSeedAnnual/12, irrTolerance, irrMaxIter)
	if !res.Converged || res.Root <= -1 {
		return math.NaN(), false
	}
	return res.Root * 12 * 100, true
}

func hasSignChange(flows []float64) bool {
	neg, pos := false, false
	for _, cf := range flows {
		if cf < 0 {
			neg = true
		}
		if cf > 0 {
			pos = true
		}
	}
	return neg && pos
}

// solveMIRR compounds positive flows forward at the reinvestment rate and
// discounts negative flows back at the finance rate, then solves the single
// period-adjusted rate. Requires both optional rates.
func solveMIRR(flows []float64, c Calculation) (float64, bool) {
	if c.ReinvestRate == nil || c.FinanceRate == nil {
		return math.NaN(), false
	}
	rr := *c.ReinvestRate / 100 / 12
	fr := *c.FinanceRate / 100 / 12
	n := len(flows) - 1

	fvPositive := 0.0
	pvNegative := 0.0
	for m, cf := range flows {
		if cf > 0 {
			fvPositive += cf * math.Pow(1+rr, float64(n-m))
		} else if cf < 0 {
			pvNegative += -cf / math.Pow(1+fr, float64(m))
		}
	}
	if pvNegative == 0 || fvPositive == 0 || n == 0 {
		return math.NaN(), false
	}

	monthly := math.Pow(fvPositive/pvNegative, 1/float64(n)) - 1
	return monthly * 12 * 100, true
}

// project builds the charting artifact: per-month flow, cumulative,
// discounted flow and discounted cumulative.
func project(flows []float64, monthlyRate float64) []ProjectionPoint {
	points := make([]ProjectionPoint, len(flows))
	cum, dcum := 0.0, 0.0
	for m, cf := range flows {
		disc := cf / math.Pow(1+monthlyRate, float64(m))
		cum += cf
		dcum += disc
		points[m] = ProjectionPoint{
			Month:                m,
			CashFlow:             cf,
			Cumulative:           cum,
			Discounted:           disc,
			DiscountedCumulative: dcum,
		}
	}
	return points
}

// firstNonNegative scans the cumulative (or discounted cumulative) series
// for the first month at or past zero. BeyondHorizon when it never crosses.
func firstNonNegative(points []ProjectionPoint, discounted bool) int {
	for _, p := range points {
		v := p.Cumulative
		if discounted {
			v = p.DiscountedCumulative
		}
		if v >= 0 {
			return p.Month
		}
	}
	return BeyondHorizon
}

// breakEven is the first calendar month whose own net flow is non-negative,
// i.e. the month operations stop burning cash (distinct from payback, which
// asks when the cumulative hole is filled).
func breakEven(flows []float64) int {
	for m := 1; m < len(flows); m++ {
		if flows[m] >= 0 {
			return m
		}
	}
	return BeyondHorizon
}
