// Package roi implements the return-on-investment engine: monthly cash-flow
// construction from cost/benefit line items, then NPV, IRR (Newton-Raphson),
// MIRR, payback, break-even, profitability index and EVA.
//
// Rate convention (preserved deliberately, do not "fix"): the annual discount
// rate is divided by 12 for monthly discounting, and the monthly IRR is
// multiplied by 12 to annualize. Both are linear approximations rather than
// true compounding, kept consistent so NPV and IRR remain comparable.
package roi

// ItemKind discriminates the two line-item variants.
type ItemKind string

const (
	KindCost    ItemKind = "cost"
	KindBenefit ItemKind = "benefit"
)

// Cost and benefit category taxonomies.
type Category string

const (
	CostDevelopment    Category = "development"
	CostInfrastructure Category = "infrastructure"
	CostMarketing      Category = "marketing"
	CostPersonnel      Category = "personnel"
	CostOther          Category = "other_cost"

	BenefitRevenue      Category = "revenue"
	BenefitCostSavings  Category = "cost_savings"
	BenefitRetention    Category = "retention"
	BenefitProductivity Category = "productivity"
	BenefitOther        Category = "other_benefit"
)

// LineItem is a single cost or benefit over a month range.
// Invariant: StartMonth + Months - 1 <= the calculation's TimeHorizon.
//
// Probability risk-adjusts benefit amounts (amount * probability/100);
// nil means 100%. It is ignored on cost items.
type LineItem struct {
	ID          string   `json:"id"`
	Kind        ItemKind `json:"kind"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`       // >= 0, per month when recurring
	StartMonth  int      `json:"start_month"`  // 1-based
	Months      int      `json:"months"`       // duration, >= 1
	IsRecurring bool     `json:"is_recurring"` // false: full amount once at StartMonth
	Probability *float64 `json:"probability,omitempty"`
}

// Calculation is the full input snapshot for one ROI run.
// ReinvestRate and FinanceRate (annual %) are optional; MIRR is computed
// only when both are present.
type Calculation struct {
	InitialCost  float64    `json:"initial_cost"`  // one-time outlay at month 0
	Costs        []LineItem `json:"costs"`
	Benefits     []LineItem `json:"benefits"`
	TimeHorizon  int        `json:"time_horizon"`  // months, 1-120
	DiscountRate float64    `json:"discount_rate"` // annual %, 0-50
	Currency     string     `json:"currency"`
	ReinvestRate *float64   `json:"reinvest_rate,omitempty"` // annual %
	FinanceRate  *float64   `json:"finance_rate,omitempty"`  // annual %
}

// BeyondHorizon is the sentinel month for payback/break-even series that
// never turn non-negative within the horizon.
const BeyondHorizon = -1

// Metrics holds every derived figure. All fields are recomputed together
// from one input snapshot; none is ever mutated independently.
//
// IRR and MIRR are NaN when IRRConverged / MIRRAvailable is false: callers
// must check the flag before displaying the number.
type Metrics struct {
	SimpleROI              float64 `json:"simple_roi"` // percent
	NPV                    float64 `json:"npv"`
	IRR                    float64 `json:"irr"` // annual %, linear annualization
	IRRConverged           bool    `json:"irr_converged"`
	MIRR                   float64 `json:"mirr"` // annual %
	MIRRAvailable          bool    `json:"mirr_available"`
	PaybackMonth           int     `json:"payback_month"`
	DiscountedPaybackMonth int     `json:"discounted_payback_month"`
	BreakEvenMonth         int     `json:"break_even_month"`
	PI                     float64 `json:"pi"`  // NPV / initial investment
	EVA                    float64 `json:"eva"` // profit after cost-of-capital charge
	TotalCosts             float64 `json:"total_costs"`
	TotalBenefits          float64 `json:"total_benefits"`
	Currency               string  `json:"currency"`
}

// ProjectionPoint is one row of the monthly side artifact for charting.
// Month 0 carries the initial outlay.
type ProjectionPoint struct {
	Month                int     `json:"month"`
	CashFlow             float64 `json:"cash_flow"`
	Cumulative           float64 `json:"cumulative"`
	Discounted           float64 `json:"discounted"`
	DiscountedCumulative float64 `json:"discounted_cumulative"`
}
