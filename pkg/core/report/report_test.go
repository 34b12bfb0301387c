package report

import (
	"strings"
	"testing"

	"pm_compass/pkg/core/abtest"
	"pm_compass/pkg/core/market"
	"pm_compass/pkg/core/rice"
	"pm_compass/pkg/core/roi"
)

func TestReportAssembly(t *testing.T) {
	scored, err := rice.Score(rice.Inputs{Reach: 1000, Impact: 2, Confidence: 80, Effort: 4})
	if err != nil {
		t.Fatal(err)
	}

	sizes, err := market.TopDown(market.TopDownParams{TAM: 10_000_000, SAMPct: 40, SOMPct: 25})
	if err != nil {
		t.Fatal(err)
	}

	metrics, _, err := roi.Compute(roi.Calculation{
		InitialCost: 10_000,
		Benefits: []roi.LineItem{
			{Kind: roi.KindBenefit, Category: roi.BenefitRevenue, Amount: 1000, StartMonth: 1, Months: 12, IsRecurring: true},
		},
		TimeHorizon: 12,
		Currency:    "USD",
	})
	if err != nil {
		t.Fatal(err)
	}

	cfg := abtest.TestConfig{ConfidenceLevel: 95, Direction: abtest.OneTailed}
	exp, err := abtest.Analyze(
		abtest.Variation{Visitors: 15000, Conversions: 675},
		abtest.Variation{Visitors: 15000, Conversions: 743},
		cfg,
	)
	if err != nil {
		t.Fatal(err)
	}

	doc := New("Q3 Launch").
		AddRice([]rice.ScoredItem{{ID: "f1", Name: "Onboarding", Result: scored}}).
		AddMarket(sizes, "USD").
		AddROI(metrics).
		AddExperiment(exp, cfg).
		String()

	for _, want := range []string{
		"# Q3 Launch",
		"| 1 | Onboarding | 400.0 | Must Do |",
		"- TAM: $10.0M",
		"- Payback: month 10",
		"- Verdict: significant",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("report missing %q\n---\n%s", want, doc)
		}
	}

	if !Validate(doc) {
		t.Error("assembled report failed markdown validation")
	}
}

func TestReportBeyondHorizonLabel(t *testing.T) {
	metrics, _, err := roi.Compute(roi.Calculation{
		InitialCost: 5000,
		Costs: []roi.LineItem{
			{Kind: roi.KindCost, Category: roi.CostPersonnel, Amount: 100, StartMonth: 1, Months: 6, IsRecurring: true},
		},
		TimeHorizon: 6,
		Currency:    "USD",
	})
	if err != nil {
		t.Fatal(err)
	}

	doc := New("Sunk").AddROI(metrics).String()
	if !strings.Contains(doc, "- Payback: beyond horizon") {
		t.Errorf("expected beyond-horizon label:\n%s", doc)
	}
	if !strings.Contains(doc, "- IRR: not determinable") {
		t.Errorf("expected IRR non-convergence note:\n%s", doc)
	}
}
