package scenario

import (
	"os"
	"path/filepath"
	"testing"
)

const hjsonDoc = `
{
  # quarterly planning scenario
  name: Q3 Launch
  rice_items: [
    {
      id: feat-1
      name: Self-serve onboarding
      inputs: { reach: 1000, impact: 2, confidence: 80, effort: 4 }
    }
  ]
  roi: {
    initial_cost: 10000
    time_horizon: 12
    discount_rate: 10
    currency: USD
    benefits: [
      { id: "b1", kind: "benefit", category: "revenue", amount: 1000, start_month: 1, months: 12, is_recurring: true }
    ]
  }
}
`

const yamlDoc = `
name: Market check
market:
  top_down:
    tam: 10000000
    sam_pct: 40
    som_pct: 25
experiment:
  control: { id: a, name: Control, visitors: 15000, conversions: 675 }
  variant: { id: b, name: Variant, visitors: 15000, conversions: 743 }
  config: { confidence_level: 95, direction: two-tailed }
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadHJSON(t *testing.T) {
	s, err := Load(writeTemp(t, "q3.hjson", hjsonDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name != "Q3 Launch" {
		t.Errorf("name = %q", s.Name)
	}
	if len(s.RiceItems) != 1 || s.RiceItems[0].Inputs.Reach != 1000 {
		t.Errorf("rice items not parsed: %+v", s.RiceItems)
	}
	if s.ROI == nil || s.ROI.TimeHorizon != 12 || len(s.ROI.Benefits) != 1 {
		t.Fatalf("roi section not parsed: %+v", s.ROI)
	}
	if !s.ROI.Benefits[0].IsRecurring || s.ROI.Benefits[0].Amount != 1000 {
		t.Errorf("benefit item wrong: %+v", s.ROI.Benefits[0])
	}
	if s.Market != nil || s.Experiment != nil {
		t.Error("absent sections must stay nil")
	}
}

func TestLoadYAML(t *testing.T) {
	s, err := Load(writeTemp(t, "market.yaml", yamlDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Market == nil || s.Market.TopDown == nil {
		t.Fatalf("market section not parsed: %+v", s.Market)
	}
	if s.Market.TopDown.TAM != 10_000_000 || s.Market.TopDown.SAMPct != 40 {
		t.Errorf("top-down params wrong: %+v", s.Market.TopDown)
	}
	if s.Experiment == nil || s.Experiment.Control.Visitors != 15000 {
		t.Fatalf("experiment section not parsed: %+v", s.Experiment)
	}
	if s.Experiment.Config.ConfidenceLevel != 95 {
		t.Errorf("config wrong: %+v", s.Experiment.Config)
	}
}

func TestLoadJSON(t *testing.T) {
	doc := `{"name":"plain","market":{"top_down":{"tam":100,"sam_pct":50,"som_pct":10}}}`
	s, err := Load(writeTemp(t, "plain.json", doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Market == nil || s.Market.TopDown.TAM != 100 {
		t.Errorf("json scenario not parsed: %+v", s)
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	if _, err := Load(writeTemp(t, "scenario.toml", "x = 1")); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNewAssignsIDs(t *testing.T) {
	a := New("a")
	b := New("b")
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected unique non-empty IDs, got %q / %q", a.ID, b.ID)
	}
	item := NewLineItem("cost", "development", "build")
	if item.ID == "" {
		t.Error("line item must get an ID")
	}
}
