// Package report renders calculation results as a Markdown summary for the
// command-line tool. Rendering here is plain text assembly; chart/PDF/CSV
// export belongs to the consumers of the engine results.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"

	"pm_compass/pkg/core/abtest"
	"pm_compass/pkg/core/currency"
	"pm_compass/pkg/core/market"
	"pm_compass/pkg/core/rice"
	"pm_compass/pkg/core/roi"
)

// Builder accumulates report sections.
type Builder struct {
	title    string
	sections []string
}

// New starts a report with a title.
func New(title string) *Builder {
	return &Builder{title: title}
}

// AddRice renders a ranked prioritization table.
func (b *Builder) AddRice(items []rice.ScoredItem) *Builder {
	var sb strings.Builder
	sb.WriteString("## Prioritization (RICE)\n\n")
	sb.WriteString("| # | Initiative | Score | Category |\n|---|---|---|---|\n")
	for i, item := range rice.Rank(items) {
		sb.WriteString(fmt.Sprintf("| %d | %s | %.1f | %s |\n", i+1, item.Name, item.Result.Score, item.Result.Category.Label))
	}
	b.sections = append(b.sections, sb.String())
	return b
}

// AddMarket renders the sizing funnel and its assumption narrative.
func (b *Builder) AddMarket(s market.Sizes, code string) *Builder {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Market Size (%s)\n\n", s.Method))
	sb.WriteString(fmt.Sprintf("- TAM: %s\n", currency.FormatCompact(s.TAM, code)))
	sb.WriteString(fmt.Sprintf("- SAM: %s\n", currency.FormatCompact(s.SAM, code)))
	sb.WriteString(fmt.Sprintf("- SOM: %s\n", currency.FormatCompact(s.SOM, code)))
	sb.WriteString(fmt.Sprintf("- Capture efficiency: %.1f%%\n", market.Efficiency(s)*100))
	sb.WriteString(fmt.Sprintf("- Confidence: %.0f/100\n", s.Confidence))
	if len(s.Assumptions) > 0 {
		sb.WriteString("\nAssumptions:\n\n")
		for _, a := range s.Assumptions {
			sb.WriteString(fmt.Sprintf("- %s\n", a))
		}
	}
	b.sections = append(b.sections, sb.String())
	return b
}

// AddROI renders the financial metrics block.
func (b *Builder) AddROI(m roi.Metrics) *Builder {
	code := m.Currency
	var sb strings.Builder
	sb.WriteString("## Return on Investment\n\n")
	sb.WriteString(fmt.Sprintf("- Simple ROI: %.1f%%\n", m.SimpleROI))
	sb.WriteString(fmt.Sprintf("- NPV: %s\n", currency.Format(m.NPV, code)))
	if m.IRRConverged {
		sb.WriteString(fmt.Sprintf("- IRR: %.1f%%/yr\n", m.IRR))
	} else {
		sb.WriteString("- IRR: not determinable for this cash-flow series\n")
	}
	if m.MIRRAvailable {
		sb.WriteString(fmt.Sprintf("- MIRR: %.1f%%/yr\n", m.MIRR))
	}
	sb.WriteString(fmt.Sprintf("- Payback: %s\n", monthLabel(m.PaybackMonth)))
	sb.WriteString(fmt.Sprintf("- Discounted payback: %s\n", monthLabel(m.DiscountedPaybackMonth)))
	sb.WriteString(fmt.Sprintf("- Break-even: %s\n", monthLabel(m.BreakEvenMonth)))
	sb.WriteString(fmt.Sprintf("- Profitability index: %.2f\n", m.PI))
	sb.WriteString(fmt.Sprintf("- EVA: %s\n", currency.Format(m.EVA, code)))
	b.sections = append(b.sections, sb.String())
	return b
}

// AddExperiment renders the significance verdict.
func (b *Builder) AddExperiment(r abtest.Result, cfg abtest.TestConfig) *Builder {
	var sb strings.Builder
	sb.WriteString("## Experiment\n\n")
	sb.WriteString(fmt.Sprintf("- Control rate: %.2f%%, variant rate: %.2f%%\n", r.ControlRate*100, r.VariantRate*100))
	sb.WriteString(fmt.Sprintf("- Uplift: %+.1f%%\n", r.Uplift))
	if math.IsNaN(r.PValue) {
		sb.WriteString("- p-value: n/a\n")
	} else {
		sb.WriteString(fmt.Sprintf("- p-value: %.4f (%s, %.0f%% confidence)\n", r.PValue, cfg.Direction, cfg.ConfidenceLevel))
	}
	verdict := "not significant"
	if r.IsSignificant {
		verdict = "significant"
	}
	sb.WriteString(fmt.Sprintf("- Verdict: %s (power %.0f%%)\n", verdict, r.Power*100))
	b.sections = append(b.sections, sb.String())
	return b
}

func monthLabel(month int) string {
	if month == roi.BeyondHorizon {
		return "beyond horizon"
	}
	return fmt.Sprintf("month %d", month)
}

// String assembles the final Markdown document.
func (b *Builder) String() string {
	doc := fmt.Sprintf("# %s\n\n", b.title)
	return doc + strings.Join(b.sections, "\n")
}

// Validate checks the assembled document parses as Markdown. Goldmark is
// permissive, so this is a structural sanity check, not a linter.
func Validate(markdown string) bool {
	parser := goldmark.DefaultParser()
	reader := text.NewReader([]byte(markdown))
	return parser.Parse(reader) != nil
}
