// Command pmcalc loads a scenario file (.hjson, .yaml or .json), runs every
// calculation engine the scenario carries inputs for and prints a Markdown
// summary.
//
// Environment defaults (optionally from a .env file):
//
//	PM_CURRENCY       fallback currency code when the scenario has none
//	PM_DISCOUNT_RATE  fallback annual discount rate (percent)
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"pm_compass/pkg/core/abtest"
	"pm_compass/pkg/core/currency"
	"pm_compass/pkg/core/market"
	"pm_compass/pkg/core/report"
	"pm_compass/pkg/core/rice"
	"pm_compass/pkg/core/roi"
	"pm_compass/pkg/core/scenario"
)

func main() {
	scenarioPath := flag.String("scenario", "", "Path to the scenario file (.hjson, .yaml, .json)")
	outPath := flag.String("out", "", "Write the report to a file instead of stdout")
	flag.Parse()

	if *scenarioPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: pmcalc -scenario <file> [-out <file>]")
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	s, err := scenario.Load(*scenarioPath)
	if err != nil {
		log.Fatalf("Loading scenario: %v", err)
	}
	applyEnvDefaults(&s)

	doc, err := run(s)
	if err != nil {
		log.Fatalf("Running scenario %q: %v", s.Name, err)
	}

	if *outPath == "" {
		fmt.Print(doc)
		return
	}
	if err := os.WriteFile(*outPath, []byte(doc), 0o644); err != nil {
		log.Fatalf("Writing report: %v", err)
	}
	fmt.Printf("Report written to %s\n", *outPath)
}

func applyEnvDefaults(s *scenario.Scenario) {
	if s.ROI == nil {
		return
	}
	if s.ROI.Currency == "" {
		if code := os.Getenv("PM_CURRENCY"); code != "" {
			s.ROI.Currency = code
		} else {
			s.ROI.Currency = currency.DefaultCode
		}
	}
	if s.ROI.DiscountRate == 0 {
		if raw := os.Getenv("PM_DISCOUNT_RATE"); raw != "" {
			rate, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				log.Fatalf("PM_DISCOUNT_RATE %q is not a number", raw)
			}
			s.ROI.DiscountRate = rate
		}
	}
}

func run(s scenario.Scenario) (string, error) {
	b := report.New(s.Name)

	if len(s.RiceItems) > 0 {
		scored := make([]rice.ScoredItem, 0, len(s.RiceItems))
		for _, item := range s.RiceItems {
			res, err := rice.Score(item.Inputs)
			if err != nil {
				return "", fmt.Errorf("scoring %q: %w", item.Name, err)
			}
			scored = append(scored, rice.ScoredItem{ID: item.ID, Name: item.Name, Result: res})
		}
		b.AddRice(scored)
	}

	if s.Market != nil {
		code := currency.DefaultCode
		if s.ROI != nil {
			code = s.ROI.Currency
		}
		switch {
		case s.Market.TopDown != nil:
			sizes, err := market.TopDown(*s.Market.TopDown)
			if err != nil {
				return "", fmt.Errorf("top-down sizing: %w", err)
			}
			b.AddMarket(sizes, code)
		case s.Market.BottomUp != nil:
			sizes, _, err := market.BottomUp(*s.Market.BottomUp)
			if err != nil {
				return "", fmt.Errorf("bottom-up sizing: %w", err)
			}
			b.AddMarket(sizes, code)
		}
	}

	if s.ROI != nil {
		metrics, _, err := roi.Compute(*s.ROI)
		if err != nil {
			return "", fmt.Errorf("roi: %w", err)
		}
		b.AddROI(metrics)
	}

	if s.Experiment != nil {
		res, err := abtest.Analyze(s.Experiment.Control, s.Experiment.Variant, s.Experiment.Config)
		if err != nil {
			return "", fmt.Errorf("experiment: %w", err)
		}
		b.AddExperiment(res, s.Experiment.Config)
	}

	return b.String(), nil
}
