// Package scenario bundles the inputs for every calculation engine into one
// immutable document a caller can load, run and compare. Each section is
// optional: a scenario may carry only the engines it has data for.
//
// Loading supports HJSON (comments, unquoted keys — friendly for hand-written
// files), YAML and plain JSON, dispatched on file extension.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	hjson "github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v2"

	"pm_compass/pkg/core/abtest"
	"pm_compass/pkg/core/market"
	"pm_compass/pkg/core/rice"
	"pm_compass/pkg/core/roi"
)

// RiceItem names one initiative to score.
type RiceItem struct {
	ID     string      `json:"id" yaml:"id"`
	Name   string      `json:"name" yaml:"name"`
	Inputs rice.Inputs `json:"inputs" yaml:"inputs"`
}

// MarketSection selects exactly one sizing path.
type MarketSection struct {
	TopDown  *market.TopDownParams  `json:"top_down,omitempty" yaml:"top_down,omitempty"`
	BottomUp *market.BottomUpParams `json:"bottom_up,omitempty" yaml:"bottom_up,omitempty"`
}

// ExperimentSection holds one A/B test plus its configuration.
type ExperimentSection struct {
	Control Variation        `json:"control" yaml:"control"`
	Variant Variation        `json:"variant" yaml:"variant"`
	Config  abtest.TestConfig `json:"config" yaml:"config"`
}

// Variation aliases the engine type so scenario files deserialize without
// importing abtest in callers.
type Variation = abtest.Variation

// Scenario is one named input snapshot across the four engines.
type Scenario struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	CreatedAt string `json:"created_at,omitempty" yaml:"created_at,omitempty"`

	RiceItems  []RiceItem         `json:"rice_items,omitempty" yaml:"rice_items,omitempty"`
	Market     *MarketSection     `json:"market,omitempty" yaml:"market,omitempty"`
	ROI        *roi.Calculation   `json:"roi,omitempty" yaml:"roi,omitempty"`
	Experiment *ExperimentSection `json:"experiment,omitempty" yaml:"experiment,omitempty"`
}

// New creates an empty named scenario with a fresh ID and timestamp.
// This is the only non-deterministic corner of the core; the calculation
// paths never touch IDs or clocks.
func New(name string) Scenario {
	return Scenario{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// NewLineItem builds a cost/benefit line item with a generated ID.
func NewLineItem(kind roi.ItemKind, category roi.Category, description string) roi.LineItem {
	return roi.LineItem{
		ID:          uuid.NewString(),
		Kind:        kind,
		Category:    category,
		Description: description,
	}
}

// Load reads a scenario document, dispatching on the file extension:
// .hjson, .yaml/.yml or .json.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading scenario file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".hjson":
		return ParseHJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return Scenario{}, fmt.Errorf("unsupported scenario format %q (want .hjson, .yaml or .json)", filepath.Ext(path))
	}
}

// ParseJSON decodes a plain JSON scenario.
func ParseJSON(data []byte) (Scenario, error) {
	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("parsing JSON scenario: %w", err)
	}
	return s, nil
}

// ParseHJSON decodes a human-friendly JSON scenario (comments, unquoted
// keys, optional commas). Hjson is normalized through standard JSON so the
// struct tags stay the single source of field names.
func ParseHJSON(data []byte) (Scenario, error) {
	var loose interface{}
	if err := hjson.Unmarshal(data, &loose); err != nil {
		return Scenario{}, fmt.Errorf("parsing HJSON scenario: %w", err)
	}
	normalized, err := json.Marshal(loose)
	if err != nil {
		return Scenario{}, fmt.Errorf("normalizing HJSON scenario: %w", err)
	}
	return ParseJSON(normalized)
}

// ParseYAML decodes a YAML scenario. YAML maps are normalized through JSON
// for the same reason as HJSON.
func ParseYAML(data []byte) (Scenario, error) {
	var loose map[string]interface{}
	if err := yaml.Unmarshal(data, &loose); err != nil {
		return Scenario{}, fmt.Errorf("parsing YAML scenario: %w", err)
	}
	normalized, err := json.Marshal(stringifyKeys(loose))
	if err != nil {
		return Scenario{}, fmt.Errorf("normalizing YAML scenario: %w", err)
	}
	return ParseJSON(normalized)
}

// stringifyKeys rewrites yaml.v2's map[interface{}]interface{} values into
// map[string]interface{} so they survive json.Marshal.
func stringifyKeys(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(vv))
		for k, val := range vv {
			out[fmt.Sprintf("%v", k)] = stringifyKeys(val)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(vv))
		for k, val := range vv {
			out[k] = stringifyKeys(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(vv))
		for i, val := range vv {
			out[i] = stringifyKeys(val)
		}
		return out
	default:
		return v
	}
}
