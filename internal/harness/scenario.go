package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/knifehit/internal/engine"
	"github.com/roach88/knifehit/internal/ir"
)

// InputAuto is the step input that defers to engine.Autopilot.
const InputAuto = "auto"

// DefaultMaxTicks bounds until-steps that do not set max_ticks.
const DefaultMaxTicks = 10000

// Scenario is a scripted play session.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Seed drives level layouts and perturbations.
	Seed uint64 `yaml:"seed"`

	// Tuning is an optional CUE tuning file, relative to the scenario file
	// once loaded.
	Tuning string `yaml:"tuning,omitempty"`

	// Profile is the starting profile record. Empty means a fresh profile.
	Profile map[string]string `yaml:"profile,omitempty"`

	// Ads wires a fake ad hook. Without it revives are immediate.
	Ads *AdsConfig `yaml:"ads,omitempty"`

	// FailSaves makes every checkpoint write fail.
	FailSaves bool `yaml:"fail_saves,omitempty"`

	// RunID is the fixed run ID. Defaults to "run-test".
	RunID string `yaml:"run_id,omitempty"`

	Steps      []Step      `yaml:"steps"`
	Expect     Expect      `yaml:"expect,omitempty"`
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// AdsConfig configures the fake ad hook.
type AdsConfig struct {
	// AutoGrant grants rewarded ads immediately. Otherwise a grant step
	// releases them.
	AutoGrant bool `yaml:"auto_grant"`
}

// Step feeds inputs to the engine.
type Step struct {
	Input    string `yaml:"input,omitempty"`
	Repeat   int    `yaml:"repeat,omitempty"`
	Until    string `yaml:"until,omitempty"`
	MaxTicks int    `yaml:"max_ticks,omitempty"`

	// Grant releases held rewarded-ad callbacks before the step's inputs.
	Grant bool `yaml:"grant,omitempty"`
}

// Expect is a subset match against the final session state.
// Keys are the names Result.State uses.
type Expect map[string]any

// Assertion validates the trace or final state.
type Assertion struct {
	// Type is one of trace_contains, trace_order, trace_count, final_state.
	Type string `yaml:"type"`

	// Kind, Detail, Level and Amount select events (trace_contains,
	// trace_count). Zero values match anything.
	Kind   string `yaml:"kind,omitempty"`
	Detail string `yaml:"detail,omitempty"`
	Level  int    `yaml:"level,omitempty"`
	Amount int    `yaml:"amount,omitempty"`

	// Count is the expected number of matching events (trace_count).
	Count int `yaml:"count,omitempty"`

	// Kinds is the expected event order (trace_order).
	Kinds []string `yaml:"kinds,omitempty"`

	// Table, Where and Expect inspect final state (final_state).
	Table  string         `yaml:"table,omitempty"`
	Where  map[string]any `yaml:"where,omitempty"`
	Expect map[string]any `yaml:"expect,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertFinalState    = "final_state"
)

// Final state tables.
const (
	TableSession = "session"
	TableProfile = "profile"
	TableRuns    = "runs"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// A relative tuning path is resolved against the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	s, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}
	if s.Tuning != "" && !filepath.IsAbs(s.Tuning) {
		s.Tuning = filepath.Join(filepath.Dir(path), s.Tuning)
	}
	if s.Tuning != "" {
		if _, err := os.Stat(s.Tuning); os.IsNotExist(err) {
			return nil, fmt.Errorf("invalid scenario: tuning file not found: %s", s.Tuning)
		}
	}
	return s, nil
}

// ParseScenario parses scenario YAML without touching the filesystem.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, step); err != nil {
			return err
		}
	}
	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(index int, st Step) error {
	if st.Input == "" {
		if !st.Grant {
			return fmt.Errorf("steps[%d]: input is required", index)
		}
	} else if st.Input != InputAuto {
		if _, ok := engine.ParseInput(st.Input); !ok {
			return fmt.Errorf("steps[%d]: unknown input %q", index, st.Input)
		}
	}
	if st.Repeat < 0 {
		return fmt.Errorf("steps[%d]: repeat must be non-negative", index)
	}
	if st.MaxTicks < 0 {
		return fmt.Errorf("steps[%d]: max_ticks must be non-negative", index)
	}
	if st.Until != "" {
		if st.Repeat > 0 {
			return fmt.Errorf("steps[%d]: repeat and until are mutually exclusive", index)
		}
		if !knownKind(st.Until) {
			return fmt.Errorf("steps[%d]: unknown event kind %q", index, st.Until)
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Kind == "" {
			return fmt.Errorf("assertions[%d]: kind is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Kinds) == 0 {
			return fmt.Errorf("assertions[%d]: kinds list is required for trace_order", index)
		}
		for _, k := range a.Kinds {
			if !knownKind(k) {
				return fmt.Errorf("assertions[%d]: unknown event kind %q", index, k)
			}
		}
		return nil
	case AssertTraceCount:
		if a.Kind == "" {
			return fmt.Errorf("assertions[%d]: kind is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertFinalState:
		switch a.Table {
		case TableSession, TableProfile, TableRuns:
		case "":
			return fmt.Errorf("assertions[%d]: table is required for final_state", index)
		default:
			return fmt.Errorf("assertions[%d]: unknown table %q", index, a.Table)
		}
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for final_state", index)
		}
		return nil
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	if !knownKind(a.Kind) {
		return fmt.Errorf("assertions[%d]: unknown event kind %q", index, a.Kind)
	}
	return nil
}

func knownKind(k string) bool {
	for _, kind := range ir.EventKinds {
		if string(kind) == k {
			return true
		}
	}
	return false
}
