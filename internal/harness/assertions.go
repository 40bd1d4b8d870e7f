package harness

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/knifehit/internal/ir"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string          // Assertion type for categorization
	Expected string          // Human-readable expected outcome
	Actual   string          // Human-readable actual outcome
	Trace    []ir.TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for i, ev := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] t=%d %s level=%d score=%d blades=%d",
				i+1, ev.Tick, ev.Kind, ev.Level, ev.Score, ev.BladesRemaining)
			if ev.Detail != "" {
				fmt.Fprintf(&buf, " detail=%s", ev.Detail)
			}
			if ev.Amount != 0 {
				fmt.Fprintf(&buf, " amount=%d", ev.Amount)
			}
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion and returns the failure
// messages, in assertion order.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, a)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, a)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, a)
		case AssertFinalState:
			err = assertFinalState(result, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

// matchEvent reports whether ev satisfies the assertion's selectors.
// Zero-valued selectors match anything.
func matchEvent(ev ir.TraceEvent, a Assertion) bool {
	if string(ev.Kind) != a.Kind {
		return false
	}
	if a.Detail != "" && ev.Detail != a.Detail {
		return false
	}
	if a.Level != 0 && ev.Level != a.Level {
		return false
	}
	if a.Amount != 0 && ev.Amount != a.Amount {
		return false
	}
	return true
}

func describeSelector(a Assertion) string {
	parts := []string{a.Kind}
	if a.Detail != "" {
		parts = append(parts, "detail="+a.Detail)
	}
	if a.Level != 0 {
		parts = append(parts, fmt.Sprintf("level=%d", a.Level))
	}
	if a.Amount != 0 {
		parts = append(parts, fmt.Sprintf("amount=%d", a.Amount))
	}
	return strings.Join(parts, " ")
}

// assertTraceContains checks the trace holds at least one matching event.
func assertTraceContains(trace []ir.TraceEvent, a Assertion) error {
	for _, ev := range trace {
		if matchEvent(ev, a) {
			return nil
		}
	}
	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: "event " + describeSelector(a),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks the first occurrences of the kinds appear in
// the listed order. Other events may sit in between.
func assertTraceOrder(trace []ir.TraceEvent, a Assertion) error {
	positions := make(map[string]int)
	for i, ev := range trace {
		k := string(ev.Kind)
		if _, seen := positions[k]; !seen {
			positions[k] = i + 1 // 1-indexed for readability
		}
	}

	for _, k := range a.Kinds {
		if positions[k] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all kinds present: %v", a.Kinds),
				Actual:   fmt.Sprintf("missing kind: %s", k),
				Trace:    trace,
			}
		}
	}

	for i := 1; i < len(a.Kinds); i++ {
		prev, curr := a.Kinds[i-1], a.Kinds[i]
		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("kinds in order: %v", a.Kinds),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}
	return nil
}

// assertTraceCount checks the number of matching events.
func assertTraceCount(trace []ir.TraceEvent, a Assertion) error {
	count := 0
	for _, ev := range trace {
		if matchEvent(ev, a) {
			count++
		}
	}
	if count != a.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d x %s", a.Count, describeSelector(a)),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertFinalState checks a final state table with subset semantics.
func assertFinalState(result *Result, a Assertion) error {
	var row map[string]any
	switch a.Table {
	case TableSession:
		row = result.State
	case TableProfile:
		if result.profile == nil {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: "a saved profile",
				Actual:   "no profile was checkpointed",
			}
		}
		row = make(map[string]any, len(result.profile))
		for k, v := range result.profile {
			row[k] = v
		}
	case TableRuns:
		for _, run := range result.runs {
			candidate := runRow(run)
			if len(subsetMismatches(a.Where, candidate)) == 0 {
				row = candidate
				break
			}
		}
		if row == nil {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("a run matching %s", formatMap(a.Where)),
				Actual:   fmt.Sprintf("%d runs, none matching", len(result.runs)),
			}
		}
	default:
		return fmt.Errorf("unknown table %q", a.Table)
	}

	if diffs := subsetMismatches(a.Expect, row); len(diffs) > 0 {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("%s %s", a.Table, formatMap(a.Expect)),
			Actual:   strings.Join(diffs, ", "),
		}
	}
	return nil
}

// checkExpect applies the scenario's expect clause to the session state.
func checkExpect(expect Expect, state map[string]any) []string {
	var errs []string
	for _, d := range subsetMismatches(expect, state) {
		errs = append(errs, "expect: "+d)
	}
	return errs
}

// subsetMismatches compares want against got key by key. Values compare
// by their printed form, so YAML ints, strings and bools line up with the
// engine's typed values.
func subsetMismatches(want, got map[string]any) []string {
	keys := make([]string, 0, len(want))
	for k := range want {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var diffs []string
	for _, k := range keys {
		g, ok := got[k]
		if !ok {
			diffs = append(diffs, fmt.Sprintf("%s: missing", k))
			continue
		}
		if fmt.Sprint(want[k]) != fmt.Sprint(g) {
			diffs = append(diffs, fmt.Sprintf("%s: want %v, got %v", k, want[k], g))
		}
	}
	return diffs
}

func runRow(run ir.RunSummary) map[string]any {
	return map[string]any{
		"id":            run.ID,
		"seed":          run.Seed,
		"level":         run.Level,
		"score":         run.Score,
		"blades_thrown": run.BladesThrown,
		"pickups":       run.Pickups,
		"revived":       run.Revived,
		"ticks":         run.Ticks,
	}
}

func formatMap(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, m[k])
	}
	return "{" + strings.Join(parts, " ") + "}"
}
