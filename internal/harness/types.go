package harness

import (
	"github.com/roach88/knifehit/internal/economy"
	"github.com/roach88/knifehit/internal/ir"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace contains every event the engine emitted, in order.
	Trace []ir.TraceEvent `json:"trace"`

	// TraceHash identifies the trace; equal hashes mean equal runs.
	TraceHash string `json:"trace_hash"`

	// Ticks is the number of engine steps executed.
	Ticks int `json:"ticks"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// State is the final session and profile state, keyed by the names
	// expect clauses use.
	State map[string]any `json:"state,omitempty"`

	profile economy.Record
	runs    []ir.RunSummary
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []ir.TraceEvent{},
		Errors: []string{},
		State:  make(map[string]any),
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddEvents appends engine events to the trace.
func (r *Result) AddEvents(events []ir.TraceEvent) {
	r.Trace = append(r.Trace, events...)
}

// Runs returns the runs recorded during the scenario.
func (r *Result) Runs() []ir.RunSummary {
	return r.runs
}

// Profile returns the last profile record written during the scenario.
func (r *Result) Profile() economy.Record {
	return r.profile
}
