package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/knifehit/internal/harness"
	"github.com/roach88/knifehit/internal/ir"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Kind string // optional - filter to one event kind
}

// TraceResult holds the trace output.
type TraceResult struct {
	Scenario string          `json:"scenario"`
	Timeline []ir.TraceEvent `json:"timeline"`
	Stats    TraceStats      `json:"stats"`
}

// TraceStats holds summary statistics for the trace.
type TraceStats struct {
	Ticks       int            `json:"ticks"`
	TotalEvents int            `json:"total_events"`
	ByKind      map[string]int `json:"by_kind"`
	Hash        string         `json:"hash"`
}

func (r TraceResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Scenario: %s\n\n", r.Scenario)
	for _, ev := range r.Timeline {
		fmt.Fprintf(&b, "%6d  %-16s L%-3d score=%-5d blades=%-3d", ev.Tick, ev.Kind, ev.Level, ev.Score, ev.BladesRemaining)
		if ev.AngleMilli != 0 {
			fmt.Fprintf(&b, " angle=%d", ev.AngleMilli)
		}
		if ev.Amount != 0 {
			fmt.Fprintf(&b, " amount=%d", ev.Amount)
		}
		if ev.Detail != "" {
			fmt.Fprintf(&b, " %s", ev.Detail)
		}
		b.WriteByte('\n')
	}

	kinds := make([]string, 0, len(r.Stats.ByKind))
	for k := range r.Stats.ByKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	fmt.Fprintf(&b, "\n%d event(s) over %d tick(s)\n", r.Stats.TotalEvents, r.Stats.Ticks)
	for _, k := range kinds {
		fmt.Fprintf(&b, "  %-16s %d\n", k, r.Stats.ByKind[k])
	}
	fmt.Fprintf(&b, "Hash: %s\n", r.Stats.Hash)
	return b.String()
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <scenario>",
		Short: "Print the event trace of a scenario",
		Long: `Run a scenario and print the events the engine emitted, tick by tick.

Angles are in milliradians in the target's frame.

Examples:
  knifehit trace scenarios/early_collision.yaml
  knifehit trace scenarios/autopilot.yaml --kind stage_clear
  knifehit trace scenarios/revive_with_ad.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", "", "only show events of this kind")

	return cmd
}

func runTrace(opts *TraceOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(cmd, opts.RootOptions)

	if opts.Kind != "" && !isEventKind(opts.Kind) {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown event kind %q", opts.Kind))
	}

	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, CodeScenario, "failed to load scenario", err, nil)
	}
	res, err := harness.RunWithLogger(scenario, opts.Logger(cmd.ErrOrStderr()))
	if err != nil {
		return formatter.Fail(ExitCommandError, CodeScenario, "failed to run scenario", err, nil)
	}

	result := TraceResult{
		Scenario: scenario.Name,
		Timeline: []ir.TraceEvent{},
		Stats: TraceStats{
			Ticks:  res.Ticks,
			ByKind: map[string]int{},
			Hash:   res.TraceHash,
		},
	}
	for _, ev := range res.Trace {
		if opts.Kind != "" && string(ev.Kind) != opts.Kind {
			continue
		}
		result.Timeline = append(result.Timeline, ev)
		result.Stats.ByKind[string(ev.Kind)]++
	}
	result.Stats.TotalEvents = len(result.Timeline)

	return formatter.Success(result)
}

func isEventKind(s string) bool {
	for _, k := range ir.EventKinds {
		if string(k) == s {
			return true
		}
	}
	return false
}
