package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/knifehit/internal/harness"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Times int
}

// ReplayResult holds the replay result for one scenario.
type ReplayResult struct {
	Scenario      string   `json:"scenario"`
	Runs          int      `json:"runs"`
	Ticks         int      `json:"ticks"`
	Events        int      `json:"events"`
	Hashes        []string `json:"hashes"`
	Deterministic bool     `json:"deterministic"`
}

func (r ReplayResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Scenario: %s\n", r.Scenario)
	fmt.Fprintf(&b, "  Ticks: %d, events: %d\n", r.Ticks, r.Events)
	for i, h := range r.Hashes {
		fmt.Fprintf(&b, "  Run %d: %s\n", i+1, h)
	}
	if r.Deterministic {
		fmt.Fprintf(&b, "✓ Deterministic across %d runs\n", r.Runs)
	} else {
		b.WriteString("✗ Traces differ between runs\n")
	}
	return b.String()
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <scenario>",
		Short: "Replay a scenario and verify determinism",
		Long: `Replay a scripted scenario several times and verify the engine
produces the same trace every time.

Each replay builds a fresh engine from the scenario's seed, tuning and
profile, feeds the same inputs and hashes the resulting trace. Equal hashes
mean identical runs.

Exit codes:
  0 - All replays produced the same trace
  1 - Traces differ (non-deterministic)
  2 - Command error (scenario not found, invalid scenario)

Examples:
  knifehit replay scenarios/level_one_clear.yaml
  knifehit replay scenarios/autopilot.yaml --times 5 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Times, "times", 2, "number of replays to compare")

	return cmd
}

func runReplay(opts *ReplayOptions, path string, cmd *cobra.Command) error {
	if opts.Times < 2 {
		return NewExitError(ExitCommandError, "--times must be at least 2")
	}
	formatter := newFormatter(cmd, opts.RootOptions)

	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, CodeScenario, "failed to load scenario", err, nil)
	}

	result := ReplayResult{Scenario: scenario.Name, Runs: opts.Times, Deterministic: true}
	for i := 0; i < opts.Times; i++ {
		formatter.VerboseLog("replay %d/%d of %s", i+1, opts.Times, scenario.Name)
		res, err := harness.Run(scenario)
		if err != nil {
			return formatter.Fail(ExitCommandError, CodeScenario, "failed to run scenario", err, nil)
		}
		if i == 0 {
			result.Ticks = res.Ticks
			result.Events = len(res.Trace)
		} else if res.TraceHash != result.Hashes[0] {
			result.Deterministic = false
		}
		result.Hashes = append(result.Hashes, res.TraceHash)
	}

	if err := formatter.Success(result); err != nil {
		return err
	}
	if !result.Deterministic {
		return NewExitError(ExitFailure, fmt.Sprintf("%s: traces differ between runs", scenario.Name))
	}
	return nil
}
