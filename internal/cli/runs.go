package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/knifehit/internal/ir"
	"github.com/roach88/knifehit/internal/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	Limit int
	Best  bool
}

// RunsView is the runs command output.
type RunsView struct {
	Runs  []ir.RunSummary `json:"runs"`
	Stats store.RunStats  `json:"stats"`
	Best  bool            `json:"best"`
}

func (v RunsView) String() string {
	var b strings.Builder
	if len(v.Runs) == 0 {
		b.WriteString("No runs recorded.\n")
	} else {
		fmt.Fprintf(&b, "%-38s %-6s %-7s %-7s %-8s %s\n", "RUN", "LEVEL", "SCORE", "BLADES", "PICKUPS", "REVIVED")
		for _, r := range v.Runs {
			revived := ""
			if r.Revived {
				revived = "yes"
			}
			fmt.Fprintf(&b, "%-38s %-6d %-7d %-7d %-8d %s\n",
				r.ID, r.Level, r.Score, r.BladesThrown, r.Pickups, revived)
		}
	}
	s := v.Stats
	fmt.Fprintf(&b, "\n%d run(s), best score %d, best level %d, %d blades thrown, %d pickups, %d revive(s)\n",
		s.Runs, s.BestScore, s.BestLevel, s.BladesThrown, s.Pickups, s.Revived)
	return b.String()
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded runs",
		Long: `List finished runs from the run history, newest first, with totals.

Exit codes:
  0 - Success
  2 - Database not found or unreadable

Examples:
  knifehit runs
  knifehit runs --best --limit 5
  knifehit runs --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 10, "maximum runs to list (0 for all)")
	cmd.Flags().BoolVar(&opts.Best, "best", false, "order by score instead of recency")

	return cmd
}

func runRuns(opts *RunsOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger(cmd.ErrOrStderr())

	st, err := openExistingStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeStore(st, logger)

	list := st.ListRuns
	if opts.Best {
		list = st.BestRuns
	}
	runs, err := list(ctx, opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read runs", err)
	}
	stats, err := st.Stats(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read run stats", err)
	}
	if runs == nil {
		runs = []ir.RunSummary{}
	}

	return newFormatter(cmd, opts.RootOptions).Success(RunsView{Runs: runs, Stats: stats, Best: opts.Best})
}
