package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/knifehit/internal/economy"
	"github.com/roach88/knifehit/internal/engine"
	"github.com/roach88/knifehit/internal/ir"
)

// SimOptions holds flags for the sim command.
type SimOptions struct {
	*RootOptions
	Runs     int
	Seed     uint64
	MaxTicks int
	Persist  bool
}

// SimRun is the outcome of one autopilot run.
type SimRun struct {
	Seed       uint64 `json:"seed"`
	Level      int    `json:"level"`
	Score      int    `json:"score"`
	Blades     int    `json:"blades_thrown"`
	Pickups    int    `json:"pickups"`
	Ticks      int    `json:"ticks"`
	GameOver   bool   `json:"game_over"`
	TraceHash  string `json:"trace_hash"`
	StageClear int    `json:"stage_clears"`
}

// SimResult summarizes a batch of autopilot runs.
type SimResult struct {
	Runs      []SimRun `json:"runs"`
	BestLevel int      `json:"best_level"`
	BestScore int      `json:"best_score"`
	MeanScore float64  `json:"mean_score"`
	GameOvers int      `json:"game_overs"`
	Coins     int      `json:"coins"`
}

func (r SimResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-4s %-20s %-6s %-7s %-7s %-6s %s\n", "RUN", "SEED", "LEVEL", "SCORE", "BLADES", "TICKS", "END")
	for i, run := range r.Runs {
		end := "timeout"
		if run.GameOver {
			end = "game over"
		}
		fmt.Fprintf(&b, "%-4d %-20d %-6d %-7d %-7d %-6d %s\n",
			i+1, run.Seed, run.Level, run.Score, run.Blades, run.Ticks, end)
	}
	fmt.Fprintf(&b, "\nBest level %d, best score %d, mean score %.1f, %d game over(s), %d coins.\n",
		r.BestLevel, r.BestScore, r.MeanScore, r.GameOvers, r.Coins)
	return b.String()
}

// NewSimCommand creates the sim command.
func NewSimCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Play runs with the autopilot",
		Long: `Play a batch of runs with the built-in autopilot, as fast as possible.

The autopilot throws whenever the predicted strike is clear. Run n uses
seed+n, so a batch is reproducible from its seed. A run ends at game over
or after --max-ticks ticks.

By default the profile is loaded but not written back; --persist checkpoints
coins, achievements and run history to the database.

Examples:
  knifehit sim --runs 20 --seed 1
  knifehit sim --tuning hard.cue --max-ticks 3000 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSim(opts, cmd)
		},
	}

	seed := rootOpts.Config.Seed
	if seed == 0 {
		seed = 1
	}
	cmd.Flags().IntVarP(&opts.Runs, "runs", "n", 10, "number of runs")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", seed, "seed of the first run")
	cmd.Flags().IntVar(&opts.MaxTicks, "max-ticks", 20000, "tick limit per run")
	cmd.Flags().BoolVar(&opts.Persist, "persist", false, "write progress to the database")

	return cmd
}

func runSim(opts *SimOptions, cmd *cobra.Command) error {
	if opts.Runs < 1 {
		return NewExitError(ExitCommandError, "--runs must be at least 1")
	}
	if opts.MaxTicks < 1 {
		return NewExitError(ExitCommandError, "--max-ticks must be at least 1")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger(cmd.ErrOrStderr())

	t, err := loadTuning(opts.RootOptions)
	if err != nil {
		return err
	}

	econ := economy.New(economy.DefaultProfile())
	var ckpt engine.Checkpointer
	if opts.Persist {
		st, err := openStore(opts.RootOptions)
		if err != nil {
			return err
		}
		defer closeStore(st, logger)
		if econ, err = loadEconomy(ctx, st, logger); err != nil {
			return err
		}
		ckpt = st
	}

	result := SimResult{Runs: make([]SimRun, 0, opts.Runs)}
	total := 0
	for i := 0; i < opts.Runs; i++ {
		engOpts := []engine.Option{
			engine.WithTuning(t),
			engine.WithSeed(opts.Seed + uint64(i)),
			engine.WithLogger(logger),
		}
		if ckpt != nil {
			engOpts = append(engOpts, engine.WithCheckpointer(ckpt))
		}
		run, err := simulate(ctx, engine.New(econ, engOpts...), opts.MaxTicks)
		if err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("run %d", i+1), err)
		}
		logger.Info("sim run finished", "run", i+1, "seed", run.Seed, "level", run.Level, "score", run.Score)

		result.Runs = append(result.Runs, run)
		total += run.Score
		result.BestLevel = max(result.BestLevel, run.Level)
		result.BestScore = max(result.BestScore, run.Score)
		if run.GameOver {
			result.GameOvers++
		}
	}
	result.MeanScore = float64(total) / float64(len(result.Runs))
	result.Coins = econ.Profile().Coins

	return newFormatter(cmd, opts.RootOptions).Success(result)
}

// simulate drives one run with the autopilot until game over or maxTicks.
func simulate(ctx context.Context, eng *engine.Engine, maxTicks int) (SimRun, error) {
	var trace []ir.TraceEvent
	run := SimRun{Seed: eng.Seed()}
	for run.Ticks < maxTicks {
		if err := ctx.Err(); err != nil {
			return SimRun{}, err
		}
		events := eng.Step(ctx, engine.Autopilot(eng))
		run.Ticks++
		trace = append(trace, events...)
		for _, ev := range events {
			if ev.Kind == ir.EventStageClear {
				run.StageClear++
			}
		}
		if eng.Session().State == engine.StateGameOver {
			run.GameOver = true
			break
		}
	}

	hash, err := ir.TraceHash(trace)
	if err != nil {
		return SimRun{}, fmt.Errorf("hash trace: %w", err)
	}
	s := eng.Session()
	run.Level = s.Level
	run.Score = s.Score
	run.Blades = s.RunBladesThrown
	run.Pickups = s.RunPickups
	run.TraceHash = hash
	return run, nil
}
