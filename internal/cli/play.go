package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/roach88/knifehit/internal/engine"
	"github.com/roach88/knifehit/internal/tui"
)

// PlayOptions holds flags for the play command.
type PlayOptions struct {
	*RootOptions
	Seed     uint64
	Interval time.Duration
	LogFile  string

	// Screen overrides the terminal (for testing). If nil, a real
	// terminal screen is created.
	Screen tcell.Screen
}

// PlaySummary is printed after the terminal is released.
type PlaySummary struct {
	RunID     string `json:"run_id,omitempty"`
	Level     int    `json:"level"`
	Score     int    `json:"score"`
	Coins     int    `json:"coins"`
	BestStage int    `json:"best_stage"`
	Games     int    `json:"games"`
}

func (s PlaySummary) String() string {
	return fmt.Sprintf("Stage %d, score %d over %d game(s). Coins: %d. Best stage: %d.\n",
		s.Level, s.Score, s.Games, s.Coins, s.BestStage)
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Long: `Play Knife Hit in the terminal.

Keys:
  space, enter  throw (also starts and continues)
  r             watch an ad to revive (once per run)
  n             new run after game over
  q, esc        quit

Progress is checkpointed to the database at every stage clear and game over.

Examples:
  knifehit play
  knifehit play --seed 42 --db ~/.knifehit.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts, cmd)
		},
	}

	cmd.Flags().Uint64Var(&opts.Seed, "seed", rootOpts.Config.Seed, "level seed (0 picks one at random)")
	cmd.Flags().DurationVar(&opts.Interval, "interval", rootOpts.Config.TickInterval, "time per simulation tick")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "write logs to this file (the terminal is busy)")

	return cmd
}

func runPlay(opts *PlayOptions, cmd *cobra.Command) error {
	logger, closeLog, err := playLogger(opts)
	if err != nil {
		return err
	}
	defer closeLog()

	t, err := loadTuning(opts.RootOptions)
	if err != nil {
		return err
	}

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeStore(st, logger)

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	econ, err := loadEconomy(ctx, st, logger)
	if err != nil {
		return err
	}

	engOpts := []engine.Option{
		engine.WithTuning(t),
		engine.WithCheckpointer(st),
		engine.WithLogger(logger),
	}
	if opts.Seed != 0 {
		engOpts = append(engOpts, engine.WithSeed(opts.Seed))
	}
	eng := engine.New(econ, engOpts...)

	screen := opts.Screen
	if screen == nil {
		screen, err = tcell.NewScreen()
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open terminal", err)
		}
	}
	if err := screen.Init(); err != nil {
		return WrapExitError(ExitCommandError, "failed to initialize terminal", err)
	}

	playErr := tui.Play(ctx, screen, eng, opts.Interval)
	screen.Fini()
	if playErr != nil {
		return WrapExitError(ExitFailure, "play failed", playErr)
	}

	// The engine saved the profile at every checkpoint. Blades and pickups
	// of a level quit midway were never checkpointed and are dropped.
	if err := eng.Err(); err != nil {
		logger.Warn("a checkpoint failed during play", "error", err)
	}

	s := eng.Session()
	p := econ.Profile()
	return newFormatter(cmd, opts.RootOptions).Success(PlaySummary{
		RunID:     s.RunID,
		Level:     s.Level,
		Score:     s.Score,
		Coins:     p.Coins,
		BestStage: p.BestStage,
		Games:     s.GamesPlayed,
	})
}

// playLogger writes to --log-file when set and discards otherwise, since
// log lines on stderr would tear the screen.
func playLogger(opts *PlayOptions) (*slog.Logger, func(), error) {
	if opts.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open log file", err)
	}
	return opts.Logger(f), func() { _ = f.Close() }, nil
}
