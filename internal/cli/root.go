package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/knifehit/internal/config"
	"github.com/roach88/knifehit/internal/engine"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Database string
	Tuning   string

	// Config is the environment the flag defaults came from.
	Config config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the knifehit CLI.
//
// Flag defaults come from the environment (KNIFEHIT_DB, KNIFEHIT_TUNING,
// ...). A malformed environment is reported when a command runs, so that
// --help keeps working.
func NewRootCommand() *cobra.Command {
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		cfg = config.Config{DB: "knifehit.db", LogLevel: "warn", TickInterval: engine.DefaultTickInterval}
	}
	opts := &RootOptions{Config: cfg}

	cmd := &cobra.Command{
		Use:   "knifehit",
		Short: "Knife Hit - throw blades at a spinning target",
		Long: `A deterministic knife-throwing arcade game for the terminal.

Throw blades into a rotating target without hitting the ones already stuck
in it. Clear the stage quota to advance; every fifth stage is a boss.
Coins, skins, achievements and run history persist in a SQLite database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				return WrapExitError(ExitCommandError, "invalid environment", cfgErr)
			}
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", cfg.DB, "path to SQLite database")
	cmd.PersistentFlags().StringVar(&opts.Tuning, "tuning", cfg.Tuning, "CUE tuning file (defaults built in)")

	// Add subcommands
	cmd.AddCommand(NewPlayCommand(opts))
	cmd.AddCommand(NewSimCommand(opts))
	cmd.AddCommand(NewLevelsCommand(opts))
	cmd.AddCommand(NewProfileCommand(opts))
	cmd.AddCommand(NewShopCommand(opts))
	cmd.AddCommand(NewBuyCommand(opts))
	cmd.AddCommand(NewDailyCommand(opts))
	cmd.AddCommand(NewRunsCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewTraceCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

// Logger returns a text logger on w. --verbose forces debug; otherwise
// the level comes from KNIFEHIT_LOG_LEVEL.
func (o *RootOptions) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if l, err := config.ParseLevel(o.Config.LogLevel); err == nil {
		level = l
	}
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
