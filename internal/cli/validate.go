package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/knifehit/internal/engine"
	"github.com/roach88/knifehit/internal/tuning"
)

// ValidationResult holds validation results for a tuning file.
type ValidationResult struct {
	File       string  `json:"file"`
	Valid      bool    `json:"valid"`
	QuotaCap   int     `json:"quota_cap"`
	SpeedCap   float64 `json:"speed_cap"`
	BossLevels []int   `json:"boss_levels"`
	Cooldown   int     `json:"cooldown_ticks"`
}

func (r ValidationResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "✓ %s is valid\n", r.File)
	fmt.Fprintf(&b, "  quota cap %d, speed cap %.3f, cooldown %d ticks\n", r.QuotaCap, r.SpeedCap, r.Cooldown)
	fmt.Fprintf(&b, "  boss levels %v\n", r.BossLevels)
	return b.String()
}

// ValidationDetails locates a tuning error for JSON output.
type ValidationDetails struct {
	Field  string `json:"field"`
	File   string `json:"file,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <tuning.cue>",
		Short: "Validate a tuning file",
		Long: `Validate a CUE tuning file against the tuning schema without playing.

Unknown fields, out-of-range values and inconsistent geometry are reported
with their position in the file.

Exit codes:
  0 - Tuning file is valid
  2 - Tuning file is missing or invalid`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(cmd, opts)
	formatter.VerboseLog("validating %s", path)

	t, err := tuning.Load(path)
	if err != nil {
		var ce *tuning.CompileError
		if errors.As(err, &ce) {
			details := ValidationDetails{Field: ce.Field}
			if ce.Pos.IsValid() {
				details.File = ce.Pos.Filename()
				details.Line = ce.Pos.Line()
				details.Column = ce.Pos.Column()
			}
			return formatter.Fail(ExitCommandError, CodeTuning, "invalid tuning", err, details)
		}
		return formatter.Fail(ExitCommandError, CodeTuning, "invalid tuning", err, nil)
	}

	return formatter.Success(validationResult(path, t))
}

func validationResult(path string, t engine.Tuning) ValidationResult {
	return ValidationResult{
		File:       path,
		Valid:      true,
		QuotaCap:   t.QuotaCap,
		SpeedCap:   t.SpeedCap,
		BossLevels: t.BossLevels,
		Cooldown:   t.CooldownTicks,
	}
}
