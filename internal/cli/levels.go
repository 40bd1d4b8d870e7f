package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/knifehit/internal/engine"
)

// LevelsOptions holds flags for the levels command.
type LevelsOptions struct {
	*RootOptions
	From  int
	Count int
}

// LevelRow is one line of the difficulty table.
type LevelRow struct {
	Level     int     `json:"level"`
	Boss      bool    `json:"boss"`
	Blades    int     `json:"blades_required"`
	Speed     float64 `json:"rotation_speed"`
	Threshold float64 `json:"collision_threshold"`
	Obstacles int     `json:"obstacles"`
}

// LevelTable is the levels command output.
type LevelTable struct {
	Levels []LevelRow `json:"levels"`
}

func (t LevelTable) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-6s %-5s %-7s %-7s %-10s %s\n", "LEVEL", "BOSS", "BLADES", "SPEED", "THRESHOLD", "OBSTACLES")
	for _, r := range t.Levels {
		boss := ""
		if r.Boss {
			boss = "yes"
		}
		fmt.Fprintf(&b, "%-6d %-5s %-7d %-7.3f %-10.2f %d\n",
			r.Level, boss, r.Blades, r.Speed, r.Threshold, r.Obstacles)
	}
	return b.String()
}

// NewLevelsCommand creates the levels command.
func NewLevelsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LevelsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Print the difficulty table",
		Long: `Print the blade quota, rotation speed, collision threshold and obstacle
count of a range of levels under the active tuning.

Examples:
  knifehit levels
  knifehit levels --from 20 --count 10 --tuning hard.cue`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLevels(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.From, "from", 1, "first level")
	cmd.Flags().IntVarP(&opts.Count, "count", "n", 10, "number of levels")

	return cmd
}

func runLevels(opts *LevelsOptions, cmd *cobra.Command) error {
	if opts.From < 1 || opts.Count < 1 {
		return NewExitError(ExitCommandError, "--from and --count must be at least 1")
	}
	t, err := loadTuning(opts.RootOptions)
	if err != nil {
		return err
	}
	return newFormatter(cmd, opts.RootOptions).Success(levelTable(t, opts.From, opts.Count))
}

// levelTable evaluates the deterministic level curves. Nothing here draws
// from a random source.
func levelTable(t engine.Tuning, from, count int) LevelTable {
	g := engine.NewLevelGenerator(t, nil)
	table := LevelTable{Levels: make([]LevelRow, 0, count)}
	for l := from; l < from+count; l++ {
		table.Levels = append(table.Levels, LevelRow{
			Level:     l,
			Boss:      t.IsBossLevel(l),
			Blades:    g.BladesRequired(l),
			Speed:     g.RotationSpeed(l),
			Threshold: t.CollisionThreshold(l),
			Obstacles: g.Obstacles(l),
		})
	}
	return table
}
