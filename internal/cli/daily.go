package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/knifehit/internal/economy"
)

// DailyOptions holds flags for the daily command.
type DailyOptions struct {
	*RootOptions

	// Now overrides the wall clock (for testing). If nil, time.Now is used.
	Now func() time.Time
}

// DailyClaim is the daily command output.
type DailyClaim struct {
	Streak int `json:"streak"`
	Reward int `json:"reward"`
	Coins  int `json:"coins"`
}

func (c DailyClaim) String() string {
	return fmt.Sprintf("Day %d streak: +%d coins. Coins: %d\n", c.Streak, c.Reward, c.Coins)
}

// NewDailyCommand creates the daily command.
func NewDailyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DailyOptions{RootOptions: rootOpts}

	return &cobra.Command{
		Use:   "daily",
		Short: "Claim the daily reward",
		Long: `Claim today's reward. Claiming on consecutive calendar days grows the
streak and the reward; missing a day restarts it at day 1.

Exit codes:
  0 - Reward claimed
  1 - Already claimed today
  2 - Database error

Examples:
  knifehit daily`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaily(opts, cmd)
		},
	}
}

func runDaily(opts *DailyOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	logger := opts.Logger(cmd.ErrOrStderr())
	formatter := newFormatter(cmd, opts.RootOptions)

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeStore(st, logger)

	econ, err := loadEconomy(ctx, st, logger)
	if err != nil {
		return err
	}

	res, err := econ.CheckDailyReward(now())
	if errors.Is(err, economy.ErrAlreadyClaimed) {
		p := econ.Profile()
		return formatter.Fail(ExitFailure, CodeAlreadyClaimed, "daily reward already claimed", nil,
			map[string]any{"streak": p.DailyStreak})
	}
	if err != nil {
		return WrapExitError(ExitFailure, "daily reward failed", err)
	}

	if err := saveEconomy(ctx, st, econ); err != nil {
		return err
	}
	logger.Info("daily reward claimed", "streak", res.Streak, "reward", res.Reward)

	return formatter.Success(DailyClaim{
		Streak: res.Streak,
		Reward: res.Reward,
		Coins:  econ.Profile().Coins,
	})
}
