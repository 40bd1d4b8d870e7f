package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/knifehit/internal/economy"
)

// ProfileView is the profile command output.
type ProfileView struct {
	Coins            int      `json:"coins"`
	BestStage        int      `json:"best_stage"`
	GamesPlayed      int      `json:"total_games_played"`
	BladesThrown     int      `json:"total_blades_thrown"`
	PickupsCollected int      `json:"total_pickups_collected"`
	EquippedSkin     string   `json:"equipped_skin"`
	Skins            []string `json:"unlocked_skins"`
	Achievements     []string `json:"achievements"`
	DailyStreak      int      `json:"daily_streak"`
	LastDaily        string   `json:"last_daily_reward_date,omitempty"`
}

func newProfileView(p economy.Profile) ProfileView {
	v := ProfileView{
		Coins:            p.Coins,
		BestStage:        p.BestStage,
		GamesPlayed:      p.TotalGamesPlayed,
		BladesThrown:     p.TotalBladesThrown,
		PickupsCollected: p.TotalPickupsCollected,
		EquippedSkin:     string(p.EquippedSkin),
		Skins:            []string{},
		Achievements:     []string{},
		DailyStreak:      p.DailyStreak,
	}
	for _, s := range p.SkinList() {
		v.Skins = append(v.Skins, string(s))
	}
	for _, a := range p.AchievementList() {
		v.Achievements = append(v.Achievements, string(a))
	}
	if !p.LastDailyRewardDate.IsZero() {
		v.LastDaily = p.LastDailyRewardDate.Format("2006-01-02")
	}
	return v
}

func (v ProfileView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Coins:         %d\n", v.Coins)
	fmt.Fprintf(&b, "Best stage:    %d\n", v.BestStage)
	fmt.Fprintf(&b, "Games played:  %d\n", v.GamesPlayed)
	fmt.Fprintf(&b, "Blades thrown: %d\n", v.BladesThrown)
	fmt.Fprintf(&b, "Pickups:       %d\n", v.PickupsCollected)
	fmt.Fprintf(&b, "Skin:          %s (owned: %s)\n", v.EquippedSkin, strings.Join(v.Skins, ", "))
	achievements := "none"
	if len(v.Achievements) > 0 {
		achievements = strings.Join(v.Achievements, ", ")
	}
	fmt.Fprintf(&b, "Achievements:  %s\n", achievements)
	if v.LastDaily != "" {
		fmt.Fprintf(&b, "Daily streak:  %d (last claimed %s)\n", v.DailyStreak, v.LastDaily)
	} else {
		fmt.Fprintf(&b, "Daily streak:  %d\n", v.DailyStreak)
	}
	return b.String()
}

// NewProfileCommand creates the profile command.
func NewProfileCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the player profile",
		Long: `Show coins, best stage, lifetime counters, skins and achievements.

A database without a stored profile shows the first-run profile.

Examples:
  knifehit profile
  knifehit profile --db ./knifehit.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfile(rootOpts, cmd)
		},
	}
}

func runProfile(opts *RootOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger(cmd.ErrOrStderr())

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer closeStore(st, logger)

	econ, err := loadEconomy(ctx, st, logger)
	if err != nil {
		return err
	}
	return newFormatter(cmd, opts).Success(newProfileView(econ.Profile()))
}
