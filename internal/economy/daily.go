package economy

import "time"

// DefaultDailyTable is the reward for day 1, 2, ... of a streak.
// Streaks longer than the table keep paying the last entry.
var DefaultDailyTable = []int{10, 20, 30, 50, 75, 100, 150}

// DailyResult describes a successful daily claim.
type DailyResult struct {
	Streak int
	Reward int
}

// DailyReward looks up the reward for a streak (1-based), clamped to the table.
func DailyReward(table []int, streak int) int {
	if len(table) == 0 || streak < 1 {
		return 0
	}
	idx := streak - 1
	if idx >= len(table) {
		idx = len(table) - 1
	}
	return table[idx]
}

// CheckDailyReward claims the daily reward for now's calendar day.
//
// If the last claim was the previous calendar day the streak grows,
// otherwise it restarts at 1. A second claim on the same day, or a claim
// dated before the last one, returns ErrAlreadyClaimed and changes nothing.
func (e *Economy) CheckDailyReward(now time.Time) (DailyResult, error) {
	today := civilDay(now)
	last := e.profile.LastDailyRewardDate

	streak := 1
	if !last.IsZero() {
		switch {
		case !today.After(last):
			return DailyResult{}, ErrAlreadyClaimed
		case last.AddDate(0, 0, 1).Equal(today):
			streak = e.profile.DailyStreak + 1
		}
	}

	reward := DailyReward(e.dailyTable, streak)
	e.profile.DailyStreak = streak
	e.profile.LastDailyRewardDate = today
	e.AwardCoins(reward)
	return DailyResult{Streak: streak, Reward: reward}, nil
}
