package economy

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDailyReward_Clamps(t *testing.T) {
	table := DefaultDailyTable
	assert.Equal(t, 10, DailyReward(table, 1))
	assert.Equal(t, 50, DailyReward(table, 4))
	assert.Equal(t, 150, DailyReward(table, 7))
	assert.Equal(t, 150, DailyReward(table, 40))
	assert.Equal(t, 0, DailyReward(table, 0))
	assert.Equal(t, 0, DailyReward(nil, 3))
}

func TestCheckDailyReward_FirstClaim(t *testing.T) {
	e := New(DefaultProfile())

	res, err := e.CheckDailyReward(time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, DailyResult{Streak: 1, Reward: 10}, res)

	p := e.Profile()
	assert.Equal(t, 10, p.Coins)
	assert.Equal(t, 1, p.DailyStreak)
	assert.True(t, p.LastDailyRewardDate.Equal(day(2026, 3, 1)))
}

func TestCheckDailyReward_ConsecutiveDayGrowsStreak(t *testing.T) {
	p := DefaultProfile()
	p.DailyStreak = 3
	p.LastDailyRewardDate = day(2026, 3, 1)
	e := New(p)

	res, err := e.CheckDailyReward(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 4, res.Streak)
	assert.Equal(t, 50, res.Reward)
	assert.Equal(t, 50, e.Profile().Coins)
}

func TestCheckDailyReward_SameDay(t *testing.T) {
	p := DefaultProfile()
	p.DailyStreak = 2
	p.Coins = 7
	p.LastDailyRewardDate = day(2026, 3, 1)
	e := New(p)

	_, err := e.CheckDailyReward(time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyClaimed))

	after := e.Profile()
	assert.Equal(t, 7, after.Coins)
	assert.Equal(t, 2, after.DailyStreak)
}

func TestCheckDailyReward_ClockMovedBack(t *testing.T) {
	p := DefaultProfile()
	p.DailyStreak = 3
	p.Coins = 40
	p.LastDailyRewardDate = day(2026, 3, 5)
	e := New(p)

	_, err := e.CheckDailyReward(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyClaimed))

	after := e.Profile()
	assert.Equal(t, 40, after.Coins)
	assert.Equal(t, 3, after.DailyStreak)
	assert.Equal(t, day(2026, 3, 5), after.LastDailyRewardDate)
}

func TestCheckDailyReward_GapResetsStreak(t *testing.T) {
	p := DefaultProfile()
	p.DailyStreak = 6
	p.LastDailyRewardDate = day(2026, 3, 1)
	e := New(p)

	res, err := e.CheckDailyReward(time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, DailyResult{Streak: 1, Reward: 10}, res)
}

func TestCheckDailyReward_MonthBoundary(t *testing.T) {
	p := DefaultProfile()
	p.DailyStreak = 1
	p.LastDailyRewardDate = day(2026, 2, 28)
	e := New(p)

	res, err := e.CheckDailyReward(day(2026, 3, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Streak)
	assert.Equal(t, 20, res.Reward)
}

func TestCheckDailyReward_LongStreakPaysLastEntry(t *testing.T) {
	p := DefaultProfile()
	p.DailyStreak = 12
	p.LastDailyRewardDate = day(2026, 3, 1)
	e := New(p)

	res, err := e.CheckDailyReward(day(2026, 3, 2))
	require.NoError(t, err)
	assert.Equal(t, 13, res.Streak)
	assert.Equal(t, 150, res.Reward)
}

func TestCheckDailyReward_CustomTable(t *testing.T) {
	e := New(DefaultProfile(), WithDailyTable([]int{1, 2}))

	res, err := e.CheckDailyReward(day(2026, 5, 5))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Reward)
}
