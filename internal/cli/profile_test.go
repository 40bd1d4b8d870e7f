package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/knifehit/internal/economy"
	"github.com/roach88/knifehit/internal/ir"
	"github.com/roach88/knifehit/internal/store"
	"github.com/roach88/knifehit/internal/testutil"
)

// seedDB writes a profile record and runs into a new database.
func seedDB(t *testing.T, rec economy.Record, runs ...ir.RunSummary) string {
	t.Helper()
	path := tempDB(t)
	st, err := store.Open(path)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	if rec != nil {
		require.NoError(t, st.SaveProfile(ctx, rec))
	}
	for _, r := range runs {
		require.NoError(t, st.RecordRun(ctx, r))
	}
	return path
}

func loadProfile(t *testing.T, path string) economy.Profile {
	t.Helper()
	st, err := store.Open(path)
	require.NoError(t, err)
	defer st.Close()

	rec, err := st.LoadProfile(context.Background())
	require.NoError(t, err)
	p, fieldErrs := economy.DecodeProfile(rec)
	require.Empty(t, fieldErrs)
	return p
}

func TestProfileCommand_FreshDatabase(t *testing.T) {
	out, err := execute(t, "profile", "--db", tempDB(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Coins:         0")
	assert.Contains(t, out, "Best stage:    1")
	assert.Contains(t, out, "Skin:          classic (owned: classic)")
	assert.Contains(t, out, "Achievements:  none")
}

func TestProfileCommand_JSON(t *testing.T) {
	db := seedDB(t, economy.Record{
		economy.KeyCoins:        "340",
		economy.KeyBestStage:    "7",
		economy.KeyAchievements: "first_blood,boss_slayer",
	})

	out, err := execute(t, "profile", "--db", db, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   ProfileView `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 340, resp.Data.Coins)
	assert.Equal(t, 7, resp.Data.BestStage)
	assert.Equal(t, []string{"boss_slayer", "first_blood"}, resp.Data.Achievements)
}

func TestShopCommand(t *testing.T) {
	db := seedDB(t, economy.Record{
		economy.KeyCoins:         "20",
		economy.KeyUnlockedSkins: "classic,steel",
		economy.KeyEquippedSkin:  "steel",
	})

	out, err := execute(t, "shop", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Coins: 20")
	assert.Regexp(t, `steel\s+Steel\s+100\s+equipped`, out)
	assert.Regexp(t, `classic\s+Classic\s+0\s+owned`, out)
	assert.Regexp(t, `gold\s+Gold\s+250\s*\n`, out)
}

func TestBuyCommand(t *testing.T) {
	t.Run("affordable", func(t *testing.T) {
		db := seedDB(t, economy.Record{economy.KeyCoins: "150"})

		out, err := execute(t, "buy", "steel", "--db", db)
		require.NoError(t, err)
		assert.Contains(t, out, "Bought steel for 100 coins. Coins: 50")

		p := loadProfile(t, db)
		assert.Equal(t, 50, p.Coins)
		assert.True(t, p.OwnsSkin("steel"))
		assert.Equal(t, economy.SkinID("steel"), p.EquippedSkin)
	})

	t.Run("insufficient funds leaves profile unchanged", func(t *testing.T) {
		db := seedDB(t, economy.Record{economy.KeyCoins: "150"})

		out, err := execute(t, "buy", "gold", "--db", db)
		require.Error(t, err)
		assert.Equal(t, ExitFailure, GetExitCode(err))
		assert.Contains(t, out, "Error [E004]")

		p := loadProfile(t, db)
		assert.Equal(t, 150, p.Coins)
		assert.False(t, p.OwnsSkin("gold"))
		assert.Equal(t, economy.DefaultSkin, p.EquippedSkin)
	})

	t.Run("owned skin is equipped for free", func(t *testing.T) {
		db := seedDB(t, economy.Record{
			economy.KeyCoins:         "5",
			economy.KeyUnlockedSkins: "classic,ruby",
		})

		out, err := execute(t, "buy", "Ruby", "--db", db)
		require.NoError(t, err)
		assert.Contains(t, out, "Equipped ruby. Coins: 5")
		assert.Equal(t, economy.SkinID("ruby"), loadProfile(t, db).EquippedSkin)
	})

	t.Run("unknown skin", func(t *testing.T) {
		out, err := execute(t, "buy", "laser", "--db", tempDB(t), "--format", "json")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))

		var resp CLIResponse
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.Equal(t, "error", resp.Status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, CodeUnknownSkin, resp.Error.Code)
	})
}

func TestDailyCommand_Streak(t *testing.T) {
	db := tempDB(t)
	clock := testutil.NewFixedClock(time.Date(2026, 3, 9, 20, 0, 0, 0, time.UTC))

	claim := func() (string, error) {
		root := &RootOptions{Format: "text", Database: db}
		cmd := NewDailyCommand(root)
		out := &bytes.Buffer{}
		cmd.SetOut(out)
		cmd.SetErr(&bytes.Buffer{})
		err := runDaily(&DailyOptions{RootOptions: root, Now: clock.Now}, cmd)
		return out.String(), err
	}

	out, err := claim()
	require.NoError(t, err)
	assert.Contains(t, out, "Day 1 streak: +10 coins. Coins: 10")

	out, err = claim()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")

	clock.AddDays(1)
	out, err = claim()
	require.NoError(t, err)
	assert.Contains(t, out, "Day 2 streak: +20 coins. Coins: 30")

	clock.AddDays(2)
	out, err = claim()
	require.NoError(t, err)
	assert.Contains(t, out, "Day 1 streak: +10 coins. Coins: 40")

	p := loadProfile(t, db)
	assert.Equal(t, 1, p.DailyStreak)
	assert.Equal(t, 40, p.Coins)
}

func TestDailyCommand_ViaRoot(t *testing.T) {
	db := tempDB(t)

	_, err := execute(t, "daily", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, 10, loadProfile(t, db).Coins)
}

func TestRunsCommand(t *testing.T) {
	db := seedDB(t, nil,
		ir.RunSummary{ID: "run-a", Seed: 1, Level: 2, Score: 150, BladesThrown: 9, Ticks: 400},
		ir.RunSummary{ID: "run-b", Seed: 2, Level: 5, Score: 620, BladesThrown: 31, Pickups: 2, Revived: true, Ticks: 2100},
		ir.RunSummary{ID: "run-c", Seed: 3, Level: 1, Score: 30, BladesThrown: 4, Ticks: 120},
	)

	t.Run("recent first", func(t *testing.T) {
		out, err := execute(t, "runs", "--db", db, "--format", "json")
		require.NoError(t, err)

		var resp struct {
			Data RunsView `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		require.Len(t, resp.Data.Runs, 3)
		assert.Equal(t, "run-c", resp.Data.Runs[0].ID)
		assert.Equal(t, 3, resp.Data.Stats.Runs)
		assert.Equal(t, 620, resp.Data.Stats.BestScore)
		assert.Equal(t, 1, resp.Data.Stats.Revived)
	})

	t.Run("best with limit", func(t *testing.T) {
		out, err := execute(t, "runs", "--db", db, "--best", "--limit", "1")
		require.NoError(t, err)
		assert.Contains(t, out, "run-b")
		assert.NotContains(t, out, "run-a")
		assert.Contains(t, out, "3 run(s), best score 620, best level 5")
	})

	t.Run("missing database", func(t *testing.T) {
		_, err := execute(t, "runs", "--db", tempDB(t))
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, err.Error(), "database not found")
	})
}
