package engine

import (
	"math"
	"testing"

	"github.com/roach88/knifehit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelGenerator_CapsAndMonotone(t *testing.T) {
	tu := DefaultTuning()
	g := NewLevelGenerator(tu, NewSeededRNG(7))

	prevQuota, prevSpeed := 0, 0.0
	for l := 1; l <= 200; l++ {
		q := g.BladesRequired(l)
		s := g.RotationSpeed(l)

		assert.LessOrEqual(t, q, tu.QuotaCap, "level %d quota", l)
		assert.LessOrEqual(t, s, tu.SpeedCap, "level %d speed", l)
		assert.GreaterOrEqual(t, q, prevQuota, "level %d quota decreased", l)
		assert.GreaterOrEqual(t, s, prevSpeed, "level %d speed decreased", l)
		prevQuota, prevSpeed = q, s
	}
	assert.Equal(t, tu.QuotaCap, prevQuota)
	assert.Equal(t, tu.SpeedCap, prevSpeed)
}

func TestLevelGenerator_Baseline(t *testing.T) {
	g := NewLevelGenerator(DefaultTuning(), NewSeededRNG(1))

	cfg := g.Generate(1)
	assert.Equal(t, 1, cfg.Level)
	assert.Equal(t, 5, cfg.BladesRequired)
	assert.InDelta(t, 0.018, cfg.RotationSpeed, 1e-12)
	assert.False(t, cfg.IsBoss)
	assert.Equal(t, 0, cfg.PreSeededBlades)
	assert.Equal(t, 0, cfg.PickupCount)
	assert.Equal(t, 0, cfg.Direction, "no direction choice before level 4")
}

func TestLevelGenerator_ClampsLevelIndex(t *testing.T) {
	g := NewLevelGenerator(DefaultTuning(), NewSeededRNG(1))
	assert.Equal(t, 1, g.Generate(0).Level)
	assert.Equal(t, 1, g.Generate(-4).Level)
}

func TestLevelGenerator_BossLevel(t *testing.T) {
	rng := testutil.NewSequenceRNG(0.25, 0.5)
	g := NewLevelGenerator(DefaultTuning(), rng)

	cfg := g.Generate(5)
	require.True(t, cfg.IsBoss)
	assert.Equal(t, 9, cfg.BladesRequired)
	assert.InDelta(t, 0.035, cfg.RotationSpeed, 1e-12)

	require.Equal(t, 3, cfg.PreSeededBlades)
	assert.InDelta(t, 0, cfg.SeedAngles[0], 1e-12)
	assert.InDelta(t, 2*math.Pi/3, cfg.SeedAngles[1], 1e-12)
	assert.InDelta(t, 4*math.Pi/3, cfg.SeedAngles[2], 1e-12)

	require.Equal(t, 2, cfg.PickupCount)
	assert.InDelta(t, math.Pi/2, cfg.PickupAngles[0], 1e-12)
	assert.InDelta(t, math.Pi, cfg.PickupAngles[1], 1e-12)
	assert.Equal(t, 2, rng.Draws())
}

func TestLevelGenerator_BossSpikeHoldsQuota(t *testing.T) {
	g := NewLevelGenerator(DefaultTuning(), NewSeededRNG(1))

	assert.Equal(t, 10, g.Generate(10).BladesRequired)
	assert.Equal(t, 4, g.Generate(10).PreSeededBlades)
	// the level after a boss keeps the boss quota until the normal curve catches up
	assert.Equal(t, 9, g.BladesRequired(6))
	assert.InDelta(t, 0.035, g.RotationSpeed(6), 1e-12)
}

func TestLevelGenerator_PickupChance(t *testing.T) {
	g := NewLevelGenerator(DefaultTuning(), testutil.NewSequenceRNG(0.1))
	cfg := g.Generate(3)
	require.Equal(t, 1, cfg.PickupCount)
	assert.InDelta(t, 0.2*math.Pi, cfg.PickupAngles[0], 1e-12)

	g = NewLevelGenerator(DefaultTuning(), testutil.NewSequenceRNG(0.9))
	assert.Equal(t, 0, g.Generate(3).PickupCount)

	rng := testutil.NewSequenceRNG(0.0)
	g = NewLevelGenerator(DefaultTuning(), rng)
	assert.Equal(t, 0, g.Generate(2).PickupCount)
	assert.Equal(t, 0, rng.Draws(), "no draws below the pickup level")
}

func TestLevelGenerator_Obstacles(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{7, 0},
		{8, 1},
		{11, 1},
		{12, 2},
		{16, 3},
		{21, 4},
		{24, 4},
		{40, 4},
	}
	for _, tt := range tests {
		g := NewLevelGenerator(DefaultTuning(), testutil.NewSequenceRNG(0.9))
		cfg := g.Generate(tt.level)
		if cfg.IsBoss {
			continue
		}
		assert.Equal(t, tt.want, cfg.PreSeededBlades, "level %d", tt.level)
		assert.Equal(t, tt.want, g.Obstacles(tt.level), "level %d", tt.level)
	}

	g := NewLevelGenerator(DefaultTuning(), nil)
	assert.Equal(t, 3, g.Obstacles(5), "boss seed blades")
	assert.Equal(t, 4, g.Obstacles(10))
	assert.Equal(t, 0, g.Obstacles(1))
}

func TestLevelGenerator_DirectionChoice(t *testing.T) {
	g := NewLevelGenerator(DefaultTuning(), testutil.NewSequenceRNG(0.9, 0.1, 0.2))
	assert.Equal(t, -1, g.Generate(4).Direction)

	g = NewLevelGenerator(DefaultTuning(), testutil.NewSequenceRNG(0.9, 0.1, 0.7))
	assert.Equal(t, 1, g.Generate(4).Direction)

	rng := testutil.NewSequenceRNG(0.9)
	g = NewLevelGenerator(DefaultTuning(), rng)
	assert.Equal(t, 0, g.Generate(8).Direction, "failed roll keeps the previous direction")
	assert.Equal(t, 3, rng.Draws(), "pickup roll, one obstacle, direction roll")
}

func TestLevelGenerator_SeededIsReproducible(t *testing.T) {
	a := NewLevelGenerator(DefaultTuning(), NewSeededRNG(99))
	b := NewLevelGenerator(DefaultTuning(), NewSeededRNG(99))
	for l := 1; l <= 30; l++ {
		assert.Equal(t, a.Generate(l), b.Generate(l), "level %d", l)
	}
}

func TestTuning_CollisionTiers(t *testing.T) {
	tu := DefaultTuning()
	tu.CollisionTiers = []CollisionTier{
		{FromLevel: 10, Threshold: 0.15},
		{FromLevel: 1, Threshold: 0.2},
		{FromLevel: 20, Threshold: 0.12},
	}
	assert.Equal(t, 0.2, tu.CollisionThreshold(1))
	assert.Equal(t, 0.2, tu.CollisionThreshold(9))
	assert.Equal(t, 0.15, tu.CollisionThreshold(10))
	assert.Equal(t, 0.12, tu.CollisionThreshold(50))
}

func TestTuning_Validate(t *testing.T) {
	require.NoError(t, DefaultTuning().Validate())

	tu := DefaultTuning()
	tu.SpawnDistance = 100
	assert.Error(t, tu.Validate())

	tu = DefaultTuning()
	tu.BossLevels = []int{10, 5}
	assert.Error(t, tu.Validate())

	tu = DefaultTuning()
	tu.CollisionTiers = nil
	assert.Error(t, tu.Validate())

	tests := []struct {
		name    string
		tiers   []CollisionTier
		pickup  float64
		wantErr string
	}{
		{
			name:    "first tier after level one",
			tiers:   []CollisionTier{{FromLevel: 4, Threshold: 0.2}},
			pickup:  0.3,
			wantErr: "must start at level 1",
		},
		{
			name:    "threshold widens",
			tiers:   []CollisionTier{{FromLevel: 10, Threshold: 0.25}, {FromLevel: 1, Threshold: 0.2}},
			pickup:  0.3,
			wantErr: "widens",
		},
		{
			name:    "zero threshold",
			tiers:   []CollisionTier{{FromLevel: 1, Threshold: 0}},
			pickup:  0.3,
			wantErr: "must be positive",
		},
		{
			name:    "pickup not wider than collision",
			tiers:   []CollisionTier{{FromLevel: 1, Threshold: 0.3}},
			pickup:  0.3,
			wantErr: "pickup_threshold",
		},
		{
			name:   "narrowing tiers in any order",
			tiers:  []CollisionTier{{FromLevel: 20, Threshold: 0.1}, {FromLevel: 0, Threshold: 0.2}, {FromLevel: 8, Threshold: 0.15}},
			pickup: 0.3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tu := DefaultTuning()
			tu.CollisionTiers = tt.tiers
			tu.PickupThreshold = tt.pickup

			err := tu.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTuning_ValidatedTiersAlwaysCollide(t *testing.T) {
	tu := DefaultTuning()
	tu.CollisionTiers = []CollisionTier{{FromLevel: 1, Threshold: 0.2}, {FromLevel: 10, Threshold: 0.12}}
	require.NoError(t, tu.Validate())

	for level := 1; level <= 30; level++ {
		c := Classify(1.0, []Blade{{Angle: 1.0}}, nil, tu.CollisionThreshold(level), tu.PickupThreshold)
		assert.Equal(t, OutcomeCollision, c.Outcome, "level %d", level)
	}
}
