package tuning

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/knifehit/internal/engine"
)

func TestDefaultMatchesEngineDefaults(t *testing.T) {
	got, err := Default()
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultTuning(), got)
}

func TestLoadOverrides(t *testing.T) {
	got, err := Load(filepath.Join("testdata", "hard.cue"))
	require.NoError(t, err)

	assert.Equal(t, 12, got.QuotaCap)
	assert.InDelta(t, 0.1, got.SpeedCap, 1e-12)
	assert.Equal(t, []int{3, 6, 9}, got.BossLevels)
	assert.InDelta(t, 0.005, got.NormalSpeed.PerLevel, 1e-12)
	assert.InDelta(t, 0.015, got.NormalSpeed.Base, 1e-12, "unset nested field keeps its default")

	// tiers come back ordered by level
	require.Len(t, got.CollisionTiers, 2)
	assert.Equal(t, 1, got.CollisionTiers[0].FromLevel)
	assert.Equal(t, 10, got.CollisionTiers[1].FromLevel)
	assert.InDelta(t, 0.15, got.CollisionThreshold(12), 1e-12)

	// untouched fields keep defaults
	assert.Equal(t, 9, got.CooldownTicks)
	assert.InDelta(t, 80.0, got.Radius, 1e-12)
}

func TestLoadBytesIntegerForFloatField(t *testing.T) {
	got, err := LoadBytes("int.cue", []byte("radius: 90\n"))
	require.NoError(t, err)
	assert.InDelta(t, 90.0, got.Radius, 1e-12)
}

func TestLoadBytesErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		field string
	}{
		{name: "unknown field", src: "radius: 80\nwobble: 3\n", field: "wobble"},
		{name: "unknown nested field", src: "normal_quota: slope: 2\n", field: "normal_quota.slope"},
		{name: "wrong type", src: "quota_cap: \"many\"\n"},
		{name: "constraint", src: "quota_cap: 0\n"},
		{name: "probability above one", src: "pickup_chance: 1.5\n"},
		{name: "syntax", src: "radius: {\n"},
		{name: "blade spawns inside target", src: "spawn_distance: 100\n", field: "tuning"},
		{name: "zero collision threshold", src: "collision_tiers: [{from_level: 1, threshold: 0}]\n"},
		{name: "tiers skip level one", src: "collision_tiers: [{from_level: 4, threshold: 0.2}]\n", field: "tuning"},
		{
			name:  "tier threshold widens",
			src:   "collision_tiers: [{from_level: 1, threshold: 0.2}, {from_level: 10, threshold: 0.25}]\n",
			field: "tuning",
		},
		{name: "pickup inside collision", src: "pickup_threshold: 0.2\n", field: "tuning"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBytes("bad.cue", []byte(tt.src))
			require.Error(t, err)

			var ce *CompileError
			require.True(t, errors.As(err, &ce), "want *CompileError, got %T: %v", err, err)
			if tt.field != "" {
				assert.Equal(t, tt.field, ce.Field)
			}
			assert.NotEmpty(t, ce.Message)
		})
	}
}

func TestUnknownFieldPosition(t *testing.T) {
	_, err := LoadBytes("pos.cue", []byte("radius: 80\nwobble: 3\n"))
	require.Error(t, err)

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	require.True(t, ce.Pos.IsValid())
	assert.Equal(t, "pos.cue", ce.Pos.Filename())
	assert.Equal(t, 2, ce.Pos.Line())
	assert.Contains(t, ce.Error(), "pos.cue:2:")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.cue"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestCompileErrorWithoutPosition(t *testing.T) {
	err := &CompileError{Field: "tuning", Message: "bad"}
	assert.Equal(t, "tuning: bad", err.Error())
}
