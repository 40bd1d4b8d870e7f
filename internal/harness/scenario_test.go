package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenarioResolvesTuning(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/early_collision.yaml")
	require.NoError(t, err)

	assert.Equal(t, "early_collision", s.Name)
	assert.Equal(t, uint64(7), s.Seed)
	assert.Equal(t, filepath.Join("testdata", "tuning", "no_cooldown.cue"), s.Tuning)
	assert.Equal(t, "run-collide", s.RunID)
	require.Len(t, s.Steps, 1)
	assert.Equal(t, "game_over", s.Steps[0].Until)
}

func TestLoadScenarioMissingTuning(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: s
description: d
tuning: absent.cue
steps: [{input: tap}]
`), 0o644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tuning file not found")
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenarioRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unknown field",
			yaml: "name: a\ndescription: b\nsteps: [{input: tap}]\nasertions: []\n",
			want: "failed to parse YAML",
		},
		{
			name: "missing name",
			yaml: "description: b\nsteps: [{input: tap}]\n",
			want: "name is required",
		},
		{
			name: "missing description",
			yaml: "name: a\nsteps: [{input: tap}]\n",
			want: "description is required",
		},
		{
			name: "no steps",
			yaml: "name: a\ndescription: b\n",
			want: "steps list is required",
		},
		{
			name: "unknown input",
			yaml: "name: a\ndescription: b\nsteps: [{input: jump}]\n",
			want: `unknown input "jump"`,
		},
		{
			name: "empty input without grant",
			yaml: "name: a\ndescription: b\nsteps: [{repeat: 2}]\n",
			want: "input is required",
		},
		{
			name: "repeat with until",
			yaml: "name: a\ndescription: b\nsteps: [{input: tap, repeat: 2, until: stick}]\n",
			want: "mutually exclusive",
		},
		{
			name: "unknown until kind",
			yaml: "name: a\ndescription: b\nsteps: [{input: tap, until: victory}]\n",
			want: `unknown event kind "victory"`,
		},
		{
			name: "assertion without type",
			yaml: "name: a\ndescription: b\nsteps: [{input: tap}]\nassertions: [{kind: stick}]\n",
			want: "type is required",
		},
		{
			name: "trace_count without kind",
			yaml: "name: a\ndescription: b\nsteps: [{input: tap}]\nassertions: [{type: trace_count, count: 1}]\n",
			want: "kind is required for trace_count",
		},
		{
			name: "trace_order unknown kind",
			yaml: "name: a\ndescription: b\nsteps: [{input: tap}]\nassertions: [{type: trace_order, kinds: [start, win]}]\n",
			want: `unknown event kind "win"`,
		},
		{
			name: "final_state unknown table",
			yaml: "name: a\ndescription: b\nsteps: [{input: tap}]\nassertions: [{type: final_state, table: coins, expect: {a: 1}}]\n",
			want: `unknown table "coins"`,
		},
		{
			name: "final_state without expect",
			yaml: "name: a\ndescription: b\nsteps: [{input: tap}]\nassertions: [{type: final_state, table: session}]\n",
			want: "expect is required",
		},
		{
			name: "unknown assertion type",
			yaml: "name: a\ndescription: b\nsteps: [{input: tap}]\nassertions: [{type: vibes}]\n",
			want: `unknown assertion type "vibes"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseScenarioGrantOnlyStep(t *testing.T) {
	s, err := ParseScenario([]byte("name: a\ndescription: b\nads: {auto_grant: false}\nsteps: [{grant: true}]\n"))
	require.NoError(t, err)
	require.NotNil(t, s.Ads)
	assert.False(t, s.Ads.AutoGrant)
	assert.True(t, s.Steps[0].Grant)
}

func TestParseScenarioAutoInput(t *testing.T) {
	s, err := ParseScenario([]byte("name: a\ndescription: b\nsteps: [{input: auto, repeat: 3}]\n"))
	require.NoError(t, err)
	assert.Equal(t, InputAuto, s.Steps[0].Input)
	assert.Equal(t, 3, s.Steps[0].Repeat)
}
