package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/knifehit/internal/ir"
)

func TestTraceCommandText(t *testing.T) {
	out, err := execute(t, "trace", "testdata/scenarios/clear_level_one.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "Scenario: clear_level_one")
	assert.Regexp(t, `\s8  stick\s+L1\s+score=10\s+blades=4\s+angle=1427`, out)
	assert.Regexp(t, `72  stage_clear\s+L1\s+score=100\s+blades=0\s+amount=50`, out)
	assert.Contains(t, out, "14 event(s) over 72 tick(s)")
	assert.Regexp(t, `stick\s+5`, out)
}

func TestTraceCommandKindFilter(t *testing.T) {
	out, err := execute(t, "trace", "testdata/scenarios/clear_level_one.yaml", "--kind", "throw", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data TraceResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data.Timeline, 5)
	for _, ev := range resp.Data.Timeline {
		assert.Equal(t, ir.EventThrow, ev.Kind)
	}
	assert.Equal(t, []int64{2, 18, 34, 50, 66}, []int64{
		resp.Data.Timeline[0].Tick,
		resp.Data.Timeline[1].Tick,
		resp.Data.Timeline[2].Tick,
		resp.Data.Timeline[3].Tick,
		resp.Data.Timeline[4].Tick,
	})
	assert.Equal(t, map[string]int{"throw": 5}, resp.Data.Stats.ByKind)
	assert.Equal(t, 72, resp.Data.Stats.Ticks)
}

func TestTraceCommandUnknownKind(t *testing.T) {
	_, err := execute(t, "trace", "testdata/scenarios/clear_level_one.yaml", "--kind", "bounce")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `unknown event kind "bounce"`)
}
