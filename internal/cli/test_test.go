package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestCommandMissingArgs(t *testing.T) {
	_, err := execute(t, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentDir(t *testing.T) {
	_, err := execute(t, "test", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommandEmptyDir(t *testing.T) {
	out, err := execute(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")
}

func TestTestCommandPassingScenarios(t *testing.T) {
	out, err := execute(t, "test", "testdata/scenarios")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ clear_level_one")
	assert.Contains(t, out, "✓ idle_start")
	assert.Contains(t, out, "Test Summary: 2 passed, 0 failed, 2 total")
}

func TestTestCommandFilter(t *testing.T) {
	out, err := execute(t, "test", "testdata/scenarios", "--filter", "idle*")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ idle_start")
	assert.NotContains(t, out, "clear_level_one")
	assert.Contains(t, out, "1 total")
}

func TestTestCommandInvalidFilter(t *testing.T) {
	_, err := execute(t, "test", "testdata/scenarios", "--filter", "[")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommandFailingScenario(t *testing.T) {
	out, err := execute(t, "test", "testdata/failing")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ wrong_score")
	assert.Contains(t, out, "expect: score: want 999, got 100")
}

func TestTestCommandFailingScenarioJSON(t *testing.T) {
	out, err := execute(t, "test", "testdata/failing", "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string `json:"status"`
		Error  struct {
			Code    string     `json:"code"`
			Details TestResult `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, CodeScenario, resp.Error.Code)
	assert.Equal(t, 1, resp.Error.Details.Failed)
	require.Len(t, resp.Error.Details.Scenarios, 1)
	assert.False(t, resp.Error.Details.Scenarios[0].Pass)
}

func TestTestCommandGolden(t *testing.T) {
	out, err := execute(t, "test", "testdata/scenarios", "--golden", "testdata/golden")
	require.NoError(t, err)
	assert.Contains(t, out, "2 passed")
}

func TestTestCommandGoldenMismatch(t *testing.T) {
	golden := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(golden, "clear_level_one.golden"), []byte("# scenario: clear_level_one\n"), 0644))

	out, err := execute(t, "test", "testdata/scenarios", "--golden", golden)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "does not match golden file")
}

func TestTestCommandGoldenUpdate(t *testing.T) {
	golden := filepath.Join(t.TempDir(), "golden")

	_, err := execute(t, "test", "testdata/scenarios", "--golden", golden, "--update")
	require.NoError(t, err)

	want, err := os.ReadFile("testdata/golden/clear_level_one.golden")
	require.NoError(t, err)
	got, err := os.ReadFile(filepath.Join(golden, "clear_level_one.golden"))
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))

	idle, err := os.ReadFile(filepath.Join(golden, "idle_start.golden"))
	require.NoError(t, err)
	assert.Equal(t, "# scenario: idle_start\n", string(idle))

	// updated files compare clean
	_, err = execute(t, "test", "testdata/scenarios", "--golden", golden)
	require.NoError(t, err)
}

func TestTestCommandUpdateRequiresGolden(t *testing.T) {
	_, err := execute(t, "test", "testdata/scenarios", "--update")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
