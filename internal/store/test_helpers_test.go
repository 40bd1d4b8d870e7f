package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/knifehit/internal/ir"
)

// createTestStore opens a fresh database in a per-test temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRun(id string, score int) ir.RunSummary {
	return ir.RunSummary{
		ID:           id,
		Seed:         42,
		Level:        3,
		Score:        score,
		BladesThrown: 17,
		Pickups:      1,
		Ticks:        900,
	}
}
