package store

import (
	"fmt"
	"strconv"
)

// formatSeed stores a run seed as decimal TEXT. SQLite integers are
// signed 64-bit, so seeds above 2^63-1 would not survive an INTEGER column.
func formatSeed(seed uint64) string {
	return strconv.FormatUint(seed, 10)
}

// parseSeed reverses formatSeed.
func parseSeed(s string) (uint64, error) {
	seed, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse seed %q: %w", s, err)
	}
	return seed, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
