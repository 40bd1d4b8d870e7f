package store

import (
	"path/filepath"
	"strconv"
	"testing"
)

func TestOpen_CreatesDatabase(t *testing.T) {
	s := createTestStore(t)

	for _, table := range []string{"profile", "runs"} {
		var name string
		err := s.db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestOpen_Pragmas(t *testing.T) {
	s := createTestStore(t)

	tests := []struct {
		name     string
		expected string
	}{
		{"journal_mode", "wal"},
		{"synchronous", "1"},
		{"busy_timeout", "5000"},
		{"user_version", strconv.Itoa(schemaVersion())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.pragma(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.expected {
				t.Errorf("%s = %q, want %q", tt.name, got, tt.expected)
			}
		})
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first Open() error = %v", err)
	}
	if err := s1.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	defer s2.Close()

	got, err := s2.pragma("user_version")
	if err != nil {
		t.Fatal(err)
	}
	if got != "1" {
		t.Errorf("user_version = %q, want %q", got, "1")
	}
}

func TestOpen_ScoreIndex(t *testing.T) {
	s := createTestStore(t)

	var name string
	err := s.db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name='idx_runs_score'`).Scan(&name)
	if err != nil {
		t.Fatalf("idx_runs_score missing: %v", err)
	}
}

func TestClose_NilDB(t *testing.T) {
	var s Store
	if err := s.Close(); err != nil {
		t.Errorf("Close() on empty store error = %v", err)
	}
}
