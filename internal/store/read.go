package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/knifehit/internal/economy"
	"github.com/roach88/knifehit/internal/ir"
)

// LoadProfile returns the stored profile record. A fresh database yields
// an empty record, which economy.DecodeProfile turns into the default
// profile.
func (s *Store) LoadProfile(ctx context.Context) (economy.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, value FROM profile
		ORDER BY key COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}
	defer rows.Close()

	rec := economy.Record{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		rec[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profile: %w", err)
	}
	return rec, nil
}

const runColumns = `id, seed, level, score, blades_thrown, pickups, revived, ticks`

// ReadRun retrieves a single run by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadRun(ctx context.Context, id string) (ir.RunSummary, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	return scanRun(row)
}

// ListRuns returns the most recent runs, newest first. A limit <= 0
// returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]ir.RunSummary, error) {
	return s.queryRuns(ctx, `
		SELECT `+runColumns+` FROM runs
		ORDER BY seq DESC, id COLLATE BINARY ASC
		LIMIT ?
	`, limitArg(limit))
}

// BestRuns returns the highest-scoring runs; equal scores list the
// earlier run first.
func (s *Store) BestRuns(ctx context.Context, limit int) ([]ir.RunSummary, error) {
	return s.queryRuns(ctx, `
		SELECT `+runColumns+` FROM runs
		ORDER BY score DESC, seq ASC
		LIMIT ?
	`, limitArg(limit))
}

func limitArg(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

func (s *Store) queryRuns(ctx context.Context, query string, args ...any) ([]ir.RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []ir.RunSummary{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (ir.RunSummary, error) {
	var (
		run     ir.RunSummary
		seed    string
		revived int
	)
	err := row.Scan(&run.ID, &seed, &run.Level, &run.Score, &run.BladesThrown, &run.Pickups, &revived, &run.Ticks)
	if err == sql.ErrNoRows {
		return ir.RunSummary{}, err
	}
	if err != nil {
		return ir.RunSummary{}, fmt.Errorf("scan run: %w", err)
	}
	if run.Seed, err = parseSeed(seed); err != nil {
		return ir.RunSummary{}, fmt.Errorf("scan run %s: %w", run.ID, err)
	}
	run.Revived = revived == 1
	return run, nil
}
