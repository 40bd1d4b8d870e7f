package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/roach88/knifehit/internal/economy"
	"github.com/roach88/knifehit/internal/ir"
)

// SaveProfile writes every key of rec in one transaction.
// Keys absent from rec are left untouched.
func (s *Store) SaveProfile(ctx context.Context, rec economy.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save profile: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO profile (key, value)
			VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, k, rec[k])
		if err != nil {
			return fmt.Errorf("save profile: write %s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save profile: commit: %w", err)
	}
	return nil
}

// RecordRun upserts a run summary. A new run is appended to the history;
// a known run id is updated in place and keeps its position.
func (s *Store) RecordRun(ctx context.Context, run ir.RunSummary) error {
	if run.ID == "" {
		return fmt.Errorf("record run: empty run id")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, seed, level, score, blades_thrown, pickups, revived, ticks, engine_version)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM runs), ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			level = excluded.level,
			score = excluded.score,
			blades_thrown = excluded.blades_thrown,
			pickups = excluded.pickups,
			revived = excluded.revived,
			ticks = excluded.ticks
	`,
		run.ID,
		formatSeed(run.Seed),
		run.Level,
		run.Score,
		run.BladesThrown,
		run.Pickups,
		boolToInt(run.Revived),
		run.Ticks,
		ir.EngineVersion,
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", run.ID, err)
	}
	return nil
}
