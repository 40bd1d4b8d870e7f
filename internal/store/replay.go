package store

import (
	"context"
	"fmt"
)

// RunStats aggregates the run history.
type RunStats struct {
	Runs         int   `json:"runs"`
	BestScore    int   `json:"best_score"`
	BestLevel    int   `json:"best_level"`
	TotalScore   int   `json:"total_score"`
	BladesThrown int   `json:"blades_thrown"`
	Pickups      int   `json:"pickups"`
	Revived      int   `json:"revived"`
	TotalTicks   int64 `json:"total_ticks"`
}

// Stats summarizes every recorded run.
func (s *Store) Stats(ctx context.Context) (RunStats, error) {
	var st RunStats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(MAX(score), 0),
			COALESCE(MAX(level), 0),
			COALESCE(SUM(score), 0),
			COALESCE(SUM(blades_thrown), 0),
			COALESCE(SUM(pickups), 0),
			COALESCE(SUM(revived), 0),
			COALESCE(SUM(ticks), 0)
		FROM runs
	`).Scan(&st.Runs, &st.BestScore, &st.BestLevel, &st.TotalScore,
		&st.BladesThrown, &st.Pickups, &st.Revived, &st.TotalTicks)
	if err != nil {
		return RunStats{}, fmt.Errorf("run stats: %w", err)
	}
	return st, nil
}
