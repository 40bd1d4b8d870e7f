package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/knifehit/internal/economy"
	"github.com/roach88/knifehit/internal/engine"
	"github.com/roach88/knifehit/internal/ir"
	"github.com/roach88/knifehit/internal/testutil"
	"github.com/roach88/knifehit/internal/tuning"
)

// errFailSaves is returned by every checkpoint write when a scenario sets
// fail_saves.
var errFailSaves = errors.New("checkpoint writes disabled by scenario")

// Harness executes one scenario against a real engine.
type Harness struct {
	engine *engine.Engine
	store  *testutil.MemoryCheckpointer
	ads    *testutil.FakeMonetization
	logger *slog.Logger
	ticks  int
}

// Run executes a scenario and returns the result.
//
// Each scenario gets a fresh engine, a memory checkpointer and a fixed run
// ID generator, so equal scenarios produce equal traces.
//
// Execution flow:
//  1. Load tuning and the starting profile
//  2. Execute steps, collecting trace events
//  3. Check the expect clause against the final state
//  4. Evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is Run with engine logs sent to logger.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	h, err := newHarness(scenario, logger)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	result := NewResult()

	for i, step := range scenario.Steps {
		if err := h.executeStep(ctx, step, result); err != nil {
			result.AddError(fmt.Sprintf("steps[%d]: %v", i, err))
			break
		}
	}

	result.Ticks = h.ticks
	result.State = h.finalState()
	result.profile = h.store.LastProfile()
	result.runs = h.store.Runs()

	hash, err := ir.TraceHash(result.Trace)
	if err != nil {
		return nil, fmt.Errorf("hash trace: %w", err)
	}
	result.TraceHash = hash

	for _, msg := range checkExpect(scenario.Expect, result.State) {
		result.AddError(msg)
	}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

func newHarness(s *Scenario, logger *slog.Logger) (*Harness, error) {
	t := engine.DefaultTuning()
	if s.Tuning != "" {
		loaded, err := tuning.Load(s.Tuning)
		if err != nil {
			return nil, fmt.Errorf("failed to load tuning: %w", err)
		}
		t = loaded
	}

	profile, fieldErrs := economy.DecodeProfile(economy.Record(s.Profile))
	if len(fieldErrs) > 0 {
		return nil, fmt.Errorf("invalid starting profile: %w", fieldErrs[0])
	}

	h := &Harness{
		store:  testutil.NewMemoryCheckpointer(),
		logger: logger,
	}
	if s.FailSaves {
		h.store.SaveErr = errFailSaves
		h.store.RunErr = errFailSaves
	}

	runIDs := engine.NewFixedGenerator()
	if s.RunID != "" {
		runIDs = engine.NewFixedGenerator(s.RunID)
	}

	opts := []engine.Option{
		engine.WithTuning(t),
		engine.WithSeed(s.Seed),
		engine.WithCheckpointer(h.store),
		engine.WithRunIDs(runIDs),
		engine.WithLogger(logger),
	}
	if s.Ads != nil {
		h.ads = &testutil.FakeMonetization{AutoGrant: s.Ads.AutoGrant}
		opts = append(opts, engine.WithMonetization(h.ads))
	}

	h.engine = engine.New(economy.New(profile), opts...)
	return h, nil
}

// executeStep feeds one step's inputs to the engine.
func (h *Harness) executeStep(ctx context.Context, st Step, result *Result) error {
	if st.Grant {
		if h.ads == nil {
			return fmt.Errorf("grant requires an ads section")
		}
		h.ads.Grant()
	}
	if st.Input == "" {
		return nil
	}

	if st.Until != "" {
		limit := st.MaxTicks
		if limit == 0 {
			limit = DefaultMaxTicks
		}
		for i := 0; i < limit; i++ {
			events := h.tick(ctx, st.Input)
			result.AddEvents(events)
			if containsKind(events, ir.EventKind(st.Until)) {
				return nil
			}
		}
		return fmt.Errorf("%s not emitted within %d ticks", st.Until, limit)
	}

	n := st.Repeat
	if n == 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		result.AddEvents(h.tick(ctx, st.Input))
	}
	return nil
}

func (h *Harness) tick(ctx context.Context, name string) []ir.TraceEvent {
	var in engine.Input
	if name == InputAuto {
		in = engine.Autopilot(h.engine)
	} else {
		in, _ = engine.ParseInput(name)
	}
	h.ticks++
	events := h.engine.Step(ctx, in)
	h.logger.Debug("tick", "input", in.String(), "events", len(events))
	return events
}

// finalState flattens the session and profile for expect clauses.
func (h *Harness) finalState() map[string]any {
	sess := h.engine.Session()
	p := h.engine.Economy().Profile()

	state := map[string]any{
		"state":                   sess.State.String(),
		"level":                   sess.Level,
		"score":                   sess.Score,
		"blades_remaining":        sess.BladesRemaining,
		"can_revive":              sess.CanRevive,
		"revived":                 sess.Revived,
		"games_played":            sess.GamesPlayed,
		"run_blades_thrown":       sess.RunBladesThrown,
		"run_pickups":             sess.RunPickups,
		"coins":                   p.Coins,
		"session_coins":           h.engine.Economy().SessionCoins(),
		"best_stage":              p.BestStage,
		"total_games_played":      p.TotalGamesPlayed,
		"total_blades_thrown":     p.TotalBladesThrown,
		"total_pickups_collected": p.TotalPickupsCollected,
		"equipped_skin":           string(p.EquippedSkin),
		"achievements":            len(p.Achievements),
		"checkpoint_failed":       h.engine.Err() != nil,
		"saves":                   h.store.Saves(),
	}
	if h.ads != nil {
		state["interstitials"] = h.ads.Interstitials()
		state["rewarded"] = h.ads.Rewarded()
	}
	return state
}

func containsKind(events []ir.TraceEvent, kind ir.EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}
