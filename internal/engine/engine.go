package engine

import (
	"context"
	"io"
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/roach88/knifehit/internal/economy"
	"github.com/roach88/knifehit/internal/ir"
)

// Engine is one play session: target, thrown blade, session counters and
// the economy that owns the player's profile.
//
// Thread-safety model:
//   - Step, Snapshot and every other method: owner goroutine only
//   - the done callback handed to Monetization.ShowRewarded: any goroutine
//   - Tick: any goroutine
//
// Several engines may coexist; there is no package-level state.
type Engine struct {
	tuning Tuning
	rng    RandomSource
	seed   uint64
	levels *LevelGenerator
	econ   *economy.Economy
	store  Checkpointer
	ads    Monetization
	runIDs RunIDGenerator
	clock  *TickClock
	logger *slog.Logger

	arrivalTicks int
	arrivalAt    ThrownBlade

	session  Session
	level    LevelConfig
	target   Target
	blade    ThrownBlade
	cooldown int
	effects  Effects

	revivePending bool
	reviveGranted atomic.Bool
	adShown       bool

	events []ir.TraceEvent
	err    error
}

// Option configures an Engine.
type Option func(*Engine)

// WithTuning replaces the default tuning tables.
func WithTuning(t Tuning) Option {
	return func(e *Engine) {
		e.tuning = t
	}
}

// WithSeed makes level layouts and perturbations reproducible.
// The seed is recorded in the run history.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.seed = seed
		e.rng = NewSeededRNG(seed)
	}
}

// WithRandom injects a random source directly. Runs recorded with it
// carry whatever seed was last set with WithSeed (0 by default).
func WithRandom(rng RandomSource) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithCheckpointer sets where checkpoints are persisted.
func WithCheckpointer(c Checkpointer) Option {
	return func(e *Engine) {
		e.store = c
	}
}

// WithMonetization wires the ad hook. Without it revives are immediate
// and interstitials are skipped.
func WithMonetization(m Monetization) Option {
	return func(e *Engine) {
		e.ads = m
	}
}

// WithRunIDs sets the run ID generator.
func WithRunIDs(g RunIDGenerator) Option {
	return func(e *Engine) {
		e.runIDs = g
	}
}

// WithClock sets the tick clock, for resuming at a known tick.
func WithClock(c *TickClock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an engine in the start state. A nil economy starts from the
// default profile.
func New(econ *economy.Economy, opts ...Option) *Engine {
	if econ == nil {
		econ = economy.New(economy.DefaultProfile())
	}
	e := &Engine{
		tuning: DefaultTuning(),
		econ:   econ,
		runIDs: UUIDv7Generator{},
		clock:  NewTickClock(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.seed = NewSeed()
		e.rng = NewSeededRNG(e.seed)
	}

	e.levels = NewLevelGenerator(e.tuning, e.rng)
	e.arrivalTicks, e.arrivalAt = arrivalProbe(e.tuning)
	e.session = newSession(0)
	e.target = Target{Radius: e.tuning.Radius, Direction: 1}
	e.blade = newThrownBlade(e.tuning)
	return e
}

// Step advances the simulation by one tick with the input sampled for it
// and returns the trace events the tick produced.
//
// Within a tick: a granted revive is applied, effects decay, the input is
// applied, then (while playing) the target rotates, the cooldown runs and
// the blade flies.
func (e *Engine) Step(ctx context.Context, in Input) []ir.TraceEvent {
	e.events = nil
	e.clock.Next()

	if e.reviveGranted.Swap(false) && e.revivePending {
		e.revive()
	}
	e.effects.decay(e.tuning)

	e.handleInput(ctx, in)
	if e.session.State == StatePlaying {
		e.advance(ctx)
	}
	return e.events
}

func (e *Engine) handleInput(ctx context.Context, in Input) {
	switch e.session.State {
	case StateStart:
		if in == InputStart || in == InputTap {
			e.startRun()
		}
	case StatePlaying:
		if in == InputTap {
			e.throw()
		}
	case StateStageClear:
		if in == InputAcknowledge || in == InputTap {
			e.nextLevel()
		}
	case StateGameOver:
		switch in {
		case InputRevive:
			e.requestRevive()
		case InputRetry:
			e.emit(ir.EventRetry, 0, "", 0)
			e.session = newSession(e.session.GamesPlayed)
			e.startRun()
		}
	}
}

func (e *Engine) startRun() {
	e.session = newSession(e.session.GamesPlayed + 1)
	e.session.State = StatePlaying
	e.session.RunID = e.runIDs.Generate()
	e.econ.ResetSession()
	e.effects = Effects{}
	e.revivePending = false
	e.reviveGranted.Store(false)
	e.adShown = false
	e.loadLevel(1)

	e.logger.Info("run started", "run_id", e.session.RunID, "games_played", e.session.GamesPlayed)
	e.emit(ir.EventStart, 0, "", 0)
}

func (e *Engine) loadLevel(level int) {
	dir := e.target.Direction
	if level == 1 || dir == 0 {
		dir = 1
	}
	e.level = e.levels.Generate(level)
	e.target = newTarget(e.level, e.tuning)
	if e.level.Direction == 0 {
		e.target.Direction = dir
	}
	e.blade = newThrownBlade(e.tuning)
	e.cooldown = 0
	e.session.Level = level
	e.session.BladesRemaining = e.level.BladesRequired
	e.session.PickupsThisLevel = 0
}

func (e *Engine) nextLevel() {
	e.loadLevel(e.session.Level + 1)
	e.session.State = StatePlaying
	e.logger.Debug("level started",
		"level", e.level.Level,
		"boss", e.level.IsBoss,
		"quota", e.level.BladesRequired,
		"speed", e.level.RotationSpeed,
	)
	e.emit(ir.EventNextLevel, 0, "", 0)
}

// throw launches the blade. Taps while a blade is in flight or the
// cooldown is running are inert.
func (e *Engine) throw() {
	if e.cooldown > 0 || !e.blade.launch(e.tuning) {
		return
	}
	e.session.RunBladesThrown++
	e.session.pendingBlades++
	e.emit(ir.EventThrow, 0, "", 0)
}

func (e *Engine) advance(ctx context.Context) {
	p := e.target.Advance(e.session.Level, e.tuning, e.rng)
	if p.Flipped {
		e.emit(ir.EventDirectionFlip, 0, "", e.target.Direction)
	}
	if p.Pause > 0 {
		e.emit(ir.EventPause, 0, "", p.Pause)
	}

	if e.cooldown > 0 {
		e.cooldown--
		if e.cooldown == 0 {
			e.blade = newThrownBlade(e.tuning)
		}
	}

	if e.blade.Advance(e.tuning) {
		e.resolve(ctx)
	}
}

// resolve classifies an arrived blade and applies the outcome.
func (e *Engine) resolve(ctx context.Context) {
	theta := e.blade.StrikeAngle(e.target.Rotation)
	c := Classify(theta, e.target.Blades, e.target.Pickups,
		e.tuning.CollisionThreshold(e.session.Level), e.tuning.PickupThreshold)

	switch c.Outcome {
	case OutcomeCollision:
		e.collide(ctx, theta)
	case OutcomeCollected:
		// highest index first so earlier indices stay valid
		for i := len(c.Pickups) - 1; i >= 0; i-- {
			e.collect(c.Pickups[i], theta)
		}
		e.stick(ctx, theta)
	default:
		e.stick(ctx, theta)
	}
}

func (e *Engine) collect(idx int, theta float64) {
	e.target.Pickups = append(e.target.Pickups[:idx], e.target.Pickups[idx+1:]...)

	s := &e.session
	s.Score += e.tuning.PickupScore
	s.PickupsThisLevel++
	s.RunPickups++
	s.pendingPickups++
	s.pendingCoins += e.tuning.PickupCoins

	x, y := e.rimPoint(theta)
	e.effects.burst(ParticlePickup, x, y, e.tuning.PickupParticles)
	e.effects.flash(e.tuning.FlashOnPickup)
	e.effects.popup(e.tuning.PickupCoins)

	e.emit(ir.EventPickup, theta, "", e.tuning.PickupCoins)
}

func (e *Engine) stick(ctx context.Context, theta float64) {
	e.target.Blades = append(e.target.Blades, Blade{Angle: theta, Length: e.tuning.StuckBladeLength})
	e.blade.State = BladeStuck

	s := &e.session
	s.BladesRemaining--
	s.Score += e.tuning.StickScore

	x, y := e.rimPoint(theta)
	e.effects.burst(ParticleHit, x, y, e.tuning.HitParticles)
	e.effects.shake(e.tuning.ShakeOnStick)
	e.effects.flash(e.tuning.FlashOnStick)

	e.logger.Debug("blade stuck", "level", s.Level, "angle", theta, "remaining", s.BladesRemaining)
	e.emit(ir.EventStick, theta, "", 0)

	if s.BladesRemaining <= 0 {
		s.BladesRemaining = 0
		e.clearStage(ctx)
		return
	}
	if e.tuning.CooldownTicks <= 0 {
		e.blade = newThrownBlade(e.tuning)
		return
	}
	e.cooldown = e.tuning.CooldownTicks
}

func (e *Engine) clearStage(ctx context.Context) {
	s := &e.session
	bonus := e.tuning.StageBonusPerLevel*s.Level + e.tuning.StageBonusPerPickup*s.PickupsThisLevel
	s.Score += bonus
	s.State = StateStageClear

	e.logger.Info("stage clear", "level", s.Level, "score", s.Score, "bonus", bonus)
	e.emit(ir.EventStageClear, 0, "", bonus)
	e.checkpoint(ctx, e.tuning.StageCoinsPerLevel*s.Level)
}

func (e *Engine) collide(ctx context.Context, theta float64) {
	e.effects.shake(e.tuning.ShakeOnGameOver)
	e.effects.flash(1)
	e.effects.burst(ParticleExplosion, e.blade.X, e.blade.Y-e.tuning.BladeHeight/2, e.tuning.ExplosionParticles)
	e.blade = newThrownBlade(e.tuning)
	e.cooldown = 0

	e.emit(ir.EventCollision, theta, "", 0)

	s := &e.session
	s.State = StateGameOver
	e.logger.Info("game over", "run_id", s.RunID, "level", s.Level, "score", s.Score, "can_revive", s.CanRevive)
	e.emit(ir.EventGameOver, 0, "collision", 0)
	e.checkpoint(ctx, 0)
}

// checkpoint folds the run into the profile and persists it. It runs on
// entering stage clear or game over and nowhere else.
func (e *Engine) checkpoint(ctx context.Context, stageCoins int) {
	s := &e.session
	gameOver := s.State == StateGameOver

	progress := economy.Progress{BladesThrown: s.pendingBlades, Pickups: s.pendingPickups}
	if gameOver && !s.runCounted {
		progress.GamesPlayed = 1
		s.runCounted = true
	}
	e.econ.AddProgress(progress)
	s.pendingBlades, s.pendingPickups = 0, 0

	if e.econ.UpdateBestStage(s.Level) {
		e.logger.Info("new best stage", "level", s.Level)
	}

	coins := s.pendingCoins + stageCoins
	s.pendingCoins = 0
	if coins > 0 {
		award := e.econ.AwardCoins(coins)
		e.effects.popup(stageCoins)
		e.emit(ir.EventCoins, 0, "", award.Amount)
	}

	for _, u := range e.econ.EvaluateAchievements() {
		e.effects.popup(u.Reward)
		e.logger.Info("achievement unlocked", "id", u.ID, "reward", u.Reward)
		e.emit(ir.EventAchievement, 0, string(u.ID), u.Reward)
	}

	e.persist(ctx)

	if !gameOver {
		return
	}
	e.recordRun(ctx)
	if e.ads != nil && !e.adShown && e.tuning.InterstitialEvery > 0 &&
		s.GamesPlayed%e.tuning.InterstitialEvery == 0 {
		e.adShown = true
		e.emit(ir.EventInterstitial, 0, "", 0)
		e.ads.ShowInterstitial()
	}
}

func (e *Engine) persist(ctx context.Context) {
	if e.store == nil {
		return
	}
	if err := e.store.SaveProfile(ctx, e.econ.Record()); err != nil {
		e.fail(OpSaveProfile, err)
	}
}

func (e *Engine) recordRun(ctx context.Context) {
	if e.store == nil {
		return
	}
	if err := e.store.RecordRun(ctx, e.RunSummary()); err != nil {
		e.fail(OpRecordRun, err)
	}
}

func (e *Engine) fail(op CheckpointOp, err error) {
	e.err = &CheckpointError{Op: op, State: e.session.State, Level: e.session.Level, Err: err}
	e.logger.Error("checkpoint failed",
		"op", string(op),
		"run_id", e.session.RunID,
		"level", e.session.Level,
		"error", err,
	)
}

// requestRevive asks for the one revive of the run. With an ad hook the
// revive waits for the rewarded callback; without one it is immediate.
func (e *Engine) requestRevive() {
	if !e.session.CanRevive || e.revivePending {
		return
	}
	e.revivePending = true
	if e.ads == nil {
		e.revive()
		return
	}
	e.ads.ShowRewarded(func() {
		e.reviveGranted.Store(true)
	})
}

// revive resumes a game-over run with a small blade grant. Rotation and
// stuck blades are preserved.
func (e *Engine) revive() {
	e.revivePending = false
	s := &e.session
	if s.State != StateGameOver || !s.CanRevive {
		return
	}
	s.CanRevive = false
	s.Revived = true
	s.BladesRemaining = e.tuning.ReviveBlades
	s.State = StatePlaying
	e.blade = newThrownBlade(e.tuning)
	e.cooldown = 0

	e.logger.Info("run revived", "run_id", s.RunID, "level", s.Level)
	e.emit(ir.EventRevive, 0, "", e.tuning.ReviveBlades)
}

// PredictStrike reports where a blade thrown on the next tick would land
// and how it would be classified, assuming no perturbation fires during
// the flight. ok is false when a throw would be inert.
func (e *Engine) PredictStrike() (theta float64, c Classification, ok bool) {
	if e.session.State != StatePlaying || e.cooldown > 0 || e.blade.State != BladeIdle || e.arrivalTicks == 0 {
		return 0, Classification{}, false
	}
	turning := e.arrivalTicks - min(e.target.PauseTimer, e.arrivalTicks)
	rotation := NormalizeAngle(e.target.Rotation + e.target.Speed*float64(e.target.Direction)*float64(turning))
	theta = e.arrivalAt.StrikeAngle(rotation)
	c = Classify(theta, e.target.Blades, e.target.Pickups,
		e.tuning.CollisionThreshold(e.session.Level), e.tuning.PickupThreshold)
	return theta, c, true
}

// RunSummary describes the current run for the run history.
func (e *Engine) RunSummary() ir.RunSummary {
	return ir.RunSummary{
		ID:           e.session.RunID,
		Seed:         e.seed,
		Level:        e.session.Level,
		Score:        e.session.Score,
		BladesThrown: e.session.RunBladesThrown,
		Pickups:      e.session.RunPickups,
		Revived:      e.session.Revived,
		Ticks:        e.clock.Current(),
	}
}

// rimPoint returns the playfield position of a target-frame angle on the rim.
func (e *Engine) rimPoint(theta float64) (float64, float64) {
	a := theta + e.target.Rotation
	return e.target.Radius * math.Cos(a), e.target.Radius * math.Sin(a)
}

func (e *Engine) emit(kind ir.EventKind, angle float64, detail string, amount int) {
	e.events = append(e.events, ir.TraceEvent{
		Tick:            e.clock.Current(),
		Kind:            kind,
		Level:           e.session.Level,
		Score:           e.session.Score,
		BladesRemaining: e.session.BladesRemaining,
		AngleMilli:      ir.Milli(angle),
		Detail:          detail,
		Amount:          amount,
	})
}

// Session returns a copy of the session state.
func (e *Engine) Session() Session { return e.session }

// Level returns the configuration of the current level.
func (e *Engine) Level() LevelConfig { return e.level }

// Economy returns the economy that owns the profile.
func (e *Engine) Economy() *economy.Economy { return e.econ }

// Tuning returns the tuning tables in use.
func (e *Engine) Tuning() Tuning { return e.tuning }

// Seed returns the seed recorded with runs.
func (e *Engine) Seed() uint64 { return e.seed }

// Tick returns the current tick. Safe from any goroutine.
func (e *Engine) Tick() int64 { return e.clock.Current() }

// Err returns the most recent checkpoint failure, or nil.
func (e *Engine) Err() error { return e.err }
