package engine

import "math"

// LevelConfig describes one level. It is built fresh each time a level
// starts and never mutated afterwards.
type LevelConfig struct {
	Level           int
	BladesRequired  int
	RotationSpeed   float64
	IsBoss          bool
	PreSeededBlades int
	PickupCount     int

	// Direction is +1 or -1 when the level picks a rotation direction and
	// 0 when the target keeps spinning the way it did on the last level.
	Direction int
	// SeedAngles are pre-seeded stuck blades, target frame.
	SeedAngles []float64
	// PickupAngles are pickup positions, target frame.
	PickupAngles []float64
}

// LevelGenerator derives level configurations from the level index.
//
// Quotas and speeds are deterministic. Pickup angles, obstacle angles and
// the direction choice draw from the random source, in that order.
type LevelGenerator struct {
	tuning Tuning
	rng    RandomSource
}

// NewLevelGenerator creates a generator. A nil rng uses DefaultRNG.
func NewLevelGenerator(t Tuning, rng RandomSource) *LevelGenerator {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &LevelGenerator{tuning: t, rng: rng}
}

// rawQuota is the uncapped quota of a single level.
func (g *LevelGenerator) rawQuota(level int) int {
	if g.tuning.IsBossLevel(level) {
		return g.tuning.BossQuota.At(level)
	}
	return g.tuning.NormalQuota.At(level)
}

func (g *LevelGenerator) rawSpeed(level int) float64 {
	if g.tuning.IsBossLevel(level) {
		return g.tuning.BossSpeed.At(level)
	}
	return g.tuning.NormalSpeed.At(level)
}

// BladesRequired returns the blade quota for a level: the highest raw
// quota of any level up to and including it, capped at QuotaCap.
// The result is nondecreasing in level.
func (g *LevelGenerator) BladesRequired(level int) int {
	if level < 1 {
		level = 1
	}
	best := 0
	for l := 1; l <= level; l++ {
		if q := g.rawQuota(l); q > best {
			best = q
		}
		if best >= g.tuning.QuotaCap {
			return g.tuning.QuotaCap
		}
	}
	if best < 1 {
		best = 1
	}
	return best
}

// RotationSpeed returns the rotation speed for a level, built the same
// way as BladesRequired and capped at SpeedCap.
func (g *LevelGenerator) RotationSpeed(level int) float64 {
	if level < 1 {
		level = 1
	}
	best := 0.0
	for l := 1; l <= level; l++ {
		best = math.Max(best, g.rawSpeed(l))
		if best >= g.tuning.SpeedCap {
			return g.tuning.SpeedCap
		}
	}
	return best
}

// Obstacles returns how many blades a level starts with already stuck.
// Boss levels space them evenly; later normal levels scatter them.
func (g *LevelGenerator) Obstacles(level int) int {
	t := g.tuning
	if t.IsBossLevel(level) {
		return t.BossSeedBlades.At(level)
	}
	if level < t.ObstacleFromLevel || t.ObstacleEvery <= 0 {
		return 0
	}
	return min(1+(level-t.ObstacleFromLevel)/t.ObstacleEvery, t.ObstacleMax)
}

// Generate builds the configuration for a level.
func (g *LevelGenerator) Generate(level int) LevelConfig {
	if level < 1 {
		level = 1
	}
	t := g.tuning
	cfg := LevelConfig{
		Level:          level,
		BladesRequired: g.BladesRequired(level),
		RotationSpeed:  g.RotationSpeed(level),
		IsBoss:         t.IsBossLevel(level),
	}

	if cfg.IsBoss {
		n := g.Obstacles(level)
		for i := 0; i < n; i++ {
			cfg.SeedAngles = append(cfg.SeedAngles, 2*math.Pi*float64(i)/float64(n))
		}
		for i := 0; i < t.BossPickups; i++ {
			cfg.PickupAngles = append(cfg.PickupAngles, g.angle())
		}
	} else {
		if level >= t.PickupFromLevel && g.rng.Float64() < t.PickupChance {
			cfg.PickupAngles = append(cfg.PickupAngles, g.angle())
		}
		for i, n := 0, g.Obstacles(level); i < n; i++ {
			cfg.SeedAngles = append(cfg.SeedAngles, g.angle())
		}
		if level >= t.DirectionFromLevel && g.rng.Float64() < t.DirectionChance {
			cfg.Direction = 1
			if g.rng.Float64() < 0.5 {
				cfg.Direction = -1
			}
		}
	}

	cfg.PreSeededBlades = len(cfg.SeedAngles)
	cfg.PickupCount = len(cfg.PickupAngles)
	return cfg
}

func (g *LevelGenerator) angle() float64 {
	return g.rng.Float64() * 2 * math.Pi
}
