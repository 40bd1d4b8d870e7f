package engine

import (
	"fmt"
	"sort"
)

// QuotaCurve is a stepped blade-quota curve: Base + (level-Offset)/Every.
type QuotaCurve struct {
	Base   int `json:"base"`
	Every  int `json:"every"`
	Offset int `json:"offset"`
}

// At evaluates the curve for a level.
func (c QuotaCurve) At(level int) int {
	if c.Every <= 0 {
		return c.Base
	}
	n := level - c.Offset
	if n < 0 {
		n = 0
	}
	return c.Base + n/c.Every
}

// SpeedCurve is a linear rotation-speed curve in radians per tick.
type SpeedCurve struct {
	Base     float64 `json:"base"`
	PerLevel float64 `json:"per_level"`
}

// At evaluates the curve for a level.
func (c SpeedCurve) At(level int) float64 {
	return c.Base + c.PerLevel*float64(level)
}

// CollisionTier sets the collision threshold from a level onwards.
type CollisionTier struct {
	FromLevel int     `json:"from_level"`
	Threshold float64 `json:"threshold"`
}

// Ramp is a per-level probability or magnitude that grows from a start
// value and stops at a cap.
type Ramp struct {
	Start    float64 `json:"start"`
	PerLevel float64 `json:"per_level"`
	Max      float64 `json:"max"`
}

// At evaluates the ramp n levels past its start (n < 0 yields 0).
func (r Ramp) At(n int) float64 {
	if n < 0 {
		return 0
	}
	v := r.Start + r.PerLevel*float64(n)
	if v > r.Max {
		v = r.Max
	}
	return v
}

// Tuning holds every hand-tuned constant of the game.
//
// Lengths are in target-radius units of the original playfield, angles in
// radians and durations in ticks. The json tags double as the field names
// of the CUE tuning file.
type Tuning struct {
	// Geometry.
	Radius           float64 `json:"radius"`
	ArrivalTolerance float64 `json:"arrival_tolerance"`
	ThrowSpeed       float64 `json:"throw_speed"`
	SpawnDistance    float64 `json:"spawn_distance"`
	BladeHeight      float64 `json:"blade_height"`
	StuckBladeLength float64 `json:"stuck_blade_length"`

	// Collision.
	CollisionTiers  []CollisionTier `json:"collision_tiers"`
	PickupThreshold float64         `json:"pickup_threshold"`

	// Level curves.
	BossLevels         []int      `json:"boss_levels"`
	NormalQuota        QuotaCurve `json:"normal_quota"`
	BossQuota          QuotaCurve `json:"boss_quota"`
	QuotaCap           int        `json:"quota_cap"`
	NormalSpeed        SpeedCurve `json:"normal_speed"`
	BossSpeed          SpeedCurve `json:"boss_speed"`
	SpeedCap           float64    `json:"speed_cap"`
	BossSeedBlades     QuotaCurve `json:"boss_seed_blades"`
	BossPickups        int        `json:"boss_pickups"`
	PickupFromLevel    int        `json:"pickup_from_level"`
	PickupChance       float64    `json:"pickup_chance"`
	ObstacleFromLevel  int        `json:"obstacle_from_level"`
	ObstacleEvery      int        `json:"obstacle_every"`
	ObstacleMax        int        `json:"obstacle_max"`
	DirectionFromLevel int        `json:"direction_from_level"`
	DirectionChance    float64    `json:"direction_chance"`

	// Rotation perturbations, enabled above PerturbAboveLevel.
	PerturbAboveLevel int  `json:"perturb_above_level"`
	FlipChance        Ramp `json:"flip_chance"`
	ReverseTicks      int  `json:"reverse_ticks"`
	PauseChance       Ramp `json:"pause_chance"`
	PauseTicks        Ramp `json:"pause_ticks"`

	// Scoring and economy.
	StickScore          int `json:"stick_score"`
	PickupScore         int `json:"pickup_score"`
	StageBonusPerLevel  int `json:"stage_bonus_per_level"`
	StageBonusPerPickup int `json:"stage_bonus_per_pickup"`
	PickupCoins         int `json:"pickup_coins"`
	StageCoinsPerLevel  int `json:"stage_coins_per_level"`

	// Session.
	ReviveBlades      int `json:"revive_blades"`
	CooldownTicks     int `json:"cooldown_ticks"`
	InterstitialEvery int `json:"interstitial_every"`

	// Feedback.
	EffectDecay        float64 `json:"effect_decay"`
	ShakeOnStick       float64 `json:"shake_on_stick"`
	ShakeOnGameOver    float64 `json:"shake_on_game_over"`
	FlashOnStick       float64 `json:"flash_on_stick"`
	FlashOnPickup      float64 `json:"flash_on_pickup"`
	HitParticles       int     `json:"hit_particles"`
	PickupParticles    int     `json:"pickup_particles"`
	ExplosionParticles int     `json:"explosion_particles"`
	ParticleGravity    float64 `json:"particle_gravity"`
	ParticleFade       float64 `json:"particle_fade"`
}

// DefaultTuning returns the stock game constants.
func DefaultTuning() Tuning {
	return Tuning{
		Radius:           80,
		ArrivalTolerance: 10,
		ThrowSpeed:       25,
		SpawnDistance:    300,
		BladeHeight:      70,
		StuckBladeLength: 50,

		CollisionTiers:  []CollisionTier{{FromLevel: 1, Threshold: 0.2}},
		PickupThreshold: 0.3,

		BossLevels:         []int{5, 10, 15, 20, 25},
		NormalQuota:        QuotaCurve{Base: 5, Every: 3, Offset: 1},
		BossQuota:          QuotaCurve{Base: 8, Every: 5},
		QuotaCap:           15,
		NormalSpeed:        SpeedCurve{Base: 0.015, PerLevel: 0.003},
		BossSpeed:          SpeedCurve{Base: 0.025, PerLevel: 0.002},
		SpeedCap:           0.08,
		BossSeedBlades:     QuotaCurve{Base: 3, Every: 10},
		BossPickups:        2,
		PickupFromLevel:    3,
		PickupChance:       0.3,
		ObstacleFromLevel:  8,
		ObstacleEvery:      4,
		ObstacleMax:        4,
		DirectionFromLevel: 4,
		DirectionChance:    0.3,

		PerturbAboveLevel: 5,
		FlipChance:        Ramp{Start: 0.002, PerLevel: 0.0002, Max: 0.006},
		ReverseTicks:      30,
		PauseChance:       Ramp{Start: 0.001, PerLevel: 0.0001, Max: 0.003},
		PauseTicks:        Ramp{Start: 20, PerLevel: 2, Max: 60},

		StickScore:          10,
		PickupScore:         50,
		StageBonusPerLevel:  50,
		StageBonusPerPickup: 100,
		PickupCoins:         5,
		StageCoinsPerLevel:  5,

		ReviveBlades:      3,
		CooldownTicks:     9,
		InterstitialEvery: 3,

		EffectDecay:        0.9,
		ShakeOnStick:       0.4,
		ShakeOnGameOver:    1,
		FlashOnStick:       0.6,
		FlashOnPickup:      0.8,
		HitParticles:       10,
		PickupParticles:    15,
		ExplosionParticles: 30,
		ParticleGravity:    0.3,
		ParticleFade:       0.02,
	}
}

// CollisionThreshold returns the collision threshold for a level: the
// threshold of the last tier whose FromLevel is at or below level.
func (t Tuning) CollisionThreshold(level int) float64 {
	threshold := 0.0
	from := -1
	for _, tier := range t.CollisionTiers {
		if tier.FromLevel <= level && tier.FromLevel > from {
			threshold = tier.Threshold
			from = tier.FromLevel
		}
	}
	return threshold
}

// IsBossLevel reports whether level is on the boss schedule.
func (t Tuning) IsBossLevel(level int) bool {
	for _, b := range t.BossLevels {
		if b == level {
			return true
		}
	}
	return false
}

// Validate checks the structural constraints the engine relies on.
func (t Tuning) Validate() error {
	switch {
	case t.Radius <= 0:
		return fmt.Errorf("radius must be positive, got %g", t.Radius)
	case t.ThrowSpeed <= 0:
		return fmt.Errorf("throw_speed must be positive, got %g", t.ThrowSpeed)
	case t.SpawnDistance-t.BladeHeight/2 <= t.Radius+t.ArrivalTolerance:
		return fmt.Errorf("spawn_distance %g puts the blade tip inside the arrival radius", t.SpawnDistance)
	case t.QuotaCap < 1:
		return fmt.Errorf("quota_cap must be at least 1, got %d", t.QuotaCap)
	case t.SpeedCap <= 0:
		return fmt.Errorf("speed_cap must be positive, got %g", t.SpeedCap)
	case len(t.CollisionTiers) == 0:
		return fmt.Errorf("collision_tiers must not be empty")
	case t.PickupThreshold < 0:
		return fmt.Errorf("pickup_threshold must not be negative, got %g", t.PickupThreshold)
	case t.EffectDecay < 0 || t.EffectDecay >= 1:
		return fmt.Errorf("effect_decay must be in [0,1), got %g", t.EffectDecay)
	}
	if !sort.IntsAreSorted(t.BossLevels) {
		return fmt.Errorf("boss_levels must be ascending")
	}
	if err := t.validateTiers(); err != nil {
		return err
	}
	if first := t.CollisionThreshold(1); t.PickupThreshold <= first {
		return fmt.Errorf("pickup_threshold %g must be wider than the level 1 collision threshold %g", t.PickupThreshold, first)
	}
	return nil
}

// validateTiers requires tiers that cover level 1 with a positive
// threshold and never widen as the level rises.
func (t Tuning) validateTiers() error {
	tiers := append([]CollisionTier(nil), t.CollisionTiers...)
	sort.SliceStable(tiers, func(i, j int) bool { return tiers[i].FromLevel < tiers[j].FromLevel })

	if tiers[0].FromLevel > 1 {
		return fmt.Errorf("collision_tiers must start at level 1, first tier starts at %d", tiers[0].FromLevel)
	}
	for i, tier := range tiers {
		if tier.Threshold <= 0 {
			return fmt.Errorf("collision_tiers: threshold from level %d must be positive, got %g", tier.FromLevel, tier.Threshold)
		}
		if i > 0 && tier.Threshold > tiers[i-1].Threshold {
			return fmt.Errorf("collision_tiers: threshold from level %d widens from %g to %g", tier.FromLevel, tiers[i-1].Threshold, tier.Threshold)
		}
	}
	return nil
}
