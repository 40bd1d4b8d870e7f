package engine

import "math"

// Blade is a blade stuck in the target. Angle is in the target frame and
// never changes after the blade is appended.
type Blade struct {
	Angle  float64
	Length float64
}

// Pickup is a collectible on the rim, removed when collected.
type Pickup struct {
	Angle float64
}

// Target is the rotating log.
type Target struct {
	Rotation     float64 // always in [0, 2π)
	Speed        float64 // radians per tick
	Direction    int     // +1 or -1
	Radius       float64
	Blades       []Blade
	Pickups      []Pickup
	ReverseTimer int
	PauseTimer   int
}

// Perturbation reports a random rotation change triggered by Advance.
type Perturbation struct {
	Flipped bool
	Pause   int // ticks, 0 when no pause started
}

// newTarget lays out a fresh target for a level.
func newTarget(cfg LevelConfig, t Tuning) Target {
	tg := Target{
		Speed:     cfg.RotationSpeed,
		Direction: cfg.Direction,
		Radius:    t.Radius,
	}
	if tg.Direction == 0 {
		tg.Direction = 1
	}
	for _, a := range cfg.SeedAngles {
		tg.Blades = append(tg.Blades, Blade{Angle: NormalizeAngle(a), Length: t.StuckBladeLength})
	}
	for _, a := range cfg.PickupAngles {
		tg.Pickups = append(tg.Pickups, Pickup{Angle: NormalizeAngle(a)})
	}
	return tg
}

// Advance moves the target by one tick.
//
// A pending pause consumes the tick without rotating. Otherwise the target
// rotates and, above the perturbation level, may flip direction or start a
// pause. Perturbations never trigger while paused.
func (tg *Target) Advance(level int, t Tuning, rng RandomSource) Perturbation {
	if tg.ReverseTimer > 0 {
		tg.ReverseTimer--
	}
	if tg.PauseTimer > 0 {
		tg.PauseTimer--
		return Perturbation{}
	}

	tg.Rotation = NormalizeAngle(tg.Rotation + tg.Speed*float64(tg.Direction))

	if level <= t.PerturbAboveLevel || rng == nil {
		return Perturbation{}
	}
	n := level - t.PerturbAboveLevel - 1
	if rng.Float64() < t.FlipChance.At(n) {
		tg.Direction = -tg.Direction
		tg.ReverseTimer = t.ReverseTicks
		return Perturbation{Flipped: true}
	}
	if rng.Float64() < t.PauseChance.At(n) {
		longest := t.PauseTicks.At(n)
		ticks := int(math.Round(longest/2 + rng.Float64()*longest/2))
		if ticks < 1 {
			ticks = 1
		}
		tg.PauseTimer = ticks
		return Perturbation{Pause: ticks}
	}
	return Perturbation{}
}

// BladeAngles returns the stuck-blade angles in insertion order.
func (tg *Target) BladeAngles() []float64 {
	out := make([]float64, len(tg.Blades))
	for i, b := range tg.Blades {
		out[i] = b.Angle
	}
	return out
}
