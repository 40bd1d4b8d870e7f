package engine

import "math"

// ParticleKind selects the burst a particle came from.
type ParticleKind int

const (
	ParticleHit ParticleKind = iota
	ParticlePickup
	ParticleExplosion
)

// Particle is a decaying feedback particle.
type Particle struct {
	Kind   ParticleKind
	X, Y   float64
	VX, VY float64
	Life   float64 // 1 at spawn, removed at 0
}

// CoinPopup is a floating "+N" label.
type CoinPopup struct {
	Amount int
	Life   float64
}

// Effects holds render-only feedback. Nothing in it feeds back into play.
type Effects struct {
	Shake     float64 // normalized [0,1]
	Flash     float64 // normalized [0,1]
	Particles []Particle
	Popups    []CoinPopup
}

// decay advances every effect by one tick.
func (fx *Effects) decay(t Tuning) {
	fx.Shake = decayIntensity(fx.Shake, t.EffectDecay)
	fx.Flash = decayIntensity(fx.Flash, t.EffectDecay)

	live := fx.Particles[:0]
	for _, p := range fx.Particles {
		p.X += p.VX
		p.Y += p.VY
		p.VY += t.ParticleGravity
		p.Life -= t.ParticleFade
		if p.Life > 0 {
			live = append(live, p)
		}
	}
	fx.Particles = live

	popups := fx.Popups[:0]
	for _, c := range fx.Popups {
		c.Life -= t.ParticleFade
		if c.Life > 0 {
			popups = append(popups, c)
		}
	}
	fx.Popups = popups
}

func decayIntensity(v, factor float64) float64 {
	v *= factor
	if v < 0.01 {
		return 0
	}
	return v
}

func (fx *Effects) shake(v float64) {
	fx.Shake = clamp01(math.Max(fx.Shake, v))
}

func (fx *Effects) flash(v float64) {
	fx.Flash = clamp01(math.Max(fx.Flash, v))
}

// burst spawns n particles radiating from (x, y). Spread is deterministic
// so effects never consume the game's random source.
func (fx *Effects) burst(kind ParticleKind, x, y float64, n int) {
	speed := 4.0
	if kind == ParticleExplosion {
		speed = 7.5
	}
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		s := speed * (1 + float64(i%3)/4)
		fx.Particles = append(fx.Particles, Particle{
			Kind: kind,
			X:    x,
			Y:    y,
			VX:   math.Cos(a) * s,
			VY:   math.Sin(a) * s,
			Life: 1,
		})
	}
}

func (fx *Effects) popup(amount int) {
	if amount <= 0 {
		return
	}
	fx.Popups = append(fx.Popups, CoinPopup{Amount: amount, Life: 1})
}

func (fx *Effects) clone() Effects {
	return Effects{
		Shake:     fx.Shake,
		Flash:     fx.Flash,
		Particles: append([]Particle(nil), fx.Particles...),
		Popups:    append([]CoinPopup(nil), fx.Popups...),
	}
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
