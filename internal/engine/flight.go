package engine

import "math"

// BladeState is the lifecycle state of the thrown blade.
type BladeState int

const (
	BladeIdle BladeState = iota
	BladeInFlight
	BladeStuck
)

func (s BladeState) String() string {
	switch s {
	case BladeIdle:
		return "idle"
	case BladeInFlight:
		return "in_flight"
	case BladeStuck:
		return "stuck"
	default:
		return "unknown"
	}
}

// ThrownBlade is the player's projectile. Coordinates are relative to the
// target centre with y growing downwards; the blade waits below the target
// and travels straight up.
type ThrownBlade struct {
	X, Y   float64
	VX, VY float64
	State  BladeState
}

// newThrownBlade returns an idle blade at the spawn point.
func newThrownBlade(t Tuning) ThrownBlade {
	return ThrownBlade{Y: t.SpawnDistance, State: BladeIdle}
}

// launch puts an idle blade in flight. It reports false for any other state.
func (b *ThrownBlade) launch(t Tuning) bool {
	if b.State != BladeIdle {
		return false
	}
	b.VX, b.VY = 0, -t.ThrowSpeed
	b.State = BladeInFlight
	return true
}

// Advance moves an in-flight blade one tick and reports arrival: the blade
// tip is within radius + tolerance of the target centre.
func (b *ThrownBlade) Advance(t Tuning) bool {
	if b.State != BladeInFlight {
		return false
	}
	b.X += b.VX
	b.Y += b.VY
	return b.tipDistance(t) <= t.Radius+t.ArrivalTolerance
}

func (b *ThrownBlade) tipDistance(t Tuning) float64 {
	return math.Hypot(b.X, b.Y-t.BladeHeight/2)
}

// StrikeAngle converts the blade position into the target's rotating frame.
func (b *ThrownBlade) StrikeAngle(rotation float64) float64 {
	return NormalizeAngle(math.Atan2(b.Y, b.X) - rotation)
}

// arrivalProbe flies a blade from the spawn point and returns the number
// of advances until arrival together with the blade at that moment.
func arrivalProbe(t Tuning) (int, ThrownBlade) {
	probe := newThrownBlade(t)
	probe.launch(t)
	for n := 1; n <= 10000; n++ {
		if probe.Advance(t) {
			return n, probe
		}
	}
	return 0, probe
}
