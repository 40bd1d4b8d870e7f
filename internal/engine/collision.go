package engine

import "math"

// Outcome classifies a blade arrival.
type Outcome int

const (
	// OutcomeStick means the blade embeds cleanly.
	OutcomeStick Outcome = iota + 1
	// OutcomeCollected means the blade grazed a pickup; it still sticks.
	OutcomeCollected
	// OutcomeCollision means the blade hit a stuck blade.
	OutcomeCollision
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStick:
		return "stick"
	case OutcomeCollected:
		return "collected"
	case OutcomeCollision:
		return "collision"
	default:
		return "unknown"
	}
}

// NormalizeAngle maps any angle into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

// AngularDistance returns the shortest distance between two angles.
// The result is always in [0, π].
func AngularDistance(a, b float64) float64 {
	d := math.Abs(NormalizeAngle(a) - NormalizeAngle(b))
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

// Classification is the result of Classify. Index is the first pickup
// index for OutcomeCollected and the stuck-blade index for
// OutcomeCollision. Pickups lists every pickup in range, ascending.
type Classification struct {
	Outcome Outcome
	Index   int
	Pickups []int
}

// Classify decides what happens to a blade striking at theta.
//
// Stuck blades are checked first so a strike that is both near a blade and
// near a pickup is a collision. Comparisons are strict.
func Classify(theta float64, blades []Blade, pickups []Pickup, collisionThreshold, pickupThreshold float64) Classification {
	for i, b := range blades {
		if AngularDistance(theta, b.Angle) < collisionThreshold {
			return Classification{Outcome: OutcomeCollision, Index: i}
		}
	}
	var hit []int
	for i, p := range pickups {
		if AngularDistance(theta, p.Angle) < pickupThreshold {
			hit = append(hit, i)
		}
	}
	if len(hit) > 0 {
		return Classification{Outcome: OutcomeCollected, Index: hit[0], Pickups: hit}
	}
	return Classification{Outcome: OutcomeStick, Index: -1}
}
