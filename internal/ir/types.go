package ir

import "math"

// EventKind names a trace event emitted by the engine.
type EventKind string

const (
	EventStart         EventKind = "start"
	EventThrow         EventKind = "throw"
	EventStick         EventKind = "stick"
	EventPickup        EventKind = "pickup"
	EventCollision     EventKind = "collision"
	EventStageClear    EventKind = "stage_clear"
	EventNextLevel     EventKind = "next_level"
	EventGameOver      EventKind = "game_over"
	EventRevive        EventKind = "revive"
	EventRetry         EventKind = "retry"
	EventCoins         EventKind = "coins"
	EventAchievement   EventKind = "achievement"
	EventInterstitial  EventKind = "interstitial"
	EventDirectionFlip EventKind = "direction_flip"
	EventPause         EventKind = "pause"
)

// EventKinds lists every event kind in declaration order.
var EventKinds = []EventKind{
	EventStart,
	EventThrow,
	EventStick,
	EventPickup,
	EventCollision,
	EventStageClear,
	EventNextLevel,
	EventGameOver,
	EventRevive,
	EventRetry,
	EventCoins,
	EventAchievement,
	EventInterstitial,
	EventDirectionFlip,
	EventPause,
}

// TraceEvent records one observable transition of a play session.
//
// Score and BladesRemaining are the session values after the event was
// applied. AngleMilli is only set for events that carry a strike angle.
type TraceEvent struct {
	Tick            int64     `json:"tick"`
	Kind            EventKind `json:"kind"`
	Level           int       `json:"level"`
	Score           int       `json:"score"`
	BladesRemaining int       `json:"blades_remaining"`
	AngleMilli      int64     `json:"angle_milli,omitempty"`
	Detail          string    `json:"detail,omitempty"`
	Amount          int       `json:"amount,omitempty"`
}

// Object converts the event to a map for canonical serialization.
// Zero-valued optional fields are omitted, matching the JSON tags.
func (e TraceEvent) Object() map[string]any {
	obj := map[string]any{
		"tick":             e.Tick,
		"kind":             string(e.Kind),
		"level":            e.Level,
		"score":            e.Score,
		"blades_remaining": e.BladesRemaining,
	}
	if e.AngleMilli != 0 {
		obj["angle_milli"] = e.AngleMilli
	}
	if e.Detail != "" {
		obj["detail"] = e.Detail
	}
	if e.Amount != 0 {
		obj["amount"] = e.Amount
	}
	return obj
}

// Milli converts radians to integer milliradians for trace records.
func Milli(rad float64) int64 {
	return int64(math.Round(rad * 1000))
}

// RunSummary is the durable record written when a run ends.
type RunSummary struct {
	ID           string `json:"id"`
	Seed         uint64 `json:"seed"`
	Level        int    `json:"level"`
	Score        int    `json:"score"`
	BladesThrown int    `json:"blades_thrown"`
	Pickups      int    `json:"pickups"`
	Revived      bool   `json:"revived"`
	Ticks        int64  `json:"ticks"`
}
