package engine

import "sync/atomic"

// TickClock is the engine's logical clock. Every Step advances it by one
// and every trace event is stamped with the tick it happened in.
//
// Reads are atomic so a renderer goroutine may call Current while the
// owner goroutine steps.
type TickClock struct {
	tick atomic.Int64
}

// NewTickClock creates a clock at tick 0.
func NewTickClock() *TickClock {
	return &TickClock{}
}

// NewTickClockAt creates a clock at a given tick, for resuming a replay.
func NewTickClockAt(start int64) *TickClock {
	c := &TickClock{}
	c.tick.Store(start)
	return c
}

// Next advances the clock and returns the new tick.
func (c *TickClock) Next() int64 {
	return c.tick.Add(1)
}

// Current returns the current tick without advancing.
func (c *TickClock) Current() int64 {
	return c.tick.Load()
}
