package engine

import (
	"context"
	"time"

	"github.com/roach88/knifehit/internal/ir"
)

// DefaultTickInterval is one tick at 60 Hz.
const DefaultTickInterval = time.Second / 60

// Driver is the fixed-step clock around an Engine: on every tick it takes
// the latched input, steps the engine once and hands the snapshot to the
// renderer.
type Driver struct {
	engine   *Engine
	latch    *InputLatch
	interval time.Duration
	ticks    <-chan time.Time
	render   func(Snapshot)
	observe  func([]ir.TraceEvent)
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithInterval sets the tick period.
func WithInterval(d time.Duration) DriverOption {
	return func(dr *Driver) {
		dr.interval = d
	}
}

// WithTicks drives the loop from an external channel instead of a ticker.
func WithTicks(ch <-chan time.Time) DriverOption {
	return func(dr *Driver) {
		dr.ticks = ch
	}
}

// WithRenderer receives a snapshot after every tick.
func WithRenderer(fn func(Snapshot)) DriverOption {
	return func(dr *Driver) {
		dr.render = fn
	}
}

// WithObserver receives the trace events of every tick that produced any.
func WithObserver(fn func([]ir.TraceEvent)) DriverOption {
	return func(dr *Driver) {
		dr.observe = fn
	}
}

// NewDriver creates a driver for e reading inputs from latch.
func NewDriver(e *Engine, latch *InputLatch, opts ...DriverOption) *Driver {
	d := &Driver{
		engine:   e,
		latch:    latch,
		interval: DefaultTickInterval,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run steps the engine once per tick until the context is cancelled or the
// latch is closed. Must be the only goroutine stepping the engine.
func (d *Driver) Run(ctx context.Context) error {
	ticks := d.ticks
	if ticks == nil {
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	d.engine.logger.Info("driver starting", "interval", d.interval)
	for {
		select {
		case <-ctx.Done():
			d.engine.logger.Info("driver stopping: context cancelled")
			return ctx.Err()
		case <-d.latch.Done():
			d.engine.logger.Info("driver stopping: input closed")
			return nil
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			events := d.engine.Step(ctx, d.latch.Take())
			if d.observe != nil && len(events) > 0 {
				d.observe(events)
			}
			if d.render != nil {
				d.render(d.engine.Snapshot())
			}
		}
	}
}
