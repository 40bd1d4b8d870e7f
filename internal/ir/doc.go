// Package ir provides the trace representation shared by the engine, the
// store and the scenario harness.
//
// This package contains type definitions and serialization only. All other
// internal packages may import ir; ir imports nothing internal.
//
// Key design constraints:
//   - NO float types in trace records - angles travel as int64 milliradians
//   - All JSON tags use snake_case
//   - Ticks (logical time) only, never wall-clock timestamps
package ir
