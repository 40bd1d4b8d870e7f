// Package engine implements the knifehit game simulation.
//
// ARCHITECTURE:
//
// Pure step function:
// Engine.Step(ctx, input) advances the simulation by exactly one tick. It
// draws nothing, sleeps nowhere and reads no wall clock, so a session is a
// deterministic function of (tuning, seed, inputs). Rendering reads
// Engine.Snapshot copies after the tick completes.
//
// Tick processing:
//  1. A revive granted by the ad hook since the last tick is applied
//  2. Feedback effects decay
//  3. The sampled input is applied to the state machine
//  4. While playing: the target rotates, the throw cooldown runs, the
//     blade flies and an arrival is classified
//
// State machine:
//
//	start --Start|Tap--> playing
//	playing --arrival, collision--> game_over
//	playing --arrival, quota met--> stage_clear
//	stage_clear --Acknowledge|Tap--> playing (next level)
//	game_over --Revive, once per run--> playing
//	game_over --Retry--> start --> playing
//
// Entering stage_clear or game_over is a checkpoint: pending counters and
// coins are flushed into the economy, achievements are evaluated and the
// profile is persisted through the Checkpointer. Nothing else writes.
//
// Randomness:
// Level layouts and rotation perturbations draw from the injected
// RandomSource. Effects use a fixed spread so cosmetics never shift the
// random stream.
//
// Concurrency:
// One goroutine owns the Engine. Inputs from other goroutines go through an
// InputLatch and the Driver. The only cross-goroutine entry points are the
// rewarded-ad callback and Tick.
package engine
