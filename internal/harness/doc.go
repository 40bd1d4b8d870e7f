// Package harness runs scripted play sessions against a real engine.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: level_one_clear
//	description: "Tapping through level 1 clears the stage"
//	seed: 7
//	tuning: tuning/slow.cue      # optional, relative to the scenario file
//	profile: { coins: "150" }    # optional starting profile record
//	ads: { auto_grant: true }    # optional fake ad hook
//	steps:
//	  - input: tap
//	    until: stage_clear
//	    max_ticks: 400
//	  - input: auto
//	    repeat: 50
//	  - grant: true
//	expect:
//	  state: stage_clear
//	  score: 100
//	assertions:
//	  - type: trace_contains
//	    kind: achievement
//	    detail: first_blood
//	  - type: trace_order
//	    kinds: [start, stick, stage_clear]
//	  - type: trace_count
//	    kind: stick
//	    count: 5
//	  - type: final_state
//	    table: profile
//	    expect: { coins: "15" }
//
// # Inputs
//
// A step input is any engine input name (none, tap, start, acknowledge,
// revive, retry) or "auto", which asks engine.Autopilot for the input.
// A step repeats its input repeat times, or until an event of kind until
// is emitted (bounded by max_ticks).
//
// # Final State Tables
//
//   - session: the engine's session and profile counters
//   - profile: the last profile record written to the checkpointer
//   - runs: recorded runs, filtered with where: { id: ... }
//
// # Deterministic Testing
//
// Each scenario runs with its seed, a fixed run ID and an in-memory
// checkpointer, so the trace is identical on every run and can be compared
// against golden files.
package harness
