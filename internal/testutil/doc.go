// Package testutil provides deterministic collaborators for engine,
// harness and CLI tests, such as a settable wall clock and a replayable
// random source.
package testutil
