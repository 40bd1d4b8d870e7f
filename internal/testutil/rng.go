package testutil

import "sync"

// SequenceRNG replays a fixed list of values, cycling when exhausted.
// An empty list always yields 0.
type SequenceRNG struct {
	mu     sync.Mutex
	values []float64
	idx    int
	draws  int
}

// NewSequenceRNG creates a source that returns values in order.
func NewSequenceRNG(values ...float64) *SequenceRNG {
	return &SequenceRNG{values: values}
}

// Float64 returns the next value.
func (r *SequenceRNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.draws++
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[r.idx%len(r.values)]
	r.idx++
	return v
}

// Draws counts calls to Float64.
func (r *SequenceRNG) Draws() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.draws
}
