package engine

import "sync"

// InputLatch hands inputs from an input goroutine to the stepping
// goroutine. It holds at most one input: the first offer since the last
// Take wins and later offers are dropped, so a burst of taps within one
// tick counts once and nothing is queued for later ticks.
type InputLatch struct {
	mu      sync.Mutex
	pending Input
	set     bool
	closed  bool
	dropped int
	done    chan struct{}
}

// NewInputLatch creates an empty latch.
func NewInputLatch() *InputLatch {
	return &InputLatch{done: make(chan struct{})}
}

// Offer latches an input. It returns false if the latch already holds one
// or has been closed. InputNone is never latched.
func (l *InputLatch) Offer(in Input) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || in == InputNone {
		return false
	}
	if l.set {
		l.dropped++
		return false
	}
	l.pending = in
	l.set = true
	return true
}

// Take returns the latched input and clears the latch. It returns
// InputNone when nothing was offered.
func (l *InputLatch) Take() Input {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.set {
		return InputNone
	}
	in := l.pending
	l.pending = InputNone
	l.set = false
	return in
}

// Dropped counts offers lost because the latch was full.
func (l *InputLatch) Dropped() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}

// Close stops the latch; the driver loop exits on its next tick.
func (l *InputLatch) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.closed = true
	close(l.done)
}

// Done is closed once Close has been called.
func (l *InputLatch) Done() <-chan struct{} {
	return l.done
}
