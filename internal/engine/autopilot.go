package engine

// Autopilot returns the input a cautious player would give this tick: it
// starts runs, acknowledges stage clears and taps only when PredictStrike
// says the throw would not collide. It never revives or retries; callers
// decide what happens after a game over.
func Autopilot(e *Engine) Input {
	switch e.session.State {
	case StateStart:
		return InputStart
	case StateStageClear:
		return InputAcknowledge
	case StatePlaying:
		if _, c, ok := e.PredictStrike(); ok && c.Outcome != OutcomeCollision {
			return InputTap
		}
	}
	return InputNone
}
