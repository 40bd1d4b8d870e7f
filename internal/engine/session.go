package engine

// State is the session state.
type State int

const (
	StateStart State = iota
	StatePlaying
	StateStageClear
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StatePlaying:
		return "playing"
	case StateStageClear:
		return "stage_clear"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Input is the single input sampled for a tick.
type Input int

const (
	InputNone Input = iota
	InputTap
	InputStart
	InputAcknowledge
	InputRevive
	InputRetry
)

func (in Input) String() string {
	switch in {
	case InputNone:
		return "none"
	case InputTap:
		return "tap"
	case InputStart:
		return "start"
	case InputAcknowledge:
		return "acknowledge"
	case InputRevive:
		return "revive"
	case InputRetry:
		return "retry"
	default:
		return "unknown"
	}
}

// ParseInput maps an input name back to its value.
func ParseInput(s string) (Input, bool) {
	for in := InputNone; in <= InputRetry; in++ {
		if in.String() == s {
			return in, true
		}
	}
	return InputNone, false
}

// Session is the per-run state owned by the Engine.
type Session struct {
	State           State
	Level           int
	Score           int
	BladesRemaining int
	CanRevive       bool
	GamesPlayed     int

	RunID            string
	PickupsThisLevel int
	RunBladesThrown  int
	RunPickups       int
	Revived          bool

	// pending counters are flushed into the profile at the next checkpoint
	pendingBlades  int
	pendingPickups int
	pendingCoins   int
	runCounted     bool
}

func newSession(gamesPlayed int) Session {
	return Session{
		State:       StateStart,
		Level:       1,
		CanRevive:   true,
		GamesPlayed: gamesPlayed,
	}
}
