package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/roach88/knifehit/internal/engine"
)

// KeyInput maps a key press to an engine input. quit is true for the keys
// that leave the game.
func KeyInput(ev *tcell.EventKey) (in engine.Input, quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return engine.InputNone, true
	case tcell.KeyEnter:
		return engine.InputTap, false
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return engine.InputTap, false
		case 'r', 'R':
			return engine.InputRevive, false
		case 'n', 'N':
			return engine.InputRetry, false
		case 'q', 'Q':
			return engine.InputNone, true
		}
	}
	return engine.InputNone, false
}
