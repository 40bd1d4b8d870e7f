package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/roach88/knifehit/internal/engine"
)

// Play runs an interactive session on screen until the player quits or
// ctx is cancelled. The caller owns the screen's Init and Fini.
func Play(ctx context.Context, screen tcell.Screen, eng *engine.Engine, interval time.Duration) error {
	latch := engine.NewInputLatch()
	renderer := NewRenderer(screen)
	renderer.Draw(eng.Snapshot())

	// PollEvent blocks, so the pump lives on its own goroutine and only
	// ever talks to the latch.
	go pumpEvents(screen, latch)

	driver := engine.NewDriver(eng, latch,
		engine.WithInterval(interval),
		engine.WithRenderer(renderer.Draw),
	)
	if err := driver.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("play: %w", err)
	}
	return nil
}

func pumpEvents(screen tcell.Screen, latch *engine.InputLatch) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			// screen finalized
			latch.Close()
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			in, quit := KeyInput(ev)
			if quit {
				latch.Close()
				return
			}
			latch.Offer(in)
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}
