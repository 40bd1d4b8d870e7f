package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/roach88/knifehit/internal/engine"
)

// Playfield units per terminal cell. Cells are about twice as tall as
// they are wide.
const (
	unitsPerCol = 5.0
	unitsPerRow = 10.0
)

var (
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleRim      = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleBlade    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	stylePickup   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleParticle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleBanner   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	styleFlash    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
)

// skinGlyphs picks the thrown-blade glyph per equipped skin.
var skinGlyphs = map[string]rune{
	"classic": '|',
	"steel":   '!',
	"gold":    '$',
	"ruby":    '%',
	"shadow":  '#',
	"dragon":  'V',
}

// Renderer draws snapshots onto a screen.
type Renderer struct {
	screen tcell.Screen
}

// NewRenderer creates a renderer for screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Draw renders one frame and shows it.
func (r *Renderer) Draw(s engine.Snapshot) {
	r.screen.Clear()
	w, h := r.screen.Size()

	// shake alternates the whole playfield left and right
	offset := 0
	if s.Effects.Shake > 0.05 {
		offset = int(math.Round(s.Effects.Shake * 2))
		if s.Tick%2 == 1 {
			offset = -offset
		}
	}
	cx, cy := w/2+offset, h/2-2

	rimStyle := styleRim
	if s.Effects.Flash > 0.3 {
		rimStyle = styleFlash
	}

	tg := s.Target
	for i := 0; i < 72; i++ {
		a := 2 * math.Pi * float64(i) / 72
		r.plot(cx, cy, tg.Radius*math.Cos(a), tg.Radius*math.Sin(a), 'o', rimStyle)
	}
	for _, b := range tg.Blades {
		a := b.Angle + tg.Rotation
		for d := tg.Radius + unitsPerRow; d <= tg.Radius+b.Length; d += unitsPerRow / 2 {
			r.plot(cx, cy, d*math.Cos(a), d*math.Sin(a), '+', styleBlade)
		}
	}
	for _, p := range tg.Pickups {
		a := p.Angle + tg.Rotation
		d := tg.Radius + unitsPerRow
		r.plot(cx, cy, d*math.Cos(a), d*math.Sin(a), '@', stylePickup)
	}
	for _, p := range s.Effects.Particles {
		ch := '.'
		if p.Life > 0.5 {
			ch = '*'
		}
		r.plot(cx, cy, p.X, p.Y, ch, styleParticle)
	}

	if s.State == engine.StatePlaying && s.Blade.State != engine.BladeStuck {
		glyph, ok := skinGlyphs[s.EquippedSkin]
		if !ok {
			glyph = '|'
		}
		r.plot(cx, cy, s.Blade.X, s.Blade.Y, glyph, styleBlade)
	}

	r.drawHUD(s, w, h)
	r.screen.Show()
}

// plot draws a rune at a playfield position relative to the centre cell.
func (r *Renderer) plot(cx, cy int, x, y float64, ch rune, style tcell.Style) {
	col := cx + int(math.Round(x/unitsPerCol))
	row := cy + int(math.Round(y/unitsPerRow))
	w, h := r.screen.Size()
	if col < 0 || row < 0 || col >= w || row >= h {
		return
	}
	r.screen.SetContent(col, row, ch, nil, style)
}

func (r *Renderer) drawHUD(s engine.Snapshot, w, h int) {
	stage := fmt.Sprintf("STAGE %d", s.Level)
	if s.IsBoss {
		stage += " BOSS"
	}
	r.text(0, 0, stage, styleHUD)
	r.text(0, 1, fmt.Sprintf("SCORE %d", s.Score), styleHUD)
	r.text(0, 2, fmt.Sprintf("BLADES %d/%d", s.BladesRemaining, s.BladesRequired), styleHUD)

	coins := fmt.Sprintf("COINS %d", s.Coins)
	r.text(w-len(coins), 0, coins, styleHUD)
	best := fmt.Sprintf("BEST %d", s.BestStage)
	r.text(w-len(best), 1, best, styleHUD)

	row := 3
	for _, p := range s.Effects.Popups {
		label := fmt.Sprintf("+%d", p.Amount)
		r.text(w-len(label), row, label, styleParticle)
		row++
	}

	if banner := Banner(s); banner != "" {
		r.text((w-len(banner))/2, h-2, banner, styleBanner)
	}
}

func (r *Renderer) text(col, row int, s string, style tcell.Style) {
	for i, ch := range s {
		r.screen.SetContent(col+i, row, ch, nil, style)
	}
}

// Banner is the prompt shown for a state, empty while playing.
func Banner(s engine.Snapshot) string {
	switch s.State {
	case engine.StateStart:
		return " KNIFE HIT  [space] start  [q] quit "
	case engine.StateStageClear:
		return fmt.Sprintf(" STAGE %d CLEAR  [space] continue ", s.Level)
	case engine.StateGameOver:
		switch {
		case s.RevivePending:
			return " GAME OVER  waiting for reward... "
		case s.CanRevive:
			return " GAME OVER  [r] revive  [n] new run  [q] quit "
		default:
			return " GAME OVER  [n] new run  [q] quit "
		}
	}
	return ""
}
