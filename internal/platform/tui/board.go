package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/game"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

// Board layout. Each playfield cell is two characters wide.
const (
	boardW  = tetris.Width*2 + 2
	boardH  = tetris.VisibleHeight + 2
	panelW  = 18
	gap     = 2
	layoutW = boardW + gap + panelW
)

// HUD holds the view-side values drawn next to the playfield.
type HUD struct {
	Player    string
	Bot       bool
	HighScore int
	Elapsed   time.Duration
}

// DrawGame draws a snapshot centered on the screen.
func DrawGame(s *core.Screen, snap game.Snapshot, hud HUD) {
	s.Clear()

	left := max((s.Width()-layoutW)/2, 0)
	top := max((s.Height()-boardH)/2, 0)

	drawBoard(s, &snap.Grid, left, top)
	drawPanel(s, snap, hud, left+boardW+gap, top)

	switch {
	case snap.Phase == game.PhaseGameOver:
		drawBanner(s, left, top+boardH/2-1, "GAME OVER", "r: again  esc: menu")
	case snap.Paused:
		drawBanner(s, left, top+boardH/2-1, "PAUSED", "p: resume")
	}
}

func drawBoard(s *core.Screen, g *tetris.Grid, left, top int) {
	s.DrawBox(core.NewRect(left, top, boardW, boardH), core.ColorGray)

	for y := 0; y < tetris.VisibleHeight; y++ {
		for x := 0; x < tetris.Width; x++ {
			if c := g.Cell(x, y); c != tetris.Empty {
				drawMino(s, left, top, x, y, "██", screenColor(c))
			} else {
				drawMino(s, left, top, x, y, " .", core.ColorGray)
			}
		}
	}

	p, ok := g.Current()
	if !ok {
		return
	}

	// Ghost where a hard drop would land.
	ghost := g.Clone()
	ghost.Drop()
	if gp, ok := ghost.Current(); ok && gp.Anchor != p.Anchor {
		for _, c := range gp.Cells() {
			drawMino(s, left, top, c.X, c.Y, "░░", screenColor(p.Color()))
		}
	}
	for _, c := range p.Cells() {
		drawMino(s, left, top, c.X, c.Y, "██", screenColor(p.Color()))
	}
}

// drawMino draws a two-character cell at grid coordinates. Hidden rows are
// skipped.
func drawMino(s *core.Screen, left, top, x, y int, glyph string, c core.Color) {
	if y < 0 || y >= tetris.VisibleHeight {
		return
	}
	sx := left + 1 + x*2
	sy := top + 1 + (tetris.VisibleHeight - 1 - y)
	s.DrawTextColor(sx, sy, glyph, c)
}

func drawPanel(s *core.Screen, snap game.Snapshot, hud HUD, left, top int) {
	y := top
	title := "BLOCKFALL"
	if hud.Bot {
		title = "BLOCKFALL (bot)"
	}
	s.DrawTextColor(left, y, title, core.ColorBrightYellow)
	y++

	s.DrawTextColor(left, y, "NEXT", core.ColorWhite)
	y++
	for _, shape := range snap.Next {
		drawPreview(s, left, y, shape)
		y += 3
	}

	s.DrawTextColor(left, y, "HOLD", core.ColorWhite)
	y++
	if snap.HasHeld {
		drawPreview(s, left, y, snap.Held)
		if !snap.CanHold {
			s.DrawTextColor(left+10, y, "used", core.ColorGray)
		}
	}
	y += 3

	stats := []struct {
		label string
		value string
	}{
		{"Score", fmt.Sprintf("%d", snap.Score)},
		{"Level", fmt.Sprintf("%d", snap.Level)},
		{"Lines", fmt.Sprintf("%d", snap.Lines)},
		{"Tetris", fmt.Sprintf("%d", snap.Tetrises)},
		{"Best", fmt.Sprintf("%d", max(hud.HighScore, snap.Score))},
		{"Time", formatElapsed(hud.Elapsed)},
	}
	for _, st := range stats {
		s.DrawTextColor(left, y, fmt.Sprintf("%-7s%10s", st.label, st.value), core.ColorDefault)
		y++
	}
	if hud.Player != "" {
		s.DrawTextColor(left, y, hud.Player, core.ColorGray)
	}
}

// drawPreview draws a north-facing shape with its top-left at (left, top).
func drawPreview(s *core.Screen, left, top int, shape tetris.Shape) {
	p := tetris.NewPiece(shape, 0)
	for _, c := range p.Cells() {
		row := -c.Y - 1
		if shape == tetris.I {
			row-- // the bar sits on the second mask row
		}
		s.DrawTextColor(left+(c.X-p.Anchor.X)*2, top+row, "██", screenColor(p.Color()))
	}
}

func drawBanner(s *core.Screen, left, y int, title, hint string) {
	inner := boardW - 2
	for i := 0; i < 4; i++ {
		s.DrawText(left+1, y+i, strings.Repeat(" ", inner))
	}
	s.DrawTextColor(left+1+(inner-len(title))/2, y+1, title, core.ColorBrightYellow)
	s.DrawTextColor(left+1+(inner-len(hint))/2, y+2, hint, core.ColorGray)
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
