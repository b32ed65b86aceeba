package tileswap

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/vovakirdan/tileswap/internal/core"
	"github.com/vovakirdan/tileswap/internal/imagery"
	"github.com/vovakirdan/tileswap/internal/puzzle/countdown"
	"github.com/vovakirdan/tileswap/internal/puzzle/session"
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.sess == nil {
		return
	}

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)

	phase := g.sess.Phase()
	if phase != session.PhaseComplete && phase != session.PhaseLoading {
		g.renderBoard(dst)
		g.renderFrames(dst, phase)
	}

	g.renderOverlays(dst, phase)
	dst.DrawTextColor(1, g.screenH-1, g.Controls(), core.ColorGray)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the level title and the status line.
func (g *Game) renderHUD(dst *core.Screen) {
	lvl, ok := g.currentLevel()
	if !ok {
		dst.DrawTextCentered(0, "TILE SWAP")
		dst.DrawText(1, 1, fmt.Sprintf("Score: %d", g.sess.Score()))
		return
	}

	title := fmt.Sprintf("TILE SWAP | %d/%d %s", g.sess.Index()+1, len(g.list), lvl.Title())
	dst.DrawTextCentered(0, title)

	clock := "--:--"
	clockColor := core.ColorDefault
	if g.sess.Phase() != session.PhaseLoading {
		if g.sess.Untimed() {
			clock = countdown.Format(g.sess.Elapsed())
		} else {
			clock = countdown.Format(g.sess.Remaining())
			if g.sess.Remaining() <= 10 {
				clockColor = core.ColorBrightRed
			}
		}
	}

	x := 1
	x = g.hudField(dst, x, "Grid", lvl.GridLabel(), core.ColorDefault)
	if lvl.Diff != "" {
		x = g.hudField(dst, x, "Diff", lvl.Diff, core.ColorDefault)
	}
	x = g.hudField(dst, x, "Time", clock, clockColor)
	x = g.hudField(dst, x, "Moves", strconv.Itoa(g.sess.Moves()), core.ColorDefault)
	x = g.hudField(dst, x, "Left", strconv.Itoa(g.sess.Misplaced()), core.ColorDefault)
	g.hudField(dst, x, "Score", strconv.Itoa(g.sess.Score()), core.ColorBrightYellow)

	if g.messageTicks > 0 && g.message != "" {
		dst.DrawTextColor((g.screenW-utf8.RuneCountInString(g.message))/2, 2, g.message, core.ColorCyan)
	}
}

// hudField draws "label: value" at x and returns the next free column.
func (g *Game) hudField(dst *core.Screen, x int, label, value string, c core.Color) int {
	dst.DrawText(x, 1, label+": ")
	x += len(label) + 2
	dst.DrawTextColor(x, 1, value, c)
	return x + utf8.RuneCountInString(value) + 2
}

// renderBoard draws every tile's image region at its current position.
func (g *Game) renderBoard(dst *core.Screen) {
	for pos := 0; pos < g.sess.Grid().Size(); pos++ {
		rect := g.layout.TileRect(pos)
		tile, ok := g.sess.TileAt(pos)
		if !ok {
			dst.DrawRect(rect, '░')
			continue
		}

		region := g.raster.Region(tile.Source, rect.W, rect.H*2)
		if region == nil {
			dst.DrawRect(rect, '░')
		} else {
			for cy := 0; cy < rect.H; cy++ {
				for cx := 0; cx < rect.W; cx++ {
					dst.SetPixels(rect.X+cx, rect.Y+cy,
						imagery.RGBAt(region, cx, cy*2),
						imagery.RGBAt(region, cx, cy*2+1))
				}
			}
		}

		if g.hint {
			color := core.ColorBrightRed
			if tile.Home() {
				color = core.ColorBrightGreen
			}
			dst.DrawTextColor(rect.X, rect.Y, strconv.Itoa(tile.Correct+1), color)
		}
	}
}

// renderFrames outlines the cursor (yellow) and the selection (red).
func (g *Game) renderFrames(dst *core.Screen, phase session.Phase) {
	if phase != session.PhasePlaying {
		return
	}
	dst.DrawBoxColor(g.layout.FrameRect(g.cursor), core.ColorBrightYellow)
	if sel, ok := g.sess.Selection(); ok {
		dst.DrawBoxColor(g.layout.FrameRect(sel), core.ColorBrightRed)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, phase session.Phase) {
	b := g.layout.Bounds()
	centerX, centerY := b.Center()
	if phase == session.PhaseComplete || b.W == 0 {
		centerX, centerY = g.screenW/2, g.screenH/2
	}

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	switch phase {
	case session.PhaseLoading:
		g.drawOverlay(dst, centerX, centerY, "Loading image...")
	case session.PhaseSolved:
		g.drawOverlay(dst, centerX, centerY,
			"SOLVED!",
			fmt.Sprintf("+%d points in %d moves", g.sess.LevelPoints(), g.sess.Moves()),
			g.nextHint())
	case session.PhaseRevealed:
		g.drawOverlay(dst, centerX, centerY, "Solution revealed", g.nextHint())
	case session.PhaseExpired:
		g.drawOverlay(dst, centerX, centerY,
			"TIME'S UP",
			fmt.Sprintf("Score: %d", g.sess.Score()),
			"Press R to try again")
	case session.PhaseComplete:
		g.drawOverlay(dst, centerX, centerY,
			"ALL LEVELS COMPLETE!",
			fmt.Sprintf("Final score: %d", g.sess.Score()),
			"Press R to play again")
	}
}

func (g *Game) nextHint() string {
	if g.sess.Index()+1 >= len(g.list) {
		return "Press N to finish"
	}
	return "Press N for the next level"
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	// Find max line width
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, utf8.RuneCountInString(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	// Clear area behind overlay
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		x := centerX - utf8.RuneCountInString(line)/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/click: Pick | Space: Swap | X: Shuffle | V: Reveal | T: Tiles | P: Pause | Q: Quit"
}
