package blockway

import (
	"fmt"

	"github.com/vovakirdan/blockway/internal/core"
	bwcore "github.com/vovakirdan/blockway/internal/games/blockway/core"
)

// glyphColor maps display runes to platform colors.
func glyphColor(r rune) core.Color {
	switch r {
	case '@':
		return core.ColorYellow
	case '$', 'K':
		return core.ColorOrange
	case 'M', 'S', 'O':
		return core.ColorRed
	case '+':
		return core.ColorCyan
	case '!':
		return core.ColorMagenta
	case '~':
		return core.ColorBlue
	case 'E', 'd', 'g':
		return core.ColorGreen
	case '>', '<', '^', 'v', 'T', '_', ':':
		return core.ColorGray
	case '#', 'D', 'G':
		return core.ColorWhite
	default:
		return core.ColorDefault
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}
	if g.controller == nil {
		g.renderOverlay(dst, "No levels found", "Check the levels directory")
		return
	}

	state := g.controller.Current()
	for y := 0; y < state.Grid.H; y++ {
		for x := 0; x < state.Grid.W; x++ {
			r := bwcore.Glyph(state, bwcore.C(x, y))
			if r == ' ' && gameConfig.Display.FloorDots {
				r = '·'
			}
			dst.SetColored(g.mapOffsetX+x, g.mapOffsetY+y, r, glyphColor(r))
		}
	}

	switch {
	case g.finished:
		g.renderOverlay(dst, "All levels complete!", fmt.Sprintf("Finished in %d turns", g.Turns()))
	case g.controller.Outcome() == bwcore.OutcomeWon:
		g.renderOverlay(dst, "Level complete!", "Press Enter for next level")
	case g.controller.Outcome() == bwcore.OutcomeLost:
		g.renderOverlay(dst, "You died", "Press R to retry, U to undo")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	if !gameConfig.Display.ShowHUD {
		return
	}
	level := g.CurrentLevel()
	state := ""
	if g.controller != nil {
		s := g.controller.Current()
		state = fmt.Sprintf("Turn: %d  Gems: %d/%d", s.Turn, s.Gems, s.GemsAll)
	}
	hud := fmt.Sprintf(" Blockway | %s (%d/%d)  %s", level.Name, g.levelIndex+1, len(g.levels), state)
	dst.DrawText(0, 0, hud)
	if g.status != "" {
		dst.DrawTextColored(dst.Width()-len(g.status)-1, 0, g.status, core.ColorGray)
	}
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderOverlay draws a centered overlay box with two lines of text.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w, h := dst.Width(), dst.Height()
	boxW := max(len(line1), len(line2)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	for y := boxY + 1; y < boxY+boxH-1; y++ {
		for x := boxX + 1; x < boxX+boxW-1; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBoxOutline(boxX, boxY, boxW, boxH)
	dst.DrawTextCentered(boxY+1, line1)
	dst.DrawTextCentered(boxY+3, line2)
}
