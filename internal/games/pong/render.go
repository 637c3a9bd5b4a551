package pong

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/blockpong/internal/arena"
	"github.com/vovakirdan/blockpong/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar = '█'
	BallChar   = '●'
	NetChar    = '┆'
	WallChar   = '─'
	FogChar    = '░'
)

// Smallest terminal the field can be drawn in.
const (
	minScreenW = 40
	minScreenH = 12
)

// Block glyphs by category
var blockGlyphs = map[arena.Category]rune{
	arena.CategoryDestructible:   '▇',
	arena.CategoryMultiHit:       '▓',
	arena.CategoryBonus:          '◆',
	arena.CategoryIndestructible: '▒',
}

// viewport maps field units onto the play area of a screen. Row 0 holds
// the HUD, rows 1 and h-2 the walls, and the last row the item bar.
type viewport struct {
	x0, y0 int
	w, h   int
	sx, sy float64
}

func newViewport(dst *core.Screen, fieldW, fieldH float64) viewport {
	v := viewport{x0: 0, y0: 2, w: dst.Width(), h: dst.Height() - 4}
	v.sx = float64(v.w) / fieldW
	v.sy = float64(v.h) / fieldH
	return v
}

// point returns the cell containing a field position.
func (v viewport) point(x, y float64) (int, int) {
	cx := core.Clamp(int(x*v.sx), 0, v.w-1)
	cy := core.Clamp(int(y*v.sy), 0, v.h-1)
	return v.x0 + cx, v.y0 + cy
}

// rect returns the cells covered by a box, at least one cell.
func (v viewport) rect(b core.Box) core.Rect {
	x1 := int(math.Floor(b.MinX * v.sx))
	x2 := int(math.Ceil(b.MaxX * v.sx))
	y1 := int(math.Floor(b.MinY * v.sy))
	y2 := int(math.Ceil(b.MaxY * v.sy))
	if x2 <= x1 {
		x2 = x1 + 1
	}
	if y2 <= y1 {
		y2 = y1 + 1
	}
	return core.NewRect(v.x0+x1, v.y0+y1, x2-x1, y2-y1)
}

// fill paints r clipped to the play area.
func (v viewport) fill(dst *core.Screen, r core.Rect, ch rune, c core.Color) {
	for y := max(r.Y, v.y0); y < min(r.Bottom(), v.y0+v.h); y++ {
		for x := max(r.X, v.x0); x < min(r.Right(), v.x0+v.w); x++ {
			dst.SetColored(x, y, ch, c)
		}
	}
}

// Render draws the current match to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.state == nil {
		return
	}

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	snap := g.state.Snapshot()
	v := newViewport(dst, snap.FieldWidth, snap.FieldHeight)

	g.renderHUD(dst, &snap)
	renderWalls(dst, v)
	renderNet(dst, v)
	renderBlocks(dst, v, snap.Blocks)
	renderBall(dst, v, snap.Ball, snap.Paddles)
	renderFog(dst, v, snap.Paddles)
	renderPaddles(dst, v, snap.Paddles)
	renderItems(dst, snap.Items)
	g.renderOverlay(dst, &snap)
}

// label names the side shown in the HUD.
func (g *Game) label(p core.PlayerID) string {
	if g.mode.Human(p) {
		return p.String()
	}
	return "CPU"
}

// renderHUD draws scores, level and the match clock.
func (g *Game) renderHUD(dst *core.Screen, snap *arena.Snapshot) {
	left := fmt.Sprintf("%s %d", g.label(core.Player1), snap.Score1)
	right := fmt.Sprintf("%d %s", snap.Score2, g.label(core.Player2))
	dst.DrawTextColored(1, 0, left, snap.Paddles[0].Color)
	dst.DrawTextColored(dst.Width()-len([]rune(right))-1, 0, right, snap.Paddles[1].Color)

	center := formatClock(snap.Remaining)
	if name := g.state.Level().Name; name != "" {
		center = name + "  " + center
	}
	dst.DrawTextCentered(0, center)
}

// formatClock renders whole seconds, rounded up, as m:ss.
func formatClock(seconds float64) string {
	s := int(math.Ceil(max(seconds, 0)))
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

func renderWalls(dst *core.Screen, v viewport) {
	for x := v.x0; x < v.x0+v.w; x++ {
		dst.SetColored(x, v.y0-1, WallChar, core.ColorGray)
		dst.SetColored(x, v.y0+v.h, WallChar, core.ColorGray)
	}
}

func renderNet(dst *core.Screen, v viewport) {
	cx := v.x0 + v.w/2
	for y := v.y0; y < v.y0+v.h; y += 2 {
		dst.SetColored(cx, y, NetChar, core.ColorGray)
	}
}

func renderBlocks(dst *core.Screen, v viewport, blocks []arena.BlockSnapshot) {
	for _, b := range blocks {
		glyph, ok := blockGlyphs[b.Category]
		if !ok {
			glyph = blockGlyphs[arena.CategoryDestructible]
		}
		r := v.rect(core.NewBox(b.X, b.Y, b.W, b.H))
		v.fill(dst, r, glyph, b.Color)

		// Remaining hits on multi-hit blocks
		if b.Category == arena.CategoryMultiHit && b.Resistance > 1 && b.Resistance < 10 {
			dst.SetColored(r.X+r.W/2, r.Y+r.H/2, rune('0'+b.Resistance), b.Color)
		}
	}
}

// renderBall tints the ball with the accent of the paddle that struck it last.
func renderBall(dst *core.Screen, v viewport, ball arena.BallSnapshot, paddles [2]arena.PaddleSnapshot) {
	color := core.ColorWhite
	if ball.LastStruck.Valid() {
		color = paddles[ball.LastStruck-1].Accent
	}
	x, y := v.point(ball.X, ball.Y)
	dst.SetColored(x, y, BallChar, color)
}

// renderFog hides the half of the field in front of a fogged paddle.
func renderFog(dst *core.Screen, v viewport, paddles [2]arena.PaddleSnapshot) {
	half := v.w / 2
	for _, p := range paddles {
		if !p.Fogged {
			continue
		}
		r := core.NewRect(v.x0, v.y0, half, v.h)
		if p.Side == arena.SideRight {
			r.X = v.x0 + v.w - half
		}
		v.fill(dst, r, FogChar, core.ColorGray)
	}
}

func renderPaddles(dst *core.Screen, v viewport, paddles [2]arena.PaddleSnapshot) {
	for _, p := range paddles {
		v.fill(dst, v.rect(p.Bounds()), PaddleChar, p.Color)
	}
}

// renderItems lists live effects on the bottom row.
func renderItems(dst *core.Screen, items []arena.ItemSnapshot) {
	var parts []string
	for _, it := range items {
		if !it.Active {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s %.0fs", it.Kind, it.Target, math.Ceil(it.Remaining)))
	}
	if len(parts) > 0 {
		dst.DrawTextColored(1, dst.Height()-1, strings.Join(parts, "  "), core.ColorYellow)
	}
}

// renderOverlay draws pause and end-of-match messages.
func (g *Game) renderOverlay(dst *core.Screen, snap *arena.Snapshot) {
	switch {
	case !snap.Active:
		subtitle := fmt.Sprintf("%d - %d  |  Press R to restart", snap.Score1, snap.Score2)
		drawCenteredBox(dst, g.verdict(), subtitle)
	case snap.Paused:
		drawCenteredBox(dst, "PAUSED", "Press P to resume")
	}
}

// verdict names the winner from the point of view of a lone human.
func (g *Game) verdict() string {
	if g.result == nil || !g.result.Winner.Valid() {
		return "DRAW"
	}
	w := g.result.Winner
	humans := 0
	for _, p := range []core.PlayerID{core.Player1, core.Player2} {
		if g.mode.Human(p) {
			humans++
		}
	}
	if humans == 1 {
		if g.mode.Human(w) {
			return "YOU WIN!"
		}
		return "CPU WINS!"
	}
	return fmt.Sprintf("%s WINS!", g.label(w))
}

// drawCenteredBox draws a message box in the center of the screen.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box background
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	titleX := boxX + (boxW-len([]rune(title)))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len([]rune(subtitle)))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
