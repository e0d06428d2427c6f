package game

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/mirrorgrid/internal/core"
	"github.com/vovakirdan/mirrorgrid/internal/engine"
)

// Layout constants.
const (
	titleHeight  = 3
	sidebarWidth = 24
)

// Layout is how the board fits the screen.
type Layout int

const (
	LayoutRuled    Layout = iota // Two columns per cell with rules between rows
	LayoutCompact                // One character per cell
	LayoutTooSmall               // Board does not fit at all
)

// arrows are indexed by engine.Heading.
var arrows = [...]rune{
	engine.HeadingUp:    '↑',
	engine.HeadingRight: '→',
	engine.HeadingDown:  '↓',
	engine.HeadingLeft:  '←',
}

func arrow(h engine.Heading) rune {
	if int(h) < len(arrows) {
		return arrows[h]
	}
	return '?'
}

// boardSize returns the outer size of the board box for a layout.
func boardSize(b engine.Bounds, l Layout) (int, int) {
	if l == LayoutRuled {
		return 2*b.W + 1, 2*b.H + 1
	}
	return b.W + 2, b.H + 2
}

// ChooseLayout picks the largest board layout that fits a screen.
func ChooseLayout(b engine.Bounds, screenW, screenH int) Layout {
	for _, l := range []Layout{LayoutRuled, LayoutCompact} {
		w, h := boardSize(b, l)
		if w+sidebarWidth <= screenW && h+titleHeight <= screenH {
			return l
		}
	}
	return LayoutTooSmall
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if len(g.levels) == 0 {
		renderOverlay(dst, "No levels found", "Check the levels directory")
		return
	}
	if g.status == StatusWon {
		renderOverlay(dst, "All levels cleared!", fmt.Sprintf("Score: %d   R: play again", g.score))
		return
	}
	if g.world == nil {
		renderOverlay(dst, "Level failed to load", truncate(errString(g.fault), dst.Width()-6))
		return
	}

	b := g.world.Bounds()
	layout := ChooseLayout(b, dst.Width(), dst.Height())
	if layout == LayoutTooSmall {
		bw, bh := boardSize(b, LayoutCompact)
		renderOverlay(dst, "Terminal too small",
			fmt.Sprintf("Need at least %dx%d", bw+sidebarWidth, bh+titleHeight))
		return
	}

	bw, bh := boardSize(b, layout)
	totalW := bw + sidebarWidth
	x0 := (dst.Width() - totalW) / 2
	y0 := (dst.Height() - bh - titleHeight) / 2

	g.renderTitle(dst, core.NewRect(x0, y0, totalW, titleHeight))
	board := core.NewRect(x0, y0+titleHeight, bw, bh)
	if layout == LayoutRuled {
		g.renderRuledGrid(dst, board)
	} else {
		g.renderCompactGrid(dst, board)
	}
	g.renderSidebar(dst, core.NewRect(board.Right(), board.Y, sidebarWidth, bh))

	switch g.status {
	case StatusDead:
		renderOverlay(dst, "You were hit", "R: restart level")
	case StatusCleared:
		renderOverlay(dst, "Level cleared!", "Enter: next level")
	case StatusFault:
		renderOverlay(dst, "Simulation fault", truncate(errString(g.fault), dst.Width()-6))
	}
}

// renderTitle draws "Level N: Name │ Tick: T" in a box.
func (g *Game) renderTitle(dst *core.Screen, r core.Rect) {
	dst.DrawBox(r)
	lvl := g.levels[g.index]
	title := fmt.Sprintf("Level %d: %s │ Tick: %d", g.index+1, lvl.Title(), g.world.Tick())
	title = truncate(title, r.W-4)
	x := r.X + (r.W-utf8.RuneCountInString(title))/2
	dst.DrawTextColored(x, r.Y+1, title, core.ColorBrightWhite)
}

// cellGlyph returns what to draw on a grid cell. The player is drawn over
// automatic entities and entities over deflectors.
func (g *Game) cellGlyph(p engine.Pos, automatic map[engine.Pos]engine.Entity) (rune, core.Color, bool) {
	player := g.world.Player()
	if player.Pos == p {
		if !player.Alive() {
			return '×', core.ColorMagenta, true
		}
		return arrow(player.Heading), core.ColorGreen, true
	}
	if e, ok := automatic[p]; ok {
		return arrow(e.Heading), core.ColorRed, true
	}
	if o, ok := g.world.DeflectorAt(p); ok {
		return o.Rune(), core.ColorYellow, true
	}
	return 0, core.ColorDefault, false
}

// automaticByCell indexes live automatic entities; the first one in
// collection order wins a shared cell.
func (g *Game) automaticByCell() map[engine.Pos]engine.Entity {
	autos := g.world.Automatic()
	out := make(map[engine.Pos]engine.Entity, len(autos))
	for _, e := range autos {
		if _, ok := out[e.Pos]; !ok {
			out[e.Pos] = e
		}
	}
	return out
}

// renderRuledGrid draws cells separated by │ with ─┼─ rules between rows.
func (g *Game) renderRuledGrid(dst *core.Screen, r core.Rect) {
	dst.DrawBox(r)
	b := g.world.Bounds()
	automatic := g.automaticByCell()

	for y := 0; y < b.H; y++ {
		sy := r.Y + 1 + 2*y
		for x := 0; x < b.W; x++ {
			sx := r.X + 1 + 2*x
			if x > 0 {
				dst.SetColored(sx-1, sy, '│', core.ColorGray)
			}
			if ch, c, ok := g.cellGlyph(engine.P(x, y), automatic); ok {
				dst.SetColored(sx, sy, ch, c)
			}
		}
		if y == b.H-1 {
			continue
		}
		for x := 0; x < 2*b.W-1; x++ {
			ch := '─'
			if x%2 == 1 {
				ch = '┼'
			}
			dst.SetColored(r.X+1+x, sy+1, ch, core.ColorGray)
		}
	}
}

// renderCompactGrid draws one character per cell.
func (g *Game) renderCompactGrid(dst *core.Screen, r core.Rect) {
	dst.DrawBox(r)
	b := g.world.Bounds()
	automatic := g.automaticByCell()

	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			ch, c, ok := g.cellGlyph(engine.P(x, y), automatic)
			if !ok {
				ch, c = '·', core.ColorGray
			}
			dst.SetColored(r.X+1+x, r.Y+1+y, ch, c)
		}
	}
}

// renderSidebar draws the status panel.
func (g *Game) renderSidebar(dst *core.Screen, r core.Rect) {
	dst.DrawBox(r)
	player := g.world.Player()

	auto := "off"
	switch {
	case g.autoTick && g.paused:
		auto = "paused"
	case g.autoTick:
		auto = "on"
	}

	lines := []struct {
		label string
		value string
		color core.Color
	}{
		{"Level", fmt.Sprintf("%d/%d", g.index+1, len(g.levels)), core.ColorDefault},
		{"Status", g.status.String(), statusColor(g.status)},
		{"Tick", fmt.Sprint(g.world.Tick()), core.ColorDefault},
		{"Player", fmt.Sprintf("%s %c", player.Pos, arrow(player.Heading)), core.ColorGreen},
		{"Enemies", fmt.Sprint(g.world.AutomaticCount()), core.ColorRed},
		{"Destroyed", fmt.Sprint(g.destroyed), core.ColorDefault},
		{"Score", fmt.Sprint(g.State().Score), core.ColorCyan},
		{"Auto", auto, core.ColorDefault},
	}

	y := r.Y + 1
	for _, l := range lines {
		if y >= r.Bottom()-1 {
			return
		}
		dst.DrawTextColored(r.X+2, y, l.label, core.ColorGray)
		dst.DrawTextColored(r.X+12, y, truncate(l.value, r.W-14), l.color)
		y++
	}

	if y+1 < r.Bottom()-1 && len(g.last.Removed) > 0 {
		dst.DrawTextColored(r.X+2, y+1, fmt.Sprintf("%d destroyed", len(g.last.Removed)), core.ColorYellow)
	}
}

func statusColor(s Status) core.Color {
	switch s {
	case StatusDead, StatusFault:
		return core.ColorRed
	case StatusCleared, StatusWon:
		return core.ColorGreen
	default:
		return core.ColorDefault
	}
}

// renderOverlay draws a centered two-line message box.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2))
	box := core.NewRect((dst.Width()-maxLen-4)/2, (dst.Height()-5)/2, maxLen+4, 5)

	for y := box.Y; y < box.Bottom(); y++ {
		dst.DrawHLine(box.X, y, box.W, ' ')
	}
	dst.DrawBox(box)
	dst.DrawTextCenteredColored(box.Y+1, line1, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, line2)
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
