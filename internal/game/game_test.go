package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/mirrorgrid/internal/core"
	"github.com/vovakirdan/mirrorgrid/internal/engine"
	"github.com/vovakirdan/mirrorgrid/internal/levels"
)

func placement(x, y int, h engine.Heading) engine.Placement {
	return engine.Placement{Pos: engine.P(x, y), Heading: h}
}

// hitLevel kills the player on the first tick.
func hitLevel() levels.Level {
	return levels.Level{
		ID:        "hit",
		Bounds:    engine.Bounds{W: 10, H: 10},
		Player:    placement(2, 5, engine.HeadingUp),
		Automatic: []engine.Placement{placement(3, 4, engine.HeadingLeft)},
	}
}

// pairLevel is cleared on the first tick when both entities meet at (4,4).
func pairLevel(id string) levels.Level {
	return levels.Level{
		ID:     id,
		Name:   "Pair",
		Bounds: engine.Bounds{W: 9, H: 9},
		Player: placement(0, 8, engine.HeadingRight),
		Automatic: []engine.Placement{
			placement(3, 4, engine.HeadingRight),
			placement(5, 4, engine.HeadingLeft),
		},
	}
}

// edgeLevel sends the player off the grid on the first tick.
func edgeLevel() levels.Level {
	return levels.Level{
		ID:        "edge",
		Bounds:    engine.Bounds{W: 5, H: 5},
		Player:    placement(2, 0, engine.HeadingUp),
		Automatic: []engine.Placement{placement(4, 4, engine.HeadingLeft)},
	}
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func newGame(t *testing.T, cfg core.RuntimeConfig, lvls ...levels.Level) *Game {
	t.Helper()
	g := New(lvls, 0)
	g.Reset(cfg)
	return g
}

func builtin(t *testing.T) []levels.Level {
	t.Helper()
	lvls, err := levels.Builtin().LoadAll()
	require.NoError(t, err)
	return lvls
}

func tick(t *testing.T, g *Game) uint64 {
	t.Helper()
	st, ok := g.Snapshot()
	require.True(t, ok)
	return st.Tick
}

func TestConfirmAdvancesOneTick(t *testing.T) {
	g := newGame(t, core.DefaultConfig(), builtin(t)...)

	res := g.Step(frame())
	assert.False(t, res.Advanced)
	assert.Equal(t, uint64(0), tick(t, g))

	res = g.Step(frame(core.ActionConfirm))
	assert.True(t, res.Advanced)
	assert.Equal(t, uint64(1), tick(t, g))
	assert.Equal(t, "playing", res.State.Status)
	assert.Equal(t, 1, res.State.Score)
}

func TestAutoTick(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.AutoTick = true
	cfg.AutoTickEvery = 3
	g := newGame(t, cfg, builtin(t)...)

	for i := 0; i < 6; i++ {
		g.Step(frame())
	}
	assert.Equal(t, uint64(2), tick(t, g))

	g.Step(frame(core.ActionPause))
	for i := 0; i < 6; i++ {
		g.Step(frame())
	}
	assert.Equal(t, uint64(2), tick(t, g), "paused auto tick must not advance")
	assert.True(t, g.State().Paused)

	// Confirm still steps while paused.
	g.Step(frame(core.ActionConfirm))
	assert.Equal(t, uint64(3), tick(t, g))

	g.Step(frame(core.ActionAutoTick))
	for i := 0; i < 9; i++ {
		g.Step(frame())
	}
	assert.Equal(t, uint64(3), tick(t, g), "auto tick toggled off")
}

func TestPlayerDeathAndRestart(t *testing.T) {
	g := newGame(t, core.DefaultConfig(), hitLevel())

	g.Step(frame(core.ActionConfirm))
	assert.Equal(t, StatusDead, g.Status())

	// Confirm on a dead player changes nothing.
	res := g.Step(frame(core.ActionConfirm))
	assert.False(t, res.Advanced)
	assert.Equal(t, uint64(1), tick(t, g))

	g.Step(frame(core.ActionRestart))
	assert.Equal(t, StatusPlaying, g.Status())
	assert.Equal(t, uint64(0), tick(t, g))
	assert.Equal(t, 0, g.State().Score)
}

func TestClearedLevelsAdvanceToWin(t *testing.T) {
	g := newGame(t, core.DefaultConfig(), pairLevel("a"), pairLevel("b"))

	g.Step(frame(core.ActionConfirm))
	require.Equal(t, StatusCleared, g.Status())
	assert.Equal(t, []int{0, 1}, g.LastReport().Removed)
	assert.Equal(t, 1+2*DestroyBonus, g.State().Score)

	g.Step(frame(core.ActionConfirm))
	lvl, idx, ok := g.Level()
	require.True(t, ok)
	assert.Equal(t, "b", lvl.ID)
	assert.Equal(t, 1, idx)
	assert.Equal(t, StatusPlaying, g.Status())
	assert.Equal(t, 21, g.State().Score, "finished level score is banked")

	g.Step(frame(core.ActionConfirm))
	g.Step(frame(core.ActionConfirm))
	assert.Equal(t, StatusWon, g.Status())
	assert.True(t, g.State().GameOver)
	assert.Equal(t, 42, g.State().Score)

	g.Step(frame(core.ActionRestart))
	lvl, _, _ = g.Level()
	assert.Equal(t, "a", lvl.ID)
	assert.Equal(t, 0, g.State().Score)
}

func TestEngineFault(t *testing.T) {
	g := newGame(t, core.DefaultConfig(), edgeLevel())

	res := g.Step(frame(core.ActionConfirm))
	assert.False(t, res.Advanced)
	assert.Equal(t, StatusFault, g.Status())
	assert.ErrorIs(t, g.Fault(), engine.ErrOutOfBounds)
	assert.Equal(t, uint64(0), tick(t, g), "failed tick leaves the world untouched")

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	assert.Contains(t, scr.String(), "Simulation fault")
}

func TestInvalidLevelFaultsOnLoad(t *testing.T) {
	bad := hitLevel()
	bad.Player = placement(20, 20, engine.HeadingUp)
	g := newGame(t, core.DefaultConfig(), bad)

	assert.Equal(t, StatusFault, g.Status())
	assert.ErrorIs(t, g.Fault(), engine.ErrOutOfBounds)
	_, ok := g.Snapshot()
	assert.False(t, ok)

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	assert.Contains(t, scr.String(), "Level failed to load")
}

func TestStartIndex(t *testing.T) {
	g := New(builtin(t), 2)
	g.Reset(core.DefaultConfig())
	lvl, idx, ok := g.Level()
	require.True(t, ok)
	assert.Equal(t, "lvl03", lvl.ID)
	assert.Equal(t, 2, idx)

	g = New(builtin(t), 7)
	g.Reset(core.DefaultConfig())
	_, idx, _ = g.Level()
	assert.Equal(t, 0, idx, "out of range start falls back to the first level")
}

func TestChooseLayout(t *testing.T) {
	b := engine.Bounds{W: 40, H: 13}
	tests := []struct {
		w, h int
		want Layout
	}{
		{120, 40, LayoutRuled},
		{105, 30, LayoutRuled},
		{104, 30, LayoutCompact},
		{80, 24, LayoutCompact},
		{66, 18, LayoutCompact},
		{65, 18, LayoutTooSmall},
		{80, 17, LayoutTooSmall},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ChooseLayout(b, tc.w, tc.h), "%dx%d", tc.w, tc.h)
	}
}

func TestRenderRuled(t *testing.T) {
	g := newGame(t, core.DefaultConfig(), builtin(t)...)
	scr := core.NewScreen(120, 40)
	g.Render(scr)

	// Board box 81x27 plus sidebar 24, centered: x0 = 7, y0 = 5.
	assert.Contains(t, scr.Row(6), "Level 1: First Light │ Tick: 0")

	// Player of lvl01 sits on (2,8) heading up.
	assert.Equal(t, core.Cell{Rune: '↑', Color: core.ColorGreen}, scr.GetCell(12, 25))
	assert.Equal(t, '│', scr.Get(11, 25))
	assert.Equal(t, '─', scr.Get(8, 26))
	assert.Equal(t, '┼', scr.Get(9, 26))

	// Deflector "/" on (2,1) and an automatic entity on (18,5).
	assert.Equal(t, core.Cell{Rune: '/', Color: core.ColorYellow}, scr.GetCell(12, 11))
	assert.Equal(t, core.Cell{Rune: '↑', Color: core.ColorRed}, scr.GetCell(44, 19))
}

func TestRenderCompactAndTooSmall(t *testing.T) {
	g := newGame(t, core.DefaultConfig(), builtin(t)...)

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	// Board box 42x15 plus sidebar, centered: x0 = 7, y0 = 3.
	assert.Equal(t, core.Cell{Rune: '↑', Color: core.ColorGreen}, scr.GetCell(10, 15))
	assert.Equal(t, '·', scr.Get(9, 7))

	small := core.NewScreen(30, 10)
	g.Render(small)
	assert.True(t, strings.Contains(small.String(), "Terminal too small"))
}

func TestRenderDeadPlayer(t *testing.T) {
	g := newGame(t, core.DefaultConfig(), hitLevel())
	g.Step(frame(core.ActionConfirm))

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	assert.Contains(t, scr.String(), "You were hit")
}
