// Package game adapts the mirrorgrid engine to the terminal platform.
// It owns the level sequence, turns input frames into ticks and draws the
// board into a core.Screen.
package game

import (
	"github.com/vovakirdan/mirrorgrid/internal/core"
	"github.com/vovakirdan/mirrorgrid/internal/engine"
	"github.com/vovakirdan/mirrorgrid/internal/levels"
)

// DestroyBonus is added to the score for each destroyed automatic entity.
const DestroyBonus = 10

// Status is where the current level stands.
type Status int

const (
	StatusPlaying Status = iota
	StatusDead           // Player was hit; restart to try again
	StatusCleared        // No automatic entities left; confirm to continue
	StatusWon            // Last level cleared
	StatusFault          // Engine rejected a tick or the level
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusDead:
		return "dead"
	case StatusCleared:
		return "cleared"
	case StatusWon:
		return "won"
	case StatusFault:
		return "fault"
	default:
		return "unknown"
	}
}

// Game plays a sequence of levels.
type Game struct {
	levels []levels.Level
	start  int
	index  int

	world  *engine.World
	fault  error
	status Status
	last   engine.TickReport

	frame     uint64 // UI frames since the level started
	autoTick  bool
	autoEvery int
	paused    bool

	score     int // Banked score of finished levels
	destroyed int // Automatic entities destroyed on the current level
}

// New creates a game over lvls, starting at index start.
func New(lvls []levels.Level, start int) *Game {
	if start < 0 || start >= len(lvls) {
		start = 0
	}
	return &Game{
		levels:    lvls,
		start:     start,
		autoEvery: core.DefaultConfig().AutoTickEvery,
	}
}

// Reset starts over from the first selected level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.autoTick = cfg.AutoTick
	if cfg.AutoTickEvery > 0 {
		g.autoEvery = cfg.AutoTickEvery
	}
	g.paused = false
	g.score = 0
	g.index = g.start
	g.loadLevel()
}

// loadLevel builds a fresh world for the level at index.
func (g *Game) loadLevel() {
	g.world = nil
	g.fault = nil
	g.last = engine.TickReport{Collider: -1}
	g.frame = 0
	g.destroyed = 0

	if g.index >= len(g.levels) {
		g.status = StatusWon
		return
	}

	w, err := g.levels[g.index].NewWorld()
	if err != nil {
		g.fault = err
		g.status = StatusFault
		return
	}
	g.world = w
	g.status = StatusPlaying
}

// Step processes one UI frame. Confirm advances the world by one tick;
// with auto tick on, every autoEvery frames also advance it.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.frame++

	if in.Has(core.ActionAutoTick) {
		g.autoTick = !g.autoTick
		g.paused = false
	}
	if in.Has(core.ActionPause) && g.autoTick {
		g.paused = !g.paused
	}

	if in.Has(core.ActionRestart) {
		if g.status == StatusWon || len(g.levels) == 0 {
			g.score = 0
			g.index = g.start
		}
		g.loadLevel()
		return core.StepResult{State: g.State()}
	}

	advanced := false
	switch g.status {
	case StatusPlaying:
		auto := g.autoTick && !g.paused && g.frame%uint64(g.autoEvery) == 0
		if in.Has(core.ActionConfirm) || auto {
			advanced = g.advance()
		}
	case StatusCleared:
		if in.Has(core.ActionConfirm) {
			g.score += g.levelScore()
			g.index++
			g.loadLevel()
		}
	}

	return core.StepResult{State: g.State(), Advanced: advanced}
}

// advance applies one tick and updates the status.
func (g *Game) advance() bool {
	report, err := g.world.Advance()
	if err != nil {
		g.fault = err
		g.status = StatusFault
		return false
	}
	if !report.Applied {
		return false
	}

	g.last = report
	g.destroyed += len(report.Removed)

	switch {
	case report.PlayerDied:
		g.status = StatusDead
	case g.world.AutomaticCount() == 0:
		g.status = StatusCleared
	}
	return true
}

func (g *Game) levelScore() int {
	if g.world == nil {
		return 0
	}
	return int(g.world.Tick()) + DestroyBonus*g.destroyed
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score + g.levelScore(),
		GameOver: g.status == StatusWon,
		Paused:   g.paused,
		Status:   g.status.String(),
	}
}

// Status returns the status of the current level.
func (g *Game) Status() Status {
	return g.status
}

// Fault returns the error that stopped the current level, if any.
func (g *Game) Fault() error {
	return g.fault
}

// Level returns the current level and its position in the sequence.
func (g *Game) Level() (levels.Level, int, bool) {
	if g.index >= len(g.levels) {
		return levels.Level{}, g.index, false
	}
	return g.levels[g.index], g.index, true
}

// Snapshot returns a copy of the current world.
func (g *Game) Snapshot() (engine.State, bool) {
	if g.world == nil {
		return engine.State{}, false
	}
	return g.world.State(), true
}

// LastReport returns the report of the last applied tick.
func (g *Game) LastReport() engine.TickReport {
	return g.last
}
