package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mirrorgrid/internal/game"
	"github.com/vovakirdan/mirrorgrid/internal/levels/formats"
	"github.com/vovakirdan/mirrorgrid/internal/platform/tui"
)

var flagAuto bool

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play starting from a level",
	Long: `Start playing at the given level, or at levels.start from the config,
or at the first level. Clearing a level moves on to the next one.

Controls:
  Enter/Space  - Advance one tick (next level once cleared)
  A            - Toggle auto tick
  P            - Pause auto tick
  R            - Restart the level
  Esc          - Leave
  Q/Ctrl+C     - Quit
  ?            - More help

Examples:
  mirrorgrid play
  mirrorgrid play lvl03
  mirrorgrid play --auto --fps 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagAuto, "auto", false, "Advance automatically as well as on Enter")
}

func runPlay(_ *cobra.Command, args []string) error {
	lvls, err := loadLevels()
	if err != nil {
		return err
	}

	id := cfg.Levels.Start
	if len(args) > 0 {
		id = args[0]
	}
	idx, err := levelIndex(lvls, id)
	if err != nil {
		return err
	}

	rc := runtimeConfig()
	if flagAuto {
		rc.AutoTick = true
	}

	g := game.New(lvls, idx)
	res, err := tui.Run(g, rc)
	if err != nil {
		return err
	}
	reportSession(g, res)
	return nil
}

// reportSession logs how a session ended. It runs after the TUI has left the
// alternate screen.
func reportSession(g *game.Game, res tui.Result) {
	lvl, idx, ok := g.Level()
	if !ok {
		logger.Info("all levels cleared", "score", res.State.Score)
		return
	}

	if g.Status() == game.StatusFault {
		logger.Error("simulation fault", "level", lvl.ID, "file", lvl.FilePath, "err", g.Fault())
		if st, ok := g.Snapshot(); ok {
			if doc, err := formats.MarshalState(st); err == nil {
				logger.Debug("world before the faulting tick\n" + string(doc))
			}
		}
		return
	}

	logger.Info("session ended",
		"level", lvl.ID,
		"index", idx+1,
		"status", g.Status(),
		"tick", g.LastReport().Tick,
		"score", res.State.Score,
	)
}
