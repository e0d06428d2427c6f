package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mirrorgrid/internal/levels"
)

var flagCheckTicks int

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Run levels without the UI and report faults",
	Long: `Load level files and run each one for --ticks ticks. With no files,
every level from the configured source is checked.

A level fails when it does not load or when an arrow leaves the grid
before the player is hit. The command exits non-zero if any level fails.

Examples:
  mirrorgrid check
  mirrorgrid check ./levels/maze.yaml ./levels/spiral.yaml --ticks 500`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().IntVar(&flagCheckTicks, "ticks", 200, "Ticks to run each level")
}

func runCheck(_ *cobra.Command, args []string) error {
	var lvls []levels.Level
	failed := 0

	if len(args) == 0 {
		all, err := loadLevels()
		if err != nil {
			return err
		}
		lvls = all
	} else {
		for _, p := range args {
			lvl, err := levels.LoadPath(p, cfg.Grid.Bounds())
			if err != nil {
				logger.Error("load failed", "file", p, "err", err)
				failed++
				continue
			}
			lvls = append(lvls, lvl)
		}
	}

	for i := range lvls {
		if !checkLevel(&lvls[i], flagCheckTicks) {
			failed++
		}
	}

	total := len(lvls)
	if len(args) > 0 {
		total = len(args)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d levels failed", failed, total)
	}
	logger.Info("all levels passed", "count", total)
	return nil
}

// checkLevel runs one level headless and logs the outcome.
func checkLevel(lvl *levels.Level, ticks int) bool {
	world, err := lvl.NewWorld()
	if err != nil {
		logger.Error("invalid level", "level", lvl.ID, "err", err)
		return false
	}

	applied, err := world.Run(ticks)
	if err != nil {
		logger.Error("fault", "level", lvl.ID, "tick", applied+1, "err", err)
		return false
	}

	logger.Info("ok",
		"level", lvl.ID,
		"ticks", applied,
		"player", world.Player().State,
		"automatic", world.AutomaticCount(),
	)
	return true
}
