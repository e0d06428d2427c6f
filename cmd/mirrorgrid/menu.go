package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mirrorgrid/internal/game"
	"github.com/vovakirdan/mirrorgrid/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick levels interactively",
	Long: `Start mirrorgrid in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a level.
Esc during a level returns to the menu.

Controls:
  Up/Down/j/k  - Navigate levels
  Enter/Space  - Play level
  Q/Esc        - Quit

Examples:
  mirrorgrid menu
  mirrorgrid menu --levels ./my-levels`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	lvls, err := levelLoader().LoadAll()
	if err != nil {
		return err
	}

	cursor, err := levelIndex(lvls, cfg.Levels.Start)
	if err != nil {
		logger.Warn("ignoring levels.start", "err", err)
		cursor = 0
	}

	// Menu loop
	for {
		rc := runtimeConfig()
		menuResult, err := tui.RunMenu(lvls, rc.ScreenW, rc.ScreenH, cursor)
		if err != nil {
			return err
		}
		if menuResult.Quit {
			return nil
		}
		cursor = menuResult.Index

		g := game.New(lvls, menuResult.Index)
		res, err := tui.Run(g, runtimeConfig())
		if err != nil {
			return err
		}
		reportSession(g, res)

		if !res.Back {
			return nil
		}
	}
}
