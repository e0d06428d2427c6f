// mirrorgrid is a turn-based grid puzzle played in the terminal. Arrows move
// one cell per tick, mirrors turn them, and arrows that meet destroy each other.
//
// Usage:
//
//	mirrorgrid list                 - List levels
//	mirrorgrid play [level]         - Play from a level
//	mirrorgrid menu                 - Pick levels interactively
//	mirrorgrid simulate <level>     - Run a level headless and print its state
//	mirrorgrid check [files...]     - Run levels headless and report faults
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.mirrorgrid, ./configs)
//	--levels <dir>      - Level directory (default: built-in levels)
//	--fps <rate>        - UI frame rate (default from config)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mirrorgrid/internal/config"
	"github.com/vovakirdan/mirrorgrid/internal/core"
	"github.com/vovakirdan/mirrorgrid/internal/levels"
)

var (
	// Global flags
	flagConfig   string
	flagLevels   string
	flagFPS      int
	flagLogLevel string
)

var (
	cfg    = config.Default()
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "mirrorgrid",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mirrorgrid",
	Short: "Mirrorgrid - steer an arrow through a grid of mirrors",
	Long: `Mirrorgrid is a turn-based puzzle on a rectangular grid.

Every tick the player arrow and all enemy arrows move one cell. Mirrors
("/" and "\") turn whatever enters them. Enemies that meet destroy each
other; an enemy that meets the player ends the level. Clear all enemies
to move on.

Available commands:
  list      - Show all levels
  play      - Play starting from a level
  menu      - Interactive level picker
  simulate  - Run a level without the UI and print the final state
  check     - Run levels without the UI and report faults

Examples:
  mirrorgrid list
  mirrorgrid play lvl02
  mirrorgrid play --auto
  mirrorgrid simulate lvl01 --ticks 30
  mirrorgrid check ./my-levels/*.yaml --levels ./my-levels`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Level directory (empty = built-in levels)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "UI frames per second (0 = config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(checkCmd)
}

// setup loads the config and applies flag overrides before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	cfg = loaded

	if flagLevels != "" {
		cfg.Levels.Dir = flagLevels
	}
	if flagFPS > 0 {
		cfg.Play.TickRate = flagFPS
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger.SetLevel(level)
	logger.Debug("config loaded", "grid", cfg.Grid.Bounds().String(), "levels", levelSource(), "fps", cfg.Play.TickRate)
	return nil
}

// levelLoader returns the configured level source.
func levelLoader() *levels.Loader {
	var l *levels.Loader
	if cfg.Levels.Dir != "" {
		l = levels.NewLoader(cfg.Levels.Dir)
	} else {
		l = levels.Builtin()
	}
	l.DefaultSize = cfg.Grid.Bounds()
	return l
}

func levelSource() string {
	if cfg.Levels.Dir != "" {
		return cfg.Levels.Dir
	}
	return "built-in"
}

// loadLevels loads every level from the configured source.
func loadLevels() ([]levels.Level, error) {
	lvls, err := levelLoader().LoadAll()
	if err != nil {
		return nil, fmt.Errorf("loading levels from %s: %w", levelSource(), err)
	}
	if len(lvls) == 0 {
		return nil, fmt.Errorf("no levels found in %s", levelSource())
	}
	return lvls, nil
}

// levelIndex finds id in lvls. An empty id selects the first level.
func levelIndex(lvls []levels.Level, id string) (int, error) {
	if id == "" {
		return 0, nil
	}
	for i, l := range lvls {
		if l.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s (run 'mirrorgrid list')", levels.ErrNotFound, id)
}

// runtimeConfig builds the UI config from the terminal size and the config.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:       width,
		ScreenH:       height,
		TickRate:      cfg.Play.TickRate,
		AutoTick:      cfg.Play.AutoTick,
		AutoTickEvery: cfg.Play.AutoTickEvery,
	}
}
