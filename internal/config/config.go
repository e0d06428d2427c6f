// Package config provides YAML-based configuration loading for mirrorgrid.
package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/mirrorgrid/internal/engine"
)

// Config contains all configuration for mirrorgrid.
type Config struct {
	Grid   GridConfig   `yaml:"grid"`
	Play   PlayConfig   `yaml:"play"`
	Levels LevelsConfig `yaml:"levels"`
	Log    LogConfig    `yaml:"log"`
}

// GridConfig defines the grid size for levels that do not declare one.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Bounds returns the grid size as engine bounds.
func (g GridConfig) Bounds() engine.Bounds {
	return engine.Bounds{W: g.Width, H: g.Height}
}

// PlayConfig defines the interactive loop.
type PlayConfig struct {
	TickRate      int  `yaml:"tick_rate"`       // UI frames per second
	AutoTick      bool `yaml:"auto_tick"`       // Advance on a timer as well as on Enter
	AutoTickEvery int  `yaml:"auto_tick_every"` // Frames between automatic advances
}

// LevelsConfig selects where levels come from.
type LevelsConfig struct {
	Dir   string `yaml:"dir"`   // Empty means built-in levels
	Start string `yaml:"start"` // Level ID to start from
}

// LogConfig defines logging.
type LogConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn" or "error"
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return fmt.Errorf("config: grid size must be positive, got %dx%d", c.Grid.Width, c.Grid.Height)
	}
	if c.Play.TickRate <= 0 {
		return fmt.Errorf("config: play.tick_rate must be positive, got %d", c.Play.TickRate)
	}
	if c.Play.AutoTickEvery <= 0 {
		return fmt.Errorf("config: play.auto_tick_every must be positive, got %d", c.Play.AutoTickEvery)
	}
	level := strings.ToLower(c.Log.Level)
	for _, l := range logLevels {
		if level == l {
			return nil
		}
	}
	return fmt.Errorf("config: unknown log.level %q (want one of %s)", c.Log.Level, strings.Join(logLevels, ", "))
}
