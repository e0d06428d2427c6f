package config

import (
	_ "embed"
)

//go:embed defaults/mirrorgrid.yaml
var defaultYAML []byte

// Default returns the hardcoded default configuration.
func Default() Config {
	return Config{
		Grid: GridConfig{
			Width:  40,
			Height: 13,
		},
		Play: PlayConfig{
			TickRate:      30,
			AutoTick:      false,
			AutoTickEvery: 15,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
