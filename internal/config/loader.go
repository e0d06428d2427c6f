package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// localConfigPath is checked relative to the working directory.
const localConfigPath = "configs/mirrorgrid.yaml"

// Load loads the mirrorgrid configuration.
// Search order: customPath -> ~/.mirrorgrid/config.yaml -> ./configs/mirrorgrid.yaml -> embedded default
//
// Files are merged over the defaults, so a file only needs the keys it
// changes. Only an explicit customPath produces read or parse errors.
func Load(customPath string) (Config, error) {
	return load(customPath, userConfigPath("config.yaml"), localConfigPath)
}

func load(customPath, userPath, localPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Default(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Default(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, p := range []string{userPath, localPath} {
		if p == "" {
			continue
		}
		if data, err := os.ReadFile(p); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mirrorgrid", filename)
}
