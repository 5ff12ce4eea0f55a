package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "kuzu.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.kuzu/config.yaml -> ./configs/kuzu.yaml -> embedded default.
// Keys missing from a file keep their default values.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Default(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Default(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", fileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the settings the game cannot run without.
func (c Config) Validate() error {
	b := c.Board
	if b.WideRows*b.WideCols != 20 || b.WideRows <= 0 {
		return fmt.Errorf("config: wide board %dx%d must hold 20 cells", b.WideRows, b.WideCols)
	}
	if b.NarrowRows*b.NarrowCols != 20 || b.NarrowRows <= 0 {
		return fmt.Errorf("config: narrow board %dx%d must hold 20 cells", b.NarrowRows, b.NarrowCols)
	}
	if c.Timing.RevealDelay < 0 || c.Timing.TurnEndDelay < 0 {
		return fmt.Errorf("config: delays must not be negative")
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kuzu", filename)
}
