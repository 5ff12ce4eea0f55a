// Package config provides YAML-based configuration loading for the maze
// game, its catalog and its servers.
package config

import "time"

// Config contains all runtime settings.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Timing  TimingConfig  `yaml:"timing"`
	Scoring ScoringConfig `yaml:"scoring"`
	Catalog CatalogConfig `yaml:"catalog"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Player  string        `yaml:"player"`
}

// BoardConfig defines the two board layouts and when to pick the narrow one.
type BoardConfig struct {
	WideRows    int `yaml:"wide_rows"`
	WideCols    int `yaml:"wide_cols"`
	NarrowRows  int `yaml:"narrow_rows"`
	NarrowCols  int `yaml:"narrow_cols"`
	NarrowBelow int `yaml:"narrow_below"` // terminal width in columns
}

// Shape returns the layout for a terminal of the given width.
func (b BoardConfig) Shape(width int) (rows, cols int) {
	if width > 0 && width < b.NarrowBelow {
		return b.NarrowRows, b.NarrowCols
	}
	return b.WideRows, b.WideCols
}

// TimingConfig defines presentation delays during which input is locked.
type TimingConfig struct {
	RevealDelay  time.Duration `yaml:"reveal_delay"`
	TurnEndDelay time.Duration `yaml:"turn_end_delay"`
}

// ScoringConfig defines streak and leaderboard limits.
type ScoringConfig struct {
	StreakMaxAttempts int `yaml:"streak_max_attempts"` // <= 0 disables the limit
	LeaderboardSize   int `yaml:"leaderboard_size"`
	SolveLimit        int `yaml:"solve_limit"` // < 0 skips solving boards without a baseline
}

// CatalogConfig points at an optional precomputed board catalog.
type CatalogConfig struct {
	Path    string        `yaml:"path"`
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// StorageConfig defines where records are kept.
type StorageConfig struct {
	Path    string `yaml:"path"`
	LogPath string `yaml:"log_path"` // local play logs here instead of the terminal
}

// ServerConfig defines the SSH and catalog HTTP listeners.
type ServerConfig struct {
	SSHAddress  string        `yaml:"ssh_address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	CatalogAddr string        `yaml:"catalog_address"`
}
