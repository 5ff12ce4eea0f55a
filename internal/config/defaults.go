package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/kuzu.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{
			WideRows:    4,
			WideCols:    5,
			NarrowRows:  5,
			NarrowCols:  4,
			NarrowBelow: 48,
		},
		Timing: TimingConfig{
			RevealDelay:  300 * time.Millisecond,
			TurnEndDelay: 1500 * time.Millisecond,
		},
		Scoring: ScoringConfig{
			StreakMaxAttempts: 20,
			LeaderboardSize:   10,
			SolveLimit:        500000,
		},
		Catalog: CatalogConfig{
			Timeout: 3 * time.Second,
		},
		Storage: StorageConfig{
			Path:    "~/.kuzu/kuzu.db",
			LogPath: "~/.kuzu/kuzu.log",
		},
		Server: ServerConfig{
			SSHAddress:  ":2222",
			HostKeyPath: ".ssh/kuzu_ed25519",
			IdleTimeout: 30 * time.Minute,
			CatalogAddr: ":8080",
		},
		Player: "KUZ",
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
