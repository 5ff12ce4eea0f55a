package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatch(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded YAML = %+v, want %+v", cfg, Default())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("timing:\n  reveal_delay: 50ms\nscoring:\n  streak_max_attempts: 100\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Timing.RevealDelay != 50*time.Millisecond {
		t.Errorf("RevealDelay = %v, want 50ms", cfg.Timing.RevealDelay)
	}
	if cfg.Scoring.StreakMaxAttempts != 100 {
		t.Errorf("StreakMaxAttempts = %d, want 100", cfg.Scoring.StreakMaxAttempts)
	}
	// untouched keys keep defaults
	if cfg.Timing.TurnEndDelay != 1500*time.Millisecond {
		t.Errorf("TurnEndDelay = %v, want 1.5s", cfg.Timing.TurnEndDelay)
	}
	if cfg.Board.WideCols != 5 {
		t.Errorf("WideCols = %d, want 5", cfg.Board.WideCols)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("board:\n  wide_rows: 3\n  wide_cols: 3\n"), 0o644)
	if _, err := Load(path); err == nil {
		t.Error("Load() accepted a 9-cell board")
	}

	os.WriteFile(path, []byte("board: [unclosed"), 0o644)
	if _, err := Load(path); err == nil {
		t.Error("Load() accepted malformed YAML")
	}
}

func TestBoardShape(t *testing.T) {
	b := Default().Board
	tests := []struct {
		width      int
		rows, cols int
	}{
		{0, 4, 5},
		{30, 5, 4},
		{47, 5, 4},
		{48, 4, 5},
		{120, 4, 5},
	}
	for _, tt := range tests {
		r, c := b.Shape(tt.width)
		if r != tt.rows || c != tt.cols {
			t.Errorf("Shape(%d) = %dx%d, want %dx%d", tt.width, r, c, tt.rows, tt.cols)
		}
	}
}
