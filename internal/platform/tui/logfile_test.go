package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/kuzu-maze/internal/config"
	"github.com/vovakirdan/kuzu-maze/internal/games/kuzu"
	"github.com/vovakirdan/kuzu-maze/internal/storage"
)

func TestGameLogsGoToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "kuzu.log")
	logger, f, err := NewFileLogger(path, "kuzu")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	cfg := config.Default()
	cfg.Scoring.SolveLimit = -1
	g, err := kuzu.New(context.Background(), kuzu.Options{
		Mode:   kuzu.ModePractice,
		Date:   testDate,
		Config: cfg,
		KV:     storage.NewMemoryKV(),
		Seed:   7,
		Logger: logger,
	})
	if err != nil {
		t.Fatalf("kuzu.New() error = %v", err)
	}

	// what the new-game and mode keys do
	g.Reset(context.Background())
	g.ToggleMode(context.Background())
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	for _, want := range []string{"practice board ready", "daily board ready"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log file missing %q:\n%s", want, data)
		}
	}
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kuzu.log")
	for _, msg := range []string{"first", "second"} {
		logger, f, err := NewFileLogger(path, "kuzu")
		if err != nil {
			t.Fatalf("NewFileLogger() error = %v", err)
		}
		logger.Info(msg)
		f.Close()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "first") || !strings.Contains(string(data), "second") {
		t.Errorf("log file = %q, want both lines", data)
	}
}
