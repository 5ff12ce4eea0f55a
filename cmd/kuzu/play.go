package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/kuzu-maze/internal/games/kuzu"
	"github.com/vovakirdan/kuzu-maze/internal/platform/tui"
	"github.com/vovakirdan/kuzu-maze/internal/storage"
)

var flagPractice bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Kuzu's Maze",
	Long: `Start a game in the terminal.

Controls:
  Arrows/hjkl/wasd - Move the cursor
  Enter/Space      - Flip the tile under the cursor
  R                - Give up this attempt
  M                - Switch between daily and practice
  N                - New practice board
  V                - Show the whole board after a win
  C                - Share your result
  Tab              - Leaderboard and stats
  Q/Ctrl+C         - Quit

Examples:
  kuzu play
  kuzu play --practice
  kuzu play --date 2025-01-01
  kuzu play --config ./my-kuzu.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagPractice, "practice", false, "Start in practice mode")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	// The TUI owns the terminal, so the game logs to a file.
	logger, logFile, err := tui.NewFileLogger(cfg.Storage.LogPath, "kuzu")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; game logs are discarded\n", err)
		logger = log.New(io.Discard)
	} else {
		defer logFile.Close()
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	rows, cols := cfg.Board.Shape(width)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := kuzu.Options{
		Mode:   kuzu.ModeDaily,
		Date:   flagDate,
		Source: catalogSource(cfg),
		Config: cfg,
		Player: cfg.Player,
		Seed:   flagSeed,
		Rows:   rows,
		Cols:   cols,
		Logger: logger,
	}
	if flagPractice {
		opts.Mode = kuzu.ModePractice
	}

	// An untyped nil keeps the TUI from calling into a missing store.
	var scores tui.ScoreSource
	store := openStore(cfg, false)
	if store != nil {
		defer store.Close()
		opts.KV = store
		opts.Leaderboard = store
		scores = store
	} else {
		opts.KV = storage.NewMemoryKV()
	}

	game, err := kuzu.New(ctx, opts)
	if err != nil {
		fail("%v", err)
	}

	if err := tui.Run(ctx, game, cfg, scores, width, height); err != nil && ctx.Err() == nil {
		fail("running game: %v", err)
	}
}
