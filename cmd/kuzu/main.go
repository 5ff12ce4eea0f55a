// Command kuzu is Kuzu's Maze, a daily memory maze for the terminal.
//
// Usage:
//
//	kuzu play                 Play today's daily puzzle
//	kuzu play --practice      Play unlimited practice boards
//	kuzu serve                Serve the game over SSH
//	kuzu stats                Show your streak and history
//	kuzu scores [date]        Show a day's leaderboard
//	kuzu solve [date]         Print the optimal path for a day
//	kuzu catalog generate     Precompute a board catalog
//	kuzu catalog serve        Serve a board catalog over HTTP
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/kuzu-maze/internal/catalog"
	"github.com/vovakirdan/kuzu-maze/internal/config"
	"github.com/vovakirdan/kuzu-maze/internal/scoring"
	"github.com/vovakirdan/kuzu-maze/internal/storage"
)

var (
	flagDBPath string
	flagConfig string
	flagSeed   int64
	flagDate   string
	flagPlayer string
)

var rootCmd = &cobra.Command{
	Use:   "kuzu",
	Short: "Kuzu's Maze - a daily memory maze",
	Long: `Kuzu's Maze hides five flowers under a grid of face-down tiles.
Flip adjacent tiles to collect them in order. Stones are safe, the hazard
ends your attempt, and power tiles bend the rules.

Everyone gets the same board each day.

Examples:
  kuzu play
  kuzu play --practice --seed 42
  kuzu serve --ssh :2222
  kuzu scores 2025-01-01`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the records database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a custom config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "First practice board seed (0 = random)")
	rootCmd.PersistentFlags().StringVar(&flagDate, "date", "", "Play or inspect a fixed day (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Leaderboard initials (default from config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(catalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// loadConfig reads the config and applies the persistent flag overrides.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagPlayer != "" {
		cfg.Player = flagPlayer
	}
	cfg.Player = storage.NormalizeInitials(cfg.Player)
	return cfg
}

// openStore opens the records database. Commands that can run without it
// get a nil store and a warning.
func openStore(cfg config.Config, required bool) *storage.Store {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		if required {
			fail("cannot open records database: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Warning: could not open records database: %v\n", err)
		fmt.Fprintln(os.Stderr, "Progress will not be saved.")
		return nil
	}
	return store
}

// catalogSource chains the configured catalog file and URL. It returns nil
// when neither is set, so boards are generated locally.
func catalogSource(cfg config.Config) catalog.Source {
	var sources []catalog.Source
	if cfg.Catalog.Path != "" {
		sources = append(sources, catalog.NewFileSource(cfg.Catalog.Path))
	}
	if cfg.Catalog.URL != "" {
		sources = append(sources, catalog.NewHTTPSource(cfg.Catalog.URL, cfg.Catalog.Timeout))
	}
	if len(sources) == 0 {
		return nil
	}
	return catalog.Chain(sources...)
}

// dateArg picks the day from an argument, the --date flag or today.
func dateArg(args []string) string {
	date := flagDate
	if len(args) > 0 {
		date = args[0]
	}
	if date == "" {
		return time.Now().Format(scoring.DateLayout)
	}
	if _, err := time.Parse(scoring.DateLayout, date); err != nil {
		fail("invalid date %q, want YYYY-MM-DD", date)
	}
	return date
}
