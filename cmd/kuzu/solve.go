package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/kuzu-maze/internal/catalog"
	"github.com/vovakirdan/kuzu-maze/internal/maze"
)

var (
	flagSolveLimit int
	flagNarrow     bool
)

var solveCmd = &cobra.Command{
	Use:   "solve [date]",
	Short: "Print the optimal path for a day",
	Long: `Show a day's board and the shortest winning path: fewest tiles
revealed, then fewest powers used.

Spoilers, obviously.

Examples:
  kuzu solve
  kuzu solve 2025-01-01
  kuzu solve --narrow`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSolve,
}

func init() {
	solveCmd.Flags().IntVar(&flagSolveLimit, "limit", maze.DefaultSolveLimit, "Maximum search states")
	solveCmd.Flags().BoolVar(&flagNarrow, "narrow", false, "Use the narrow board layout")
}

func runSolve(_ *cobra.Command, args []string) {
	cfg := loadConfig()
	date := dateArg(args)

	rows, cols := cfg.Board.WideRows, cfg.Board.WideCols
	if flagNarrow {
		rows, cols = cfg.Board.NarrowRows, cfg.Board.NarrowCols
	}

	res := catalog.Resolve(context.Background(), catalogSource(cfg), date, rows, cols, -1, log.New(io.Discard))
	board := res.Board

	fmt.Printf("Board - %s\n", date)
	fmt.Println()
	for r := range board.Rows() {
		var line strings.Builder
		for c := range board.Cols() {
			line.WriteString(board.At(maze.At(r, c)).Glyph())
		}
		fmt.Println("  " + line.String())
	}
	fmt.Println()

	sol, ok := maze.Solve(board, flagSolveLimit)
	if !ok {
		fmt.Println("No solution found within the search limit.")
		return
	}
	steps := make([]string, len(sol.Path))
	for i, c := range sol.Path {
		steps[i] = c.String()
	}
	fmt.Printf("Tiles: %d  Powers: %d\n", sol.Tiles, sol.Powers)
	fmt.Printf("Path:  %s\n", strings.Join(steps, " -> "))
	if res.Optimal != nil && (res.Optimal.Tiles != sol.Tiles || res.Optimal.Powers != sol.Powers) {
		fmt.Printf("Catalog baseline differs: %d tiles, %d powers\n", res.Optimal.Tiles, res.Optimal.Powers)
	}
}
