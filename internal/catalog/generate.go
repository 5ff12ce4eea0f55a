package catalog

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/kuzu-maze/internal/maze"
	"github.com/vovakirdan/kuzu-maze/internal/scoring"
)

// GenerateOptions controls catalog generation.
type GenerateOptions struct {
	Start      string // first date, YYYY-MM-DD
	Days       int
	Rows, Cols int
	SolveLimit int // states per board; <= 0 uses the solver default
	Workers    int // <= 0 uses GOMAXPROCS
}

// Generate builds daily boards for a date range and solves each one.
// Boards the solver cannot finish within the limit are stored without an
// optimal baseline.
func Generate(ctx context.Context, opts GenerateOptions) (Catalog, error) {
	start, err := time.Parse(scoring.DateLayout, opts.Start)
	if err != nil {
		return nil, fmt.Errorf("catalog: invalid start date %q: %w", opts.Start, err)
	}
	if opts.Days <= 0 {
		return Catalog{}, nil
	}
	if opts.Rows*opts.Cols != maze.CellCount || opts.Rows <= 0 {
		return nil, fmt.Errorf("catalog: invalid board shape %dx%d", opts.Rows, opts.Cols)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	dates := make([]string, opts.Days)
	entries := make([]Entry, opts.Days)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i).Format(scoring.DateLayout)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, date := range dates {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			entries[i] = BuildEntry(date, opts.Rows, opts.Cols, opts.SolveLimit)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cat := make(Catalog, len(dates))
	for i, date := range dates {
		cat[date] = entries[i]
	}
	return cat, nil
}

// BuildEntry generates and solves the board for a single date.
func BuildEntry(date string, rows, cols, solveLimit int) Entry {
	b := maze.DailyBoard(date, rows, cols)
	return Entry{Board: b.Grid(), Optimal: baseline(b, solveLimit)}
}
