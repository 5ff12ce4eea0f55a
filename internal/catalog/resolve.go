package catalog

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/kuzu-maze/internal/maze"
	"github.com/vovakirdan/kuzu-maze/internal/scoring"
)

// Resolved is the board chosen for a date.
type Resolved struct {
	Board       maze.Board
	Optimal     *scoring.Optimal
	FromCatalog bool
}

// Resolve returns the board for date in the requested shape.
// A catalog entry is used when it is present and valid; on any failure the
// board is generated locally from the date seed, so the result is always
// playable.
//
// A board without a usable baseline is solved locally within solveLimit
// states; solveLimit < 0 leaves it unrated.
func Resolve(ctx context.Context, src Source, date string, rows, cols, solveLimit int, logger *log.Logger) Resolved {
	if logger == nil {
		logger = log.Default()
	}
	r := lookup(ctx, src, date, rows, cols, logger)
	if r.Optimal == nil && solveLimit >= 0 {
		r.Optimal = baseline(r.Board, solveLimit)
		if r.Optimal == nil {
			logger.Warn("no baseline within the solve limit", "date", date, "limit", solveLimit)
		}
	}
	return r
}

func lookup(ctx context.Context, src Source, date string, rows, cols int, logger *log.Logger) Resolved {
	local := Resolved{Board: maze.DailyBoard(date, rows, cols)}
	if src == nil {
		return local
	}

	e, err := src.Lookup(ctx, date)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.Debug("no catalog entry, generating locally", "date", date)
		} else {
			logger.Warn("catalog lookup failed, generating locally", "date", date, "err", err)
		}
		return local
	}

	b, err := e.ToBoard()
	if err != nil {
		logger.Warn("catalog entry rejected, generating locally", "date", date, "err", err)
		return local
	}

	opt := e.Optimal
	if b.Rows() != rows || b.Cols() != cols {
		b, err = b.Reshape(rows, cols)
		if err != nil {
			logger.Warn("catalog entry cannot be reshaped", "date", date, "err", err)
			return local
		}
		// adjacency changed, so the stored solution no longer applies
		opt = nil
	}
	return Resolved{Board: b, Optimal: opt, FromCatalog: true}
}

func baseline(b maze.Board, limit int) *scoring.Optimal {
	sol, ok := maze.Solve(b, limit)
	if !ok {
		return nil
	}
	return &scoring.Optimal{Tiles: sol.Tiles, Powers: sol.Powers}
}
