package kuzu

import (
	"github.com/vovakirdan/kuzu-maze/internal/maze"
	"github.com/vovakirdan/kuzu-maze/internal/scoring"
)

// View is everything a renderer needs to draw the game.
type View struct {
	Snapshot    maze.Snapshot
	Board       maze.Board
	Mode        Mode
	Date        string
	Completed   bool // today's daily is done
	RevealAll   bool
	FromCatalog bool
	Optimal     *scoring.Optimal
	Breakdown   *scoring.Breakdown
	Streak      *scoring.Streak
	Result      *GameResult
}

// View returns the current presentation state.
func (g *Game) View() View {
	return View{
		Snapshot:    g.session.Snapshot(),
		Board:       g.session.Board(),
		Mode:        g.mode,
		Date:        g.date,
		Completed:   g.completed,
		RevealAll:   g.revealAll,
		FromCatalog: g.fromCatalog,
		Optimal:     g.optimal,
		Breakdown:   g.breakdown,
		Streak:      g.streak,
		Result:      g.result,
	}
}

// FaceUp reports whether c should be drawn with its tile showing.
func (v View) FaceUp(c maze.Coord) bool {
	return v.RevealAll || v.Snapshot.IsRevealed(c)
}

// Finished reports whether the puzzle accepts no more input.
func (v View) Finished() bool {
	return v.Snapshot.Won || v.Completed
}
