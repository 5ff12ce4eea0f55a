// Package scoring rates completed puzzles and tracks daily streaks.
package scoring

import (
	"math"

	"github.com/vovakirdan/kuzu-maze/internal/maze"
)

// Score component caps.
const (
	MaxAttemptPoints = 50
	MaxTilePoints    = 30
	MaxPowerPoints   = 20
)

// minTiles is the mandatory minimum: one tile per flower.
const minTiles = maze.GoalCount

// powerPenalty is subtracted once per distinct power kind used.
var powerPenalty = map[maze.Tile]int{
	maze.Grapple:   3,
	maze.ExtraLife: 5,
	maze.Diagonal:  4,
	maze.Wildcard:  8,
	maze.Warp:      6,
}

// Optimal is the precomputed best solution for a board.
type Optimal struct {
	Tiles  int `json:"tiles" yaml:"tiles"`
	Powers int `json:"powers" yaml:"powers"`
}

// Rating returns 1..5 stars for a win compared to the optimal baseline.
// Without a baseline the rating is a neutral 3.
func Rating(tiles, powers int, opt *Optimal) int {
	if opt == nil {
		return 3
	}
	switch {
	case tiles == opt.Tiles && powers == opt.Powers:
		return 5
	case tiles == opt.Tiles+1 || (tiles == opt.Tiles && powers == opt.Powers+1):
		return 4
	case tiles <= opt.Tiles+3 && powers <= opt.Powers+2:
		return 3
	case tiles <= opt.Tiles+6 && powers <= opt.Powers+4:
		return 2
	default:
		return 1
	}
}

// AttemptPoints scores how quickly the puzzle was solved.
// Attempts 1-5 step down by 5 to 30; each later block of five steps down
// by 1 and ends on 20, 10 and 0 respectively.
func AttemptPoints(attempt int) int {
	switch {
	case attempt <= 1:
		return MaxAttemptPoints
	case attempt <= 5:
		return 55 - 5*attempt
	case attempt <= 10:
		return 30 - attempt
	case attempt <= 15:
		return 25 - attempt
	case attempt <= 20:
		return 20 - attempt
	default:
		return 0
	}
}

// TilePoints scores path efficiency.
func TilePoints(tiles int) int {
	switch {
	case tiles <= minTiles:
		return MaxTilePoints
	case tiles >= maze.CellCount:
		return 0
	}
	span := float64(maze.CellCount - minTiles)
	pts := int(math.Round(MaxTilePoints - float64(tiles-minTiles)/span*MaxTilePoints))
	return max(pts, 0)
}

// PowerPoints scores how few powers were needed.
func PowerPoints(powers maze.PowerSet) int {
	pts := MaxPowerPoints
	for _, t := range powers.Tiles() {
		pts -= powerPenalty[t]
	}
	return max(pts, 0)
}

// Input holds the counters of a winning attempt.
type Input struct {
	Attempt int
	Tiles   int
	Powers  maze.PowerSet
}

// Breakdown is the full score of a win.
type Breakdown struct {
	Attempts int `json:"attempts"`
	Tiles    int `json:"tiles"`
	Powers   int `json:"powers"`
	Total    int `json:"total"`
	Stars    int `json:"stars"`
}

// Evaluate computes the score breakdown and star rating of a win.
func Evaluate(in Input, opt *Optimal) Breakdown {
	b := Breakdown{
		Attempts: AttemptPoints(in.Attempt),
		Tiles:    TilePoints(in.Tiles),
		Powers:   PowerPoints(in.Powers),
		Stars:    Rating(in.Tiles, in.Powers.Len(), opt),
	}
	b.Total = b.Attempts + b.Tiles + b.Powers
	return b
}
