package maze

import (
	"errors"
	"fmt"
)

// CellCount is the number of cells on every board.
const CellCount = 20

// Errors returned when validating externally supplied boards.
var (
	ErrShape       = errors.New("maze: board must have exactly 20 cells")
	ErrComposition = errors.New("maze: board does not hold the canonical tile set")
)

// Board is an immutable rectangular grid of tiles stored row-major.
type Board struct {
	rows  int
	cols  int
	tiles []Tile
}

// NewBoard validates shape and composition and returns a board.
// Used for boards that come from outside the generator (catalog, snapshots).
func NewBoard(rows, cols int, tiles []Tile) (Board, error) {
	if rows <= 0 || cols <= 0 || rows*cols != CellCount || len(tiles) != CellCount {
		return Board{}, fmt.Errorf("%w: got %dx%d with %d tiles", ErrShape, rows, cols, len(tiles))
	}
	if !ValidComposition(tiles) {
		return Board{}, ErrComposition
	}
	cp := make([]Tile, len(tiles))
	copy(cp, tiles)
	return Board{rows: rows, cols: cols, tiles: cp}, nil
}

// MustBoard is like NewBoard but panics on invalid input.
func MustBoard(rows, cols int, tiles []Tile) Board {
	b, err := NewBoard(rows, cols, tiles)
	if err != nil {
		panic(err)
	}
	return b
}

// BoardFromGrid builds a board from a slice of rows, as found in catalog files.
func BoardFromGrid(grid [][]int) (Board, error) {
	if len(grid) == 0 {
		return Board{}, fmt.Errorf("%w: empty grid", ErrShape)
	}
	cols := len(grid[0])
	tiles := make([]Tile, 0, CellCount)
	for _, row := range grid {
		if len(row) != cols {
			return Board{}, fmt.Errorf("%w: ragged rows", ErrShape)
		}
		for _, v := range row {
			if v < int(Stone) || v > int(Hazard) {
				return Board{}, fmt.Errorf("maze: unknown tile value %d", v)
			}
			tiles = append(tiles, Tile(v))
		}
	}
	return NewBoard(len(grid), cols, tiles)
}

// Rows returns the number of rows.
func (b Board) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b Board) Cols() int { return b.cols }

// IsZero reports whether the board was never initialized.
func (b Board) IsZero() bool { return len(b.tiles) == 0 }

// InBounds reports whether c addresses a cell on the board.
func (b Board) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < b.rows && c.Col >= 0 && c.Col < b.cols
}

// At returns the tile at c. The caller must check bounds.
func (b Board) At(c Coord) Tile {
	return b.tiles[b.index(c)]
}

// OnRing reports whether c lies on the outer ring where a first move may start.
func (b Board) OnRing(c Coord) bool {
	if !b.InBounds(c) {
		return false
	}
	return c.Row == 0 || c.Row == b.rows-1 || c.Col == 0 || c.Col == b.cols-1
}

// Tiles returns a copy of the row-major tile sequence.
func (b Board) Tiles() []Tile {
	out := make([]Tile, len(b.tiles))
	copy(out, b.tiles)
	return out
}

// Grid returns the board as rows of integer tile values.
func (b Board) Grid() [][]int {
	grid := make([][]int, b.rows)
	for r := range b.rows {
		grid[r] = make([]int, b.cols)
		for c := range b.cols {
			grid[r][c] = int(b.tiles[r*b.cols+c])
		}
	}
	return grid
}

// Reshape lays the same row-major sequence out in a different shape.
// This matches how the generator slices one shuffle into either layout.
func (b Board) Reshape(rows, cols int) (Board, error) {
	return NewBoard(rows, cols, b.tiles)
}

func (b Board) index(c Coord) int {
	return c.Row*b.cols + c.Col
}

func (b Board) coord(i int) Coord {
	return Coord{Row: i / b.cols, Col: i % b.cols}
}

// ValidComposition reports whether tiles is a permutation of the canonical set.
func ValidComposition(tiles []Tile) bool {
	if len(tiles) != CellCount {
		return false
	}
	var have, want [Hazard + 1]int
	for _, t := range CanonicalTiles() {
		want[t]++
	}
	for _, t := range tiles {
		if t > Hazard {
			return false
		}
		have[t]++
	}
	return have == want
}
