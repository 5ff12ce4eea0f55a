package maze

import "fmt"

// Coord addresses a board cell. Row grows downward, Col grows to the right.
type Coord struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// At is a convenience constructor for Coord.
func At(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Adjacent reports whether other is one orthogonal step away, or one
// diagonal step away when diagonal movement is unlocked.
func (c Coord) Adjacent(other Coord, diagonal bool) bool {
	dr := abs(c.Row - other.Row)
	dc := abs(c.Col - other.Col)
	if dr+dc == 1 {
		return true
	}
	return diagonal && dr == 1 && dc == 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
