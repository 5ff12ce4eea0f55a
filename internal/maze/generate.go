package maze

import (
	"fmt"
	"math"
	"math/rand"
	"unicode/utf16"
)

// Board shapes used by the presentation layer. Both hold CellCount cells.
const (
	WideRows   = 4
	WideCols   = 5
	NarrowRows = 5
	NarrowCols = 4
)

// CanonicalTiles returns the fixed multiset every board is built from:
// six stones, one each of 1..10 and four hazards.
func CanonicalTiles() []Tile {
	tiles := make([]Tile, 0, CellCount)
	for range 6 {
		tiles = append(tiles, Stone)
	}
	for t := Flower1; t <= Warp; t++ {
		tiles = append(tiles, t)
	}
	for range 4 {
		tiles = append(tiles, Hazard)
	}
	return tiles
}

// Source yields uniform draws in [0, 1).
// *math/rand.Rand satisfies it for practice boards.
type Source interface {
	Float64() float64
}

// LCG is the 32-bit linear congruential generator used for daily boards.
// Its constants and draw scaling must not change: every client derives the
// same daily board from them.
type LCG struct {
	state uint32
}

// NewLCG creates a generator with the given seed.
func NewLCG(seed uint32) *LCG {
	return &LCG{state: seed}
}

// Next advances the state and returns it.
func (g *LCG) Next() uint32 {
	g.state = g.state*1664525 + 1013904223
	return g.state
}

// Float64 returns the next draw as state / 2^32.
func (g *LCG) Float64() float64 {
	return float64(g.Next()) / (1 << 32)
}

// DateSeed hashes an ISO date string into the daily seed.
// The accumulator is a 32-bit signed integer folded as acc*31 + unit over
// UTF-16 code units, wrapping on overflow; the seed is its absolute value.
func DateSeed(date string) uint32 {
	var acc int32
	for _, unit := range utf16.Encode([]rune(date)) {
		acc = acc*31 + int32(unit)
	}
	if acc < 0 {
		// -MinInt32 does not fit in int32; widen first.
		return uint32(-int64(acc))
	}
	return uint32(acc)
}

// NewDailySource returns the deterministic draw source for a date.
func NewDailySource(date string) *LCG {
	return NewLCG(DateSeed(date))
}

// Shuffle performs a Fisher-Yates pass consuming exactly one draw per
// position from len-1 down to 1.
func Shuffle(tiles []Tile, src Source) {
	for i := len(tiles) - 1; i > 0; i-- {
		j := int(math.Floor(src.Float64() * float64(i+1)))
		tiles[i], tiles[j] = tiles[j], tiles[i]
	}
}

// Generate shuffles the canonical tiles and lays them out row-wise.
// A shape that does not hold exactly CellCount cells is a programming error.
func Generate(src Source, rows, cols int) Board {
	if rows <= 0 || cols <= 0 || rows*cols != CellCount {
		panic(fmt.Sprintf("maze: invalid board shape %dx%d", rows, cols))
	}
	tiles := CanonicalTiles()
	Shuffle(tiles, src)
	return Board{rows: rows, cols: cols, tiles: tiles}
}

// DailyBoard generates the board shared by all players on date.
func DailyBoard(date string, rows, cols int) Board {
	return Generate(NewDailySource(date), rows, cols)
}

// PracticeBoard generates a one-off board from a seeded random source.
func PracticeBoard(seed int64, rows, cols int) Board {
	return Generate(rand.New(rand.NewSource(seed)), rows, cols)
}
