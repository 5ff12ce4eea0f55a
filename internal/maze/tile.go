// Package maze implements the Kuzu's Maze rules: the tile set, the board
// generator and the move/effect engine that drives a single puzzle.
// It has no dependency on storage or presentation so rules stay testable.
package maze

import "fmt"

// Tile is the kind of a single board cell.
type Tile uint8

const (
	Stone Tile = iota // passable, re-enterable after reveal
	Flower1
	Flower2
	Flower3
	Flower4
	Flower5
	Grapple   // one-shot secondary reveal, possibly remote
	ExtraLife // absorbs one hazard
	Diagonal  // diagonal adjacency for the rest of the attempt
	Wildcard  // next flower may be taken out of order
	Warp      // reveal any unrevealed cell
	Hazard    // ends the attempt unless a life is held
)

// GoalCount is the number of flowers that must be collected.
const GoalCount = 5

// IsFlower reports whether t is one of the numbered goal tiles.
func (t Tile) IsFlower() bool {
	return t >= Flower1 && t <= Flower5
}

// IsPower reports whether t is a power-up tile.
func (t Tile) IsPower() bool {
	return t >= Grapple && t <= Warp
}

// String returns a human-readable name for the tile.
func (t Tile) String() string {
	switch {
	case t == Stone:
		return "Stone"
	case t.IsFlower():
		return fmt.Sprintf("Flower %d", int(t))
	case t == Grapple:
		return "Grapple"
	case t == ExtraLife:
		return "Extra Life"
	case t == Diagonal:
		return "Diagonal"
	case t == Wildcard:
		return "Any Order"
	case t == Warp:
		return "Warp"
	case t == Hazard:
		return "Death"
	default:
		return "Unknown"
	}
}

// Glyph returns a short fixed-width label used by text renderers.
func (t Tile) Glyph() string {
	switch {
	case t == Stone:
		return " · "
	case t.IsFlower():
		return fmt.Sprintf("✿%d ", int(t))
	case t == Grapple:
		return " G "
	case t == ExtraLife:
		return " + "
	case t == Diagonal:
		return " X "
	case t == Wildcard:
		return " ✿?"
	case t == Warp:
		return " @ "
	case t == Hazard:
		return " ☠ "
	default:
		return " ? "
	}
}

// PowerSet is the set of distinct power kinds used during an attempt.
type PowerSet uint16

// Add records a power kind. Non-power tiles are ignored.
func (s PowerSet) Add(t Tile) PowerSet {
	if !t.IsPower() {
		return s
	}
	return s | 1<<t
}

// Has reports whether t is in the set.
func (s PowerSet) Has(t Tile) bool {
	return t.IsPower() && s&(1<<t) != 0
}

// Len returns the number of distinct powers.
func (s PowerSet) Len() int {
	n := 0
	for t := Grapple; t <= Warp; t++ {
		if s.Has(t) {
			n++
		}
	}
	return n
}

// Tiles lists the powers in ascending kind order.
func (s PowerSet) Tiles() []Tile {
	var out []Tile
	for t := Grapple; t <= Warp; t++ {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// PowerSetOf builds a set from a list of tiles.
func PowerSetOf(tiles ...Tile) PowerSet {
	var s PowerSet
	for _, t := range tiles {
		s = s.Add(t)
	}
	return s
}
