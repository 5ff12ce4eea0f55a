package scoring

import (
	"testing"

	"github.com/vovakirdan/kuzu-maze/internal/maze"
)

func TestRating(t *testing.T) {
	opt := &Optimal{Tiles: 8, Powers: 1}
	tests := []struct {
		name          string
		tiles, powers int
		opt           *Optimal
		want          int
	}{
		{"no baseline", 5, 0, nil, 3},
		{"optimal", 8, 1, opt, 5},
		{"one extra tile", 9, 3, opt, 4},
		{"one extra power", 8, 2, opt, 4},
		{"fewer powers same tiles", 8, 0, opt, 3},
		{"within three", 11, 3, opt, 3},
		{"within six", 14, 5, opt, 2},
		{"too many powers for two", 12, 6, opt, 1},
		{"far off", 15, 0, opt, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rating(tt.tiles, tt.powers, tt.opt); got != tt.want {
				t.Errorf("Rating(%d, %d) = %d, want %d", tt.tiles, tt.powers, got, tt.want)
			}
		})
	}
}

func TestAttemptPoints(t *testing.T) {
	want := map[int]int{
		1: 50, 2: 45, 3: 40, 4: 35, 5: 30,
		6: 24, 10: 20,
		11: 14, 15: 10,
		16: 4, 20: 0,
		21: 0, 100: 0,
	}
	for attempt, w := range want {
		if got := AttemptPoints(attempt); got != w {
			t.Errorf("AttemptPoints(%d) = %d, want %d", attempt, got, w)
		}
	}
}

func TestAttemptPointsMonotonic(t *testing.T) {
	prev := AttemptPoints(1)
	for a := 2; a <= 30; a++ {
		got := AttemptPoints(a)
		if got > prev {
			t.Errorf("AttemptPoints(%d) = %d > AttemptPoints(%d) = %d", a, got, a-1, prev)
		}
		if got < 0 || got > MaxAttemptPoints {
			t.Errorf("AttemptPoints(%d) = %d out of range", a, got)
		}
		prev = got
	}
}

func TestTilePoints(t *testing.T) {
	tests := []struct{ tiles, want int }{
		{3, 30},
		{5, 30},
		{6, 28},
		{8, 24},
		{10, 20},
		{12, 16},
		{19, 2},
		{20, 0},
		{25, 0},
	}
	for _, tt := range tests {
		if got := TilePoints(tt.tiles); got != tt.want {
			t.Errorf("TilePoints(%d) = %d, want %d", tt.tiles, got, tt.want)
		}
	}

	prev := TilePoints(0)
	for n := 1; n <= 25; n++ {
		got := TilePoints(n)
		if got > prev {
			t.Errorf("TilePoints(%d) = %d > TilePoints(%d) = %d", n, got, n-1, prev)
		}
		prev = got
	}
}

func TestPowerPoints(t *testing.T) {
	tests := []struct {
		name string
		set  maze.PowerSet
		want int
	}{
		{"none", 0, 20},
		{"grapple", maze.PowerSetOf(maze.Grapple), 17},
		{"life and warp", maze.PowerSetOf(maze.ExtraLife, maze.Warp), 9},
		{"repeat counts once", maze.PowerSetOf(maze.Diagonal, maze.Diagonal), 16},
		{"all floors at zero", maze.PowerSetOf(maze.Grapple, maze.ExtraLife, maze.Diagonal, maze.Wildcard, maze.Warp), 0},
	}
	for _, tt := range tests {
		if got := PowerPoints(tt.set); got != tt.want {
			t.Errorf("PowerPoints(%s) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestEvaluate(t *testing.T) {
	b := Evaluate(Input{Attempt: 2, Tiles: 8, Powers: maze.PowerSetOf(maze.Grapple)}, &Optimal{Tiles: 8, Powers: 1})
	want := Breakdown{Attempts: 45, Tiles: 24, Powers: 17, Total: 86, Stars: 5}
	if b != want {
		t.Errorf("Evaluate() = %+v, want %+v", b, want)
	}
}
