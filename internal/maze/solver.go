package maze

import "container/heap"

// DefaultSolveLimit bounds the number of states Solve expands.
const DefaultSolveLimit = 500000

// Solution is a shortest winning path for a board.
type Solution struct {
	Tiles    int      `json:"tiles" yaml:"tiles"`
	Powers   int      `json:"powers" yaml:"powers"`
	PowerSet PowerSet `json:"-" yaml:"-"`
	Path     []Coord  `json:"path" yaml:"path"`
}

// Solve finds a winning path that reveals the fewest tiles, breaking ties
// by the fewest distinct powers. It searches over the same rule state the
// Session uses and never takes a move that would end the attempt.
// The bool is false when no solution was found within limit expansions.
func Solve(b Board, limit int) (Solution, bool) {
	if limit <= 0 {
		limit = DefaultSolveLimit
	}

	type link struct {
		prev  play
		cell  Coord
		first bool
	}
	parents := make(map[play]link)
	best := make(map[play]cost)

	pq := &frontier{}
	start := newPlay()
	for r := range b.rows {
		for c := range b.cols {
			cell := At(r, c)
			if !start.canReveal(b, cell) {
				continue
			}
			next := start
			if out := next.reveal(b, cell); out.AttemptEnded {
				continue
			}
			k := cost{tiles: next.revealedCount(), powers: next.powers.Len()}
			if old, ok := best[next]; ok && !k.less(old) {
				continue
			}
			best[next] = k
			parents[next] = link{cell: cell, first: true}
			heap.Push(pq, &node{st: next, cost: k})
		}
	}

	expanded := 0
	for pq.Len() > 0 && expanded < limit {
		n := heap.Pop(pq).(*node)
		if k, ok := best[n.st]; ok && k.less(n.cost) {
			continue
		}
		expanded++

		if n.st.won {
			var path []Coord
			for st := n.st; ; {
				l := parents[st]
				path = append(path, l.cell)
				if l.first {
					break
				}
				st = l.prev
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return Solution{
				Tiles:    n.st.tilesWon,
				Powers:   n.st.powers.Len(),
				PowerSet: n.st.powers,
				Path:     path,
			}, true
		}

		for r := range b.rows {
			for c := range b.cols {
				cell := At(r, c)
				if !n.st.canReveal(b, cell) {
					continue
				}
				next := n.st
				if out := next.reveal(b, cell); out.AttemptEnded {
					continue
				}
				k := cost{tiles: next.revealedCount(), powers: next.powers.Len()}
				if old, ok := best[next]; ok && !k.less(old) {
					continue
				}
				best[next] = k
				parents[next] = link{prev: n.st, cell: cell}
				heap.Push(pq, &node{st: next, cost: k})
			}
		}
	}
	return Solution{}, false
}

type cost struct {
	tiles  int
	powers int
}

func (c cost) less(o cost) bool {
	if c.tiles != o.tiles {
		return c.tiles < o.tiles
	}
	return c.powers < o.powers
}

type node struct {
	st   play
	cost cost
}

// frontier is a min-heap of search nodes ordered by cost.
type frontier []*node

func (f frontier) Len() int           { return len(f) }
func (f frontier) Less(i, j int) bool { return f[i].cost.less(f[j].cost) }
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) {
	*f = append(*f, x.(*node))
}

func (f *frontier) Pop() any {
	old := *f
	n := old[len(old)-1]
	*f = old[:len(old)-1]
	return n
}
