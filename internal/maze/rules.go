package maze

import (
	"fmt"
	"math/bits"
)

// Mode is the interaction mode of a session. Exactly one mode is active,
// so combinations such as warping while grappling cannot be represented.
type Mode uint8

const (
	ModeIdle Mode = iota // locked: puzzle won or daily already completed
	ModeAwaitingFirstMove
	ModeNormal
	ModePendingWarp
	ModePendingGrapple
	ModeAttemptEnding
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "Idle"
	case ModeAwaitingFirstMove:
		return "AwaitingFirstMove"
	case ModeNormal:
		return "Normal"
	case ModePendingWarp:
		return "PendingWarp"
	case ModePendingGrapple:
		return "PendingGrapple"
	case ModeAttemptEnding:
		return "AttemptEnding"
	default:
		return "Unknown"
	}
}

// Special reports whether m is a one-shot special movement mode.
func (m Mode) Special() bool {
	return m == ModePendingWarp || m == ModePendingGrapple
}

// Cause identifies why an attempt ended.
type Cause uint8

const (
	CauseNone Cause = iota
	CauseHazard
	CauseWrongOrder
	CauseRestart
)

// String returns a short identifier for the cause.
func (c Cause) String() string {
	switch c {
	case CauseHazard:
		return "hazard"
	case CauseWrongOrder:
		return "wrong order"
	case CauseRestart:
		return "restart"
	default:
		return "none"
	}
}

// Failure describes an attempt-ending event. It is an expected game
// transition, not an error.
type Failure struct {
	Cause    Cause
	Expected int // wrong order: the flower that was required
	Found    int // wrong order: the flower that was revealed
	Message  string
	Reset    bool // caller should reset revealed tiles and modifiers
}

// Outcome reports what a single reveal did.
type Outcome struct {
	Accepted     bool
	Cell         Coord
	Tile         Tile
	Peek         bool // remote grapple reveal, position snapped back to origin
	AttemptEnded bool
	Failure      *Failure
	Won          bool
}

// play is the per-attempt rule state. It is a comparable value so the
// solver can copy it and use it as a search key.
type play struct {
	mode      Mode
	revealed  uint32 // bit per row-major cell index
	pos       Coord
	placed    bool
	origin    Coord // grapple origin, meaningful in ModePendingGrapple
	collected uint8 // bit per flower number
	next      int   // smallest uncollected flower, 0 once all are collected
	diagonal  bool
	life      bool
	lifeSpent bool // a life was consumed this attempt and awaits refund
	anyOrder  bool
	powers    PowerSet
	won       bool
	tilesWon  int
}

func newPlay() play {
	return play{mode: ModeAwaitingFirstMove, next: 1}
}

func (p *play) isRevealed(b Board, c Coord) bool {
	return p.revealed&(1<<uint(b.index(c))) != 0
}

func (p *play) revealedCount() int {
	return bits.OnesCount32(p.revealed)
}

func (p *play) collectedCount() int {
	return bits.OnesCount8(p.collected)
}

// enterable reports whether c may be stepped on: unrevealed, or a revealed stone.
func (p *play) enterable(b Board, c Coord) bool {
	return !p.isRevealed(b, c) || b.At(c) == Stone
}

// canReveal is the legality predicate for the current interaction mode.
func (p *play) canReveal(b Board, c Coord) bool {
	if !b.InBounds(c) {
		return false
	}
	switch p.mode {
	case ModePendingWarp:
		return !p.isRevealed(b, c)
	case ModePendingGrapple:
		if !p.isRevealed(b, c) {
			return true
		}
		return b.At(c) == Stone && p.origin.Adjacent(c, p.diagonal)
	case ModeAwaitingFirstMove:
		return b.OnRing(c)
	case ModeNormal:
		return p.placed && p.pos.Adjacent(c, p.diagonal) && p.enterable(b, c)
	default:
		return false
	}
}

// reveal applies one legal move. The caller must have checked canReveal.
func (p *play) reveal(b Board, c Coord) Outcome {
	t := b.At(c)
	p.revealed |= 1 << uint(b.index(c))
	out := Outcome{Accepted: true, Cell: c, Tile: t}

	var fail *Failure
	switch p.mode {
	case ModePendingWarp:
		p.mode = ModeNormal
		p.pos, p.placed = c, true
		fail = p.apply(c, t, true)

	case ModePendingGrapple:
		origin := p.origin
		p.mode = ModeNormal
		if origin.Adjacent(c, p.diagonal) {
			p.pos, p.placed = c, true
			fail = p.apply(c, t, true)
		} else {
			out.Peek = true
			fail = p.apply(c, t, true)
			if fail == nil {
				p.pos, p.placed = origin, true
			}
		}

	default:
		p.mode = ModeNormal
		p.pos, p.placed = c, true
		fail = p.apply(c, t, false)
	}

	if fail != nil {
		p.endAttempt()
		out.AttemptEnded = true
		out.Failure = fail
	}
	out.Won = p.won
	return out
}

// apply resolves the effect of a freshly revealed tile.
// special is set when the reveal resolves a pending warp or grapple.
func (p *play) apply(c Coord, t Tile, special bool) *Failure {
	switch {
	case t.IsFlower():
		return p.collect(int(t))

	case t == Grapple:
		if special {
			return nil
		}
		p.powers = p.powers.Add(t)
		p.mode = ModePendingGrapple
		p.origin = c

	case t == ExtraLife:
		p.powers = p.powers.Add(t)
		p.life = true
		p.lifeSpent = false

	case t == Diagonal:
		p.powers = p.powers.Add(t)
		p.diagonal = true

	case t == Wildcard:
		p.powers = p.powers.Add(t)
		p.anyOrder = true

	case t == Warp:
		p.powers = p.powers.Add(t)
		p.mode = ModePendingWarp

	case t == Hazard:
		if p.life {
			p.life = false
			p.lifeSpent = true
			return nil
		}
		return &Failure{
			Cause:   CauseHazard,
			Message: "Death tile! Starting new attempt...",
			Reset:   true,
		}
	}
	return nil
}

func (p *play) collect(flower int) *Failure {
	if !p.anyOrder && flower != p.next {
		return &Failure{
			Cause:    CauseWrongOrder,
			Expected: p.next,
			Found:    flower,
			Message:  fmt.Sprintf("Wrong order! Needed %d, found %d", p.next, flower),
			Reset:    true,
		}
	}

	p.collected |= 1 << uint(flower)
	if p.lifeSpent {
		p.life = true
		p.lifeSpent = false
	}
	p.anyOrder = false
	p.next = p.nextGoal()

	if p.collectedCount() == GoalCount {
		p.won = true
		p.tilesWon = p.revealedCount()
		p.mode = ModeIdle
	}
	return nil
}

func (p *play) nextGoal() int {
	for g := 1; g <= GoalCount; g++ {
		if p.collected&(1<<uint(g)) == 0 {
			return g
		}
	}
	return 0
}

// endAttempt moves to AttemptEnding. Revealed tiles stay visible until
// the presentation layer finishes the reset.
func (p *play) endAttempt() {
	p.mode = ModeAttemptEnding
	p.placed = false
	p.pos = Coord{}
	p.origin = Coord{}
}
