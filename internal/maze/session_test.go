package maze

import (
	"slices"
	"testing"
)

// rowBoard has the flowers in order along the top row:
//
//	 1  2  3  4  5
//	 0  0  0  0  0
//	 0  6  7  8  9
//	10 11 11 11 11
func rowBoard() Board {
	return MustBoard(4, 5, tilesOf(
		1, 2, 3, 4, 5,
		0, 0, 0, 0, 0,
		0, 6, 7, 8, 9,
		10, 11, 11, 11, 11,
	))
}

// lifeBoard puts an extra life next to a hazard that guards flower 1:
//
//	7 11  1  2  3
//	0  0  0  0  4
//	0  0 11  6  5
//	8  9 10 11 11
func lifeBoard() Board {
	return MustBoard(4, 5, tilesOf(
		7, 11, 1, 2, 3,
		0, 0, 0, 0, 4,
		0, 0, 11, 6, 5,
		8, 9, 10, 11, 11,
	))
}

func mustReveal(t *testing.T, s *Session, cells ...Coord) Outcome {
	t.Helper()
	var out Outcome
	for _, c := range cells {
		out = s.Reveal(c)
		if !out.Accepted {
			t.Fatalf("Reveal(%v) rejected in mode %v", c, s.Mode())
		}
	}
	return out
}

func TestFirstMoveOnRingOnly(t *testing.T) {
	for _, b := range []Board{rowBoard(), DailyBoard("2025-01-01", NarrowRows, NarrowCols)} {
		s := NewSession(b)
		for r := range b.Rows() {
			for c := range b.Cols() {
				cell := At(r, c)
				ring := r == 0 || c == 0 || r == b.Rows()-1 || c == b.Cols()-1
				if got := s.CanReveal(cell); got != ring {
					t.Errorf("%dx%d CanReveal(%v) = %v, want %v", b.Rows(), b.Cols(), cell, got, ring)
				}
			}
		}
	}
}

func TestOutOfBoundsRejected(t *testing.T) {
	s := NewSession(rowBoard())
	for _, c := range []Coord{At(-1, 0), At(0, 5), At(4, 0)} {
		if s.CanReveal(c) {
			t.Errorf("CanReveal(%v) = true for out-of-bounds cell", c)
		}
		if out := s.Reveal(c); out.Accepted {
			t.Errorf("Reveal(%v) accepted out-of-bounds cell", c)
		}
	}
}

func TestWinInOrder(t *testing.T) {
	s := NewSession(rowBoard())
	out := mustReveal(t, s, At(0, 0), At(0, 1), At(0, 2), At(0, 3), At(0, 4))
	if !out.Won {
		t.Fatal("expected win after collecting five flowers")
	}
	snap := s.Snapshot()
	if snap.Mode != ModeIdle || !snap.Won {
		t.Errorf("after win: mode=%v won=%v, want Idle true", snap.Mode, snap.Won)
	}
	if snap.TilesAtWin != 5 {
		t.Errorf("TilesAtWin = %d, want 5", snap.TilesAtWin)
	}
	if snap.NextGoal != 0 {
		t.Errorf("NextGoal = %d, want 0", snap.NextGoal)
	}
	if snap.Powers.Len() != 0 {
		t.Errorf("Powers = %v, want none", snap.Powers.Tiles())
	}
	if s.CanReveal(At(1, 4)) {
		t.Error("reveals must be refused after a win")
	}
	if s.Restart() {
		t.Error("Restart must be refused after a win")
	}
}

func TestWrongOrderEndsAttempt(t *testing.T) {
	s := NewSession(rowBoard())
	out := s.Reveal(At(0, 2))
	if !out.AttemptEnded || out.Failure == nil {
		t.Fatal("collecting flower 3 first should end the attempt")
	}
	f := out.Failure
	if f.Cause != CauseWrongOrder || f.Expected != 1 || f.Found != 3 {
		t.Errorf("failure = %+v, want wrong order expected 1 found 3", *f)
	}
	if f.Message != "Wrong order! Needed 1, found 3" {
		t.Errorf("message = %q", f.Message)
	}
	if !f.Reset {
		t.Error("wrong order should request a reset")
	}
	if s.Mode() != ModeAttemptEnding {
		t.Errorf("mode = %v, want AttemptEnding", s.Mode())
	}
	if s.CanReveal(At(0, 0)) {
		t.Error("no reveal is legal while the attempt is ending")
	}
}

func TestNormalAdjacency(t *testing.T) {
	s := NewSession(rowBoard())
	mustReveal(t, s, At(1, 0))

	tests := []struct {
		cell Coord
		want bool
	}{
		{At(0, 0), true},
		{At(1, 1), true},
		{At(2, 0), true},
		{At(0, 1), false}, // diagonal, not unlocked
		{At(1, 2), false},
		{At(1, 0), false}, // own cell is not adjacent
	}
	for _, tt := range tests {
		if got := s.CanReveal(tt.cell); got != tt.want {
			t.Errorf("CanReveal(%v) = %v, want %v", tt.cell, got, tt.want)
		}
	}
}

func TestStoneReentry(t *testing.T) {
	s := NewSession(rowBoard())
	mustReveal(t, s, At(1, 0), At(1, 1))
	if !s.CanReveal(At(1, 0)) {
		t.Error("a revealed stone should be re-enterable")
	}
	mustReveal(t, s, At(1, 0), At(0, 0))
	if snap := s.Snapshot(); snap.TilesRevealed != 3 {
		t.Errorf("TilesRevealed = %d, want 3 (re-entry does not count)", snap.TilesRevealed)
	}
	mustReveal(t, s, At(1, 0))
	if s.CanReveal(At(0, 0)) {
		t.Error("a revealed flower must not be re-entered")
	}
}

func TestDiagonalUnlock(t *testing.T) {
	s := NewSession(rowBoard())
	mustReveal(t, s, At(1, 4), At(1, 3), At(2, 3))
	snap := s.Snapshot()
	if !snap.Diagonal || !snap.Powers.Has(Diagonal) {
		t.Fatal("diagonal tile should unlock diagonal movement")
	}
	if !s.CanReveal(At(1, 4)) || !s.CanReveal(At(1, 2)) {
		t.Error("diagonal neighbours should be legal after unlock")
	}
	mustReveal(t, s, At(1, 4))
	if pos := s.Snapshot().Position; pos == nil || *pos != At(1, 4) {
		t.Errorf("position = %v, want (1,4)", pos)
	}
}

func TestHazardAbsorption(t *testing.T) {
	s := NewSession(rowBoard())
	mustReveal(t, s, At(1, 0), At(1, 1), At(1, 2), At(2, 2))
	if !s.Snapshot().ExtraLife {
		t.Fatal("extra life not granted")
	}

	out := s.Reveal(At(3, 2))
	if !out.Accepted || out.AttemptEnded {
		t.Fatalf("first hazard should be absorbed, got %+v", out)
	}
	snap := s.Snapshot()
	if snap.ExtraLife || !snap.ExtraLifeSpent {
		t.Errorf("after absorb: life=%v spent=%v, want false true", snap.ExtraLife, snap.ExtraLifeSpent)
	}

	out = s.Reveal(At(3, 1))
	if !out.AttemptEnded || out.Failure.Cause != CauseHazard {
		t.Fatalf("second hazard should end the attempt, got %+v", out)
	}
	if out.Failure.Message != "Death tile! Starting new attempt..." {
		t.Errorf("message = %q", out.Failure.Message)
	}
}

func TestExtraLifeRefundOnCollect(t *testing.T) {
	s := NewSession(lifeBoard())
	mustReveal(t, s, At(0, 0), At(0, 1))
	if snap := s.Snapshot(); snap.ExtraLife {
		t.Fatal("life should be spent on the hazard")
	}
	mustReveal(t, s, At(0, 2))
	snap := s.Snapshot()
	if !snap.ExtraLife || snap.ExtraLifeSpent {
		t.Errorf("after collect: life=%v spent=%v, want true false", snap.ExtraLife, snap.ExtraLifeSpent)
	}
	if !slices.Equal(snap.Collected, []int{1}) {
		t.Errorf("Collected = %v, want [1]", snap.Collected)
	}
}

func TestGrappleRemotePeek(t *testing.T) {
	s := NewSession(rowBoard())
	mustReveal(t, s, At(1, 0), At(1, 1), At(2, 1))

	snap := s.Snapshot()
	if snap.Mode != ModePendingGrapple {
		t.Fatalf("mode = %v, want PendingGrapple", snap.Mode)
	}
	p := *snap.Position
	if snap.GrappleOrigin == nil || *snap.GrappleOrigin != p {
		t.Fatalf("grapple origin = %v, want %v", snap.GrappleOrigin, p)
	}

	out := s.Reveal(At(2, 4))
	if !out.Accepted || !out.Peek {
		t.Fatalf("remote reveal should be a peek, got %+v", out)
	}
	snap = s.Snapshot()
	if snap.Position == nil || *snap.Position != p {
		t.Errorf("position after peek = %v, want %v", snap.Position, p)
	}
	if !snap.IsRevealed(At(2, 4)) {
		t.Error("peeked cell should be revealed")
	}
	if !snap.AnyOrder || !snap.Powers.Has(Wildcard) {
		t.Error("peeked wildcard effect should apply")
	}
	if snap.Mode != ModeNormal {
		t.Errorf("mode = %v, want Normal", snap.Mode)
	}
	if !snap.Powers.Has(Grapple) {
		t.Error("grapple should be recorded as used")
	}
}

func TestGrapplePeekOntoHazardEndsAttempt(t *testing.T) {
	s := NewSession(rowBoard())
	mustReveal(t, s, At(1, 0), At(1, 1), At(2, 1))

	out := s.Reveal(At(3, 3))
	if !out.Accepted || !out.Peek {
		t.Fatalf("remote hazard should be peeked, got %+v", out)
	}
	if !out.AttemptEnded || out.Failure == nil || out.Failure.Cause != CauseHazard {
		t.Fatalf("peeked hazard should end the attempt, got %+v", out)
	}
	snap := s.Snapshot()
	if snap.Mode != ModeAttemptEnding {
		t.Errorf("mode = %v, want AttemptEnding", snap.Mode)
	}
	if snap.Position != nil {
		t.Errorf("position = %v, want none after the attempt ends", *snap.Position)
	}
	if snap.GrappleOrigin != nil {
		t.Error("grapple origin should be cleared")
	}
}

func TestGrapplePeekOntoHazardAbsorbed(t *testing.T) {
	s := NewSession(rowBoard())
	// pick up the extra life at (2,2), then step onto the grapple at (2,1)
	mustReveal(t, s, At(1, 0), At(1, 1), At(1, 2), At(2, 2), At(2, 1))
	if s.Mode() != ModePendingGrapple {
		t.Fatalf("mode = %v, want PendingGrapple", s.Mode())
	}

	out := s.Reveal(At(3, 3))
	if !out.Accepted || !out.Peek || out.AttemptEnded {
		t.Fatalf("hazard peek should be absorbed, got %+v", out)
	}
	snap := s.Snapshot()
	if snap.ExtraLife || !snap.ExtraLifeSpent {
		t.Errorf("life=%v spent=%v, want false true", snap.ExtraLife, snap.ExtraLifeSpent)
	}
	if snap.Position == nil || *snap.Position != At(2, 1) {
		t.Errorf("position = %v, want back on the grapple (2,1)", snap.Position)
	}
	if snap.Mode != ModeNormal || !snap.IsRevealed(At(3, 3)) {
		t.Errorf("mode = %v revealed = %v, want Normal true", snap.Mode, snap.IsRevealed(At(3, 3)))
	}
}

func TestGrappleAdjacentAdvances(t *testing.T) {
	s := NewSession(rowBoard())
	mustReveal(t, s, At(1, 0), At(1, 1), At(2, 1))
	out := mustReveal(t, s, At(2, 2))
	if out.Peek {
		t.Error("adjacent grapple target is not a peek")
	}
	snap := s.Snapshot()
	if snap.Position == nil || *snap.Position != At(2, 2) {
		t.Errorf("position = %v, want (2,2)", snap.Position)
	}
	if !snap.ExtraLife {
		t.Error("extra life effect should apply")
	}
}

func TestGrappleReentersAdjacentStone(t *testing.T) {
	s := NewSession(rowBoard())
	mustReveal(t, s, At(1, 0), At(1, 1), At(2, 1))
	if !s.CanReveal(At(1, 1)) {
		t.Error("grapple should allow re-entering an adjacent stone")
	}
	if s.CanReveal(At(1, 0)) {
		t.Error("grapple must not re-enter a non-adjacent revealed stone")
	}
}

func TestGrappleChainsIntoWarp(t *testing.T) {
	s := NewSession(rowBoard())
	mustReveal(t, s, At(1, 0), At(1, 1), At(2, 1))

	out := mustReveal(t, s, At(3, 0))
	if !out.Peek {
		t.Fatal("diagonal warp cell should be peeked without diagonal unlock")
	}
	snap := s.Snapshot()
	if snap.Mode != ModePendingWarp {
		t.Fatalf("mode = %v, want PendingWarp", snap.Mode)
	}
	if snap.GrappleOrigin != nil {
		t.Error("warp should clear the grapple")
	}
	if !snap.Powers.Has(Warp) {
		t.Error("warp should be recorded as used")
	}

	// any unrevealed cell is legal, revealed ones are not
	if !s.CanReveal(At(0, 0)) || s.CanReveal(At(1, 1)) {
		t.Error("warp legality: unrevealed only")
	}
	mustReveal(t, s, At(0, 0))
	snap = s.Snapshot()
	if snap.Mode != ModeNormal || snap.Position == nil || *snap.Position != At(0, 0) {
		t.Errorf("after warp: mode=%v pos=%v, want Normal (0,0)", snap.Mode, snap.Position)
	}
	if !slices.Equal(snap.Collected, []int{1}) {
		t.Errorf("Collected = %v, want [1]", snap.Collected)
	}
}

func TestWarpLandsOnGrappleInert(t *testing.T) {
	// the warp tile is on the ring; the grapple lies elsewhere
	s := NewSession(rowBoard())
	mustReveal(t, s, At(3, 0))
	if s.Mode() != ModePendingWarp {
		t.Fatalf("mode = %v, want PendingWarp", s.Mode())
	}
	mustReveal(t, s, At(2, 1))
	snap := s.Snapshot()
	if snap.Mode != ModeNormal {
		t.Errorf("grapple resolved by a warp must not activate, mode = %v", snap.Mode)
	}
	if snap.Powers.Has(Grapple) {
		t.Error("inert grapple should not be recorded")
	}
}

func TestWildcardSingleUse(t *testing.T) {
	s := NewSession(rowBoard())
	mustReveal(t, s, At(1, 4), At(2, 4))
	if !s.Snapshot().AnyOrder {
		t.Fatal("wildcard should relax ordering")
	}
	mustReveal(t, s, At(1, 4))
	out := mustReveal(t, s, At(0, 4))
	if out.AttemptEnded {
		t.Fatal("wildcard should allow flower 5 first")
	}
	snap := s.Snapshot()
	if snap.AnyOrder {
		t.Error("wildcard should be consumed by the collection")
	}
	if snap.NextGoal != 1 {
		t.Errorf("NextGoal = %d, want 1", snap.NextGoal)
	}

	out = s.Reveal(At(0, 3))
	if !out.AttemptEnded || out.Failure.Expected != 1 || out.Failure.Found != 4 {
		t.Errorf("second out-of-order flower should fail, got %+v", out.Failure)
	}
}

func TestLockGate(t *testing.T) {
	s := NewSession(rowBoard())
	s.Lock()
	if !s.Locked() {
		t.Fatal("Locked() = false after Lock")
	}
	for r := range 4 {
		for c := range 5 {
			if s.CanReveal(At(r, c)) {
				t.Fatalf("CanReveal(%v) = true while locked", At(r, c))
			}
		}
	}
	if out := s.Reveal(At(0, 0)); out.Accepted {
		t.Error("Reveal accepted while locked")
	}
	s.Unlock()
	if !s.CanReveal(At(0, 0)) {
		t.Error("CanReveal should recover after Unlock")
	}
}

func TestFinishAttempt(t *testing.T) {
	s := NewSession(rowBoard())
	var started []int
	s.Subscribe(func(ev Event) {
		if e, ok := ev.(AttemptStartedEvent); ok {
			started = append(started, e.Attempt)
		}
	})

	if s.FinishAttempt() {
		t.Error("FinishAttempt should be a no-op outside AttemptEnding")
	}
	mustReveal(t, s, At(1, 4), At(1, 3), At(2, 3))
	s.Reveal(At(3, 3))
	if s.Mode() != ModeAttemptEnding {
		t.Fatalf("mode = %v, want AttemptEnding", s.Mode())
	}
	if !s.FinishAttempt() {
		t.Fatal("FinishAttempt returned false")
	}

	snap := s.Snapshot()
	if snap.Mode != ModeAwaitingFirstMove || snap.Attempt != 2 {
		t.Errorf("after finish: mode=%v attempt=%d", snap.Mode, snap.Attempt)
	}
	if len(snap.Revealed) != 0 || snap.Diagonal || snap.Powers != 0 || snap.Failure != nil {
		t.Errorf("per-attempt state not cleared: %+v", snap)
	}
	if !slices.Equal(started, []int{2}) {
		t.Errorf("AttemptStarted events = %v, want [2]", started)
	}
}

func TestRestart(t *testing.T) {
	s := NewSession(rowBoard())
	mustReveal(t, s, At(1, 0))
	if !s.Restart() {
		t.Fatal("Restart refused in Normal mode")
	}
	snap := s.Snapshot()
	if snap.Mode != ModeAttemptEnding || snap.Failure == nil || snap.Failure.Cause != CauseRestart {
		t.Errorf("after restart: mode=%v failure=%v", snap.Mode, snap.Failure)
	}
	if s.Restart() {
		t.Error("Restart should be refused while the attempt is ending")
	}
	s.FinishAttempt()
	if s.Attempt() != 2 {
		t.Errorf("Attempt() = %d, want 2", s.Attempt())
	}
}

func TestEventsAndPath(t *testing.T) {
	s := NewSession(rowBoard())
	var reveals, wins int
	var lastPath []Coord
	s.Subscribe(func(ev Event) {
		switch e := ev.(type) {
		case RevealedEvent:
			reveals++
			lastPath = e.Path
		case WonEvent:
			wins++
			if e.TilesRevealed != 5 {
				t.Errorf("WonEvent.TilesRevealed = %d, want 5", e.TilesRevealed)
			}
		}
	})
	path := []Coord{At(0, 0), At(0, 1), At(0, 2), At(0, 3), At(0, 4)}
	mustReveal(t, s, path...)
	if reveals != 5 || wins != 1 {
		t.Errorf("reveals=%d wins=%d, want 5 1", reveals, wins)
	}
	if !slices.Equal(lastPath, path) {
		t.Errorf("path = %v, want %v", lastPath, path)
	}
}

func TestListenerCanQuerySession(t *testing.T) {
	s := NewSession(rowBoard())
	var seen []int
	s.Subscribe(func(ev Event) {
		if _, ok := ev.(RevealedEvent); ok {
			seen = append(seen, s.Snapshot().TilesRevealed)
		}
	})
	mustReveal(t, s, At(0, 0), At(0, 1))
	if !slices.Equal(seen, []int{1, 2}) {
		t.Errorf("listener saw %v, want [1 2]", seen)
	}
}

func TestReplay(t *testing.T) {
	path := []Coord{At(1, 0), At(1, 1), At(2, 1), At(2, 4)}
	a := NewSession(rowBoard())
	mustReveal(t, a, path...)

	b := NewSession(rowBoard())
	if err := b.Replay(path); err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	sa, sb := a.Snapshot(), b.Snapshot()
	if !slices.Equal(sa.Revealed, sb.Revealed) || *sa.Position != *sb.Position || sa.Powers != sb.Powers {
		t.Error("replayed state differs from live state")
	}

	c := NewSession(rowBoard())
	if err := c.Replay([]Coord{At(1, 1)}); err == nil {
		t.Error("Replay should reject an illegal first move")
	}
}

func TestCompletedSession(t *testing.T) {
	s := NewCompletedSession(rowBoard(), 3)
	snap := s.Snapshot()
	if snap.Mode != ModeIdle || !snap.Won || snap.Attempt != 3 {
		t.Errorf("completed session: mode=%v won=%v attempt=%d", snap.Mode, snap.Won, snap.Attempt)
	}
	if s.CanReveal(At(0, 0)) {
		t.Error("completed session must refuse reveals")
	}
}
