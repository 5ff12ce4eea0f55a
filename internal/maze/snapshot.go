package maze

// Snapshot is a read-only copy of a session's state, sufficient to redraw.
type Snapshot struct {
	Mode           Mode
	Rows, Cols     int
	Revealed       []Coord
	Position       *Coord
	GrappleOrigin  *Coord
	Attempt        int
	NextGoal       int
	Collected      []int
	Diagonal       bool
	ExtraLife      bool
	ExtraLifeSpent bool
	AnyOrder       bool
	Powers         PowerSet
	TilesRevealed  int
	TilesAtWin     int
	Won            bool
	Locked         bool
	Failure        *Failure
	Path           []Coord
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.st
	snap := Snapshot{
		Mode:           st.mode,
		Rows:           s.board.rows,
		Cols:           s.board.cols,
		Attempt:        s.attempt,
		NextGoal:       st.next,
		Diagonal:       st.diagonal,
		ExtraLife:      st.life,
		ExtraLifeSpent: st.lifeSpent,
		AnyOrder:       st.anyOrder,
		Powers:         st.powers,
		TilesRevealed:  st.revealedCount(),
		TilesAtWin:     st.tilesWon,
		Won:            st.won,
		Locked:         s.locked,
		Path:           s.pathCopy(),
	}
	for i := range s.board.tiles {
		if st.revealed&(1<<uint(i)) != 0 {
			snap.Revealed = append(snap.Revealed, s.board.coord(i))
		}
	}
	if st.placed {
		pos := st.pos
		snap.Position = &pos
	}
	if st.mode == ModePendingGrapple {
		origin := st.origin
		snap.GrappleOrigin = &origin
	}
	for g := 1; g <= GoalCount; g++ {
		if st.collected&(1<<uint(g)) != 0 {
			snap.Collected = append(snap.Collected, g)
		}
	}
	if s.failure != nil {
		f := *s.failure
		snap.Failure = &f
	}
	return snap
}

// IsRevealed reports whether c is face-up in the snapshot.
func (s Snapshot) IsRevealed(c Coord) bool {
	for _, r := range s.Revealed {
		if r == c {
			return true
		}
	}
	return false
}

// At reports whether the player currently stands on c.
func (s Snapshot) At(c Coord) bool {
	return s.Position != nil && *s.Position == c
}
