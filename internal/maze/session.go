package maze

import (
	"fmt"
	"sync"
)

// Session owns the play state of one puzzle. It replaces any notion of a
// global game object: callers construct one per board and drive it.
//
// Session methods are safe to call from multiple goroutines and state
// changes are serialized. Listeners run after the lock is released, so they
// may query the session; events from concurrent callers can reach them in
// either order.
type Session struct {
	mu        sync.Mutex
	board     Board
	st        play
	attempt   int
	locked    bool
	failure   *Failure
	path      []Coord
	listeners []Listener
}

// NewSession starts a fresh puzzle awaiting its first move.
func NewSession(board Board) *Session {
	return &Session{
		board:   board,
		st:      newPlay(),
		attempt: 1,
	}
}

// NewCompletedSession returns a read-only session for a puzzle that was
// already solved, e.g. today's daily after a restart of the program.
func NewCompletedSession(board Board, attempts int) *Session {
	s := NewSession(board)
	s.st.mode = ModeIdle
	s.st.won = true
	if attempts > 0 {
		s.attempt = attempts
	}
	return s
}

// Board returns the session's board.
func (s *Session) Board() Board {
	return s.board
}

// Subscribe registers a listener for session events.
func (s *Session) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// SetAttempt restores the attempt counter, e.g. from a daily record.
func (s *Session) SetAttempt(n int) {
	if n < 1 {
		n = 1
	}
	s.mu.Lock()
	s.attempt = n
	s.mu.Unlock()
}

// Attempt returns the current attempt number (1-based).
func (s *Session) Attempt() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempt
}

// Mode returns the current interaction mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.mode
}

// Lock closes the input gate, e.g. while a flip animation plays.
func (s *Session) Lock() {
	s.mu.Lock()
	s.locked = true
	s.mu.Unlock()
}

// Unlock reopens the input gate.
func (s *Session) Unlock() {
	s.mu.Lock()
	s.locked = false
	s.mu.Unlock()
}

// Locked reports whether the input gate is closed.
func (s *Session) Locked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked
}

// CanReveal reports whether c may be revealed next.
func (s *Session) CanReveal(c Coord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canRevealLocked(c)
}

func (s *Session) canRevealLocked(c Coord) bool {
	if s.locked || s.st.won {
		return false
	}
	return s.st.canReveal(s.board, c)
}

// Reveal applies a player input on cell c. Illegal targets are rejected
// with Accepted=false and leave the state untouched.
func (s *Session) Reveal(c Coord) Outcome {
	s.mu.Lock()
	if !s.canRevealLocked(c) {
		s.mu.Unlock()
		return Outcome{Cell: c}
	}

	out := s.st.reveal(s.board, c)
	s.path = append(s.path, c)

	events := []Event{RevealedEvent{
		Attempt:  s.attempt,
		Cell:     c,
		Tile:     out.Tile,
		Peek:     out.Peek,
		Revealed: s.st.revealedCount(),
		Path:     s.pathCopy(),
	}}
	switch {
	case out.AttemptEnded:
		s.failure = out.Failure
		events = append(events, AttemptEndedEvent{Attempt: s.attempt, Failure: *out.Failure})
	case out.Won:
		events = append(events, WonEvent{
			Attempt:       s.attempt,
			TilesRevealed: s.st.tilesWon,
			Powers:        s.st.powers,
			Path:          s.pathCopy(),
		})
	}
	listeners := s.listeners
	s.mu.Unlock()

	dispatch(listeners, events)
	return out
}

// Restart abandons the current attempt. It counts as an attempt, like a
// failure, and is refused while locked or once the puzzle is over.
func (s *Session) Restart() bool {
	s.mu.Lock()
	if s.locked || s.st.won || s.st.mode == ModeIdle || s.st.mode == ModeAttemptEnding {
		s.mu.Unlock()
		return false
	}
	fail := Failure{Cause: CauseRestart, Message: "Starting new attempt...", Reset: true}
	s.st.endAttempt()
	s.failure = &fail
	listeners := s.listeners
	attempt := s.attempt
	s.mu.Unlock()

	dispatch(listeners, []Event{AttemptEndedEvent{Attempt: attempt, Failure: fail}})
	return true
}

// FinishAttempt completes an attempt-ending transition: modifiers and
// revealed tiles are cleared and the next attempt awaits its first move.
// It is a no-op in any other mode.
func (s *Session) FinishAttempt() bool {
	s.mu.Lock()
	if s.st.mode != ModeAttemptEnding {
		s.mu.Unlock()
		return false
	}
	s.st = newPlay()
	s.attempt++
	s.failure = nil
	s.path = nil
	s.locked = false
	listeners := s.listeners
	attempt := s.attempt
	s.mu.Unlock()

	dispatch(listeners, []Event{AttemptStartedEvent{Attempt: attempt}})
	return true
}

// Replay re-applies a recorded reveal path, used to resume an attempt.
// Listeners are notified as for live input.
func (s *Session) Replay(path []Coord) error {
	for i, c := range path {
		out := s.Reveal(c)
		if !out.Accepted {
			return fmt.Errorf("maze: replay rejected step %d at %s", i, c)
		}
		if out.AttemptEnded {
			return fmt.Errorf("maze: replay ended the attempt at step %d", i)
		}
	}
	return nil
}

func (s *Session) pathCopy() []Coord {
	out := make([]Coord, len(s.path))
	copy(out, s.path)
	return out
}

func dispatch(listeners []Listener, events []Event) {
	for _, ev := range events {
		for _, l := range listeners {
			l(ev)
		}
	}
}
