package maze

// Event is emitted by a Session after its state changes.
// Extension modules (progress, streaks, leaderboards) consume these instead
// of reaching into the engine.
type Event interface {
	event()
}

// Listener receives session events. Listeners run after the session has
// released its lock, so they may read the session again.
type Listener func(Event)

// RevealedEvent is sent for every accepted reveal.
type RevealedEvent struct {
	Attempt  int
	Cell     Coord
	Tile     Tile
	Peek     bool    // remote grapple reveal; the player did not travel
	Revealed int     // revealed cell count after this reveal
	Path     []Coord // accepted reveal targets this attempt, in order
}

func (RevealedEvent) event() {}

// AttemptEndedEvent is sent when an attempt fails or is restarted.
type AttemptEndedEvent struct {
	Attempt int
	Failure Failure
}

func (AttemptEndedEvent) event() {}

// AttemptStartedEvent is sent when a new attempt begins after a reset.
type AttemptStartedEvent struct {
	Attempt int
}

func (AttemptStartedEvent) event() {}

// WonEvent is sent once when the fifth flower is collected.
type WonEvent struct {
	Attempt       int
	TilesRevealed int
	Powers        PowerSet
	Path          []Coord
}

func (WonEvent) event() {}
