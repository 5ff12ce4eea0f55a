// Package kuzu runs a Kuzu's Maze game on top of the maze engine: it picks
// the board, restores daily progress, and feeds session events to the
// trackers that keep streaks, stats and results.
package kuzu

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/kuzu-maze/internal/catalog"
	"github.com/vovakirdan/kuzu-maze/internal/config"
	"github.com/vovakirdan/kuzu-maze/internal/maze"
	"github.com/vovakirdan/kuzu-maze/internal/scoring"
	"github.com/vovakirdan/kuzu-maze/internal/storage"
)

// Mode selects where the board comes from.
type Mode string

const (
	ModeDaily    Mode = "daily"
	ModePractice Mode = "practice"
)

// PracticeBoardKey is the leaderboard board name used for practice wins.
const PracticeBoardKey = "practice"

// Leaderboard receives completed games.
type Leaderboard interface {
	SaveScore(e storage.ScoreEntry) (int64, error)
	SaveResult(r storage.ResultEntry) error
}

// Options configures a Game.
type Options struct {
	Mode        Mode
	Date        string // fixed daily date; empty follows the clock
	Clock       func() time.Time
	Source      catalog.Source
	Config      config.Config
	KV          storage.KV
	Leaderboard Leaderboard
	Player      string
	Seed        int64 // first practice seed; 0 seeds from the clock
	Rows, Cols  int   // board shape; 0 uses the wide layout from Config
	Logger      *log.Logger
}

// Game is one player's game. It is driven from a single goroutine, like
// the UI loop that owns it.
type Game struct {
	cfg       config.Config
	clock     func() time.Time
	fixedDate string
	src       catalog.Source
	records   *Records
	scores    Leaderboard
	player    string
	logger    *log.Logger
	seed      int64

	mode        Mode
	rows, cols  int
	date        string
	session     *maze.Session
	optimal     *scoring.Optimal
	fromCatalog bool
	completed   bool
	revealAll   bool
	started     bool
	breakdown   *scoring.Breakdown
	result      *GameResult
	streak      *scoring.Streak
}

// New creates a game and loads its first board.
func New(ctx context.Context, opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg.Board.WideRows == 0 {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Game{
		cfg:       cfg,
		clock:     opts.Clock,
		fixedDate: opts.Date,
		src:       opts.Source,
		scores:    opts.Leaderboard,
		player:    storage.NormalizeInitials(opts.Player),
		logger:    opts.Logger,
		seed:      opts.Seed,
		mode:      opts.Mode,
		rows:      opts.Rows,
		cols:      opts.Cols,
	}
	if g.clock == nil {
		g.clock = time.Now
	}
	if g.logger == nil {
		g.logger = log.Default()
	}
	if g.mode == "" {
		g.mode = ModeDaily
	}
	if g.rows == 0 || g.cols == 0 {
		g.rows, g.cols = cfg.Board.WideRows, cfg.Board.WideCols
	}
	if g.rows*g.cols != maze.CellCount {
		return nil, maze.ErrShape
	}
	if g.fixedDate != "" {
		if _, err := time.Parse(scoring.DateLayout, g.fixedDate); err != nil {
			return nil, err
		}
	}
	g.records = NewRecords(opts.KV, g.logger)
	g.load(ctx)
	return g, nil
}

func (g *Game) today() string {
	if g.fixedDate != "" {
		return g.fixedDate
	}
	return g.clock().Format(scoring.DateLayout)
}

func (g *Game) nextSeed() int64 {
	if g.seed == 0 {
		return g.clock().UnixNano()
	}
	s := g.seed
	g.seed++
	return s
}

// load builds a fresh session for the current mode and date.
func (g *Game) load(ctx context.Context) {
	g.date = g.today()
	g.optimal = nil
	g.fromCatalog = false
	g.completed = false
	g.revealAll = false
	g.started = false
	g.breakdown = nil
	g.result = nil
	g.streak = g.records.Streak()

	if g.mode == ModePractice {
		g.session = maze.NewSession(maze.PracticeBoard(g.nextSeed(), g.rows, g.cols))
		g.subscribe()
		g.logger.Info("practice board ready")
		return
	}

	res := catalog.Resolve(ctx, g.src, g.date, g.rows, g.cols, g.cfg.Scoring.SolveLimit, g.logger)
	g.optimal = res.Optimal
	g.fromCatalog = res.FromCatalog

	rec := g.records.Daily()
	if rec != nil && rec.Date != g.date {
		g.records.ClearDaily()
		g.records.ClearTurn()
		rec = nil
	}

	switch {
	case rec != nil && rec.Completed:
		attempts := rec.Attempts
		if rec.CompletedAttempts != nil {
			attempts = *rec.CompletedAttempts
		}
		g.session = maze.NewCompletedSession(res.Board, attempts)
		g.completed = true
		g.revealAll = true
		g.started = true
		if last := g.records.LastResult(); last != nil && last.Mode == ModeDaily && last.Date == g.date {
			g.result = last
			bd := last.Breakdown
			g.breakdown = &bd
		}
	case rec != nil:
		g.session = maze.NewSession(res.Board)
		g.session.SetAttempt(rec.Attempts)
		g.started = true
		g.resume(res.Board, rec.Attempts)
	default:
		g.session = maze.NewSession(res.Board)
	}
	g.subscribe()
	g.logger.Info("daily board ready", "date", g.date, "attempt", g.session.Attempt(),
		"catalog", g.fromCatalog, "completed", g.completed)
}

// resume replays the saved reveal path of an unfinished attempt. Trackers are
// not subscribed yet, so the records already on disk are left as they are.
func (g *Game) resume(board maze.Board, attempt int) {
	turn := g.records.Turn()
	if turn == nil {
		return
	}
	if turn.Mode != ModeDaily || turn.Date != g.date || turn.Attempt != attempt {
		g.records.ClearTurn()
		return
	}
	if err := g.session.Replay(turn.Path); err != nil {
		g.logger.Warn("saved turn discarded", "err", err)
		g.records.ClearTurn()
		g.session = maze.NewSession(board)
		g.session.SetAttempt(attempt)
	}
}

// Reset starts over where that makes sense: practice deals a new board and
// daily mode moves to a new date once the clock has rolled over. It reports
// whether a new board was loaded.
func (g *Game) Reset(ctx context.Context) bool {
	if g.mode == ModeDaily && g.today() == g.date {
		return false
	}
	g.load(ctx)
	return true
}

// Resize switches the board layout. Cell adjacency changes with the shape,
// so it is refused while an attempt has tiles face up.
func (g *Game) Resize(ctx context.Context, rows, cols int) bool {
	if rows == g.rows && cols == g.cols {
		return false
	}
	if rows*cols != maze.CellCount || rows <= 0 {
		return false
	}
	snap := g.session.Snapshot()
	if snap.TilesRevealed > 0 && !snap.Won && !g.completed {
		return false
	}
	if g.mode == ModePractice {
		if snap.Won {
			return false
		}
		// same deal, new layout
		reshaped, err := g.session.Board().Reshape(rows, cols)
		if err != nil {
			return false
		}
		g.rows, g.cols = rows, cols
		g.session = maze.NewSession(reshaped)
		g.session.SetAttempt(snap.Attempt)
		g.subscribe()
		return true
	}
	g.rows, g.cols = rows, cols
	g.load(ctx)
	return true
}

// ToggleMode switches between the daily puzzle and practice.
func (g *Game) ToggleMode(ctx context.Context) {
	if g.mode == ModeDaily {
		g.mode = ModePractice
	} else {
		g.mode = ModeDaily
	}
	g.load(ctx)
}

// Mode returns the current mode.
func (g *Game) Mode() Mode { return g.mode }

// Date returns the date of the loaded daily board.
func (g *Game) Date() string { return g.date }

// Board returns the loaded board.
func (g *Game) Board() maze.Board { return g.session.Board() }

// Records exposes the persisted records.
func (g *Game) Records() *Records { return g.records }

// Reveal forwards a player input to the engine.
func (g *Game) Reveal(c maze.Coord) maze.Outcome { return g.session.Reveal(c) }

// Restart abandons the current attempt.
func (g *Game) Restart() bool { return g.session.Restart() }

// FinishAttempt resets the board after an attempt has ended.
func (g *Game) FinishAttempt() bool { return g.session.FinishAttempt() }

// Lock closes the input gate.
func (g *Game) Lock() { g.session.Lock() }

// Unlock reopens the input gate.
func (g *Game) Unlock() { g.session.Unlock() }

// CanReveal reports whether c is a legal next reveal.
func (g *Game) CanReveal(c maze.Coord) bool { return g.session.CanReveal(c) }

// RevealAll turns every tile face up. It only applies once the puzzle is
// over, either won now or completed earlier today.
func (g *Game) RevealAll() bool {
	if !g.completed && !g.session.Snapshot().Won {
		return false
	}
	g.revealAll = true
	return true
}
