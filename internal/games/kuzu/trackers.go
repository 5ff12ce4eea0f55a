package kuzu

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/kuzu-maze/internal/maze"
	"github.com/vovakirdan/kuzu-maze/internal/scoring"
	"github.com/vovakirdan/kuzu-maze/internal/storage"
)

// subscribe attaches the trackers to the current session. Order matters:
// the score is computed before anything that records it.
func (g *Game) subscribe() {
	g.session.Subscribe(g.scoreTracker)
	g.session.Subscribe(g.progressTracker)
	g.session.Subscribe(g.streakTracker)
	g.session.Subscribe(g.statsTracker)
	g.session.Subscribe(g.resultTracker)
}

func (g *Game) scoreTracker(ev maze.Event) {
	won, ok := ev.(maze.WonEvent)
	if !ok {
		return
	}
	bd := scoring.Evaluate(scoring.Input{
		Attempt: won.Attempt,
		Tiles:   won.TilesRevealed,
		Powers:  won.Powers,
	}, g.optimal)
	g.breakdown = &bd
	if g.mode == ModeDaily {
		g.completed = true
	}
	g.logger.Info("puzzle solved", "mode", g.mode, "attempt", won.Attempt,
		"tiles", won.TilesRevealed, "score", bd.Total, "stars", bd.Stars)
}

// progressTracker keeps the daily record and the unfinished-turn snapshot.
func (g *Game) progressTracker(ev maze.Event) {
	if g.mode != ModeDaily {
		return
	}
	switch e := ev.(type) {
	case maze.RevealedEvent:
		if len(e.Path) == 1 {
			g.records.SaveDaily(DailyRecord{Date: g.date, Attempts: e.Attempt})
		}
		g.records.SaveTurn(TurnSnapshot{Date: g.date, Mode: ModeDaily, Attempt: e.Attempt, Path: e.Path})
	case maze.AttemptEndedEvent:
		g.records.SaveDaily(DailyRecord{Date: g.date, Attempts: e.Attempt + 1})
		g.records.ClearTurn()
	case maze.WonEvent:
		attempts := e.Attempt
		g.records.SaveDaily(DailyRecord{
			Date:              g.date,
			Attempts:          attempts,
			Completed:         true,
			CompletedAttempts: &attempts,
		})
		g.records.ClearTurn()
	}
}

func (g *Game) streakTracker(ev maze.Event) {
	won, ok := ev.(maze.WonEvent)
	if !ok || g.mode != ModeDaily {
		return
	}
	if !scoring.StreakEligible(won.Attempt, g.cfg.Scoring.StreakMaxAttempts) {
		g.logger.Info("win too late for streak", "attempt", won.Attempt,
			"limit", g.cfg.Scoring.StreakMaxAttempts)
		return
	}
	next := scoring.UpdateStreak(g.date, g.records.Streak())
	g.records.SaveStreak(next)
	g.streak = &next
}

func (g *Game) statsTracker(ev maze.Event) {
	switch e := ev.(type) {
	case maze.RevealedEvent:
		if g.started {
			return
		}
		g.started = true
		st := g.records.Stats()
		st.Played++
		g.records.SaveStats(st)
	case maze.AttemptEndedEvent:
		st := g.records.Stats()
		st.TotalAttempts++
		g.records.SaveStats(st)
	case maze.WonEvent:
		st := g.records.Stats()
		st.Wins++
		st.TotalAttempts++
		if g.breakdown != nil {
			st.Stars[g.breakdown.Stars]++
		}
		if g.streak != nil {
			st.CurrentStreak = g.streak.Current
			st.BestStreak = max(st.BestStreak, g.streak.Best)
		}
		g.records.SaveStats(st)

		h := g.records.Histogram()
		h.Add(e.Attempt)
		g.records.SaveHistogram(h)
	}
}

// resultTracker stores the finished game and reports it to the leaderboard.
func (g *Game) resultTracker(ev maze.Event) {
	won, ok := ev.(maze.WonEvent)
	if !ok || g.breakdown == nil {
		return
	}
	res := GameResult{
		ID:          uuid.NewString(),
		Date:        g.date,
		Mode:        g.mode,
		Player:      g.player,
		Attempts:    won.Attempt,
		Tiles:       won.TilesRevealed,
		Powers:      powerNames(won.Powers),
		Breakdown:   *g.breakdown,
		Optimal:     g.optimal,
		CompletedAt: g.clock(),
	}
	g.result = &res
	g.records.SaveLastResult(res)

	if g.scores == nil {
		return
	}
	if _, err := g.scores.SaveScore(storage.ScoreEntry{
		Board:    g.boardKey(),
		Initials: g.player,
		Attempts: res.Attempts,
		Score:    res.Breakdown.Total,
	}); err != nil {
		g.logger.Warn("leaderboard entry not saved", "err", err)
	}
	if err := g.scores.SaveResult(storage.ResultEntry{
		ID:       res.ID,
		Player:   g.player,
		Board:    g.boardKey(),
		Mode:     string(g.mode),
		Attempts: res.Attempts,
		Tiles:    res.Tiles,
		Powers:   won.Powers.Len(),
		Score:    res.Breakdown.Total,
		Stars:    res.Breakdown.Stars,
	}); err != nil {
		g.logger.Warn("result history not saved", "err", err)
	}
}

// boardKey names the leaderboard a win belongs to.
func (g *Game) boardKey() string {
	if g.mode == ModePractice {
		return PracticeBoardKey
	}
	return g.date
}

func powerNames(s maze.PowerSet) []string {
	names := []string{}
	for _, t := range s.Tiles() {
		names = append(names, t.String())
	}
	return names
}
