package kuzu

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/kuzu-maze/internal/maze"
	"github.com/vovakirdan/kuzu-maze/internal/scoring"
	"github.com/vovakirdan/kuzu-maze/internal/storage"
)

// Persisted record keys.
const (
	dailyProgressRecord     = "dailyProgressRecord"
	streakRecord            = "streakRecord"
	turnInProgressSnapshot  = "turnInProgressSnapshot"
	lastCompletedGameResult = "lastCompletedGameResult"
	cumulativeGameStats     = "cumulativeGameStats"
	histogramSamples        = "histogramSamples"
)

// maxHistogramSamples caps the attempts-to-win history.
const maxHistogramSamples = 365

// DailyRecord tracks progress on one day's puzzle.
type DailyRecord struct {
	Date              string `json:"date"`
	Attempts          int    `json:"attempts"`
	Completed         bool   `json:"completed"`
	CompletedAttempts *int   `json:"completedAttempts"`
}

// TurnSnapshot is the reveal path of an unfinished attempt.
type TurnSnapshot struct {
	Date    string       `json:"date"`
	Mode    Mode         `json:"mode"`
	Attempt int          `json:"attempt"`
	Path    []maze.Coord `json:"path"`
}

// GameResult describes the last completed puzzle.
type GameResult struct {
	ID          string            `json:"id"`
	Date        string            `json:"date"`
	Mode        Mode              `json:"mode"`
	Player      string            `json:"player"`
	Attempts    int               `json:"attempts"`
	Tiles       int               `json:"tiles"`
	Powers      []string          `json:"powers"`
	Breakdown   scoring.Breakdown `json:"breakdown"`
	Optimal     *scoring.Optimal  `json:"optimal,omitempty"`
	CompletedAt time.Time         `json:"completedAt"`
}

// Stats are cumulative counters across every game played.
type Stats struct {
	Played        int    `json:"played"`
	Wins          int    `json:"wins"`
	CurrentStreak int    `json:"currentStreak"`
	BestStreak    int    `json:"bestStreak"`
	TotalAttempts int    `json:"totalAttempts"`
	Stars         [6]int `json:"stars"` // index is the star rating, 0 unused
}

// Histogram holds attempts-to-win samples, oldest first.
type Histogram struct {
	Samples []int `json:"samples"`
}

// Bucket is one bar of the attempts histogram.
type Bucket struct {
	Label string
	Count int
}

// Add appends a sample, dropping the oldest beyond the cap.
func (h *Histogram) Add(attempts int) {
	h.Samples = append(h.Samples, attempts)
	if n := len(h.Samples); n > maxHistogramSamples {
		h.Samples = h.Samples[n-maxHistogramSamples:]
	}
}

// Buckets groups the samples as 1, 2, 3, 4, 5, 6-10 and 11+ attempts.
func (h Histogram) Buckets() []Bucket {
	out := []Bucket{
		{Label: "1"}, {Label: "2"}, {Label: "3"}, {Label: "4"}, {Label: "5"},
		{Label: "6-10"}, {Label: "11+"},
	}
	for _, a := range h.Samples {
		switch {
		case a <= 0:
			continue
		case a <= 5:
			out[a-1].Count++
		case a <= 10:
			out[5].Count++
		default:
			out[6].Count++
		}
	}
	return out
}

// Records reads and writes typed JSON records on a key-value store.
// A record that cannot be decoded is logged and treated as absent; write
// failures are logged and otherwise ignored so play never stops on storage.
type Records struct {
	kv     storage.KV
	logger *log.Logger
}

// NewRecords wraps kv. A nil kv keeps records in memory.
func NewRecords(kv storage.KV, logger *log.Logger) *Records {
	if kv == nil {
		kv = storage.NewMemoryKV()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Records{kv: kv, logger: logger}
}

func (r *Records) load(key string, v any) bool {
	data, ok, err := r.kv.Get(key)
	if err != nil {
		r.logger.Warn("record unavailable", "key", key, "err", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		r.logger.Warn("corrupt record ignored", "key", key, "err", err)
		return false
	}
	return true
}

func (r *Records) save(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		r.logger.Error("cannot encode record", "key", key, "err", err)
		return
	}
	if err := r.kv.Set(key, data); err != nil {
		r.logger.Warn("record not saved", "key", key, "err", err)
	}
}

func (r *Records) remove(key string) {
	if err := r.kv.Remove(key); err != nil {
		r.logger.Warn("record not removed", "key", key, "err", err)
	}
}

// Daily returns the stored daily record, or nil.
func (r *Records) Daily() *DailyRecord {
	var d DailyRecord
	if !r.load(dailyProgressRecord, &d) || d.Date == "" {
		return nil
	}
	return &d
}

// SaveDaily replaces the daily record.
func (r *Records) SaveDaily(d DailyRecord) { r.save(dailyProgressRecord, d) }

// ClearDaily removes the daily record.
func (r *Records) ClearDaily() { r.remove(dailyProgressRecord) }

// Streak returns the stored streak, or nil.
func (r *Records) Streak() *scoring.Streak {
	var s scoring.Streak
	if !r.load(streakRecord, &s) {
		return nil
	}
	return &s
}

// SaveStreak replaces the streak record.
func (r *Records) SaveStreak(s scoring.Streak) { r.save(streakRecord, s) }

// Turn returns the in-progress turn snapshot, or nil.
func (r *Records) Turn() *TurnSnapshot {
	var t TurnSnapshot
	if !r.load(turnInProgressSnapshot, &t) {
		return nil
	}
	return &t
}

// SaveTurn replaces the turn snapshot.
func (r *Records) SaveTurn(t TurnSnapshot) { r.save(turnInProgressSnapshot, t) }

// ClearTurn removes the turn snapshot.
func (r *Records) ClearTurn() { r.remove(turnInProgressSnapshot) }

// LastResult returns the last completed game, or nil.
func (r *Records) LastResult() *GameResult {
	var g GameResult
	if !r.load(lastCompletedGameResult, &g) {
		return nil
	}
	return &g
}

// SaveLastResult replaces the last completed game.
func (r *Records) SaveLastResult(g GameResult) { r.save(lastCompletedGameResult, g) }

// Stats returns the cumulative stats; absent stats are zero.
func (r *Records) Stats() Stats {
	var s Stats
	if !r.load(cumulativeGameStats, &s) {
		return Stats{}
	}
	return s
}

// SaveStats replaces the cumulative stats.
func (r *Records) SaveStats(s Stats) { r.save(cumulativeGameStats, s) }

// Histogram returns the attempts-to-win samples.
func (r *Records) Histogram() Histogram {
	var h Histogram
	if !r.load(histogramSamples, &h) {
		return Histogram{}
	}
	return h
}

// SaveHistogram replaces the histogram samples.
func (r *Records) SaveHistogram(h Histogram) { r.save(histogramSamples, h) }
