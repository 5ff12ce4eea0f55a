package storage

import (
	"fmt"
	"strings"
	"time"
)

// ScoreEntry is one leaderboard row.
type ScoreEntry struct {
	ID        int64
	Board     string // daily date, or "practice"
	Initials  string
	Attempts  int
	Score     int
	CreatedAt time.Time
}

// NormalizeInitials upper-cases and trims initials to at most three letters.
func NormalizeInitials(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if r := []rune(s); len(r) > 3 {
		s = string(r[:3])
	}
	if s == "" {
		return "???"
	}
	return s
}

// SaveScore records a leaderboard entry.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO leaderboard (board, initials, attempts, score) VALUES (?, ?, ?, ?)",
		e.Board, NormalizeInitials(e.Initials), e.Attempts, e.Score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the best N entries for a board.
// Fewer attempts rank higher; ties go to the higher score, then the earlier entry.
func (s *Store) TopScores(board string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, board, initials, attempts, score, created_at
		 FROM leaderboard
		 WHERE board = ?
		 ORDER BY attempts ASC, score DESC, id ASC
		 LIMIT ?`,
		board, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Board, &e.Initials, &e.Attempts, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearScores deletes all leaderboard entries for a board.
func (s *Store) ClearScores(board string) error {
	_, err := s.db.Exec("DELETE FROM leaderboard WHERE board = ?", board)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}
