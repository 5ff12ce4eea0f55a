package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// ResultEntry is one completed puzzle in a player's history.
type ResultEntry struct {
	ID        string
	Player    string
	Board     string
	Mode      string
	Attempts  int
	Tiles     int
	Powers    int
	Score     int
	Stars     int
	CreatedAt time.Time
}

// PlayerStats aggregates a player's result history.
type PlayerStats struct {
	Player      string
	Wins        int
	BestScore   int
	AvgAttempts float64
	LastPlayed  time.Time
}

// SaveResult records a completed puzzle. Saving the same ID twice is a no-op.
func (s *Store) SaveResult(r ResultEntry) error {
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO results
		 (id, player, board, mode, attempts, tiles, powers, score, stars)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Player, r.Board, r.Mode, r.Attempts, r.Tiles, r.Powers, r.Score, r.Stars,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save result: %w", err)
	}
	return nil
}

// RecentResults returns a player's latest results, newest first.
func (s *Store) RecentResults(player string, limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, player, board, mode, attempts, tiles, powers, score, stars, created_at
		 FROM results
		 WHERE player = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []ResultEntry
	for rows.Next() {
		var r ResultEntry
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.Player, &r.Board, &r.Mode,
			&r.Attempts, &r.Tiles, &r.Powers, &r.Score, &r.Stars,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// Stats aggregates a player's history.
func (s *Store) Stats(player string) (PlayerStats, error) {
	stats := PlayerStats{Player: player}
	var best sql.NullInt64
	var avg sql.NullFloat64
	var last any

	err := s.db.QueryRow(
		`SELECT COUNT(*), MAX(score), AVG(attempts), MAX(created_at)
		 FROM results
		 WHERE player = ?`,
		player,
	).Scan(&stats.Wins, &best, &avg, &last)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	if best.Valid {
		stats.BestScore = int(best.Int64)
	}
	if avg.Valid {
		stats.AvgAttempts = avg.Float64
	}
	stats.LastPlayed = parseTime(last)
	return stats, nil
}
