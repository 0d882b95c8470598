package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Match modes.
const (
	ModeSinglePlayer = "single-player"
	ModeTwoPlayer    = "two-player"
)

// Match outcomes.
const (
	OutcomeWon       = "won"
	OutcomeLost      = "lost"
	OutcomeP1Won     = "p1-won"
	OutcomeP2Won     = "p2-won"
	OutcomeAbandoned = "abandoned"
)

// MatchResult is one finished or abandoned session.
type MatchResult struct {
	ID         int64
	MatchID    string // UUID, generated by SaveMatch when empty
	Mode       string
	Difficulty string
	Outcome    string
	Score      int
	LivesP1    int
	LivesP2    int
	Duration   int // Duration in seconds
	CreatedAt  time.Time
}

// SaveMatch records a match and returns its match ID.
func (s *Store) SaveMatch(m MatchResult) (string, error) {
	if m.MatchID == "" {
		m.MatchID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO matches
		 (match_id, mode, difficulty, outcome, score, lives_p1, lives_p2, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.MatchID, m.Mode, m.Difficulty, m.Outcome, m.Score, m.LivesP1, m.LivesP2, m.Duration,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save match: %w", err)
	}
	return m.MatchID, nil
}

const matchColumns = `id, match_id, mode, difficulty, outcome, score, lives_p1, lives_p2, duration_secs, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (MatchResult, error) {
	var m MatchResult
	var createdAt any
	err := row.Scan(
		&m.ID,
		&m.MatchID,
		&m.Mode,
		&m.Difficulty,
		&m.Outcome,
		&m.Score,
		&m.LivesP1,
		&m.LivesP2,
		&m.Duration,
		&createdAt,
	)
	if err != nil {
		return MatchResult{}, err
	}
	m.CreatedAt = parseTime(createdAt)
	return m, nil
}

// MatchByID retrieves a match by its match ID. Returns nil if not found.
func (s *Store) MatchByID(matchID string) (*MatchResult, error) {
	m, err := scanMatch(s.db.QueryRow(
		`SELECT `+matchColumns+` FROM matches WHERE match_id = ?`,
		matchID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &m, nil
}

// RecentMatches retrieves the most recent matches, newest first.
func (s *Store) RecentMatches(limit int) ([]MatchResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var results []MatchResult
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// Stats contains aggregated statistics over all recorded matches.
type Stats struct {
	Matches    int
	Wins       int // Single-player wins plus two-player results
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// MatchStats aggregates the match history.
func (s *Store) MatchStats() (*Stats, error) {
	stats := &Stats{}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome IN (?, ?, ?) THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0),
		        MAX(created_at)
		 FROM matches`,
		OutcomeWon, OutcomeP1Won, OutcomeP2Won,
	).Scan(&stats.Matches, &stats.Wins, &stats.HighScore, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get match stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}
