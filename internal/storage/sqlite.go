// Package storage provides SQLite-based persistence for finished poker dice rounds.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/pokerdice/internal/dice"
	"github.com/vovakirdan/pokerdice/internal/session"
)

const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for round persistence.
type Store struct {
	db *sql.DB
}

// RoundEntry is a single recorded round.
type RoundEntry struct {
	ID        string
	Player    string
	Style     dice.Style
	Values    []dice.Value
	Hand      dice.Category
	Points    int
	CreatedAt time.Time
}

// Stats contains aggregated statistics over all recorded rounds.
type Stats struct {
	Rounds     int
	HighScore  int
	AvgScore   float64
	BestHand   dice.Category
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL DEFAULT '',
			style TEXT NOT NULL,
			dice TEXT NOT NULL,
			hand INTEGER NOT NULL,
			points INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_points ON rounds(points DESC);
		CREATE INDEX IF NOT EXISTS idx_rounds_player ON rounds(player);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRound records a finished round and returns its generated ID.
func (s *Store) SaveRound(player string, style dice.Style, hand dice.Hand) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO rounds (id, player, style, dice, hand, points) VALUES (?, ?, ?, ?, ?, ?)",
		id, player, style.String(), dice.FormatValues(hand.Values), int(hand.Category), hand.Points,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save round: %w", err)
	}
	return id, nil
}

// RecordRound implements session.RoundRecorder.
func (s *Store) RecordRound(r session.RoundResult) error {
	_, err := s.SaveRound(r.Player, r.Style, r.Hand)
	return err
}

var _ session.RoundRecorder = (*Store)(nil)

// TopRounds retrieves the N best rounds ordered by points descending.
func (s *Store) TopRounds(limit int) ([]RoundEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, style, dice, hand, points, created_at
		 FROM rounds
		 ORDER BY points DESC, created_at ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var entries []RoundEntry
	for rows.Next() {
		var (
			e         RoundEntry
			style     string
			values    string
			hand      int
			createdAt any
		)
		if err := rows.Scan(&e.ID, &e.Player, &style, &values, &hand, &e.Points, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if e.Style, err = dice.ParseStyle(style); err != nil {
			return nil, fmt.Errorf("storage: round %s: %w", e.ID, err)
		}
		if e.Values, err = dice.ParseValues(values); err != nil {
			return nil, fmt.Errorf("storage: round %s: %w", e.ID, err)
		}
		e.Hand = dice.Category(hand)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the best points total. Returns 0 if no rounds exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(points) FROM rounds").Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// GetStats aggregates every recorded round.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}
	var best int
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(points), 0), COALESCE(AVG(points), 0), COALESCE(MAX(hand), 0)
		 FROM rounds`,
	).Scan(&stats.Rounds, &stats.HighScore, &stats.AvgScore, &best)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.BestHand = dice.Category(best)

	var lastPlayed any
	err = s.db.QueryRow(`SELECT created_at FROM rounds ORDER BY created_at DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}
	return stats, nil
}

// ClearRounds deletes every recorded round.
func (s *Store) ClearRounds() error {
	if _, err := s.db.Exec("DELETE FROM rounds"); err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
