// Package storage provides SQLite-based persistence for decrypt sessions.
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
)

// Outcome is how a minigame session ended.
type Outcome string

const (
	OutcomeWon     Outcome = "won"
	OutcomeLost    Outcome = "lost"
	OutcomeAborted Outcome = "aborted"
)

// Valid reports whether o is one of the known outcomes.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeWon, OutcomeLost, OutcomeAborted:
		return true
	}
	return false
}

// ErrInvalidOutcome is returned when saving a session with an unknown outcome.
var ErrInvalidOutcome = errors.New("storage: invalid outcome")

// timeLayout is fixed width so lexical order matches time order.
const timeLayout = "2006-01-02 15:04:05.000000000"

// Store manages the SQLite database connection for session history.
type Store struct {
	db *sql.DB
}

// Session is one finished minigame attempt.
type Session struct {
	ID        string
	EventID   string
	GameID    string
	Points    int
	Target    int
	LivesLeft int
	Outcome   Outcome
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
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
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			event_id TEXT NOT NULL,
			game_id TEXT NOT NULL,
			points INTEGER NOT NULL DEFAULT 0,
			target INTEGER NOT NULL DEFAULT 0,
			lives_left INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_game_id ON sessions(game_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_created_at ON sessions(created_at DESC);
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

// SaveSession records a finished session and returns its id. A missing id
// is generated and a zero CreatedAt is set to now.
func (s *Store) SaveSession(sess Session) (string, error) {
	if !sess.Outcome.Valid() {
		return "", fmt.Errorf("%w %q", ErrInvalidOutcome, sess.Outcome)
	}
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO sessions (id, event_id, game_id, points, target, lives_left, outcome, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.EventID, sess.GameID, sess.Points, sess.Target, sess.LivesLeft,
		string(sess.Outcome), sess.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save session: %w", err)
	}
	return sess.ID, nil
}

const sessionColumns = `id, event_id, game_id, points, target, lives_left, outcome, created_at`

// RecentSessions returns the newest sessions first.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.querySessions(
		`SELECT `+sessionColumns+` FROM sessions
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
}

// GameSessions returns the newest sessions of one game first.
func (s *Store) GameSessions(gameID string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.querySessions(
		`SELECT `+sessionColumns+` FROM sessions
		 WHERE game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, limit,
	)
}

// SessionByID looks up one session. It returns nil without error when the
// id is unknown.
func (s *Store) SessionByID(id string) (*Session, error) {
	list, err := s.querySessions(`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

func (s *Store) querySessions(query string, args ...any) ([]Session, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var outcome string
		var createdAt any
		if err := rows.Scan(&sess.ID, &sess.EventID, &sess.GameID, &sess.Points, &sess.Target,
			&sess.LivesLeft, &outcome, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sess.Outcome = Outcome(outcome)
		sess.CreatedAt = parseTime(createdAt)
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return sessions, nil
}

// parseTime handles both time.Time and string columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{timeLayout, "2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

// Clear deletes every session.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM sessions"); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// ClearGame deletes the sessions of one game.
func (s *Store) ClearGame(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM sessions WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID        string
	Sessions      int
	Won           int
	Lost          int
	Aborted       int
	WordsRevealed int64
	LastPlayed    time.Time
}

// WinRate is the share of sessions won, 0 when nothing was played.
func (g GameStats) WinRate() float64 {
	if g.Sessions == 0 {
		return 0
	}
	return float64(g.Won) / float64(g.Sessions)
}

const statsColumns = `game_id, COUNT(*),
	SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END),
	SUM(CASE WHEN outcome = 'lost' THEN 1 ELSE 0 END),
	SUM(CASE WHEN outcome = 'aborted' THEN 1 ELSE 0 END),
	COALESCE(SUM(points), 0),
	MAX(created_at)`

// GetGameStats retrieves aggregated statistics for a specific game. A game
// never played yields zero stats.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	all, err := s.queryStats(`SELECT `+statsColumns+` FROM sessions WHERE game_id = ? GROUP BY game_id`, gameID)
	if err != nil {
		return nil, err
	}
	if st, ok := all[gameID]; ok {
		return st, nil
	}
	return &GameStats{GameID: gameID}, nil
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	return s.queryStats(`SELECT ` + statsColumns + ` FROM sessions GROUP BY game_id`)
}

func (s *Store) queryStats(query string, args ...any) (map[string]*GameStats, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var st GameStats
		var lastPlayed any
		if err := rows.Scan(&st.GameID, &st.Sessions, &st.Won, &st.Lost, &st.Aborted,
			&st.WordsRevealed, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.GameID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
