// Package storage provides SQLite-based persistence for run scores and
// cross-run progression. Uses the pure-Go modernc.org/sqlite driver to
// avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is where the CLI keeps its database.
const DefaultPath = "~/.owlrun/owlrun.db"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single finished run.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	Level     int
	Character string
	Seed      int64
	Reason    string
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// A single connection serializes writers from the async progress worker
	// and the UI goroutine.
	db.SetMaxOpenConns(1)

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
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			character TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL DEFAULT 0,
			reason TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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

// SaveScore records a bare score for the given game.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	return s.SaveRun(ScoreEntry{GameID: gameID, Score: score, Level: 1})
}

// SaveRun records a finished run with its metadata.
func (s *Store) SaveRun(e ScoreEntry) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, score, level, character, seed, reason) VALUES (?, ?, ?, ?, ?, ?)",
		e.GameID, e.Score, e.Level, e.Character, e.Seed, e.Reason,
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

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

const runColumns = `id, game_id, score, level, character, seed, reason, created_at`

// queryRuns returns runs matching where, best first.
func (s *Store) queryRuns(where string, limit int, args ...any) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT `+runColumns+` FROM scores WHERE `+where+` ORDER BY score DESC, id ASC LIMIT ?`,
		append(args, limit)...,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &e.Level, &e.Character, &e.Seed, &e.Reason, &createdAt); err != nil {
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

// TopScores returns the best runs of a mode. A non-positive limit means 10.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	return s.queryRuns(`game_id = ?`, limit, gameID)
}

// TopScoresForSeed returns the best runs played on one seed, which for the
// daily mode is one day's board.
func (s *Store) TopScoresForSeed(gameID string, seed int64, limit int) ([]ScoreEntry, error) {
	return s.queryRuns(`game_id = ? AND seed = ?`, limit, gameID, seed)
}

// HighScore returns the best score for a mode, or 0 without runs.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(score) FROM scores WHERE game_id = ?`, gameID).Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return int(score.Int64), nil
}

// ClearScores deletes every run of a mode.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec(`DELETE FROM scores WHERE game_id = ?`, gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// RunStats aggregates every run of a mode.
type RunStats struct {
	Runs         int
	Best         int
	Average      float64
	Total        int64
	DeepestLevel int
	LastPlayed   time.Time
}

// Stats aggregates the runs of a mode. LastPlayed is zero without runs.
func (s *Store) Stats(gameID string) (RunStats, error) {
	var st RunStats
	var last any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0),
		        COALESCE(MAX(level), 0), MAX(created_at)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&st.Runs, &st.Best, &st.Average, &st.Total, &st.DeepestLevel, &last)
	if err != nil {
		return RunStats{}, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	st.LastPlayed = parseTime(last)
	return st, nil
}

// RunnerStat is one runner's line in the per-runner breakdown.
type RunnerStat struct {
	Character string
	Runs      int
	Best      int
}

// RunnerStats breaks the runs of a mode down by runner, most played first.
func (s *Store) RunnerStats(gameID string) ([]RunnerStat, error) {
	rows, err := s.db.Query(
		`SELECT character, COUNT(*), MAX(score) FROM scores
		 WHERE game_id = ? AND character != ''
		 GROUP BY character
		 ORDER BY COUNT(*) DESC, character ASC`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runner stats: %w", err)
	}
	defer rows.Close()

	var out []RunnerStat
	for rows.Next() {
		var r RunnerStat
		if err := rows.Scan(&r.Character, &r.Runs, &r.Best); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
