// Package storage provides SQLite-based persistence for scores and round history.
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

// sqliteTime is the layout CURRENT_TIMESTAMP produces.
const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

// Round is the record of one finished memory round.
type Round struct {
	ID          int64
	RunID       string // uuid, unique per round
	GameID      string
	Level       string
	Outcome     string // "won" or "lost"
	Matches     int
	Pairs       int
	Moves       int
	SecondsLeft int
	Score       int
	Player      string // SSH user name, empty for local play
	CreatedAt   time.Time
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
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			level TEXT NOT NULL,
			outcome TEXT NOT NULL,
			matches INTEGER NOT NULL DEFAULT 0,
			pairs INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			seconds_left INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			player TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_game_id ON rounds(game_id);
		CREATE INDEX IF NOT EXISTS idx_rounds_best ON rounds(game_id, score DESC, moves ASC);
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

// parseTime converts a created_at column, which the driver may hand back as
// either time.Time or text.
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

// SaveScore records a new score for the given game.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, score) VALUES (?, ?)",
		gameID, score,
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

// TopScores retrieves the top N scores for the given game.
// Results are ordered by score descending.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, score, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanScores(rows)
}

// AllScores retrieves all scores for the given game (no limit).
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, game_id, score, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanScores(rows)
}

func scanScores(rows *sql.Rows) ([]ScoreEntry, error) {
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &createdAt); err != nil {
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

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes all scores and rounds for the given game.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM rounds WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

// SaveRound records a finished round. A RunID is generated when empty.
// Returns the run ID that was stored.
func (s *Store) SaveRound(r Round) (string, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	} else if _, err := uuid.Parse(r.RunID); err != nil {
		return "", fmt.Errorf("storage: invalid run ID %q: %w", r.RunID, err)
	}

	_, err := s.db.Exec(
		`INSERT INTO rounds
		 (run_id, game_id, level, outcome, matches, pairs, moves, seconds_left, score, player)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID,
		r.GameID,
		r.Level,
		r.Outcome,
		r.Matches,
		r.Pairs,
		r.Moves,
		r.SecondsLeft,
		r.Score,
		r.Player,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save round: %w", err)
	}
	return r.RunID, nil
}

const roundColumns = `id, run_id, game_id, level, outcome, matches, pairs,
	moves, seconds_left, score, player, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRound(row rowScanner) (Round, error) {
	var r Round
	var createdAt any
	err := row.Scan(
		&r.ID,
		&r.RunID,
		&r.GameID,
		&r.Level,
		&r.Outcome,
		&r.Matches,
		&r.Pairs,
		&r.Moves,
		&r.SecondsLeft,
		&r.Score,
		&r.Player,
		&createdAt,
	)
	r.CreatedAt = parseTime(createdAt)
	return r, err
}

// RoundByID retrieves a round by its run ID. Returns nil if not found.
func (s *Store) RoundByID(runID string) (*Round, error) {
	r, err := scanRound(s.db.QueryRow(
		`SELECT `+roundColumns+` FROM rounds WHERE run_id = ?`,
		runID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query round: %w", err)
	}
	return &r, nil
}

// RecentRounds retrieves the most recent rounds, newest first.
// An empty gameID matches every level.
func (s *Store) RecentRounds(gameID string, limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+roundColumns+`
		 FROM rounds
		 WHERE ? = '' OR game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var rounds []Round
	for rows.Next() {
		r, err := scanRound(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rounds = append(rounds, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return rounds, nil
}

// BestRound returns the highest-scoring won round for a game, preferring
// fewer moves on ties. Returns nil if the game has never been won.
func (s *Store) BestRound(gameID string) (*Round, error) {
	r, err := scanRound(s.db.QueryRow(
		`SELECT `+roundColumns+`
		 FROM rounds
		 WHERE game_id = ? AND outcome = 'won'
		 ORDER BY score DESC, moves ASC, id ASC
		 LIMIT 1`,
		gameID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best round: %w", err)
	}
	return &r, nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	Wins       int
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats, err := s.collectStats(gameID)
	if err != nil {
		return nil, err
	}
	if gs, ok := stats[gameID]; ok {
		return gs, nil
	}
	return &GameStats{GameID: gameID}, nil
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	return s.collectStats("")
}

// collectStats aggregates per-game statistics, for every game when gameID is
// empty. Games played, wins and last played come from the rounds table, which
// records every finished round; best, average and total come from scores.
// Games with scores but no recorded rounds count their scores as games.
func (s *Store) collectStats(gameID string) (map[string]*GameStats, error) {
	stats := make(map[string]*GameStats)
	get := func(id string) *GameStats {
		gs, ok := stats[id]
		if !ok {
			gs = &GameStats{GameID: id}
			stats[id] = gs
		}
		return gs
	}

	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(created_at)
		 FROM scores
		 WHERE ? = '' OR game_id = ?
		 GROUP BY game_id`,
		gameID, gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var lastPlayed any
		var count, high int
		var avg float64
		var total int64
		if err := rows.Scan(&id, &count, &high, &avg, &total, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		gs := get(id)
		gs.GamesCount = count
		gs.HighScore = high
		gs.AvgScore = avg
		gs.TotalScore = total
		gs.LastPlayed = parseTime(lastPlayed)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	roundRows, err := s.db.Query(
		`SELECT game_id, COUNT(*), SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END), MAX(created_at)
		 FROM rounds
		 WHERE ? = '' OR game_id = ?
		 GROUP BY game_id`,
		gameID, gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get round stats: %w", err)
	}
	defer roundRows.Close()

	for roundRows.Next() {
		var id string
		var lastPlayed any
		var played, wins int
		if err := roundRows.Scan(&id, &played, &wins, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan round stats row: %w", err)
		}
		gs := get(id)
		gs.GamesCount = max(gs.GamesCount, played)
		gs.Wins = wins
		if t := parseTime(lastPlayed); t.After(gs.LastPlayed) {
			gs.LastPlayed = t
		}
	}
	if err := roundRows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
