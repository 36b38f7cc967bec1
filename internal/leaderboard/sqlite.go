package leaderboard

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists the leaderboard in a single SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if missing) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS leaderboard (
		position INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		score INTEGER NOT NULL,
		difficulty TEXT NOT NULL,
		words_solved INTEGER NOT NULL,
		played_at INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS leaderboard_meta (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		updated_at INTEGER NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Load returns the rows in stored order. A database that was never saved to
// reports ErrNotFound so callers can seed it.
func (s *SQLiteStore) Load(ctx context.Context) ([]Entry, error) {
	var updated int64
	err := s.db.QueryRowContext(ctx, `SELECT updated_at FROM leaderboard_meta WHERE id = 1`).Scan(&updated)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query leaderboard meta: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, score, difficulty, words_solved, played_at
		FROM leaderboard
		ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, MaxEntries)
	for rows.Next() {
		var e Entry
		var playedAt int64
		if err := rows.Scan(&e.Name, &e.Score, &e.Difficulty, &e.WordsSolved, &playedAt); err != nil {
			return nil, fmt.Errorf("%w: scan leaderboard row: %v", ErrCorrupt, err)
		}
		e.Date = time.UnixMilli(playedAt).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Save replaces every row inside one transaction.
func (s *SQLiteStore) Save(ctx context.Context, entries []Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM leaderboard`); err != nil {
		return fmt.Errorf("clear leaderboard: %w", err)
	}
	for i, e := range entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO leaderboard (position, name, score, difficulty, words_solved, played_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			i, e.Name, e.Score, e.Difficulty, e.WordsSolved, e.Date.UnixMilli(),
		); err != nil {
			return fmt.Errorf("insert leaderboard row %d: %w", i, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO leaderboard_meta (id, updated_at) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at`,
		time.Now().UnixMilli(),
	); err != nil {
		return fmt.Errorf("update leaderboard meta: %w", err)
	}
	return tx.Commit()
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
