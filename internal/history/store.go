package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/vide/internal"
	"codeberg.org/snonux/vide/internal/translation"
)

// Entry is one stored translation
type Entry struct {
	ID        string
	CreatedAt time.Time
	Request   translation.Request
	Result    *translation.Result
}

// Store is a SQLite backed translation history
type Store struct {
	db *sql.DB
}

// DefaultPath returns ~/.local/state/vide/history.db
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "vide", "history.db")
}

// Open opens or creates the history database at path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS translations (
			id          TEXT PRIMARY KEY,
			created_at  INTEGER NOT NULL,
			direction   TEXT NOT NULL,
			source_text TEXT NOT NULL,
			result      TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS ix_translations_created ON translations (created_at)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create history table: %w", err)
		}
	}
	return nil
}

// Save stores a result and returns its ID
func (s *Store) Save(ctx context.Context, req translation.Request, result *translation.Result) (string, error) {
	text := strings.TrimSpace(req.Text)
	payload, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}

	id := internal.GenerateRequestID(string(req.Direction) + ":" + text)
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO translations (id, created_at, direction, source_text, result) VALUES (?, ?, ?, ?, ?)`,
		id, time.Now().UnixNano(), string(req.Direction), text, string(payload))
	if err != nil {
		return "", fmt.Errorf("failed to save translation: %w", err)
	}
	return id, nil
}

// Recent returns up to limit entries, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, direction, source_text, result FROM translations ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			createdAt int64
			dir       string
			payload   string
		)
		if err := rows.Scan(&e.ID, &createdAt, &dir, &e.Request.Text, &payload); err != nil {
			return nil, fmt.Errorf("failed to read history row: %w", err)
		}
		e.CreatedAt = time.Unix(0, createdAt)
		e.Request.Direction = translation.Direction(dir)
		if e.Result, err = decodeResult(payload); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

func decodeResult(payload string) (*translation.Result, error) {
	var result translation.Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("failed to decode stored result: %w", err)
	}
	if result.RelatedTerms == nil {
		result.RelatedTerms = []translation.RelatedTerm{}
	}
	return &result, nil
}
