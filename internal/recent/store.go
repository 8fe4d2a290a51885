// Package recent keeps a SQLite history of saved documents.
package recent

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/iw2rmb/wizard/internal/log"
)

// Schema is applied on every open.
const Schema = `
CREATE TABLE IF NOT EXISTS documents (
	path       TEXT PRIMARY KEY,
	saved_at   INTEGER NOT NULL,
	bytes      INTEGER NOT NULL,
	spans      INTEGER NOT NULL,
	save_count INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS documents_saved_at ON documents (saved_at DESC);
`

// Entry is one saved document.
type Entry struct {
	Path    string    `json:"path" yaml:"path"`
	SavedAt time.Time `json:"saved_at" yaml:"saved_at"`
	Bytes   int       `json:"bytes" yaml:"bytes"`
	Spans   int       `json:"spans" yaml:"spans"`
	// Saves counts every Record for the path.
	Saves int `json:"saves" yaml:"saves"`
}

// Store provides access to the recent documents database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	log.Debug(log.CatRecent, "Opening database", "path", path)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		log.ErrorErr(log.CatRecent, "Failed to open database", err, "path", path)
		return nil, err
	}
	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		log.ErrorErr(log.CatRecent, "Failed to apply schema", err, "path", path)
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	log.Info(log.CatRecent, "Connected to database", "path", path)
	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record upserts e. SavedAt defaults to now.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.Path == "" {
		return fmt.Errorf("recent: empty path")
	}
	if e.SavedAt.IsZero() {
		e.SavedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (path, saved_at, bytes, spans)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (path) DO UPDATE SET
			saved_at = excluded.saved_at,
			bytes = excluded.bytes,
			spans = excluded.spans,
			save_count = documents.save_count + 1`,
		e.Path, e.SavedAt.UnixNano(), e.Bytes, e.Spans)
	if err != nil {
		return fmt.Errorf("recording %s: %w", e.Path, err)
	}
	log.Debug(log.CatRecent, "Recorded save", "path", e.Path, "bytes", e.Bytes, "spans", e.Spans)
	return nil
}

// List returns up to limit entries, newest first. limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT path, saved_at, bytes, spans, save_count FROM documents ORDER BY saved_at DESC, path`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing recent documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		var (
			e     Entry
			nanos int64
		)
		if err := rows.Scan(&e.Path, &nanos, &e.Bytes, &e.Spans, &e.Saves); err != nil {
			return nil, fmt.Errorf("scanning recent document: %w", err)
		}
		e.SavedAt = time.Unix(0, nanos)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Forget removes path from the history.
func (s *Store) Forget(ctx context.Context, path string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE path = ?`, path); err != nil {
		return fmt.Errorf("forgetting %s: %w", path, err)
	}
	return nil
}
