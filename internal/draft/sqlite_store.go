package draft

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// SQLiteStore keeps drafts in a single SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (or creates) the database at path.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite path cannot be empty")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening draft database: %w", err)
	}
	s, err := NewSQLiteStore(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLiteStore uses an existing handle and creates the table if needed.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS drafts (
		draft_key      TEXT PRIMARY KEY,
		draft_id       TEXT NOT NULL,
		schema_version TEXT NOT NULL,
		saved_at       TEXT NOT NULL,
		body           BLOB NOT NULL
	);`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating drafts table: %w", err)
	}
	return nil
}

// Save upserts env under key.
func (s *SQLiteStore) Save(ctx context.Context, key string, env *Envelope) error {
	if err := checkKey(key); err != nil {
		return err
	}
	data, err := Encode(env)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	query := `INSERT INTO drafts (draft_key, draft_id, schema_version, saved_at, body)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(draft_key) DO UPDATE SET
		draft_id = excluded.draft_id,
		schema_version = excluded.schema_version,
		saved_at = excluded.saved_at,
		body = excluded.body`
	_, err = s.db.ExecContext(ctx, query,
		key, env.DraftID, env.SchemaVersion, env.SavedAt.UTC().Format(time.RFC3339Nano), data)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// Load reads the draft saved under key.
func (s *SQLiteStore) Load(ctx context.Context, key string) (*Envelope, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	var body []byte
	err := s.db.QueryRowContext(ctx, `SELECT body FROM drafts WHERE draft_key = ?`, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	return Decode(body)
}

// Delete removes the draft. Deleting a missing draft is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE draft_key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }
