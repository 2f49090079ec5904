// Package sqlite persists the admin credential in a local SQLite database,
// the device-local equivalent of mobile key-value storage.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/darkcod/eatadmin/internal/migrate"
	"github.com/darkcod/eatadmin/internal/session"
)

// Compile-time interface satisfaction check.
var _ session.Store = (*Store)(nil)

// Store is the SQLite implementation of session.Store. The credential lives
// in a single-row kv table; the handle is limited to one connection since the
// slot is read-many/write-rarely.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// Open opens (or creates) the database at path, applies pending migrations
// and returns a ready Store.
func Open(ctx context.Context, path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping store: %w", err)
	}
	if err := migrate.Up(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate store: %w", err)
	}

	return &Store{db: db, log: log}, nil
}

// Read returns the stored token. Storage failures are logged and reported as
// an absent token, per the store contract.
func (s *Store) Read(ctx context.Context) (string, bool) {
	const query = `SELECT value FROM credentials WHERE key = ?`

	var token string
	err := s.db.QueryRowContext(ctx, query, session.TokenKey).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		s.log.Debug("read credential", zap.Error(err))
		return "", false
	}
	if token == "" {
		return "", false
	}
	return token, true
}

// Write persists the token, replacing any prior value.
func (s *Store) Write(ctx context.Context, token string) error {
	const query = `INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, datetime('now'))
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, query, session.TokenKey, token); err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	return nil
}

// Clear removes the token. Clearing an empty store is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	const query = `DELETE FROM credentials WHERE key = ?`

	if _, err := s.db.ExecContext(ctx, query, session.TokenKey); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }
