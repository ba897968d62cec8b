package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/rentledger/internal/store"
)

var _ store.Store = (*Store)(nil)

// Store implements store.Store on the kv table.
type Store struct {
	db *DB
}

// NewStore creates a Store over an open, migrated database.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// Open opens the database at path, applies migrations and returns a Store.
func Open(path string) (*Store, error) {
	db, err := New(path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}
	return NewStore(db), nil
}

// Update runs fn inside a SQL transaction, committing only if fn succeeds.
func (s *Store) Update(ctx context.Context, fn func(store.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapErr("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if err := fn(&kvTx{ctx: ctx, tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return wrapErr("failed to commit transaction", err)
	}
	return nil
}

// View runs fn inside a read-only transaction.
func (s *Store) View(ctx context.Context, fn func(store.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapErr("failed to begin transaction", err)
	}
	defer tx.Rollback()

	return fn(&kvTx{ctx: ctx, tx: tx, readOnly: true})
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

type kvTx struct {
	ctx      context.Context
	tx       *sql.Tx
	readOnly bool
}

func (t *kvTx) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := t.tx.QueryRowContext(t.ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, wrapErr(fmt.Sprintf("failed to get %q", key), err)
	}
	return value, true, nil
}

func (t *kvTx) Set(key string, value []byte) error {
	if t.readOnly {
		return store.ErrReadOnly
	}
	query := `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := t.tx.ExecContext(t.ctx, query, key, value); err != nil {
		return wrapErr(fmt.Sprintf("failed to set %q", key), err)
	}
	return nil
}

func (t *kvTx) Has(key string) (bool, error) {
	var count int
	err := t.tx.QueryRowContext(t.ctx, `SELECT COUNT(*) FROM kv WHERE key = ?`, key).Scan(&count)
	if err != nil {
		return false, wrapErr(fmt.Sprintf("failed to check %q", key), err)
	}
	return count > 0, nil
}
