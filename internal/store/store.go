// Package store defines the key-value contract the ledger persists through.
//
// A Store runs each invocation inside a transaction: Update callbacks see their
// own writes and commit all of them, or none if the callback returns an error.
// View callbacks get a read-only transaction.
package store

import (
	"context"
	"errors"
)

var (
	// ErrReadOnly is returned by Set inside a View transaction.
	ErrReadOnly = errors.New("store: read-only transaction")
	// ErrClosed is returned when a closed store is used.
	ErrClosed = errors.New("store: closed")
	// ErrBusy is returned when the backend could not acquire its write lock.
	ErrBusy = errors.New("store: busy")
)

// Tx is the set of primitives available to a single invocation.
type Tx interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Has(key string) (bool, error)
}

// Store is a persistent key-value store scoped to one ledger instance.
type Store interface {
	Update(ctx context.Context, fn func(Tx) error) error
	View(ctx context.Context, fn func(Tx) error) error
	Close() error
}
