// Package memory provides an in-process Store used for tests and ephemeral runs.
package memory

import (
	"bytes"
	"context"
	"sync"

	"github.com/rpggio/rentledger/internal/store"
)

var _ store.Store = (*Store)(nil)

// Store keeps committed values in a map. Update callbacks are serialized.
type Store struct {
	mu     sync.Mutex
	data   map[string][]byte
	closed bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Update runs fn against a staging transaction and commits its writes if fn succeeds.
func (s *Store) Update(ctx context.Context, fn func(store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}

	tx := &tx{base: s.data, pending: make(map[string][]byte)}
	if err := fn(tx); err != nil {
		return err
	}
	for key, value := range tx.pending {
		s.data[key] = value
	}
	return nil
}

// View runs fn against a read-only transaction.
func (s *Store) View(ctx context.Context, fn func(store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}
	return fn(&tx{base: s.data, readOnly: true})
}

// Close marks the store unusable.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Snapshot returns a copy of the committed state.
func (s *Store) Snapshot() map[string][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]byte, len(s.data))
	for key, value := range s.data {
		out[key] = bytes.Clone(value)
	}
	return out
}

type tx struct {
	base     map[string][]byte
	pending  map[string][]byte
	readOnly bool
}

func (t *tx) Get(key string) ([]byte, bool, error) {
	if value, ok := t.pending[key]; ok {
		return bytes.Clone(value), true, nil
	}
	value, ok := t.base[key]
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(value), true, nil
}

func (t *tx) Set(key string, value []byte) error {
	if t.readOnly {
		return store.ErrReadOnly
	}
	t.pending[key] = bytes.Clone(value)
	return nil
}

func (t *tx) Has(key string) (bool, error) {
	if _, ok := t.pending[key]; ok {
		return true, nil
	}
	_, ok := t.base[key]
	return ok, nil
}
