package mocks

import (
	"context"

	"github.com/rpggio/rentledger/internal/store"
	"github.com/stretchr/testify/mock"
)

// Store is a mock for store.Store. Update and View invoke the callback with Tx.
type Store struct {
	mock.Mock
	Tx *Tx
}

func (m *Store) Update(ctx context.Context, fn func(store.Tx) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m.Tx)
}

func (m *Store) View(ctx context.Context, fn func(store.Tx) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m.Tx)
}

func (m *Store) Close() error {
	args := m.Called()
	return args.Error(0)
}

// Tx is a mock for store.Tx.
type Tx struct {
	mock.Mock
}

func (m *Tx) Get(key string) ([]byte, bool, error) {
	args := m.Called(key)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *Tx) Set(key string, value []byte) error {
	args := m.Called(key, value)
	return args.Error(0)
}

func (m *Tx) Has(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}
