package postgres

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/rpggio/rentledger/internal/store"
	"github.com/stretchr/testify/require"
)

func testDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("RENTLEDGER_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("RENTLEDGER_TEST_POSTGRES_DSN not set")
	}
	return dsn
}

func TestNewStore_OpenError(t *testing.T) {
	orig := sqlOpen
	t.Cleanup(func() { sqlOpen = orig })
	boom := errors.New("boom")
	sqlOpen = func(string, string) (*sql.DB, error) { return nil, boom }

	_, err := NewStore(context.Background(), "")
	require.ErrorIs(t, err, boom)
}

func TestStore_RoundTripAndRollback(t *testing.T) {
	dsn := testDSN(t)
	ctx := context.Background()

	s, err := NewStore(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = s.db.Exec(`DELETE FROM ledger_state WHERE key LIKE 'test_%'`)
		_ = s.Close()
	})

	require.NoError(t, s.Update(ctx, func(tx store.Tx) error {
		return tx.Set("test_count", []byte("1"))
	}))

	boom := errors.New("boom")
	err = s.Update(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Set("test_count", []byte("2")))
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, s.View(ctx, func(tx store.Tx) error {
		value, ok, err := tx.Get("test_count")
		require.NoError(t, err)
		require.True(t, ok)
		require.JSONEq(t, "1", string(value))

		has, err := tx.Has("test_missing")
		require.NoError(t, err)
		require.False(t, has)

		require.ErrorIs(t, tx.Set("test_count", []byte("3")), store.ErrReadOnly)
		return nil
	}))
}

func TestStore_PreservesEscapedNUL(t *testing.T) {
	dsn := testDSN(t)
	ctx := context.Background()

	s, err := NewStore(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = s.db.Exec(`DELETE FROM ledger_state WHERE key LIKE 'test_%'`)
		_ = s.Close()
	})

	payload := []byte(`{"owner":"al\u0000ice","available":true}`)
	require.NoError(t, s.Update(ctx, func(tx store.Tx) error {
		return tx.Set("test_resource", payload)
	}))

	require.NoError(t, s.View(ctx, func(tx store.Tx) error {
		value, ok, err := tx.Get("test_resource")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, payload, value)
		return nil
	}))
}
