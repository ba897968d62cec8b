package repository_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rpggio/rentledger/internal/repository"
	"github.com/rpggio/rentledger/internal/repository/mocks"
	"github.com/rpggio/rentledger/internal/store"
	"github.com/rpggio/rentledger/internal/store/memory"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNextSequence_StartsAtOne(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	for want := uint64(1); want <= 3; want++ {
		var got uint64
		err := s.Update(ctx, func(tx store.Tx) error {
			var err error
			got, err = repository.NextSequence(tx, repository.KeyResourceCount)
			return err
		})
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	require.Equal(t, "3", string(s.Snapshot()[repository.KeyResourceCount]))
}

func TestNextSequence_Exhausted(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Update(ctx, func(tx store.Tx) error {
		return repository.PutJSON(tx, repository.KeyProjectCount, uint64(math.MaxUint64))
	}))

	err := s.Update(ctx, func(tx store.Tx) error {
		_, err := repository.NextSequence(tx, repository.KeyProjectCount)
		return err
	})
	require.ErrorIs(t, err, repository.ErrSequenceExhausted)
}

func TestGetJSON_Corrupt(t *testing.T) {
	tx := &mocks.Tx{}
	tx.On("Get", repository.KeyProject).Return([]byte("{not json"), true, nil)

	var out map[string]any
	_, err := repository.GetJSON(tx, repository.KeyProject, &out)
	require.ErrorIs(t, err, repository.ErrCorrupt)
}

func TestGetJSON_Absent(t *testing.T) {
	tx := &mocks.Tx{}
	tx.On("Get", repository.KeyProject).Return(nil, false, nil)

	var out map[string]any
	ok, err := repository.GetJSON(tx, repository.KeyProject, &out)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPutJSON_WriteError(t *testing.T) {
	boom := errors.New("boom")
	tx := &mocks.Tx{}
	tx.On("Set", repository.KeyResourceCount, mock.Anything).Return(boom)

	err := repository.PutJSON(tx, repository.KeyResourceCount, uint64(1))
	require.ErrorIs(t, err, boom)
	tx.AssertExpectations(t)
}
