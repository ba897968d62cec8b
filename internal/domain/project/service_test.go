package project_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rpggio/rentledger/internal/domain/project"
	"github.com/rpggio/rentledger/internal/repository"
	"github.com/rpggio/rentledger/internal/repository/mocks"
	"github.com/rpggio/rentledger/internal/store/memory"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type observation struct {
	op      string
	outcome string
}

type recordingObserver struct {
	seen []observation
}

func (r *recordingObserver) Observe(op, outcome string, _ time.Duration) {
	r.seen = append(r.seen, observation{op: op, outcome: outcome})
}

func TestProjectService_CreateSequential(t *testing.T) {
	ctx := context.Background()
	svc := project.NewService(memory.NewStore(), nil, nil)

	for want := uint64(1); want <= 3; want++ {
		id, err := svc.Create(ctx, project.CreateRequest{Title: "Infra", Description: "desc"})
		require.NoError(t, err)
		require.Equal(t, want, id)
	}

	proj, err := svc.View(ctx)
	require.NoError(t, err)
	require.Equal(t, project.Project{ID: 3, Title: "Infra", Description: "desc", Active: true}, proj)
}

func TestProjectService_CreateOverwritesSlot(t *testing.T) {
	ctx := context.Background()
	svc := project.NewService(memory.NewStore(), nil, nil)

	_, err := svc.Create(ctx, project.CreateRequest{Title: "First"})
	require.NoError(t, err)
	require.NoError(t, svc.Close(ctx))

	id, err := svc.Create(ctx, project.CreateRequest{Title: "", Description: ""})
	require.NoError(t, err)
	require.Equal(t, uint64(2), id)

	proj, err := svc.View(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(2), proj.ID)
	require.Empty(t, proj.Title)
	require.True(t, proj.Active)
}

func TestProjectService_ViewSentinel(t *testing.T) {
	svc := project.NewService(memory.NewStore(), nil, nil)

	proj, err := svc.View(context.Background())
	require.NoError(t, err)
	require.Equal(t, project.NotFound(), proj)
	require.Equal(t, "Not Found", proj.Title)
	require.Equal(t, "Not Found", proj.Description)
	require.False(t, proj.Active)
}

func TestProjectService_CloseOnce(t *testing.T) {
	ctx := context.Background()
	observer := &recordingObserver{}
	svc := project.NewService(memory.NewStore(), nil, observer)

	_, err := svc.Create(ctx, project.CreateRequest{Title: "Infra"})
	require.NoError(t, err)

	require.NoError(t, svc.Close(ctx))
	err = svc.Close(ctx)
	require.ErrorIs(t, err, project.ErrAlreadyClosed)

	proj, err := svc.View(ctx)
	require.NoError(t, err)
	require.False(t, proj.Active)
	require.Equal(t, uint64(1), proj.ID)

	require.Equal(t, []observation{
		{op: project.OpCreate, outcome: "ok"},
		{op: project.OpClose, outcome: "ok"},
		{op: project.OpClose, outcome: "already_closed"},
		{op: project.OpView, outcome: "ok"},
	}, observer.seen)
}

func TestProjectService_CloseWithoutProject(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	svc := project.NewService(st, nil, nil)

	err := svc.Close(ctx)
	require.ErrorIs(t, err, project.ErrAlreadyClosed)
	require.Empty(t, st.Snapshot())
}

func TestProjectService_StoreFailure(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk gone")

	tx := &mocks.Tx{}
	tx.On("Get", repository.KeyProjectCount).Return(nil, false, nil)
	tx.On("Set", repository.KeyProjectCount, mock.Anything).Return(boom)
	st := &mocks.Store{Tx: tx}
	st.On("Update", ctx).Return(nil)

	svc := project.NewService(st, nil, nil)
	_, err := svc.Create(ctx, project.CreateRequest{Title: "Infra"})
	require.ErrorIs(t, err, boom)
	require.Equal(t, "error", project.Outcome(err))
	tx.AssertNotCalled(t, "Set", repository.KeyProject, mock.Anything)
}

func TestProjectService_UpdateRejected(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("locked")
	st := &mocks.Store{Tx: &mocks.Tx{}}
	st.On("Update", ctx).Return(boom)

	svc := project.NewService(st, nil, nil)
	err := svc.Close(ctx)
	require.ErrorIs(t, err, boom)
	require.False(t, errors.Is(err, project.ErrAlreadyClosed))
}
