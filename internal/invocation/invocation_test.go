package invocation

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestEnsure(t *testing.T) {
	ctx, id := Ensure(context.Background())
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	got, ok := IDFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, id, got)

	again, sameID := Ensure(ctx)
	require.Equal(t, id, sameID)
	require.Equal(t, ctx, again)
}

func TestIDFromContext_Empty(t *testing.T) {
	_, ok := IDFromContext(WithID(context.Background(), ""))
	require.False(t, ok)
}

func TestLogHandler_AddsID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewLogHandler(slog.NewTextHandler(&buf, nil))).With("component", "test")

	logger.InfoContext(WithID(context.Background(), "abc"), "hello")
	require.Contains(t, buf.String(), "invocation_id=abc")
	require.Contains(t, buf.String(), "component=test")

	buf.Reset()
	logger.InfoContext(context.Background(), "hello")
	require.NotContains(t, buf.String(), "invocation_id")
}
