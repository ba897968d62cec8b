package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/rentledger/internal/domain/project"
	"github.com/rpggio/rentledger/internal/domain/resource"
	"github.com/rpggio/rentledger/internal/store/memory"
	"github.com/stretchr/testify/require"
)

func connectClient(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()
	return connectClientWithLogger(t, nil)
}

func connectClientWithLogger(t *testing.T, logger *slog.Logger) *sdkmcp.ClientSession {
	t.Helper()

	st := memory.NewStore()
	server := NewServer(Config{
		Services: Services{
			Projects:  project.NewService(st, nil, nil),
			Resources: resource.NewService(st, nil, nil),
		},
		Version: "test",
		Logger:  logger,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func callTool(t *testing.T, session *sdkmcp.ClientSession, name string, args any, out any) {
	t.Helper()
	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.False(t, res.IsError, "tool %s reported error", name)
	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

func TestServer_ListsLedgerTools(t *testing.T) {
	session := connectClient(t)

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{
		MethodCreateProject,
		MethodListResource,
		MethodRentResource,
		MethodReleaseResource,
		MethodCloseProject,
		MethodViewProject,
		MethodViewResource,
	}, names)
}

func TestServer_RentalScenario(t *testing.T) {
	session := connectClient(t)

	var created CreateProjectResult
	callTool(t, session, MethodCreateProject, CreateProjectParams{Title: "Infra", Description: "shared"}, &created)
	require.Equal(t, uint64(1), created.ProjectID)

	var listed ListResourceResult
	callTool(t, session, MethodListResource, ListResourceParams{Owner: "alice", ResourceType: "CPU", PricePerHour: 10}, &listed)
	require.Equal(t, uint64(1), listed.ResourceID)

	var rented RentResourceResult
	callTool(t, session, MethodRentResource, RentResourceParams{Renter: "bob", ResourceID: 1, Hours: 5}, &rented)
	require.Equal(t, uint64(50), rented.TotalCost)

	var res resource.Resource
	callTool(t, session, MethodViewResource, ViewResourceParams{ResourceID: 1}, &res)
	require.False(t, res.Available)

	var proj project.Project
	callTool(t, session, MethodViewProject, ViewProjectParams{}, &proj)
	require.Equal(t, uint64(1), proj.TotalResources)
	require.True(t, proj.Active)
}

func TestServer_DomainErrorIsReported(t *testing.T) {
	session := connectClient(t)

	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      MethodRentResource,
		Arguments: RentResourceParams{Renter: "bob", ResourceID: 42, Hours: 1},
	})
	if err == nil {
		require.True(t, res.IsError)
	}
}

func TestServer_GuideResource(t *testing.T) {
	session := connectClient(t)

	res, err := session.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{URI: "rentledger://guide"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	require.Contains(t, res.Contents[0].Text, "RESOURCE_UNAVAILABLE")
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestServer_TrafficLogRecordsOutcome(t *testing.T) {
	var logs syncBuffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	session := connectClientWithLogger(t, logger)

	var created CreateProjectResult
	callTool(t, session, MethodCreateProject, CreateProjectParams{Title: "Infra"}, &created)

	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      MethodRentResource,
		Arguments: RentResourceParams{Renter: "bob", ResourceID: 42, Hours: 1},
	})
	require.NoError(t, err)
	require.True(t, res.IsError)

	var responses []string
	for _, line := range strings.Split(logs.String(), "\n") {
		if strings.Contains(line, "stage=response") && strings.Contains(line, "method=tools/call") {
			responses = append(responses, line)
		}
	}
	require.Len(t, responses, 2)
	require.Contains(t, responses[0], "outcome=OK")
	require.Contains(t, responses[1], "outcome=RESOURCE_NOT_FOUND")
}

func TestOutcomeCode(t *testing.T) {
	require.Equal(t, "OK", outcomeCode(nil))
	require.Equal(t, "OVERFLOW", outcomeCode(mapError(resource.ErrOverflow)))
	require.Equal(t, "INVALID_PARAMS", outcomeCode(ErrInvalidParams))
	require.Equal(t, "INTERNAL", outcomeCode(errors.New("disk full")))
}
