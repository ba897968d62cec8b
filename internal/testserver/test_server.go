package testserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/rentledger/internal/domain/project"
	"github.com/rpggio/rentledger/internal/domain/resource"
	"github.com/rpggio/rentledger/internal/mcp"
	"github.com/rpggio/rentledger/internal/metrics"
	"github.com/rpggio/rentledger/internal/sqlite"
	"github.com/rpggio/rentledger/internal/transport"
	"github.com/stretchr/testify/require"
)

// TestServer runs the full HTTP surface over an in-memory SQLite ledger.
type TestServer struct {
	Server   *httptest.Server
	Store    *sqlite.Store
	Recorder *metrics.Recorder
}

func New(t *testing.T) *TestServer {
	t.Helper()

	st, err := sqlite.Open(":memory:")
	require.NoError(t, err)

	recorder := metrics.NewRecorder()
	projectSvc := project.NewService(st, nil, recorder)
	resourceSvc := resource.NewService(st, nil, recorder)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Projects:  projectSvc,
			Resources: resourceSvc,
		},
		Version: "test",
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *sdkmcp.Server { return mcpServer },
		nil,
	)

	router := transport.NewServer(mcp.NewHandler(projectSvc, resourceSvc), transport.Options{
		MCP:     mcpHandler,
		Metrics: recorder.Handler(),
	})
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		_ = st.Close()
	})

	return &TestServer{
		Server:   server,
		Store:    st,
		Recorder: recorder,
	}
}
