package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/rentledger/internal/domain/project"
	"github.com/rpggio/rentledger/internal/domain/resource"
)

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, req project.CreateRequest) (uint64, error)
	Close(ctx context.Context) error
	View(ctx context.Context) (project.Project, error)
}

// ResourceService defines resource operations needed by MCP.
type ResourceService interface {
	List(ctx context.Context, req resource.ListRequest) (uint64, error)
	Rent(ctx context.Context, req resource.RentRequest) (uint64, error)
	Release(ctx context.Context, id uint64) error
	View(ctx context.Context, id uint64) (resource.Resource, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Projects  ProjectService
	Resources ResourceService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Version  string
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "0.1.0"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "rentledger",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(invocationMiddleware())
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, NewHandler(cfg.Services.Projects, cfg.Services.Resources))

	return server
}
