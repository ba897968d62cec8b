package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/rentledger/internal/domain/project"
	"github.com/rpggio/rentledger/internal/domain/resource"
)

// registerTools exposes every ledger method as a typed MCP tool.
func registerTools(server *sdkmcp.Server, h *Handler) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        MethodCreateProject,
		Description: "Create the marketplace project, replacing any existing one. Returns the new project id.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateProjectParams) (*sdkmcp.CallToolResult, CreateProjectResult, error) {
		out, err := h.CreateProject(ctx, in)
		return toolResult(ctx, out, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        MethodListResource,
		Description: "List a resource for rent under the current project. Returns the new resource id.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListResourceParams) (*sdkmcp.CallToolResult, ListResourceResult, error) {
		out, err := h.ListResource(ctx, in)
		return toolResult(ctx, out, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        MethodRentResource,
		Description: "Rent an available resource for a number of hours. Returns price_per_hour * hours; no payment is transferred.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in RentResourceParams) (*sdkmcp.CallToolResult, RentResourceResult, error) {
		out, err := h.RentResource(ctx, in)
		return toolResult(ctx, out, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        MethodReleaseResource,
		Description: "Make a rented resource available again. Safe to repeat.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ReleaseResourceParams) (*sdkmcp.CallToolResult, ReleaseResourceResult, error) {
		out, err := h.ReleaseResource(ctx, in)
		return toolResult(ctx, out, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        MethodCloseProject,
		Description: "Close the active project. Fails with ALREADY_CLOSED if it is not active.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ CloseProjectParams) (*sdkmcp.CallToolResult, CloseProjectResult, error) {
		out, err := h.CloseProject(ctx)
		return toolResult(ctx, out, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        MethodViewProject,
		Description: "View the project. Returns id 0 and title \"Not Found\" when none exists.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ViewProjectParams) (*sdkmcp.CallToolResult, project.Project, error) {
		out, err := h.ViewProject(ctx)
		return toolResult(ctx, out, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        MethodViewResource,
		Description: "View a resource. Returns owner \"Not Found\" for unknown ids.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ViewResourceParams) (*sdkmcp.CallToolResult, resource.Resource, error) {
		out, err := h.ViewResource(ctx, in)
		return toolResult(ctx, out, err)
	})
}

// toolResult records the call outcome for traffic logging and hands the
// typed output back to the SDK.
func toolResult[Out any](ctx context.Context, out Out, err error) (*sdkmcp.CallToolResult, Out, error) {
	recordOutcome(ctx, err)
	return nil, out, err
}
