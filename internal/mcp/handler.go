package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rpggio/rentledger/internal/domain/project"
	"github.com/rpggio/rentledger/internal/domain/resource"
)

// Method names exposed to hosts.
const (
	MethodCreateProject   = "create_project"
	MethodListResource    = "list_resource"
	MethodRentResource    = "rent_resource"
	MethodReleaseResource = "release_resource"
	MethodCloseProject    = "close_project"
	MethodViewProject     = "view_project"
	MethodViewResource    = "view_resource"
)

// Handler dispatches ledger calls to domain services.
type Handler struct {
	projects  ProjectService
	resources ResourceService
}

// NewHandler creates a new handler.
func NewHandler(projects ProjectService, resources ResourceService) *Handler {
	return &Handler{projects: projects, resources: resources}
}

// Handle decodes params for method and runs it.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case MethodCreateProject:
		var req CreateProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.CreateProject(ctx, req)
	case MethodListResource:
		var req ListResourceParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.ListResource(ctx, req)
	case MethodRentResource:
		var req RentResourceParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.RentResource(ctx, req)
	case MethodReleaseResource:
		var req ReleaseResourceParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.ReleaseResource(ctx, req)
	case MethodCloseProject:
		return h.CloseProject(ctx)
	case MethodViewProject:
		return h.ViewProject(ctx)
	case MethodViewResource:
		var req ViewResourceParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.ViewResource(ctx, req)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
}

func (h *Handler) CreateProject(ctx context.Context, req CreateProjectParams) (CreateProjectResult, error) {
	id, err := h.projects.Create(ctx, project.CreateRequest{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return CreateProjectResult{}, mapError(err)
	}
	return CreateProjectResult{ProjectID: id}, nil
}

func (h *Handler) ListResource(ctx context.Context, req ListResourceParams) (ListResourceResult, error) {
	id, err := h.resources.List(ctx, resource.ListRequest{
		Owner:        req.Owner,
		ResourceType: req.ResourceType,
		PricePerHour: req.PricePerHour,
	})
	if err != nil {
		return ListResourceResult{}, mapError(err)
	}
	return ListResourceResult{ResourceID: id}, nil
}

func (h *Handler) RentResource(ctx context.Context, req RentResourceParams) (RentResourceResult, error) {
	cost, err := h.resources.Rent(ctx, resource.RentRequest{
		Renter:     req.Renter,
		ResourceID: req.ResourceID,
		Hours:      req.Hours,
	})
	if err != nil {
		return RentResourceResult{}, mapError(err)
	}
	return RentResourceResult{TotalCost: cost}, nil
}

func (h *Handler) ReleaseResource(ctx context.Context, req ReleaseResourceParams) (ReleaseResourceResult, error) {
	if err := h.resources.Release(ctx, req.ResourceID); err != nil {
		return ReleaseResourceResult{}, mapError(err)
	}
	return ReleaseResourceResult{ResourceID: req.ResourceID, Status: "available"}, nil
}

func (h *Handler) CloseProject(ctx context.Context) (CloseProjectResult, error) {
	if err := h.projects.Close(ctx); err != nil {
		return CloseProjectResult{}, mapError(err)
	}
	return CloseProjectResult{Status: "closed"}, nil
}

func (h *Handler) ViewProject(ctx context.Context) (project.Project, error) {
	proj, err := h.projects.View(ctx)
	if err != nil {
		return project.Project{}, mapError(err)
	}
	return proj, nil
}

func (h *Handler) ViewResource(ctx context.Context, req ViewResourceParams) (resource.Resource, error) {
	res, err := h.resources.View(ctx, req.ResourceID)
	if err != nil {
		return resource.Resource{}, mapError(err)
	}
	return res, nil
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
