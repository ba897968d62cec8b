package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/rentledger/internal/domain/project"
	"github.com/rpggio/rentledger/internal/domain/resource"
)

var (
	// ErrUnknownMethod is returned by Handle for methods outside the ledger surface.
	ErrUnknownMethod = errors.New("unknown method")
	// ErrInvalidParams is returned by Handle when params do not decode into the method's input.
	ErrInvalidParams = errors.New("invalid params")
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, resource.ErrResourceNotFound):
		return &APIError{Code: "RESOURCE_NOT_FOUND", Message: "resource not found", RecoveryHint: "Check the id returned by list_resource"}
	case errors.Is(err, resource.ErrResourceUnavailable):
		return &APIError{Code: "RESOURCE_UNAVAILABLE", Message: "resource is not available for rent", RecoveryHint: "Wait for release_resource"}
	case errors.Is(err, resource.ErrOverflow):
		return &APIError{Code: "OVERFLOW", Message: "rental cost overflows", RecoveryHint: "Rent for fewer hours"}
	case errors.Is(err, project.ErrAlreadyClosed):
		return &APIError{Code: "ALREADY_CLOSED", Message: "project is already closed", RecoveryHint: "Call create_project to open a new one"}
	default:
		return nil
	}
}
