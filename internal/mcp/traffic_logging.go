package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/rentledger/internal/invocation"
)

func trafficLoggingMiddleware(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if logger == nil || !logger.Enabled(ctx, slog.LevelDebug) {
				return next(ctx, method, req)
			}

			sessionID := safeSessionID(req)
			invocationID, _ := invocation.IDFromContext(ctx)
			params := formatPayload(safeParams(req))
			logger.Debug("mcp traffic", "direction", direction, "stage", "request", "method", method, "session_id", sessionID, "invocation_id", invocationID, "params", params)

			ctx, slot := withOutcomeSlot(ctx)
			result, err := next(ctx, method, req)
			if strings.HasPrefix(method, "notifications/") {
				return result, err
			}

			attrs := []any{"direction", direction, "stage", "response", "method", method, "session_id", sessionID, "invocation_id", invocationID}
			if method == "tools/call" {
				attrs = append(attrs, "outcome", slot.resolve(result, err))
			}
			attrs = append(attrs, "result", formatPayload(result))
			if err != nil {
				attrs = append(attrs, "error", err)
			}
			logger.Debug("mcp traffic", attrs...)

			return result, err
		}
	}
}

type outcomeKey struct{}

// outcomeSlot carries the ledger outcome code of a tool call back to the
// traffic logger.
type outcomeSlot struct {
	code string
}

func withOutcomeSlot(ctx context.Context) (context.Context, *outcomeSlot) {
	slot := &outcomeSlot{}
	return context.WithValue(ctx, outcomeKey{}, slot), slot
}

// recordOutcome stores the outcome code for err if a slot is present.
func recordOutcome(ctx context.Context, err error) {
	if slot, ok := ctx.Value(outcomeKey{}).(*outcomeSlot); ok {
		slot.code = outcomeCode(err)
	}
}

// outcomeCode is "OK" on success and the APIError code for ledger failures.
func outcomeCode(err error) string {
	if err == nil {
		return "OK"
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	if errors.Is(err, ErrInvalidParams) {
		return "INVALID_PARAMS"
	}
	return "INTERNAL"
}

// resolve falls back to the call result when no tool recorded an outcome,
// as happens when argument validation fails before the tool runs.
func (s *outcomeSlot) resolve(result sdkmcp.Result, err error) string {
	if s.code != "" {
		return s.code
	}
	if err != nil {
		return outcomeCode(err)
	}
	if res, ok := result.(*sdkmcp.CallToolResult); ok && res.IsError {
		return "INVALID_PARAMS"
	}
	return "OK"
}

func safeSessionID(req sdkmcp.Request) (id string) {
	if req == nil {
		return ""
	}
	defer func() { recover() }()
	session := req.GetSession()
	if session == nil {
		return ""
	}
	return session.ID()
}

func safeParams(req sdkmcp.Request) (params any) {
	if req == nil {
		return nil
	}
	defer func() { recover() }()
	return req.GetParams()
}

func formatPayload(payload any) string {
	if payload == nil {
		return "<nil>"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%T", payload)
	}
	return string(data)
}
