package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/rentledger/internal/invocation"
)

// invocationMiddleware tags each request with an invocation id, taken from the
// X-Invocation-Id header (HTTP), _meta.invocation_id (stdio) or freshly generated.
func invocationMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			var id string

			extra := req.GetExtra()
			if extra != nil && extra.Header != nil {
				id = extra.Header.Get(invocation.Header)
			}

			// Some notifications (like "initialized") have nil params.
			if id == "" {
				if params := req.GetParams(); params != nil {
					func() {
						defer func() { recover() }()
						if meta := params.GetMeta(); meta != nil {
							if v, ok := meta["invocation_id"].(string); ok {
								id = v
							}
						}
					}()
				}
			}

			if id != "" {
				ctx = invocation.WithID(ctx, id)
			} else {
				ctx, _ = invocation.Ensure(ctx)
			}
			return next(ctx, method, req)
		}
	}
}
