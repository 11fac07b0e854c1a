package mcp

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type contextKey int

const projectIDKey contextKey = iota

// projectFromContext extracts the project ID from context.
func projectFromContext(ctx context.Context) int64 {
	v, _ := ctx.Value(projectIDKey).(int64)
	return v
}

func withProject(ctx context.Context, projectID int64) context.Context {
	return context.WithValue(ctx, projectIDKey, projectID)
}

// ProjectResolver resolves a project ID from a bearer token.
type ProjectResolver interface {
	Resolve(ctx context.Context, token string) (int64, error)
}

// authMiddleware implements bearer token authentication as MCP middleware.
func authMiddleware(resolver ProjectResolver) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			// Skip auth for protocol methods
			if method == "initialize" || method == "ping" {
				return next(ctx, method, req)
			}

			extra := req.GetExtra()
			if extra == nil || extra.Header == nil {
				return nil, fmt.Errorf("unauthorized: missing headers")
			}

			auth := extra.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				return nil, fmt.Errorf("unauthorized: missing bearer token")
			}

			projectID, err := resolver.Resolve(ctx, token)
			if err != nil {
				return nil, fmt.Errorf("unauthorized: %w", err)
			}

			return next(withProject(ctx, projectID), method, req)
		}
	}
}

// noAuthMiddleware injects a fixed project scope when auth is disabled.
func noAuthMiddleware(defaultProject int64) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			return next(withProject(ctx, defaultProject), method, req)
		}
	}
}
