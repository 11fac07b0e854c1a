package transport

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// ErrUnauthorized indicates invalid or missing credentials.
var ErrUnauthorized = errors.New("unauthorized")

type projectKey struct{}

// ProjectResolver resolves a project ID from a bearer token.
type ProjectResolver interface {
	Resolve(ctx context.Context, token string) (int64, error)
}

// ProjectFromContext returns the project ID from context, if present.
func ProjectFromContext(ctx context.Context) (int64, bool) {
	projectID, ok := ctx.Value(projectKey{}).(int64)
	return projectID, ok
}

// AuthMiddleware enforces bearer token authentication and scopes the request
// to the key's project.
func AuthMiddleware(resolver ProjectResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			projectID, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				http.Error(w, "invalid bearer token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), projectKey{}, projectID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ProjectHeaderMiddleware trusts a Project header instead of a token. Meant
// for local development with auth disabled.
func ProjectHeaderMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Project")
		if header == "" {
			http.Error(w, "missing Project header", http.StatusBadRequest)
			return
		}
		projectID, err := strconv.ParseInt(header, 10, 64)
		if err != nil {
			http.Error(w, "invalid Project header", http.StatusBadRequest)
			return
		}

		ctx := context.WithValue(r.Context(), projectKey{}, projectID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
