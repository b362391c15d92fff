package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const grantKey contextKey = "grant"

// Middleware validates a Bearer token and puts its grant on the request
// context. Board handlers still check that the grant covers the board named
// in the URL.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeError(w, http.StatusUnauthorized, "invalid authorization format")
			return
		}

		grant, err := s.ValidateToken(parts[1])
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), grantKey, grant)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GrantFromContext returns the validated grant, or nil outside the
// middleware.
func GrantFromContext(ctx context.Context) *Grant {
	grant, _ := ctx.Value(grantKey).(*Grant)
	return grant
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}
