package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/bookspace/bookspace-server/internal/http/response"
)

// contextKey keeps our context values from colliding with other packages'.
type contextKey string

const (
	contextKeyUserID contextKey = "user_id"
	contextKeyEmail  contextKey = "email"
)

// requireAuth rejects requests without a valid Bearer token and stores the
// token's user identity on the request context for handlers downstream.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			response.Unauthorized(w, "missing or malformed authorization header", s.logger)
			return
		}

		claims, err := s.services.Auth.VerifyAccessToken(token)
		if err != nil {
			response.Unauthorized(w, "invalid or expired token", s.logger)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, contextKeyEmail, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" || token == "" {
		return "", false
	}
	return token, true
}

// getUserID returns the authenticated user's ID, or "" on an
// unauthenticated request.
func getUserID(ctx context.Context) string {
	userID, _ := ctx.Value(contextKeyUserID).(string)
	return userID
}
