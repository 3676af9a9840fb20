package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/api-sage/ledger-service/internal/logger"
)

// TokenVerifier validates an access token and returns the user ID it was
// issued for.
type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (string, error)
}

type contextKey string

const userIDContextKey contextKey = "userID"

// BearerAuth rejects requests without a valid bearer access token and
// stashes the authenticated user ID in the request context.
func BearerAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				logger.Info("bearer auth middleware unauthorized request", logger.Fields{
					"method":      r.Method,
					"path":        r.URL.Path,
					"credentials": "missing",
				})
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			userID, err := verifier.VerifyAccessToken(r.Context(), token)
			if err != nil {
				logger.Info("bearer auth middleware unauthorized request", logger.Fields{
					"method":      r.Method,
					"path":        r.URL.Path,
					"credentials": "invalid",
				})
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// UserIDFromContext returns the user ID placed there by BearerAuth.
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userIDContextKey).(string)
	return userID
}
