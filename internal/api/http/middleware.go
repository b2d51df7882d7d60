package http

import (
	"net/http"
	"strings"

	"homestay-backend/internal/apperr"
	"homestay-backend/internal/logger"
	"homestay-backend/internal/security"
)

// AuthMiddleware validates the Bearer token and attaches the actor id to the
// request context. Identity is issued by the external auth service; this
// layer only verifies and extracts it.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				apperr.WriteError(w, &apperr.Error{
					Code:       apperr.CodeNotAuthorized,
					Message:    "missing bearer token",
					HTTPStatus: http.StatusUnauthorized,
				})
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				apperr.WriteError(w, &apperr.Error{
					Code:       apperr.CodeNotAuthorized,
					Message:    "invalid or expired token",
					HTTPStatus: http.StatusUnauthorized,
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActorID(r.Context(), claims.UserID)))
		})
	}
}

// LoggingMiddleware logs each request at debug level.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("HTTP request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
