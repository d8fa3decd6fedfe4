package http

import (
	"net/http"
	"strings"

	"farmsight-backend/internal/logger"
	"farmsight-backend/internal/security"
)

// AuthMiddleware rejects requests without a valid access token and
// stores the authenticated user id in the request context.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing authorization header"})
				return
			}
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "authorization header must be a bearer token"})
				return
			}

			claims, err := tokens.ValidateToken(tokenString)
			if err != nil {
				respondError(w, err)
				return
			}
			if claims.Type != security.TokenTypeAccess {
				respondError(w, security.ErrWrongTokenType)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.UserID)))
		})
	}
}

// RequestLogger logs one line per request, after the handler returns.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		logger.Debug("Handled request", "method", r.Method, "path", r.URL.Path)
	})
}
