package middleware

import (
	"net/http"
	"strings"

	"github.com/zakatfund/backend/internal/auth"
	"github.com/zakatfund/backend/internal/services"
)

// BearerToken moves the request's bearer token into the context for the
// handlers. The token itself is verified by the service being called.
func BearerToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			services.SendErrorResponse(w, "Authorization header required", http.StatusUnauthorized, nil)
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			services.SendErrorResponse(w, "Invalid authorization header format", http.StatusUnauthorized, nil)
			return
		}

		ctx := auth.WithToken(r.Context(), auth.Token(parts[1]))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
