package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"hotride-driver-api/utils"
)

// Key type for context
type contextKey string

// DriverContextKey holds the verified token claims for the request.
const DriverContextKey = contextKey("driver_claims")

// Auth verifies the Bearer JWT and attaches its claims to the request context.
func Auth(jwtManager *utils.JWTManager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				utils.RespondError(w, http.StatusUnauthorized, utils.ErrUnauthorized, "Missing or invalid authorization header")
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := jwtManager.Verify(tokenStr)
			if err != nil {
				utils.RespondError(w, http.StatusUnauthorized, utils.ErrUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), DriverContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext extracts the token claims stored by Auth.
func ClaimsFromContext(ctx context.Context) (*utils.Claims, bool) {
	claims, ok := ctx.Value(DriverContextKey).(*utils.Claims)
	return claims, ok
}
