package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"

	"hotride-driver-api/utils"
)

// APIKeyHeader is the header carrying the registration API key.
const APIKeyHeader = "X-API-Key"

// APIKey rejects requests whose X-API-Key header does not match the
// configured key.
func APIKey(apiKey string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(APIKeyHeader)
			if provided == "" {
				utils.RespondError(w, http.StatusUnauthorized, utils.ErrUnauthorized, "Missing API key")
				return
			}
			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				utils.RespondError(w, http.StatusUnauthorized, utils.ErrUnauthorized, "Invalid API key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
