package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// HeaderXRequestID is the correlation-id header.
const HeaderXRequestID = "X-Request-ID"

// RequestIDContextKey holds the request's correlation id.
const RequestIDContextKey = contextKey("request_id")

// RequestID accepts an incoming X-Request-ID or generates one, echoes it in
// the response and stores it in the context. Mobile clients rarely send one,
// so a missing header is not an error.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(HeaderXRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set(HeaderXRequestID, rid)
		ctx := context.WithValue(r.Context(), RequestIDContextKey, rid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext extracts the correlation id stored by RequestID.
func RequestIDFromContext(ctx context.Context) string {
	rid, _ := ctx.Value(RequestIDContextKey).(string)
	return rid
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs one line per request with method, path, status, duration
// and the correlation id.
func RequestLogger(log *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", RequestIDFromContext(r.Context())),
			)
		})
	}
}
