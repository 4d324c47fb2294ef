package api

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// TimeoutMiddleware bounds every request. Ledger calls carry their own
// internal timeout; this is the outer guard so a wedged handler cannot hold
// the connection open indefinitely. http.TimeoutHandler serializes writes to
// the ResponseWriter, so a handler still running when the deadline fires can
// never interleave with the timeout reply.
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Context().Err() == context.DeadlineExceeded {
				zap.S().Warnw("request timed out",
					"path", r.URL.Path,
					"method", r.Method,
					"timeout", timeout,
				)
			}
		})
		return http.TimeoutHandler(inner, timeout, `{"error": "request timed out"}`)
	}
}
