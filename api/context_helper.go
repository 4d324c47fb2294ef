package api

import (
	"context"
	"time"
)

// QueryTimeout bounds every database round trip made from the handlers
const QueryTimeout = 10 * time.Second

// WithQueryTimeout derives a context that expires after QueryTimeout, so a
// stalled database call cannot outlive the request it serves.
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, QueryTimeout)
}
