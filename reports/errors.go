package reports

import "errors"

// Sentinel errors returned by the coordinator and reconciler. Handlers map
// these onto HTTP status codes; everything else is a server error.
var (
	ErrInvalidStatus     = errors.New("unknown report status")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrReportNotFound    = errors.New("report not found")
	ErrOfficerNotFound   = errors.New("officer not found")
	ErrStatusConflict    = errors.New("report status changed concurrently")
)
