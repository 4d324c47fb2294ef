// Package ledger talks to the report contract on the distributed ledger. The
// database remains the system of record; everything here is best-effort and
// failures are reported through result values, never through panics or
// returned errors, so callers can apply the database-wins policy without
// error handling at every call site.
package ledger

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/crimechain/report-api/models"
)

// Config carries the connection settings for the ledger node and contract
type Config struct {
	NodeURL         string
	ContractAddress string
	ABIPath         string
	AdminAccount    string
	SigningKey      string
	DebugMode       bool
	Timeout         time.Duration
}

// DefaultTimeout bounds each ledger network call. Expiry surfaces as a
// NetworkTimeout error kind instead of blocking the request forever.
const DefaultTimeout = 30 * time.Second

// Service is the ledger operation set. Both the real client and the debug
// simulator satisfy it; calling code must never care which one is active.
type Service interface {
	SubmitReport(ctx context.Context, title, reportType, description, location string, evidenceHashes []string, timestamp int64) SubmitResult
	UpdateStatus(ctx context.Context, reportID, status string) UpdateResult
	GetReport(ctx context.Context, reportID string) ReportResult
	GetUserReports(ctx context.Context, address string) UserReportsResult
	GetReportCount(ctx context.Context) CountResult
	ResolveReportID(ctx context.Context, txHash string) ResolveResult
}

// SubmitResult is the outcome of a report submission
type SubmitResult struct {
	Success         bool
	TransactionHash string
	ReportID        string
	Err             *Error
}

// UpdateResult is the outcome of a status update
type UpdateResult struct {
	Success         bool
	TransactionHash string
	Err             *Error
}

// ReportResult is the outcome of a single report read
type ReportResult struct {
	Success bool
	Report  *models.LedgerReport
	Err     *Error
}

// UserReportsResult is the outcome of a per-user report id listing
type UserReportsResult struct {
	Success   bool
	ReportIDs []string
	Err       *Error
}

// CountResult is the outcome of a report count read
type CountResult struct {
	Success bool
	Count   string
	Err     *Error
}

// ResolveResult is the outcome of resolving a report id from a transaction
type ResolveResult struct {
	Success  bool
	ReportID string
	Err      *Error
}

// NewService builds the ledger service from config. In debug mode every
// operation is served by the simulator with zero network I/O.
func NewService(cfg Config) Service {
	if cfg.DebugMode {
		zap.S().Warn("ledger service running in debug mode, operations will be simulated")
		return NewSimulator()
	}
	return New(cfg)
}
