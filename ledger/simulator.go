package ledger

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/crimechain/report-api/models"
)

// Debug transaction hash prefixes. Tests and operators rely on these to
// tell simulated results from real ones.
const (
	DebugTxPrefix       = "debug-tx-"
	DebugStatusTxPrefix = "debug-status-tx-"
)

// Simulator is a drop-in substitute for Client that fabricates deterministic
// results with zero network I/O. It serves offline development and tests;
// callers cannot distinguish it from the real client at the Service level.
type Simulator struct{}

// NewSimulator returns a ledger simulator
func NewSimulator() *Simulator {
	return &Simulator{}
}

// SubmitReport fabricates a successful submission
func (s *Simulator) SubmitReport(_ context.Context, title, reportType, _, _ string, evidenceHashes []string, _ int64) SubmitResult {
	now := time.Now().UnixMilli()
	zap.S().Debugw("debug mode: simulating ledger submission",
		"title", title,
		"reportType", reportType,
		"evidenceHashCount", len(evidenceHashes),
	)
	return SubmitResult{
		Success:         true,
		TransactionHash: DebugTxPrefix + strconv.FormatInt(now, 16),
		ReportID:        strconv.FormatInt(now, 10),
	}
}

// UpdateStatus fabricates a successful status update
func (s *Simulator) UpdateStatus(_ context.Context, reportID, status string) UpdateResult {
	zap.S().Debugw("debug mode: simulating ledger status update", "reportId", reportID, "status", status)
	return UpdateResult{
		Success:         true,
		TransactionHash: DebugStatusTxPrefix + strconv.FormatInt(time.Now().UnixMilli(), 16),
	}
}

// GetReport returns a fixed placeholder record
func (s *Simulator) GetReport(_ context.Context, reportID string) ReportResult {
	return ReportResult{
		Success: true,
		Report: &models.LedgerReport{
			ID:             reportID,
			Title:          "Debug Report",
			ReportType:     "Other",
			Description:    "This is a simulated report in debug mode",
			Location:       "Debug Location",
			EvidenceHashes: []string{},
			Timestamp:      strconv.FormatInt(time.Now().UnixMilli(), 10),
			Reporter:       "0x0000000000000000000000000000000000000000",
			Status:         models.StatusSubmitted,
		},
	}
}

// GetUserReports returns fixed placeholder ids
func (s *Simulator) GetUserReports(_ context.Context, _ string) UserReportsResult {
	return UserReportsResult{Success: true, ReportIDs: []string{"1", "2"}}
}

// GetReportCount always reports an empty ledger
func (s *Simulator) GetReportCount(_ context.Context) CountResult {
	return CountResult{Success: true, Count: "0"}
}

// ResolveReportID fabricates a resolvable id for any transaction hash
func (s *Simulator) ResolveReportID(_ context.Context, txHash string) ResolveResult {
	zap.S().Debugw("debug mode: simulating report id resolution", "txHash", txHash)
	return ResolveResult{Success: true, ReportID: strconv.FormatInt(time.Now().UnixMilli(), 10)}
}
