// Package reports owns the report workflow: the submission coordinator that
// dual-writes the database of record and the ledger, and the reconciler that
// applies status transitions. The database write always wins; the ledger is
// mirrored best-effort and never blocks or rolls back a report.
package reports

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/crimechain/report-api/databases"
	"github.com/crimechain/report-api/ledger"
	"github.com/crimechain/report-api/models"
)

// Coordinator orchestrates report creation across the database of record
// and the ledger
type Coordinator struct {
	DB     databases.ReportDatabase
	Ledger ledger.Service
}

// CreateInput carries the validated submission fields. EvidenceHashes come
// from the evidence store and are positional; their order is preserved in
// the persisted report. A non-empty ClientTxHash means the caller already
// confirmed the ledger transaction and no ledger call is made here.
type CreateInput struct {
	Title          string
	ReportType     string
	Description    string
	Location       string
	Date           time.Time
	Reporter       primitive.ObjectID
	EvidenceHashes []string
	Evidence       []string
	ClientTxHash   string
	ClientReportID string
}

// Create persists a new report. The database insert happens in every ledger
// outcome; the returned warning is non-empty only when the ledger write
// failed and no client-supplied transaction hash existed.
func (c *Coordinator) Create(ctx context.Context, in CreateInput) (*models.Report, string, error) {
	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	hashes := in.EvidenceHashes
	if hashes == nil {
		hashes = []string{}
	}
	evidence := in.Evidence
	if evidence == nil {
		evidence = []string{}
	}

	report := models.Report{
		ID:             primitive.NewObjectID(),
		Title:          in.Title,
		ReportType:     in.ReportType,
		Description:    in.Description,
		Location:       in.Location,
		Date:           primitive.NewDateTimeFromTime(date),
		Reporter:       in.Reporter,
		EvidenceHashes: hashes,
		Evidence:       evidence,
		Status:         models.StatusPending,
		Comments:       []models.ReportComment{},
		CreatedAt:      primitive.NewDateTimeFromTime(now),
		UpdatedAt:      primitive.NewDateTimeFromTime(now),
	}

	warning := ""
	if in.ClientTxHash != "" {
		// The caller already submitted the transaction themselves; record
		// it as confirmed and skip the ledger entirely.
		report.LedgerTxHash = in.ClientTxHash
		report.LedgerReportID = in.ClientReportID
		zap.S().Infow("recording client-confirmed ledger transaction",
			"txHash", in.ClientTxHash,
			"ledgerReportId", in.ClientReportID,
		)
	} else {
		res := c.Ledger.SubmitReport(ctx, in.Title, in.ReportType, in.Description, in.Location, hashes, now.UnixMilli())
		if res.Success {
			report.LedgerTxHash = res.TransactionHash
			report.LedgerReportID = res.ReportID
		} else {
			warning = "Report saved to database only. Ledger storage failed: " + res.Err.Error()
			zap.S().Warnw("ledger submission failed, persisting report anyway",
				"title", in.Title,
				"error", res.Err,
			)
		}
	}

	// Database errors are the only thing that can fail a submission
	if _, err := c.DB.InsertOne(ctx, report); err != nil {
		return nil, "", err
	}
	return &report, warning, nil
}
