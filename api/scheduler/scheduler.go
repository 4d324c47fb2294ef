// Package scheduler runs the background reconciliation jobs. Reports whose
// ledger transaction confirmed without a decodable event are left without a
// ledger report id; the resolver job picks them up and backfills the id from
// the transaction receipt.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/crimechain/report-api/databases"
	"github.com/crimechain/report-api/ledger"
)

// resolveBatchTimeout bounds one full resolver run
const resolveBatchTimeout = 5 * time.Minute

// Scheduler handles periodic background jobs for ledger reconciliation
type Scheduler struct {
	cron   *cron.Cron
	RDB    databases.ReportDatabase
	Ledger ledger.Service
}

// NewScheduler creates a new scheduler instance
func NewScheduler(rdb databases.ReportDatabase, svc ledger.Service) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		RDB:    rdb,
		Ledger: svc,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Backfill missing ledger report ids every 5 minutes
	_, err := s.cron.AddFunc("*/5 * * * *", s.resolvePendingReportIDs)
	if err != nil {
		zap.S().Errorw("failed to register ledger id resolver job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("ledger reconciliation scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("ledger reconciliation scheduler stopped")
}

// resolvePendingReportIDs finds reports with a confirmed transaction but no
// ledger report id and resolves the id from the receipt. The update filter
// re-checks that the id is still missing, so the id is set exactly once even
// if a concurrent request resolved it first.
func (s *Scheduler) resolvePendingReportIDs() {
	ctx, cancel := context.WithTimeout(context.Background(), resolveBatchTimeout)
	defer cancel()

	pending, err := s.RDB.Find(ctx, bson.M{
		"ledgerTxHash":   bson.M{"$exists": true, "$ne": ""},
		"ledgerReportId": bson.M{"$exists": false},
	})
	if err != nil {
		zap.S().Errorw("failed to find reports with unresolved ledger ids", "error", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	resolved := 0
	for _, report := range pending {
		res := s.Ledger.ResolveReportID(ctx, report.LedgerTxHash)
		if !res.Success {
			zap.S().Warnw("could not resolve ledger report id",
				"reportId", report.ID.Hex(),
				"txHash", report.LedgerTxHash,
				"error", res.Err,
			)
			continue
		}

		matched, err := s.RDB.UpdateOne(ctx,
			bson.M{"_id": report.ID, "ledgerReportId": bson.M{"$exists": false}},
			bson.M{"$set": bson.M{"ledgerReportId": res.ReportID}},
		)
		if err != nil {
			zap.S().Errorw("failed to record resolved ledger report id",
				"reportId", report.ID.Hex(),
				"ledgerReportId", res.ReportID,
				"error", err,
			)
			continue
		}
		if matched > 0 {
			resolved++
		}
	}

	zap.S().Infow("ledger id resolution complete",
		"pending", len(pending),
		"resolved", resolved,
	)
}
