package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/crimechain/report-api/databases"
	"github.com/crimechain/report-api/ledger"
	"github.com/crimechain/report-api/models"
)

// Notifier sends workflow notifications. Implementations must be
// best-effort; a failed notification never fails the workflow change.
type Notifier interface {
	OfficerAssigned(officer *models.User, report *models.Report) error
}

// Reconciler applies workflow transitions to the database of record and
// mirrors status changes to the ledger best-effort
type Reconciler struct {
	DB       databases.ReportDatabase
	Users    databases.UserDatabase
	Ledger   ledger.Service
	Notifier Notifier
}

// UpdateStatus moves a report to newStatus. The transition must be allowed
// by the workflow graph. A supplied comment is appended to the immutable
// comment log. The returned string is the ledger mirror's error message,
// advisory only; the database change stands regardless.
func (r *Reconciler) UpdateStatus(ctx context.Context, id primitive.ObjectID, newStatus, comment string, author primitive.ObjectID) (*models.Report, string, error) {
	if !ValidStatus(newStatus) {
		return nil, "", fmt.Errorf("%w: %q, valid statuses are %v", ErrInvalidStatus, newStatus, ValidStatuses())
	}

	report, err := r.DB.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrReportNotFound
		}
		return nil, "", err
	}

	if !CanTransition(report.Status, newStatus) {
		return nil, "", fmt.Errorf("%w: %q -> %q", ErrInvalidTransition, report.Status, newStatus)
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	set := bson.M{
		"status":    newStatus,
		"updatedAt": now,
	}
	if newStatus == models.StatusVerified {
		set["verified"] = true
	}

	update := bson.M{"$set": set}
	if comment != "" {
		update["$push"] = bson.M{"comments": models.ReportComment{
			ID:        primitive.NewObjectID(),
			Text:      comment,
			Status:    newStatus,
			Author:    author,
			CreatedAt: now,
		}}
	}

	ledgerError := r.mirrorStatus(ctx, report, newStatus, set)

	// The filter pins the status we validated against so a concurrent
	// transition surfaces as a conflict instead of a silently lost update.
	matched, err := r.DB.UpdateOne(ctx, bson.M{"_id": id, "status": report.Status}, update)
	if err != nil {
		return nil, "", err
	}
	if matched == 0 {
		return nil, "", ErrStatusConflict
	}

	updated, err := r.DB.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, "", err
	}
	return updated, ledgerError, nil
}

// Assign sets the investigating officer. A Pending report auto-advances to
// Under Investigation.
func (r *Reconciler) Assign(ctx context.Context, id, officerID primitive.ObjectID) (*models.Report, string, error) {
	officer, err := r.Users.FindOne(ctx, bson.M{"_id": officerID})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrOfficerNotFound
		}
		return nil, "", err
	}

	report, err := r.DB.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrReportNotFound
		}
		return nil, "", err
	}

	set := bson.M{
		"assignedOfficer": officerID,
		"updatedAt":       primitive.NewDateTimeFromTime(time.Now()),
	}
	ledgerError := ""
	if report.Status == models.StatusPending {
		set["status"] = models.StatusUnderInvestigation
		ledgerError = r.mirrorStatus(ctx, report, models.StatusUnderInvestigation, set)
	}

	matched, err := r.DB.UpdateOne(ctx, bson.M{"_id": id, "status": report.Status}, bson.M{"$set": set})
	if err != nil {
		return nil, "", err
	}
	if matched == 0 {
		return nil, "", ErrStatusConflict
	}

	updated, err := r.DB.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, "", err
	}

	if r.Notifier != nil {
		if nerr := r.Notifier.OfficerAssigned(officer, updated); nerr != nil {
			zap.S().Warnw("failed to notify assigned officer",
				"officerId", officerID.Hex(),
				"reportId", id.Hex(),
				"error", nerr,
			)
		}
	}
	return updated, ledgerError, nil
}

// mirrorStatus pushes the status change to the ledger and records the mirror
// transaction hash in set on success. The returned message is empty on
// success and advisory otherwise; it never aborts the database update.
func (r *Reconciler) mirrorStatus(ctx context.Context, report *models.Report, newStatus string, set bson.M) string {
	if report.LedgerTxHash == "" {
		return ""
	}
	if report.LedgerReportID == "" {
		return "ledger report id not yet resolved; status change not mirrored"
	}
	res := r.Ledger.UpdateStatus(ctx, report.LedgerReportID, newStatus)
	if !res.Success {
		zap.S().Warnw("ledger status mirror failed",
			"reportId", report.ID.Hex(),
			"ledgerReportId", report.LedgerReportID,
			"status", newStatus,
			"error", res.Err,
		)
		return res.Err.Error()
	}
	set["ledgerStatusTxHash"] = res.TransactionHash
	return ""
}
