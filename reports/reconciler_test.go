package reports

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	dbMocks "github.com/crimechain/report-api/databases/mocks"
	"github.com/crimechain/report-api/ledger"
	ledgerMocks "github.com/crimechain/report-api/ledger/mocks"
	"github.com/crimechain/report-api/models"
)

type stubNotifier struct {
	officer *models.User
	report  *models.Report
	err     error
}

func (s *stubNotifier) OfficerAssigned(officer *models.User, report *models.Report) error {
	s.officer = officer
	s.report = report
	return s.err
}

func TestUpdateStatusVerifiedSetsVerifiedFlag(t *testing.T) {
	db := &dbMocks.ReportDatabase{}
	svc := &ledgerMocks.Service{}
	r := &Reconciler{DB: db, Users: &dbMocks.UserDatabase{}, Ledger: svc}

	id := primitive.NewObjectID()
	author := primitive.NewObjectID()
	current := &models.Report{ID: id, Status: models.StatusUnderInvestigation, LedgerTxHash: "0xabc", LedgerReportID: "7"}
	verified := &models.Report{ID: id, Status: models.StatusVerified, Verified: true}

	db.On("FindOne", mock.Anything, bson.M{"_id": id}).Return(current, nil).Once()
	svc.On("UpdateStatus", mock.Anything, "7", models.StatusVerified).
		Return(ledger.UpdateResult{Success: true, TransactionHash: "0xstatus"})

	var gotUpdate bson.M
	db.On("UpdateOne", mock.Anything, bson.M{"_id": id, "status": models.StatusUnderInvestigation}, mock.Anything).
		Run(func(args mock.Arguments) {
			gotUpdate = args.Get(2).(bson.M)
		}).
		Return(int64(1), nil)
	db.On("FindOne", mock.Anything, bson.M{"_id": id}).Return(verified, nil).Once()

	updated, ledgerError, err := r.UpdateStatus(context.TODO(), id, models.StatusVerified, "matches CCTV footage", author)

	assert.NoError(t, err)
	assert.Empty(t, ledgerError)
	assert.True(t, updated.Verified)

	set := gotUpdate["$set"].(bson.M)
	assert.Equal(t, models.StatusVerified, set["status"])
	assert.Equal(t, true, set["verified"])
	assert.Equal(t, "0xstatus", set["ledgerStatusTxHash"])

	comment := gotUpdate["$push"].(bson.M)["comments"].(models.ReportComment)
	assert.Equal(t, "matches CCTV footage", comment.Text)
	assert.Equal(t, models.StatusVerified, comment.Status)
	assert.Equal(t, author, comment.Author)
	db.AssertExpectations(t)
	svc.AssertExpectations(t)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	r := &Reconciler{DB: &dbMocks.ReportDatabase{}, Ledger: &ledgerMocks.Service{}}

	_, _, err := r.UpdateStatus(context.TODO(), primitive.NewObjectID(), "Escalated", "", primitive.NewObjectID())

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	db := &dbMocks.ReportDatabase{}
	r := &Reconciler{DB: db, Ledger: &ledgerMocks.Service{}}

	id := primitive.NewObjectID()
	db.On("FindOne", mock.Anything, bson.M{"_id": id}).
		Return(&models.Report{ID: id, Status: models.StatusClosed}, nil)

	_, _, err := r.UpdateStatus(context.TODO(), id, models.StatusFake, "", primitive.NewObjectID())

	assert.ErrorIs(t, err, ErrInvalidTransition)
	db.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatusReportNotFound(t *testing.T) {
	db := &dbMocks.ReportDatabase{}
	r := &Reconciler{DB: db, Ledger: &ledgerMocks.Service{}}

	id := primitive.NewObjectID()
	db.On("FindOne", mock.Anything, bson.M{"_id": id}).Return(nil, mongo.ErrNoDocuments)

	_, _, err := r.UpdateStatus(context.TODO(), id, models.StatusFake, "", primitive.NewObjectID())

	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestUpdateStatusLedgerMirrorFailureIsAdvisory(t *testing.T) {
	db := &dbMocks.ReportDatabase{}
	svc := &ledgerMocks.Service{}
	r := &Reconciler{DB: db, Ledger: svc}

	id := primitive.NewObjectID()
	current := &models.Report{ID: id, Status: models.StatusPending, LedgerTxHash: "0xabc", LedgerReportID: "7"}
	db.On("FindOne", mock.Anything, bson.M{"_id": id}).Return(current, nil).Once()
	svc.On("UpdateStatus", mock.Anything, "7", models.StatusUnderInvestigation).
		Return(ledger.UpdateResult{Success: false, Err: &ledger.Error{Kind: ledger.KindTransaction, Message: "execution reverted"}})

	var gotUpdate bson.M
	db.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotUpdate = args.Get(2).(bson.M)
		}).
		Return(int64(1), nil)
	db.On("FindOne", mock.Anything, bson.M{"_id": id}).
		Return(&models.Report{ID: id, Status: models.StatusUnderInvestigation}, nil).Once()

	updated, ledgerError, err := r.UpdateStatus(context.TODO(), id, models.StatusUnderInvestigation, "", primitive.NewObjectID())

	assert.NoError(t, err)
	assert.Equal(t, "TransactionError: execution reverted", ledgerError)
	assert.Equal(t, models.StatusUnderInvestigation, updated.Status)
	_, hasMirrorHash := gotUpdate["$set"].(bson.M)["ledgerStatusTxHash"]
	assert.False(t, hasMirrorHash)
}

func TestUpdateStatusUnresolvedLedgerIDSkipsMirror(t *testing.T) {
	db := &dbMocks.ReportDatabase{}
	svc := &ledgerMocks.Service{}
	r := &Reconciler{DB: db, Ledger: svc}

	id := primitive.NewObjectID()
	current := &models.Report{ID: id, Status: models.StatusPending, LedgerTxHash: "0xabc"}
	db.On("FindOne", mock.Anything, bson.M{"_id": id}).Return(current, nil).Once()
	db.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(int64(1), nil)
	db.On("FindOne", mock.Anything, bson.M{"_id": id}).
		Return(&models.Report{ID: id, Status: models.StatusUnderInvestigation}, nil).Once()

	_, ledgerError, err := r.UpdateStatus(context.TODO(), id, models.StatusUnderInvestigation, "", primitive.NewObjectID())

	assert.NoError(t, err)
	assert.Equal(t, "ledger report id not yet resolved; status change not mirrored", ledgerError)
	svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatusConcurrentTransitionConflicts(t *testing.T) {
	db := &dbMocks.ReportDatabase{}
	r := &Reconciler{DB: db, Ledger: &ledgerMocks.Service{}}

	id := primitive.NewObjectID()
	db.On("FindOne", mock.Anything, bson.M{"_id": id}).
		Return(&models.Report{ID: id, Status: models.StatusPending}, nil)
	db.On("UpdateOne", mock.Anything, bson.M{"_id": id, "status": models.StatusPending}, mock.Anything).
		Return(int64(0), nil)

	_, _, err := r.UpdateStatus(context.TODO(), id, models.StatusUnderInvestigation, "", primitive.NewObjectID())

	assert.ErrorIs(t, err, ErrStatusConflict)
}

func TestAssignPendingReportAdvancesStatus(t *testing.T) {
	db := &dbMocks.ReportDatabase{}
	users := &dbMocks.UserDatabase{}
	svc := &ledgerMocks.Service{}
	notifier := &stubNotifier{}
	r := &Reconciler{DB: db, Users: users, Ledger: svc, Notifier: notifier}

	id := primitive.NewObjectID()
	officerID := primitive.NewObjectID()
	officer := &models.User{ID: officerID, Name: "Officer Reyes", Role: models.RoleOfficer}
	current := &models.Report{ID: id, Status: models.StatusPending, LedgerTxHash: "0xabc", LedgerReportID: "7"}
	assigned := &models.Report{ID: id, Status: models.StatusUnderInvestigation, AssignedOfficer: &officerID}

	users.On("FindOne", mock.Anything, bson.M{"_id": officerID}).Return(officer, nil)
	db.On("FindOne", mock.Anything, bson.M{"_id": id}).Return(current, nil).Once()
	svc.On("UpdateStatus", mock.Anything, "7", models.StatusUnderInvestigation).
		Return(ledger.UpdateResult{Success: true, TransactionHash: "0xstatus"})

	var gotUpdate bson.M
	db.On("UpdateOne", mock.Anything, bson.M{"_id": id, "status": models.StatusPending}, mock.Anything).
		Run(func(args mock.Arguments) {
			gotUpdate = args.Get(2).(bson.M)
		}).
		Return(int64(1), nil)
	db.On("FindOne", mock.Anything, bson.M{"_id": id}).Return(assigned, nil).Once()

	updated, ledgerError, err := r.Assign(context.TODO(), id, officerID)

	assert.NoError(t, err)
	assert.Empty(t, ledgerError)
	assert.Equal(t, models.StatusUnderInvestigation, updated.Status)

	set := gotUpdate["$set"].(bson.M)
	assert.Equal(t, officerID, set["assignedOfficer"])
	assert.Equal(t, models.StatusUnderInvestigation, set["status"])
	assert.Equal(t, "0xstatus", set["ledgerStatusTxHash"])

	assert.Equal(t, officer, notifier.officer)
	assert.Equal(t, assigned, notifier.report)
	db.AssertExpectations(t)
	svc.AssertExpectations(t)
}

func TestAssignKeepsStatusWhenAlreadyInvestigating(t *testing.T) {
	db := &dbMocks.ReportDatabase{}
	users := &dbMocks.UserDatabase{}
	svc := &ledgerMocks.Service{}
	r := &Reconciler{DB: db, Users: users, Ledger: svc}

	id := primitive.NewObjectID()
	officerID := primitive.NewObjectID()
	users.On("FindOne", mock.Anything, bson.M{"_id": officerID}).
		Return(&models.User{ID: officerID, Role: models.RoleOfficer}, nil)
	db.On("FindOne", mock.Anything, bson.M{"_id": id}).
		Return(&models.Report{ID: id, Status: models.StatusUnderInvestigation, LedgerTxHash: "0xabc", LedgerReportID: "7"}, nil)

	var gotUpdate bson.M
	db.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotUpdate = args.Get(2).(bson.M)
		}).
		Return(int64(1), nil)

	_, ledgerError, err := r.Assign(context.TODO(), id, officerID)

	assert.NoError(t, err)
	assert.Empty(t, ledgerError)
	set := gotUpdate["$set"].(bson.M)
	_, hasStatus := set["status"]
	assert.False(t, hasStatus)
	svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAssignOfficerNotFound(t *testing.T) {
	db := &dbMocks.ReportDatabase{}
	users := &dbMocks.UserDatabase{}
	r := &Reconciler{DB: db, Users: users, Ledger: &ledgerMocks.Service{}}

	officerID := primitive.NewObjectID()
	users.On("FindOne", mock.Anything, bson.M{"_id": officerID}).Return(nil, mongo.ErrNoDocuments)

	_, _, err := r.Assign(context.TODO(), primitive.NewObjectID(), officerID)

	assert.ErrorIs(t, err, ErrOfficerNotFound)
	db.AssertNotCalled(t, "FindOne", mock.Anything, mock.Anything)
}

func TestAssignNotifierFailureDoesNotFailAssignment(t *testing.T) {
	db := &dbMocks.ReportDatabase{}
	users := &dbMocks.UserDatabase{}
	notifier := &stubNotifier{err: errors.New("smtp unavailable")}
	r := &Reconciler{DB: db, Users: users, Ledger: &ledgerMocks.Service{}, Notifier: notifier}

	id := primitive.NewObjectID()
	officerID := primitive.NewObjectID()
	users.On("FindOne", mock.Anything, bson.M{"_id": officerID}).
		Return(&models.User{ID: officerID, Role: models.RoleOfficer}, nil)
	db.On("FindOne", mock.Anything, bson.M{"_id": id}).
		Return(&models.Report{ID: id, Status: models.StatusUnderInvestigation}, nil)
	db.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(int64(1), nil)

	updated, _, err := r.Assign(context.TODO(), id, officerID)

	assert.NoError(t, err)
	assert.NotNil(t, updated)
}
