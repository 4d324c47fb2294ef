package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/crimechain/report-api/api"
	"github.com/crimechain/report-api/config"
	"github.com/crimechain/report-api/databases"
	"github.com/crimechain/report-api/evidence"
	"github.com/crimechain/report-api/ledger"
	"github.com/crimechain/report-api/models"
	"github.com/crimechain/report-api/reports"
)

// maxUploadBytes bounds the whole multipart submission body
const maxUploadBytes = 64 << 20

// ledgerListingCap bounds how many reports the admin ledger listing reads
// in one request
const ledgerListingCap = 100

// Report handles report-related requests
type Report struct {
	RDB         databases.ReportDatabase
	UDB         databases.UserDatabase
	Ledger      ledger.Service
	Coordinator *reports.Coordinator
	Reconciler  *reports.Reconciler
	Evidence    *evidence.Processor
}

// CreateReportHandler accepts a multipart submission, stores its evidence
// and persists the report. The database write succeeds even when the ledger
// is down; the response then carries a warning instead of an error.
func (re Report) CreateReportHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := api.IdentityFromContext(r.Context())
	if !ok {
		config.ErrorStatus("missing identity", http.StatusUnauthorized, w, errors.New("no identity in context"))
		return
	}
	reporter, err := primitive.ObjectIDFromHex(identity.UserID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
		return
	}

	title := r.FormValue("title")
	reportType := r.FormValue("reportType")
	description := r.FormValue("description")
	location := r.FormValue("location")
	if title == "" || description == "" || location == "" {
		config.ErrorStatus("missing required fields", http.StatusBadRequest, w, errors.New("title, description and location are required"))
		return
	}
	if !models.ValidReportType(reportType) {
		config.ErrorStatus("invalid report type", http.StatusBadRequest, w, fmt.Errorf("%q is not a known report type", reportType))
		return
	}

	var date time.Time
	if raw := r.FormValue("date"); raw != "" {
		date, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			config.ErrorStatus("invalid date", http.StatusBadRequest, w, err)
			return
		}
	}

	// validate before any write so a bad batch rejects the whole submission
	files := r.MultipartForm.File["evidence"]
	if err := evidence.Validate(files); err != nil {
		config.ErrorStatus("invalid evidence", http.StatusBadRequest, w, err)
		return
	}
	hashes, urls, err := re.Evidence.Process(r.Context(), files)
	if err != nil {
		config.ErrorStatus("failed to store evidence", http.StatusInternalServerError, w, err)
		return
	}

	report, warning, err := re.Coordinator.Create(r.Context(), reports.CreateInput{
		Title:          title,
		ReportType:     reportType,
		Description:    description,
		Location:       location,
		Date:           date,
		Reporter:       reporter,
		EvidenceHashes: hashes,
		Evidence:       urls,
		ClientTxHash:   r.FormValue("txHash"),
		ClientReportID: r.FormValue("ledgerReportId"),
	})
	if err != nil {
		config.ErrorStatus("failed to create report", http.StatusInternalServerError, w, err)
		return
	}

	resp := models.CreateReportResponse{Report: report, Warning: warning}
	if warning == "" {
		resp.Message = "Report created successfully"
	}
	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// ReportsHandler lists reports. Admins see every report; everyone else sees
// only their own submissions.
func (re Report) ReportsHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := api.IdentityFromContext(r.Context())
	if !ok {
		config.ErrorStatus("missing identity", http.StatusUnauthorized, w, errors.New("no identity in context"))
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 0 {
		page = 0
	}

	filter := bson.M{}
	if !identity.Admin() {
		reporter, err := primitive.ObjectIDFromHex(identity.UserID)
		if err != nil {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
			return
		}
		filter["reporter"] = reporter
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := re.RDB.FindPaginated(ctx, filter, limit, page)
	if err != nil {
		config.ErrorStatus("failed to get reports", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Report{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ReportByIDHandler returns a report by ID. With ?ledger=true the response
// also carries the ledger's copy for cross-checking, when one exists.
func (re Report) ReportByIDHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := api.IdentityFromContext(r.Context())
	if !ok {
		config.ErrorStatus("missing identity", http.StatusUnauthorized, w, errors.New("no identity in context"))
		return
	}

	reportID := mux.Vars(r)["report_id"]
	rID, err := primitive.ObjectIDFromHex(reportID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := re.RDB.FindOne(ctx, bson.M{"_id": rID})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			config.ErrorStatus("report not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to get report by ID", http.StatusInternalServerError, w, err)
		return
	}
	if !identity.Admin() && dbResp.Reporter.Hex() != identity.UserID {
		config.ErrorStatus("forbidden", http.StatusForbidden, w, errors.New("report belongs to another user"))
		return
	}

	resp := models.ReportDetailResponse{Report: dbResp}
	if r.URL.Query().Get("ledger") == "true" && dbResp.LedgerReportID != "" {
		res := re.Ledger.GetReport(r.Context(), dbResp.LedgerReportID)
		if res.Success {
			resp.Ledger = res.Report
		} else {
			zap.S().Warnw("failed to read ledger copy of report",
				"reportId", reportID,
				"ledgerReportId", dbResp.LedgerReportID,
				"error", res.Err,
			)
		}
	}

	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UserLedgerReportsHandler lists the ledger report ids submitted by the
// caller's wallet.
func (re Report) UserLedgerReportsHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := api.IdentityFromContext(r.Context())
	if !ok {
		config.ErrorStatus("missing identity", http.StatusUnauthorized, w, errors.New("no identity in context"))
		return
	}
	if identity.WalletAddress == "" {
		config.ErrorStatus("no wallet address on account", http.StatusBadRequest, w, errors.New("link a wallet to list ledger reports"))
		return
	}

	res := re.Ledger.GetUserReports(r.Context(), identity.WalletAddress)
	if !res.Success {
		config.ErrorStatus("failed to get ledger reports", http.StatusBadGateway, w, res.Err)
		return
	}

	b, err := json.Marshal(map[string][]string{"reportIds": res.ReportIDs})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// LedgerReportsHandler walks the ledger's reports for the admin audit view
func (re Report) LedgerReportsHandler(w http.ResponseWriter, r *http.Request) {
	countRes := re.Ledger.GetReportCount(r.Context())
	if !countRes.Success {
		config.ErrorStatus("failed to get ledger report count", http.StatusBadGateway, w, countRes.Err)
		return
	}
	count, err := strconv.Atoi(countRes.Count)
	if err != nil {
		config.ErrorStatus("failed to parse ledger report count", http.StatusBadGateway, w, err)
		return
	}
	if count > ledgerListingCap {
		count = ledgerListingCap
	}

	// ledger report ids are 1-based
	ledgerReports := []models.LedgerReport{}
	for i := 1; i <= count; i++ {
		res := re.Ledger.GetReport(r.Context(), strconv.Itoa(i))
		if !res.Success {
			zap.S().Warnw("skipping unreadable ledger report", "ledgerReportId", i, "error", res.Err)
			continue
		}
		ledgerReports = append(ledgerReports, *res.Report)
	}

	b, err := json.Marshal(map[string]interface{}{
		"count":   countRes.Count,
		"reports": ledgerReports,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

type updateStatusRequest struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

// UpdateStatusHandler moves a report through the workflow. The ledger mirror
// is advisory; its error, if any, rides along in the response.
func (re Report) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := api.IdentityFromContext(r.Context())
	if !ok {
		config.ErrorStatus("missing identity", http.StatusUnauthorized, w, errors.New("no identity in context"))
		return
	}
	author, err := primitive.ObjectIDFromHex(identity.UserID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	rID, err := primitive.ObjectIDFromHex(mux.Vars(r)["report_id"])
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	report, ledgerError, err := re.Reconciler.UpdateStatus(r.Context(), rID, req.Status, req.Comment, author)
	if err != nil {
		status, message := workflowErrorStatus(err)
		config.ErrorStatus(message, status, w, err)
		return
	}

	b, err := json.Marshal(models.UpdateReportResponse{Report: report, LedgerError: ledgerError})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

type assignOfficerRequest struct {
	OfficerID string `json:"officerId"`
}

// AssignOfficerHandler assigns an investigating officer to a report
func (re Report) AssignOfficerHandler(w http.ResponseWriter, r *http.Request) {
	rID, err := primitive.ObjectIDFromHex(mux.Vars(r)["report_id"])
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var req assignOfficerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	officerID, err := primitive.ObjectIDFromHex(req.OfficerID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	report, ledgerError, err := re.Reconciler.Assign(r.Context(), rID, officerID)
	if err != nil {
		status, message := workflowErrorStatus(err)
		config.ErrorStatus(message, status, w, err)
		return
	}

	b, err := json.Marshal(models.UpdateReportResponse{Report: report, LedgerError: ledgerError})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func workflowErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, reports.ErrInvalidStatus):
		return http.StatusBadRequest, "invalid status"
	case errors.Is(err, reports.ErrInvalidTransition):
		return http.StatusBadRequest, "invalid status transition"
	case errors.Is(err, reports.ErrReportNotFound):
		return http.StatusNotFound, "report not found"
	case errors.Is(err, reports.ErrOfficerNotFound):
		return http.StatusNotFound, "officer not found"
	case errors.Is(err, reports.ErrStatusConflict):
		return http.StatusConflict, "report changed concurrently, retry"
	default:
		return http.StatusInternalServerError, "failed to update report"
	}
}
