package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Report statuses. The database is authoritative for workflow state; the
// ledger copy is an audit trail and may lag behind these values.
const (
	StatusSubmitted          = "Submitted"
	StatusPending            = "Pending"
	StatusUnderInvestigation = "Under Investigation"
	StatusVerified           = "Verified"
	StatusResolved           = "Resolved"
	StatusClosed             = "Closed"
	StatusFake               = "Fake"
)

// Report represents a submitted incident report
type Report struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Title           string              `bson:"title" json:"title"`
	ReportType      string              `bson:"reportType" json:"reportType"`
	Description     string              `bson:"description" json:"description"`
	Location        string              `bson:"location" json:"location"`
	Date            primitive.DateTime  `bson:"date" json:"date"`
	Reporter        primitive.ObjectID  `bson:"reporter" json:"reporter"`
	EvidenceHashes  []string            `bson:"evidenceHashes" json:"evidenceHashes"`
	Evidence        []string            `bson:"evidence" json:"evidence"`
	Status          string              `bson:"status" json:"status"`
	Verified        bool                `bson:"verified" json:"verified"`
	LedgerTxHash    string              `bson:"ledgerTxHash,omitempty" json:"ledgerTxHash,omitempty"`
	LedgerReportID  string              `bson:"ledgerReportId,omitempty" json:"ledgerReportId,omitempty"`
	LedgerStatusTx  string              `bson:"ledgerStatusTxHash,omitempty" json:"ledgerStatusTxHash,omitempty"`
	AssignedOfficer *primitive.ObjectID `bson:"assignedOfficer,omitempty" json:"assignedOfficer,omitempty"`
	Comments        []ReportComment     `bson:"comments" json:"comments"`
	CreatedAt       primitive.DateTime  `bson:"createdAt" json:"createdAt"`
	UpdatedAt       primitive.DateTime  `bson:"updatedAt" json:"updatedAt"`
}

// ReportComment is one entry in the append-only comment log of a report
type ReportComment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Text      string             `bson:"text" json:"text"`
	Status    string             `bson:"status" json:"status"`
	Author    primitive.ObjectID `bson:"author" json:"author"`
	CreatedAt primitive.DateTime `bson:"createdAt" json:"createdAt"`
}

// ReportTypes are the accepted values for Report.ReportType
var ReportTypes = []string{"Theft", "Fraud", "Cybercrime", "Violence", "Property Damage", "Other"}

// ValidReportType reports whether t is an accepted report type
func ValidReportType(t string) bool {
	for _, rt := range ReportTypes {
		if rt == t {
			return true
		}
	}
	return false
}
