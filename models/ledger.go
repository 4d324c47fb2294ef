package models

// LedgerReport is the read-only mirror of a report fetched from the ledger
// contract. Its Status may legitimately diverge from the database record.
type LedgerReport struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	ReportType     string   `json:"reportType"`
	Description    string   `json:"description"`
	Location       string   `json:"location"`
	EvidenceHashes []string `json:"evidenceHashes"`
	Timestamp      string   `json:"timestamp"`
	Reporter       string   `json:"reporter"`
	Status         string   `json:"status"`
}
