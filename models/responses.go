package models

// HealthCheckResponse returns the healthcheck response
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}

// AuthResponse is returned by the register and login endpoints
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NonceResponse carries the challenge for a wallet-signature login
type NonceResponse struct {
	Nonce string `json:"nonce"`
}

// CreateReportResponse wraps the persisted report. Warning is set only when
// the ledger write failed and no client-supplied transaction hash existed;
// the report itself is still persisted.
type CreateReportResponse struct {
	Report  *Report `json:"report"`
	Warning string  `json:"warning,omitempty"`
	Message string  `json:"message,omitempty"`
}

// ReportDetailResponse joins the database record with the optional live
// ledger mirror. Ledger is nil when the report never reached the ledger or
// the ledger read failed.
type ReportDetailResponse struct {
	Report *Report       `json:"report"`
	Ledger *LedgerReport `json:"ledger"`
}

// UpdateReportResponse returns the updated report plus the ledger mirror's
// own error as advisory information, never as a request failure.
type UpdateReportResponse struct {
	Report      *Report `json:"report"`
	LedgerError string  `json:"ledgerError,omitempty"`
}
