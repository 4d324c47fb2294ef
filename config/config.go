package config

import (
	"encoding/json"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/crimechain/report-api/models"
)

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	BaseURL      string
	Port         string
	JWTSecret    string

	// Ledger settings. Missing values are not an error here; the ledger
	// client checks them lazily so the API can still serve database-only
	// traffic (see ledger.Client).
	LedgerNodeURL   string
	ContractAddress string
	ContractABIPath string
	AdminAccount    string
	SigningKey      string
	DebugMode       bool
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger := zap.NewExample()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		URL:          os.Getenv("DB_URI"),
		DatabaseName: os.Getenv("DB_NAME"),
		BaseURL:      os.Getenv("BASE_URL"),
		Port:         os.Getenv("PORT"),
		JWTSecret:    os.Getenv("JWT_SECRET"),

		LedgerNodeURL:   os.Getenv("LEDGER_NODE_URL"),
		ContractAddress: os.Getenv("CONTRACT_ADDRESS"),
		ContractABIPath: os.Getenv("CONTRACT_ABI_PATH"),
		AdminAccount:    os.Getenv("ADMIN_ACCOUNT"),
		SigningKey:      os.Getenv("SIGNING_KEY"),
		DebugMode:       os.Getenv("DEBUG_MODE") == "true",
	}

}

// ErrorStatus is a useful function that will log, write http headers and body for a
// given message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	b, _ := json.Marshal(models.ErrorMessageResponse{
		Response: models.MessageError{Message: message, Error: err.Error()},
	})
	w.Write(b)
}
