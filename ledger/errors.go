package ledger

import "fmt"

// Kind classifies ledger failures so callers can distinguish a missing
// config value from a reverted transaction without parsing messages.
type Kind string

// Error kinds
const (
	KindConfiguration  Kind = "ConfigurationError"
	KindConnectivity   Kind = "ConnectivityError"
	KindGasEstimation  Kind = "GasEstimationError"
	KindTransaction    Kind = "TransactionError"
	KindNetworkTimeout Kind = "NetworkTimeout"
	KindNotFound       Kind = "NotFoundError"
)

// Error is a classified ledger failure
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func errf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
