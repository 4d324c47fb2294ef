package ledger

import (
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// contractABI is the superset ABI covering every contract variant seen in
// deployments. Individual deployments may carry only one of each method
// pair; resolveCapabilities picks what the configured contract supports.
const contractABI = `[
	{"type":"function","name":"submitReport","stateMutability":"nonpayable","inputs":[{"name":"title","type":"string"},{"name":"reportType","type":"string"},{"name":"description","type":"string"},{"name":"location","type":"string"},{"name":"evidenceHashes","type":"string[]"},{"name":"timestamp","type":"uint256"}],"outputs":[{"name":"id","type":"uint256"}]},
	{"type":"function","name":"updateReportStatus","stateMutability":"nonpayable","inputs":[{"name":"id","type":"uint256"},{"name":"status","type":"string"}],"outputs":[]},
	{"type":"function","name":"updateStatus","stateMutability":"nonpayable","inputs":[{"name":"id","type":"uint256"},{"name":"status","type":"string"}],"outputs":[]},
	{"type":"function","name":"getReport","stateMutability":"view","inputs":[{"name":"id","type":"uint256"}],"outputs":[{"name":"id","type":"uint256"},{"name":"title","type":"string"},{"name":"reportType","type":"string"},{"name":"description","type":"string"},{"name":"location","type":"string"},{"name":"evidenceHashes","type":"string[]"},{"name":"timestamp","type":"uint256"},{"name":"reporter","type":"address"},{"name":"status","type":"string"}]},
	{"type":"function","name":"reports","stateMutability":"view","inputs":[{"name":"id","type":"uint256"}],"outputs":[{"name":"title","type":"string"},{"name":"reportType","type":"string"},{"name":"description","type":"string"},{"name":"location","type":"string"},{"name":"timestamp","type":"uint256"},{"name":"reporter","type":"address"},{"name":"status","type":"string"}]},
	{"type":"function","name":"getUserReports","stateMutability":"view","inputs":[{"name":"reporter","type":"address"}],"outputs":[{"name":"ids","type":"uint256[]"}]},
	{"type":"function","name":"getReportCount","stateMutability":"view","inputs":[],"outputs":[{"name":"count","type":"uint256"}]},
	{"type":"function","name":"reportCount","stateMutability":"view","inputs":[],"outputs":[{"name":"count","type":"uint256"}]},
	{"type":"event","name":"ReportSubmitted","anonymous":false,"inputs":[{"name":"id","type":"uint256","indexed":true},{"name":"reporter","type":"address","indexed":true}]}
]`

// reportSubmittedSig is the raw event signature used for the manual
// log-topic fallback when the decoded-event path finds nothing.
const reportSubmittedSig = "ReportSubmitted(uint256,address)"

// capabilities is the contract method set resolved once at construction.
// Deployed contract versions differ (updateReportStatus vs updateStatus,
// getReport vs the reports accessor); probing per call would repeat work
// the ABI already answers.
type capabilities struct {
	statusMethod string
	reportMethod string
	countMethod  string
}

func resolveCapabilities(a abi.ABI) capabilities {
	caps := capabilities{}
	caps.statusMethod = pickMethod(a, "updateReportStatus", "updateStatus")
	caps.reportMethod = pickMethod(a, "getReport", "reports")
	caps.countMethod = pickMethod(a, "getReportCount", "reportCount")
	return caps
}

func pickMethod(a abi.ABI, primary, fallback string) string {
	if _, ok := a.Methods[primary]; ok {
		return primary
	}
	if _, ok := a.Methods[fallback]; ok {
		return fallback
	}
	return ""
}

// loadABI parses the contract ABI, preferring an on-disk override so
// operators can match a contract version skewed from the embedded superset.
func loadABI(path string) (abi.ABI, error) {
	raw := contractABI
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return abi.ABI{}, err
		}
		raw = string(b)
	}
	return abi.JSON(strings.NewReader(raw))
}
