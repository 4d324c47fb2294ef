package ledger_test

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crimechain/report-api/ledger"
)

var numericRe = regexp.MustCompile(`^[0-9]+$`)

func TestSimulatorSubmitReport(t *testing.T) {
	s := ledger.NewSimulator()

	res := s.SubmitReport(context.Background(), "Theft at Market", "Theft", "stolen goods", "Main St", []string{"abc"}, 1700000000)

	assert.True(t, res.Success)
	assert.Nil(t, res.Err)
	assert.True(t, strings.HasPrefix(res.TransactionHash, ledger.DebugTxPrefix))
	assert.Regexp(t, numericRe, res.ReportID)
}

func TestSimulatorSubmitReportNilHashes(t *testing.T) {
	s := ledger.NewSimulator()

	res := s.SubmitReport(context.Background(), "t", "Other", "d", "l", nil, 0)

	assert.True(t, res.Success)
}

func TestSimulatorUpdateStatus(t *testing.T) {
	s := ledger.NewSimulator()

	res := s.UpdateStatus(context.Background(), "42", "Verified")

	assert.True(t, res.Success)
	assert.True(t, strings.HasPrefix(res.TransactionHash, ledger.DebugStatusTxPrefix))
}

func TestSimulatorGetReport(t *testing.T) {
	s := ledger.NewSimulator()

	res := s.GetReport(context.Background(), "7")

	assert.True(t, res.Success)
	assert.Equal(t, "7", res.Report.ID)
	assert.Equal(t, "Debug Report", res.Report.Title)
	assert.NotNil(t, res.Report.EvidenceHashes)
}

func TestSimulatorGetReportCount(t *testing.T) {
	s := ledger.NewSimulator()

	res := s.GetReportCount(context.Background())

	assert.True(t, res.Success)
	assert.Equal(t, "0", res.Count)
}

func TestSimulatorResolveReportID(t *testing.T) {
	s := ledger.NewSimulator()

	res := s.ResolveReportID(context.Background(), "0xabc123")

	assert.True(t, res.Success)
	assert.Regexp(t, numericRe, res.ReportID)
}

func TestNewServiceDebugModeReturnsSimulator(t *testing.T) {
	svc := ledger.NewService(ledger.Config{DebugMode: true})

	_, ok := svc.(*ledger.Simulator)
	assert.True(t, ok)
}
