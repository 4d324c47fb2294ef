package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCapturesMissingContractAddress(t *testing.T) {
	c := New(Config{AdminAccount: "0x1111111111111111111111111111111111111111"})

	require.NotNil(t, c.initErr)
	assert.Equal(t, KindConfiguration, c.initErr.Kind)

	// Operations surface the captured error instead of panicking
	res := c.SubmitReport(context.Background(), "t", "Other", "d", "l", nil, 0)
	assert.False(t, res.Success)
	require.NotNil(t, res.Err)
	assert.Equal(t, KindConfiguration, res.Err.Kind)
}

func TestNewCapturesMissingAdminAccount(t *testing.T) {
	c := New(Config{ContractAddress: "0x2222222222222222222222222222222222222222"})

	require.NotNil(t, c.initErr)
	assert.Equal(t, KindConfiguration, c.initErr.Kind)

	upd := c.UpdateStatus(context.Background(), "1", "Verified")
	assert.False(t, upd.Success)
	assert.Equal(t, KindConfiguration, upd.Err.Kind)
}

func TestNewCapturesInvalidSigningKey(t *testing.T) {
	c := New(Config{
		ContractAddress: "0x2222222222222222222222222222222222222222",
		AdminAccount:    "0x1111111111111111111111111111111111111111",
		SigningKey:      "not-a-key",
	})

	require.NotNil(t, c.initErr)
	assert.Equal(t, KindConfiguration, c.initErr.Kind)
}

func TestNewCapturesMissingABIOverride(t *testing.T) {
	c := New(Config{ABIPath: "/nonexistent/contract.json"})

	require.NotNil(t, c.initErr)
	assert.Equal(t, KindConfiguration, c.initErr.Kind)
}

func TestUpdateStatusRejectsNonNumericID(t *testing.T) {
	c := New(Config{
		ContractAddress: "0x2222222222222222222222222222222222222222",
		AdminAccount:    "0x1111111111111111111111111111111111111111",
		NodeURL:         "http://127.0.0.1:8545",
	})
	require.Nil(t, c.initErr)

	res := c.UpdateStatus(context.Background(), "not-numeric", "Verified")

	assert.False(t, res.Success)
	require.NotNil(t, res.Err)
	assert.Equal(t, KindTransaction, res.Err.Kind)
}

func TestErrorString(t *testing.T) {
	e := errf(KindGasEstimation, "boom %d", 7)
	assert.Equal(t, "GasEstimationError: boom 7", e.Error())
}
