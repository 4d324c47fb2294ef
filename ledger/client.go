package ledger

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"strconv"
	"strings"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/crimechain/report-api/models"
)

// Client speaks to the deployed report contract over JSON-RPC. A single
// instance is shared by all in-flight requests; every field is set once in
// New and read-only afterwards, so concurrent use is safe.
type Client struct {
	rpc      *rpc.Client
	eth      *ethclient.Client
	abi      abi.ABI
	caps     capabilities
	contract common.Address
	sender   common.Address
	key      *ecdsa.PrivateKey
	timeout  time.Duration

	// initErr captures construction failures. They surface only when an
	// operation is attempted, so the process can still start and serve
	// database-only traffic while the ledger is misconfigured or down.
	initErr *Error
}

// New builds a ledger client from config. It never fails hard; any
// initialization problem is held until the first operation.
func New(cfg Config) *Client {
	c := &Client{timeout: cfg.Timeout}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}

	parsed, err := loadABI(cfg.ABIPath)
	if err != nil {
		c.initErr = errf(KindConfiguration, "failed to load contract ABI: %v", err)
		zap.S().Errorw("ledger client init failed", "error", c.initErr)
		return c
	}
	c.abi = parsed
	c.caps = resolveCapabilities(parsed)

	if cfg.ContractAddress == "" {
		c.initErr = errf(KindConfiguration, "CONTRACT_ADDRESS not set")
		zap.S().Errorw("ledger client init failed", "error", c.initErr)
		return c
	}
	if cfg.AdminAccount == "" {
		c.initErr = errf(KindConfiguration, "ADMIN_ACCOUNT not set")
		zap.S().Errorw("ledger client init failed", "error", c.initErr)
		return c
	}
	c.contract = common.HexToAddress(cfg.ContractAddress)

	if cfg.SigningKey != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.SigningKey, "0x"))
		if err != nil {
			c.initErr = errf(KindConfiguration, "invalid SIGNING_KEY: %v", err)
			zap.S().Errorw("ledger client init failed", "error", c.initErr)
			return c
		}
		c.key = key
		c.sender = crypto.PubkeyToAddress(key.PublicKey)
	} else {
		c.sender = common.HexToAddress(cfg.AdminAccount)
	}

	nodeURL := cfg.NodeURL
	if nodeURL == "" {
		nodeURL = "http://localhost:8545"
	}
	rpcClient, err := rpc.Dial(nodeURL)
	if err != nil {
		c.initErr = errf(KindConnectivity, "failed to dial ledger node %s: %v", nodeURL, err)
		zap.S().Errorw("ledger client init failed", "error", c.initErr)
		return c
	}
	c.rpc = rpcClient
	c.eth = ethclient.NewClient(rpcClient)

	zap.S().Infow("ledger client initialized",
		"node", nodeURL,
		"contract", c.contract.Hex(),
		"sender", c.sender.Hex(),
		"selfSigning", c.key != nil,
		"statusMethod", c.caps.statusMethod,
		"reportMethod", c.caps.reportMethod,
		"countMethod", c.caps.countMethod,
	)
	return c
}

// SubmitReport records a new report on the ledger and resolves the
// ledger-assigned id from the ReportSubmitted event.
func (c *Client) SubmitReport(ctx context.Context, title, reportType, description, location string, evidenceHashes []string, timestamp int64) SubmitResult {
	if c.initErr != nil {
		return SubmitResult{Err: c.initErr}
	}
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	if lerr := c.checkConnectivity(ctx); lerr != nil {
		return SubmitResult{Err: lerr}
	}

	if evidenceHashes == nil {
		evidenceHashes = []string{}
	}

	balance, err := c.eth.BalanceAt(ctx, c.sender, nil)
	if err != nil {
		return SubmitResult{Err: classify(err, KindConnectivity, "failed to read sender balance")}
	}
	if balance.Sign() == 0 {
		return SubmitResult{Err: errf(KindTransaction, "account %s has no funds for gas", c.sender.Hex())}
	}

	input, err := c.abi.Pack("submitReport", title, reportType, description, location, evidenceHashes, big.NewInt(timestamp))
	if err != nil {
		return SubmitResult{Err: errf(KindTransaction, "failed to encode submitReport call: %v", err)}
	}

	txHash, lerr := c.transact(ctx, input)
	if lerr != nil {
		return SubmitResult{Err: lerr}
	}

	receipt, lerr := c.waitMined(ctx, txHash)
	if lerr != nil {
		return SubmitResult{Err: lerr}
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return SubmitResult{Err: errf(KindTransaction, "transaction %s reverted", txHash.Hex())}
	}

	reportID := c.reportIDFromLogs(receipt.Logs)
	if reportID == "" {
		// Last resort. Two submissions in the same instant can collide on
		// this id, and the scheduler cannot correct it later, so make the
		// degradation impossible to miss.
		reportID = strconv.FormatInt(time.Now().UnixMilli(), 10)
		zap.S().Errorw("no ReportSubmitted event found, using timestamp-derived placeholder report id",
			"txHash", txHash.Hex(),
			"reportId", reportID,
		)
	}

	return SubmitResult{Success: true, TransactionHash: txHash.Hex(), ReportID: reportID}
}

// UpdateStatus mirrors a workflow status change onto the ledger
func (c *Client) UpdateStatus(ctx context.Context, reportID, status string) UpdateResult {
	if c.initErr != nil {
		return UpdateResult{Err: c.initErr}
	}
	if c.caps.statusMethod == "" {
		return UpdateResult{Err: errf(KindConfiguration, "contract exposes no status update method")}
	}
	id, ok := new(big.Int).SetString(reportID, 10)
	if !ok {
		return UpdateResult{Err: errf(KindTransaction, "invalid ledger report id %q", reportID)}
	}
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	input, err := c.abi.Pack(c.caps.statusMethod, id, status)
	if err != nil {
		return UpdateResult{Err: errf(KindTransaction, "failed to encode %s call: %v", c.caps.statusMethod, err)}
	}

	txHash, lerr := c.transact(ctx, input)
	if lerr != nil {
		return UpdateResult{Err: lerr}
	}
	receipt, lerr := c.waitMined(ctx, txHash)
	if lerr != nil {
		return UpdateResult{Err: lerr}
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return UpdateResult{Err: errf(KindTransaction, "transaction %s reverted", txHash.Hex())}
	}
	return UpdateResult{Success: true, TransactionHash: txHash.Hex()}
}

// GetReport reads a single report from the contract
func (c *Client) GetReport(ctx context.Context, reportID string) ReportResult {
	if c.initErr != nil {
		return ReportResult{Err: c.initErr}
	}
	if c.caps.reportMethod == "" {
		return ReportResult{Err: errf(KindConfiguration, "contract exposes no report retrieval method")}
	}
	id, ok := new(big.Int).SetString(reportID, 10)
	if !ok {
		return ReportResult{Err: errf(KindNotFound, "invalid ledger report id %q", reportID)}
	}
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	vals, lerr := c.call(ctx, c.caps.reportMethod, id)
	if lerr != nil {
		return ReportResult{Err: lerr}
	}
	report, lerr := c.decodeReport(reportID, vals)
	if lerr != nil {
		return ReportResult{Err: lerr}
	}
	return ReportResult{Success: true, Report: report}
}

// decodeReport maps unpacked contract outputs onto a LedgerReport. Every
// assertion is checked: an operator-supplied ABI override can declare the
// same method names with skewed output types, and that must surface as a
// TransactionError, never a panic.
func (c *Client) decodeReport(reportID string, vals []interface{}) (*models.LedgerReport, *Error) {
	report := &models.LedgerReport{ID: reportID}
	if c.caps.reportMethod == "getReport" {
		// (id, title, reportType, description, location, evidenceHashes, timestamp, reporter, status)
		if len(vals) != 9 {
			return nil, errf(KindTransaction, "unexpected getReport output arity %d", len(vals))
		}
		id, okID := vals[0].(*big.Int)
		ts, okTS := vals[6].(*big.Int)
		reporter, okRep := vals[7].(common.Address)
		if !okID || !okTS || !okRep {
			return nil, errf(KindTransaction, "unexpected getReport output types (%T, %T, %T)", vals[0], vals[6], vals[7])
		}
		report.ID = id.String()
		report.Title, _ = vals[1].(string)
		report.ReportType, _ = vals[2].(string)
		report.Description, _ = vals[3].(string)
		report.Location, _ = vals[4].(string)
		report.EvidenceHashes, _ = vals[5].([]string)
		report.Timestamp = ts.String()
		report.Reporter = reporter.Hex()
		report.Status, _ = vals[8].(string)
	} else {
		// reports accessor: (title, reportType, description, location, timestamp, reporter, status).
		// Dynamic arrays are not exposed by public mapping accessors, so the
		// hash list stays empty on this path.
		if len(vals) != 7 {
			return nil, errf(KindTransaction, "unexpected reports output arity %d", len(vals))
		}
		ts, okTS := vals[4].(*big.Int)
		reporter, okRep := vals[5].(common.Address)
		if !okTS || !okRep {
			return nil, errf(KindTransaction, "unexpected reports output types (%T, %T)", vals[4], vals[5])
		}
		report.Title, _ = vals[0].(string)
		report.ReportType, _ = vals[1].(string)
		report.Description, _ = vals[2].(string)
		report.Location, _ = vals[3].(string)
		report.EvidenceHashes = []string{}
		report.Timestamp = ts.String()
		report.Reporter = reporter.Hex()
		report.Status, _ = vals[6].(string)
	}
	if report.EvidenceHashes == nil {
		report.EvidenceHashes = []string{}
	}
	if report.Status == "" {
		report.Status = models.StatusSubmitted
	}
	return report, nil
}

// GetUserReports lists the ledger report ids submitted by a wallet address
func (c *Client) GetUserReports(ctx context.Context, address string) UserReportsResult {
	if c.initErr != nil {
		return UserReportsResult{Err: c.initErr}
	}
	if _, ok := c.abi.Methods["getUserReports"]; !ok {
		return UserReportsResult{Err: errf(KindConfiguration, "contract does not support getUserReports")}
	}
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	vals, lerr := c.call(ctx, "getUserReports", common.HexToAddress(address))
	if lerr != nil {
		return UserReportsResult{Err: lerr}
	}
	ids, lerr := decodeReportIDs(vals)
	if lerr != nil {
		return UserReportsResult{Err: lerr}
	}
	return UserReportsResult{Success: true, ReportIDs: ids}
}

func decodeReportIDs(vals []interface{}) ([]string, *Error) {
	if len(vals) != 1 {
		return nil, errf(KindTransaction, "unexpected getUserReports output arity %d", len(vals))
	}
	raw, ok := vals[0].([]*big.Int)
	if !ok {
		return nil, errf(KindTransaction, "unexpected getUserReports output type %T", vals[0])
	}
	ids := make([]string, 0, len(raw))
	for _, id := range raw {
		ids = append(ids, id.String())
	}
	return ids, nil
}

// GetReportCount reads the total number of reports on the ledger
func (c *Client) GetReportCount(ctx context.Context) CountResult {
	if c.initErr != nil {
		return CountResult{Err: c.initErr}
	}
	if c.caps.countMethod == "" {
		return CountResult{Err: errf(KindConfiguration, "contract does not support report counting")}
	}
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	vals, lerr := c.call(ctx, c.caps.countMethod)
	if lerr != nil {
		return CountResult{Err: lerr}
	}
	count, lerr := c.decodeCount(vals)
	if lerr != nil {
		return CountResult{Err: lerr}
	}
	return CountResult{Success: true, Count: count}
}

func (c *Client) decodeCount(vals []interface{}) (string, *Error) {
	if len(vals) != 1 {
		return "", errf(KindTransaction, "unexpected %s output arity %d", c.caps.countMethod, len(vals))
	}
	count, ok := vals[0].(*big.Int)
	if !ok {
		return "", errf(KindTransaction, "unexpected %s output type %T", c.caps.countMethod, vals[0])
	}
	return count.String(), nil
}

// ResolveReportID extracts the ledger-assigned report id from the receipt of
// a confirmed submission transaction. Used by the scheduler to backfill ids
// for rows persisted before the event decode succeeded, and for
// client-submitted transactions the API never saw confirm.
func (c *Client) ResolveReportID(ctx context.Context, txHash string) ResolveResult {
	if c.initErr != nil {
		return ResolveResult{Err: c.initErr}
	}
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	receipt, err := c.eth.TransactionReceipt(ctx, common.HexToHash(txHash))
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return ResolveResult{Err: errf(KindNotFound, "transaction %s not yet mined", txHash)}
		}
		return ResolveResult{Err: classify(err, KindConnectivity, "failed to fetch receipt")}
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return ResolveResult{Err: errf(KindTransaction, "transaction %s reverted", txHash)}
	}
	id := c.reportIDFromLogs(receipt.Logs)
	if id == "" {
		return ResolveResult{Err: errf(KindNotFound, "no ReportSubmitted event in transaction %s", txHash)}
	}
	return ResolveResult{Success: true, ReportID: id}
}

func (c *Client) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, c.timeout)
}

// checkConnectivity verifies the node answers and that contract code exists
// at the configured address before any gas is spent.
func (c *Client) checkConnectivity(ctx context.Context) *Error {
	chainID, err := c.eth.ChainID(ctx)
	if err != nil {
		return classify(err, KindConnectivity, "ledger node unreachable")
	}
	zap.S().Debugw("connected to ledger network", "chainId", chainID.String())

	code, err := c.eth.CodeAt(ctx, c.contract, nil)
	if err != nil {
		return classify(err, KindConnectivity, "failed to read contract code")
	}
	if len(code) == 0 {
		return errf(KindConnectivity, "no contract code at address %s", c.contract.Hex())
	}
	return nil
}

// transact estimates gas for input, pads the estimate by 50% and submits the
// transaction, self-signing when a key is configured and otherwise deferring
// to the node-managed admin account.
func (c *Client) transact(ctx context.Context, input []byte) (common.Hash, *Error) {
	gas, err := c.eth.EstimateGas(ctx, ethereum.CallMsg{
		From: c.sender,
		To:   &c.contract,
		Data: input,
	})
	if err != nil {
		return common.Hash{}, classify(err, KindGasEstimation, "gas estimation failed")
	}
	gasLimit := gas + gas/2

	if c.key == nil {
		var txHash common.Hash
		err := c.rpc.CallContext(ctx, &txHash, "eth_sendTransaction", map[string]interface{}{
			"from": c.sender,
			"to":   c.contract,
			"gas":  hexutil.Uint64(gasLimit),
			"data": hexutil.Bytes(input),
		})
		if err != nil {
			return common.Hash{}, classify(err, KindTransaction, "transaction submission failed")
		}
		return txHash, nil
	}

	chainID, err := c.eth.ChainID(ctx)
	if err != nil {
		return common.Hash{}, classify(err, KindConnectivity, "failed to read chain id")
	}
	nonce, err := c.eth.PendingNonceAt(ctx, c.sender)
	if err != nil {
		return common.Hash{}, classify(err, KindTransaction, "failed to read account nonce")
	}
	gasPrice, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, classify(err, KindTransaction, "failed to read gas price")
	}
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &c.contract,
		Value:    big.NewInt(0),
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     input,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), c.key)
	if err != nil {
		return common.Hash{}, errf(KindTransaction, "failed to sign transaction: %v", err)
	}
	if err := c.eth.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, classify(err, KindTransaction, "transaction submission failed")
	}
	return signed.Hash(), nil
}

// waitMined polls for the transaction receipt until the op deadline
func (c *Client) waitMined(ctx context.Context, txHash common.Hash) (*types.Receipt, *Error) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for {
		receipt, err := c.eth.TransactionReceipt(ctx, txHash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, classify(err, KindConnectivity, "failed to fetch receipt")
		}
		select {
		case <-ctx.Done():
			return nil, errf(KindNetworkTimeout, "timed out waiting for transaction %s to be mined", txHash.Hex())
		case <-ticker.C:
		}
	}
}

// call performs a read-only contract call and unpacks its outputs
func (c *Client) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, *Error) {
	input, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, errf(KindTransaction, "failed to encode %s call: %v", method, err)
	}
	out, err := c.eth.CallContract(ctx, ethereum.CallMsg{To: &c.contract, Data: input}, nil)
	if err != nil {
		return nil, classify(err, KindConnectivity, method+" call failed")
	}
	vals, err := c.abi.Unpack(method, out)
	if err != nil {
		return nil, errf(KindTransaction, "failed to decode %s output: %v", method, err)
	}
	return vals, nil
}

// reportIDFromLogs resolves the ledger-assigned id, first from the parsed
// ReportSubmitted event, then by matching the raw topic hash.
func (c *Client) reportIDFromLogs(logs []*types.Log) string {
	if ev, ok := c.abi.Events["ReportSubmitted"]; ok {
		for _, l := range logs {
			if len(l.Topics) >= 2 && l.Topics[0] == ev.ID {
				return new(big.Int).SetBytes(l.Topics[1].Bytes()).String()
			}
		}
	}
	sig := crypto.Keccak256Hash([]byte(reportSubmittedSig))
	for _, l := range logs {
		if len(l.Topics) >= 2 && l.Topics[0] == sig {
			zap.S().Debugw("decoded report id from raw log topics", "txHash", l.TxHash.Hex())
			return new(big.Int).SetBytes(l.Topics[1].Bytes()).String()
		}
	}
	return ""
}

// classify wraps a low-level error with a kind, promoting context expiry to
// the NetworkTimeout kind.
func classify(err error, kind Kind, msg string) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errf(KindNetworkTimeout, "%s: %v", msg, err)
	}
	return errf(kind, "%s: %v", msg, err)
}
