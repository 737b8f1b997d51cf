package submit

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/stellar/go/clients/horizonclient"

	"github.com/MrunalGhorpade13/stellar-split/errclass"
	"github.com/MrunalGhorpade13/stellar-split/pkg/logger"
	"github.com/MrunalGhorpade13/stellar-split/stellarnet"
)

// TxStatus is the result of one status query for a submission handle.
type TxStatus struct {
	Status Status
	// TxRef is the confirmed transaction hash, set when Status is success.
	TxRef string
	// Detail carries the ledger's failure code, set when Status is error.
	Detail string
}

// StatusSource answers status queries by submission handle. A query may
// legitimately return pending many times before the transaction is found.
type StatusSource interface {
	Status(ctx context.Context, handle string) (TxStatus, error)
}

// Endpoint accepts signed payloads for broadcast and answers status queries.
type Endpoint interface {
	StatusSource

	// Submit broadcasts a signed envelope. It returns an opaque handle for
	// status queries, or errclass.SubmissionRejectedError on immediate
	// rejection.
	Submit(ctx context.Context, signedXDR string) (string, error)

	// Simulated reports whether results from this endpoint are synthetic.
	Simulated() bool
}

// HorizonEndpoint broadcasts through Horizon's async submission endpoint and
// reads status from the transactions endpoint.
type HorizonEndpoint struct {
	horizon horizonclient.ClientInterface
	lggr    logger.Logger
}

var _ Endpoint = (*HorizonEndpoint)(nil)

// NewHorizonEndpoint creates an Endpoint backed by the network's Horizon API.
func NewHorizonEndpoint(network *stellarnet.Network, lggr logger.Logger) *HorizonEndpoint {
	return &HorizonEndpoint{
		horizon: network.Horizon,
		lggr:    lggr.Named("horizon-endpoint"),
	}
}

// Submit broadcasts the signed envelope without waiting for inclusion.
func (e *HorizonEndpoint) Submit(_ context.Context, signedXDR string) (string, error) {
	resp, err := e.horizon.AsyncSubmitTransactionXDR(signedXDR)
	if err != nil {
		return "", &errclass.SubmissionRejectedError{Reason: horizonErrorDetail(err)}
	}

	switch resp.TxStatus {
	case "PENDING", "DUPLICATE":
		e.lggr.Infow("Transaction accepted for broadcast", "hash", resp.Hash, "status", resp.TxStatus)

		return resp.Hash, nil
	case "TRY_AGAIN_LATER":
		return "", &errclass.SubmissionRejectedError{Reason: "ledger is rate limiting, try again later"}
	default:
		reason := resp.ErrorResultXDR
		if reason == "" {
			reason = fmt.Sprintf("status %s", resp.TxStatus)
		}

		return "", &errclass.SubmissionRejectedError{Reason: reason}
	}
}

// Status queries the transaction by hash. A 404 means the transaction has not
// made it into a ledger yet and maps to pending.
func (e *HorizonEndpoint) Status(_ context.Context, handle string) (TxStatus, error) {
	tx, err := e.horizon.TransactionDetail(handle)
	if err != nil {
		if hErr := horizonclient.GetError(err); hErr != nil && hErr.Problem.Status == 404 {
			return TxStatus{Status: StatusPending}, nil
		}

		return TxStatus{}, fmt.Errorf("failed to query transaction %s: %w", handle, err)
	}

	if !tx.Successful {
		return TxStatus{Status: StatusError, Detail: tx.ResultXdr}, nil
	}

	return TxStatus{Status: StatusSuccess, TxRef: tx.Hash}, nil
}

// Simulated is always false for the real ledger.
func (*HorizonEndpoint) Simulated() bool {
	return false
}

// horizonErrorDetail extracts the transaction result codes from a Horizon
// rejection, falling back to the raw error text.
func horizonErrorDetail(err error) string {
	if hErr := horizonclient.GetError(err); hErr != nil {
		resultString, rErr := hErr.ResultString()
		if rErr == nil && resultString != "" {
			return resultString
		}
	}

	return err.Error()
}

// SimulatedEndpoint returns synthetic successes after a fixed delay. It keeps
// the flow demoable while no split contract is deployed; submissions routed
// through it are flagged so they are never mistaken for genuine confirmations.
type SimulatedEndpoint struct {
	delay time.Duration
	lggr  logger.Logger
}

var _ Endpoint = (*SimulatedEndpoint)(nil)

// DefaultSimulatedDelay mimics the broadcast-to-confirmation latency of the
// testnet closely enough for demos.
const DefaultSimulatedDelay = 1800 * time.Millisecond

// NewSimulatedEndpoint creates a simulated Endpoint with the given delay.
// A zero delay uses DefaultSimulatedDelay.
func NewSimulatedEndpoint(delay time.Duration, lggr logger.Logger) *SimulatedEndpoint {
	if delay == 0 {
		delay = DefaultSimulatedDelay
	}

	return &SimulatedEndpoint{
		delay: delay,
		lggr:  lggr.Named("simulated-endpoint"),
	}
}

// Submit waits the configured delay and fabricates a handle.
func (e *SimulatedEndpoint) Submit(ctx context.Context, _ string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(e.delay):
	}

	handle := randomHash()
	e.lggr.Warnw("Simulated submission, no ledger write happened", "handle", handle)

	return handle, nil
}

// Status immediately confirms any handle this endpoint produced.
func (*SimulatedEndpoint) Status(_ context.Context, handle string) (TxStatus, error) {
	return TxStatus{Status: StatusSuccess, TxRef: handle}, nil
}

// Simulated is always true.
func (*SimulatedEndpoint) Simulated() bool {
	return true
}

// randomHash fabricates a 64-character hex string shaped like a transaction
// hash.
func randomHash() string {
	var b [32]byte
	_, _ = rand.Read(b[:])

	return hex.EncodeToString(b[:])
}
