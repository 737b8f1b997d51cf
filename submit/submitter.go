package submit

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrunalGhorpade13/stellar-split/errclass"
	"github.com/MrunalGhorpade13/stellar-split/pkg/logger"
	"github.com/MrunalGhorpade13/stellar-split/stellarnet"
	"github.com/MrunalGhorpade13/stellar-split/wallet"
)

// MinimumReserve is the native-asset balance a source account must exceed
// before a submission is attempted. It approximates the base reserve plus
// fees; the ledger remains the authority and may still reject.
var MinimumReserve = decimal.NewFromInt(1)

// SessionState is the slice of session state the submitter reads: the active
// wallet identity and the most recent balance snapshot. The snapshot may be
// stale by the time the submission reaches the ledger; the pre-flight check
// is advisory only.
type SessionState interface {
	ActiveAddress() (string, bool)
	BalanceSnapshot() *decimal.Decimal
}

// Submitter builds, signs, and broadcasts one logical operation per call.
type Submitter struct {
	session  SessionState
	wallet   wallet.Wallet
	builder  Builder
	endpoint Endpoint
	lggr     logger.Logger
}

// NewSubmitter creates a Submitter. The builder may be nil only when the
// endpoint is simulated, since simulated submissions never sign a payload.
func NewSubmitter(session SessionState, w wallet.Wallet, builder Builder, endpoint Endpoint, lggr logger.Logger) *Submitter {
	return &Submitter{
		session:  session,
		wallet:   w,
		builder:  builder,
		endpoint: endpoint,
		lggr:     lggr.Named("submitter"),
	}
}

// NewSubmitterForNetwork wires a Submitter for the network's mode: contract
// calls against a deployed split contract, or the simulated endpoint when
// none is configured.
func NewSubmitterForNetwork(network *stellarnet.Network, session SessionState, w wallet.Wallet, lggr logger.Logger) *Submitter {
	if network.ContractDeployed() {
		return NewSubmitter(session, w, NewContractBuilder(network), NewHorizonEndpoint(network, lggr), lggr)
	}

	return NewSubmitter(session, w, nil, NewSimulatedEndpoint(0, lggr), lggr)
}

// Submit validates preconditions, builds and signs the payload, and
// broadcasts it. The returned Submission is pending; resolve it with a
// Poller.
func (s *Submitter) Submit(ctx context.Context, op Operation) (*Submission, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	address, ok := s.session.ActiveAddress()
	if !ok {
		return nil, &errclass.NoWalletSessionError{}
	}

	// Pre-flight client-side check against the last balance snapshot. Not
	// authoritative: the ledger may still reject independently.
	if balance := s.session.BalanceSnapshot(); balance != nil && balance.LessThan(MinimumReserve) {
		return nil, &errclass.InsufficientBalanceError{}
	}

	signedXDR := ""
	if !s.endpoint.Simulated() {
		envelope, err := s.builder.BuildTransaction(op, address)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s payload: %w", op.Kind, err)
		}

		signedXDR, err = s.wallet.SignTransaction(ctx, envelope, address)
		if err != nil {
			return nil, errclass.Classify(err)
		}
	}

	handle, err := s.endpoint.Submit(ctx, signedXDR)
	if err != nil {
		return nil, errclass.Classify(err)
	}

	s.lggr.Infow("Submission broadcast",
		"kind", op.Kind, "handle", handle, "simulated", s.endpoint.Simulated())

	return &Submission{
		Op:        op,
		Handle:    handle,
		Status:    StatusPending,
		Simulated: s.endpoint.Simulated(),
	}, nil
}

// Poller returns a Poller over the submitter's endpoint.
func (s *Submitter) Poller(opts ...PollerOption) *Poller {
	return NewPoller(s.endpoint, s.lggr, opts...)
}
