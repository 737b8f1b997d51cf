package submit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/MrunalGhorpade13/stellar-split/errclass"
	"github.com/MrunalGhorpade13/stellar-split/pkg/logger"
)

// Polling defaults: one status query every 2s, 15 queries total. Exceeding
// the budget resolves to timeout, which is inconclusive rather than failed.
const (
	DefaultPollInterval = 2 * time.Second
	DefaultMaxAttempts  = uint(15)
)

// errStillPending drives the retry loop while the status source keeps
// answering pending.
var errStillPending = errors.New("transaction still pending")

// Confirmation is the terminal resolution of a submission.
type Confirmation struct {
	Status Status
	// TxRef is set when Status is success.
	TxRef string
	// Detail carries the failure code when Status is error.
	Detail string
	// Queries is the number of status queries performed.
	Queries uint
}

// Poller resolves a submission handle to a terminal status by querying a
// status source on a fixed interval.
//
// Once started, a poll sequence runs to a terminal state or timeout; callers
// may stop observing the result without affecting correctness.
type Poller struct {
	source   StatusSource
	interval time.Duration
	attempts uint
	lggr     logger.Logger
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithInterval overrides the delay between status queries.
func WithInterval(interval time.Duration) PollerOption {
	return func(p *Poller) {
		p.interval = interval
	}
}

// WithAttempts overrides the total status-query budget.
func WithAttempts(attempts uint) PollerOption {
	return func(p *Poller) {
		p.attempts = attempts
	}
}

// NewPoller creates a Poller over the given status source.
func NewPoller(source StatusSource, lggr logger.Logger, opts ...PollerOption) *Poller {
	p := &Poller{
		source:   source,
		interval: DefaultPollInterval,
		attempts: DefaultMaxAttempts,
		lggr:     lggr.Named("poller"),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Confirm polls until the submission reaches a terminal state or the attempt
// budget is exhausted.
//
// On success the returned error is nil and the Confirmation carries the
// transaction reference. On a ledger failure the Confirmation carries the
// failure detail and the error describes it. On budget exhaustion the error
// is errclass.ConfirmationTimeoutError: the outcome is unknown and the
// operation may still land later.
func (p *Poller) Confirm(ctx context.Context, handle string) (Confirmation, error) {
	var (
		result  TxStatus
		queries uint
	)

	err := retry.Do(
		func() error {
			queries++

			st, qerr := p.source.Status(ctx, handle)
			if qerr != nil {
				// Transient query failure: stay pending and keep polling.
				p.lggr.Warnw("Status query failed", "handle", handle, "attempt", queries, "err", qerr)

				return qerr
			}

			if st.Status == StatusPending {
				return errStillPending
			}

			result = st

			return nil
		},
		retry.Context(ctx),
		retry.Attempts(p.attempts),
		retry.Delay(p.interval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)

	if err != nil {
		if ctx.Err() != nil {
			return Confirmation{Status: StatusTimeout, Queries: queries}, fmt.Errorf("confirmation interrupted: %w", ctx.Err())
		}

		p.lggr.Warnw("Confirmation budget exhausted, outcome unknown", "handle", handle, "queries", queries)

		return Confirmation{Status: StatusTimeout, Queries: queries}, &errclass.ConfirmationTimeoutError{Attempts: queries}
	}

	if result.Status == StatusError {
		p.lggr.Errorw("Transaction failed on ledger", "handle", handle, "detail", result.Detail)

		return Confirmation{Status: StatusError, Detail: result.Detail, Queries: queries},
			fmt.Errorf("transaction failed: %s", result.Detail)
	}

	p.lggr.Infow("Transaction confirmed", "handle", handle, "tx", result.TxRef, "queries", queries)

	return Confirmation{Status: StatusSuccess, TxRef: result.TxRef, Queries: queries}, nil
}

// Resolve runs Confirm and applies the terminal state to the submission.
func (p *Poller) Resolve(ctx context.Context, sub *Submission) error {
	confirmation, err := p.Confirm(ctx, sub.Handle)

	sub.Status = confirmation.Status
	sub.TxRef = confirmation.TxRef
	sub.FailureDetail = confirmation.Detail

	return err
}
