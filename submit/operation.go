// Package submit implements the transaction submission and confirmation
// lifecycle: building a single logical operation, handing it to the wallet
// for signing, broadcasting it, and polling the ledger until the submission
// reaches a terminal state.
package submit

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrunalGhorpade13/stellar-split/errclass"
)

// Kind identifies the logical operation a submission records.
type Kind string

const (
	// KindCreateBill records a new bill on the ledger.
	KindCreateBill Kind = "create-bill"
	// KindMarkPaid records that a participant paid their share.
	KindMarkPaid Kind = "mark-paid"
	// KindSendPayment sends a share as a direct native payment.
	KindSendPayment Kind = "send-payment"
)

// Operation describes one logical ledger operation. Only the fields relevant
// to the Kind are read.
type Operation struct {
	Kind Kind

	// BillRef is the local bill identifier, carried into the ledger entry so
	// off-chain records can be matched to on-chain ones.
	BillRef string

	// create-bill
	Description  string
	TotalStroops int64
	Participants []string

	// mark-paid
	BillLedgerID uint64
	Participant  string

	// mark-paid (payment variant) and send-payment
	Destination string
	Amount      decimal.Decimal
}

// Validate checks the fields required by the operation's kind.
func (o Operation) Validate() error {
	switch o.Kind {
	case KindCreateBill:
		if o.Description == "" {
			return errclass.NewValidationError("bill description is required")
		}
		if o.TotalStroops <= 0 {
			return errclass.NewValidationError("bill total must be positive")
		}
		if len(o.Participants) == 0 {
			return errclass.NewValidationError("at least one participant is required")
		}
	case KindMarkPaid:
		if o.Participant == "" {
			return errclass.NewValidationError("participant is required")
		}
	case KindSendPayment:
		if o.Destination == "" {
			return errclass.NewValidationError("destination is required")
		}
		if !o.Amount.IsPositive() {
			return errclass.NewValidationError("payment amount must be positive")
		}
	default:
		return errclass.NewValidationError(fmt.Sprintf("unknown operation kind %q", o.Kind))
	}

	return nil
}

// Status is the lifecycle state of a submission.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusTimeout Status = "timeout"
)

// Terminal reports whether the status is a terminal state.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusError || s == StatusTimeout
}

// Submission is one attempt to record an operation on the ledger. It is
// created pending by the Submitter and resolved by the Poller.
type Submission struct {
	Op     Operation
	Handle string
	Status Status
	// TxRef is the confirmed transaction hash, present only on success.
	TxRef string
	// FailureDetail carries the ledger's failure code, present only on error.
	FailureDetail string
	// Simulated marks submissions that never reached a real ledger. They must
	// not be presented as genuine confirmations.
	Simulated bool
}

const explorerBaseURL = "https://stellar.expert/explorer/testnet/tx/"

// ExplorerURL returns the block explorer link for the submission's
// transaction, or empty for unresolved and simulated submissions.
func (s *Submission) ExplorerURL() string {
	if s.Simulated || s.TxRef == "" {
		return ""
	}

	return explorerBaseURL + s.TxRef
}
