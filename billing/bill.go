// Package billing holds the in-memory bill model: a split-payment request
// dividing a total amount among participants, with a per-participant paid
// flag. Bills are session-scoped and never persisted.
package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrunalGhorpade13/stellar-split/split"
)

// Currency tags the asset a bill is denominated in.
type Currency string

const (
	// CurrencyXLM is the native asset of the Stellar network.
	CurrencyXLM Currency = "XLM"
	// CurrencyUSDC is the supported stablecoin asset.
	CurrencyUSDC Currency = "USDC"
)

// Bill is a split-payment request. Share is computed once at creation and is
// immutable afterwards, even if the total is later reinterpreted.
type Bill struct {
	ID           uuid.UUID
	Description  string
	Total        decimal.Decimal
	Currency     Currency
	Participants []string
	Share        decimal.Decimal
	CreatedAt    time.Time
	// TxRef is the hash of the ledger transaction that recorded the bill,
	// empty until the creation submission confirms.
	TxRef string

	paid map[string]bool
}

// NewBill creates a bill with an equal share per participant. Participant
// identifiers are kept in caller order; duplicates are not collapsed here,
// they collapse to a single share recipient in the paid mapping.
func NewBill(description string, total decimal.Decimal, currency Currency, participants []string) (*Bill, error) {
	shares, err := split.ComputeShares(total, participants, split.ModeEqual, nil)
	if err != nil {
		return nil, err
	}

	return &Bill{
		ID:           uuid.New(),
		Description:  description,
		Total:        total,
		Currency:     currency,
		Participants: participants,
		Share:        shares[0],
		CreatedAt:    time.Now(),
		paid:         make(map[string]bool),
	}, nil
}

// MarkPaid records that a participant has paid their share. It is idempotent:
// marking an already-paid participant leaves the bill unchanged. It returns
// false when the participant was already paid or does not belong to the bill,
// so callers can gate re-submission on the result.
func (b *Bill) MarkPaid(participant string) bool {
	if !b.HasParticipant(participant) {
		return false
	}
	if b.paid[participant] {
		return false
	}

	b.paid[participant] = true

	return true
}

// IsPaid reports whether a participant has paid their share.
func (b *Bill) IsPaid(participant string) bool {
	return b.paid[participant]
}

// HasParticipant reports whether the participant belongs to the bill.
func (b *Bill) HasParticipant(participant string) bool {
	for _, p := range b.Participants {
		if p == participant {
			return true
		}
	}

	return false
}

// PaidCount returns the number of participants marked paid.
func (b *Bill) PaidCount() int {
	n := 0
	for _, p := range b.Participants {
		if b.paid[p] {
			n++
		}
	}

	return n
}

// Settled reports whether every participant's share is marked paid.
func (b *Bill) Settled() bool {
	return b.PaidCount() == len(b.Participants)
}

// ProgressPct returns the settlement progress as a whole percentage.
func (b *Bill) ProgressPct() int {
	if len(b.Participants) == 0 {
		return 0
	}

	return 100 * b.PaidCount() / len(b.Participants)
}
