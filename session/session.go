// Package session holds the in-memory record of the currently connected
// wallet identity and its derived state: the balance snapshot, the bills
// created this session, and a bounded event log.
//
// A session exclusively owns its bills and events. It is created on wallet
// connect and cleared entirely on disconnect; bills do not survive a
// disconnect/reconnect cycle.
package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrunalGhorpade13/stellar-split/billing"
	"github.com/MrunalGhorpade13/stellar-split/errclass"
	"github.com/MrunalGhorpade13/stellar-split/pkg/logger"
)

// Identity is the connected wallet identity.
type Identity struct {
	Address  string
	Provider string
}

// Session is the process-wide session state. A mutex guards it because the
// balance refresher writes from its own goroutine; everything else runs on
// the caller's goroutine.
type Session struct {
	mu       sync.Mutex
	identity *Identity
	balance  *decimal.Decimal
	bills    []*billing.Bill
	events   []Event

	stopRefresher func()

	lggr logger.Logger
}

// New creates an empty, disconnected session.
func New(lggr logger.Logger) *Session {
	return &Session{lggr: lggr.Named("session")}
}

// Connect replaces any existing identity and balance snapshot with the given
// identity. No state is merged from a previous connection.
func (s *Session) Connect(identity Identity) {
	s.mu.Lock()
	s.identity = &identity
	s.balance = nil
	s.mu.Unlock()

	s.lggr.Infow("Wallet connected", "provider", identity.Provider, "address", shortAddress(identity.Address))
	s.PushEvent(CategoryConnection, EventWalletConnected, fmt.Sprintf("%s · %s", identity.Provider, shortAddress(identity.Address)))
}

// Disconnect clears the identity, balance, and bill list, and stops the
// balance refresher. The event log survives so the disconnect itself remains
// visible. In-flight confirmation polls are unaffected and still reach a
// terminal state.
func (s *Session) Disconnect() {
	s.mu.Lock()
	stop := s.stopRefresher
	s.stopRefresher = nil
	s.identity = nil
	s.balance = nil
	s.bills = nil
	s.mu.Unlock()

	if stop != nil {
		stop()
	}

	s.lggr.Info("Wallet disconnected")
	s.PushEvent(CategoryConnection, EventWalletDisconnected, "Disconnected")
}

// Identity returns the connected identity, if any.
func (s *Session) Identity() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity == nil {
		return Identity{}, false
	}

	return *s.identity, true
}

// ActiveAddress returns the connected wallet address, if any.
func (s *Session) ActiveAddress() (string, bool) {
	id, ok := s.Identity()

	return id.Address, ok
}

// Connected reports whether a wallet session is active.
func (s *Session) Connected() bool {
	_, ok := s.Identity()

	return ok
}

// BalanceSnapshot returns the most recent balance snapshot, or nil when none
// has been fetched yet or the account is unfunded.
func (s *Session) BalanceSnapshot() *decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.balance
}

// SetBalance stores a new balance snapshot.
func (s *Session) SetBalance(balance *decimal.Decimal) {
	s.mu.Lock()
	s.balance = balance
	s.mu.Unlock()
}

// RecordBill prepends a bill to the session's list, newest first.
func (s *Session) RecordBill(b *billing.Bill) {
	s.mu.Lock()
	s.bills = append([]*billing.Bill{b}, s.bills...)
	s.mu.Unlock()

	s.PushEvent(CategorySubmission, EventBillCreated,
		fmt.Sprintf("%s · %s %s/person", b.Description, b.Share.StringFixed(7), b.Currency))
}

// Bills returns the session's bills, newest first.
func (s *Session) Bills() []*billing.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*billing.Bill, len(s.bills))
	copy(out, s.bills)

	return out
}

// BillCount returns the number of bills created this session.
func (s *Session) BillCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.bills)
}

// FindBill returns the bill with the given ID.
func (s *Session) FindBill(id uuid.UUID) (*billing.Bill, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bills {
		if b.ID == id {
			return b, true
		}
	}

	return nil, false
}

// MarkParticipantPaid marks a participant paid on a bill. It is idempotent:
// marking an already-paid participant changes nothing and returns false, so
// callers can gate ledger re-submission on the result.
func (s *Session) MarkParticipantPaid(id uuid.UUID, participant string) (bool, error) {
	b, ok := s.FindBill(id)
	if !ok {
		return false, fmt.Errorf("bill %s not found", id)
	}

	s.mu.Lock()
	changed := b.MarkPaid(participant)
	s.mu.Unlock()

	if changed {
		s.PushEvent(CategorySubmission, EventPaymentMarked, shortAddress(participant))
	}

	return changed, nil
}

// RecordFailure logs an error to the event log with its normalized kind tag.
// The process never terminates on a domain error; the log entry is the record.
func (s *Session) RecordFailure(err error) Event {
	kind := errclass.Kind(err)
	s.lggr.Errorw("Operation failed", "kind", kind, "err", err)

	return s.PushEvent(CategoryFailure, EventError, fmt.Sprintf("%s: %s", kind, err.Error()))
}

// shortAddress abbreviates a Stellar address for logs and events.
func shortAddress(address string) string {
	if len(address) <= 8 {
		return address
	}

	return address[:8] + "…"
}
