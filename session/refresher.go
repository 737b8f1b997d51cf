package session

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultRefreshInterval is how often the balance snapshot is refetched while
// a wallet is connected.
const DefaultRefreshInterval = 15 * time.Second

// BalanceSource fetches the native balance for an address. A nil result with
// a nil error means the account is not funded yet.
type BalanceSource interface {
	NativeBalance(address string) (*decimal.Decimal, error)
}

// StartBalanceRefresher fetches the connected wallet's balance immediately and
// then on every interval tick, storing each result as the session's snapshot.
// It runs until Disconnect or until the parent context is canceled. A zero
// interval uses DefaultRefreshInterval.
//
// Fetch failures keep the previous snapshot; a missing account stores nil so
// the pre-flight balance check treats it as unfunded.
func (s *Session) StartBalanceRefresher(ctx context.Context, source BalanceSource, interval time.Duration) {
	if interval == 0 {
		interval = DefaultRefreshInterval
	}

	address, ok := s.ActiveAddress()
	if !ok {
		return
	}

	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.stopRefresher != nil {
		s.stopRefresher()
	}
	s.stopRefresher = cancel
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		s.refreshBalance(address, source)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.refreshBalance(address, source)
			}
		}
	}()
}

func (s *Session) refreshBalance(address string, source BalanceSource) {
	balance, err := source.NativeBalance(address)
	if err != nil {
		s.lggr.Warnw("Balance refresh failed, keeping previous snapshot", "err", err)

		return
	}

	// Drop the result if the session moved on while the fetch was in flight.
	s.mu.Lock()
	if s.identity != nil && s.identity.Address == address {
		s.balance = balance
	}
	s.mu.Unlock()
}
