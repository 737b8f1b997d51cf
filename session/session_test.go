package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrunalGhorpade13/stellar-split/billing"
	"github.com/MrunalGhorpade13/stellar-split/errclass"
	"github.com/MrunalGhorpade13/stellar-split/pkg/logger"
)

const (
	testAddress      = "GDQNY3PBOJOKYZSRMK2S7LHHGWZIUISD4QORETLMXEWXBI7KFZZMKTL3"
	testParticipantA = "GBRPYHIL2CI3FNQ4BXLFMNDLFJUNPU2HY3ZMFSHONUCEOASW7QC7OX2H"
	testParticipantB = "GAS4V4O2B7DW5T7IQRPEEVCRXMDZESKISR7DVIGKZQYYV3OSQ5SH5LVP"
)

func testBill(t *testing.T) *billing.Bill {
	t.Helper()

	b, err := billing.NewBill("Team dinner", decimal.NewFromInt(100), billing.CurrencyXLM,
		[]string{testParticipantA, testParticipantB})
	require.NoError(t, err)

	return b
}

func Test_Session_ConnectDisconnect(t *testing.T) {
	t.Parallel()

	s := New(logger.Test(t))

	_, ok := s.Identity()
	assert.False(t, ok)
	assert.False(t, s.Connected())

	s.Connect(Identity{Address: testAddress, Provider: "freighter"})

	id, ok := s.Identity()
	require.True(t, ok)
	assert.Equal(t, testAddress, id.Address)
	assert.Equal(t, "freighter", id.Provider)
	assert.True(t, s.Connected())

	addr, ok := s.ActiveAddress()
	require.True(t, ok)
	assert.Equal(t, testAddress, addr)

	s.Disconnect()

	_, ok = s.ActiveAddress()
	assert.False(t, ok)
	assert.Nil(t, s.BalanceSnapshot())
}

func Test_Session_DisconnectClearsBillsAndBalance(t *testing.T) {
	t.Parallel()

	s := New(logger.Test(t))
	s.Connect(Identity{Address: testAddress, Provider: "freighter"})

	balance := decimal.RequireFromString("42.5")
	s.SetBalance(&balance)
	s.RecordBill(testBill(t))
	require.Equal(t, 1, s.BillCount())

	s.Disconnect()

	assert.Zero(t, s.BillCount())
	assert.Empty(t, s.Bills())
	assert.Nil(t, s.BalanceSnapshot())

	// The event log survives the disconnect.
	events := s.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, EventWalletDisconnected, events[0].Type)
}

func Test_Session_ReconnectStartsFresh(t *testing.T) {
	t.Parallel()

	s := New(logger.Test(t))
	s.Connect(Identity{Address: testAddress, Provider: "freighter"})
	s.RecordBill(testBill(t))
	s.Disconnect()

	s.Connect(Identity{Address: testParticipantA, Provider: "albedo"})

	assert.Zero(t, s.BillCount())
	assert.Nil(t, s.BalanceSnapshot())

	id, ok := s.Identity()
	require.True(t, ok)
	assert.Equal(t, testParticipantA, id.Address)
}

func Test_Session_FindBill(t *testing.T) {
	t.Parallel()

	s := New(logger.Test(t))
	s.Connect(Identity{Address: testAddress, Provider: "freighter"})

	b := testBill(t)
	s.RecordBill(b)

	got, ok := s.FindBill(b.ID)
	require.True(t, ok)
	assert.Same(t, b, got)

	other := testBill(t)
	_, ok = s.FindBill(other.ID)
	assert.False(t, ok)
}

func Test_Session_Bills_NewestFirst(t *testing.T) {
	t.Parallel()

	s := New(logger.Test(t))
	s.Connect(Identity{Address: testAddress, Provider: "freighter"})

	first := testBill(t)
	second := testBill(t)
	s.RecordBill(first)
	s.RecordBill(second)

	bills := s.Bills()
	require.Len(t, bills, 2)
	assert.Same(t, second, bills[0])
	assert.Same(t, first, bills[1])
}

func Test_Session_MarkParticipantPaid(t *testing.T) {
	t.Parallel()

	s := New(logger.Test(t))
	s.Connect(Identity{Address: testAddress, Provider: "freighter"})

	b := testBill(t)
	s.RecordBill(b)

	changed, err := s.MarkParticipantPaid(b.ID, testParticipantA)
	require.NoError(t, err)
	assert.True(t, changed)

	// Marking again is a no-op so callers do not resubmit to the ledger.
	changed, err = s.MarkParticipantPaid(b.ID, testParticipantA)
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = s.MarkParticipantPaid(testBill(t).ID, testParticipantA)
	require.Error(t, err)
	assert.ErrorContains(t, err, "not found")
}

func Test_Session_EventLogBounded(t *testing.T) {
	t.Parallel()

	s := New(logger.Test(t))

	for i := 0; i < MaxEvents+10; i++ {
		s.PushEvent(CategorySubmission, EventBillCreated, fmt.Sprintf("bill %d", i))
	}

	events := s.Events()
	require.Len(t, events, MaxEvents)

	// Newest first: the last push is at the head, the first ten are evicted.
	assert.Equal(t, fmt.Sprintf("bill %d", MaxEvents+9), events[0].Payload)
	assert.Equal(t, "bill 10", events[len(events)-1].Payload)
}

func Test_Session_EventsByCategory(t *testing.T) {
	t.Parallel()

	s := New(logger.Test(t))
	s.PushEvent(CategorySubmission, EventBillCreated, "dinner")
	s.PushEvent(CategoryFailure, EventTxFailed, "tx_insufficient_balance")
	s.PushEvent(CategorySubmission, EventPaymentMarked, "GBRPYHIL…")

	failures := s.EventsByCategory(CategoryFailure)
	require.Len(t, failures, 1)
	assert.Equal(t, EventTxFailed, failures[0].Type)

	submissions := s.EventsByCategory(CategorySubmission)
	assert.Len(t, submissions, 2)
}

func Test_Session_RecordFailure(t *testing.T) {
	t.Parallel()

	s := New(logger.Test(t))

	e := s.RecordFailure(&errclass.InsufficientBalanceError{})
	assert.Equal(t, CategoryFailure, e.Category)
	assert.Equal(t, EventError, e.Type)
	assert.Contains(t, e.Payload, "insufficient_balance")

	failures := s.EventsByCategory(CategoryFailure)
	require.Len(t, failures, 1)
}

type fakeBalanceSource struct {
	mu      sync.Mutex
	calls   int
	balance decimal.Decimal
	err     error
}

func (f *fakeBalanceSource) NativeBalance(string) (*decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	b := f.balance

	return &b, nil
}

func (f *fakeBalanceSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls
}

func Test_Session_BalanceRefresher(t *testing.T) {
	t.Parallel()

	s := New(logger.Test(t))
	s.Connect(Identity{Address: testAddress, Provider: "freighter"})

	source := &fakeBalanceSource{balance: decimal.RequireFromString("99.75")}
	s.StartBalanceRefresher(t.Context(), source, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		b := s.BalanceSnapshot()

		return b != nil && b.Equal(decimal.RequireFromString("99.75"))
	}, time.Second, time.Millisecond)

	require.Eventually(t, func() bool {
		return source.callCount() >= 3
	}, time.Second, time.Millisecond)

	s.Disconnect()
	assert.Nil(t, s.BalanceSnapshot())

	// No more fetches once disconnected.
	calls := source.callCount()
	time.Sleep(30 * time.Millisecond)
	assert.LessOrEqual(t, source.callCount(), calls+1)
}

func Test_Session_BalanceRefresher_KeepsSnapshotOnError(t *testing.T) {
	t.Parallel()

	s := New(logger.Test(t))
	s.Connect(Identity{Address: testAddress, Provider: "freighter"})

	balance := decimal.NewFromInt(10)
	s.SetBalance(&balance)

	source := &fakeBalanceSource{err: fmt.Errorf("horizon unavailable")}
	s.StartBalanceRefresher(t.Context(), source, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		return source.callCount() >= 2
	}, time.Second, time.Millisecond)

	got := s.BalanceSnapshot()
	require.NotNil(t, got)
	assert.True(t, got.Equal(decimal.NewFromInt(10)))
}

func Test_Session_BalanceRefresher_NotConnected(t *testing.T) {
	t.Parallel()

	s := New(logger.Test(t))
	source := &fakeBalanceSource{}
	s.StartBalanceRefresher(context.Background(), source, time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, source.callCount())
}
