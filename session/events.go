package session

import (
	"time"

	"github.com/segmentio/ksuid"
)

// MaxEvents bounds the event log. Pushing beyond the bound evicts the oldest
// entries.
const MaxEvents = 50

// Category groups events for filtering.
type Category string

const (
	CategoryConnection   Category = "connection"
	CategorySubmission   Category = "submission"
	CategoryConfirmation Category = "confirmation"
	CategoryFailure      Category = "failure"
)

// Event types emitted by the session and the submission flow.
const (
	EventWalletConnected    = "WALLET_CONNECTED"
	EventWalletDisconnected = "WALLET_DISCONNECTED"
	EventNetwork            = "NETWORK"
	EventBillCreated        = "BILL_CREATED"
	EventPaymentMarked      = "PAYMENT_MARKED"
	EventTxSubmitted        = "TX_SUBMITTED"
	EventTxHash             = "TX_HASH"
	EventTxFailed           = "TX_FAILED"
	EventError              = "ERROR"
)

// Event is one entry in the session's activity log.
type Event struct {
	ID       ksuid.KSUID
	Category Category
	// Type is a stable machine-readable name, e.g. WALLET_CONNECTED.
	Type    string
	Payload string
	At      time.Time
}

// PushEvent records an event, newest first, evicting the oldest entries past
// MaxEvents.
func (s *Session) PushEvent(category Category, eventType, payload string) Event {
	e := Event{
		ID:       ksuid.New(),
		Category: category,
		Type:     eventType,
		Payload:  payload,
		At:       time.Now().UTC(),
	}

	s.mu.Lock()
	s.events = append([]Event{e}, s.events...)
	if len(s.events) > MaxEvents {
		s.events = s.events[:MaxEvents]
	}
	s.mu.Unlock()

	return e
}

// Events returns the event log, newest first.
func (s *Session) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Event, len(s.events))
	copy(out, s.events)

	return out
}

// EventsByCategory returns the events in the given category, newest first.
func (s *Session) EventsByCategory(category Category) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Event
	for _, e := range s.events {
		if e.Category == category {
			out = append(out, e)
		}
	}

	return out
}
