// Package errclass defines the closed set of domain error kinds shared by the
// bill-splitting components, plus a best-effort classifier that maps raw
// failures from wallets and the ledger into that set.
//
// Classification only determines which recovery hint the caller surfaces; it
// never triggers automatic retries.
package errclass

import "fmt"

// ValidationError indicates bad user input. It is recovered locally and blocks
// submission.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// NewValidationError creates a ValidationError with the given reason.
func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

// WalletNotFoundError indicates that no wallet provider is available. Surfaced
// with an install link, not retried.
type WalletNotFoundError struct {
	Msg string
}

func (e *WalletNotFoundError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}

	return "wallet not found, install the extension"
}

// UserRejectedError indicates the user declined the request in their wallet.
// No funds were moved; the user may retry manually.
type UserRejectedError struct{}

func (e *UserRejectedError) Error() string {
	return "request rejected by user, no funds were moved"
}

// InsufficientBalanceError indicates pre-flight or ledger-reported
// underfunding. Surfaced with a funding link.
type InsufficientBalanceError struct{}

func (e *InsufficientBalanceError) Error() string {
	return "insufficient XLM balance to cover fees"
}

// NoWalletSessionError indicates a submission was attempted without a
// connected wallet session.
type NoWalletSessionError struct{}

func (e *NoWalletSessionError) Error() string {
	return "no wallet session, connect a wallet first"
}

// SubmissionRejectedError indicates the ledger rejected the payload
// immediately. Reason carries the endpoint's raw rejection detail.
type SubmissionRejectedError struct {
	Reason string
}

func (e *SubmissionRejectedError) Error() string {
	return fmt.Sprintf("transaction rejected by ledger: %s", e.Reason)
}

// ConfirmationTimeoutError indicates the polling budget was exhausted before
// the submission reached a terminal state. The outcome is unknown, not a
// failure: the operation may still land later, and callers must present it as
// inconclusive.
type ConfirmationTimeoutError struct {
	Attempts uint
}

func (e *ConfirmationTimeoutError) Error() string {
	return fmt.Sprintf("timed out waiting for confirmation after %d attempts, outcome unknown", e.Attempts)
}
