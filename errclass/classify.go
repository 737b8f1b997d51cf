package errclass

import (
	"errors"
	"strings"
)

// Keyword families matched against the lowercased failure message. Matching is
// a heuristic, not authoritative: wallets and Horizon do not share an error
// vocabulary, so we look for the phrases they use in practice.
var (
	notFoundKeywords    = []string{"not found", "install", "no wallet"}
	rejectedKeywords    = []string{"reject", "cancel", "denied", "declined"}
	underfundedKeywords = []string{"balance", "insufficient", "underfunded"}
)

// Classify maps an arbitrary failure into one of the domain error kinds by
// inspecting its message. Errors that already belong to the taxonomy and
// messages matching no keyword family pass through unchanged, preserving the
// original kind and message.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	if isClassified(err) {
		return err
	}

	msg := strings.ToLower(err.Error())

	switch {
	case containsAny(msg, notFoundKeywords):
		return &WalletNotFoundError{Msg: err.Error()}
	case containsAny(msg, rejectedKeywords):
		return &UserRejectedError{}
	case containsAny(msg, underfundedKeywords):
		return &InsufficientBalanceError{}
	default:
		return err
	}
}

func isClassified(err error) bool {
	var (
		validationErr   *ValidationError
		notFoundErr     *WalletNotFoundError
		rejectedErr     *UserRejectedError
		balanceErr      *InsufficientBalanceError
		noSessionErr    *NoWalletSessionError
		submissionErr   *SubmissionRejectedError
		confirmTimedOut *ConfirmationTimeoutError
	)

	return errors.As(err, &validationErr) ||
		errors.As(err, &notFoundErr) ||
		errors.As(err, &rejectedErr) ||
		errors.As(err, &balanceErr) ||
		errors.As(err, &noSessionErr) ||
		errors.As(err, &submissionErr) ||
		errors.As(err, &confirmTimedOut)
}

func containsAny(msg string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}

	return false
}
