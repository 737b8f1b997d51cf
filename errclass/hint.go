package errclass

import "errors"

// Kind returns the normalized tag for a classified error, used to label event
// log entries. Unclassified errors tag as "error".
func Kind(err error) string {
	var (
		validationErr   *ValidationError
		notFoundErr     *WalletNotFoundError
		rejectedErr     *UserRejectedError
		balanceErr      *InsufficientBalanceError
		noSessionErr    *NoWalletSessionError
		submissionErr   *SubmissionRejectedError
		confirmTimedOut *ConfirmationTimeoutError
	)

	switch {
	case errors.As(err, &validationErr):
		return "validation"
	case errors.As(err, &notFoundErr):
		return "wallet_not_found"
	case errors.As(err, &rejectedErr):
		return "user_rejected"
	case errors.As(err, &balanceErr):
		return "insufficient_balance"
	case errors.As(err, &noSessionErr):
		return "no_wallet_session"
	case errors.As(err, &submissionErr):
		return "submission_rejected"
	case errors.As(err, &confirmTimedOut):
		return "confirmation_timeout"
	default:
		return "error"
	}
}

// Recovery destinations surfaced alongside classified errors.
const (
	FreighterInstallURL = "https://freighter.app"
	FriendbotURL        = "https://friendbot.stellar.org"
)

// Hint describes the recovery action the interface should surface for a
// classified error. Action and URL are empty when there is nothing actionable
// beyond dismissing the message.
type Hint struct {
	Title  string
	Action string
	URL    string
}

// HintFor returns the recovery hint for a classified error. Unclassified
// errors get a generic hint with no action.
func HintFor(err error) Hint {
	var (
		notFoundErr     *WalletNotFoundError
		rejectedErr     *UserRejectedError
		balanceErr      *InsufficientBalanceError
		confirmTimedOut *ConfirmationTimeoutError
	)

	switch {
	case errors.As(err, &notFoundErr):
		return Hint{Title: "Wallet Not Found", Action: "Install Freighter", URL: FreighterInstallURL}
	case errors.As(err, &rejectedErr):
		return Hint{Title: "Rejected"}
	case errors.As(err, &balanceErr):
		return Hint{Title: "Low Balance", Action: "Get Testnet XLM", URL: FriendbotURL}
	case errors.As(err, &confirmTimedOut):
		return Hint{Title: "Still Confirming"}
	default:
		return Hint{Title: "Error"}
	}
}
