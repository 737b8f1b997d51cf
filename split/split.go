// Package split computes per-participant shares for a bill. It is pure: no
// network access, no state, referentially transparent.
package split

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrunalGhorpade13/stellar-split/errclass"
)

// AssetPrecision is the number of fractional digits of the native asset. One
// stroop is 1e-7 XLM, so shares are representable at 7 fractional digits.
const AssetPrecision = 7

// Mode selects how a bill total is divided among participants.
type Mode string

const (
	// ModeEqual divides the total evenly across all participants.
	ModeEqual Mode = "equal"
	// ModeCustom uses caller-supplied per-participant amounts verbatim.
	ModeCustom Mode = "custom"
)

// ComputeShares returns the ordered per-participant shares for the given total.
//
// In equal mode every share is total/count truncated to AssetPrecision digits.
// The truncation remainder is not redistributed, so the sum of shares may fall
// short of the total by up to count-1 stroops.
//
// In custom mode the supplied amounts are returned verbatim; they are not
// required to sum to the total. Callers that need that invariant should check
// SumEquals separately.
func ComputeShares(total decimal.Decimal, participants []string, mode Mode, custom []decimal.Decimal) ([]decimal.Decimal, error) {
	if !total.IsPositive() {
		return nil, errclass.NewValidationError("total amount must be positive")
	}
	if len(participants) == 0 {
		return nil, errclass.NewValidationError("at least one participant is required")
	}

	switch mode {
	case ModeEqual:
		share := total.Div(decimal.NewFromInt(int64(len(participants)))).Truncate(AssetPrecision)

		shares := make([]decimal.Decimal, len(participants))
		for i := range shares {
			shares[i] = share
		}

		return shares, nil

	case ModeCustom:
		if len(custom) != len(participants) {
			return nil, errclass.NewValidationError(
				fmt.Sprintf("custom amounts count %d does not match participant count %d", len(custom), len(participants)),
			)
		}
		for i, amt := range custom {
			if !amt.IsPositive() {
				return nil, errclass.NewValidationError(fmt.Sprintf("custom amount for participant %d must be positive", i))
			}
		}

		shares := make([]decimal.Decimal, len(custom))
		copy(shares, custom)

		return shares, nil

	default:
		return nil, errclass.NewValidationError(fmt.Sprintf("unknown split mode %q", mode))
	}
}

// SumEquals reports whether the shares sum exactly to the total.
func SumEquals(shares []decimal.Decimal, total decimal.Decimal) bool {
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s)
	}

	return sum.Equal(total)
}

// ToStroops converts a lumen-denominated amount to stroops, rounding to the
// nearest stroop.
func ToStroops(amount decimal.Decimal) int64 {
	return amount.Shift(AssetPrecision).Round(0).IntPart()
}

// FromStroops converts a stroop count back to a lumen-denominated amount.
func FromStroops(stroops int64) decimal.Decimal {
	return decimal.NewFromInt(stroops).Shift(-AssetPrecision)
}
