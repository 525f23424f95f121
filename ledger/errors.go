package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrMissingDestination    = errors.New("missing destination address")
	ErrWagerRequirementUnmet = errors.New("wager requirement not met")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrUnknownAsset          = errors.New("unknown asset")
)

// WagerRequirementError reports how much is still to be wagered before a
// withdrawal of the asset is allowed.
type WagerRequirementError struct {
	Asset        Asset
	Remaining    decimal.Decimal
	RemainingUSD decimal.Decimal
}

func (e *WagerRequirementError) Error() string {
	return fmt.Sprintf("%s: wager %s %s more (%s)",
		ErrWagerRequirementUnmet, e.Remaining.String(), e.Asset, FormatUSD(e.RemainingUSD))
}

func (e *WagerRequirementError) Unwrap() error {
	return ErrWagerRequirementUnmet
}
