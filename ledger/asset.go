package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Asset is a currency the player can hold and wager.
type Asset string

const (
	BTC Asset = "BTC"
	LTC Asset = "LTC"
	ETH Asset = "ETH"
	SOL Asset = "SOL"
)

// Assets lists every supported asset in display order.
var Assets = []Asset{BTC, LTC, ETH, SOL}

// ParseAsset maps a symbol such as "btc" to an Asset.
func ParseAsset(s string) (Asset, error) {
	a := Asset(strings.ToUpper(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAsset, s)
	}
	return a, nil
}

// Valid reports whether the asset is supported.
func (a Asset) Valid() bool {
	for _, candidate := range Assets {
		if a == candidate {
			return true
		}
	}
	return false
}

// MinUnit is the smallest stake the table accepts.
var MinUnit = decimal.RequireFromString("0.001")

// ParseAmount reads a user-entered amount. Anything that is not a
// positive number is rejected with ErrInvalidAmount.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}
