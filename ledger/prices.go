package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PriceTable maps an asset to its USD rate. It is static for the lifetime
// of a session.
type PriceTable map[Asset]decimal.Decimal

// DefaultPrices returns the built-in USD rates.
func DefaultPrices() PriceTable {
	return PriceTable{
		BTC: decimal.NewFromInt(97000),
		LTC: decimal.NewFromInt(88),
		ETH: decimal.NewFromInt(3600),
		SOL: decimal.NewFromInt(210),
	}
}

// PricesFromMap builds a table from symbol/rate strings, as read from the
// environment. Assets missing from raw keep their default rate.
func PricesFromMap(raw map[string]string) (PriceTable, error) {
	prices := DefaultPrices()
	for symbol, rate := range raw {
		asset, err := ParseAsset(symbol)
		if err != nil {
			return nil, err
		}
		d, err := decimal.NewFromString(rate)
		if err != nil || d.IsNegative() {
			return nil, fmt.Errorf("invalid price for %s: %q", asset, rate)
		}
		prices[asset] = d
	}
	return prices, nil
}

// ToUSD converts an in-asset amount to dollars. Unknown assets are worth 0.
func (p PriceTable) ToUSD(asset Asset, amount decimal.Decimal) decimal.Decimal {
	rate, ok := p[asset]
	if !ok {
		return decimal.Zero
	}
	return amount.Mul(rate)
}

var usdPrinter = message.NewPrinter(language.English)

// FormatUSD renders a dollar amount with two decimals and thousands grouping.
func FormatUSD(usd decimal.Decimal) string {
	return usdPrinter.Sprintf("$%.2f", usd.Round(2).InexactFloat64())
}
