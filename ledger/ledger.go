package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultWagerMultiplier is how many times a deposit must be wagered
// before it can be withdrawn.
const DefaultWagerMultiplier = 50

// WagerRecord tracks the rollover state of one asset.
type WagerRecord struct {
	Deposited decimal.Decimal `json:"deposited"`
	Wagered   decimal.Decimal `json:"wagered"`
}

// Required is the total that must be wagered to unlock withdrawals.
func (w WagerRecord) Required(multiplier int64) decimal.Decimal {
	return w.Deposited.Mul(decimal.NewFromInt(multiplier))
}

// Remaining is what is still to be wagered, never negative.
func (w WagerRecord) Remaining(multiplier int64) decimal.Decimal {
	return decimal.Max(decimal.Zero, w.Required(multiplier).Sub(w.Wagered))
}

// Account is the balance and wager record of one asset.
type Account struct {
	Asset   Asset           `json:"asset"`
	Balance decimal.Decimal `json:"balance"`
	Wager   WagerRecord     `json:"wager"`
}

// Receipt confirms an honoured withdrawal.
type Receipt struct {
	ID          string          `json:"id"`
	Asset       Asset           `json:"asset"`
	Amount      decimal.Decimal `json:"amount"`
	Destination string          `json:"destination"`
	At          time.Time       `json:"at"`
}

// Ledger holds one independent account per supported asset. It is not safe
// for concurrent use; callers serialize access per session.
type Ledger struct {
	accounts   map[Asset]*Account
	prices     PriceTable
	multiplier int64
	now        func() time.Time
}

type Option func(*Ledger)

// WithPrices replaces the default USD price table.
func WithPrices(prices PriceTable) Option {
	return func(l *Ledger) {
		if prices != nil {
			l.prices = prices
		}
	}
}

// WithWagerMultiplier replaces the default rollover multiplier.
func WithWagerMultiplier(multiplier int64) Option {
	return func(l *Ledger) {
		if multiplier > 0 {
			l.multiplier = multiplier
		}
	}
}

// WithClock overrides the time source used on receipts.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// New creates a ledger with a zeroed account for every asset.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		accounts:   make(map[Asset]*Account, len(Assets)),
		prices:     DefaultPrices(),
		multiplier: DefaultWagerMultiplier,
		now:        time.Now,
	}
	for _, a := range Assets {
		l.accounts[a] = &Account{Asset: a}
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Ledger) account(asset Asset) (*Account, error) {
	acc, ok := l.accounts[asset]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAsset, string(asset))
	}
	return acc, nil
}

// Prices returns the price table in use.
func (l *Ledger) Prices() PriceTable {
	return l.prices
}

// Multiplier returns the rollover multiplier in use.
func (l *Ledger) Multiplier() int64 {
	return l.multiplier
}

// Account returns a copy of the asset's account.
func (l *Ledger) Account(asset Asset) (Account, error) {
	acc, err := l.account(asset)
	if err != nil {
		return Account{}, err
	}
	return *acc, nil
}

// Accounts returns a copy of every account in display order.
func (l *Ledger) Accounts() []Account {
	out := make([]Account, 0, len(Assets))
	for _, a := range Assets {
		out = append(out, *l.accounts[a])
	}
	return out
}

// Balance returns the balance of the asset, zero for unknown assets.
func (l *Ledger) Balance(asset Asset) decimal.Decimal {
	acc, err := l.account(asset)
	if err != nil {
		return decimal.Zero
	}
	return acc.Balance
}

// Remaining returns what is still to be wagered on the asset.
func (l *Ledger) Remaining(asset Asset) decimal.Decimal {
	acc, err := l.account(asset)
	if err != nil {
		return decimal.Zero
	}
	return acc.Wager.Remaining(l.multiplier)
}

// Deposit credits the asset and raises its wager requirement.
func (l *Ledger) Deposit(asset Asset, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	acc, err := l.account(asset)
	if err != nil {
		return err
	}

	acc.Balance = acc.Balance.Add(amount)
	acc.Wager.Deposited = acc.Wager.Deposited.Add(amount)
	return nil
}

// Withdraw debits the asset once the wager requirement is met. Checks run
// in a fixed order: amount, destination, rollover, balance.
func (l *Ledger) Withdraw(asset Asset, amount decimal.Decimal, destination string) (Receipt, error) {
	acc, err := l.account(asset)
	if err != nil {
		return Receipt{}, err
	}
	if !amount.IsPositive() {
		return Receipt{}, ErrInvalidAmount
	}
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return Receipt{}, ErrMissingDestination
	}
	if remaining := acc.Wager.Remaining(l.multiplier); remaining.IsPositive() {
		return Receipt{}, &WagerRequirementError{
			Asset:        asset,
			Remaining:    remaining,
			RemainingUSD: l.prices.ToUSD(asset, remaining),
		}
	}
	if amount.GreaterThan(acc.Balance) {
		return Receipt{}, ErrInsufficientBalance
	}

	acc.Balance = acc.Balance.Sub(amount)
	acc.Wager.Deposited = decimal.Max(decimal.Zero, acc.Wager.Deposited.Sub(amount))
	acc.Wager.Wagered = decimal.Max(decimal.Zero, acc.Wager.Wagered.Sub(amount))

	return Receipt{
		ID:          uuid.NewString(),
		Asset:       asset,
		Amount:      amount,
		Destination: destination,
		At:          l.now(),
	}, nil
}

// Stake debits a bet from the asset.
func (l *Ledger) Stake(asset Asset, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	acc, err := l.account(asset)
	if err != nil {
		return err
	}
	if amount.GreaterThan(acc.Balance) {
		return ErrInsufficientBalance
	}
	acc.Balance = acc.Balance.Sub(amount)
	return nil
}

// Credit pays an amount into the asset. Zero is a no-op.
func (l *Ledger) Credit(asset Asset, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	acc, err := l.account(asset)
	if err != nil {
		return err
	}
	acc.Balance = acc.Balance.Add(amount)
	return nil
}

// RecordWager counts a settled bet toward the asset's rollover.
func (l *Ledger) RecordWager(asset Asset, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	acc, err := l.account(asset)
	if err != nil {
		return err
	}
	acc.Wager.Wagered = acc.Wager.Wagered.Add(amount)
	return nil
}
