package events

import (
	"time"

	"github.com/lazharichir/blackjack/cards"
	"github.com/shopspring/decimal"
)

type EventHandler func(event Event)

type Event interface {
	Name() string
}

// Session events
type SessionCreated struct {
	SessionID string    `json:"sessionId"`
	At        time.Time `json:"at"`
}

func (e SessionCreated) Name() string { return "SESSION_CREATED" }

type AssetSelected struct {
	SessionID string    `json:"sessionId"`
	Asset     string    `json:"asset"`
	At        time.Time `json:"at"`
}

func (e AssetSelected) Name() string { return "ASSET_SELECTED" }

type BetChanged struct {
	SessionID string          `json:"sessionId"`
	Asset     string          `json:"asset"`
	Bet       decimal.Decimal `json:"bet"`
	At        time.Time       `json:"at"`
}

func (e BetChanged) Name() string { return "BET_CHANGED" }

// Ledger events
type Deposited struct {
	SessionID string          `json:"sessionId"`
	Asset     string          `json:"asset"`
	Amount    decimal.Decimal `json:"amount"`
	At        time.Time       `json:"at"`
}

func (e Deposited) Name() string { return "DEPOSITED" }

type Withdrawn struct {
	SessionID   string          `json:"sessionId"`
	ReceiptID   string          `json:"receiptId"`
	Asset       string          `json:"asset"`
	Amount      decimal.Decimal `json:"amount"`
	Destination string          `json:"destination"`
	At          time.Time       `json:"at"`
}

func (e Withdrawn) Name() string { return "WITHDRAWN" }

type BalanceChanged struct {
	SessionID string          `json:"sessionId"`
	Asset     string          `json:"asset"`
	Balance   decimal.Decimal `json:"balance"`
	At        time.Time       `json:"at"`
}

func (e BalanceChanged) Name() string { return "BALANCE_CHANGED" }

// Round events
type ShoeReshuffled struct {
	SessionID string    `json:"sessionId"`
	Remaining int       `json:"remaining"`
	At        time.Time `json:"at"`
}

func (e ShoeReshuffled) Name() string { return "SHOE_RESHUFFLED" }

type RoundDealt struct {
	SessionID    string          `json:"sessionId"`
	RoundID      string          `json:"roundId"`
	Asset        string          `json:"asset"`
	Bet          decimal.Decimal `json:"bet"`
	PlayerCards  cards.Stack     `json:"playerCards"`
	DealerUpCard cards.Card      `json:"dealerUpCard"`
	At           time.Time       `json:"at"`
}

func (e RoundDealt) Name() string { return "ROUND_DEALT" }

type PlayerHit struct {
	SessionID string     `json:"sessionId"`
	RoundID   string     `json:"roundId"`
	Card      cards.Card `json:"card"`
	Value     int        `json:"value"`
	At        time.Time  `json:"at"`
}

func (e PlayerHit) Name() string { return "PLAYER_HIT" }

type PlayerStood struct {
	SessionID string    `json:"sessionId"`
	RoundID   string    `json:"roundId"`
	Value     int       `json:"value"`
	At        time.Time `json:"at"`
}

func (e PlayerStood) Name() string { return "PLAYER_STOOD" }

type PlayerDoubled struct {
	SessionID string          `json:"sessionId"`
	RoundID   string          `json:"roundId"`
	Bet       decimal.Decimal `json:"bet"`
	Card      cards.Card      `json:"card"`
	Value     int             `json:"value"`
	At        time.Time       `json:"at"`
}

func (e PlayerDoubled) Name() string { return "PLAYER_DOUBLED" }

type DealerRevealed struct {
	SessionID string     `json:"sessionId"`
	RoundID   string     `json:"roundId"`
	HoleCard  cards.Card `json:"holeCard"`
	Value     int        `json:"value"`
	At        time.Time  `json:"at"`
}

func (e DealerRevealed) Name() string { return "DEALER_REVEALED" }

type DealerDrew struct {
	SessionID string     `json:"sessionId"`
	RoundID   string     `json:"roundId"`
	Card      cards.Card `json:"card"`
	Value     int        `json:"value"`
	At        time.Time  `json:"at"`
}

func (e DealerDrew) Name() string { return "DEALER_DREW" }

type RoundSettled struct {
	SessionID   string          `json:"sessionId"`
	RoundID     string          `json:"roundId"`
	Asset       string          `json:"asset"`
	Outcome     string          `json:"outcome"`
	Bet         decimal.Decimal `json:"bet"`
	Payout      decimal.Decimal `json:"payout"`
	Net         decimal.Decimal `json:"net"`
	PlayerValue int             `json:"playerValue"`
	DealerValue int             `json:"dealerValue"`
	At          time.Time       `json:"at"`
}

func (e RoundSettled) Name() string { return "ROUND_SETTLED" }
