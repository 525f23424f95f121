package domain

import (
	"github.com/lazharichir/blackjack/cards"
	"github.com/lazharichir/blackjack/domain/hands"
	"github.com/lazharichir/blackjack/ledger"
	"github.com/shopspring/decimal"
)

// Snapshot is a read-only view of a game returned by every command.
type Snapshot struct {
	SessionID     string          `json:"sessionId"`
	Phase         Phase           `json:"phase"`
	Asset         ledger.Asset    `json:"asset"`
	Bet           decimal.Decimal `json:"bet"`
	MinBet        decimal.Decimal `json:"minBet"`
	Accounts      []AccountView   `json:"accounts"`
	ShoeRemaining int             `json:"shoeRemaining"`
	Round         *RoundView      `json:"round,omitempty"`
	Message       string          `json:"message,omitempty"`
	History       []HistoryEntry  `json:"history"`
	Stats         Stats           `json:"stats"`
	Sparkline     []SparkPoint    `json:"sparkline"`
}

// AccountView is the ledger state of one asset with its rollover progress.
type AccountView struct {
	Asset        ledger.Asset    `json:"asset"`
	Balance      decimal.Decimal `json:"balance"`
	BalanceUSD   decimal.Decimal `json:"balanceUsd"`
	Deposited    decimal.Decimal `json:"deposited"`
	Wagered      decimal.Decimal `json:"wagered"`
	Required     decimal.Decimal `json:"required"`
	Remaining    decimal.Decimal `json:"remaining"`
	RemainingUSD decimal.Decimal `json:"remainingUsd"`
}

// RoundView is the player's view of the current round. The dealer's hole
// card stays face down until it is revealed.
type RoundView struct {
	ID           string          `json:"id"`
	Bet          decimal.Decimal `json:"bet"`
	PlayerHand   cards.Stack     `json:"playerHand"`
	PlayerValue  int             `json:"playerValue"`
	DealerHand   cards.HeldStack `json:"dealerHand"`
	DealerValue  int             `json:"dealerValue"`
	HoleRevealed bool            `json:"holeRevealed"`
	CanDouble    bool            `json:"canDouble"`
	Doubled      bool            `json:"doubled"`
	Outcome      Outcome         `json:"outcome,omitempty"`
	Payout       decimal.Decimal `json:"payout"`
	DealerFrames []cards.Stack   `json:"dealerFrames,omitempty"`
}

// Snapshot builds the current view of the game.
func (g *Game) Snapshot() Snapshot {
	prices := g.ledger.Prices()
	multiplier := g.ledger.Multiplier()

	accounts := make([]AccountView, 0, len(ledger.Assets))
	for _, acc := range g.ledger.Accounts() {
		remaining := acc.Wager.Remaining(multiplier)
		accounts = append(accounts, AccountView{
			Asset:        acc.Asset,
			Balance:      acc.Balance,
			BalanceUSD:   prices.ToUSD(acc.Asset, acc.Balance),
			Deposited:    acc.Wager.Deposited,
			Wagered:      acc.Wager.Wagered,
			Required:     acc.Wager.Required(multiplier),
			Remaining:    remaining,
			RemainingUSD: prices.ToUSD(acc.Asset, remaining),
		})
	}

	var deposited decimal.Decimal
	if acc, err := g.ledger.Account(g.asset); err == nil {
		deposited = acc.Wager.Deposited
	}

	return Snapshot{
		SessionID:     g.ID,
		Phase:         g.phase,
		Asset:         g.asset,
		Bet:           g.bet,
		MinBet:        g.rules.MinBet,
		Accounts:      accounts,
		ShoeRemaining: g.shoe.Remaining(),
		Round:         g.roundView(),
		Message:       g.message,
		History:       g.history.Entries(),
		Stats:         g.history.Stats(g.asset),
		Sparkline:     g.history.Sparkline(g.asset, deposited),
	}
}

func (g *Game) roundView() *RoundView {
	r := g.round
	if r == nil {
		return nil
	}

	dealer := cards.HoldAll(r.DealerHand, cards.FaceUp)
	if !r.HoleRevealed && len(dealer) > 1 {
		dealer[1].Visibility = cards.FaceDown
	}

	frames := make([]cards.Stack, len(r.DealerFrames))
	for i, f := range r.DealerFrames {
		frames[i] = f.Clone()
	}

	return &RoundView{
		ID:           r.ID,
		Bet:          r.Bet,
		PlayerHand:   r.PlayerHand.Clone(),
		PlayerValue:  r.playerValue(),
		DealerHand:   dealer,
		DealerValue:  hands.Value(dealer.Visible()),
		HoleRevealed: r.HoleRevealed,
		CanDouble:    g.phase == PhasePlayerTurn && r.DoubleAllowed,
		Doubled:      r.Doubled,
		Outcome:      r.Outcome,
		Payout:       r.Payout,
		DealerFrames: frames,
	}
}
