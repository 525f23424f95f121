package domain

import (
	"github.com/lazharichir/blackjack/cards"
	"github.com/lazharichir/blackjack/domain/hands"
	"github.com/lazharichir/blackjack/ledger"
	"github.com/shopspring/decimal"
)

// Phase is the stage of the round state machine.
type Phase string

const (
	PhaseBetting    Phase = "betting"
	PhasePlayerTurn Phase = "player_turn"
	PhaseDealerTurn Phase = "dealer_turn"
	PhaseSettled    Phase = "settled"
)

// Outcome is the result of a settled round from the player's side.
type Outcome string

const (
	OutcomeWin       Outcome = "win"
	OutcomeLose      Outcome = "lose"
	OutcomePush      Outcome = "push"
	OutcomeBlackjack Outcome = "blackjack"
)

var (
	two         = decimal.NewFromInt(2)
	twoAndAHalf = decimal.RequireFromString("2.5")
)

// Payout returns the amount credited back for a bet: the stake plus winnings.
func Payout(outcome Outcome, bet decimal.Decimal) decimal.Decimal {
	switch outcome {
	case OutcomeWin:
		return bet.Mul(two)
	case OutcomeBlackjack:
		return bet.Mul(twoAndAHalf)
	case OutcomePush:
		return bet
	default:
		return decimal.Zero
	}
}

// Message is the banner shown for an outcome.
func (o Outcome) Message() string {
	switch o {
	case OutcomeWin:
		return "You Win!"
	case OutcomeBlackjack:
		return "Blackjack! You Win!"
	case OutcomePush:
		return "Push - Tie Game"
	case OutcomeLose:
		return "Dealer Wins"
	default:
		return ""
	}
}

// Round is the state of one hand of play. It exists only outside Betting.
type Round struct {
	ID            string
	Asset         ledger.Asset
	Bet           decimal.Decimal
	PlayerHand    cards.Stack
	DealerHand    cards.Stack
	HoleRevealed  bool
	DoubleAllowed bool
	Doubled       bool
	Outcome       Outcome
	Payout        decimal.Decimal
	DealerFrames  []cards.Stack
}

func (r *Round) playerValue() int {
	return hands.Value(r.PlayerHand)
}

func (r *Round) dealerValue() int {
	return hands.Value(r.DealerHand)
}

// compare decides a round where neither side has a natural and the player
// has not busted.
func compare(player, dealer cards.Stack) Outcome {
	p := hands.Evaluate(player)
	d := hands.Evaluate(dealer)
	switch {
	case d.Bust:
		return OutcomeWin
	case p.Value > d.Value:
		return OutcomeWin
	case p.Value == d.Value:
		return OutcomePush
	default:
		return OutcomeLose
	}
}
