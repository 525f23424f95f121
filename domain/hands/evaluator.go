package hands

import "github.com/lazharichir/blackjack/cards"

const (
	// Target is the best possible hand value.
	Target = 21
	// DealerStandsOn is the lowest total the dealer stands on.
	DealerStandsOn = 17
)

// Evaluation is the derived state of a hand. It is never stored.
type Evaluation struct {
	Value     int  `json:"value"`
	Soft      bool `json:"soft"`
	Blackjack bool `json:"blackjack"`
	Bust      bool `json:"bust"`
}

// rankToPoints converts a rank to its blackjack points, counting aces as 11
func rankToPoints(rank cards.Rank) int {
	pointsMap := map[cards.Rank]int{
		cards.Two:   2,
		cards.Three: 3,
		cards.Four:  4,
		cards.Five:  5,
		cards.Six:   6,
		cards.Seven: 7,
		cards.Eight: 8,
		cards.Nine:  9,
		cards.Ten:   10,
		cards.Jack:  10,
		cards.Queen: 10,
		cards.King:  10,
		cards.Ace:   11,
	}
	return pointsMap[rank]
}

// Evaluate computes the best value of a hand. Each ace starts at 11 and is
// reduced to 1 while the total exceeds 21.
func Evaluate(hand cards.Stack) Evaluation {
	total := 0
	softAces := 0
	for _, c := range hand {
		total += rankToPoints(c.Rank)
		if c.Rank == cards.Ace {
			softAces++
		}
	}

	for total > Target && softAces > 0 {
		total -= 10
		softAces--
	}

	return Evaluation{
		Value:     total,
		Soft:      softAces > 0,
		Blackjack: len(hand) == 2 && total == Target,
		Bust:      total > Target,
	}
}

// Value returns the best value of the hand
func Value(hand cards.Stack) int {
	return Evaluate(hand).Value
}

// IsSoft reports whether an ace is still counted as 11
func IsSoft(hand cards.Stack) bool {
	return Evaluate(hand).Soft
}

// IsBlackjack reports whether the hand is a natural: exactly two cards worth 21
func IsBlackjack(hand cards.Stack) bool {
	return Evaluate(hand).Blackjack
}

// IsBust reports whether the hand is over 21
func IsBust(hand cards.Stack) bool {
	return Evaluate(hand).Bust
}

// DealerShouldDraw reports whether the dealer must take another card.
// The dealer stands on every 17, soft or hard.
func DealerShouldDraw(hand cards.Stack) bool {
	return Value(hand) < DealerStandsOn
}
