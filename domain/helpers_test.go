package domain

import (
	"math/rand"

	"github.com/lazharichir/blackjack/cards"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// riggedShoe returns a factory for a full six-deck shoe whose first draws
// are exactly the given cards, in order.
func riggedShoe(draws ...string) func() *cards.Shoe {
	return func() *cards.Shoe {
		filler := cards.NewShoe(cards.DefaultDecks, rand.New(rand.NewSource(1))).Cards()
		planned := cards.MustCards(draws...)
		stack := filler
		for i := len(planned) - 1; i >= 0; i-- {
			stack = append(stack, planned[i])
		}
		return cards.NewShoeFromStack(stack)
	}
}

// repeat concatenates a draw sequence n times.
func repeat(n int, draws ...string) []string {
	out := make([]string, 0, n*len(draws))
	for i := 0; i < n; i++ {
		out = append(out, draws...)
	}
	return out
}
