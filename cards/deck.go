package cards

import (
	"math/rand"
	"time"
)

// NewDeck52 creates a standard deck of 52 cards tagged with the given copy index
func NewDeck52(copyIndex int) Stack {
	deck := make(Stack, 0, 52)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			deck = append(deck, Card{Suit: suit, Rank: rank, Copy: copyIndex})
		}
	}
	return deck
}

// NewRand returns a generator seeded from the clock
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// ShuffleCards returns a uniformly shuffled copy of the stack (Fisher-Yates).
// A nil generator falls back to a clock-seeded one.
func ShuffleCards(stack Stack, r *rand.Rand) Stack {
	if r == nil {
		r = NewRand()
	}

	shuffled := stack.Clone()
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled
}
