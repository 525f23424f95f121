package cards

import (
	"errors"
	"math/rand"
)

const (
	// DefaultDecks is the number of 52-card decks in a fresh shoe.
	DefaultDecks = 6
	// ReshoeThreshold is the minimum shoe size needed to start a round.
	ReshoeThreshold = 52
)

var ErrShoeExhausted = errors.New("shoe exhausted")

// Shoe represents multiple decks of cards dealt from the end
type Shoe struct {
	cards Stack
}

// NewShoe creates a shuffled shoe with the given number of decks
func NewShoe(numDecks int, r *rand.Rand) *Shoe {
	if numDecks <= 0 {
		numDecks = DefaultDecks
	}

	cards := make(Stack, 0, numDecks*52)
	for i := 0; i < numDecks; i++ {
		cards = append(cards, NewDeck52(i)...)
	}

	return &Shoe{cards: ShuffleCards(cards, r)}
}

// NewShoeFromStack creates a shoe with a fixed order. The last card of the
// stack is drawn first.
func NewShoeFromStack(stack Stack) *Shoe {
	return &Shoe{cards: stack.Clone()}
}

// Draw removes and returns the last card of the shoe
func (s *Shoe) Draw() (Card, error) {
	card, ok := s.cards.DealCard()
	if !ok {
		return Card{}, ErrShoeExhausted
	}
	return card, nil
}

// Remaining returns how many cards are left
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// NeedsReshoe reports whether the shoe is too short to start a round
func (s *Shoe) NeedsReshoe() bool {
	return len(s.cards) < ReshoeThreshold
}

// Cards returns a copy of the remaining cards in draw order reversed
func (s *Shoe) Cards() Stack {
	return s.cards.Clone()
}
