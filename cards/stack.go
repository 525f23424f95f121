package cards

import "strings"

// Stack represents an ordered run of cards. The last element is the top.
type Stack []Card

// NewStack creates a new stack from the given cards
func NewStack(cards ...Card) Stack {
	return Stack(cards)
}

// Add puts a card on top of the stack
func (s *Stack) Add(card Card) {
	*s = append(*s, card)
}

// DealCard removes and returns the top card. The bool is false when the
// stack is empty.
func (s *Stack) DealCard() (Card, bool) {
	n := len(*s)
	if n == 0 {
		return Card{}, false
	}
	card := (*s)[n-1]
	*s = (*s)[:n-1]
	return card, true
}

// Len returns the number of cards in the stack
func (s Stack) Len() int {
	return len(s)
}

// Clone returns an independent copy of the stack
func (s Stack) Clone() Stack {
	out := make(Stack, len(s))
	copy(out, s)
	return out
}

// String returns the cards separated by spaces
func (s Stack) String() string {
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
