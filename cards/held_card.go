package cards

import "encoding/json"

type CardVisibility string

const (
	FaceDown CardVisibility = "down" // Nobody can see
	FaceUp   CardVisibility = "up"   // Everyone can see
)

// HeldCard represents a card that's in play with visibility information
type HeldCard struct {
	Card
	Visibility CardVisibility
}

// NewHeldCard creates a new held card with the specified visibility
func NewHeldCard(card Card, visibility CardVisibility) HeldCard {
	return HeldCard{
		Card:       card,
		Visibility: visibility,
	}
}

// IsHidden reports whether the card is face down
func (c HeldCard) IsHidden() bool {
	return c.Visibility == FaceDown
}

// MarshalJSON never serializes the rank or suit of a face-down card.
func (c HeldCard) MarshalJSON() ([]byte, error) {
	type view struct {
		Suit       Suit           `json:"suit,omitempty"`
		Rank       Rank           `json:"rank,omitempty"`
		Visibility CardVisibility `json:"visibility"`
	}
	v := view{Visibility: c.Visibility}
	if !c.IsHidden() {
		v.Suit = c.Suit
		v.Rank = c.Rank
	}
	return json.Marshal(v)
}

type HeldStack []HeldCard

// HoldAll wraps every card of the stack with the given visibility
func HoldAll(stack Stack, visibility CardVisibility) HeldStack {
	held := make(HeldStack, len(stack))
	for i, c := range stack {
		held[i] = NewHeldCard(c, visibility)
	}
	return held
}

// Visible returns only the cards that are face up
func (s HeldStack) Visible() Stack {
	out := make(Stack, 0, len(s))
	for _, c := range s {
		if !c.IsHidden() {
			out = append(out, c.Card)
		}
	}
	return out
}
