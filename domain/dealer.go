package domain

import (
	"fmt"

	"github.com/lazharichir/blackjack/cards"
	"github.com/lazharichir/blackjack/domain/hands"
)

// Drawer is anything cards can be drawn from.
type Drawer interface {
	Draw() (cards.Card, error)
}

// PlayDealer draws for the dealer until the hand is worth 17 or more.
// Every intermediate hand is returned as a frame, starting with the hand
// as it was before the first draw. The onDraw callback, when set, sees each
// drawn card and the resulting hand.
func PlayDealer(dealer cards.Stack, shoe Drawer, onDraw func(card cards.Card, hand cards.Stack)) (cards.Stack, []cards.Stack, error) {
	hand := dealer.Clone()
	frames := []cards.Stack{hand.Clone()}

	for hands.DealerShouldDraw(hand) {
		card, err := shoe.Draw()
		if err != nil {
			return hand, frames, fmt.Errorf("dealer draw: %w", err)
		}
		hand.Add(card)
		frames = append(frames, hand.Clone())
		if onDraw != nil {
			onDraw(card, hand)
		}
	}

	return hand, frames, nil
}
