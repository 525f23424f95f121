package cards

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// CardFromString creates a card from a string representation
// e.g., "10♠" or "10s" or "10S" -> Card{Suit: Spades, Rank: Ten}
func CardFromString(s string) (Card, error) {
	if utf8.RuneCountInString(s) < 2 {
		return Card{}, fmt.Errorf("invalid card shorthand: %q", s)
	}

	last, size := utf8.DecodeLastRuneInString(s)
	var suit Suit
	switch last {
	case '♠', 's', 'S':
		suit = Spades
	case '♥', 'h', 'H':
		suit = Hearts
	case '♦', 'd', 'D':
		suit = Diamonds
	case '♣', 'c', 'C':
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid card suit: %q", string(last))
	}

	rank := Rank(strings.ToUpper(s[:len(s)-size]))
	if !rank.valid() {
		return Card{}, fmt.Errorf("invalid card rank: %q", s[:len(s)-size])
	}

	return Card{Suit: suit, Rank: rank}, nil
}

// MustCards parses a list of shorthands and panics on the first bad one.
// Intended for tests and fixtures.
func MustCards(shorthands ...string) Stack {
	stack := make(Stack, 0, len(shorthands))
	for _, s := range shorthands {
		c, err := CardFromString(s)
		if err != nil {
			panic(err)
		}
		stack = append(stack, c)
	}
	return stack
}

// Suit represents a card suit
type Suit string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
)

// Suits lists every suit in deck order.
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// Rank represents a card rank
type Rank string

const (
	Ace   Rank = "A"
	King  Rank = "K"
	Queen Rank = "Q"
	Jack  Rank = "J"
	Ten   Rank = "10"
	Nine  Rank = "9"
	Eight Rank = "8"
	Seven Rank = "7"
	Six   Rank = "6"
	Five  Rank = "5"
	Four  Rank = "4"
	Three Rank = "3"
	Two   Rank = "2"
)

// Ranks lists every rank in deck order.
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

func (r Rank) valid() bool {
	for _, candidate := range Ranks {
		if r == candidate {
			return true
		}
	}
	return false
}

// IsFace reports whether the rank is a jack, queen or king.
func (r Rank) IsFace() bool {
	return r == Jack || r == Queen || r == King
}

// Card represents a playing card. Copy is the index of the deck the card
// came from inside a multi-deck shoe, so duplicates stay distinguishable.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
	Copy int  `json:"copy"`
}

// String returns the string representation of a card
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// ID identifies a physical card in the shoe.
func (c Card) ID() string {
	return fmt.Sprintf("%s%s#%d", c.Rank, c.Suit, c.Copy)
}

// Equals checks if two cards have the same rank and suit, ignoring which
// deck they came from.
func (c Card) Equals(other Card) bool {
	return c.Suit == other.Suit && c.Rank == other.Rank
}
