package cards

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Card
		wantErr bool
	}{
		{"Ace of Spades Unicode", "A♠", Card{Suit: Spades, Rank: Ace}, false},
		{"Ace of Spades lowercase", "As", Card{Suit: Spades, Rank: Ace}, false},
		{"Ace of Spades uppercase", "AS", Card{Suit: Spades, Rank: Ace}, false},
		{"Ten of Hearts Unicode", "10♥", Card{Suit: Hearts, Rank: Ten}, false},
		{"Ten of Hearts lowercase", "10h", Card{Suit: Hearts, Rank: Ten}, false},
		{"Queen of Diamonds Unicode", "Q♦", Card{Suit: Diamonds, Rank: Queen}, false},
		{"Queen of Diamonds lowercase", "Qd", Card{Suit: Diamonds, Rank: Queen}, false},
		{"Two of Clubs Unicode", "2♣", Card{Suit: Clubs, Rank: Two}, false},
		{"Two of Clubs uppercase", "2C", Card{Suit: Clubs, Rank: Two}, false},
		{"King of Hearts", "Kh", Card{Suit: Hearts, Rank: King}, false},
		{"Jack of Hearts", "Jh", Card{Suit: Hearts, Rank: Jack}, false},
		{"Nine of Hearts", "9h", Card{Suit: Hearts, Rank: Nine}, false},
		{"Lowercase rank", "aS", Card{Suit: Spades, Rank: Ace}, false},

		{"Input with trailing space", "AS ", Card{}, true},
		{"Input with leading space", " AS", Card{}, true},
		{"Too short input", "A", Card{}, true},
		{"Single suit rune", "♠", Card{}, true},
		{"Empty input", "", Card{}, true},
		{"Invalid suit", "10X", Card{}, true},
		{"Invalid rank", "11S", Card{}, true},
		{"Reverse order", "♠A", Card{}, true},
		{"Number too large", "100S", Card{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CardFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err, "CardFromString(%q) should return an error", tt.input)
				return
			}
			require.NoError(t, err, "CardFromString(%q) should not return an error", tt.input)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCardIdentity(t *testing.T) {
	a := Card{Suit: Spades, Rank: Ace, Copy: 0}
	b := Card{Suit: Spades, Rank: Ace, Copy: 3}

	assert.True(t, a.Equals(b))
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, "A♠", a.String())
	assert.Equal(t, "A♠#3", b.ID())
}

func TestHeldCardMasksHiddenCard(t *testing.T) {
	hole := NewHeldCard(Card{Suit: Hearts, Rank: King}, FaceDown)
	data, err := json.Marshal(hole)
	require.NoError(t, err)
	assert.JSONEq(t, `{"visibility":"down"}`, string(data))

	hole.Visibility = FaceUp
	data, err = json.Marshal(hole)
	require.NoError(t, err)
	assert.JSONEq(t, `{"suit":"♥","rank":"K","visibility":"up"}`, string(data))
}

func TestHeldStackVisible(t *testing.T) {
	held := HoldAll(MustCards("Kh", "7c"), FaceUp)
	held[1].Visibility = FaceDown

	visible := held.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, King, visible[0].Rank)
}
