package cards

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck52(0)
	require.Len(t, deck, 52)

	seen := map[string]bool{}
	for _, c := range deck {
		seen[c.ID()] = true
	}
	assert.Len(t, seen, 52)
}

func TestShuffleCards(t *testing.T) {
	original := NewDeck52(0)
	shuffled := ShuffleCards(original, rand.New(rand.NewSource(42)))

	require.Len(t, shuffled, len(original))
	assert.ElementsMatch(t, original, shuffled)

	differences := 0
	for i := range original {
		if shuffled[i] != original[i] {
			differences++
		}
	}
	assert.NotZero(t, differences, "shuffled deck is identical to original deck")
}

func TestStackDealCard(t *testing.T) {
	stack := MustCards("2s", "3s", "4s")

	card, ok := stack.DealCard()
	require.True(t, ok)
	assert.Equal(t, Four, card.Rank)
	assert.Equal(t, 2, stack.Len())
	assert.Equal(t, "2♠ 3♠", stack.String())

	empty := Stack{}
	_, ok = empty.DealCard()
	assert.False(t, ok)
}

func TestNewShoe(t *testing.T) {
	shoe := NewShoe(DefaultDecks, rand.New(rand.NewSource(7)))
	require.Equal(t, 312, shoe.Remaining())

	multiplicity := map[string]int{}
	ids := map[string]bool{}
	for _, c := range shoe.Cards() {
		multiplicity[c.String()]++
		ids[c.ID()] = true
	}

	assert.Len(t, ids, 312)
	require.Len(t, multiplicity, 52)
	for card, n := range multiplicity {
		assert.Equal(t, 6, n, "card %s", card)
	}
}

func TestShoeDraw(t *testing.T) {
	shoe := NewShoeFromStack(MustCards("2s", "Ah"))

	card, err := shoe.Draw()
	require.NoError(t, err)
	assert.Equal(t, Ace, card.Rank)

	card, err = shoe.Draw()
	require.NoError(t, err)
	assert.Equal(t, Two, card.Rank)

	_, err = shoe.Draw()
	assert.ErrorIs(t, err, ErrShoeExhausted)
	assert.Equal(t, 0, shoe.Remaining())
}

func TestShoeNeedsReshoe(t *testing.T) {
	shoe := NewShoe(1, rand.New(rand.NewSource(1)))
	assert.False(t, shoe.NeedsReshoe(), "exactly 52 cards is enough")

	_, err := shoe.Draw()
	require.NoError(t, err)
	assert.True(t, shoe.NeedsReshoe())
}

// Every card should land in every position about equally often.
func TestShuffleHasNoPositionBias(t *testing.T) {
	const trials = 20000
	r := rand.New(rand.NewSource(99))
	deck := NewDeck52(0)
	ace := Card{Suit: Spades, Rank: Ace}

	counts := make([]int, len(deck))
	for i := 0; i < trials; i++ {
		shuffled := ShuffleCards(deck, r)
		for pos, c := range shuffled {
			if c == ace {
				counts[pos]++
				break
			}
		}
	}

	expected := float64(trials) / float64(len(deck))
	chi2 := 0.0
	for _, n := range counts {
		d := float64(n) - expected
		chi2 += d * d / expected
	}
	// 51 degrees of freedom, p=0.001 critical value is about 87.
	assert.Less(t, chi2, 87.0, "chi-square %.2f", chi2)
	assert.False(t, math.IsNaN(chi2))
}
