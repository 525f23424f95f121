package domain

import (
	"fmt"
	"testing"

	"github.com/lazharichir/blackjack/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id string, outcome Outcome, bet string) HistoryEntry {
	b := dec(bet)
	payout := Payout(outcome, b)
	return HistoryEntry{
		RoundID: id,
		Asset:   ledger.BTC,
		Outcome: outcome,
		Bet:     b,
		Payout:  payout,
		Net:     payout.Sub(b),
	}
}

func TestPayout(t *testing.T) {
	bet := dec("0.002")
	assert.True(t, dec("0.004").Equal(Payout(OutcomeWin, bet)))
	assert.True(t, dec("0.005").Equal(Payout(OutcomeBlackjack, bet)))
	assert.True(t, bet.Equal(Payout(OutcomePush, bet)))
	assert.True(t, Payout(OutcomeLose, bet).IsZero())
}

func TestHistoryRecord(t *testing.T) {
	h := NewHistory(3)
	for i := 0; i < 5; i++ {
		h.Record(entry(fmt.Sprint(i), OutcomeWin, "0.001"))
	}

	entries := h.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "4", entries[0].RoundID)
	assert.Equal(t, "3", entries[1].RoundID)
	assert.Equal(t, "2", entries[2].RoundID)

	entries[0].RoundID = "mutated"
	assert.Equal(t, "4", h.Entries()[0].RoundID, "entries are copies")
}

func TestHistoryDefaultSize(t *testing.T) {
	h := NewHistory(0)
	for i := 0; i < 30; i++ {
		h.Record(entry(fmt.Sprint(i), OutcomeLose, "0.001"))
	}
	assert.Equal(t, DefaultHistorySize, h.Len())
}

func TestHistoryStats(t *testing.T) {
	h := NewHistory(20)
	h.Record(entry("1", OutcomeWin, "0.001"))
	h.Record(entry("2", OutcomeBlackjack, "0.002"))
	h.Record(entry("3", OutcomePush, "0.001"))
	h.Record(entry("4", OutcomeLose, "0.004"))
	other := entry("5", OutcomeWin, "1")
	other.Asset = ledger.ETH
	h.Record(other)

	s := h.Stats(ledger.BTC)
	assert.Equal(t, 4, s.Rounds)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 1, s.Blackjacks)
	assert.Equal(t, 1, s.Pushes)
	assert.Equal(t, 1, s.Losses)
	assert.True(t, dec("0.008").Equal(s.Wagered), s.Wagered.String())
	// +0.001 +0.003 +0 -0.004
	assert.True(t, s.Net.IsZero(), s.Net.String())
}

func TestHistorySparkline(t *testing.T) {
	h := NewHistory(20)
	h.Record(entry("1", OutcomeWin, "0.01"))
	h.Record(entry("2", OutcomeLose, "0.02"))
	h.Record(entry("3", OutcomeLose, "0.01"))

	points := h.Sparkline(ledger.BTC, dec("0.01"))
	require.Len(t, points, 3)

	assert.True(t, dec("0.02").Equal(points[0].Cumulative))
	assert.Equal(t, 100, points[0].Height)
	assert.True(t, points[0].Profit)

	assert.True(t, decimal.Zero.Equal(points[1].Cumulative))
	assert.Equal(t, 5, points[1].Height, "clamped at 5")
	assert.False(t, points[1].Profit)

	assert.True(t, dec("-0.01").Equal(points[2].Cumulative))
	assert.Equal(t, 5, points[2].Height)

	flat := h.Sparkline(ledger.BTC, decimal.Zero)
	for _, p := range flat {
		assert.Equal(t, 50, p.Height)
	}

	assert.Empty(t, h.Sparkline(ledger.ETH, dec("1")))
}
