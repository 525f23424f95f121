package domain

import (
	"github.com/lazharichir/blackjack/ledger"
	"github.com/shopspring/decimal"
)

// DefaultHistorySize is how many settled rounds are kept.
const DefaultHistorySize = 20

// HistoryEntry is an immutable record of a settled round.
type HistoryEntry struct {
	RoundID string          `json:"roundId"`
	Asset   ledger.Asset    `json:"asset"`
	Outcome Outcome         `json:"outcome"`
	Bet     decimal.Decimal `json:"bet"`
	Payout  decimal.Decimal `json:"payout"`
	Net     decimal.Decimal `json:"net"`
}

// History is a bounded log of settled rounds, newest first.
type History struct {
	entries []HistoryEntry
	size    int
}

// NewHistory creates a history keeping at most size entries.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{size: size}
}

// Record prepends an entry and evicts the oldest beyond capacity.
func (h *History) Record(entry HistoryEntry) {
	h.entries = append([]HistoryEntry{entry}, h.entries...)
	if len(h.entries) > h.size {
		h.entries = h.entries[:h.size]
	}
}

// Entries returns a copy of the log, newest first.
func (h *History) Entries() []HistoryEntry {
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of entries kept.
func (h *History) Len() int {
	return len(h.entries)
}

// Stats summarises the kept entries.
type Stats struct {
	Rounds     int             `json:"rounds"`
	Wins       int             `json:"wins"`
	Blackjacks int             `json:"blackjacks"`
	Pushes     int             `json:"pushes"`
	Losses     int             `json:"losses"`
	Wagered    decimal.Decimal `json:"wagered"`
	Net        decimal.Decimal `json:"net"`
}

// Stats counts outcomes over the kept entries. Amounts only add up within
// one asset, so callers pass the asset to total.
func (h *History) Stats(asset ledger.Asset) Stats {
	s := Stats{Wagered: decimal.Zero, Net: decimal.Zero}
	for _, e := range h.entries {
		if e.Asset != asset {
			continue
		}
		s.Rounds++
		switch e.Outcome {
		case OutcomeWin:
			s.Wins++
		case OutcomeBlackjack:
			s.Blackjacks++
		case OutcomePush:
			s.Pushes++
		case OutcomeLose:
			s.Losses++
		}
		s.Wagered = s.Wagered.Add(e.Bet)
		s.Net = s.Net.Add(e.Net)
	}
	return s
}

// SparkPoint is one bar of the balance trend.
type SparkPoint struct {
	Cumulative decimal.Decimal `json:"cumulative"`
	Height     int             `json:"height"`
	Profit     bool            `json:"profit"`
}

var fifty = decimal.NewFromInt(50)

// Sparkline returns the running balance of the asset's rounds, oldest
// first, starting from baseline. Heights are percentages in [5, 100] where
// 50 means the baseline; with no baseline every bar is 50.
func (h *History) Sparkline(asset ledger.Asset, baseline decimal.Decimal) []SparkPoint {
	points := []SparkPoint{}
	cumulative := baseline
	for i := len(h.entries) - 1; i >= 0; i-- {
		e := h.entries[i]
		if e.Asset != asset {
			continue
		}
		cumulative = cumulative.Add(e.Net)

		height := 50
		if baseline.IsPositive() {
			pct := cumulative.Div(baseline).Mul(fifty).IntPart()
			height = int(max(5, min(100, pct)))
		}

		points = append(points, SparkPoint{
			Cumulative: cumulative,
			Height:     height,
			Profit:     cumulative.GreaterThan(baseline),
		})
	}
	return points
}
