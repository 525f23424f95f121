package metrics

import (
	"testing"

	"github.com/lazharichir/blackjack/domain/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestHandleEvent(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.HandleEvent(events.SessionCreated{SessionID: "s"})
	m.HandleEvent(events.Deposited{SessionID: "s", Asset: "BTC", Amount: decimal.NewFromInt(1)})
	m.HandleEvent(events.RoundSettled{
		SessionID: "s",
		Asset:     "BTC",
		Outcome:   "win",
		Bet:       decimal.RequireFromString("0.5"),
		Payout:    decimal.NewFromInt(1),
	})
	m.HandleEvent(events.RoundSettled{
		SessionID: "s",
		Asset:     "BTC",
		Outcome:   "lose",
		Bet:       decimal.RequireFromString("0.25"),
		Payout:    decimal.Zero,
	})
	m.HandleEvent(events.Withdrawn{SessionID: "s", Asset: "BTC"})
	m.HandleEvent(events.ShoeReshuffled{SessionID: "s"})
	m.HandleEvent(events.PlayerHit{SessionID: "s"})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Deposits.WithLabelValues("BTC")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RoundsSettled.WithLabelValues("BTC", "win")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RoundsSettled.WithLabelValues("BTC", "lose")))
	assert.Equal(t, 0.75, testutil.ToFloat64(m.AmountWagered.WithLabelValues("BTC")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AmountPaidOut.WithLabelValues("BTC")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Withdrawals.WithLabelValues("BTC")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ShoeReshuffles))
}

func TestNewRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) }, "registering twice must fail")
}
