package metrics

import (
	"github.com/lazharichir/blackjack/domain/events"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the game counters. It consumes domain events and never
// touches game state.
type Metrics struct {
	SessionsCreated prometheus.Counter
	RoundsSettled   *prometheus.CounterVec
	AmountWagered   *prometheus.CounterVec
	AmountPaidOut   *prometheus.CounterVec
	Deposits        *prometheus.CounterVec
	Withdrawals     *prometheus.CounterVec
	ShoeReshuffles  prometheus.Counter
}

// New creates the counters and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SessionsCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "blackjack_sessions_created_total",
				Help: "Total sessions created",
			},
		),
		RoundsSettled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blackjack_rounds_settled_total",
				Help: "Total settled rounds",
			},
			[]string{"asset", "outcome"},
		),
		AmountWagered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blackjack_wagered_amount_total",
				Help: "Total amount wagered, in asset units",
			},
			[]string{"asset"},
		),
		AmountPaidOut: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blackjack_payout_amount_total",
				Help: "Total amount paid back to players, in asset units",
			},
			[]string{"asset"},
		),
		Deposits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blackjack_deposits_total",
				Help: "Total deposits",
			},
			[]string{"asset"},
		),
		Withdrawals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blackjack_withdrawals_total",
				Help: "Total honoured withdrawals",
			},
			[]string{"asset"},
		),
		ShoeReshuffles: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "blackjack_shoe_reshuffles_total",
				Help: "Total shoes replaced before a deal",
			},
		),
	}

	reg.MustRegister(
		m.SessionsCreated,
		m.RoundsSettled,
		m.AmountWagered,
		m.AmountPaidOut,
		m.Deposits,
		m.Withdrawals,
		m.ShoeReshuffles,
	)
	return m
}

// HandleEvent updates counters from a domain event.
func (m *Metrics) HandleEvent(event events.Event) {
	switch e := event.(type) {
	case events.SessionCreated:
		m.SessionsCreated.Inc()
	case events.RoundSettled:
		m.RoundsSettled.WithLabelValues(e.Asset, e.Outcome).Inc()
		m.AmountWagered.WithLabelValues(e.Asset).Add(e.Bet.InexactFloat64())
		m.AmountPaidOut.WithLabelValues(e.Asset).Add(e.Payout.InexactFloat64())
	case events.Deposited:
		m.Deposits.WithLabelValues(e.Asset).Inc()
	case events.Withdrawn:
		m.Withdrawals.WithLabelValues(e.Asset).Inc()
	case events.ShoeReshuffled:
		m.ShoeReshuffles.Inc()
	}
}
