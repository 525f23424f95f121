package domain

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/lazharichir/blackjack/cards"
	"github.com/lazharichir/blackjack/domain/events"
	"github.com/lazharichir/blackjack/domain/hands"
	"github.com/lazharichir/blackjack/ledger"
	"github.com/shopspring/decimal"
)

// maxRecentEvents bounds Game.Events; the full log lives in the event store.
const maxRecentEvents = 256

// Rules configures a game.
type Rules struct {
	Decks           int
	WagerMultiplier int64
	MinBet          decimal.Decimal
	Prices          ledger.PriceTable
	HistorySize     int
}

// DefaultRules returns a six-deck shoe, 50x rollover and a 0.001 minimum bet.
func DefaultRules() Rules {
	return Rules{
		Decks:           cards.DefaultDecks,
		WagerMultiplier: ledger.DefaultWagerMultiplier,
		MinBet:          ledger.MinUnit,
		Prices:          ledger.DefaultPrices(),
		HistorySize:     DefaultHistorySize,
	}
}

type Option func(*Game)

// WithRules overrides the default rules.
func WithRules(rules Rules) Option {
	return func(g *Game) {
		g.rules = rules
	}
}

// WithRand sets the generator used to shuffle fresh shoes.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) {
		g.rng = r
	}
}

// WithShoeFactory replaces how fresh shoes are built.
func WithShoeFactory(factory func() *cards.Shoe) Option {
	return func(g *Game) {
		g.newShoe = factory
	}
}

// WithClock overrides the time source used on events.
func WithClock(now func() time.Time) Option {
	return func(g *Game) {
		g.now = now
	}
}

// Game is the blackjack engine for one player. It owns the shoe, the
// ledger, the current round and the history. It is not safe for concurrent
// use; the Lobby serializes access per session.
//
// Every command validates before it mutates: a command that returns an
// error leaves the game exactly as it was.
type Game struct {
	ID      string
	rules   Rules
	ledger  *ledger.Ledger
	shoe    *cards.Shoe
	newShoe func() *cards.Shoe
	rng     *rand.Rand
	now     func() time.Time

	phase   Phase
	asset   ledger.Asset
	bet     decimal.Decimal
	round   *Round
	message string
	history *History

	// Events
	Events        []events.Event
	eventHandlers []events.EventHandler
}

// NewGame creates a game in the Betting phase with empty balances.
func NewGame(id string, opts ...Option) *Game {
	if id == "" {
		id = uuid.NewString()
	}

	g := &Game{
		ID:    id,
		rules: DefaultRules(),
		now:   time.Now,
		phase: PhaseBetting,
		asset: ledger.BTC,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.rules.MinBet.IsZero() {
		g.rules.MinBet = ledger.MinUnit
	}
	if g.rng == nil {
		g.rng = cards.NewRand()
	}
	if g.newShoe == nil {
		decks := g.rules.Decks
		g.newShoe = func() *cards.Shoe { return cards.NewShoe(decks, g.rng) }
	}

	g.ledger = ledger.New(
		ledger.WithPrices(g.rules.Prices),
		ledger.WithWagerMultiplier(g.rules.WagerMultiplier),
		ledger.WithClock(g.now),
	)
	g.history = NewHistory(g.rules.HistorySize)
	g.shoe = g.newShoe()
	g.bet = g.rules.MinBet

	return g
}

// Phase returns the current phase
func (g *Game) Phase() Phase {
	return g.phase
}

// Asset returns the selected asset
func (g *Game) Asset() ledger.Asset {
	return g.asset
}

// Bet returns the configured bet for the next round
func (g *Game) Bet() decimal.Decimal {
	return g.bet
}

// Ledger exposes the balances for read access
func (g *Game) Ledger() *ledger.Ledger {
	return g.ledger
}

// History exposes the round history for read access
func (g *Game) History() *History {
	return g.history
}

// SelectAsset switches the asset future rounds are played with.
func (g *Game) SelectAsset(asset ledger.Asset) (Snapshot, error) {
	if g.phase != PhaseBetting {
		return g.Snapshot(), illegal("select asset", g.phase)
	}
	if !asset.Valid() {
		return g.Snapshot(), ledger.ErrUnknownAsset
	}

	g.asset = asset
	g.emitEvent(events.AssetSelected{SessionID: g.ID, Asset: string(asset), At: g.now()})
	return g.Snapshot(), nil
}

// Deposit credits an asset. Allowed in any phase.
func (g *Game) Deposit(asset ledger.Asset, amount decimal.Decimal) (Snapshot, error) {
	if err := g.ledger.Deposit(asset, amount); err != nil {
		return g.Snapshot(), err
	}

	g.emitEvent(events.Deposited{SessionID: g.ID, Asset: string(asset), Amount: amount, At: g.now()})
	g.emitBalance(asset)
	return g.Snapshot(), nil
}

// Withdraw debits an asset once its rollover is met. Allowed in any phase.
func (g *Game) Withdraw(asset ledger.Asset, amount decimal.Decimal, destination string) (Snapshot, ledger.Receipt, error) {
	receipt, err := g.ledger.Withdraw(asset, amount, destination)
	if err != nil {
		return g.Snapshot(), ledger.Receipt{}, err
	}

	g.emitEvent(events.Withdrawn{
		SessionID:   g.ID,
		ReceiptID:   receipt.ID,
		Asset:       string(asset),
		Amount:      amount,
		Destination: receipt.Destination,
		At:          receipt.At,
	})
	g.emitBalance(asset)
	return g.Snapshot(), receipt, nil
}

// SetBet sets the bet for the next round, clamped to the balance and then
// to the minimum bet.
func (g *Game) SetBet(amount decimal.Decimal) (Snapshot, error) {
	if g.phase != PhaseBetting {
		return g.Snapshot(), illegal("change bet", g.phase)
	}
	if !amount.IsPositive() {
		return g.Snapshot(), ledger.ErrInvalidAmount
	}

	balance := g.ledger.Balance(g.asset)
	g.changeBet(decimal.Max(decimal.Min(amount, balance), g.rules.MinBet))
	return g.Snapshot(), nil
}

// HalveBet halves the bet, never below the minimum.
func (g *Game) HalveBet() (Snapshot, error) {
	if g.phase != PhaseBetting {
		return g.Snapshot(), illegal("change bet", g.phase)
	}

	g.changeBet(decimal.Max(g.rules.MinBet, g.bet.Div(two)))
	return g.Snapshot(), nil
}

// DoubleBet doubles the bet, capped at the balance and never below the minimum.
func (g *Game) DoubleBet() (Snapshot, error) {
	if g.phase != PhaseBetting {
		return g.Snapshot(), illegal("change bet", g.phase)
	}

	balance := g.ledger.Balance(g.asset)
	g.changeBet(decimal.Max(g.rules.MinBet, decimal.Min(balance, g.bet.Mul(two))))
	return g.Snapshot(), nil
}

func (g *Game) changeBet(bet decimal.Decimal) {
	if bet.Equal(g.bet) {
		return
	}
	g.bet = bet
	g.emitEvent(events.BetChanged{SessionID: g.ID, Asset: string(g.asset), Bet: bet, At: g.now()})
}

// Deal stakes the bet and deals two cards each, player first. A player
// natural settles the round immediately.
func (g *Game) Deal() (Snapshot, error) {
	if g.phase != PhaseBetting {
		return g.Snapshot(), illegal("deal", g.phase)
	}
	if !g.bet.IsPositive() {
		return g.Snapshot(), ledger.ErrInvalidAmount
	}
	if g.ledger.Balance(g.asset).LessThan(g.bet) {
		return g.Snapshot(), ledger.ErrInsufficientBalance
	}

	if g.shoe.NeedsReshoe() {
		g.reshoe()
	}

	dealt := make(cards.Stack, 0, 4)
	for i := 0; i < 4; i++ {
		card, err := g.draw()
		if err != nil {
			return g.Snapshot(), err
		}
		dealt = append(dealt, card)
	}

	if err := g.ledger.Stake(g.asset, g.bet); err != nil {
		return g.Snapshot(), err
	}

	g.round = &Round{
		ID:            uuid.NewString(),
		Asset:         g.asset,
		Bet:           g.bet,
		PlayerHand:    cards.NewStack(dealt[0], dealt[2]),
		DealerHand:    cards.NewStack(dealt[1], dealt[3]),
		DoubleAllowed: true,
	}
	g.phase = PhasePlayerTurn
	g.message = ""

	g.emitEvent(events.RoundDealt{
		SessionID:    g.ID,
		RoundID:      g.round.ID,
		Asset:        string(g.asset),
		Bet:          g.round.Bet,
		PlayerCards:  g.round.PlayerHand.Clone(),
		DealerUpCard: g.round.DealerHand[0],
		At:           g.now(),
	})
	g.emitBalance(g.asset)

	if hands.IsBlackjack(g.round.PlayerHand) {
		g.reveal()
		if hands.IsBlackjack(g.round.DealerHand) {
			g.settle(OutcomePush)
		} else {
			g.settle(OutcomeBlackjack)
		}
	}

	return g.Snapshot(), nil
}

// Hit draws one card for the player. A bust settles as a loss without the
// dealer playing.
func (g *Game) Hit() (Snapshot, error) {
	if g.phase != PhasePlayerTurn {
		return g.Snapshot(), illegal("hit", g.phase)
	}

	card, err := g.draw()
	if err != nil {
		return g.Snapshot(), err
	}

	r := g.round
	r.PlayerHand.Add(card)
	r.DoubleAllowed = false
	g.emitEvent(events.PlayerHit{SessionID: g.ID, RoundID: r.ID, Card: card, Value: r.playerValue(), At: g.now()})

	if hands.IsBust(r.PlayerHand) {
		g.reveal()
		g.settle(OutcomeLose)
	}

	return g.Snapshot(), nil
}

// Stand ends the player's turn, plays the dealer out and settles.
func (g *Game) Stand() (Snapshot, error) {
	if g.phase != PhasePlayerTurn {
		return g.Snapshot(), illegal("stand", g.phase)
	}

	r := g.round
	r.DoubleAllowed = false
	g.emitEvent(events.PlayerStood{SessionID: g.ID, RoundID: r.ID, Value: r.playerValue(), At: g.now()})

	if err := g.playDealer(); err != nil {
		return g.Snapshot(), err
	}
	return g.Snapshot(), nil
}

// Double stakes the round bet again, draws exactly one card and then either
// busts or lets the dealer play.
func (g *Game) Double() (Snapshot, error) {
	if g.phase != PhasePlayerTurn || !g.round.DoubleAllowed {
		return g.Snapshot(), illegal("double", g.phase)
	}

	r := g.round
	if g.ledger.Balance(r.Asset).LessThan(r.Bet) {
		return g.Snapshot(), ledger.ErrInsufficientBalance
	}

	card, err := g.draw()
	if err != nil {
		return g.Snapshot(), err
	}
	if err := g.ledger.Stake(r.Asset, r.Bet); err != nil {
		return g.Snapshot(), err
	}

	r.Bet = r.Bet.Mul(two)
	r.Doubled = true
	r.DoubleAllowed = false
	r.PlayerHand.Add(card)

	g.emitEvent(events.PlayerDoubled{
		SessionID: g.ID,
		RoundID:   r.ID,
		Bet:       r.Bet,
		Card:      card,
		Value:     r.playerValue(),
		At:        g.now(),
	})
	g.emitBalance(r.Asset)

	if hands.IsBust(r.PlayerHand) {
		g.reveal()
		g.settle(OutcomeLose)
		return g.Snapshot(), nil
	}

	if err := g.playDealer(); err != nil {
		return g.Snapshot(), err
	}
	return g.Snapshot(), nil
}

// PlayAgain clears a settled round. It is a no-op while betting.
func (g *Game) PlayAgain() (Snapshot, error) {
	switch g.phase {
	case PhaseBetting:
		return g.Snapshot(), nil
	case PhaseSettled:
		g.round = nil
		g.message = ""
		g.phase = PhaseBetting
		return g.Snapshot(), nil
	default:
		return g.Snapshot(), illegal("play again", g.phase)
	}
}

func (g *Game) playDealer() error {
	r := g.round
	g.phase = PhaseDealerTurn
	g.reveal()

	hand, frames, err := PlayDealer(r.DealerHand, DrawFunc(g.draw), func(card cards.Card, hand cards.Stack) {
		g.emitEvent(events.DealerDrew{
			SessionID: g.ID,
			RoundID:   r.ID,
			Card:      card,
			Value:     hands.Value(hand),
			At:        g.now(),
		})
	})
	r.DealerHand = hand
	r.DealerFrames = frames
	if err != nil {
		return err
	}

	g.settle(compare(r.PlayerHand, r.DealerHand))
	return nil
}

func (g *Game) reveal() {
	r := g.round
	if r.HoleRevealed {
		return
	}
	r.HoleRevealed = true
	g.emitEvent(events.DealerRevealed{
		SessionID: g.ID,
		RoundID:   r.ID,
		HoleCard:  r.DealerHand[1],
		Value:     r.dealerValue(),
		At:        g.now(),
	})
}

func (g *Game) settle(outcome Outcome) {
	r := g.round
	r.Outcome = outcome
	r.Payout = Payout(outcome, r.Bet)
	r.DoubleAllowed = false

	// Both calls only fail on a negative amount or an unknown asset.
	_ = g.ledger.Credit(r.Asset, r.Payout)
	_ = g.ledger.RecordWager(r.Asset, r.Bet)

	net := r.Payout.Sub(r.Bet)
	g.history.Record(HistoryEntry{
		RoundID: r.ID,
		Asset:   r.Asset,
		Outcome: outcome,
		Bet:     r.Bet,
		Payout:  r.Payout,
		Net:     net,
	})

	g.phase = PhaseSettled
	g.message = outcome.Message()

	g.emitEvent(events.RoundSettled{
		SessionID:   g.ID,
		RoundID:     r.ID,
		Asset:       string(r.Asset),
		Outcome:     string(outcome),
		Bet:         r.Bet,
		Payout:      r.Payout,
		Net:         net,
		PlayerValue: r.playerValue(),
		DealerValue: r.dealerValue(),
		At:          g.now(),
	})
	if r.Payout.IsPositive() {
		g.emitBalance(r.Asset)
	}
}

// draw takes a card from the shoe, replacing an empty shoe first so a round
// in progress never runs dry.
func (g *Game) draw() (cards.Card, error) {
	if g.shoe.Remaining() == 0 {
		g.reshoe()
	}
	return g.shoe.Draw()
}

func (g *Game) reshoe() {
	g.shoe = g.newShoe()
	g.emitEvent(events.ShoeReshuffled{SessionID: g.ID, Remaining: g.shoe.Remaining(), At: g.now()})
}

func (g *Game) emitBalance(asset ledger.Asset) {
	g.emitEvent(events.BalanceChanged{
		SessionID: g.ID,
		Asset:     string(asset),
		Balance:   g.ledger.Balance(asset),
		At:        g.now(),
	})
}

// DrawFunc adapts a function to the Drawer interface.
type DrawFunc func() (cards.Card, error)

func (f DrawFunc) Draw() (cards.Card, error) { return f() }

// RegisterEventHandler registers a handler for game events
func (g *Game) RegisterEventHandler(handler events.EventHandler) {
	g.eventHandlers = append(g.eventHandlers, handler)
}

// emitEvent notifies all registered handlers of a new event
func (g *Game) emitEvent(event events.Event) {
	g.Events = append(g.Events, event)
	if len(g.Events) > maxRecentEvents {
		g.Events = append([]events.Event(nil), g.Events[len(g.Events)-maxRecentEvents:]...)
	}

	for _, handler := range g.eventHandlers {
		handler(event)
	}
}
