package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lazharichir/blackjack/domain/events"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	queueSize      = 256
	publishTimeout = 2 * time.Second
)

// Publisher is the part of the redis client used to fan out balances.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// BalanceUpdate is the message published on every balance change.
type BalanceUpdate struct {
	SessionID string    `json:"sessionId"`
	Asset     string    `json:"asset"`
	Balance   string    `json:"balance"`
	At        time.Time `json:"at"`
}

// RedisPublisher pushes balance changes to a redis channel so other
// services can follow a session's balance. Publishing is best effort: a
// failed or dropped message is logged and never affects the game.
type RedisPublisher struct {
	client  Publisher
	channel string
	log     *zap.Logger
	queue   chan BalanceUpdate
}

// NewRedisClient connects to addr.
func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

func NewRedisPublisher(client Publisher, channel string, log *zap.Logger) *RedisPublisher {
	return &RedisPublisher{
		client:  client,
		channel: channel,
		log:     log,
		queue:   make(chan BalanceUpdate, queueSize),
	}
}

// HandleEvent queues balance changes without blocking the caller.
func (p *RedisPublisher) HandleEvent(event events.Event) {
	e, ok := event.(events.BalanceChanged)
	if !ok {
		return
	}

	update := BalanceUpdate{
		SessionID: e.SessionID,
		Asset:     e.Asset,
		Balance:   e.Balance.String(),
		At:        e.At,
	}
	select {
	case p.queue <- update:
	default:
		p.log.Warn("balance publish queue full, dropping update",
			zap.String("session", e.SessionID), zap.String("asset", e.Asset))
	}
}

// Run publishes queued updates until ctx is done.
func (p *RedisPublisher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case update := <-p.queue:
			p.publish(ctx, update)
		}
	}
}

func (p *RedisPublisher) publish(ctx context.Context, update BalanceUpdate) {
	payload, err := json.Marshal(update)
	if err != nil {
		p.log.Error("marshal balance update", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		p.log.Warn("redis publish failed (non-fatal)",
			zap.String("channel", p.channel), zap.String("session", update.SessionID), zap.Error(err))
	}
}
