package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lazharichir/blackjack/domain/events"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePublisher struct {
	mu       sync.Mutex
	channels []string
	messages [][]byte
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.channels = append(f.channels, channel)
	f.messages = append(f.messages, message.([]byte))

	cmd := redis.NewIntCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
	} else {
		cmd.SetVal(1)
	}
	return cmd
}

func (f *fakePublisher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func TestRedisPublisherPublishesBalanceChanges(t *testing.T) {
	fake := &fakePublisher{}
	p := NewRedisPublisher(fake, "blackjack:balance", zap.NewNop())

	p.HandleEvent(events.PlayerHit{SessionID: "s"})
	p.HandleEvent(events.BalanceChanged{SessionID: "s", Asset: "BTC", Balance: decimal.RequireFromString("0.011")})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return fake.count() == 1 }, time.Second, 10*time.Millisecond)
	cancel()
	<-done

	var got BalanceUpdate
	require.NoError(t, json.Unmarshal(fake.messages[0], &got))
	assert.Equal(t, "blackjack:balance", fake.channels[0])
	assert.Equal(t, "s", got.SessionID)
	assert.Equal(t, "BTC", got.Asset)
	assert.Equal(t, "0.011", got.Balance)
}

func TestRedisPublisherSurvivesErrors(t *testing.T) {
	fake := &fakePublisher{err: errors.New("connection refused")}
	p := NewRedisPublisher(fake, "c", zap.NewNop())

	p.HandleEvent(events.BalanceChanged{SessionID: "s", Asset: "ETH", Balance: decimal.NewFromInt(1)})
	p.HandleEvent(events.BalanceChanged{SessionID: "s", Asset: "ETH", Balance: decimal.NewFromInt(2)})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	require.Eventually(t, func() bool { return fake.count() == 2 }, time.Second, 10*time.Millisecond)
}

func TestRedisPublisherDropsWhenFull(t *testing.T) {
	fake := &fakePublisher{}
	p := NewRedisPublisher(fake, "c", zap.NewNop())

	for i := 0; i < queueSize+10; i++ {
		p.HandleEvent(events.BalanceChanged{SessionID: "s", Asset: "SOL", Balance: decimal.NewFromInt(int64(i))})
	}
	assert.Len(t, p.queue, queueSize)
}
