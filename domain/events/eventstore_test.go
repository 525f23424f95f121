package events_test

import (
	"testing"

	"github.com/lazharichir/blackjack/cards"
	"github.com/lazharichir/blackjack/domain/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noSessionID struct {
	OtherField string
}

func (noSessionID) Name() string { return "NO_SESSION_ID" }

func TestExtractSessionID(t *testing.T) {
	t.Run("struct with SessionID field", func(t *testing.T) {
		e := events.PlayerStood{SessionID: "session123"}
		assert.Equal(t, "session123", events.ExtractSessionID(e))
	})

	t.Run("pointer to struct with SessionID field", func(t *testing.T) {
		e := &events.PlayerStood{SessionID: "sessionPointer"}
		assert.Equal(t, "sessionPointer", events.ExtractSessionID(e))
	})

	t.Run("struct without SessionID field", func(t *testing.T) {
		assert.Equal(t, "", events.ExtractSessionID(noSessionID{OtherField: "noID"}))
	})

	t.Run("nil pointer", func(t *testing.T) {
		var e *events.PlayerStood
		assert.Equal(t, "", events.ExtractSessionID(e))
	})
}

func TestInMemoryEventStore(t *testing.T) {
	store := events.NewInMemoryEventStore(0)
	sessionID := "session-123"

	t.Run("Append and load events", func(t *testing.T) {
		require.NoError(t, store.Append(events.SessionCreated{SessionID: sessionID}))
		require.NoError(t, store.Append(events.PlayerHit{
			SessionID: sessionID,
			Card:      cards.Card{Suit: cards.Spades, Rank: cards.Ace},
			Value:     21,
		}))
		require.NoError(t, store.Append(events.SessionCreated{SessionID: "other"}))

		loaded, err := store.LoadEvents(sessionID)
		require.NoError(t, err)
		require.Len(t, loaded, 2)
		assert.Equal(t, "SESSION_CREATED", loaded[0].Name())
		assert.Equal(t, "PLAYER_HIT", loaded[1].Name())
	})

	t.Run("Rejects events without session", func(t *testing.T) {
		assert.ErrorIs(t, store.Append(noSessionID{}), events.ErrMissingSessionID)
	})

	t.Run("Unknown session loads empty", func(t *testing.T) {
		loaded, err := store.LoadEvents("missing")
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})

	t.Run("Forget drops the session", func(t *testing.T) {
		store.Forget(sessionID)
		loaded, err := store.LoadEvents(sessionID)
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})
}

func TestInMemoryEventStoreRetention(t *testing.T) {
	store := events.NewInMemoryEventStore(2)
	for i := 0; i < 5; i++ {
		store.HandleEvent(events.PlayerStood{SessionID: "s", Value: i})
	}

	loaded, err := store.LoadEvents("s")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, 3, loaded[0].(events.PlayerStood).Value)
	assert.Equal(t, 4, loaded[1].(events.PlayerStood).Value)
}
