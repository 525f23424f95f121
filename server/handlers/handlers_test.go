package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lazharichir/blackjack/domain"
	"github.com/lazharichir/blackjack/ledger"
	"github.com/lazharichir/blackjack/server/connection"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) (*CommandRouter, string) {
	t.Helper()
	lobby := domain.NewLobby()
	snap := lobby.CreateSession()
	return NewCommandRouter(lobby, connection.NewManager(), zap.NewNop()), snap.SessionID
}

func TestExecute(t *testing.T) {
	router, id := newRouter(t)

	reply, err := router.Execute(id, []byte(`{"name":"DEPOSIT","asset":"btc","amount":"0.01"}`))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.01").Equal(reply.Snapshot.Accounts[0].Balance))

	reply, err = router.Execute(id, []byte(`{"name":"SET_BET","amount":"0.002"}`))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.002").Equal(reply.Snapshot.Bet))

	reply, err = router.Execute(id, []byte(`{"name":"DEAL"}`))
	require.NoError(t, err)
	assert.NotEqual(t, domain.PhaseBetting, reply.Snapshot.Phase)

	reply, err = router.Execute(id, []byte(`{"name":"GET_STATE"}`))
	require.NoError(t, err)
	assert.NotNil(t, reply.Snapshot.Round)
}

func TestExecuteWithdrawReportsRequirement(t *testing.T) {
	router, id := newRouter(t)

	_, err := router.Execute(id, []byte(`{"name":"DEPOSIT","asset":"BTC","amount":"0.01"}`))
	require.NoError(t, err)

	_, err = router.Execute(id, []byte(`{"name":"WITHDRAW","asset":"BTC","amount":"0.01","destination":"bc1q"}`))
	require.ErrorIs(t, err, ledger.ErrWagerRequirementUnmet)

	view := ErrorView(err)
	assert.Equal(t, "WAGER_REQUIREMENT_UNMET", view.Code)
	require.NotNil(t, view.Remaining)
	assert.True(t, decimal.RequireFromString("0.5").Equal(*view.Remaining))
	assert.True(t, decimal.NewFromInt(48500).Equal(*view.RemainingUSD))
}

func TestExecuteErrors(t *testing.T) {
	router, id := newRouter(t)

	tests := []struct {
		name    string
		session string
		message string
		code    string
	}{
		{"malformed json", id, `{"name":`, "BAD_REQUEST"},
		{"unknown command", id, `{"name":"SPLIT"}`, "UNKNOWN_COMMAND"},
		{"unknown session", "missing", `{"name":"DEAL"}`, "SESSION_NOT_FOUND"},
		{"unknown asset", id, `{"name":"DEPOSIT","asset":"DOGE","amount":"1"}`, "UNKNOWN_ASSET"},
		{"bad amount", id, `{"name":"DEPOSIT","asset":"BTC","amount":"abc"}`, "INVALID_AMOUNT"},
		{"withdraw without destination", id, `{"name":"WITHDRAW","asset":"BTC","amount":"1"}`, "MISSING_DESTINATION"},
		{"deal without balance", id, `{"name":"DEAL"}`, "INSUFFICIENT_BALANCE"},
		{"hit while betting", id, `{"name":"HIT"}`, "ILLEGAL_TRANSITION"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := router.Execute(tt.session, []byte(tt.message))
			require.Error(t, err)
			assert.Equal(t, tt.code, ErrorCode(err))
		})
	}
}

func TestErrorCodeDefault(t *testing.T) {
	assert.Equal(t, "INTERNAL", ErrorCode(errors.New("boom")))
	assert.Equal(t, "ILLEGAL_TRANSITION", ErrorCode(fmt.Errorf("wrapped: %w", domain.ErrIllegalTransition)))
	assert.Nil(t, ErrorView(ledger.ErrInvalidAmount).Remaining)
}
