package handlers

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lazharichir/blackjack/domain"
	"github.com/lazharichir/blackjack/domain/commands"
	"github.com/lazharichir/blackjack/ledger"
	"github.com/lazharichir/blackjack/server/connection"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrUnknownCommand = errors.New("unknown command type")
	ErrBadRequest     = errors.New("bad request")
)

// Envelope is the shape of every message sent to a client.
type Envelope struct {
	Name    string `json:"name"`
	Payload any    `json:"payload"`
}

// ErrorPayload describes a rejected command.
type ErrorPayload struct {
	Code         string           `json:"code"`
	Message      string           `json:"message"`
	Remaining    *decimal.Decimal `json:"remaining,omitempty"`
	RemainingUSD *decimal.Decimal `json:"remainingUsd,omitempty"`
}

// Reply is the result of a command: the new state, plus a receipt for
// honoured withdrawals.
type Reply struct {
	Snapshot domain.Snapshot `json:"state"`
	Receipt  *ledger.Receipt `json:"receipt,omitempty"`
}

// CommandRouter routes incoming commands to the appropriate handler
type CommandRouter struct {
	lobby   *domain.Lobby
	connMgr *connection.Manager
	log     *zap.Logger
}

// NewCommandRouter creates a new command router
func NewCommandRouter(lobby *domain.Lobby, connMgr *connection.Manager, log *zap.Logger) *CommandRouter {
	return &CommandRouter{
		lobby:   lobby,
		connMgr: connMgr,
		log:     log,
	}
}

// HandleCommand runs a client's command and sends back the new state or
// an error. The returned error is for logging only.
func (r *CommandRouter) HandleCommand(client *connection.Client, message []byte) error {
	reply, err := r.Execute(client.SessionID, message)
	if err != nil {
		r.send(client, Envelope{Name: "ERROR", Payload: ErrorView(err)})
		return err
	}

	if reply.Receipt != nil {
		r.send(client, Envelope{Name: "WITHDRAWAL_RECEIPT", Payload: reply.Receipt})
	}
	r.send(client, Envelope{Name: "STATE", Payload: reply.Snapshot})
	return nil
}

func (r *CommandRouter) send(client *connection.Client, envelope Envelope) {
	data, err := json.Marshal(envelope)
	if err != nil {
		r.log.Error("marshal reply", zap.String("name", envelope.Name), zap.Error(err))
		return
	}
	if !r.connMgr.SendToClient(client.ID, data) {
		r.log.Warn("reply dropped", zap.String("client", client.ID), zap.String("name", envelope.Name))
	}
}

// Execute decodes a command and applies it to the session's game.
func (r *CommandRouter) Execute(sessionID string, message []byte) (Reply, error) {
	// First determine command type
	var baseCmd struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(message, &baseCmd); err != nil {
		return Reply{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	var reply Reply
	err := r.lobby.Do(sessionID, func(g *domain.Game) error {
		var err error
		reply, err = r.apply(g, baseCmd.Name, message)
		return err
	})
	return reply, err
}

func (r *CommandRouter) apply(g *domain.Game, name string, message []byte) (Reply, error) {
	// Route to appropriate handler based on command type
	switch name {
	case commands.SelectAsset{}.Name():
		var cmd commands.SelectAsset
		if err := decode(message, &cmd); err != nil {
			return Reply{}, err
		}
		asset, err := ledger.ParseAsset(cmd.Asset)
		if err != nil {
			return Reply{Snapshot: g.Snapshot()}, err
		}
		return state(g.SelectAsset(asset))

	case commands.Deposit{}.Name():
		var cmd commands.Deposit
		if err := decode(message, &cmd); err != nil {
			return Reply{}, err
		}
		asset, amount, err := parseAssetAmount(cmd.Asset, cmd.Amount)
		if err != nil {
			return Reply{}, err
		}
		return state(g.Deposit(asset, amount))

	case commands.Withdraw{}.Name():
		var cmd commands.Withdraw
		if err := decode(message, &cmd); err != nil {
			return Reply{}, err
		}
		asset, amount, err := parseAssetAmount(cmd.Asset, cmd.Amount)
		if err != nil {
			return Reply{}, err
		}
		snap, receipt, err := g.Withdraw(asset, amount, cmd.Destination)
		if err != nil {
			return Reply{Snapshot: snap}, err
		}
		return Reply{Snapshot: snap, Receipt: &receipt}, nil

	case commands.SetBet{}.Name():
		var cmd commands.SetBet
		if err := decode(message, &cmd); err != nil {
			return Reply{}, err
		}
		amount, err := ledger.ParseAmount(cmd.Amount)
		if err != nil {
			return Reply{}, err
		}
		return state(g.SetBet(amount))

	case commands.HalveBet{}.Name():
		return state(g.HalveBet())
	case commands.DoubleBet{}.Name():
		return state(g.DoubleBet())
	case commands.Deal{}.Name():
		return state(g.Deal())
	case commands.Hit{}.Name():
		return state(g.Hit())
	case commands.Stand{}.Name():
		return state(g.Stand())
	case commands.Double{}.Name():
		return state(g.Double())
	case commands.PlayAgain{}.Name():
		return state(g.PlayAgain())
	case commands.GetState{}.Name():
		return Reply{Snapshot: g.Snapshot()}, nil

	default:
		return Reply{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
}

func state(snap domain.Snapshot, err error) (Reply, error) {
	return Reply{Snapshot: snap}, err
}

func decode(message []byte, target any) error {
	if err := json.Unmarshal(message, target); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}

func parseAssetAmount(asset, amount string) (ledger.Asset, decimal.Decimal, error) {
	a, err := ledger.ParseAsset(asset)
	if err != nil {
		return "", decimal.Zero, err
	}
	d, err := ledger.ParseAmount(amount)
	if err != nil {
		return "", decimal.Zero, err
	}
	return a, d, nil
}

// ErrorCode maps an error to a stable machine readable code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount):
		return "INVALID_AMOUNT"
	case errors.Is(err, ledger.ErrMissingDestination):
		return "MISSING_DESTINATION"
	case errors.Is(err, ledger.ErrWagerRequirementUnmet):
		return "WAGER_REQUIREMENT_UNMET"
	case errors.Is(err, ledger.ErrInsufficientBalance):
		return "INSUFFICIENT_BALANCE"
	case errors.Is(err, ledger.ErrUnknownAsset):
		return "UNKNOWN_ASSET"
	case errors.Is(err, domain.ErrIllegalTransition):
		return "ILLEGAL_TRANSITION"
	case errors.Is(err, domain.ErrSessionNotFound):
		return "SESSION_NOT_FOUND"
	case errors.Is(err, ErrUnknownCommand):
		return "UNKNOWN_COMMAND"
	case errors.Is(err, ErrBadRequest):
		return "BAD_REQUEST"
	default:
		return "INTERNAL"
	}
}

// ErrorView builds the client facing description of an error.
func ErrorView(err error) ErrorPayload {
	payload := ErrorPayload{Code: ErrorCode(err), Message: err.Error()}

	var wagerErr *ledger.WagerRequirementError
	if errors.As(err, &wagerErr) {
		payload.Remaining = &wagerErr.Remaining
		payload.RemainingUSD = &wagerErr.RemainingUSD
	}
	return payload
}
