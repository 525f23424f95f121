package events

import (
	"encoding/json"

	"github.com/lazharichir/blackjack/domain/events"
	"github.com/lazharichir/blackjack/server/connection"
	"github.com/sanity-io/litter"
	"go.uber.org/zap"
)

// EventEnvelope wraps an event with its name for client consumption
type EventEnvelope struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher handles routing events to clients
type Dispatcher struct {
	connMgr *connection.Manager
	log     *zap.Logger
}

// NewDispatcher creates a new event dispatcher
func NewDispatcher(connMgr *connection.Manager, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		connMgr: connMgr,
		log:     log,
	}
}

// HandleEvent sends a domain event to every connection of its session
func (d *Dispatcher) HandleEvent(event events.Event) {
	if ce := d.log.Check(zap.DebugLevel, "dispatching event"); ce != nil {
		ce.Write(zap.String("name", event.Name()), zap.String("event", litter.Sdump(event)))
	}

	sessionID := events.ExtractSessionID(event)
	if sessionID == "" {
		return
	}

	data, err := Encode(event)
	if err != nil {
		d.log.Error("failed to marshal event", zap.String("name", event.Name()), zap.Error(err))
		return
	}

	d.connMgr.SendToSession(sessionID, data)
}

// Encode marshals an event inside its envelope.
func Encode(event events.Event) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	return json.Marshal(EventEnvelope{
		Name:    event.Name(),
		Payload: payload,
	})
}
