package events

import (
	"errors"
	"sync"
)

var ErrMissingSessionID = errors.New("event has no session ID")

// EventStore is the interface for storing and retrieving events.
type EventStore interface {
	Append(event Event) error
	LoadEvents(sessionID string) ([]Event, error)
}

// InMemoryEventStore keeps the most recent events of each session in memory.
type InMemoryEventStore struct {
	events     map[string][]Event
	perSession int
	mutex      sync.RWMutex
}

// NewInMemoryEventStore creates a store that retains up to perSession
// events per session. Zero or less keeps everything.
func NewInMemoryEventStore(perSession int) *InMemoryEventStore {
	return &InMemoryEventStore{
		events:     make(map[string][]Event),
		perSession: perSession,
	}
}

// Append adds a new event to the store.
func (s *InMemoryEventStore) Append(event Event) error {
	sessionID := ExtractSessionID(event)
	if sessionID == "" {
		return ErrMissingSessionID
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	log := append(s.events[sessionID], event)
	if s.perSession > 0 && len(log) > s.perSession {
		log = append([]Event(nil), log[len(log)-s.perSession:]...)
	}
	s.events[sessionID] = log
	return nil
}

// HandleEvent lets the store be registered as an EventHandler.
func (s *InMemoryEventStore) HandleEvent(event Event) {
	_ = s.Append(event)
}

// LoadEvents retrieves all events for the given session in append order.
func (s *InMemoryEventStore) LoadEvents(sessionID string) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	events := s.events[sessionID]
	// Make a copy to avoid potential race conditions
	result := make([]Event, len(events))
	copy(result, events)
	return result, nil
}

// Forget drops every event of the session.
func (s *InMemoryEventStore) Forget(sessionID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.events, sessionID)
}
