package domain

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lazharichir/blackjack/domain/events"
)

// session wraps one game behind its own lock so commands on a session run
// one at a time.
type session struct {
	mu        sync.Mutex
	game      *Game
	createdAt time.Time
}

// Lobby is the registry of live sessions. No state is shared between
// sessions.
type Lobby struct {
	sessions map[string]*session
	options  []Option
	mutex    sync.RWMutex

	handlerMutex  sync.RWMutex
	eventHandlers []events.EventHandler
}

// NewLobby creates an empty lobby. The options are applied to every game
// it creates.
func NewLobby(opts ...Option) *Lobby {
	return &Lobby{
		sessions: make(map[string]*session),
		options:  opts,
	}
}

// CreateSession starts a new game and returns its initial snapshot.
func (l *Lobby) CreateSession() Snapshot {
	id := uuid.NewString()
	game := NewGame(id, l.options...)
	game.RegisterEventHandler(l.handleGameEvent)

	s := &session{game: game, createdAt: time.Now()}

	l.mutex.Lock()
	l.sessions[id] = s
	l.mutex.Unlock()

	l.emitEvent(events.SessionCreated{SessionID: id, At: s.createdAt})

	s.mu.Lock()
	defer s.mu.Unlock()
	return game.Snapshot()
}

func (l *Lobby) get(id string) (*session, error) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	s, ok := l.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Do runs fn with exclusive access to the session's game.
func (l *Lobby) Do(id string, fn func(g *Game) error) error {
	s, err := l.get(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.game)
}

// Snapshot returns the current view of a session.
func (l *Lobby) Snapshot(id string) (Snapshot, error) {
	var snap Snapshot
	err := l.Do(id, func(g *Game) error {
		snap = g.Snapshot()
		return nil
	})
	return snap, err
}

// HasSession reports whether the session exists.
func (l *Lobby) HasSession(id string) bool {
	_, err := l.get(id)
	return err == nil
}

// CloseSession drops a session and its state.
func (l *Lobby) CloseSession(id string) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if _, ok := l.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(l.sessions, id)
	return nil
}

// SessionIDs lists live sessions, oldest first.
func (l *Lobby) SessionIDs() []string {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	ids := make([]string, 0, len(l.sessions))
	for id := range l.sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := l.sessions[ids[i]], l.sessions[ids[j]]
		if a.createdAt.Equal(b.createdAt) {
			return ids[i] < ids[j]
		}
		return a.createdAt.Before(b.createdAt)
	})
	return ids
}

// AddEventHandler adds an event handler to the lobby
func (l *Lobby) AddEventHandler(handler events.EventHandler) {
	l.handlerMutex.Lock()
	defer l.handlerMutex.Unlock()
	l.eventHandlers = append(l.eventHandlers, handler)
}

func (l *Lobby) handleGameEvent(event events.Event) {
	l.emitEvent(event)
}

// emitEvent notifies all registered handlers of a new event
func (l *Lobby) emitEvent(event events.Event) {
	l.handlerMutex.RLock()
	handlers := l.eventHandlers
	l.handlerMutex.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}
