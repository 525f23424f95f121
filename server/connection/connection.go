package connection

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Client represents a connected player
type Client struct {
	ID        string
	Conn      *websocket.Conn
	Send      chan []byte
	SessionID string // The game session this connection drives
}

// Manager handles all client connections
type Manager struct {
	clients    map[string]*Client            // Map connection IDs to clients
	sessionMap map[string]map[string]*Client // Map session IDs to their connections
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

// NewManager creates a new connection manager
func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		sessionMap: make(map[string]map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start begins processing connection events until done is closed
func (m *Manager) Start(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case client := <-m.Register:
			m.add(client)
		case client := <-m.Unregister:
			m.remove(client)
		}
	}
}

func (m *Manager) add(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.clients[client.ID] = client
	if client.SessionID != "" {
		if m.sessionMap[client.SessionID] == nil {
			m.sessionMap[client.SessionID] = make(map[string]*Client)
		}
		m.sessionMap[client.SessionID][client.ID] = client
	}
}

func (m *Manager) remove(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.clients[client.ID]; !ok {
		return
	}
	if conns, ok := m.sessionMap[client.SessionID]; ok {
		delete(conns, client.ID)
		if len(conns) == 0 {
			delete(m.sessionMap, client.SessionID)
		}
	}
	delete(m.clients, client.ID)
	close(client.Send)
}

// SendToClient sends a message to one connection. It never blocks: a
// client whose buffer is full misses the message.
func (m *Manager) SendToClient(clientID string, message []byte) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	client, ok := m.clients[clientID]
	if !ok {
		return false
	}
	return trySend(client, message)
}

// SendToSession sends a message to every connection of a session
func (m *Manager) SendToSession(sessionID string, message []byte) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	sent := 0
	for _, client := range m.sessionMap[sessionID] {
		if trySend(client, message) {
			sent++
		}
	}
	return sent
}

// ClientCount returns the number of live connections
func (m *Manager) ClientCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

func trySend(client *Client, message []byte) bool {
	select {
	case client.Send <- message:
		return true
	default:
		return false
	}
}
