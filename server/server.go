package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lazharichir/blackjack/domain"
	domainevents "github.com/lazharichir/blackjack/domain/events"
	"github.com/lazharichir/blackjack/ledger"
	"github.com/lazharichir/blackjack/server/connection"
	"github.com/lazharichir/blackjack/server/events"
	"github.com/lazharichir/blackjack/server/handlers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	shutdownWait   = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // In production, implement proper origin checks
	},
}

// Server exposes the lobby over HTTP and WebSocket
type Server struct {
	lobby      *domain.Lobby
	store      domainevents.EventStore
	gatherer   prometheus.Gatherer
	prices     ledger.PriceTable
	connMgr    *connection.Manager
	cmdRouter  *handlers.CommandRouter
	dispatcher *events.Dispatcher
	log        *zap.Logger
}

// PriceResponse is one row of the price table
type PriceResponse struct {
	Asset ledger.Asset `json:"asset"`
	USD   string       `json:"usd"`
}

// NewServer creates a new blackjack server and subscribes its dispatcher
// to the lobby's events
func NewServer(lobby *domain.Lobby, store domainevents.EventStore, gatherer prometheus.Gatherer, prices ledger.PriceTable, log *zap.Logger) *Server {
	connMgr := connection.NewManager()

	dispatcher := events.NewDispatcher(connMgr, log)
	cmdRouter := handlers.NewCommandRouter(lobby, connMgr, log)

	// Register dispatcher as event handler for the lobby
	lobby.AddEventHandler(dispatcher.HandleEvent)

	if prices == nil {
		prices = ledger.DefaultPrices()
	}

	return &Server{
		lobby:      lobby,
		store:      store,
		gatherer:   gatherer,
		prices:     prices,
		connMgr:    connMgr,
		cmdRouter:  cmdRouter,
		dispatcher: dispatcher,
		log:        log,
	}
}

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// Handler returns the routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/api/prices", corsMiddleware(s.handleGetPrices))
	mux.HandleFunc("/api/sessions", corsMiddleware(s.handleCreateSession))
	mux.HandleFunc("/api/sessions/{id}", corsMiddleware(s.handleSession))
	mux.HandleFunc("/api/sessions/{id}/commands", corsMiddleware(s.handleCommand))
	mux.HandleFunc("/api/sessions/{id}/events", corsMiddleware(s.handleGetEvents))
	return mux
}

// Start serves on the given port until ctx is cancelled
func (s *Server) Start(ctx context.Context, port string) error {
	// Start connection manager in its own goroutine
	go s.connMgr.Start(ctx.Done())

	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Warn("server shutdown", zap.Error(err))
		}
	}()

	s.log.Info("starting server", zap.String("port", port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleWebSocket attaches a connection to a session. Without a session
// query parameter a new session is created.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	var snapshot domain.Snapshot
	if sessionID == "" {
		snapshot = s.lobby.CreateSession()
		sessionID = snapshot.SessionID
	} else {
		var err error
		if snapshot, err = s.lobby.Snapshot(sessionID); err != nil {
			writeError(w, err)
			return
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("error upgrading to websocket", zap.Error(err))
		return
	}

	client := &connection.Client{
		ID:        uuid.NewString(),
		Conn:      conn,
		Send:      make(chan []byte, 256),
		SessionID: sessionID,
	}
	s.log.Info("client connected",
		zap.String("remote", r.RemoteAddr), zap.String("client", client.ID), zap.String("session", sessionID))

	if hello, err := json.Marshal(handlers.Envelope{Name: "STATE", Payload: snapshot}); err == nil {
		client.Send <- hello
	}

	// Register with connection manager
	s.connMgr.Register <- client

	// Handle reading and writing in separate goroutines
	go s.readPump(client)
	go s.writePump(client)
}

// readPump reads commands from the WebSocket connection
func (s *Server) readPump(client *connection.Client) {
	defer func() {
		s.connMgr.Unregister <- client
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	_ = client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		return client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.Warn("websocket read", zap.String("client", client.ID), zap.Error(err))
			}
			break
		}

		// Process the message through the command router
		if err := s.cmdRouter.HandleCommand(client, message); err != nil {
			s.log.Debug("command rejected",
				zap.String("session", client.SessionID), zap.String("code", handlers.ErrorCode(err)), zap.Error(err))
		}
	}
}

// writePump sends queued messages and keeps the connection alive with pings
func (s *Server) writePump(client *connection.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed
				_ = client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.log.Warn("websocket write", zap.String("client", client.ID), zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGetPrices returns the USD price table
func (s *Server) handleGetPrices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	prices := make([]PriceResponse, 0, len(ledger.Assets))
	for _, asset := range ledger.Assets {
		prices = append(prices, PriceResponse{Asset: asset, USD: s.prices[asset].String()})
	}
	writeJSON(w, http.StatusOK, prices)
}

// handleCreateSession creates a new session and returns its state
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		writeJSON(w, http.StatusCreated, s.lobby.CreateSession())
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string][]string{"sessions": s.lobby.SessionIDs()})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleSession returns or closes a session
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	switch r.Method {
	case http.MethodGet:
		snapshot, err := s.lobby.Snapshot(id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snapshot)
	case http.MethodDelete:
		if err := s.lobby.CloseSession(id); err != nil {
			writeError(w, err)
			return
		}
		if forgetter, ok := s.store.(interface{ Forget(string) }); ok {
			forgetter.Forget(id)
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleCommand runs one command, with the same body as over WebSocket
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxMessageSize))
	if err != nil {
		writeError(w, handlers.ErrBadRequest)
		return
	}

	reply, err := s.cmdRouter.Execute(r.PathValue("id"), body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

// handleGetEvents returns the recent events of a session
func (s *Server) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.PathValue("id")
	if !s.lobby.HasSession(id) {
		writeError(w, domain.ErrSessionNotFound)
		return
	}

	loaded, err := s.store.LoadEvents(id)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]json.RawMessage, 0, len(loaded))
	for _, event := range loaded {
		data, err := events.Encode(event)
		if err != nil {
			s.log.Error("encode stored event", zap.String("name", event.Name()), zap.Error(err))
			continue
		}
		out = append(out, data)
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	view := handlers.ErrorView(err)
	writeJSON(w, statusFor(view.Code), view)
}

func statusFor(code string) int {
	switch code {
	case "SESSION_NOT_FOUND":
		return http.StatusNotFound
	case "BAD_REQUEST", "UNKNOWN_COMMAND":
		return http.StatusBadRequest
	case "ILLEGAL_TRANSITION":
		return http.StatusConflict
	case "INTERNAL":
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}
