// Package transport exposes sessions over a websocket endpoint.
//
// Each connection gets its own session, world state, and orchestrator;
// utterances on one connection are processed to completion before the
// next is read. Cross-connection sharing does not exist by construction.
//
// Information Hiding:
// - Connection lifecycle and frame encoding hidden
// - Inbound message schema hidden
package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/renswick/atlas/agent"
	"github.com/renswick/atlas/config"
	"github.com/renswick/atlas/errorsx"
	"github.com/renswick/atlas/geocode"
	"github.com/renswick/atlas/llm"
	"github.com/renswick/atlas/logging"
	"github.com/renswick/atlas/parser"
	"github.com/renswick/atlas/storage"
)

// inboundMessage is the only frame shape the server understands.
// Frames with any other type are ignored.
type inboundMessage struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Server serves the conversation loop over /ws.
type Server struct {
	settings config.Settings
	provider llm.Provider
	parser   *parser.Parser
	geocoder geocode.Client
	store    *storage.SessionStore
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a websocket server. The map frontend is served from
// a different origin, so cross-origin upgrades are accepted.
func NewServer(settings config.Settings, provider llm.Provider, geocoder geocode.Client, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		settings: settings,
		logger:   logging.ForComponent(logger, "transport"),
		provider: provider,
		parser:   parser.New(),
		geocoder: geocoder,
		store:    storage.NewSessionStore(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP handler with the /ws endpoint mounted.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// ListenAndServe blocks serving the configured listen address.
func (s *Server) ListenAndServe() error {
	s.logger.Info("listening", "addr", s.settings.Listen)
	return http.ListenAndServe(s.settings.Listen, s.Handler())
}

// Sessions returns the store of live sessions.
func (s *Server) Sessions() *storage.SessionStore {
	return s.store
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	session := agent.NewSession(s.settings.Center(), s.settings.Map.Zoom, s.geocoder)
	s.store.Put(session)
	defer s.store.Delete(session.ID)

	notifier := &connNotifier{conn: conn}
	orchestrator := agent.NewOrchestrator(s.provider, s.parser, notifier, s.logger).
		WithMaxIterations(s.settings.MaxIterations)

	s.logger.Info("connection opened", "session", session.ID)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.logger.Info("connection closed", "session", session.ID, "error", err)
			return
		}

		var message inboundMessage
		if err := json.Unmarshal(data, &message); err != nil {
			_ = notifier.Notify(agent.Event{
				Type:    agent.EventSystemMessage,
				Content: "Invalid JSON format received",
			})
			continue
		}
		if message.Type != "chat_message" {
			continue
		}

		// One utterance runs to completion before the next frame is read.
		if err := orchestrator.Run(r.Context(), session, message.Content); err != nil {
			s.logger.Warn("turn ended with error",
				"session", session.ID,
				"reason", errorsx.Reason(err),
				"error", err)
		}
	}
}

// connNotifier writes events as JSON text frames. gorilla connections
// allow one concurrent writer, hence the mutex.
type connNotifier struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (n *connNotifier) Notify(event agent.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errorsx.Wrap(err, errorsx.ReasonSerialization)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	return n.conn.WriteMessage(websocket.TextMessage, payload)
}
