// Package webchat exposes the assistant over a WebSocket so a web widget
// can hold a conversation. Each session gets its own assistant instance.
package webchat

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/intelligent-lrt/transit-assistant/internal/assistant"
	"github.com/intelligent-lrt/transit-assistant/pkg/logging"
)

// AssistantFactory builds a fresh assistant for a new session.
type AssistantFactory func() *assistant.Assistant

// Handler manages web chat connections and their assistant sessions.
type Handler struct {
	factory AssistantFactory
	logger  *logging.Logger

	mu       sync.RWMutex
	sessions map[string]*session
}

type session struct {
	assistant *assistant.Assistant
}

// InboundMessage is what the widget sends.
type InboundMessage struct {
	Type string `json:"type"` // "message", "begin_booking", "ping"
	Text string `json:"text"`
}

// OutboundMessage is what we send to the widget.
type OutboundMessage struct {
	Type         string                  `json:"type"` // "session", "message", "quick_actions", "pong", "error"
	SessionID    string                  `json:"session_id,omitempty"`
	Message      *assistant.Message      `json:"message,omitempty"`
	QuickActions []assistant.QuickAction `json:"quick_actions,omitempty"`
	Text         string                  `json:"text,omitempty"`
}

// NewHandler creates a web chat handler.
func NewHandler(factory AssistantFactory, logger *logging.Logger) *Handler {
	if factory == nil {
		panic("webchat: assistant factory cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		factory:  factory,
		logger:   logger,
		sessions: make(map[string]*session),
	}
}

// generateSessionID creates a random session identifier.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.New().String()
	}
	return hex.EncodeToString(b)
}

// HandleWebSocket upgrades to WebSocket and runs the chat loop.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = generateSessionID()
	}

	user := assistant.UserContext{
		ID:    r.URL.Query().Get("user"),
		Name:  r.URL.Query().Get("name"),
		Email: r.URL.Query().Get("email"),
	}

	sess, created := h.getOrCreateSession(sessionID)

	_ = websocket.JSON.Send(conn, OutboundMessage{Type: "session", SessionID: sessionID})

	if created {
		welcome := sess.assistant.Initialize(r.Context(), user)
		_ = websocket.JSON.Send(conn, OutboundMessage{Type: "message", Message: &welcome})
		_ = websocket.JSON.Send(conn, OutboundMessage{Type: "quick_actions", QuickActions: sess.assistant.QuickActions()})
	} else {
		// A reconnect replays the conversation so far.
		for _, msg := range sess.assistant.History() {
			m := msg
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "message", Message: &m})
		}
	}

	h.logger.Info("webchat: connection opened", "session_id", sessionID)

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("webchat: connection closed", "session_id", sessionID, "error", err)
			return
		}

		switch msg.Type {
		case "ping":
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})
		case "begin_booking":
			reply := sess.assistant.BeginBooking(r.Context())
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "message", Message: &reply})
		case "message":
			if strings.TrimSpace(msg.Text) == "" {
				continue
			}
			reply := sess.assistant.ProcessMessage(r.Context(), msg.Text)
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "message", Message: &reply})
		}
	}
}

func (h *Handler) getOrCreateSession(sessionID string) (*session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if sess, ok := h.sessions[sessionID]; ok {
		return sess, false
	}
	sess := &session{assistant: h.factory()}
	h.sessions[sessionID] = sess
	return sess, true
}

// ProcessMessage is the HTTP fallback for widgets without WebSocket support.
func (h *Handler) ProcessMessage(ctx context.Context, sessionID string, user assistant.UserContext, text string) (assistant.Message, string) {
	if sessionID == "" {
		sessionID = generateSessionID()
	}
	sess, created := h.getOrCreateSession(sessionID)
	if created {
		sess.assistant.Initialize(ctx, user)
	}
	return sess.assistant.ProcessMessage(ctx, text), sessionID
}

// EndSession drops the assistant bound to a session.
func (h *Handler) EndSession(sessionID string) {
	h.mu.Lock()
	delete(h.sessions, sessionID)
	h.mu.Unlock()
}
