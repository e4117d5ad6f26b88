// Package chat maintains session-scoped conversation history over a
// provider-side conversation handle.
package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/finlens/finlens/internal/llm"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrDisabled is returned when no LLM provider is configured.
var ErrDisabled = eris.New("chat: no LLM provider configured")

// Message is one turn of the transcript.
type Message struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Session is one browser session's conversation. History is append-only:
// the user message lands before the network call, and a failed turn appends
// an inline error entry instead of a reply, so failures stay visible and
// later turns are never lost.
type Session struct {
	ID string

	mu      sync.Mutex
	history []Message
	conv    llm.Conversation
}

// Send relays one user message and returns the transcript entry appended
// after it (the assistant reply, or an inline error message).
func (s *Session) Send(ctx context.Context, prompt string) Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, Message{Role: RoleUser, Content: prompt, At: time.Now()})

	reply, err := s.conv.Send(ctx, prompt)
	if err != nil {
		zap.L().Warn("chat: send failed",
			zap.String("session", s.ID),
			zap.Error(err),
		)
		reply = fmt.Sprintf("The chat request failed: %v", err)
	}

	entry := Message{Role: RoleAssistant, Content: reply, At: time.Now()}
	s.history = append(s.history, entry)
	return entry
}

// History returns a copy of the transcript.
func (s *Session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.history))
	copy(out, s.history)
	return out
}

// Manager owns chat sessions for their lifetime. Sessions are created on
// first use and discarded with the owning browser session; nothing is
// persisted.
type Manager struct {
	provider llm.Provider

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager builds a session manager. provider may be nil; Session calls
// then return ErrDisabled.
func NewManager(provider llm.Provider) *Manager {
	return &Manager{
		provider: provider,
		sessions: make(map[string]*Session),
	}
}

// Enabled reports whether chat is available at all.
func (m *Manager) Enabled() bool { return m.provider != nil }

// Session returns the session with the given ID, creating it (and its
// provider-side conversation) on first use. An empty id gets a fresh ID.
func (m *Manager) Session(ctx context.Context, id string) (*Session, error) {
	if m.provider == nil {
		return nil, ErrDisabled
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s, nil
	}

	conv, err := m.provider.NewConversation(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "chat: create conversation")
	}

	if id == "" {
		id = uuid.NewString()
	}
	s := &Session{ID: id, conv: conv}
	m.sessions[id] = s

	zap.L().Info("chat: session created", zap.String("session", id))
	return s, nil
}

// Reset clears the session's history and starts a fresh provider-side
// conversation; the model retains no memory of the cleared turns.
func (m *Manager) Reset(ctx context.Context, id string) error {
	if m.provider == nil {
		return ErrDisabled
	}

	conv, err := m.provider.NewConversation(ctx)
	if err != nil {
		return eris.Wrap(err, "chat: reset conversation")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil
	}

	s.mu.Lock()
	s.history = nil
	s.conv = conv
	s.mu.Unlock()

	zap.L().Info("chat: session reset", zap.String("session", id))
	return nil
}

// Drop removes a session entirely, used when the owning browser session is
// torn down.
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
