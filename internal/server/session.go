package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finlens/finlens/internal/statement"
)

const sessionCookie = "finlens_session"

// session is one browser session's server-side context: the statement it
// last uploaded and the matching liquidity snapshot. Chat history lives in
// the chat manager under the same ID. Nothing outlives the session.
type session struct {
	id       string
	lastSeen time.Time

	mu        sync.Mutex
	statement *statement.Statement
	snapshot  statement.Snapshot
}

func (s *session) setStatement(st *statement.Statement, snap statement.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statement = st
	s.snapshot = snap
}

func (s *session) current() (*statement.Statement, statement.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statement, s.snapshot, s.statement != nil
}

// sessionStore owns the active sessions. Expired entries are swept lazily
// on access; there is no background janitor.
type sessionStore struct {
	ttl time.Duration

	mu       sync.Mutex
	sessions map[string]*session
	onExpire func(id string)
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return &sessionStore{
		ttl:      ttl,
		sessions: make(map[string]*session),
	}
}

// get returns the session for the request cookie, creating one when the
// cookie is absent or stale, and refreshes the cookie on the response.
func (st *sessionStore) get(w http.ResponseWriter, r *http.Request) *session {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil {
		id = c.Value
	}

	st.mu.Lock()
	st.sweepLocked()

	s, ok := st.sessions[id]
	if !ok {
		id = uuid.NewString()
		s = &session{id: id}
		st.sessions[id] = s
	}
	s.lastSeen = time.Now()
	st.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return s
}

// sweepLocked drops sessions idle past the TTL. Caller holds st.mu.
func (st *sessionStore) sweepLocked() {
	if st.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-st.ttl)
	for id, s := range st.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(st.sessions, id)
			if st.onExpire != nil {
				st.onExpire(id)
			}
		}
	}
}
