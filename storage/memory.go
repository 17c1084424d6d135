// Package storage provides in-memory session storage.
//
// Information Hiding:
// - Map storage structure hidden from users
// - Thread-safe access via RWMutex
// - Suitable for ephemeral sessions; nothing survives process exit
package storage

import (
	"sync"

	"github.com/google/uuid"

	"github.com/renswick/atlas/agent"
)

// SessionStore holds live sessions keyed by ID. Sessions are pointers:
// the store tracks them, it does not copy them — one goroutine drives a
// session at a time, so only the map itself needs locking.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*agent.Session
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]*agent.Session),
	}
}

// Put registers a session, replacing any session with the same ID.
func (s *SessionStore) Put(session *agent.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = session
}

// Get returns a session by ID.
func (s *SessionStore) Get(id uuid.UUID) (*agent.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	return session, ok
}

// Delete removes a session.
func (s *SessionStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}

// List returns the IDs of all live sessions.
func (s *SessionStore) List() []uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]uuid.UUID, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}
