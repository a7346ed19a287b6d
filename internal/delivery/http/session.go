package http

import (
	"sync"

	"github.com/shopmate/backend/internal/domain"
)

// SessionStore keeps one isolated PreferenceState per conversation. States are
// values: a turn reads a copy, and the resolved state is written back whole,
// so two sessions can never share or concurrently mutate one state.
type SessionStore struct {
	mutex  sync.RWMutex
	states map[string]domain.PreferenceState
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{states: make(map[string]domain.PreferenceState)}
}

// Get returns the state for a session, or a zero state for a new session.
func (s *SessionStore) Get(sessionID string) domain.PreferenceState {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.states[sessionID]
}

// Put stores the state for a session.
func (s *SessionStore) Put(sessionID string, state domain.PreferenceState) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.states[sessionID] = state
}

// End discards a session's state.
func (s *SessionStore) End(sessionID string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	_, existed := s.states[sessionID]
	delete(s.states, sessionID)
	return existed
}

// Len returns the number of live sessions (for monitoring).
func (s *SessionStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.states)
}
