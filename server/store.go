package server

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"shapetac/engine"
)

// ErrSessionNotFound is returned for unknown game IDs.
var ErrSessionNotFound = errors.New("game not found")

// Session wraps one engine with the mutex that serializes its moves.
// The engine itself is single-threaded per game; concurrent requests
// for the same game queue here.
type Session struct {
	mu  sync.Mutex
	eng *engine.Engine
}

// Do runs fn with exclusive access to the session's engine.
func (s *Session) Do(fn func(*engine.Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.eng)
}

// Store keeps live game sessions in memory, keyed by UUID. State is
// lost on process restart; there is no cross-session shared resource.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create registers a new session and returns its ID.
func (st *Store) Create(eng *engine.Engine) string {
	id := uuid.NewString()
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[id] = &Session{eng: eng}
	return id
}

// Get looks up a session by ID.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if s, ok := st.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrSessionNotFound
}

// Delete disposes a finished session.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}
