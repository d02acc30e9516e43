package store

import (
	"sort"
	"sync"

	"github.com/tkarlsen/deck-service/internal/session"
)

// MemoryStore is an in-memory implementation of session storage
type MemoryStore struct {
	sessions map[string]*session.Session
	mu       sync.RWMutex
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*session.Session),
	}
}

// Save adds or replaces a session in the store
func (s *MemoryStore) Save(sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.ID] = sess
	return nil
}

// Get retrieves a session by ID
func (s *MemoryStore) Get(id string) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, exists := s.sessions[id]
	if !exists {
		return nil, ErrNotFound
	}

	return sess, nil
}

// Delete removes a session from the store
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[id]; !exists {
		return ErrNotFound
	}

	delete(s.sessions, id)
	return nil
}

// List returns all sessions in the store, oldest first
func (s *MemoryStore) List() ([]*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]*session.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	return sessions, nil
}
