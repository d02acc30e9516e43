package store

import (
	"errors"

	"github.com/tkarlsen/deck-service/internal/session"
)

// ErrNotFound is returned when no session exists for the requested ID
var ErrNotFound = errors.New("session not found")

// Store defines the interface for deck session storage
type Store interface {
	// Save adds or replaces a session in the store
	Save(s *session.Session) error

	// Get retrieves a session by ID
	Get(id string) (*session.Session, error)

	// Delete removes a session from the store
	Delete(id string) error

	// List returns all sessions in the store
	List() ([]*session.Session, error)
}
