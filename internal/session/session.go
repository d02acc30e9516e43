package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tkarlsen/deck-service/internal/deck"
)

// Session is one deck checked out by an API consumer. The deck itself carries
// no locking, so the session provides the mutual exclusion needed when
// concurrent handlers share it: every operation below holds the session mutex
// for its full duration.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	deck      *deck.Deck
	updatedAt time.Time
	shuffles  int
	dealt     []*deck.Card
}

// New creates a session with a fresh, unshuffled deck
func New() *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		updatedAt: now,
		deck:      deck.NewDeck(),
	}
}

// Shuffle randomizes the remaining cards
func (s *Session) Shuffle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deck.Shuffle()
	s.shuffles++
	s.updatedAt = time.Now()
}

// Deal removes and returns the top card. The second return value is false
// when the deck is exhausted.
func (s *Session) Deal() (*deck.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.deck.Deal()
	if !ok {
		return nil, false
	}

	s.dealt = append(s.dealt, card)
	s.updatedAt = time.Now()
	return card, true
}

// Reset restores the full deck in construction order and clears the dealt
// history
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deck.Reset()
	s.dealt = nil
	s.updatedAt = time.Now()
}

// Remaining returns the number of cards left in the deck
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deck.Count()
}

// Dealt returns the cards dealt since creation or the last reset, oldest
// first
func (s *Session) Dealt() []*deck.Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*deck.Card, len(s.dealt))
	copy(out, s.dealt)
	return out
}

// Shuffles returns how many times the deck has been shuffled
func (s *Session) Shuffles() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.shuffles
}

// UpdatedAt returns the time of the last deck operation
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.updatedAt
}
