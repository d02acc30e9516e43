package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/tkarlsen/deck-service/internal/deck"
	"github.com/tkarlsen/deck-service/internal/session"
	"github.com/tkarlsen/deck-service/internal/store"
)

// Handlers contains all the API handlers
type Handlers struct {
	store store.Store
	hub   *Hub
}

// NewHandlers creates a new instance of Handlers
func NewHandlers(store store.Store, hub *Hub) *Handlers {
	return &Handlers{
		store: store,
		hub:   hub,
	}
}

// RegisterRoutes registers all API routes
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	// Deck endpoints
	r.HandleFunc("/api/deck/new", h.NewDeck).Methods("POST")
	r.HandleFunc("/api/deck/list", h.ListDecks).Methods("GET")
	r.HandleFunc("/api/deck/{id}", h.GetDeck).Methods("GET")
	r.HandleFunc("/api/deck/{id}", h.CloseDeck).Methods("DELETE")
	r.HandleFunc("/api/deck/{id}/shuffle", h.Shuffle).Methods("POST")
	r.HandleFunc("/api/deck/{id}/deal", h.Deal).Methods("POST")
	r.HandleFunc("/api/deck/{id}/reset", h.Reset).Methods("POST")

	// WebSocket endpoint
	r.HandleFunc("/ws", h.hub.WebSocketHandler)
}

// cardPayload is the wire representation of a card. Built here from the card
// accessors so the deck package stays free of serialization concerns.
type cardPayload struct {
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

func newCardPayload(c *deck.Card) cardPayload {
	return cardPayload{
		Suit: c.Suit().String(),
		Rank: c.Rank().String(),
	}
}

// deckState is the wire representation of a deck session
type deckState struct {
	ID        string    `json:"id"`
	Remaining int       `json:"remaining"`
	Shuffles  int       `json:"shuffles"`
	Dealt     int       `json:"dealt"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newDeckState(s *session.Session) deckState {
	return deckState{
		ID:        s.ID,
		Remaining: s.Remaining(),
		Shuffles:  s.Shuffles(),
		Dealt:     len(s.Dealt()),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt(),
	}
}

// response helper function to send JSON responses
func response(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// error response helper function
func errorResponse(w http.ResponseWriter, status int, message string) {
	response(w, status, map[string]string{"error": message})
}

// NewDeck creates a new deck session
func (h *Handlers) NewDeck(w http.ResponseWriter, r *http.Request) {
	s := session.New()

	if err := h.store.Save(s); err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to save deck")
		return
	}

	if h.hub != nil {
		h.hub.BroadcastToDeck(s.ID, Message{
			Type:   "deckCreated",
			DeckID: s.ID,
			Data:   newDeckState(s),
		})
	}

	response(w, http.StatusCreated, newDeckState(s))
}

// GetDeck returns the current state of a deck session
func (h *Handlers) GetDeck(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	s, err := h.store.Get(vars["id"])
	if err != nil {
		errorResponse(w, http.StatusNotFound, "Deck not found")
		return
	}

	response(w, http.StatusOK, newDeckState(s))
}

// ListDecks returns all deck sessions
func (h *Handlers) ListDecks(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.List()
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to list decks")
		return
	}

	states := make([]deckState, 0, len(sessions))
	for _, s := range sessions {
		states = append(states, newDeckState(s))
	}

	response(w, http.StatusOK, states)
}

// Shuffle randomizes the remaining cards of a deck session
func (h *Handlers) Shuffle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	s, err := h.store.Get(vars["id"])
	if err != nil {
		errorResponse(w, http.StatusNotFound, "Deck not found")
		return
	}

	s.Shuffle()

	if err := h.store.Save(s); err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to update deck")
		return
	}

	if h.hub != nil {
		h.hub.BroadcastToDeck(s.ID, Message{
			Type:   "shuffled",
			DeckID: s.ID,
			Data:   newDeckState(s),
		})
	}

	response(w, http.StatusOK, newDeckState(s))
}

// Deal removes and returns the top card of a deck session. An exhausted deck
// responds 200 with a null card, not an error status: running out of cards
// is expected.
func (h *Handlers) Deal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	s, err := h.store.Get(vars["id"])
	if err != nil {
		errorResponse(w, http.StatusNotFound, "Deck not found")
		return
	}

	var card *cardPayload
	if c, ok := s.Deal(); ok {
		p := newCardPayload(c)
		card = &p
	}

	if err := h.store.Save(s); err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to update deck")
		return
	}

	if h.hub != nil {
		h.hub.BroadcastToDeck(s.ID, Message{
			Type:   "dealt",
			DeckID: s.ID,
			Data: map[string]interface{}{
				"card":      card,
				"remaining": s.Remaining(),
			},
		})
	}

	response(w, http.StatusOK, map[string]interface{}{
		"card":      card,
		"remaining": s.Remaining(),
	})
}

// Reset restores a deck session to the full 52 cards in construction order
func (h *Handlers) Reset(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	s, err := h.store.Get(vars["id"])
	if err != nil {
		errorResponse(w, http.StatusNotFound, "Deck not found")
		return
	}

	s.Reset()

	if err := h.store.Save(s); err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to update deck")
		return
	}

	if h.hub != nil {
		h.hub.BroadcastToDeck(s.ID, Message{
			Type:   "reset",
			DeckID: s.ID,
			Data:   newDeckState(s),
		})
	}

	response(w, http.StatusOK, newDeckState(s))
}

// CloseDeck discards a deck session
func (h *Handlers) CloseDeck(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	deckID := vars["id"]

	if err := h.store.Delete(deckID); err != nil {
		errorResponse(w, http.StatusNotFound, "Deck not found")
		return
	}

	if h.hub != nil {
		h.hub.BroadcastToDeck(deckID, Message{
			Type:   "deckClosed",
			DeckID: deckID,
		})
	}

	response(w, http.StatusOK, map[string]bool{"closed": true})
}
