package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now, customize this in production
	},
}

// Message represents a WebSocket message
type Message struct {
	Type   string      `json:"type"`
	DeckID string      `json:"deckId,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// Client represents a connected WebSocket client
type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	deckID string
	hub    *Hub
}

// Hub maintains the set of active clients and broadcasts deck events to them
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	decks      map[string]map[*Client]bool
	mu         sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
		decks:      make(map[string]map[*Client]bool),
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true

			// Add to deck subscriber map
			if client.deckID != "" {
				if _, exists := h.decks[client.deckID]; !exists {
					h.decks[client.deckID] = make(map[*Client]bool)
				}
				h.decks[client.deckID][client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)

				// Remove from deck subscriber map
				if client.deckID != "" && h.decks[client.deckID] != nil {
					delete(h.decks[client.deckID], client)
					// Clean up empty subscriber sets
					if len(h.decks[client.deckID]) == 0 {
						delete(h.decks, client.deckID)
					}
				}
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					h.mu.Lock()
					close(client.send)
					delete(h.clients, client)
					if client.deckID != "" && h.decks[client.deckID] != nil {
						delete(h.decks[client.deckID], client)
					}
					h.mu.Unlock()
				}
			}
		}
	}
}

// BroadcastToDeck sends a message to all clients subscribed to a deck
func (h *Hub) BroadcastToDeck(deckID string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if deckClients, exists := h.decks[deckID]; exists {
		for client := range deckClients {
			select {
			case client.send <- data:
			default:
				// If client buffer is full, we'll handle on next write
			}
		}
	}
}

// WebSocketHandler handles WebSocket connections
func (h *Hub) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	// Extract deckID from query params
	deckID := r.URL.Query().Get("deckId")

	client := &Client{
		conn:   conn,
		send:   make(chan []byte, 256),
		deckID: deckID,
		hub:    h,
	}
	h.register <- client

	// Send a welcome message
	welcomeMsg := Message{
		Type:   "welcome",
		DeckID: deckID,
		Data: map[string]string{
			"message": "Connected to deck server",
		},
	}
	welcomeData, _ := json.Marshal(welcomeMsg)
	client.send <- welcomeData

	// Start goroutines for reading and writing
	go client.readPump()
	go client.writePump()
}

// readPump pumps messages from the WebSocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512 * 1024) // 512KB max message size
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		// Clients are subscribers only; drain and discard anything they send
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
