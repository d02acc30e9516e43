package deck

import "fmt"

// Suit is one of the four categories in a standard deck
type Suit int

const (
	Club Suit = iota
	Diamond
	Heart
	Spade
)

// Suits lists every suit in canonical construction order
var Suits = [...]Suit{Club, Diamond, Heart, Spade}

func (s Suit) String() string {
	switch s {
	case Club:
		return "Clubs"
	case Diamond:
		return "Diamonds"
	case Heart:
		return "Hearts"
	case Spade:
		return "Spades"
	default:
		return "Unknown"
	}
}

// Rank is one of the thirteen card values, Ace low (Ace=1 .. King=13)
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Ranks lists every rank in ascending order
var Ranks = [...]Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

func (r Rank) String() string {
	switch r {
	case Ace:
		return "Ace"
	case Jack:
		return "Jack"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return fmt.Sprintf("%d", int(r))
	}
}

// Card pairs a suit and a rank. The fields are unexported so a Card can only
// be built through NewCard with both values present, and never changes after
// construction. Cards are passed around by pointer: the deck's bookkeeping
// and the caller that received a dealt card hold the same handle.
type Card struct {
	suit Suit
	rank Rank
}

// NewCard creates a card with the given suit and rank
func NewCard(suit Suit, rank Rank) *Card {
	return &Card{suit: suit, rank: rank}
}

// Suit returns the card's suit
func (c *Card) Suit() Suit {
	return c.suit
}

// Rank returns the card's rank
func (c *Card) Rank() Rank {
	return c.rank
}

// Equal reports whether two cards have the same suit and rank
func (c *Card) Equal(other *Card) bool {
	if other == nil {
		return false
	}
	return c.suit == other.suit && c.rank == other.rank
}

func (c *Card) String() string {
	return fmt.Sprintf("%s of %s", c.rank, c.suit)
}
