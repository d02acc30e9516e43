package deck

import "math/rand/v2"

// Deck owns an ordered sequence of cards. live is the working sequence:
// Shuffle permutes it in place and Deal shrinks it from the top. original
// keeps the deterministic construction order so Reset can restore a full
// deck. The two slices share the same card handles; only the slices
// themselves are independent.
//
// A Deck is not safe for concurrent use. Callers that share one must
// serialize Shuffle, Deal and Reset externally.
type Deck struct {
	original []*Card
	live     []*Card
	rng      *rand.Rand
}

// NewDeck creates a new standard 52-card deck in deterministic order: suits
// Club through Spade, ranks Ace through King within each suit. The deck's
// random source is seeded once here, from process entropy, so repeated runs
// do not shuffle identically.
func NewDeck() *Deck {
	d := &Deck{
		original: make([]*Card, 0, len(Suits)*len(Ranks)),
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}

	for _, suit := range Suits {
		for _, rank := range Ranks {
			d.original = append(d.original, NewCard(suit, rank))
		}
	}

	d.live = make([]*Card, len(d.original))
	copy(d.live, d.original)

	return d
}

// Shuffle randomizes the order of the remaining cards in place.
func (d *Deck) Shuffle() {
	// Fisher-Yates shuffle algorithm. Runs over whatever live currently
	// holds: shuffling a partially dealt deck permutes only the remaining
	// cards and never brings dealt cards back.
	for i := len(d.live) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.live[i], d.live[j] = d.live[j], d.live[i]
	}
}

// Deal removes and returns the top card of the deck. The second return value
// is false once the deck is exhausted; running out of cards is a normal
// condition, not an error.
func (d *Deck) Deal() (*Card, bool) {
	if len(d.live) == 0 {
		return nil, false
	}

	card := d.live[len(d.live)-1]
	d.live = d.live[:len(d.live)-1]
	return card, true
}

// Reset restores the deck to all 52 cards in construction order, discarding
// any shuffled or dealt state. It does not reshuffle. live becomes a fresh
// copy of original, so cards already dealt to callers stay valid.
func (d *Deck) Reset() {
	d.live = make([]*Card, len(d.original))
	copy(d.live, d.original)
}

// Count returns the number of cards remaining in the deck
func (d *Deck) Count() int {
	return len(d.live)
}
