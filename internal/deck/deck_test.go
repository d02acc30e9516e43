package deck

import (
	"testing"

	"gonum.org/v1/gonum/stat/distuv"
)

// cardIndex maps a card to a unique index in [0, 52)
func cardIndex(c *Card) int {
	return int(c.Suit())*len(Ranks) + int(c.Rank()-Ace)
}

func TestNewDeck(t *testing.T) {
	d := NewDeck()

	if d.Count() != 52 {
		t.Fatalf("expected 52 cards, got %d", d.Count())
	}

	seen := make(map[int]bool)
	for _, c := range d.live {
		key := cardIndex(c)
		if seen[key] {
			t.Fatalf("duplicate card: %s", c)
		}
		seen[key] = true
	}
	if len(seen) != 52 {
		t.Fatalf("expected 52 unique cards, got %d", len(seen))
	}

	// Every suit/rank combination appears exactly once
	for _, suit := range Suits {
		for _, rank := range Ranks {
			if !seen[cardIndex(NewCard(suit, rank))] {
				t.Fatalf("missing card: %s of %s", rank, suit)
			}
		}
	}
}

func TestNewDeck_ConstructionOrder(t *testing.T) {
	d := NewDeck()

	i := 0
	for _, suit := range Suits {
		for _, rank := range Ranks {
			c := d.live[i]
			if c.Suit() != suit || c.Rank() != rank {
				t.Fatalf("position %d: expected %s of %s, got %s", i, rank, suit, c)
			}
			i++
		}
	}
}

func TestDeal_Monotonic(t *testing.T) {
	d := NewDeck()

	seen := make(map[int]bool)
	for i := 0; i < 52; i++ {
		card, ok := d.Deal()
		if !ok {
			t.Fatalf("deal %d failed on non-empty deck", i+1)
		}
		if seen[cardIndex(card)] {
			t.Fatalf("deal %d returned duplicate card %s", i+1, card)
		}
		seen[cardIndex(card)] = true

		if d.Count() != 51-i {
			t.Fatalf("expected count %d after deal %d, got %d", 51-i, i+1, d.Count())
		}
	}

	card, ok := d.Deal()
	if ok || card != nil {
		t.Fatalf("deal on empty deck should return absent, got %v", card)
	}
	if d.Count() != 0 {
		t.Fatalf("count should stay 0 after dealing from empty deck, got %d", d.Count())
	}
}

func TestShuffle_PermutationInvariant(t *testing.T) {
	d := NewDeck()
	d.Shuffle()

	if d.Count() != 52 {
		t.Fatalf("shuffle changed count to %d", d.Count())
	}

	seen := make(map[int]bool)
	for _, c := range d.live {
		seen[cardIndex(c)] = true
	}
	if len(seen) != 52 {
		t.Fatalf("shuffle changed card multiset: %d unique cards", len(seen))
	}
}

func TestShuffle_PartialDeckPermutesOnlyRemaining(t *testing.T) {
	d := NewDeck()

	dealt := make(map[int]bool)
	for i := 0; i < 10; i++ {
		c, _ := d.Deal()
		dealt[cardIndex(c)] = true
	}

	d.Shuffle()

	if d.Count() != 42 {
		t.Fatalf("expected 42 cards after partial shuffle, got %d", d.Count())
	}
	for _, c := range d.live {
		if dealt[cardIndex(c)] {
			t.Fatalf("shuffle brought dealt card %s back into the deck", c)
		}
	}
}

func TestShuffle_DoesNotTouchOriginal(t *testing.T) {
	d := NewDeck()
	d.Shuffle()

	i := 0
	for _, suit := range Suits {
		for _, rank := range Ranks {
			c := d.original[i]
			if c.Suit() != suit || c.Rank() != rank {
				t.Fatalf("original sequence mutated at %d: got %s", i, c)
			}
			i++
		}
	}
}

func TestReset_RestoresConstructionOrder(t *testing.T) {
	d := NewDeck()
	d.Shuffle()
	for i := 0; i < 20; i++ {
		d.Deal()
	}

	d.Reset()

	if d.Count() != 52 {
		t.Fatalf("expected 52 cards after reset, got %d", d.Count())
	}

	// Deal pops from the end, so a reset deck deals the construction
	// sequence back to front, starting with the King of Spades.
	for i := 51; i >= 0; i-- {
		card, ok := d.Deal()
		if !ok {
			t.Fatalf("deal failed at position %d after reset", i)
		}
		if !card.Equal(d.original[i]) {
			t.Fatalf("position %d: expected %s, got %s", i, d.original[i], card)
		}
	}
}

func TestReset_SharesCardHandles(t *testing.T) {
	d := NewDeck()

	first, _ := d.Deal()
	d.Reset()

	// Reset copies the slice, not the cards: the same handle comes back
	card, _ := d.Deal()
	if card != first {
		t.Fatalf("expected the same card handle after reset, got %p and %p", first, card)
	}
}

func TestDeckScenario(t *testing.T) {
	d := NewDeck()
	if d.Count() != 52 {
		t.Fatalf("fresh deck should hold 52 cards, got %d", d.Count())
	}

	if _, ok := d.Deal(); !ok {
		t.Fatal("deal on a fresh deck should succeed")
	}
	if d.Count() != 51 {
		t.Fatalf("expected 51 cards after one deal, got %d", d.Count())
	}

	for i := 0; i < 51; i++ {
		if _, ok := d.Deal(); !ok {
			t.Fatalf("deal %d of 51 failed", i+1)
		}
	}
	if d.Count() != 0 {
		t.Fatalf("expected empty deck, got %d", d.Count())
	}
	if _, ok := d.Deal(); ok {
		t.Fatal("deal on an exhausted deck should return absent")
	}

	d.Reset()
	if d.Count() != 52 {
		t.Fatalf("expected 52 cards after reset, got %d", d.Count())
	}
	if _, ok := d.Deal(); !ok {
		t.Fatal("deal after reset should succeed")
	}
}

// TestShuffle_Uniformity runs repeated reset+shuffle+deal-all cycles and
// applies a chi-squared goodness-of-fit test to each card's final-position
// distribution. The critical value uses alpha=0.001 split across the 52
// per-card tests (Bonferroni) so a spurious failure is vanishingly unlikely
// while a biased shuffle still overshoots it by orders of magnitude.
func TestShuffle_Uniformity(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping statistical shuffle test in short mode")
	}

	const trials = 1300 // 25 expected observations per card/position cell

	var counts [52][52]int
	d := NewDeck()
	for trial := 0; trial < trials; trial++ {
		d.Reset()
		d.Shuffle()
		for pos := 51; pos >= 0; pos-- {
			card, ok := d.Deal()
			if !ok {
				t.Fatalf("deck exhausted early at position %d", pos)
			}
			counts[cardIndex(card)][pos]++
		}
	}

	dist := distuv.ChiSquared{K: 51}
	critical := dist.Quantile(1 - 0.001/52)
	expected := float64(trials) / 52

	for idx := range counts {
		var chi2 float64
		for _, observed := range counts[idx] {
			diff := float64(observed) - expected
			chi2 += diff * diff / expected
		}
		if chi2 >= critical {
			t.Errorf("card %d: chi-squared %.2f exceeds critical value %.2f", idx, chi2, critical)
		}
	}
}
