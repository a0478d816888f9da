package durak

import "math/rand"

type Deck struct {
	cards      []Card
	trump      Card
	trumpTaken bool
}

// NewDeck builds and shuffles all 52 cards with r, then sets the last card
// aside as the trump card.
func NewDeck(r *rand.Rand) *Deck {
	cards := make([]Card, 0, 52)
	for _, s := range AllSuits() {
		for _, rk := range AllRanks() {
			cards = append(cards, NewCard(s, rk))
		}
	}

	r.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	trump := cards[len(cards)-1]
	return &Deck{cards: cards[:len(cards)-1], trump: trump}
}

// Deal draws up to n cards from the front of the supply. If the supply runs
// out first, the trump card goes at the end of the batch. Callers may get
// fewer than n cards.
func (d *Deck) Deal(n int) []Card {
	if n <= 0 {
		return nil
	}

	take := n
	if take > len(d.cards) {
		take = len(d.cards)
	}
	dealt := make([]Card, take, n)
	copy(dealt, d.cards[:take])
	d.cards = d.cards[take:]

	if len(dealt) < n {
		if trump, ok := d.takeTrumpIfExposed(); ok {
			dealt = append(dealt, trump)
		}
	}
	return dealt
}

// takeTrumpIfExposed hands out the trump card once nothing else is left to
// draw. It only succeeds once.
func (d *Deck) takeTrumpIfExposed() (Card, bool) {
	if len(d.cards) > 0 || d.trumpTaken {
		return Card{}, false
	}
	d.trumpTaken = true
	return d.trump, true
}

// Remaining is the number of cards in the supply, not counting the trump card.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

func (d *Deck) TrumpCard() Card {
	return d.trump
}

func (d *Deck) TrumpSuit() Suit {
	return d.trump.suit
}

func (d *Deck) TrumpTaken() bool {
	return d.trumpTaken
}

// IsEmpty reports whether there is nothing left to draw, trump included.
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0 && d.trumpTaken
}

// Supply returns a copy of the undealt cards in draw order.
func (d *Deck) Supply() []Card {
	return append([]Card(nil), d.cards...)
}
