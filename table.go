package durak

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Pair is one attacking card and the card that covered it, if any.
type Pair struct {
	Attack  Card `json:"attack"`
	Defense Card `json:"defense"`
}

func (p Pair) Defended() bool {
	return !p.Defense.IsZero()
}

type Table struct {
	pairs []Pair
}

func NewTable() *Table {
	return &Table{}
}

// AddAttack opens a new undefended pair. Apart from the opening card, only
// ranks already on the table may be played.
func (t *Table) AddAttack(card Card) error {
	if err := t.checkAttack(card); err != nil {
		return err
	}
	t.pairs = append(t.pairs, Pair{Attack: card})
	return nil
}

func (t *Table) checkAttack(card Card) error {
	if len(t.pairs) > 0 && !slices.Contains(t.Ranks(), card.rank) {
		return fmt.Errorf("%w: no %s on the table", ErrIllegalIntent, card.rank)
	}
	return nil
}

// Defend covers attack with defense if that is a legal defense.
func (t *Table) Defend(attack, defense Card, trumps Suit) error {
	i, err := t.openPair(attack, defense, trumps)
	if err != nil {
		return err
	}
	t.pairs[i].Defense = defense
	return nil
}

// openPair finds the uncovered pair for attack that defense can beat.
func (t *Table) openPair(attack, defense Card, trumps Suit) (int, error) {
	i := slices.IndexFunc(t.pairs, func(p Pair) bool { return p.Attack == attack })
	if i < 0 {
		return -1, fmt.Errorf("%w: %s is not on the table", ErrInvalidDefense, attack)
	}
	if t.pairs[i].Defended() {
		return -1, fmt.Errorf("%w: %s is already covered", ErrInvalidDefense, attack)
	}
	if !defense.Beats(attack, trumps) {
		return -1, fmt.Errorf("%w: %s doesn't beat %s", ErrInvalidDefense, defense, attack)
	}
	return i, nil
}

// AllDefended is true for an empty table too; callers that need cards on the
// table check Len.
func (t *Table) AllDefended() bool {
	for _, p := range t.pairs {
		if !p.Defended() {
			return false
		}
	}
	return true
}

func (t *Table) UndefendedAttackCards() []Card {
	var cards []Card
	for _, p := range t.pairs {
		if !p.Defended() {
			cards = append(cards, p.Attack)
		}
	}
	return cards
}

// AllCards returns every card on the table in play order.
func (t *Table) AllCards() []Card {
	cards := make([]Card, 0, len(t.pairs)*2)
	for _, p := range t.pairs {
		cards = append(cards, p.Attack)
		if p.Defended() {
			cards = append(cards, p.Defense)
		}
	}
	return cards
}

// Ranks lists the distinct ranks on either side of the table.
func (t *Table) Ranks() []Rank {
	var ranks []Rank
	for _, c := range t.AllCards() {
		if !slices.Contains(ranks, c.rank) {
			ranks = append(ranks, c.rank)
		}
	}
	return ranks
}

func (t *Table) Pairs() []Pair {
	return slices.Clone(t.pairs)
}

func (t *Table) Len() int {
	return len(t.pairs)
}

func (t *Table) Empty() bool {
	return len(t.pairs) == 0
}

func (t *Table) Clear() {
	t.pairs = nil
}
