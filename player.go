package durak

import (
	"fmt"

	"golang.org/x/exp/slices"
)

type PlayerID int

const (
	PlayerNone PlayerID = 0
	PlayerOne  PlayerID = 1
	PlayerTwo  PlayerID = 2
)

func (id PlayerID) Valid() bool {
	return id == PlayerOne || id == PlayerTwo
}

// Other returns the opponent in a two player game.
func (id PlayerID) Other() PlayerID {
	switch id {
	case PlayerOne:
		return PlayerTwo
	case PlayerTwo:
		return PlayerOne
	}
	return PlayerNone
}

func (id PlayerID) String() string {
	if !id.Valid() {
		return "Nobody"
	}
	return fmt.Sprintf("Player %d", int(id))
}

type Player struct {
	id     PlayerID
	hand   []Card
	played int
}

func NewPlayer(id PlayerID) *Player {
	return &Player{id: id}
}

func (p *Player) ID() PlayerID {
	return p.id
}

func (p *Player) DealInto(cards ...Card) {
	p.hand = append(p.hand, cards...)
}

// RemoveFromHand takes card out of the hand, keeping the order of the rest.
func (p *Player) RemoveFromHand(card Card) (Card, error) {
	i := slices.Index(p.hand, card)
	if i < 0 {
		return Card{}, fmt.Errorf("%w: %s doesn't hold %s", ErrNotInHand, p.id, card)
	}
	p.hand = slices.Delete(p.hand, i, i+1)
	return card, nil
}

func (p *Player) Has(card Card) bool {
	return slices.Contains(p.hand, card)
}

func (p *Player) Hand() []Card {
	return slices.Clone(p.hand)
}

func (p *Player) HandSize() int {
	return len(p.hand)
}

func (p *Player) IsEmptyHanded() bool {
	return len(p.hand) == 0
}

// CardsPlayed is the number of cards p has put on the table this round.
func (p *Player) CardsPlayed() int {
	return p.played
}
