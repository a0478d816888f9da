package durak

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type Suit int

const (
	SuitUnknown  Suit = 0
	SuitSpades   Suit = 1
	SuitDiamonds Suit = 2
	SuitClubs    Suit = 3
	SuitHearts   Suit = 4
)

func (s Suit) String() string {
	switch s {
	case SuitSpades:
		return "Spades"
	case SuitDiamonds:
		return "Diamonds"
	case SuitClubs:
		return "Clubs"
	case SuitHearts:
		return "Hearts"
	}
	return "Unknown"
}

// Letter is the single-letter form used in card literals.
func (s Suit) Letter() string {
	switch s {
	case SuitSpades:
		return "S"
	case SuitDiamonds:
		return "D"
	case SuitClubs:
		return "C"
	case SuitHearts:
		return "H"
	}
	return "?"
}

func AllSuits() []Suit {
	return []Suit{
		SuitSpades,
		SuitDiamonds,
		SuitClubs,
		SuitHearts,
	}
}

// Rank values are the numeric card values, so aces are high.
type Rank int

const (
	RankUnknown Rank = 0
	RankTwo     Rank = 2
	RankThree   Rank = 3
	RankFour    Rank = 4
	RankFive    Rank = 5
	RankSix     Rank = 6
	RankSeven   Rank = 7
	RankEight   Rank = 8
	RankNine    Rank = 9
	RankTen     Rank = 10
	RankJack    Rank = 11
	RankQueen   Rank = 12
	RankKing    Rank = 13
	RankAce     Rank = 14
)

func AllRanks() []Rank {
	ranks := make([]Rank, 0, 13)
	for r := RankTwo; r <= RankAce; r++ {
		ranks = append(ranks, r)
	}
	return ranks
}

func (r Rank) Value() int {
	return int(r)
}

func (r Rank) Valid() bool {
	return r >= RankTwo && r <= RankAce
}

func (r Rank) String() string {
	switch r {
	case RankJack:
		return "J"
	case RankQueen:
		return "Q"
	case RankKing:
		return "K"
	case RankAce:
		return "A"
	}
	if r.Valid() {
		return strconv.Itoa(int(r))
	}
	return "?"
}

type Card struct {
	suit Suit
	rank Rank
}

func NewCard(suit Suit, rank Rank) Card {
	return Card{suit, rank}
}

func (c Card) Suit() Suit {
	return c.suit
}

func (c Card) Rank() Rank {
	return c.rank
}

// IsZero reports whether c is the empty card used for undefended slots.
func (c Card) IsZero() bool {
	return c == Card{}
}

// Outranks only compares cards of the same suit.
func (c Card) Outranks(other Card) bool {
	return c.suit == other.suit && c.rank.Value() > other.rank.Value()
}

// Beats reports whether c is a valid defense against attack with the given
// trump suit.
func (c Card) Beats(attack Card, trumps Suit) bool {
	if c.Outranks(attack) {
		return true
	}
	return c.suit == trumps && attack.suit != trumps
}

func (c Card) String() string {
	if c.IsZero() {
		return "None"
	}
	return c.rank.String() + c.suit.Letter()
}

// ParseCard reads a card literal such as "9S", "10h" or "QD".
func ParseCard(s string) (Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 || len(s) > 3 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}

	var suit Suit
	switch s[len(s)-1] {
	case 'S':
		suit = SuitSpades
	case 'D':
		suit = SuitDiamonds
	case 'C':
		suit = SuitClubs
	case 'H':
		suit = SuitHearts
	default:
		return Card{}, fmt.Errorf("invalid suit in card %q", s)
	}

	var rank Rank
	switch r := s[:len(s)-1]; r {
	case "J":
		rank = RankJack
	case "Q":
		rank = RankQueen
	case "K":
		rank = RankKing
	case "A":
		rank = RankAce
	default:
		// Plain decimal digits only, without a leading zero.
		if r[0] == '0' {
			return Card{}, fmt.Errorf("invalid rank in card %q", s)
		}
		for _, ch := range r {
			if ch < '0' || ch > '9' {
				return Card{}, fmt.Errorf("invalid rank in card %q", s)
			}
		}
		n, err := strconv.Atoi(r)
		if err != nil || !Rank(n).Valid() || Rank(n) > RankTen {
			return Card{}, fmt.Errorf("invalid rank in card %q", s)
		}
		rank = Rank(n)
	}

	return Card{suit, rank}, nil
}

func (c Card) MarshalJSON() ([]byte, error) {
	if c.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(c.String())
}

func (c *Card) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*c = Card{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseCard(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
