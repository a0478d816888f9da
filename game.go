package durak

import (
	"fmt"
	"math/rand"

	"golang.org/x/exp/slices"
)

// HandSize is the number of cards players are topped up to after each round.
const HandSize = 6

type Phase string

const (
	PhaseIdle            Phase = "idle"
	PhaseAwaitingDefense Phase = "awaiting_defense"
	PhaseResolved        Phase = "resolved"
	PhaseGameOver        Phase = "game_over"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusTie        Status = "tie"
	StatusWin        Status = "win"
)

type Result struct {
	Status Status   `json:"status"`
	Winner PlayerID `json:"winner,omitempty"`
}

func (r Result) String() string {
	switch r.Status {
	case StatusWin:
		return r.Winner.String() + " wins"
	case StatusTie:
		return "Tie"
	}
	return "In progress"
}

// Game is the authoritative state of one two-player session. It is not safe
// for concurrent use.
type Game struct {
	deck    *Deck
	players [2]*Player
	table   *Table
	discard []Card

	attacker PlayerID
	defender PlayerID
	phase    Phase
	result   Result

	player1Visible bool
}

// NewGame shuffles a deck from seed and deals the opening hands. Player one
// attacks first.
func NewGame(seed int64) *Game {
	return newGame(NewDeck(rand.New(rand.NewSource(seed))))
}

func newGame(deck *Deck) *Game {
	g := &Game{
		deck:           deck,
		players:        [2]*Player{NewPlayer(PlayerOne), NewPlayer(PlayerTwo)},
		table:          NewTable(),
		attacker:       PlayerOne,
		defender:       PlayerTwo,
		phase:          PhaseIdle,
		result:         Result{Status: StatusInProgress},
		player1Visible: true,
	}
	g.refill(g.attacker)
	g.evaluate()
	return g
}

func (g *Game) Player(id PlayerID) *Player {
	if !id.Valid() {
		return nil
	}
	return g.players[id-1]
}

func (g *Game) Deck() *Deck {
	return g.deck
}

func (g *Game) Table() *Table {
	return g.table
}

func (g *Game) Attacker() PlayerID {
	return g.attacker
}

func (g *Game) Defender() PlayerID {
	return g.defender
}

func (g *Game) Phase() Phase {
	return g.phase
}

func (g *Game) Result() Result {
	return g.result
}

func (g *Game) Player1Visible() bool {
	return g.player1Visible
}

// FlipView swaps which hand a hot-seat client shows face up.
func (g *Game) FlipView() {
	g.player1Visible = !g.player1Visible
}

func (g *Game) over() bool {
	return g.phase == PhaseGameOver
}

func (g *Game) Attack(id PlayerID, card Card) error {
	if g.over() {
		return fmt.Errorf("%w: game is over", ErrIllegalIntent)
	}
	if id != g.attacker {
		return fmt.Errorf("%w: %s is not attacking", ErrIllegalIntent, id)
	}

	p := g.Player(id)
	if !p.Has(card) {
		return fmt.Errorf("%w: %s doesn't hold %s", ErrNotInHand, id, card)
	}
	if err := g.table.checkAttack(card); err != nil {
		return err
	}
	if _, err := p.RemoveFromHand(card); err != nil {
		return err
	}
	g.table.pairs = append(g.table.pairs, Pair{Attack: card})
	p.played++

	g.phase = PhaseAwaitingDefense
	return nil
}

// Defend covers attack with defense. A failed attempt changes nothing.
func (g *Game) Defend(id PlayerID, attack, defense Card) error {
	if g.over() {
		return fmt.Errorf("%w: game is over", ErrIllegalIntent)
	}
	if id != g.defender {
		return fmt.Errorf("%w: %s is not defending", ErrIllegalIntent, id)
	}

	p := g.Player(id)
	if !p.Has(defense) {
		return fmt.Errorf("%w: %s doesn't hold %s", ErrNotInHand, id, defense)
	}
	i, err := g.table.openPair(attack, defense, g.deck.TrumpSuit())
	if err != nil {
		return err
	}
	if _, err := p.RemoveFromHand(defense); err != nil {
		return err
	}
	g.table.pairs[i].Defense = defense
	p.played++
	return nil
}

// EndRound is called by the attacker once every card on the table has been
// beaten. The beaten cards leave play and the defender attacks next.
func (g *Game) EndRound(id PlayerID) error {
	if g.over() {
		return fmt.Errorf("%w: game is over", ErrIllegalIntent)
	}
	if id != g.attacker {
		return fmt.Errorf("%w: only the attacker can end the round", ErrIllegalIntent)
	}
	if !g.CanEndRound() {
		return fmt.Errorf("%w: cards on the table are still open", ErrIllegalIntent)
	}

	g.discard = append(g.discard, g.table.AllCards()...)
	drawsFirst := g.attacker
	g.attacker, g.defender = g.defender, g.attacker
	g.resolve(drawsFirst)
	return nil
}

// TakeCards is called by the defender to pick up the whole table. The
// defender stays on defense.
func (g *Game) TakeCards(id PlayerID) error {
	if g.over() {
		return fmt.Errorf("%w: game is over", ErrIllegalIntent)
	}
	if id != g.defender {
		return fmt.Errorf("%w: only the defender can take cards", ErrIllegalIntent)
	}
	if !g.CanTakeCards() {
		return fmt.Errorf("%w: nothing to take", ErrIllegalIntent)
	}

	g.Player(g.defender).DealInto(g.table.AllCards()...)
	g.resolve(g.attacker)
	return nil
}

func (g *Game) resolve(drawsFirst PlayerID) {
	g.phase = PhaseResolved
	g.table.Clear()
	for _, p := range g.players {
		p.played = 0
	}
	g.refill(drawsFirst)
	g.evaluate()
}

func (g *Game) refill(first PlayerID) {
	for _, id := range []PlayerID{first, first.Other()} {
		p := g.Player(id)
		if n := HandSize - p.HandSize(); n > 0 {
			p.DealInto(g.deck.Deal(n)...)
		}
	}
}

// evaluate settles the result and phase from the current hands and table.
func (g *Game) evaluate() {
	g.result = Result{Status: StatusInProgress}
	if g.deck.IsEmpty() && g.table.Empty() {
		one := g.Player(PlayerOne).IsEmptyHanded()
		two := g.Player(PlayerTwo).IsEmptyHanded()
		switch {
		case one && two:
			g.result = Result{Status: StatusTie}
		case one:
			g.result = Result{Status: StatusWin, Winner: PlayerOne}
		case two:
			g.result = Result{Status: StatusWin, Winner: PlayerTwo}
		}
	}

	switch {
	case g.result.Status != StatusInProgress:
		g.phase = PhaseGameOver
	case g.table.Empty():
		g.phase = PhaseIdle
	default:
		g.phase = PhaseAwaitingDefense
	}
}

// CanAttack reports whether id could put at least one more card on the table.
func (g *Game) CanAttack(id PlayerID) bool {
	if g.over() || id != g.attacker {
		return false
	}
	for _, c := range g.Player(id).hand {
		if g.canAdd(c) {
			return true
		}
	}
	return false
}

func (g *Game) canAdd(c Card) bool {
	return g.table.checkAttack(c) == nil
}

func (g *Game) CanEndRound() bool {
	return !g.over() && !g.table.Empty() && g.table.AllDefended()
}

func (g *Game) CanTakeCards() bool {
	return !g.over() && len(g.table.UndefendedAttackCards()) > 0
}

// Discarded returns the cards beaten in earlier rounds, in the order they
// left the table.
func (g *Game) Discarded() []Card {
	return slices.Clone(g.discard)
}

// missing lists, in suit and rank order, the cards found neither in play nor
// on the discard pile.
func (g *Game) missing() []Card {
	known := make(map[Card]bool)
	for _, c := range append(g.cardsInPlay(), g.discard...) {
		known[c] = true
	}
	var out []Card
	for _, s := range AllSuits() {
		for _, r := range AllRanks() {
			if c := NewCard(s, r); !known[c] {
				out = append(out, c)
			}
		}
	}
	return out
}

func (g *Game) cardsInPlay() []Card {
	cards := g.deck.Supply()
	if !g.deck.trumpTaken {
		cards = append(cards, g.deck.trump)
	}
	for _, p := range g.players {
		cards = append(cards, p.hand...)
	}
	return append(cards, g.table.AllCards()...)
}

// CheckInvariants verifies that no card is duplicated or malformed and that
// the cards in play plus the discard pile add up to the full deck.
func (g *Game) CheckInvariants() error {
	seen := make(map[Card]bool)
	for _, c := range append(g.cardsInPlay(), g.discard...) {
		if !c.rank.Valid() || c.suit < SuitSpades || c.suit > SuitHearts {
			return fmt.Errorf("malformed card %v", c)
		}
		if seen[c] {
			return fmt.Errorf("duplicate card %s", c)
		}
		seen[c] = true
	}
	if n := len(seen); n != 52 {
		return fmt.Errorf("card count is %d, want 52", n)
	}
	if g.attacker.Other() != g.defender || !g.attacker.Valid() {
		return fmt.Errorf("bad roles: attacker %s, defender %s", g.attacker, g.defender)
	}
	return nil
}

// Equal compares the full authoritative state of two games.
func (g *Game) Equal(o *Game) bool {
	if g.attacker != o.attacker || g.defender != o.defender || g.phase != o.phase ||
		g.result != o.result || g.player1Visible != o.player1Visible {
		return false
	}
	if !slices.Equal(g.deck.cards, o.deck.cards) || g.deck.trump != o.deck.trump ||
		g.deck.trumpTaken != o.deck.trumpTaken {
		return false
	}
	for i := range g.players {
		a, b := g.players[i], o.players[i]
		if a.id != b.id || a.played != b.played || !slices.Equal(a.hand, b.hand) {
			return false
		}
	}
	return slices.Equal(g.table.pairs, o.table.pairs) && sameCards(g.discard, o.discard)
}

// sameCards compares two duplicate-free card sets, ignoring order. A loaded
// game only knows which cards were discarded, not when.
func sameCards(a, b []Card) bool {
	if len(a) != len(b) {
		return false
	}
	in := make(map[Card]bool, len(a))
	for _, c := range a {
		in[c] = true
	}
	for _, c := range b {
		if !in[c] {
			return false
		}
	}
	return true
}

// Snapshot is a read-only copy of a game for rendering.
type Snapshot struct {
	Attacker       PlayerID            `json:"attacker"`
	Defender       PlayerID            `json:"defender"`
	Phase          Phase               `json:"phase"`
	Result         Result              `json:"result"`
	TrumpCard      Card                `json:"trump_card"`
	TrumpTaken     bool                `json:"trump_taken"`
	DeckRemaining  int                 `json:"deck_remaining"`
	Hands          map[PlayerID][]Card `json:"hands"`
	Table          []Pair              `json:"table"`
	Player1Visible bool                `json:"player1_visible"`
	CanEndRound    bool                `json:"can_end_round"`
	CanTakeCards   bool                `json:"can_take_cards"`
}

func (g *Game) Snapshot() Snapshot {
	hands := make(map[PlayerID][]Card, len(g.players))
	for _, p := range g.players {
		hands[p.id] = p.Hand()
	}
	return Snapshot{
		Attacker:       g.attacker,
		Defender:       g.defender,
		Phase:          g.phase,
		Result:         g.result,
		TrumpCard:      g.deck.trump,
		TrumpTaken:     g.deck.trumpTaken,
		DeckRemaining:  g.deck.Remaining(),
		Hands:          hands,
		Table:          g.table.Pairs(),
		Player1Visible: g.player1Visible,
		CanEndRound:    g.CanEndRound(),
		CanTakeCards:   g.CanTakeCards(),
	}
}
