package durak

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Keys in a save file, one "key = value" per line. Every key is required.
const (
	keyDeck           = "deck"
	keyTrumpCard      = "trump card"
	keyTrumpTaken     = "trump card taken"
	keyDefender       = "defender"
	keyPlayer1Visible = "player1 visible"
	keyAttackerCards  = "attacker cards"
	keyDefenderCards  = "defender cards"
	keyPlayer1Hand    = "player 1 hand"
	keyPlayer2Hand    = "player 2 hand"
)

var saveKeys = []string{
	keyDeck,
	keyTrumpCard,
	keyTrumpTaken,
	keyDefender,
	keyPlayer1Visible,
	keyAttackerCards,
	keyDefenderCards,
	keyPlayer1Hand,
	keyPlayer2Hand,
}

// noneValue marks an empty list or an empty defender slot.
const noneValue = "None"

// Save writes the full state of g in the text save format.
func Save(w io.Writer, g *Game) error {
	pairs := g.table.pairs
	attacks := make([]Card, len(pairs))
	defenses := make([]Card, len(pairs))
	for i, p := range pairs {
		attacks[i] = p.Attack
		defenses[i] = p.Defense
	}

	values := map[string]string{
		keyDeck:           formatCards(g.deck.cards),
		keyTrumpCard:      g.deck.trump.String(),
		keyTrumpTaken:     strconv.FormatBool(g.deck.trumpTaken),
		keyDefender:       strconv.Itoa(int(g.defender)),
		keyPlayer1Visible: strconv.FormatBool(g.player1Visible),
		keyAttackerCards:  formatCards(attacks),
		keyDefenderCards:  formatCards(defenses),
		keyPlayer1Hand:    formatCards(g.Player(PlayerOne).hand),
		keyPlayer2Hand:    formatCards(g.Player(PlayerTwo).hand),
	}

	bw := bufio.NewWriter(w)
	for _, k := range saveKeys {
		if _, err := fmt.Fprintf(bw, "%s = %s\n", k, values[k]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveString is Save into a string.
func SaveString(g *Game) string {
	var sb strings.Builder
	Save(&sb, g)
	return sb.String()
}

func formatCards(cards []Card) string {
	if len(cards) == 0 {
		return noneValue
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Load reads a game written by Save. Any missing, repeated, unknown or
// malformed field, or a state that can't occur in play, fails with
// ErrCorruptSave.
func Load(r io.Reader) (*Game, error) {
	values := make(map[string]string, len(saveKeys))
	known := make(map[string]bool, len(saveKeys))
	for _, k := range saveKeys {
		known[k] = true
	}

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		k, v, ok := strings.Cut(text, "=")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: expected key = value", ErrCorruptSave, line)
		}
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !known[k] {
			return nil, fmt.Errorf("%w: line %d: unknown key %q", ErrCorruptSave, line, k)
		}
		if _, dup := values[k]; dup {
			return nil, fmt.Errorf("%w: line %d: %q given twice", ErrCorruptSave, line, k)
		}
		values[k] = v
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}

	for _, k := range saveKeys {
		if _, ok := values[k]; !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrCorruptSave, k)
		}
	}

	g, err := decodeGame(values)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	return g, nil
}

// LoadString is Load from a string.
func LoadString(s string) (*Game, error) {
	return Load(strings.NewReader(s))
}

func decodeGame(values map[string]string) (*Game, error) {
	supply, err := parseCards(values[keyDeck], false)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", keyDeck, err)
	}
	trump, err := ParseCard(values[keyTrumpCard])
	if err != nil {
		return nil, fmt.Errorf("%s: %v", keyTrumpCard, err)
	}
	trumpTaken, err := strconv.ParseBool(values[keyTrumpTaken])
	if err != nil {
		return nil, fmt.Errorf("%s: %v", keyTrumpTaken, err)
	}
	if trumpTaken && len(supply) > 0 {
		return nil, fmt.Errorf("trump card taken with %d cards still in the deck", len(supply))
	}

	n, err := strconv.Atoi(values[keyDefender])
	if err != nil || !PlayerID(n).Valid() {
		return nil, fmt.Errorf("%s: invalid player %q", keyDefender, values[keyDefender])
	}
	defender := PlayerID(n)

	visible, err := strconv.ParseBool(values[keyPlayer1Visible])
	if err != nil {
		return nil, fmt.Errorf("%s: %v", keyPlayer1Visible, err)
	}

	attacks, err := parseCards(values[keyAttackerCards], false)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", keyAttackerCards, err)
	}
	defenses, err := parseCards(values[keyDefenderCards], true)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", keyDefenderCards, err)
	}
	// "None" is both an empty list and a single empty slot.
	if len(attacks) == 0 && len(defenses) == 1 && defenses[0].IsZero() {
		defenses = nil
	}
	if len(attacks) != len(defenses) {
		return nil, fmt.Errorf("%d attacker cards but %d defender cards", len(attacks), len(defenses))
	}

	hand1, err := parseCards(values[keyPlayer1Hand], false)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", keyPlayer1Hand, err)
	}
	hand2, err := parseCards(values[keyPlayer2Hand], false)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", keyPlayer2Hand, err)
	}

	g := &Game{
		deck:           &Deck{cards: supply, trump: trump, trumpTaken: trumpTaken},
		players:        [2]*Player{{id: PlayerOne, hand: hand1}, {id: PlayerTwo, hand: hand2}},
		table:          NewTable(),
		attacker:       defender.Other(),
		defender:       defender,
		player1Visible: visible,
	}

	for i, a := range attacks {
		d := defenses[i]
		if !d.IsZero() && !d.Beats(a, trump.suit) {
			return nil, fmt.Errorf("%s doesn't beat %s", d, a)
		}
		g.table.pairs = append(g.table.pairs, Pair{Attack: a, Defense: d})
		g.Player(g.attacker).played++
		if !d.IsZero() {
			g.Player(g.defender).played++
		}
	}

	// The save has no discard pile; whatever the other keys don't mention
	// was beaten earlier.
	g.discard = g.missing()
	if err := g.CheckInvariants(); err != nil {
		return nil, err
	}
	g.evaluate()
	return g, nil
}

// parseCards reads a space separated list of card literals, or "None" for an
// empty list. With slots set, "None" may also stand for a single empty card.
func parseCards(s string, slots bool) ([]Card, error) {
	if s == noneValue {
		if slots {
			return []Card{{}}, nil
		}
		return nil, nil
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty value, want %s", noneValue)
	}
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		if f == noneValue {
			if !slots {
				return nil, fmt.Errorf("%s inside a card list", noneValue)
			}
			cards = append(cards, Card{})
			continue
		}
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}
