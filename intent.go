package durak

import "fmt"

type IntentType string

const (
	IntentAttack    IntentType = "attack"
	IntentDefend    IntentType = "defend"
	IntentEndRound  IntentType = "end_round"
	IntentTakeCards IntentType = "take_cards"
)

// Intent is one player action coming from the presentation layer. Card is the
// card being played; Attack is the card being covered when defending.
type Intent struct {
	Type   IntentType `json:"type"`
	Player PlayerID   `json:"player"`
	Card   Card       `json:"card"`
	Attack Card       `json:"attack"`
}

// Apply runs a single intent against the game. On error the game is left as
// it was.
func (g *Game) Apply(in Intent) error {
	switch in.Type {
	case IntentAttack:
		return g.Attack(in.Player, in.Card)
	case IntentDefend:
		return g.Defend(in.Player, in.Attack, in.Card)
	case IntentEndRound:
		return g.EndRound(in.Player)
	case IntentTakeCards:
		return g.TakeCards(in.Player)
	}
	return fmt.Errorf("%w: unknown intent %q", ErrIllegalIntent, in.Type)
}
