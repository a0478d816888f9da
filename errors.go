package durak

import "errors"

var (
	// ErrIllegalIntent is returned for intents from the wrong player, in the
	// wrong phase, or that the table rules forbid.
	ErrIllegalIntent = errors.New("illegal intent")

	// ErrInvalidDefense is returned when a defending card does not beat the
	// attacking card, or the attacking card is not open on the table.
	ErrInvalidDefense = errors.New("invalid defense")

	// ErrNotInHand is returned when a player refers to a card they don't hold.
	ErrNotInHand = errors.New("card not in hand")

	// ErrCorruptSave is returned when a save can't be parsed or describes an
	// impossible game.
	ErrCorruptSave = errors.New("corrupt save")
)

// ErrorTag maps an engine error to the tag sent to clients.
func ErrorTag(err error) string {
	switch {
	case errors.Is(err, ErrIllegalIntent):
		return "illegal_intent"
	case errors.Is(err, ErrInvalidDefense):
		return "invalid_defense"
	case errors.Is(err, ErrNotInHand):
		return "not_in_hand"
	case errors.Is(err, ErrCorruptSave):
		return "corrupt_save"
	}
	return "error"
}
