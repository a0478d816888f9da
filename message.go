package durak

import (
	"encoding/json"
	"fmt"
)

// Message types exchanged over the websocket.
const (
	TypeNewGame   = "new_game"
	TypeLoadGame  = "load_game"
	TypeLeaveGame = "leave_game"
	TypeFlipView  = "flip_view"
	TypeSaveGame  = "save_game"
	TypeGameState = "game_state"
	TypeGameSaved = "game_saved"
	TypeError     = "error"
)

// Message is the websocket envelope. The intent messages use the intent type
// names (attack, defend, end_round, take_cards) as their Type.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type ErrorMessage struct {
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

type NewGameMessage struct {
	Seed *int64 `json:"seed"`
}

type LoadGameMessage struct {
	Save string `json:"save"`
}

// IntentMessage carries the fields of an attack, defend, end_round or
// take_cards message. The message type says which.
type IntentMessage struct {
	Player PlayerID `json:"player"`
	Card   Card     `json:"card"`
	Attack Card     `json:"attack"`
}

type GameStateMessage struct {
	ID    string   `json:"id"`
	State Snapshot `json:"state"`
}

type GameSavedMessage struct {
	ID   string `json:"id"`
	Save string `json:"save"`
}

// NewMessage wraps data as the payload of a typ message.
func NewMessage(typ string, data interface{}) (*Message, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode %s message: %w", typ, err)
	}
	return &Message{Type: typ, Data: b}, nil
}

// Decode reads the payload into v. A message without data leaves v as is.
func (m *Message) Decode(v interface{}) error {
	if len(m.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(m.Data, v); err != nil {
		return fmt.Errorf("decode %s message: %w", m.Type, err)
	}
	return nil
}
