package durak

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/websocket"
)

// Conn is one client connection. Each connection owns at most one game and
// plays both seats of it.
type Conn interface {
	Send(msg *Message) error
	RemoteAddr() string
}

type wsConn struct {
	ws *websocket.Conn
}

func (c *wsConn) Send(msg *Message) error {
	return websocket.JSON.Send(c.ws, msg)
}

func (c *wsConn) RemoteAddr() string {
	return c.ws.Request().RemoteAddr
}

type session struct {
	id string

	mu   sync.Mutex
	game *Game
}

type Manager struct {
	log *zap.Logger

	mu       sync.Mutex
	sessions map[string]*session
	owners   map[Conn]*session
}

func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		log:      log,
		sessions: make(map[string]*session),
		owners:   make(map[Conn]*session),
	}
}

// Serve reads messages from ws until it closes.
func (m *Manager) Serve(ws *websocket.Conn) {
	conn := &wsConn{ws}
	defer func() {
		m.Leave(conn)
		ws.Close()
	}()

	for {
		var msg Message
		if err := websocket.JSON.Receive(ws, &msg); err != nil {
			return
		}

		if err := m.Handle(conn, &msg); err != nil {
			m.log.Info("message rejected",
				zap.String("remote_addr", conn.RemoteAddr()),
				zap.String("type", msg.Type),
				zap.Error(err))
			if err := sendMessage(conn, TypeError, ErrorMessage{ErrorTag(err), err.Error()}); err != nil {
				return
			}
		}
	}
}

func (m *Manager) Handle(conn Conn, msg *Message) error {
	switch msg.Type {
	case TypeNewGame:
		var data NewGameMessage
		if err := msg.Decode(&data); err != nil {
			return err
		}
		seed := time.Now().UnixNano()
		if data.Seed != nil {
			seed = *data.Seed
		}
		return m.start(conn, NewGame(seed))
	case TypeLoadGame:
		var data LoadGameMessage
		if err := msg.Decode(&data); err != nil {
			return err
		}
		g, err := LoadString(data.Save)
		if err != nil {
			return err
		}
		return m.start(conn, g)
	case TypeLeaveGame:
		m.Leave(conn)
		return nil
	case string(IntentAttack), string(IntentDefend), string(IntentEndRound), string(IntentTakeCards):
		var data IntentMessage
		if err := msg.Decode(&data); err != nil {
			return err
		}
		return m.Play(conn, Intent{
			Type:   IntentType(msg.Type),
			Player: data.Player,
			Card:   data.Card,
			Attack: data.Attack,
		})
	case TypeFlipView:
		return m.FlipView(conn)
	case TypeSaveGame:
		return m.SaveGame(conn)
	}
	return fmt.Errorf("unknown message type %q", msg.Type)
}

func (m *Manager) start(conn Conn, g *Game) error {
	s := &session{id: uuid.NewString(), game: g}

	m.mu.Lock()
	if old, ok := m.owners[conn]; ok {
		delete(m.sessions, old.id)
	}
	m.sessions[s.id] = s
	m.owners[conn] = s
	m.mu.Unlock()

	m.log.Info("game started",
		zap.String("remote_addr", conn.RemoteAddr()),
		zap.String("game_id", s.id))

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sendState(conn)
}

func (m *Manager) Leave(conn Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.owners[conn]
	if !ok {
		return
	}
	delete(m.owners, conn)
	delete(m.sessions, s.id)

	m.log.Info("game closed",
		zap.String("remote_addr", conn.RemoteAddr()),
		zap.String("game_id", s.id))
}

func (m *Manager) sessionFor(conn Conn) (*session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.owners[conn]
	if !ok {
		return nil, errors.New("no game in progress")
	}
	return s, nil
}

func (m *Manager) Play(conn Conn, in Intent) error {
	s, err := m.sessionFor(conn)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.Apply(in); err != nil {
		return err
	}

	m.log.Debug("intent applied",
		zap.String("game_id", s.id),
		zap.String("type", string(in.Type)),
		zap.Int("player", int(in.Player)),
		zap.String("phase", string(s.game.Phase())))
	if r := s.game.Result(); r.Status != StatusInProgress {
		m.log.Info("game over",
			zap.String("game_id", s.id),
			zap.String("result", r.String()))
	}

	return s.sendState(conn)
}

func (m *Manager) FlipView(conn Conn) error {
	s, err := m.sessionFor(conn)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.game.FlipView()
	return s.sendState(conn)
}

func (m *Manager) SaveGame(conn Conn) error {
	s, err := m.sessionFor(conn)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return sendMessage(conn, TypeGameSaved, GameSavedMessage{
		ID:   s.id,
		Save: SaveString(s.game),
	})
}

// SaveText returns the save text of the game with the given id.
func (m *Manager) SaveText(id string) (string, bool) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return SaveString(s.game), true
}

// sendState sends the session's snapshot. The caller holds s.mu.
func (s *session) sendState(conn Conn) error {
	return sendMessage(conn, TypeGameState, GameStateMessage{
		ID:    s.id,
		State: s.game.Snapshot(),
	})
}

func sendMessage(conn Conn, typ string, data interface{}) error {
	msg, err := NewMessage(typ, data)
	if err != nil {
		return err
	}
	return conn.Send(msg)
}
