package game

import (
	"encoding/json"
	"fmt"
)

// Message type for WebSocket communication between client and server.
type MessageType string

const (
	MsgTypeJoin    MessageType = "join"     // Client wants to start a game
	MsgTypeState   MessageType = "state"    // Server sends the full board state
	MsgTypeFlip    MessageType = "flip"     // Client flips a card
	MsgTypeNewGame MessageType = "new_game" // Client wants a fresh deck
	MsgTypeError   MessageType = "error"    // Server sends an error message
)

// WsMessage represents a WebSocket message.
type WsMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewWsMessage creates a new WsMessage with a marshaled payload.
func NewWsMessage(msgType MessageType, payload interface{}) (WsMessage, error) {
	if payload == nil {
		return WsMessage{Type: msgType}, nil
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return WsMessage{}, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return WsMessage{
		Type:    msgType,
		Payload: payloadBytes,
	}, nil
}

// Parse unmarshals the message payload into one of the message types
// (JoinMessage, StateMessage, etc.)
func (m *WsMessage) Parse() (any, error) {
	var target any
	switch m.Type {
	case MsgTypeJoin:
		target = &JoinMessage{}
	case MsgTypeState:
		target = &StateMessage{}
	case MsgTypeFlip:
		target = &FlipMessage{}
	case MsgTypeNewGame:
		target = &NewGameMessage{}
	case MsgTypeError:
		target = &ErrorMessage{}
	default:
		return nil, fmt.Errorf("unknown message type: %s", m.Type)
	}

	if len(m.Payload) == 0 {
		return target, nil
	}

	err := json.Unmarshal(m.Payload, target)
	return target, err
}

// JoinMessage is the payload for MsgTypeJoin. A client either names a
// difficulty or supplies a raw pair count; a positive PairCount wins.
type JoinMessage struct {
	Difficulty string `json:"difficulty,omitempty"`
	PairCount  int    `json:"pair_count,omitempty"`
}

// NewGameMessage is the payload for MsgTypeNewGame, same fields as join.
// Empty means "same difficulty as the current deck".
type NewGameMessage struct {
	Difficulty string `json:"difficulty,omitempty"`
	PairCount  int    `json:"pair_count,omitempty"`
}

// FlipMessage is the payload for MsgTypeFlip.
type FlipMessage struct {
	ID int `json:"id"` // The card ID that was clicked
}

// CardView is the client-facing representation of a card. The pair value
// is only present once the card is revealed or matched, so the browser
// cannot peek at face-down cards.
type CardView struct {
	ID        int    `json:"id"`
	PairValue *int   `json:"pair_value,omitempty"`
	State     string `json:"state"`
}

// StateMessage is the payload for MsgTypeState: the whole board as the
// player may see it, plus turn progress.
type StateMessage struct {
	Cards     []CardView `json:"cards"`
	PairCount int        `json:"pair_count"`
	Moves     int        `json:"moves"`
	Locked    bool       `json:"locked"` // mismatch showing, flips suspended
	Won       bool       `json:"won"`
}

// ErrorMessage is the payload for MsgTypeError.
type ErrorMessage struct {
	Message string `json:"message"`
}

// BuildCardViews constructs the client-facing card list for a deck.
// Hidden cards do not expose their pair value.
func BuildCardViews(d *Deck) []CardView {
	cards := d.Cards()
	views := make([]CardView, len(cards))
	for i, c := range cards {
		view := CardView{
			ID:    c.ID,
			State: c.State.String(),
		}
		if c.FaceUp() {
			value := c.PairValue
			view.PairValue = &value
		}
		views[i] = view
	}
	return views
}

// BuildStateMessage snapshots a session for the wire.
func BuildStateMessage(s *Session) StateMessage {
	return StateMessage{
		Cards:     BuildCardViews(s.Deck),
		PairCount: s.PairCount,
		Moves:     s.Moves,
		Locked:    s.Phase == TurnAwaitingReset,
		Won:       s.Won(),
	}
}
