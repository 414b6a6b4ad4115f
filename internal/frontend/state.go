package frontend

import (
	"context"
	"fmt"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gopairs/gopairs/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// GlobalClientState manages the connection and the board as last
// reported by the server.
type GlobalClientState struct {
	Conn  *websocket.Conn
	Error string

	// Chosen difficulty, persistent across re-renders
	Difficulty string

	// Board state (server is authoritative)
	Cards     []game.CardView
	PairCount int
	Moves     int
	Locked    bool
	Won       bool
	Joined    bool

	// Listeners for state updates
	Listeners map[string]func()
}

var State *GlobalClientState

func InitState() {
	if State == nil {
		klog.V(1).Infof("InitState: creating new state (was nil)")
		State = &GlobalClientState{
			Difficulty: game.DefaultDifficulty,
			Listeners:  make(map[string]func()),
		}
	} else {
		klog.V(1).Infof("InitState: state already exists")
	}
}

func (s *GlobalClientState) Notify() {
	klog.Infof("GlobalClientState: Notifying %d listeners", len(s.Listeners))
	for _, l := range s.Listeners {
		if l != nil {
			l()
		}
	}
}

// ConnectWS connects to the server and joins a game at the given difficulty.
func (s *GlobalClientState) ConnectWS(difficulty string) error {
	if s.Conn != nil {
		klog.Infof("ConnectWS: Closing existing connection")
		s.Conn.CloseNow()
		s.Conn = nil
	}
	s.Joined = false

	wsURL := fmt.Sprintf("ws://%s/ws", app.Window().URL().Host)
	klog.Infof("ConnectWS: Connecting to %s (Difficulty: %s)", wsURL, difficulty)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		klog.Errorf("ConnectWS: Dial failed: %v", err)
		return fmt.Errorf("dial failed: %w", err)
	}

	s.Conn = conn
	s.Difficulty = difficulty
	klog.Infof("ConnectWS: Connected, sending Join message...")

	joinMsg, err := game.NewWsMessage(game.MsgTypeJoin, game.JoinMessage{Difficulty: difficulty})
	if err != nil {
		klog.Errorf("ConnectWS: Failed to create join message: %v", err)
		return fmt.Errorf("failed to create join message: %w", err)
	}

	if err := wsjson.Write(ctx, conn, joinMsg); err != nil {
		klog.Errorf("ConnectWS: Failed to send join: %v", err)
		return fmt.Errorf("failed to send join: %w", err)
	}

	klog.Infof("ConnectWS: Join message sent. Starting read loop.")
	// Start reading loop in background
	go s.readLoop(conn)

	return nil
}

func (s *GlobalClientState) readLoop(conn *websocket.Conn) {
	ctx := context.Background()
	klog.Infof("readLoop: started")
	for {
		var msg game.WsMessage
		err := wsjson.Read(ctx, conn, &msg)
		if err != nil {
			klog.Errorf("readLoop: WS read error: %v", err)
			break
		}

		klog.Infof("readLoop: received message type: %s", msg.Type)
		s.handleMessage(msg)
	}
}

func (s *GlobalClientState) handleMessage(msg game.WsMessage) {
	switch msg.Type {
	case game.MsgTypeState:
		p, err := msg.Parse()
		if err != nil {
			klog.Errorf("handleMessage: Failed to parse state message: %v", err)
			return
		}
		state, ok := p.(*game.StateMessage)
		if !ok {
			klog.Errorf("handleMessage: Expected StateMessage, got: %T", p)
			return
		}

		klog.Infof("handleMessage: Board updated. Cards: %d, Moves: %d, Locked: %t, Won: %t",
			len(state.Cards), state.Moves, state.Locked, state.Won)
		s.Cards = state.Cards
		s.PairCount = state.PairCount
		s.Moves = state.Moves
		s.Locked = state.Locked
		s.Won = state.Won
		s.Joined = true
		s.Error = ""
		s.Notify()

	case game.MsgTypeError:
		p, err := msg.Parse()
		if err != nil {
			klog.Errorf("handleMessage: Failed to parse error message: %v", err)
			return
		}
		errMsg, ok := p.(*game.ErrorMessage)
		if !ok {
			klog.Errorf("handleMessage: Expected ErrorMessage, got: %T", p)
			return
		}

		s.Error = errMsg.Message
		s.Notify()
	}
}

// SendFlip sends a flip message for the given card to the server.
func (s *GlobalClientState) SendFlip(id int) {
	if s.Conn == nil {
		return
	}
	msg, err := game.NewWsMessage(game.MsgTypeFlip, game.FlipMessage{ID: id})
	if err != nil {
		klog.Errorf("SendFlip: Failed to create flip message: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*2)
	defer cancel()
	wsjson.Write(ctx, s.Conn, msg)
}

// SendNewGame asks the server for a fresh deck at the given difficulty.
func (s *GlobalClientState) SendNewGame(difficulty string) {
	if s.Conn == nil {
		return
	}
	s.Difficulty = difficulty
	msg, err := game.NewWsMessage(game.MsgTypeNewGame, game.NewGameMessage{Difficulty: difficulty})
	if err != nil {
		klog.Errorf("SendNewGame: Failed to create new game message: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*2)
	defer cancel()
	wsjson.Write(ctx, s.Conn, msg)
}
