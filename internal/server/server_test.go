package server

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gopairs/gopairs/internal/game"
)

func TestJoinWebsocket(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	started := make(chan *ServerState, 1)
	go func() {
		_ = Run(ctx, "", 0, started)
	}()
	serverState := <-started
	wsURL := "ws://" + serverState.Address + "/ws"

	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.CloseNow()

	joinMsg, err := game.NewWsMessage(game.MsgTypeJoin, game.JoinMessage{Difficulty: "easy"})
	if err != nil {
		t.Fatal(err)
	}
	if err := wsjson.Write(ctx, conn, joinMsg); err != nil {
		t.Fatalf("Failed to send join: %v", err)
	}

	var msg game.WsMessage
	if err := wsjson.Read(ctx, conn, &msg); err != nil {
		t.Fatalf("Failed to read state: %v", err)
	}
	if msg.Type != game.MsgTypeState {
		t.Fatalf("Expected state message, got %s", msg.Type)
	}
	p, err := msg.Parse()
	if err != nil {
		t.Fatalf("Failed to parse state: %v", err)
	}
	state, ok := p.(*game.StateMessage)
	if !ok {
		t.Fatalf("Expected StateMessage, got %T", p)
	}

	if len(state.Cards) != 8 {
		t.Errorf("Easy difficulty should deal 8 cards, got %d", len(state.Cards))
	}
	if state.PairCount != 4 {
		t.Errorf("Easy difficulty should have 4 pairs, got %d", state.PairCount)
	}
	if state.Moves != 0 || state.Locked || state.Won {
		t.Errorf("Fresh game should be idle: moves=%d, locked=%t, won=%t",
			state.Moves, state.Locked, state.Won)
	}
	for _, c := range state.Cards {
		if c.State != "hidden" {
			t.Errorf("Card %d should start hidden, got %s", c.ID, c.State)
		}
		if c.PairValue != nil {
			t.Errorf("Hidden card %d must not expose its pair value", c.ID)
		}
	}

	// The session should be registered server-side.
	serverState.mu.RLock()
	sessions := len(serverState.Sessions)
	serverState.mu.RUnlock()
	if sessions != 1 {
		t.Errorf("Expected 1 registered session, got %d", sessions)
	}
}

func TestJoinUnknownDifficulty(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	started := make(chan *ServerState, 1)
	go func() {
		_ = Run(ctx, "", 0, started)
	}()
	serverState := <-started

	conn, _, err := websocket.Dial(ctx, "ws://"+serverState.Address+"/ws", nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.CloseNow()

	joinMsg, _ := game.NewWsMessage(game.MsgTypeJoin, game.JoinMessage{Difficulty: "nightmare"})
	if err := wsjson.Write(ctx, conn, joinMsg); err != nil {
		t.Fatalf("Failed to send join: %v", err)
	}

	var msg game.WsMessage
	if err := wsjson.Read(ctx, conn, &msg); err != nil {
		t.Fatalf("Failed to read response: %v", err)
	}
	if msg.Type != game.MsgTypeError {
		t.Fatalf("Expected error message, got %s", msg.Type)
	}
}

func TestHealthz(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	started := make(chan *ServerState, 1)
	go func() {
		_ = Run(ctx, "", 0, started)
	}()
	s := <-started

	resp, err := http.Get("http://" + s.Address + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v",
			resp.StatusCode, http.StatusOK)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "ok" {
		t.Errorf("Expected body %q, got %q", "ok", string(body))
	}
}
