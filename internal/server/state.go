package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/gopairs/gopairs/internal/game"
	"k8s.io/klog/v2"
)

// DefaultResetDelay is how long a mismatched pair stays visible before
// the server hides it again. Pure pacing for the UI; the game rules do
// not depend on it.
const DefaultResetDelay = time.Second

// maxPairCount caps client-supplied pair counts; the largest difficulty
// is 10 pairs, anything far beyond that is a bogus request.
const maxPairCount = 32

// ServerState holds every live game session, one per websocket connection.
type ServerState struct {
	mu         sync.RWMutex
	Sessions   map[string]*game.Session // keyed by connection id
	ResetDelay time.Duration
	Address    string // host:port once the listener is bound
}

// NewServerState creates an empty server state with the default reset delay.
func NewServerState() *ServerState {
	return &ServerState{
		Sessions:   make(map[string]*game.Session),
		ResetDelay: DefaultResetDelay,
	}
}

// resolvePairCount turns a join/new-game request into a pair count.
// A positive explicit pair count wins; otherwise the difficulty label is
// looked up, defaulting to normal when the client names none.
func resolvePairCount(difficulty string, pairCount int) (int, error) {
	if pairCount > 0 {
		if pairCount > maxPairCount {
			return 0, fmt.Errorf("pair count %d exceeds maximum %d", pairCount, maxPairCount)
		}
		return pairCount, nil
	}
	label := difficulty
	if label == "" {
		label = game.DefaultDifficulty
	}
	d, ok := game.ParseDifficulty(label)
	if !ok {
		return 0, fmt.Errorf("unknown difficulty %q", label)
	}
	return d.PairCount, nil
}

// HandleWS upgrades the connection and runs its message loop. Each
// connection plays its own independent game; the session is dropped when
// the connection goes away.
func (s *ServerState) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		klog.Errorf("HandleWS: accept failed: %v", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	connID := uuid.NewString()
	var sess *game.Session

	defer func() {
		s.mu.Lock()
		if sess != nil && sess.ResetTimer != nil {
			sess.ResetTimer.Stop()
		}
		delete(s.Sessions, connID)
		s.mu.Unlock()
	}()

	for {
		var msg game.WsMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			klog.V(1).Infof("HandleWS: read loop ended for %s: %v", connID, err)
			return
		}

		payload, err := msg.Parse()
		if err != nil {
			klog.Errorf("HandleWS: bad message from %s: %v", connID, err)
			s.sendError(ctx, conn, fmt.Sprintf("bad message: %v", err))
			continue
		}

		switch m := payload.(type) {
		case *game.JoinMessage:
			pairCount, err := resolvePairCount(m.Difficulty, m.PairCount)
			if err != nil {
				s.sendError(ctx, conn, err.Error())
				continue
			}
			s.mu.Lock()
			if sess != nil {
				// Re-join reuses the session: Restart stops any pending
				// reset timer and orphans its generation, so a mismatch
				// left showing on the old deck can never clobber the new one.
				sess.Restart(pairCount)
			} else {
				sess = game.NewSession(pairCount)
				s.Sessions[connID] = sess
			}
			s.mu.Unlock()
			klog.Infof("HandleWS: %s joined with %d pairs", connID, pairCount)
			s.sendState(ctx, conn, sess)

		case *game.FlipMessage:
			if sess == nil {
				s.sendError(ctx, conn, "no game in progress")
				continue
			}
			s.handleFlip(ctx, conn, sess, m.ID)

		case *game.NewGameMessage:
			if sess == nil {
				s.sendError(ctx, conn, "no game in progress")
				continue
			}
			s.mu.Lock()
			pairCount := sess.PairCount
			if m.Difficulty != "" || m.PairCount > 0 {
				n, err := resolvePairCount(m.Difficulty, m.PairCount)
				if err != nil {
					s.mu.Unlock()
					s.sendError(ctx, conn, err.Error())
					continue
				}
				pairCount = n
			}
			sess.Restart(pairCount)
			s.mu.Unlock()
			klog.Infof("HandleWS: %s restarted with %d pairs", connID, pairCount)
			s.sendState(ctx, conn, sess)

		default:
			s.sendError(ctx, conn, fmt.Sprintf("unexpected message type: %s", msg.Type))
		}
	}
}

// handleFlip drives the session with one click. On a mismatch it arms the
// reset timer; the callback captures the generation it was armed under, so
// a restart that happens mid-delay orphans it harmlessly.
func (s *ServerState) handleFlip(ctx context.Context, conn *websocket.Conn, sess *game.Session, cardID int) {
	s.mu.Lock()
	outcome := sess.Flip(cardID)
	if outcome == game.FlipMismatch {
		generation := sess.Generation
		sess.ResetTimer = time.AfterFunc(s.ResetDelay, func() {
			s.mu.Lock()
			acted := sess.FinishReset(generation)
			s.mu.Unlock()
			if acted {
				s.sendState(context.Background(), conn, sess)
			}
		})
	}
	s.mu.Unlock()

	if outcome == game.FlipRejected {
		// Stale or invalid clicks are harmless; the board did not change.
		klog.V(1).Infof("handleFlip: rejected flip of card %d", cardID)
		return
	}
	s.sendState(ctx, conn, sess)
}

func (s *ServerState) sendState(ctx context.Context, conn *websocket.Conn, sess *game.Session) {
	s.mu.RLock()
	state := game.BuildStateMessage(sess)
	s.mu.RUnlock()

	msg, err := game.NewWsMessage(game.MsgTypeState, state)
	if err != nil {
		klog.Errorf("sendState: %v", err)
		return
	}
	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := wsjson.Write(writeCtx, conn, msg); err != nil {
		klog.V(1).Infof("sendState: write failed: %v", err)
	}
}

func (s *ServerState) sendError(ctx context.Context, conn *websocket.Conn, text string) {
	msg, err := game.NewWsMessage(game.MsgTypeError, game.ErrorMessage{Message: text})
	if err != nil {
		klog.Errorf("sendError: %v", err)
		return
	}
	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := wsjson.Write(writeCtx, conn, msg); err != nil {
		klog.V(1).Infof("sendError: write failed: %v", err)
	}
}
