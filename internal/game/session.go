package game

import (
	"fmt"
	"strings"
	"time"
)

// TurnPhase is the state of the two-phase turn controller.
type TurnPhase int

const (
	// TurnIdle accepts flips.
	TurnIdle TurnPhase = iota
	// TurnAwaitingReset means a mismatched pair is showing and the
	// session is locked until the delayed reset lands.
	TurnAwaitingReset
)

// String returns the string representation of a TurnPhase.
func (p TurnPhase) String() string {
	switch p {
	case TurnIdle:
		return "idle"
	case TurnAwaitingReset:
		return "awaiting_reset"
	default:
		return "unknown"
	}
}

// FlipOutcome reports what a Flip call did, so the caller knows whether
// to re-render, arm the reset timer, or drop the click.
type FlipOutcome int

const (
	FlipRejected FlipOutcome = iota // invalid target or session locked; nothing changed
	FlipFirst                       // first card of the turn revealed
	FlipMatch                       // second card revealed and the pair matched
	FlipMismatch                    // second card revealed, no match; delayed reset required
)

// Session drives one game of memory: it owns a Deck and layers the
// turn discipline on top of the deck primitives. The deck tracks each
// card independently; the session is what enforces at-most-two revealed
// cards, the locked phase while a mismatch is showing, and the move
// counter.
//
// A session never sleeps or schedules on its own. On FlipMismatch the
// caller arms ResetTimer for its configured delay and later calls
// FinishReset with the generation the timer was armed under.
type Session struct {
	Deck       *Deck
	PairCount  int
	Moves      int
	Phase      TurnPhase
	Generation int         // bumped by Restart; stale timers carry an old value
	ResetTimer *time.Timer // armed by the caller on mismatch, nil otherwise
}

// NewSession starts a game with a freshly shuffled deck of pairCount pairs.
func NewSession(pairCount int) *Session {
	return &Session{
		Deck:      NewDeck(pairCount),
		PairCount: pairCount,
	}
}

// Flip attempts to reveal the card with the given id as part of the
// current turn. Flips are rejected while a mismatch reset is pending,
// after the game is won, when two cards are already showing, and for
// any card the deck itself refuses (unknown, matched, already face-up).
//
// Revealing the second card of a turn counts one move and resolves the
// pair immediately: on a match the deck is already final and the session
// stays unlocked; on a mismatch the session locks until FinishReset.
func (s *Session) Flip(id int) FlipOutcome {
	if s.Phase != TurnIdle || s.Deck.IsComplete() {
		return FlipRejected
	}
	if len(s.Deck.FaceUpUnmatched()) >= 2 {
		return FlipRejected
	}
	if !s.Deck.FlipCard(id) {
		return FlipRejected
	}
	if len(s.Deck.FaceUpUnmatched()) < 2 {
		return FlipFirst
	}
	s.Moves++
	if s.Deck.CheckMatch() {
		return FlipMatch
	}
	s.Phase = TurnAwaitingReset
	return FlipMismatch
}

// FinishReset hides the mismatched pair and unlocks the session. It only
// acts when the session is actually awaiting a reset and the generation
// matches the current deck, so a timer armed for a previous deck can
// never touch cards dealt after a restart. Returns whether it acted.
func (s *Session) FinishReset(generation int) bool {
	if generation != s.Generation || s.Phase != TurnAwaitingReset {
		return false
	}
	s.Deck.ResetUnmatchedFaceUp()
	s.Phase = TurnIdle
	return true
}

// Won reports whether every pair has been matched.
func (s *Session) Won() bool {
	return s.Deck.IsComplete()
}

// Restart replaces the deck wholesale and clears all progress. Any
// pending reset timer is stopped, and the generation bump makes a timer
// callback that already fired a no-op.
func (s *Session) Restart(pairCount int) {
	if s.ResetTimer != nil {
		s.ResetTimer.Stop()
		s.ResetTimer = nil
	}
	s.Generation++
	s.Deck = NewDeck(pairCount)
	s.PairCount = pairCount
	s.Moves = 0
	s.Phase = TurnIdle
}

func (s *Session) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Session: pairs=%d, moves=%d, phase=%s, gen=%d, cards: ",
		s.PairCount, s.Moves, s.Phase, s.Generation)
	for _, c := range s.Deck.Cards() {
		fmt.Fprintf(&sb, "%d:%s ", c.ID, c.State)
	}
	return sb.String()
}
