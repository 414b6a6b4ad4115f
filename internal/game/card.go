package game

// CardState is the lifecycle state of a single card.
//
// Legal transitions: Hidden -> Revealed (flip), Revealed -> Matched
// (successful match check), Revealed -> Hidden (mismatch reset).
// Matched is terminal: a matched card stays face-up for the rest of
// the game and can never be flipped again.
type CardState int

const (
	CardHidden CardState = iota
	CardRevealed
	CardMatched
)

// String returns the string representation of a CardState.
func (s CardState) String() string {
	switch s {
	case CardHidden:
		return "hidden"
	case CardRevealed:
		return "revealed"
	case CardMatched:
		return "matched"
	default:
		return "unknown"
	}
}

// Card represents one physical card slot on the board.
// Exactly two cards in a deck share a PairValue.
type Card struct {
	ID        int       `json:"id"`
	PairValue int       `json:"pair_value"`
	State     CardState `json:"state"`
}

// FaceUp reports whether the card is currently showing its face.
// Matched cards are always face-up.
func (c Card) FaceUp() bool {
	return c.State != CardHidden
}

// Matched reports whether the card's pair has been confirmed.
func (c Card) Matched() bool {
	return c.State == CardMatched
}
