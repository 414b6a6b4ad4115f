package game

import (
	"math/rand"
)

// Deck represents the full set of cards of one game, in board order.
// All mutation happens through per-card state changes; the card list
// itself is fixed for the lifetime of the deck.
type Deck struct {
	cards []Card
}

// NewDeck builds a deck of 2*pairCount cards: for each pair value in
// 1..pairCount, two cards carrying it, all face-down. IDs are assigned
// 1..2n in layout order, then the board is shuffled with a uniform
// Fisher-Yates permutation, so every arrangement is equally likely
// independent of the pair structure.
func NewDeck(pairCount int) *Deck {
	cards := make([]Card, 0, 2*pairCount)
	for value := 1; value <= pairCount; value++ {
		cards = append(cards,
			Card{ID: 2*value - 1, PairValue: value, State: CardHidden},
			Card{ID: 2 * value, PairValue: value, State: CardHidden},
		)
	}
	rand.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return &Deck{cards: cards}
}

// Cards returns an independent snapshot of the card list in board order.
// Mutating the returned slice has no effect on the deck.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Len returns the number of cards in the deck.
func (d *Deck) Len() int {
	return len(d.cards)
}

func (d *Deck) find(id int) *Card {
	for i := range d.cards {
		if d.cards[i].ID == id {
			return &d.cards[i]
		}
	}
	return nil
}

// FlipCard reveals the card with the given id. It returns false without
// changing anything when the id is unknown, the card is already matched,
// or the card is already face-up. FlipCard does not enforce the
// at-most-two-revealed rule; that discipline belongs to the caller.
func (d *Deck) FlipCard(id int) bool {
	card := d.find(id)
	if card == nil || card.State != CardHidden {
		return false
	}
	card.State = CardRevealed
	return true
}

// FaceUpUnmatched returns the revealed-but-not-matched cards in board order.
func (d *Deck) FaceUpUnmatched() []Card {
	var out []Card
	for _, c := range d.cards {
		if c.State == CardRevealed {
			out = append(out, c)
		}
	}
	return out
}

// CheckMatch resolves the pending pair. When exactly two cards are
// revealed and share a pair value, both become matched (and stay face-up
// forever) and CheckMatch returns true. With any other number of revealed
// cards, or a mismatched pair, nothing changes and it returns false;
// reverting a mismatch is the separate ResetUnmatchedFaceUp step.
func (d *Deck) CheckMatch() bool {
	var revealed []*Card
	for i := range d.cards {
		if d.cards[i].State == CardRevealed {
			revealed = append(revealed, &d.cards[i])
		}
	}
	if len(revealed) != 2 {
		return false
	}
	if revealed[0].PairValue != revealed[1].PairValue {
		return false
	}
	revealed[0].State = CardMatched
	revealed[1].State = CardMatched
	return true
}

// ResetUnmatchedFaceUp hides every revealed card. Matched cards are left
// face-up. Calling it with no revealed cards is a no-op.
func (d *Deck) ResetUnmatchedFaceUp() {
	for i := range d.cards {
		if d.cards[i].State == CardRevealed {
			d.cards[i].State = CardHidden
		}
	}
}

// IsComplete reports whether every card in the deck has been matched.
func (d *Deck) IsComplete() bool {
	for _, c := range d.cards {
		if c.State != CardMatched {
			return false
		}
	}
	return true
}
