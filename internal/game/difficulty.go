package game

// Difficulty maps a label to the number of card pairs on the board.
type Difficulty struct {
	Label     string `json:"label"`
	PairCount int    `json:"pair_count"`
}

// DefaultDifficulty is used when a client joins without picking one.
const DefaultDifficulty = "normal"

// difficulties in menu order, easiest first.
var difficulties = []Difficulty{
	{Label: "easy", PairCount: 4},
	{Label: "normal", PairCount: 6},
	{Label: "hard", PairCount: 8},
	{Label: "expert", PairCount: 10},
}

// Difficulties returns the available difficulty levels in menu order.
func Difficulties() []Difficulty {
	out := make([]Difficulty, len(difficulties))
	copy(out, difficulties)
	return out
}

// ParseDifficulty looks up a difficulty by label.
func ParseDifficulty(label string) (Difficulty, bool) {
	for _, d := range difficulties {
		if d.Label == label {
			return d, true
		}
	}
	return Difficulty{}, false
}
