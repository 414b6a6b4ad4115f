package frontend

import "testing"

// The server accepts raw pair counts up to 32; every one of them needs a
// distinct card face, not the "?" placeholder.
func TestPairSymbolCoversAcceptedPairCounts(t *testing.T) {
	const maxPairCount = 32

	seen := make(map[string]bool)
	for value := 1; value <= maxPairCount; value++ {
		sym := pairSymbol(value)
		if sym == "?" {
			t.Errorf("Pair value %d has no card face", value)
		}
		if seen[sym] {
			t.Errorf("Card face %q is used for more than one pair value", sym)
		}
		seen[sym] = true
	}

	if pairSymbol(0) != "?" {
		t.Errorf("Pair value 0 should fall back to the placeholder")
	}
	if pairSymbol(maxPairCount+1) != "?" {
		t.Errorf("Pair value %d should fall back to the placeholder", maxPairCount+1)
	}
}
