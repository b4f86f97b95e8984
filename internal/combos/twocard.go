package combos

import (
	"math/rand"
	"strings"
)

// TwoCardTable holds the normalized two-card combination lookup. It is
// immutable after construction; a nil or empty table answers every lookup
// with a miss.
type TwoCardTable struct {
	meanings map[string]string
	keys     []string
}

// NewTwoCardTable builds a table from a normalized PairKey -> meaning map.
func NewTwoCardTable(meanings map[string]string) *TwoCardTable {
	t := &TwoCardTable{meanings: meanings}
	t.keys = make([]string, 0, len(meanings))
	for key := range meanings {
		t.keys = append(t.keys, key)
	}
	return t
}

// Len reports the number of known combinations.
func (t *TwoCardTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.meanings)
}

// Lookup returns the reading for an unordered pair of cards.
func (t *TwoCardTable) Lookup(card1, card2 string) (string, bool) {
	if t == nil {
		return "", false
	}
	meaning, ok := t.meanings[PairKey(card1, card2)]
	if !ok || strings.TrimSpace(meaning) == "" {
		return "", false
	}
	return meaning, true
}

// Random returns a uniformly chosen combination, decomposed back into its
// two card names. Returns ok=false when the table is empty or the chosen
// key does not decompose into exactly two names.
func (t *TwoCardTable) Random() (card1, card2, meaning string, ok bool) {
	if t.Len() == 0 {
		return "", "", "", false
	}
	key := t.keys[rand.Intn(len(t.keys))]
	parts := strings.SplitN(key, Separator, 2)
	if len(parts) != 2 {
		return "", "", "", false
	}
	return parts[0], parts[1], t.meanings[key], true
}
