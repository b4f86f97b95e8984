package combos

import "strings"

// meaningFieldOrder is the fixed lookup order for a meaning inside an object.
var meaningFieldOrder = []string{"meaning", "text", "description", "value"}

// extractMeaning resolves a reading text from an arbitrary decoded JSON
// value: either a direct string or one of the known meaning fields on an
// object. Returns "" when no usable text is found.
func extractMeaning(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		for _, field := range meaningFieldOrder {
			if s, ok := v[field].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// pairFromCardsField extracts a card pair from a "cards" list field.
// Non-string and blank entries are skipped; the first two surviving names
// are used.
func pairFromCardsField(obj map[string]any) (string, string, bool) {
	list, ok := obj["cards"].([]any)
	if !ok || len(list) < 2 {
		return "", "", false
	}
	cards := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			cards = append(cards, s)
		}
	}
	if len(cards) < 2 {
		return "", "", false
	}
	return cards[0], cards[1], true
}

// pairFromCardFields extracts a card pair from "card1"/"card2" string fields.
func pairFromCardFields(obj map[string]any) (string, string, bool) {
	card1, ok1 := obj["card1"].(string)
	card2, ok2 := obj["card2"].(string)
	if !ok1 || !ok2 {
		return "", "", false
	}
	return card1, card2, true
}

// NormalizeTwoCard folds an arbitrarily shaped two-card combination source
// into a canonical PairKey -> meaning map.
//
// The upstream feed has shipped in at least three shapes: a flat object of
// "A|B" keys, a list of objects with a "cards" array, and a list of objects
// with "card1"/"card2" fields. Every object encountered during a recursive
// walk is tried against each shape; object keys that decompose into exactly
// two names are treated as pair descriptors as well. Malformed entries are
// dropped silently, and when the same pair appears more than once the most
// recently visited occurrence wins.
func NormalizeTwoCard(raw any) map[string]string {
	normalized := make(map[string]string)
	walkTwoCard(raw, normalized)
	return normalized
}

func walkTwoCard(node any, out map[string]string) {
	switch v := node.(type) {
	case map[string]any:
		meaning := extractMeaning(v)
		if meaning != "" {
			if card1, card2, ok := pairFromCardsField(v); ok {
				addPair(out, card1, card2, meaning)
			} else if card1, card2, ok := pairFromCardFields(v); ok {
				addPair(out, card1, card2, meaning)
			}
		}

		for key, value := range v {
			if parts := SplitCombinationKey(key, 2); parts != nil {
				if m := extractMeaning(value); m != "" {
					addPair(out, parts[0], parts[1], m)
					continue
				}
			}
			walkTwoCard(value, out)
		}
	case []any:
		for _, item := range v {
			walkTwoCard(item, out)
		}
	}
}

// addPair stores a normalized entry, dropping blank names or meanings.
func addPair(out map[string]string, card1, card2, meaning string) {
	card1 = strings.TrimSpace(card1)
	card2 = strings.TrimSpace(card2)
	meaning = strings.TrimSpace(meaning)
	if card1 == "" || card2 == "" || card1 == card2 || meaning == "" {
		return
	}
	out[PairKey(card1, card2)] = meaning
}
