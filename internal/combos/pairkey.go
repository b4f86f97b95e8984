package combos

import (
	"sort"
	"strings"
)

// Separator joins card names inside a combination key.
const Separator = "|"

// PairKey returns the canonical key for an unordered pair of card names:
// names are trimmed, sorted lexicographically and joined with the separator,
// so PairKey(a, b) == PairKey(b, a).
func PairKey(card1, card2 string) string {
	names := []string{strings.TrimSpace(card1), strings.TrimSpace(card2)}
	sort.Strings(names)
	return strings.Join(names, Separator)
}

// SplitCombinationKey decomposes a combination key into card names. It tries
// delimiters in a fixed order ("|", then ",", then whitespace) and stops at
// the first that yields exactly want non-empty trimmed parts. Returns nil if
// no delimiter produces the expected count.
func SplitCombinationKey(key string, want int) []string {
	for _, split := range keySplitters {
		parts := cleanParts(split(key))
		if len(parts) == want {
			return parts
		}
	}
	return nil
}

// keySplitters is the ordered list of delimiter strategies for combination
// keys. Order matters: a key like "a|b" must not be re-split on whitespace.
var keySplitters = []func(string) []string{
	func(s string) []string {
		if !strings.Contains(s, "|") {
			return nil
		}
		return strings.Split(s, "|")
	},
	func(s string) []string {
		if !strings.Contains(s, ",") {
			return nil
		}
		return strings.Split(s, ",")
	},
	strings.Fields,
}

// cleanParts trims each part and drops empty ones.
func cleanParts(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
