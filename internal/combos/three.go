package combos

import (
	"encoding/json"
	"math/rand"
	"os"
	"strings"

	"github.com/nimixiss/tarobot/internal/errors"
)

// poolEntry is one (key, meaning) pair in the global fallback pool.
type poolEntry struct {
	key     string
	meaning string
}

// ThreeCardSet holds topic-scoped three-card combinations plus a flat pool
// of every entry across all topics, used when a requested topic has none.
// Immutable after construction.
type ThreeCardSet struct {
	byTopic map[string]map[string]string
	pool    []poolEntry
}

// LoadThreeCardSet reads and normalizes the three-card combinations file.
func LoadThreeCardSet(path string) (*ThreeCardSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewInternal(err)
	}
	return NormalizeThreeCard(raw), nil
}

// NormalizeThreeCard builds a ThreeCardSet from a decoded JSON value of
// shape topic -> (three names joined by the separator) -> text. Keys that do
// not decompose into exactly three non-empty names are dropped, as are
// non-string meanings; surviving keys are re-joined from their trimmed
// parts. Never errors on malformed input.
func NormalizeThreeCard(raw any) *ThreeCardSet {
	set := &ThreeCardSet{byTopic: make(map[string]map[string]string)}

	topics, ok := raw.(map[string]any)
	if !ok {
		return set
	}

	for topicKey, topicRaw := range topics {
		topicData, ok := topicRaw.(map[string]any)
		if !ok {
			continue
		}

		combinations := make(map[string]string)
		for comboKey, meaningRaw := range topicData {
			meaning, ok := meaningRaw.(string)
			if !ok {
				continue
			}
			cards := cleanParts(strings.Split(comboKey, Separator))
			if len(cards) != 3 {
				continue
			}
			key := strings.Join(cards, Separator)
			meaning = strings.TrimSpace(meaning)
			if meaning == "" {
				continue
			}
			combinations[key] = meaning
			set.pool = append(set.pool, poolEntry{key: key, meaning: meaning})
		}

		if len(combinations) > 0 {
			set.byTopic[topicKey] = combinations
		}
	}

	return set
}

// TopicCount reports the number of combinations stored for a topic.
func (s *ThreeCardSet) TopicCount(topicKey string) int {
	return len(s.byTopic[topicKey])
}

// PoolSize reports the size of the global fallback pool.
func (s *ThreeCardSet) PoolSize() int {
	return len(s.pool)
}

// Select picks a three-card combination for the topic, uniformly at random
// among the topic's entries, or from the global pool when the topic has
// none. Returns ok=false when both are empty or the winning key does not
// decompose into exactly three names.
func (s *ThreeCardSet) Select(topicKey string) (cards []string, meaning string, ok bool) {
	entries := s.topicEntries(topicKey)
	if len(entries) == 0 {
		entries = s.pool
	}
	if len(entries) == 0 {
		return nil, "", false
	}

	winner := entries[rand.Intn(len(entries))]
	cards = cleanParts(strings.Split(winner.key, Separator))
	if len(cards) != 3 {
		return nil, "", false
	}
	return cards, winner.meaning, true
}

func (s *ThreeCardSet) topicEntries(topicKey string) []poolEntry {
	combinations := s.byTopic[topicKey]
	if len(combinations) == 0 {
		return nil
	}
	entries := make([]poolEntry, 0, len(combinations))
	for key, meaning := range combinations {
		entries = append(entries, poolEntry{key: key, meaning: meaning})
	}
	return entries
}
