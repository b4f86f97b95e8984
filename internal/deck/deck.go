// Package deck holds the card reference data and the shuffle-cycle dealer.
// The reference file maps each card name to either a flat list of meanings
// or an object of topic key -> meanings; both shapes may appear in one file.
// All data is loaded once at startup and immutable afterwards.
package deck

import (
	"encoding/json"
	"math/rand"
	"os"
	"sort"

	"github.com/nimixiss/tarobot/internal/errors"
)

// Deck is the immutable card reference: names, flat meanings and per-topic
// meanings.
type Deck struct {
	names  []string
	flat   map[string][]string
	topics map[string]map[string][]string
}

// Load reads the card reference file and the optional topic overlay file.
// When the overlay is absent, topic meanings are derived from the reference
// file's topic-shaped entries.
func Load(cardsPath, topicsPath string) (*Deck, error) {
	data, err := os.ReadFile(cardsPath)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewInternal(err)
	}

	d := &Deck{
		flat:   make(map[string][]string),
		topics: make(map[string]map[string][]string),
	}

	for name, entry := range raw {
		d.names = append(d.names, name)

		// Flat shape: a plain list of meanings.
		var flat []string
		if err := json.Unmarshal(entry, &flat); err == nil {
			d.flat[name] = cleanStrings(flat)
			continue
		}

		// Topic shape: topic key -> list of meanings. Non-list values are
		// tolerated and skipped.
		var byTopic map[string]json.RawMessage
		if err := json.Unmarshal(entry, &byTopic); err != nil {
			continue
		}
		topicMeanings := make(map[string][]string)
		var all []string
		for topic, values := range byTopic {
			var list []string
			if err := json.Unmarshal(values, &list); err != nil {
				continue
			}
			list = cleanStrings(list)
			if len(list) == 0 {
				continue
			}
			topicMeanings[topic] = list
			all = append(all, list...)
		}
		if len(topicMeanings) > 0 {
			d.topics[name] = topicMeanings
		}
		d.flat[name] = all
	}

	sort.Strings(d.names)

	if topicsPath != "" {
		if err := d.loadTopicOverlay(topicsPath); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// loadTopicOverlay replaces derived topic meanings with the overlay file's
// entries where present. A missing file is not an error.
func (d *Deck) loadTopicOverlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.NewInternal(err)
	}

	var raw map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.NewInternal(err)
	}

	for name, byTopic := range raw {
		topicMeanings := make(map[string][]string)
		for topic, values := range byTopic {
			var list []string
			if err := json.Unmarshal(values, &list); err != nil {
				continue
			}
			list = cleanStrings(list)
			if len(list) > 0 {
				topicMeanings[topic] = list
			}
		}
		if len(topicMeanings) > 0 {
			d.topics[name] = topicMeanings
		}
	}

	return nil
}

// Names returns every card name in sorted order. The slice is shared; do
// not mutate.
func (d *Deck) Names() []string {
	return d.names
}

// Size reports the number of cards.
func (d *Deck) Size() int {
	return len(d.names)
}

// Contains reports whether the card exists in the reference.
func (d *Deck) Contains(card string) bool {
	_, ok := d.flat[card]
	return ok
}

// CollectMeanings returns the card's flat meaning pool, regardless of the
// shape it was loaded from.
func (d *Deck) CollectMeanings(card string) []string {
	return d.flat[card]
}

// TopicMeanings returns the card's meanings for a topic key, or nil.
func (d *Deck) TopicMeanings(card, topicKey string) []string {
	return d.topics[card][topicKey]
}

// RandomMeaning picks a uniformly random meaning from the card's flat pool.
func (d *Deck) RandomMeaning(card string) (string, bool) {
	pool := d.flat[card]
	if len(pool) == 0 {
		return "", false
	}
	return pool[rand.Intn(len(pool))], true
}

// RandomTopicMeaning picks a meaning for the topic, falling back to the flat
// pool when the card has no entries for that topic.
func (d *Deck) RandomTopicMeaning(card, topicKey string) (string, bool) {
	if pool := d.topics[card][topicKey]; len(pool) > 0 {
		return pool[rand.Intn(len(pool))], true
	}
	return d.RandomMeaning(card)
}

// SamplePair returns two distinct uniformly chosen card names. Returns
// ok=false when the deck has fewer than two cards.
func (d *Deck) SamplePair() (string, string, bool) {
	if len(d.names) < 2 {
		return "", "", false
	}
	i := rand.Intn(len(d.names))
	j := rand.Intn(len(d.names) - 1)
	if j >= i {
		j++
	}
	return d.names[i], d.names[j], true
}

// cleanStrings drops empty entries, keeping the original order.
func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
