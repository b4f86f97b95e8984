// Package stats maintains named daily event counters. Each UTC date's
// counters live in their own JSON file under the stats directory; only the
// current day stays cached in memory.
package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event names incremented by the bot. The set is open: unknown names count
// just as well.
const (
	EventStart             = "start"
	EventSingleCardButton  = "single_card_button"
	EventSingleCardReading = "single_card_reading"
	EventTwoCardsReading   = "two_cards_reading"
	EventThreeCardsButton  = "three_cards_button"
	EventThreeCardsReading = "three_cards_reading"
)

// dateLayout is the ISO calendar date used for file names and bucket keys.
const dateLayout = "2006-01-02"

// Store owns the daily counters and their per-day files. One mutex guards
// the cache and all file writes.
type Store struct {
	mu   sync.Mutex
	dir  string
	days map[string]map[string]int
	log  zerolog.Logger
	now  func() time.Time
}

// NewStore creates the stats directory if needed and preloads today's
// counters. Directory or load failures degrade with a warning.
func NewStore(dir string, log zerolog.Logger) *Store {
	s := &Store{
		dir:  dir,
		days: make(map[string]map[string]int),
		log:  log,
		now:  time.Now,
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("failed to create stats directory")
		return s
	}
	today := s.today()
	s.days[today] = s.loadDate(today)
	return s
}

// Increment bumps today's counter for the event, persists today's full
// counter set, and evicts every cached day other than today.
func (s *Store) Increment(event string) {
	today := s.today()

	s.mu.Lock()
	defer s.mu.Unlock()

	counts := s.days[today]
	if counts == nil {
		counts = s.loadDate(today)
		s.days[today] = counts
	}

	counts[event]++
	s.saveDate(today, counts)

	for date := range s.days {
		if date != today {
			delete(s.days, date)
		}
	}
}

// Get returns the counters recorded for a date, reading through the cache.
// The result is a copy; an unrecorded date yields an empty map.
func (s *Store) Get(date string) map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts, ok := s.days[date]
	if !ok {
		counts = s.loadDate(date)
	}

	out := make(map[string]int, len(counts))
	for event, n := range counts {
		out[event] = n
	}
	return out
}

// Today returns today's UTC date string.
func (s *Store) Today() string {
	return s.today()
}

func (s *Store) today() string {
	return s.now().UTC().Format(dateLayout)
}

func (s *Store) datePath(date string) string {
	return filepath.Join(s.dir, date+".json")
}

// loadDate reads one day's file, tolerating absence and corruption. Only
// string keys with integer counts survive.
func (s *Store) loadDate(date string) map[string]int {
	counts := make(map[string]int)

	data, err := os.ReadFile(s.datePath(date))
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("date", date).Msg("failed to load daily stats")
		}
		return counts
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		s.log.Warn().Err(err).Str("date", date).Msg("daily stats file is corrupt")
		return counts
	}

	for event, rawCount := range raw {
		var n int
		if err := json.Unmarshal(rawCount, &n); err == nil {
			counts[event] = n
		}
	}
	return counts
}

// saveDate writes one day's counters via a temp file and atomic rename.
func (s *Store) saveDate(date string, counts map[string]int) {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		s.log.Warn().Err(err).Str("dir", s.dir).Msg("failed to create stats directory")
		return
	}

	data, err := json.MarshalIndent(counts, "", "  ")
	if err != nil {
		s.log.Warn().Err(err).Str("date", date).Msg("failed to encode daily stats")
		return
	}

	path := s.datePath(date)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		s.log.Warn().Err(err).Str("path", tmpPath).Msg("failed to write daily stats")
		return
	}
	if err := os.Rename(tmpPath, path); err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("failed to finalize daily stats")
		os.Remove(tmpPath)
	}
}
