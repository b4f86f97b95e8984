// Package usage tracks the last UTC calendar date each user consumed each
// reading type, enforcing the one-per-day limit across restarts.
package usage

import (
	"encoding/json"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ReadingType identifies a limited reading kind.
type ReadingType string

const (
	ReadingSingle     ReadingType = "single"
	ReadingTwoCards   ReadingType = "two_cards"
	ReadingThreeCards ReadingType = "three_cards"
)

// dateLayout is the ISO calendar date used for all stored dates.
const dateLayout = "2006-01-02"

// Limiter owns the per-user usage ledger and its on-disk mirror. One mutex
// guards both: every mutation updates the in-memory table and rewrites the
// file atomically before releasing the lock.
//
// HasUsedToday and MarkUsedToday are each atomic on their own, but a caller
// running check -> grant -> mark as separate calls can race with itself; use
// TryMarkUsedToday when the check and the mark must be one unit.
type Limiter struct {
	mu     sync.Mutex
	path   string
	byUser map[string]map[string]string
	log    zerolog.Logger
	now    func() time.Time
}

// NewLimiter loads the ledger from path. A missing, corrupt or unreadable
// file degrades to an empty ledger with a warning; it is never fatal.
func NewLimiter(path string, log zerolog.Logger) *Limiter {
	l := &Limiter{
		path:   path,
		byUser: make(map[string]map[string]string),
		log:    log,
		now:    time.Now,
	}
	l.load()
	return l
}

// HasUsedToday reports whether the user already consumed the reading type on
// today's UTC date.
func (l *Limiter) HasUsedToday(userID int64, rt ReadingType) bool {
	today := l.today()
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.byUser[userKey(userID)][string(rt)] == today
}

// MarkUsedToday records today's UTC date for the user and reading type and
// persists the whole ledger.
func (l *Limiter) MarkUsedToday(userID int64, rt ReadingType) {
	today := l.today()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mark(userKey(userID), rt, today)
}

// TryMarkUsedToday marks usage only if the user has not consumed the reading
// type today, returning whether the mark happened. Check and mark run under
// one lock acquisition.
func (l *Limiter) TryMarkUsedToday(userID int64, rt ReadingType) bool {
	today := l.today()
	key := userKey(userID)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.byUser[key][string(rt)] == today {
		return false
	}
	l.mark(key, rt, today)
	return true
}

func (l *Limiter) mark(key string, rt ReadingType, date string) {
	user := l.byUser[key]
	if user == nil {
		user = make(map[string]string)
		l.byUser[key] = user
	}
	user[string(rt)] = date
	l.save()
}

func (l *Limiter) today() string {
	return l.now().UTC().Format(dateLayout)
}

func userKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// load reads the persisted ledger, coercing tolerated legacy shapes: a bare
// date string per user is treated as {"single": date}, and values of any
// other shape are dropped.
func (l *Limiter) load() {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if !os.IsNotExist(err) {
			l.log.Warn().Err(err).Str("path", l.path).Msg("failed to load usage ledger")
		}
		return
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		l.log.Warn().Err(err).Str("path", l.path).Msg("usage ledger is corrupt, starting empty")
		return
	}

	for user, value := range raw {
		var perType map[string]json.RawMessage
		if err := json.Unmarshal(value, &perType); err == nil {
			entry := make(map[string]string, len(perType))
			for rt, rawDate := range perType {
				var date string
				if err := json.Unmarshal(rawDate, &date); err == nil {
					entry[rt] = date
				}
			}
			l.byUser[user] = entry
			continue
		}

		var single string
		if err := json.Unmarshal(value, &single); err == nil {
			l.byUser[user] = map[string]string{string(ReadingSingle): single}
		}
	}
}

// save rewrites the ledger file via a temp file and atomic rename; a failed
// write leaves the previous file untouched.
func (l *Limiter) save() {
	data, err := json.MarshalIndent(l.byUser, "", "  ")
	if err != nil {
		l.log.Warn().Err(err).Msg("failed to encode usage ledger")
		return
	}

	tmpPath := l.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		l.log.Warn().Err(err).Str("path", tmpPath).Msg("failed to write usage ledger")
		return
	}
	if err := os.Rename(tmpPath, l.path); err != nil {
		l.log.Warn().Err(err).Str("path", l.path).Msg("failed to finalize usage ledger")
		os.Remove(tmpPath)
	}
}
