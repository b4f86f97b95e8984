package stats

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "stats"), zerolog.Nop())
}

func TestIncrement_CountsAccumulate(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 5; i++ {
		s.Increment(EventStart)
	}
	s.Increment(EventSingleCardReading)

	today := s.Today()
	counts := s.Get(today)
	if counts[EventStart] != 5 {
		t.Errorf("Get(today)[start] = %d, want 5", counts[EventStart])
	}
	if counts[EventSingleCardReading] != 1 {
		t.Errorf("Get(today)[single_card_reading] = %d, want 1", counts[EventSingleCardReading])
	}
}

func TestIncrement_PersistsAcrossRestart(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "stats")
	s := NewStore(dir, zerolog.Nop())
	s.Increment(EventStart)
	s.Increment(EventStart)

	fresh := NewStore(dir, zerolog.Nop())
	if got := fresh.Get(fresh.Today())[EventStart]; got != 2 {
		t.Fatalf("reloaded Get(today)[start] = %d, want 2", got)
	}
}

func TestIncrement_SeparateDatesSeparateFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "stats")
	s := NewStore(dir, zerolog.Nop())

	day1 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return day1 }
	s.Increment(EventStart)
	s.Increment(EventStart)

	day1File, err := os.ReadFile(filepath.Join(dir, "2025-03-01.json"))
	if err != nil {
		t.Fatalf("day1 file missing: %v", err)
	}

	s.now = func() time.Time { return day2 }
	s.Increment(EventStart)

	// The earlier date's file is untouched by the later date's write.
	day1After, err := os.ReadFile(filepath.Join(dir, "2025-03-01.json"))
	if err != nil {
		t.Fatalf("day1 file missing after day2 write: %v", err)
	}
	if string(day1File) != string(day1After) {
		t.Errorf("day1 file changed by day2 increment")
	}

	if got := s.Get("2025-03-01")[EventStart]; got != 2 {
		t.Errorf("Get(day1)[start] = %d, want 2", got)
	}
	if got := s.Get("2025-03-02")[EventStart]; got != 1 {
		t.Errorf("Get(day2)[start] = %d, want 1", got)
	}
}

func TestIncrement_EvictsOtherDays(t *testing.T) {
	s := newTestStore(t)

	day1 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return day1 }
	s.Increment(EventStart)

	s.now = func() time.Time { return day2 }
	s.Increment(EventStart)

	s.mu.Lock()
	_, day1Cached := s.days["2025-03-01"]
	_, day2Cached := s.days["2025-03-02"]
	s.mu.Unlock()

	if day1Cached {
		t.Errorf("day1 still cached after day2 increment")
	}
	if !day2Cached {
		t.Errorf("day2 not cached after its own increment")
	}
}

func TestGet_UnrecordedDateIsEmpty(t *testing.T) {
	s := newTestStore(t)
	if got := s.Get("1999-01-01"); len(got) != 0 {
		t.Fatalf("Get(unrecorded) = %v, want empty", got)
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	s := newTestStore(t)
	s.Increment(EventStart)

	counts := s.Get(s.Today())
	counts[EventStart] = 99

	if got := s.Get(s.Today())[EventStart]; got != 1 {
		t.Fatalf("mutating Get result leaked into store: got %d", got)
	}
}

func TestLoad_CorruptDayFileDegrades(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "stats")
	s := NewStore(dir, zerolog.Nop())
	if err := os.WriteFile(filepath.Join(dir, "2025-03-01.json"), []byte("{bad"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if got := s.Get("2025-03-01"); len(got) != 0 {
		t.Fatalf("Get(corrupt day) = %v, want empty", got)
	}
}
