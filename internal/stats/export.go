package stats

import (
	"bytes"
	"encoding/csv"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/nimixiss/tarobot/internal/errors"
)

// ExportFilename is the fixed name of the CSV artifact. The export is built
// in memory and handed to the caller; it is never written under the stats
// directory.
const ExportFilename = "stats_export.csv"

// Export is the result of ExportCSV: the artifact plus per-event totals
// across all exported days.
type Export struct {
	Filename string
	Data     []byte
	Totals   map[string]int
}

// ExportCSV scans every persisted daily file in filename order and emits one
// CSV row per (date, event, count) under a "date,event,count" header. Days
// whose file is empty or unreadable contribute no rows. Returns a NOT_FOUND
// error when the directory holds no stats files or none contain any rows.
func (s *Store) ExportCSV() (*Export, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound("stats files")
		}
		return nil, errors.NewInternal(err)
	}

	var dates []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.Type().IsRegular() && strings.HasSuffix(name, ".json") {
			dates = append(dates, strings.TrimSuffix(name, ".json"))
		}
	}
	if len(dates) == 0 {
		return nil, errors.NewNotFound("stats files")
	}
	sort.Strings(dates)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"date", "event", "count"}); err != nil {
		return nil, errors.NewInternal(err)
	}

	totals := make(map[string]int)
	hasRows := false

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, date := range dates {
		counts := s.loadDate(date)
		if len(counts) == 0 {
			continue
		}

		events := make([]string, 0, len(counts))
		for event := range counts {
			events = append(events, event)
		}
		sort.Strings(events)

		for _, event := range events {
			row := []string{date, event, strconv.Itoa(counts[event])}
			if err := w.Write(row); err != nil {
				return nil, errors.NewInternal(err)
			}
			totals[event] += counts[event]
			hasRows = true
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.NewInternal(err)
	}
	if !hasRows {
		return nil, errors.NewNotFound("stats rows")
	}

	return &Export{
		Filename: ExportFilename,
		Data:     buf.Bytes(),
		Totals:   totals,
	}, nil
}
