package stats

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/nimixiss/tarobot/internal/errors"
)

func writeDay(t *testing.T, dir, date, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, date+".json"), []byte(content), 0600))
}

func TestExportCSV_TotalsAreUnionOfDays(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "stats")
	require.NoError(t, os.MkdirAll(dir, 0700))
	writeDay(t, dir, "2025-03-01", `{"start": 3, "single_card_reading": 1}`)
	writeDay(t, dir, "2025-03-02", `{"three_cards_reading": 2}`)

	s := NewStore(dir, zerolog.Nop())
	export, err := s.ExportCSV()
	require.NoError(t, err)

	assert.Equal(t, ExportFilename, export.Filename)
	assert.Equal(t, map[string]int{
		"start":               3,
		"single_card_reading": 1,
		"three_cards_reading": 2,
	}, export.Totals)

	lines := strings.Split(strings.TrimSpace(string(export.Data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "date,event,count", lines[0])

	// Rows are ordered by date; no row pairs an event with a date that never
	// recorded it.
	assert.Contains(t, lines[1], "2025-03-01")
	assert.Contains(t, lines[2], "2025-03-01")
	assert.Contains(t, lines[3], "2025-03-02,three_cards_reading,2")
	for _, line := range lines[1:3] {
		assert.NotContains(t, line, "three_cards_reading")
	}
}

func TestExportCSV_NoFiles(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "stats"), zerolog.Nop())
	_, err := s.ExportCSV()
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestExportCSV_FilesWithoutRows(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "stats")
	require.NoError(t, os.MkdirAll(dir, 0700))
	writeDay(t, dir, "2025-03-01", `{}`)
	writeDay(t, dir, "2025-03-02", `{broken`)

	s := NewStore(dir, zerolog.Nop())
	_, err := s.ExportCSV()
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestExportCSV_SkipsNonJSONFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "stats")
	require.NoError(t, os.MkdirAll(dir, 0700))
	writeDay(t, dir, "2025-03-01", `{"start": 1}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600))

	s := NewStore(dir, zerolog.Nop())
	export, err := s.ExportCSV()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"start": 1}, export.Totals)
}
