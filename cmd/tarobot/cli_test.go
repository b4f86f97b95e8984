package main

import (
	"testing"
	"time"

	"github.com/nimixiss/tarobot/internal/errors"
)

func TestResolveStatsDate(t *testing.T) {
	now := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		arg  string
		want string
	}{
		{"", "2025-03-02"},
		{"today", "2025-03-02"},
		{"yesterday", "2025-03-01"},
		{"2024-12-31", "2024-12-31"},
	}
	for _, tt := range tests {
		got, err := resolveStatsDate(tt.arg, now)
		if err != nil {
			t.Errorf("resolveStatsDate(%q) error = %v", tt.arg, err)
			continue
		}
		if got != tt.want {
			t.Errorf("resolveStatsDate(%q) = %q, want %q", tt.arg, got, tt.want)
		}
	}
}

func TestResolveStatsDate_Invalid(t *testing.T) {
	now := time.Now().UTC()
	for _, arg := range []string{"не дата", "2025-13-01", "31-12-2024"} {
		_, err := resolveStatsDate(arg, now)
		if !errors.Is(err, errors.ErrInvalidRequest) {
			t.Errorf("resolveStatsDate(%q) error = %v, want INVALID_REQUEST", arg, err)
		}
	}
}
