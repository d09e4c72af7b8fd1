package timeutil

import (
	"testing"
	"time"
)

func TestInWindow(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2026, 10, 14, h, m, 0, 0, time.UTC) }
	tests := []struct {
		name       string
		start, end string
		t          time.Time
		want       bool
	}{
		{"inside", "01:00", "08:00", at(3, 0), true},
		{"start inclusive", "01:00", "08:00", at(1, 0), true},
		{"end exclusive", "01:00", "08:00", at(8, 0), false},
		{"outside", "01:00", "08:00", at(12, 0), false},
		{"wrap late", "22:00", "06:00", at(23, 30), true},
		{"wrap early", "22:00", "06:00", at(5, 59), true},
		{"wrap outside", "22:00", "06:00", at(12, 0), false},
		{"empty", "08:00", "08:00", at(8, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InWindow(tt.start, tt.end, tt.t)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("InWindow(%s, %s, %s) = %v", tt.start, tt.end, tt.t.Format("15:04"), got)
			}
		})
	}
	if _, err := InWindow("25:00", "08:00", at(1, 0)); err == nil {
		t.Fatalf("expected error for invalid clock")
	}
}

func TestParseWhen(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	tests := map[string]time.Time{
		"2d":               now.Add(48 * time.Hour),
		"+30m":             now.Add(30 * time.Minute),
		"1시간":              now.Add(time.Hour),
		"2026-10-20":       time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		"2026-10-20 21:30": time.Date(2026, 10, 20, 21, 30, 0, 0, time.UTC),
	}
	for in, want := range tests {
		got, err := ParseWhen(in, now)
		if err != nil {
			t.Fatalf("ParseWhen(%q): %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseWhen(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseWhen("someday", now); err == nil {
		t.Fatalf("expected error")
	}
}
