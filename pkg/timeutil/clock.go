package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// ParseClock parses an "HH:MM" time of day into minutes after midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// InWindow reports whether the time of day of t lies in [start, end). A
// window whose start is after its end wraps midnight; equal bounds are an
// empty window.
func InWindow(start, end string, t time.Time) (bool, error) {
	from, err := ParseClock(start)
	if err != nil {
		return false, err
	}
	to, err := ParseClock(end)
	if err != nil {
		return false, err
	}
	m := t.Hour()*60 + t.Minute()
	switch {
	case from == to:
		return false, nil
	case from < to:
		return m >= from && m < to, nil
	default:
		return m >= from || m < to, nil
	}
}

var layouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02",
}

// ParseWhen resolves a moment given either as an offset from now ("+2d",
// "30m", "1시간") or as a local date ("2026-10-14", "2026-10-14 21:00").
func ParseWhen(s string, now time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty time")
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, trimmed, now.Location()); err == nil {
			return t, nil
		}
	}
	d, _, err := ParseWindow(strings.TrimPrefix(trimmed, "+"))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: use YYYY-MM-DD[ HH:MM] or an offset like 2d", s)
	}
	return now.Add(d), nil
}
