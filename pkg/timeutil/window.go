package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultWindow is one week.
const DefaultWindow = "1w"

const day = 24 * time.Hour

// windowUnits is ordered largest first; FormatWindow relies on it.
var windowUnits = []struct {
	label string
	size  time.Duration
	names []string
}{
	{"w", 7 * day, []string{"w", "wk", "wks", "week", "weeks", "주"}},
	{"d", day, []string{"d", "day", "days", "일"}},
	{"h", time.Hour, []string{"h", "hr", "hrs", "hour", "hours", "시간"}},
	{"m", time.Minute, []string{"m", "min", "mins", "minute", "minutes", "분"}},
	{"s", time.Second, []string{"s", "sec", "secs", "second", "seconds", "초"}},
}

var (
	windowSegment = regexp.MustCompile(`^(\d+)\s*([a-z]+|\p{Hangul}+)\s*`)
	unitSize      = map[string]time.Duration{}
)

func init() {
	for _, u := range windowUnits {
		for _, n := range u.names {
			unitSize[n] = u.size
		}
	}
}

// ParseWindow reads a run of count+unit segments like "1w2d", "6h 30m" or
// "2일3시간" and returns the total with its compact label.
func ParseWindow(input string) (time.Duration, string, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		s = DefaultWindow
	}

	var total time.Duration
	for rest := s; rest != ""; {
		m := windowSegment.FindStringSubmatch(rest)
		if m == nil {
			return 0, "", fmt.Errorf("timeutil: cannot read %q in window %q", rest, input)
		}
		count, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, "", fmt.Errorf("timeutil: window count %q: %w", m[1], err)
		}
		size, ok := unitSize[m[2]]
		if !ok {
			return 0, "", fmt.Errorf("timeutil: unknown window unit %q", m[2])
		}
		total += time.Duration(count) * size
		rest = rest[len(m[0]):]
	}
	if total <= 0 {
		return 0, "", fmt.Errorf("timeutil: window %q is empty", input)
	}
	return total, FormatWindow(total), nil
}

// FormatWindow is the inverse of ParseWindow using single letter units.
// Anything below a second is dropped.
func FormatWindow(d time.Duration) string {
	var b strings.Builder
	for _, u := range windowUnits {
		if n := d / u.size; n > 0 {
			fmt.Fprintf(&b, "%d%s", n, u.label)
			d -= n * u.size
		}
	}
	if b.Len() == 0 {
		return "0s"
	}
	return b.String()
}
