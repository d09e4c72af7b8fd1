package options

import (
	"time"

	"tableflip.dev/prasia/pkg/timeutil"
)

// parseWhen turns a --due or --notify value into epoch milliseconds. An
// empty value is nil.
func parseWhen(raw string, now time.Time) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := timeutil.ParseWhen(raw, now)
	if err != nil {
		return nil, err
	}
	ms := t.UnixMilli()
	return &ms, nil
}
