// Package logging builds the leveled stderr logger shared by the store and
// the runners.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Options configures New.
type Options struct {
	Level     string
	Formatter string
	Prefix    string
	Out       io.Writer
}

// New returns a logger writing to opts.Out, or stderr when unset.
func New(opts Options) *log.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "prasia"
	}
	return log.NewWithOptions(out, log.Options{
		Level:     ParseLevel(opts.Level),
		Formatter: ParseFormatter(opts.Formatter),
		Prefix:    prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ParseLevel maps a config string to a level. Unknown values mean warn.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.WarnLevel
	}
}

// ParseFormatter maps a formatter name to a formatter. Unknown values mean
// text.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
