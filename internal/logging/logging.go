// Package logging builds the leveled loggers used by the command line tools.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Format controls how log entries are rendered.
type Format int

const (
	Text Format = iota
	JSON
	Logfmt
)

func (f Format) String() string {
	switch f {
	case Text:
		return "text"
	case JSON:
		return "json"
	case Logfmt:
		return "logfmt"
	default:
		return "unknown"
	}
}

// ParseFormat converts a string to a Format. The empty string is Text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return Text, nil
	case "json":
		return JSON, nil
	case "logfmt":
		return Logfmt, nil
	default:
		return Text, fmt.Errorf("unsupported log format %q", s)
	}
}

// ParseLevel converts a string to a level. The empty string is info and
// "warning" is accepted for warn.
func ParseLevel(s string) (log.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return log.InfoLevel, nil
	case "warning":
		s = "warn"
	}
	lvl, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("unsupported log level %q", s)
	}
	return lvl, nil
}

// New returns a logger writing to w.
func New(w io.Writer, level log.Level, format Format) *log.Logger {
	opts := log.Options{
		Level:           level,
		ReportTimestamp: format != Text,
	}
	switch format {
	case JSON:
		opts.Formatter = log.JSONFormatter
	case Logfmt:
		opts.Formatter = log.LogfmtFormatter
	default:
		opts.Formatter = log.TextFormatter
	}
	return log.NewWithOptions(w, opts)
}

// FromFlags parses level and format names and builds a logger.
func FromFlags(w io.Writer, level, format string) (*log.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return New(w, lvl, f), nil
}
