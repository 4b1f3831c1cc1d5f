package logging

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// ConsoleOptions holds configuration for console logging.
type ConsoleOptions struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	ReportCaller    bool
	Prefix          string
}

// DefaultConsoleOptions returns default options for console logging.
func DefaultConsoleOptions() ConsoleOptions {
	return ConsoleOptions{
		Level:     log.InfoLevel,
		Formatter: log.TextFormatter,
		Prefix:    "pmtypes",
	}
}

// ParseConsoleOptions builds options from the configured level and format
// names.
func ParseConsoleOptions(level, format string, timestamps, caller bool) (ConsoleOptions, error) {
	opts := DefaultConsoleOptions()

	if level != "" {
		lvl, err := log.ParseLevel(level)
		if err != nil {
			return opts, fmt.Errorf("log level: %w", err)
		}
		opts.Level = lvl
	}

	switch format {
	case "", "text":
		opts.Formatter = log.TextFormatter
	case "json":
		opts.Formatter = log.JSONFormatter
	case "logfmt":
		opts.Formatter = log.LogfmtFormatter
	default:
		return opts, fmt.Errorf("unknown log format %q", format)
	}

	opts.ReportTimestamp = timestamps
	opts.ReportCaller = caller
	return opts, nil
}

// NewConsole returns a leveled logger writing to w.
func NewConsole(w io.Writer, opts ConsoleOptions) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		ReportCaller:    opts.ReportCaller,
		Prefix:          opts.Prefix,
	})
}
