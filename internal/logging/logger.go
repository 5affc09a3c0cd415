// Package logging configures the charmbracelet/log loggers used by the
// command line and the parse pipeline.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Process-wide fallback logger.
var std atomic.Pointer[log.Logger]

// New returns a stderr logger at the named level.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a logger at the named level that writes to w.
// Timestamps and callers are left out; parse traces are read per file.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{Level: ParseLevel(level)})
}

// NewInteractive returns the info logger for messages meant for whoever
// runs the command, such as "wrote .gomdmark.yml".
func NewInteractive() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Level: log.InfoLevel})
}

// ParseLevel maps a level name, in any case, to a level. "warning" is
// accepted for warn and unknown names mean info.
func ParseLevel(level string) log.Level {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "warning" {
		name = "warn"
	}
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Default returns the process-wide logger, creating an info logger on
// first use.
func Default() *log.Logger {
	if logger := std.Load(); logger != nil {
		return logger
	}
	std.CompareAndSwap(nil, New("info"))
	return std.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	std.Store(logger)
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
