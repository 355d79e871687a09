// Package logger builds the zerolog instance shared by the server. Loggers
// are plain values: construct one in main and pass it down, there is no
// package-level state to initialise.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options selects the output format and verbosity of a new logger.
type Options struct {
	// Level is the minimum level to emit (trace, debug, info, warn, error).
	// Unknown or empty values fall back to info.
	Level string
	// Pretty switches from JSON lines to colorized console output. Meant for
	// local development; production runs emit JSON.
	Pretty bool
	// Output receives the log stream. Nil means os.Stdout.
	Output io.Writer
}

// New returns a logger configured per opts. Every entry carries a timestamp
// and the caller location.
func New(opts Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(level(opts.Level)).
		With().
		Timestamp().
		Caller().
		Logger()
}

// level maps a config string to a zerolog level, defaulting to info. "warning"
// is accepted as an alias because older deployments used it.
func level(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
