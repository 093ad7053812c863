// Package telemetry wraps zerolog for cmd/clou. The
// interpreter core never imports this package — its error contract is
// plain Go errors and panics, not log lines (SPEC_FULL.md Logging).
package telemetry

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// New builds a zerolog.Logger at the given level ("debug", "info", "warn",
// "error"), writing either structured JSON or a console-friendly format to
// out, and stamps every line with a run-correlation ID generated once per
// New call, so the output of separate clou invocations can be told apart.
// All lines from one Logger share that ID, including every REPL entry and
// every --watch reload of one process.
func New(out io.Writer, level, format string) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}
	if format == "console" || format == "text" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()
}
