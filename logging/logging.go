// Package logging provides the process-wide structured logger. Per the
// spec's Design Notes (§9), one global logger is acceptable — it is not
// threaded through the frame loop like the SDI registry, backend, or WM.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// L is the process-wide logger. Replace it (e.g. in tests) with Set.
var L = New(os.Stderr, false)

// New builds a zerolog.Logger writing to w. When pretty is true, output is
// a human-readable console format; otherwise it is newline-delimited JSON,
// suited to the constrained-target serial console or a captured log file.
func New(w io.Writer, pretty bool) zerolog.Logger {
	out := w
	if pretty {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).With().Timestamp().Str("component", "oasis").Logger()
}

// Set replaces the process-wide logger, e.g. in tests or for hosts that want
// a different writer or the console format instead of the default JSON to
// stderr.
func Set(l zerolog.Logger) { L = l }

// Component returns a child logger tagged with the given subsystem name,
// e.g. logging.Component("sdi") or logging.Component("loader").
func Component(name string) zerolog.Logger {
	return L.With().Str("component", name).Logger()
}
