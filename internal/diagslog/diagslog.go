// Package diagslog adapts pkg/fstrlit's Diagnostics contract onto
// log/slog, a *slog.Logger wired in through a plain constructor the way
// a functional-options-configured parser would expose it.
package diagslog

import (
	"fmt"
	"log/slog"
)

// SlogDiagnostics routes pkg/fstrlit deprecation-style warnings (unknown
// escape sequences, `\{` in a non-raw literal segment) to a *slog.Logger,
// tagging each record with the source filename and line so multi-file
// callers can tell warnings apart.
type SlogDiagnostics struct {
	Logger *slog.Logger
}

// New creates a SlogDiagnostics wrapping logger. A nil logger falls back
// to slog.Default().
func New(logger *slog.Logger) SlogDiagnostics {
	if logger == nil {
		logger = slog.Default()
	}
	return SlogDiagnostics{Logger: logger}
}

// Warn implements fstrlit.Diagnostics. It never escalates a warning to an
// error; callers that want escalation should wrap SlogDiagnostics in
// their own implementation that inspects the message.
func (d SlogDiagnostics) Warn(filename string, line int, format string, args ...any) error {
	d.Logger.Warn(fmt.Sprintf(format, args...), "file", filename, "line", line)
	return nil
}
