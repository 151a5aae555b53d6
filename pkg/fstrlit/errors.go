package fstrlit

import "fmt"

// SyntaxError is a parse failure positioned in the coordinates of the
// file the enclosing token came from.
type SyntaxError struct {
	Filename string
	Line     int
	Column   int
	Message  string
}

func (e *SyntaxError) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Message)
}

// InternalError covers conditions the tokenizer or caller should have
// already prevented, or resource exhaustion. These are fatal to the
// parse.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string { return e.Message }

// Diagnostics is the warning/diagnostic contract consumed by the core.
// Deprecation-style warnings (unknown escape sequences, `\{` in a literal
// segment) are routed through it instead of failing the parse, unless the
// caller's filter escalates a warning to an error — expressed here as
// Warn returning a non-nil error when escalation applies.
type Diagnostics interface {
	Warn(filename string, line int, format string, args ...any) error
}

// NopDiagnostics discards every warning. Useful for tests and for callers
// that don't care about deprecation-style diagnostics.
type NopDiagnostics struct{}

func (NopDiagnostics) Warn(string, int, string, ...any) error { return nil }

func syntaxErrorf(ctx *Context, line, col int, format string, args ...any) *SyntaxError {
	err := &SyntaxError{Filename: ctx.Filename, Line: line, Column: col, Message: fmt.Sprintf(format, args...)}
	ctx.HasError = true
	return err
}
