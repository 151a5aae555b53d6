package fstrlit

import (
	"bytes"

	"github.com/twinfer/fstrparse/pkg/exprlang"
)

// compileExpr implements component E, the expression compiler. exprSrc is
// the raw (still source-form) byte range located by scanExpr, with the
// enclosing '{'/'}' and any trailing '='/'!conv'/':format' already removed.
//
// locateExpr finds where the '{' that opened this expression sits in the
// original token bytes (by searching for the brace-wrapped form), and
// exprlang.Parse is handed a parenthesized form of the same text directly
// — Go's garbage-collected strings need no separate scratch buffer for
// this round-trip.
func compileExpr(ctx *Context, token *Token, exprSrc []byte) (exprlang.Expr, error) {
	if allWhitespace(exprSrc) {
		return nil, syntaxErrorf(ctx, token.Lineno, token.ColOffset, "f-string: empty expression not allowed")
	}

	linesBefore, colsBefore, found := locateExpr(token, exprSrc)

	var startLine, startCol int
	if !found {
		startLine, startCol = token.Lineno, token.ColOffset
	} else {
		startLine = token.Lineno + (linesBefore - 1)
		if linesBefore <= 1 {
			startCol = token.ColOffset + colsBefore
		} else {
			startCol = colsBefore
		}
	}

	// Wrap in parens (not the brace form used only for location-finding)
	// so leading whitespace inside the expression is legal input to the
	// inner parser.
	wrapped := "(" + string(exprSrc) + ")"
	expr, errs := exprlang.Parse(wrapped, startLine, startCol)
	if len(errs) > 0 {
		first := errs[0]
		err := &SyntaxError{Filename: ctx.Filename, Line: first.Line, Column: first.Column, Message: first.Message}
		ctx.HasError = true
		return nil, err
	}
	return expr, nil
}

func allWhitespace(b []byte) bool {
	for _, c := range b {
		if !isASCIISpace(c) {
			return false
		}
	}
	return true
}

// locateExpr finds the expression by substring match of its brace-wrapped
// form against the enclosing token's original bytes, then derives the
// (1-based) line count and column of the opening '{' within those bytes.
// If the same textual expression occurs more than once in the token, the
// first occurrence wins. If the expression cannot be found at all, found
// is false and the caller falls back to the token's own start position
// untouched.
func locateExpr(token *Token, exprSrc []byte) (linesBefore, colsBefore int, found bool) {
	needle := make([]byte, 0, len(exprSrc)+2)
	needle = append(needle, '{')
	needle = append(needle, exprSrc...)
	needle = append(needle, '}')

	braceIdx := bytes.Index(token.Bytes, needle)
	if braceIdx < 0 {
		return 0, 0, false
	}

	before := token.Bytes[:braceIdx]
	lines := 1
	lastNL := -1
	for i, b := range before {
		if b == '\n' {
			lines++
			lastNL = i
		}
	}
	colOfBrace := braceIdx
	if lastNL != -1 {
		colOfBrace = braceIdx - lastNL - 1
	}

	// If a newline appears before any non-whitespace byte following the
	// '{', the expression effectively starts on a fresh line, whose
	// column numbering restarts at 0.
	hitNewlineFirst := false
	for i := braceIdx + 1; i < len(token.Bytes); i++ {
		b := token.Bytes[i]
		if b == '\n' {
			hitNewlineFirst = true
			break
		}
		if !isASCIISpace(b) {
			break
		}
	}
	if hitNewlineFirst {
		return lines, 0, true
	}
	return lines, colOfBrace, true
}
