package fstrlit

import "unicode/utf8"

// literalStatus is the result code returned by scanLiteral.
type literalStatus int

const (
	litEnd     literalStatus = 0 // end of body, or a single brace starting/ending something
	litDoubled literalStatus = 1 // doubled {{ or }} consumed; caller must emit and call again
	litError   literalStatus = -1
)

// scanLiteral implements component C, the literal scanner. It collects raw
// (not yet escape-decoded) literal bytes starting at c.pos, stopping at an
// un-doubled '{'/'}' or the end of the body.
//
// Deviation from the source this is grounded on: a backslash immediately
// followed by '{' or '}' is treated here as a two-byte escaped literal
// brace (warned for '{', silent for '}') rather than falling through to
// the doubled/terminator logic applied to bare braces. The source's
// literal reading of that fallthrough makes an escaped brace behave
// identically to an unescaped one, which would make `\{` impossible to
// use for a literal brace at all; this scanner instead lets escaped
// braces always stay literal. Both bytes are left in the literal for the
// decoder (§4.A), which keeps the backslash and the brace verbatim and
// reports them as an unknown escape in turn.
func scanLiteral(ctx *Context, token *Token, c *cursor, rawMode bool, recurseLvl int) ([]byte, literalStatus, error) {
	start := c.pos
	for !c.done() {
		ch := c.peek()

		if ch == '\\' && !rawMode {
			if next, ok := c.peekAt(1); ok && next == 'N' {
				if brace, ok2 := c.peekAt(2); ok2 && brace == '{' {
					c.advanceN(3)
					for !c.done() && c.peek() != '}' {
						c.advance()
					}
					if c.done() {
						return nil, litError, syntaxErrorf(ctx, c.line, c.col, `missing '}' terminating \N{...} escape`)
					}
					c.advance()
					continue
				}
			}
			if next, ok := c.peekAt(1); ok && next == '{' {
				if err := ctx.warn(token, c.line, "invalid escape sequence '\\%c'", next); err != nil {
					return nil, litError, err
				}
				c.advanceN(2)
				continue
			}
			// Any other escape (including `\}`) is consumed as a two-byte
			// unit so the scanner never re-examines an escaped character
			// as if it were a fresh, unescaped one; decoding is left to
			// §4.A entirely.
			c.advanceN(2)
			continue
		}

		if ch == '{' || ch == '}' {
			if recurseLvl == 0 {
				if next, ok := c.peekAt(1); ok && next == ch {
					lit := cloneBytes(c.body[start:c.pos])
					lit = append(lit, ch)
					c.advanceN(2)
					return lit, litDoubled, nil
				}
				if ch == '}' {
					return nil, litError, syntaxErrorf(ctx, c.line, c.col, "f-string: single '}' is not allowed")
				}
				return cloneBytes(c.body[start:c.pos]), litEnd, nil
			}
			// Nested format spec: '{' starts another expression, '}' ends
			// this spec. Either way the caller takes over from here.
			return cloneBytes(c.body[start:c.pos]), litEnd, nil
		}

		c.advance()
	}
	return cloneBytes(c.body[start:c.pos]), litEnd, nil
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// decodeLiteral applies component A to the raw bytes scanLiteral
// collected; raw mode skips escape decoding entirely.
func decodeLiteral(ctx *Context, token *Token, raw []byte, rawMode bool) (Value, error) {
	if len(raw) == 0 {
		return TextValue(""), nil
	}
	if rawMode {
		if !utf8.Valid(raw) {
			return Value{}, syntaxErrorf(ctx, token.Lineno, token.ColOffset, "invalid UTF-8 in raw literal")
		}
		return TextValue(string(raw)), nil
	}
	text, err := DecodeTextWithEscapes(ctx, token, raw)
	if err != nil {
		return Value{}, err
	}
	return TextValue(text), nil
}
