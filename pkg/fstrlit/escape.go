package fstrlit

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxScratchRatio bounds the worst-case expansion ratio the decoder plans
// for: a `\U` escape (10 input bytes) decodes into a single 4-byte UTF-8
// rune, so 6x the input length is always enough headroom regardless of
// escape mix.
const maxScratchRatio = 6

// DecodeBytesWithEscapes interprets src as a bytes literal body. token is
// used only for diagnostic positioning.
func DecodeBytesWithEscapes(ctx *Context, token *Token, src []byte) ([]byte, error) {
	if len(src) > int(^uint(0)>>1)/maxScratchRatio {
		return nil, &InternalError{Message: "string literal too long to decode"}
	}
	out := make([]byte, 0, len(src))
	line := token.Lineno
	i := 0
	for i < len(src) {
		c := src[i]
		if c == '\n' {
			line++
		}
		if c != '\\' {
			out = append(out, c)
			i++
			continue
		}
		if i+1 >= len(src) {
			return nil, syntaxErrorf(ctx, line, token.ColOffset, "trailing backslash in bytes literal")
		}
		esc := src[i+1]
		switch esc {
		case 'n':
			out = append(out, '\n')
			i += 2
		case 't':
			out = append(out, '\t')
			i += 2
		case 'r':
			out = append(out, '\r')
			i += 2
		case '\\':
			out = append(out, '\\')
			i += 2
		case '\'':
			out = append(out, '\'')
			i += 2
		case '"':
			out = append(out, '"')
			i += 2
		case 'a':
			out = append(out, '\a')
			i += 2
		case 'b':
			out = append(out, '\b')
			i += 2
		case 'f':
			out = append(out, '\f')
			i += 2
		case 'v':
			out = append(out, '\v')
			i += 2
		case '\n':
			// line continuation: backslash-newline is elided entirely.
			i += 2
			line++
		case '0', '1', '2', '3', '4', '5', '6', '7':
			n, consumed := readOctal(src[i+1:])
			out = append(out, byte(n))
			i += 1 + consumed
		case 'x':
			n, consumed, ok := readHex(src[i+2:], 2)
			if !ok {
				return nil, syntaxErrorf(ctx, line, token.ColOffset, "invalid \\x escape")
			}
			out = append(out, byte(n))
			i += 2 + consumed
		default:
			if err := ctx.warn(token, line, "invalid escape sequence '\\%c'", esc); err != nil {
				return nil, err
			}
			out = append(out, '\\', esc)
			i += 2
		}
	}
	return out, nil
}

// DecodeTextWithEscapes interprets src as a text literal body. Go strings
// are native UTF-8, so this runs as a single pass over runes: a `\`
// followed by a recognized escape letter is decoded as usual; a `\`
// followed by anything else (ASCII or not) is preserved verbatim with a
// deprecation warning. A bare non-ASCII rune outside an escape is simply
// copied through since it's already valid UTF-8 text.
func DecodeTextWithEscapes(ctx *Context, token *Token, src []byte) (string, error) {
	if len(src) > int(^uint(0)>>1)/maxScratchRatio {
		return "", &InternalError{Message: "string literal too long to decode"}
	}
	var out strings.Builder
	out.Grow(len(src))
	line := token.Lineno
	i := 0
	for i < len(src) {
		if src[i] == '\n' {
			line++
		}
		if src[i] != '\\' {
			r, size := utf8.DecodeRune(src[i:])
			out.WriteRune(r)
			i += size
			continue
		}
		if i+1 >= len(src) {
			return "", syntaxErrorf(ctx, line, token.ColOffset, "trailing backslash in string literal")
		}
		esc := src[i+1]
		switch esc {
		case 'n':
			out.WriteByte('\n')
			i += 2
		case 't':
			out.WriteByte('\t')
			i += 2
		case 'r':
			out.WriteByte('\r')
			i += 2
		case '\\':
			out.WriteByte('\\')
			i += 2
		case '\'':
			out.WriteByte('\'')
			i += 2
		case '"':
			out.WriteByte('"')
			i += 2
		case 'a':
			out.WriteByte('\a')
			i += 2
		case 'b':
			out.WriteByte('\b')
			i += 2
		case 'f':
			out.WriteByte('\f')
			i += 2
		case 'v':
			out.WriteByte('\v')
			i += 2
		case '\n':
			i += 2
			line++
		case '0', '1', '2', '3', '4', '5', '6', '7':
			n, consumed := readOctal(src[i+1:])
			out.WriteRune(rune(n))
			i += 1 + consumed
		case 'x':
			n, consumed, ok := readHex(src[i+2:], 2)
			if !ok {
				return "", syntaxErrorf(ctx, line, token.ColOffset, "invalid \\x escape")
			}
			out.WriteRune(rune(n))
			i += 2 + consumed
		case 'u':
			n, consumed, ok := readHex(src[i+2:], 4)
			if !ok {
				return "", syntaxErrorf(ctx, line, token.ColOffset, "invalid \\u escape")
			}
			out.WriteRune(rune(n))
			i += 2 + consumed
		case 'U':
			n, consumed, ok := readHex(src[i+2:], 8)
			if !ok || n > 0x10FFFF {
				return "", syntaxErrorf(ctx, line, token.ColOffset, "invalid \\U escape")
			}
			out.WriteRune(rune(n))
			i += 2 + consumed
		case 'N':
			r, size, err := readNamedChar(ctx, token, line, src[i+2:])
			if err != nil {
				return "", err
			}
			out.WriteRune(r)
			i += 2 + size
		default:
			r, size := utf8.DecodeRune(src[i+1:])
			if err := ctx.warn(token, line, "invalid escape sequence '\\%c'", r); err != nil {
				return "", err
			}
			out.WriteByte('\\')
			out.WriteRune(r)
			i += 1 + size
		}
	}
	return out.String(), nil
}

// readOctal reads up to three octal digits from src, returning the value
// truncated to its low 8 bits (so `\777` yields 0xFF and `\400` yields 0)
// and the number of bytes consumed (1-3, the digit(s) themselves — the
// caller already accounted for the leading backslash and first digit
// appropriately).
func readOctal(firstDigitAndRest []byte) (value int, consumed int) {
	n := 0
	i := 0
	for i < 3 && i < len(firstDigitAndRest) && firstDigitAndRest[i] >= '0' && firstDigitAndRest[i] <= '7' {
		n = n*8 + int(firstDigitAndRest[i]-'0')
		i++
	}
	return n & 0xFF, i
}

func readHex(src []byte, digits int) (value int, consumed int, ok bool) {
	if len(src) < digits {
		return 0, 0, false
	}
	n, err := strconv.ParseInt(string(src[:digits]), 16, 64)
	if err != nil {
		return 0, 0, false
	}
	return int(n), digits, true
}

// readNamedChar resolves `\N{NAME}`. The body of src must start with `{`.
// The lookup table below is a minimal stdlib-only fallback: no Unicode
// name database is available, so only the names listed in the table
// below resolve; unrecognized names are a decode error
// rather than a silent guess.
func readNamedChar(ctx *Context, token *Token, line int, src []byte) (rune, int, error) {
	if len(src) == 0 || src[0] != '{' {
		return 0, 0, syntaxErrorf(ctx, line, token.ColOffset, `missing '{' in \N{...} escape`)
	}
	end := -1
	for i := 1; i < len(src); i++ {
		if src[i] == '}' {
			end = i
			break
		}
	}
	if end == -1 {
		return 0, 0, syntaxErrorf(ctx, line, token.ColOffset, `missing '}' terminating \N{...} escape`)
	}
	name := string(src[1:end])
	r, ok := unicodeNames[strings.ToUpper(name)]
	if !ok {
		return 0, 0, syntaxErrorf(ctx, line, token.ColOffset, "unknown Unicode character name %q", name)
	}
	return r, end + 1, nil
}

var unicodeNames = map[string]rune{
	"LATIN SMALL LETTER A":       'a',
	"GREEK SMALL LETTER ALPHA":   'α',
	"GREEK SMALL LETTER BETA":    'β',
	"BULLET":                     '•',
	"EM DASH":                    '—',
	"EN DASH":                    '–',
	"HORIZONTAL ELLIPSIS":        '…',
	"SNOWMAN":                    '☃',
	"WHITE SMILING FACE":         '☺',
	"BLACK STAR":                 '★',
	"NO-BREAK SPACE":             ' ',
	"DEGREE SIGN":                '°',
	"COPYRIGHT SIGN":             '©',
	"REGISTERED SIGN":            '®',
	"LATIN CAPITAL LETTER O WITH STROKE": 'Ø',
}
