package fstrlit

import (
	"strings"
	"unicode/utf8"
)

// PrefixScan is everything component G (ParseString) needs after
// recognizing the token's prefix and quotes.
type PrefixScan struct {
	Flags      PrefixFlags
	Body       []byte // the token's bytes with prefix, quotes and (if regex) trailing flags stripped
	RegexFlags string // decoded trailing regex flags, only set when Flags.RegexMode
	Triple     bool
}

// ScanPrefixAndQuotes implements component B. It reads the leading prefix
// letters, classifies the quote style, strips the quotes (and, for a
// regex literal, the trailing flags), and returns the stripped body.
func ScanPrefixAndQuotes(ctx *Context, token *Token) (PrefixScan, error) {
	src := token.Bytes
	if len(src) > int(^uint(0)>>1) {
		return PrefixScan{}, &InternalError{Message: "string to parse is too long"}
	}

	var flags PrefixFlags
	i := 0
	for i < len(src) && isASCIIAlpha(src[i]) {
		switch src[i] {
		case 'b', 'B':
			flags.BytesMode = true
			i++
		case 'u', 'U':
			flags.LegacyUnicode = true
			i++
		case 'r', 'R':
			flags.RawMode = true
			i++
			if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
				flags.RegexMode = true
				i++
			}
		case 'f', 'F':
			flags.FormatMode = true
			i++
		case 'c', 'C':
			flags.RawMode = true
			flags.CharMode = true
			i++
		default:
			return PrefixScan{}, syntaxErrorf(ctx, token.Lineno, token.ColOffset, "invalid string literal prefix %q", string(src[i]))
		}
	}

	if i >= len(src) || (src[i] != '\'' && src[i] != '"') {
		return PrefixScan{}, syntaxErrorf(ctx, token.Lineno, token.ColOffset, "invalid literal: missing opening quote")
	}
	quote := src[i]

	if quote == '\'' {
		if flags.FormatMode || flags.BytesMode || flags.RawMode || flags.RegexMode || flags.CharMode || flags.LegacyUnicode {
			return PrefixScan{}, syntaxErrorf(ctx, token.Lineno, token.ColOffset, "characters cannot have a prefix")
		}
		flags.IsChar = true
	}

	if flags.FormatMode && ctx.FeatureVersion < 6 {
		return PrefixScan{}, syntaxErrorf(ctx, token.Lineno, token.ColOffset, "format strings are only supported from feature version 6 and greater")
	}
	if flags.FormatMode && flags.BytesMode {
		return PrefixScan{}, syntaxErrorf(ctx, token.Lineno, token.ColOffset, "f-string literal cannot also be a bytes literal")
	}

	body := src[i+1:]

	var regexFlags string
	if flags.RegexMode {
		// Scan backwards for the matching closing quote; everything after
		// it is the (UTF-8) trailing regex flags.
		last := -1
		for j := len(body) - 1; j >= 0; j-- {
			if body[j] == quote {
				last = j
				break
			}
		}
		if last == -1 {
			return PrefixScan{}, syntaxErrorf(ctx, token.EndLineno, token.EndColOffset, "unterminated string literal")
		}
		if !utf8.Valid(body[last+1:]) {
			return PrefixScan{}, syntaxErrorf(ctx, token.EndLineno, token.EndColOffset, "regex flags are not valid UTF-8")
		}
		regexFlags = string(body[last+1:])
		body = body[:last+1]
	}

	if len(body) == 0 || body[len(body)-1] != quote {
		return PrefixScan{}, syntaxErrorf(ctx, token.EndLineno, token.EndColOffset, "unterminated string literal")
	}
	body = body[:len(body)-1]

	triple := false
	if len(body) >= 4 && hasPrefix2(body, quote) {
		if flags.IsChar {
			return PrefixScan{}, syntaxErrorf(ctx, token.Lineno, token.ColOffset, "characters cannot be triple quoted")
		}
		if body[len(body)-1] != quote || body[len(body)-2] != quote {
			return PrefixScan{}, &InternalError{Message: "unterminated triple-quoted literal"}
		}
		triple = true
		body = body[2 : len(body)-2]
	}

	return PrefixScan{Flags: flags, Body: body, RegexFlags: regexFlags, Triple: triple}, nil
}

func isASCIIAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func hasPrefix2(body []byte, quote byte) bool {
	return len(body) >= 2 && body[0] == quote && body[1] == quote
}

// regexFlagsAsValue is a small convenience used by component G to hand
// back the decoded trailing flags as a Value, matching the "text value"
// shape the rest of the package uses.
func regexFlagsAsValue(flags string) Value {
	return TextValue(strings.Clone(flags))
}
