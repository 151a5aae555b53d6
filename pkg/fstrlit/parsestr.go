package fstrlit

import (
	"bytes"
	"unicode/utf8"
)

// ParseResult is what ParseString (component G) hands back: the resolved
// prefix flags, the produced node (a *Constant for every non-f-string
// path and for an f-string body with no embedded expressions, a
// *JoinedStr otherwise), and — only when RegexMode is set — the decoded
// trailing regex flags.
type ParseResult struct {
	Flags      PrefixFlags
	Node       Node
	RegexFlags *Value
}

// ParseString implements component G, the entry point: it recognizes the
// token's prefix and quoting (component B), then either hands the
// stripped body to the f-string assembler (component F) or decodes it
// directly as a plain string/bytes/char constant (component A).
func ParseString(ctx *Context, token *Token) (*ParseResult, error) {
	scan, err := ScanPrefixAndQuotes(ctx, token)
	if err != nil {
		return nil, err
	}
	flags := scan.Flags

	res := &ParseResult{Flags: flags}
	if flags.RegexMode {
		rv := regexFlagsAsValue(scan.RegexFlags)
		res.RegexFlags = &rv
	}

	if flags.FormatMode {
		c := newCursor(token, scan.Body)
		node, aerr := assembleFString(ctx, token, c, flags.RawMode, 0, flags.LegacyUnicode)
		if aerr != nil {
			return nil, aerr
		}
		res.Node = node
		return res, nil
	}

	if flags.BytesMode {
		node, berr := parseBytesConstant(ctx, token, scan)
		if berr != nil {
			return nil, berr
		}
		res.Node = node
		return res, nil
	}

	node, terr := parseTextConstant(ctx, token, scan)
	if terr != nil {
		return nil, terr
	}
	res.Node = node
	return res, nil
}

func parseBytesConstant(ctx *Context, token *Token, scan PrefixScan) (*Constant, error) {
	for _, b := range scan.Body {
		if b >= 0x80 {
			return nil, syntaxErrorf(ctx, token.Lineno, token.ColOffset, "bytes can only contain ASCII literal characters")
		}
	}

	var b []byte
	if scan.Flags.RawMode {
		b = cloneBytes(scan.Body)
	} else {
		decoded, err := DecodeBytesWithEscapes(ctx, token, scan.Body)
		if err != nil {
			return nil, err
		}
		b = decoded
	}

	c := &Constant{Value: BytesValue(b), Kind: KindNone, Sp: token.span()}
	ctx.Arena.Add(c)
	return c, nil
}

func parseTextConstant(ctx *Context, token *Token, scan PrefixScan) (*Constant, error) {
	var value Value
	// Skip the escape decoder entirely when raw mode is already set, or
	// when the body contains no backslash at all — there is nothing for
	// it to do in either case.
	if scan.Flags.RawMode || bytes.IndexByte(scan.Body, '\\') < 0 {
		if !utf8.Valid(scan.Body) {
			return nil, syntaxErrorf(ctx, token.Lineno, token.ColOffset, "invalid UTF-8 in string literal")
		}
		value = TextValue(string(scan.Body))
	} else {
		text, err := DecodeTextWithEscapes(ctx, token, scan.Body)
		if err != nil {
			return nil, err
		}
		value = TextValue(text)
	}

	kind := KindNone
	if scan.Flags.LegacyUnicode {
		kind = KindUnicode
	}

	c := &Constant{Value: value, Kind: kind, Sp: token.span()}
	ctx.Arena.Add(c)
	return c, nil
}
