package fstrlit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tok(body string) *Token {
	return &Token{Bytes: []byte(body), Lineno: 1, ColOffset: 0, EndLineno: 1, EndColOffset: len(body)}
}

func parse(t *testing.T, ctx *Context, body string) Node {
	t.Helper()
	res, err := ParseString(ctx, tok(body))
	require.NoError(t, err)
	return res.Node
}

func newTestContext() *Context {
	return NewContext("test.src", 8)
}

func TestParseString_PlainString(t *testing.T) {
	ctx := newTestContext()
	n := parse(t, ctx, `"hello"`)
	c, ok := n.(*Constant)
	require.True(t, ok)
	assert.Equal(t, "hello", c.Value.Text)
	assert.False(t, c.Value.IsBytes)
}

func TestParseString_EmptyString(t *testing.T) {
	ctx := newTestContext()
	n := parse(t, ctx, `""`)
	c, ok := n.(*Constant)
	require.True(t, ok)
	assert.Equal(t, "", c.Value.Text)
}

func TestParseString_BytesLiteral(t *testing.T) {
	ctx := newTestContext()
	n := parse(t, ctx, `b"\xff\n"`)
	c, ok := n.(*Constant)
	require.True(t, ok)
	require.True(t, c.Value.IsBytes)
	assert.Equal(t, []byte{0xff, 0x0a}, c.Value.Bytes)
}

func TestParseString_RawString(t *testing.T) {
	ctx := newTestContext()
	n := parse(t, ctx, `r"a\nb"`)
	c, ok := n.(*Constant)
	require.True(t, ok)
	assert.Equal(t, `a\nb`, c.Value.Text)
}

func TestParseString_RegexString(t *testing.T) {
	ctx := newTestContext()
	res, err := ParseString(ctx, tok(`re"\d+"g`))
	require.NoError(t, err)
	require.True(t, res.Flags.RegexMode)
	require.True(t, res.Flags.RawMode)
	require.NotNil(t, res.RegexFlags)
	assert.Equal(t, "g", res.RegexFlags.Text)
	c, ok := res.Node.(*Constant)
	require.True(t, ok)
	assert.Equal(t, `\d+`, c.Value.Text)
}

func TestParseString_CharLiteral(t *testing.T) {
	ctx := newTestContext()
	res, err := ParseString(ctx, tok(`'a'`))
	require.NoError(t, err)
	require.True(t, res.Flags.IsChar)
	require.False(t, res.Flags.RawMode)
	c, ok := res.Node.(*Constant)
	require.True(t, ok)
	assert.Equal(t, "a", c.Value.Text)
}

func TestParseString_LegacyUnicodePrefix(t *testing.T) {
	ctx := newTestContext()
	res, err := ParseString(ctx, tok(`u"hi"`))
	require.NoError(t, err)
	c, ok := res.Node.(*Constant)
	require.True(t, ok)
	assert.Equal(t, KindUnicode, c.Kind)
}

// --- f-string concrete scenarios ---

func TestFString_SimpleExpr(t *testing.T) {
	ctx := newTestContext()
	n := parse(t, ctx, `f"a={1+2}"`)
	js, ok := n.(*JoinedStr)
	require.True(t, ok)
	require.Len(t, js.Values, 2)

	lit, ok := js.Values[0].(*Constant)
	require.True(t, ok)
	assert.Equal(t, "a=", lit.Value.Text)

	fv, ok := js.Values[1].(*FormattedValue)
	require.True(t, ok)
	assert.Equal(t, ConvNone, fv.Conversion)
	assert.Nil(t, fv.FormatSpec)
	assert.Equal(t, "(1 + 2)", fv.Value.String())
}

func TestFString_SelfDocumenting(t *testing.T) {
	ctx := newTestContext()
	n := parse(t, ctx, `f"{x=}"`)
	js, ok := n.(*JoinedStr)
	require.True(t, ok)
	require.Len(t, js.Values, 2)

	lit, ok := js.Values[0].(*Constant)
	require.True(t, ok)
	assert.Equal(t, "x=", lit.Value.Text)

	fv, ok := js.Values[1].(*FormattedValue)
	require.True(t, ok)
	assert.Equal(t, ConvRepr, fv.Conversion)
	assert.Equal(t, "x", fv.Value.String())
}

func TestFString_SelfDocumenting_RequiresFeature8(t *testing.T) {
	ctx := NewContext("test.src", 7)
	_, err := ParseString(ctx, tok(`f"{x=}"`))
	require.Error(t, err)
}

func TestFString_DoubledBraceOnly(t *testing.T) {
	ctx := newTestContext()
	n := parse(t, ctx, `f"{{not an expr}}"`)
	c, ok := n.(*Constant)
	require.True(t, ok)
	assert.Equal(t, "{not an expr}", c.Value.Text)
}

func TestFString_NestedFormatSpec(t *testing.T) {
	ctx := newTestContext()
	n := parse(t, ctx, `f"{v:>{w}}"`)
	js, ok := n.(*JoinedStr)
	require.True(t, ok)
	require.Len(t, js.Values, 1)

	fv, ok := js.Values[0].(*FormattedValue)
	require.True(t, ok)
	assert.Equal(t, "v", fv.Value.String())

	spec, ok := fv.FormatSpec.(*JoinedStr)
	require.True(t, ok)
	require.Len(t, spec.Values, 2)

	lit, ok := spec.Values[0].(*Constant)
	require.True(t, ok)
	assert.Equal(t, ">", lit.Value.Text)

	inner, ok := spec.Values[1].(*FormattedValue)
	require.True(t, ok)
	assert.Equal(t, "w", inner.Value.String())
}

func TestFString_FormatSpecWithoutExprIsJoinedStr(t *testing.T) {
	ctx := newTestContext()
	n := parse(t, ctx, `f"{v:>10}"`)
	js, ok := n.(*JoinedStr)
	require.True(t, ok)
	fv, ok := js.Values[0].(*FormattedValue)
	require.True(t, ok)

	spec, ok := fv.FormatSpec.(*JoinedStr)
	require.True(t, ok)
	require.Len(t, spec.Values, 1)
	lit, ok := spec.Values[0].(*Constant)
	require.True(t, ok)
	assert.Equal(t, ">10", lit.Value.Text)
}

func TestFString_ConversionChar(t *testing.T) {
	ctx := newTestContext()
	n := parse(t, ctx, `f"{x!r}"`)
	js, ok := n.(*JoinedStr)
	require.True(t, ok)
	fv, ok := js.Values[0].(*FormattedValue)
	require.True(t, ok)
	assert.Equal(t, ConvRepr, fv.Conversion)
}

func TestFString_NestedOppositeQuoteString(t *testing.T) {
	ctx := newTestContext()
	n := parse(t, ctx, `f"{'a'}"`)
	js, ok := n.(*JoinedStr)
	require.True(t, ok)
	fv, ok := js.Values[0].(*FormattedValue)
	require.True(t, ok)
	assert.Equal(t, `"a"`, fv.Value.String())
}

func TestFString_TripleQuotedWithNewlineInExpr(t *testing.T) {
	ctx := newTestContext()
	body := "f\"\"\"{1 +\n2}\"\"\""
	n := parse(t, ctx, body)
	js, ok := n.(*JoinedStr)
	require.True(t, ok)
	fv, ok := js.Values[0].(*FormattedValue)
	require.True(t, ok)
	assert.Equal(t, "(1 + 2)", fv.Value.String())
	assert.Equal(t, 1, fv.Value.Pos().Line)
}

func TestFString_EmptyBody(t *testing.T) {
	ctx := newTestContext()
	n := parse(t, ctx, `f""`)
	c, ok := n.(*Constant)
	require.True(t, ok)
	assert.Equal(t, "", c.Value.Text)
}

// --- error scenarios ---

func TestFString_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty expression", `f"{}"`, "empty expression not allowed"},
		{"backslash in expr", "f\"{a\\\\b}\"", "cannot include a backslash"},
		{"comment in expr", `f"{a#b}"`, "cannot include '#'"},
		{"single close brace", `f"}"`, "single '}' is not allowed"},
		{"mismatched bracket", `f"{(a]}"`, "does not match opening parenthesis"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext()
			_, err := ParseString(ctx, tok(tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseString_PrefixErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"prefix on single-quote char", `r'a'`},
		{"f combined with b", `fb"x"`},
		{"unterminated", `"abc`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext()
			_, err := ParseString(ctx, tok(tt.body))
			require.Error(t, err)
		})
	}
}

func TestConcat_MergesAdjacentConstants(t *testing.T) {
	ctx := newTestContext()
	n, err := Concat(ctx, []*Token{tok(`"foo"`), tok(`"bar"`)})
	require.NoError(t, err)
	c, ok := n.(*Constant)
	require.True(t, ok)
	assert.Equal(t, "foobar", c.Value.Text)
}

func TestConcat_MergesPlainAndFString(t *testing.T) {
	ctx := newTestContext()
	n, err := Concat(ctx, []*Token{tok(`"a="`), tok(`f"{1+2}"`)})
	require.NoError(t, err)
	js, ok := n.(*JoinedStr)
	require.True(t, ok)
	require.Len(t, js.Values, 2)
	lit, ok := js.Values[0].(*Constant)
	require.True(t, ok)
	assert.Equal(t, "a=", lit.Value.Text)
	_, ok = js.Values[1].(*FormattedValue)
	require.True(t, ok)
}

func TestConcat_RejectsMixedBytesAndText(t *testing.T) {
	ctx := newTestContext()
	_, err := Concat(ctx, []*Token{tok(`"a"`), tok(`b"b"`)})
	require.Error(t, err)
}
