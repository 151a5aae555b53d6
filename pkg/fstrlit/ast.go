package fstrlit

import "github.com/twinfer/fstrparse/pkg/exprlang"

// Span is the (start_line, start_col, end_line, end_col) tuple attached to
// every produced AST node.
type Span struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// Node is the common interface satisfied by every produced AST node.
type Node interface {
	Span() Span
	node()
}

// ConstKind distinguishes the rare "u"-prefixed legacy-unicode marker from
// an unmarked string constant.
type ConstKind int

const (
	KindNone ConstKind = iota
	KindUnicode
)

// Value is the decoded payload of a Constant: exactly one of Text or Bytes
// is meaningful, selected by IsBytes.
type Value struct {
	Text    string
	Bytes   []byte
	IsBytes bool
}

func TextValue(s string) Value  { return Value{Text: s} }
func BytesValue(b []byte) Value { return Value{Bytes: b, IsBytes: true} }

// Constant is a plain string/bytes/char constant node.
type Constant struct {
	Value Value
	Kind  ConstKind
	Sp    Span
}

func (c *Constant) Span() Span { return c.Sp }
func (c *Constant) node()      {}

// Conversion selects the !s / !r / !a rendering of a FormattedValue, or
// ConvNone when no conversion was requested.
type Conversion rune

const (
	ConvNone Conversion = -1
	ConvStr  Conversion = 's'
	ConvRepr Conversion = 'r'
	ConvASCI Conversion = 'a'
)

// FormattedValue is one embedded `{expr}` piece of a JoinedStr.
type FormattedValue struct {
	Value      exprlang.Expr
	Conversion Conversion
	FormatSpec Node // *JoinedStr, or nil
	Sp         Span
}

func (f *FormattedValue) Span() Span { return f.Sp }
func (f *FormattedValue) node()      {}

// JoinedStr is an f-string's AST: an ordered sequence of Constant and
// FormattedValue pieces. Adjacent Constant pieces are never emitted —
// the assembler always merges consecutive literal runs into one.
type JoinedStr struct {
	Values []Node
	Sp     Span
}

func (j *JoinedStr) Span() Span { return j.Sp }
func (j *JoinedStr) node()      {}
