package exprlang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Literals(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"int", "42", "42"},
		{"hex", "0x2A", "42"},
		{"float", "1.5e-2", "0.015"},
		{"bool true", "true", "true"},
		{"bool false", "false", "false"},
		{"null", "null", "null"},
		{"string", `"hi"`, `"hi"`},
		{"ident", "x", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, errs := Parse(tt.src, 1, 1)
			require.Empty(t, errs)
			require.NotNil(t, expr)
			assert.Equal(t, tt.want, expr.String())
		})
	}
}

func TestParse_Precedence(t *testing.T) {
	expr, errs := Parse("a & b | c ^ d << e >> f", 1, 1)
	require.Empty(t, errs)
	assert.Equal(t, "((a & b) | (c ^ ((d << e) >> f)))", expr.String())
}

func TestParse_Ternary(t *testing.T) {
	expr, errs := Parse("cond ? a : b", 1, 1)
	require.Empty(t, errs)
	assert.Equal(t, "(cond ? a : b)", expr.String())
}

func TestParse_CallAttrIndex(t *testing.T) {
	expr, errs := Parse("obj.method(1, 2)[0]", 1, 1)
	require.Empty(t, errs)
	assert.Equal(t, "obj.method(1, 2)[0]", expr.String())
}

func TestParse_StartPositionOffset(t *testing.T) {
	expr, errs := Parse("x", 5, 10)
	require.Empty(t, errs)
	assert.Equal(t, Pos{Line: 5, Column: 10}, expr.Pos())
}

func TestParse_EmptyExpressionIsError(t *testing.T) {
	_, errs := Parse("", 1, 1)
	require.NotEmpty(t, errs)
}

func TestParse_TrailingGarbage(t *testing.T) {
	_, errs := Parse("a b", 1, 1)
	require.NotEmpty(t, errs)
}

func TestParse_UnaryAndGrouping(t *testing.T) {
	expr, errs := Parse("-(a + b) * !c", 1, 1)
	require.Empty(t, errs)
	assert.Equal(t, "((-(a + b)) * (!c))", expr.String())
}

func TestParse_IdentifierNFKCNormalization(t *testing.T) {
	// "Ⅰ" is the Roman numeral one (ascii glyph "I"); its NFKC
	// decomposition is the plain letter "I".
	expr, errs := Parse("Ⅰ", 1, 1)
	require.Empty(t, errs)
	ident, ok := expr.(*Ident)
	require.True(t, ok)
	assert.Equal(t, "I", ident.Name)
}
