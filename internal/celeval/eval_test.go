package celeval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twinfer/fstrparse/pkg/exprlang"
)

func parseExpr(t *testing.T, src string) exprlang.Expr {
	t.Helper()
	expr, errs := exprlang.Parse(src, 1, 1)
	require.Empty(t, errs)
	require.NotNil(t, expr)
	return expr
}

func TestEval_Arithmetic(t *testing.T) {
	out, err := Eval(parseExpr(t, "1 + 2 * 3"), nil)
	require.NoError(t, err)
	assert.EqualValues(t, 7, out.Value())
}

func TestEval_Variables(t *testing.T) {
	out, err := Eval(parseExpr(t, "x + y"), map[string]any{"x": int64(10), "y": int64(5)})
	require.NoError(t, err)
	assert.EqualValues(t, 15, out.Value())
}

func TestEval_Ternary(t *testing.T) {
	out, err := Eval(parseExpr(t, "x > 0 ? 1 : -1"), map[string]any{"x": int64(-5)})
	require.NoError(t, err)
	assert.EqualValues(t, -1, out.Value())
}

func TestEval_BitwiseFunctions(t *testing.T) {
	out, err := Eval(parseExpr(t, "a & b"), map[string]any{"a": int64(6), "b": int64(3)})
	require.NoError(t, err)
	assert.EqualValues(t, 2, out.Value())
}
