package celeval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twinfer/fstrparse/internal/exprbackend"
)

// TestCrossCheck_CELAndExprLangAgree runs the same parsed expression
// through both evaluation backends and asserts they agree — a second,
// independent implementation reaching the same answer is stronger
// evidence than either backend's own test suite alone.
func TestCrossCheck_CELAndExprLangAgree(t *testing.T) {
	tests := []struct {
		name string
		src  string
		vars map[string]any
	}{
		{"arithmetic", "1 + 2 * 3", nil},
		{"comparison", "x >= y", map[string]any{"x": int64(4), "y": int64(4)}},
		{"ternary", "cond ? 1 : 2", map[string]any{"cond": true}},
		{"bitwise and", "a & b", map[string]any{"a": int64(12), "b": int64(10)}},
		{"string concat", `"a" + "b"`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := parseExpr(t, tt.src)

			celOut, err := Eval(node, tt.vars)
			require.NoError(t, err)

			exprOut, err := exprbackend.Eval(node, tt.vars)
			require.NoError(t, err)

			assert.EqualValues(t, exprOut, celOut.Value())
		})
	}
}
