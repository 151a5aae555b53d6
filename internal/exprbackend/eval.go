package exprbackend

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/twinfer/fstrparse/pkg/exprlang"
)

// Eval lowers node to expr-lang/expr source via Transformer, compiles it
// against vars (used both as the type environment and the runtime
// bindings, matching expr.Eval's usual untyped-map calling convention),
// and runs it.
func Eval(node exprlang.Expr, vars map[string]any) (any, error) {
	src, err := NewTransformer().Transform(node)
	if err != nil {
		return nil, err
	}

	program, err := expr.Compile(src, expr.Env(vars), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("expr-lang compile error for %q: %w", src, err)
	}

	out, err := expr.Run(program, vars)
	if err != nil {
		return nil, fmt.Errorf("expr-lang evaluation failed for %q: %w", src, err)
	}
	return out, nil
}
