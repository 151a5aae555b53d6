package celeval

import (
	"fmt"

	"github.com/google/cel-go/common/types/ref"
	"github.com/twinfer/fstrparse/pkg/exprlang"
)

// Eval lowers node to CEL via Transformer, compiles it against an
// environment declaring one dyn variable per key in vars, and evaluates
// it with those bindings. This is the entry point cmd/fstrparse's `eval`
// subcommand and internal/service's optional evaluate mode call;
// pkg/fstrlit itself never calls this — the core never evaluates
// expressions, it only parses them.
func Eval(node exprlang.Expr, vars map[string]any) (ref.Val, error) {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}

	env, err := NewEnvironment(names)
	if err != nil {
		return nil, err
	}

	src, err := NewTransformer().Transform(node)
	if err != nil {
		return nil, err
	}

	ast, issues := env.Compile(src)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("CEL compile error for %q: %w", src, issues.Err())
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("CEL program construction failed for %q: %w", src, err)
	}

	out, _, err := program.Eval(vars)
	if err != nil {
		return nil, fmt.Errorf("CEL evaluation failed for %q: %w", src, err)
	}
	return out, nil
}
