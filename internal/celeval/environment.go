package celeval

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// NewEnvironment builds a cel.Env able to evaluate a Transform()-ed
// expression, declaring one cel.DynType variable per name in varNames
// (the identifiers the embedded f-string expression references) plus a
// small set of bitAnd/bitOr/bitXor/bitShiftLeft/bitShiftRight/bitNot
// functions CEL's StdLib omits, operating on dyn/dyn arguments since this
// grammar carries no static type system to narrow them against.
func NewEnvironment(varNames []string) (*cel.Env, error) {
	opts := []cel.EnvOption{cel.StdLib(), bitwiseFunctions()}
	for _, name := range varNames {
		opts = append(opts, cel.Variable(name, cel.DynType))
	}
	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return env, nil
}

func bitwiseFunctions() cel.EnvOption {
	return cel.Lib(&bitwiseLib{})
}

type bitwiseLib struct{}

func (*bitwiseLib) CompileOptions() []cel.EnvOption {
	binding := func(op func(a, b uint64) uint64) func(ref.Val, ref.Val) ref.Val {
		return func(lhs, rhs ref.Val) ref.Val {
			l, lok := asUint64(lhs)
			r, rok := asUint64(rhs)
			if !lok || !rok {
				return types.NewErr("bitwise arguments must be numeric, got %T and %T", lhs.Value(), rhs.Value())
			}
			return types.Int(op(l, r))
		}
	}
	return []cel.EnvOption{
		cel.Function("bitAnd", cel.Overload("bitand_dyn", []*cel.Type{cel.DynType, cel.DynType}, cel.DynType,
			cel.BinaryBinding(binding(func(a, b uint64) uint64 { return a & b })))),
		cel.Function("bitOr", cel.Overload("bitor_dyn", []*cel.Type{cel.DynType, cel.DynType}, cel.DynType,
			cel.BinaryBinding(binding(func(a, b uint64) uint64 { return a | b })))),
		cel.Function("bitXor", cel.Overload("bitxor_dyn", []*cel.Type{cel.DynType, cel.DynType}, cel.DynType,
			cel.BinaryBinding(binding(func(a, b uint64) uint64 { return a ^ b })))),
		cel.Function("bitShiftLeft", cel.Overload("bitshl_dyn", []*cel.Type{cel.DynType, cel.DynType}, cel.DynType,
			cel.BinaryBinding(binding(func(a, b uint64) uint64 { return a << b })))),
		cel.Function("bitShiftRight", cel.Overload("bitshr_dyn", []*cel.Type{cel.DynType, cel.DynType}, cel.DynType,
			cel.BinaryBinding(binding(func(a, b uint64) uint64 { return a >> b })))),
		cel.Function("bitNot", cel.Overload("bitnot_dyn", []*cel.Type{cel.DynType}, cel.DynType,
			cel.UnaryBinding(func(val ref.Val) ref.Val {
				v, ok := asUint64(val)
				if !ok {
					return types.NewErr("bitNot argument must be numeric, got %T", val.Value())
				}
				return types.Int(^v)
			}))),
	}
}

func (*bitwiseLib) ProgramOptions() []cel.ProgramOption { return nil }

func asUint64(v ref.Val) (uint64, bool) {
	switch n := v.(type) {
	case types.Int:
		return uint64(n), true
	case types.Uint:
		return uint64(n), true
	case types.Double:
		return uint64(n), true
	default:
		return 0, false
	}
}

// ValueAsProto converts a CEL evaluation result to a protobuf Value. The
// CLI and the processor do not call it; they emit val.Value() directly.
func ValueAsProto(val ref.Val) (*exprpb.Value, error) {
	if val == nil {
		return nil, nil
	}
	return cel.ValueAsAlphaProto(val)
}
