// Package exprbackend is a second, independent evaluation backend for
// the same exprlang.Expr AST celeval evaluates, built on expr-lang/expr.
// internal/celeval's test suite cross-checks evaluation results between
// this and celeval for a shared corpus of embedded expressions — two independent
// implementations agreeing gives more confidence than either alone. The
// transform-and-run shape mirrors internal/celeval's transformer applied
// to expr-lang's own textual syntax instead of CEL's.
package exprbackend

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/twinfer/fstrparse/pkg/exprlang"
)

// Transformer renders an exprlang.Expr as expr-lang/expr source text.
type Transformer struct {
	sb strings.Builder
}

func NewTransformer() *Transformer { return &Transformer{} }

func (t *Transformer) Transform(node exprlang.Expr) (string, error) {
	t.sb.Reset()
	if err := node.Accept(t); err != nil {
		return "", fmt.Errorf("failed to transform AST: %w", err)
	}
	return t.sb.String(), nil
}

func (t *Transformer) VisitBoolLit(n *exprlang.BoolLit) error {
	t.sb.WriteString(strconv.FormatBool(n.Value))
	return nil
}

func (t *Transformer) VisitIntLit(n *exprlang.IntLit) error {
	t.sb.WriteString(strconv.FormatInt(n.Value, 10))
	return nil
}

func (t *Transformer) VisitFltLit(n *exprlang.FltLit) error {
	t.sb.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
	return nil
}

func (t *Transformer) VisitStrLit(n *exprlang.StrLit) error {
	t.sb.WriteString(strconv.Quote(n.Value))
	return nil
}

// expr-lang/expr spells the null literal "nil", not "null".
func (t *Transformer) VisitNullLit(*exprlang.NullLit) error {
	t.sb.WriteString("nil")
	return nil
}

func (t *Transformer) VisitIdent(n *exprlang.Ident) error {
	t.sb.WriteString(n.Name)
	return nil
}

func (t *Transformer) VisitUnaryOp(n *exprlang.UnaryOp) error {
	switch n.Op {
	case exprlang.UnaryNot:
		t.sb.WriteString("!")
	case exprlang.UnaryNeg:
		t.sb.WriteString("-")
	case exprlang.UnaryBitwiseNot:
		// expr-lang/expr has no unary bitwise-not operator; synthesize it
		// as an XOR against all-ones, the usual two's-complement identity.
		t.sb.WriteString("(-1 ^ ")
		if err := n.Arg.Accept(t); err != nil {
			return err
		}
		t.sb.WriteString(")")
		return nil
	default:
		return fmt.Errorf("unsupported unary operator %v", n.Op)
	}
	return n.Arg.Accept(t)
}

// expr-lang/expr supports native infix bitwise operators, unlike CEL, so
// every BinaryOpKind maps to a plain infix symbol here.
var binOpSymbol = map[exprlang.BinaryOpKind]string{
	exprlang.BinAdd: "+", exprlang.BinSub: "-", exprlang.BinMul: "*", exprlang.BinDiv: "/", exprlang.BinMod: "%",
	exprlang.BinEq: "==", exprlang.BinNotEq: "!=",
	exprlang.BinLt: "<", exprlang.BinGt: ">", exprlang.BinLtEq: "<=", exprlang.BinGtEq: ">=",
	exprlang.BinAnd: "&&", exprlang.BinOr: "||",
	exprlang.BinBitAnd: "&", exprlang.BinBitOr: "|", exprlang.BinBitXor: "^",
	exprlang.BinLShift: "<<", exprlang.BinRShift: ">>",
}

func (t *Transformer) VisitBinaryOp(n *exprlang.BinaryOp) error {
	sym, ok := binOpSymbol[n.Op]
	if !ok {
		return fmt.Errorf("unsupported binary operator %v", n.Op)
	}
	t.sb.WriteString("(")
	if err := n.Arg1.Accept(t); err != nil {
		return err
	}
	t.sb.WriteString(" " + sym + " ")
	if err := n.Arg2.Accept(t); err != nil {
		return err
	}
	t.sb.WriteString(")")
	return nil
}

func (t *Transformer) VisitTernaryOp(n *exprlang.TernaryOp) error {
	// expr-lang/expr spells the ternary "cond ? a : b" the same as our
	// grammar, so this is a direct transcription.
	t.sb.WriteString("(")
	if err := n.Cond.Accept(t); err != nil {
		return err
	}
	t.sb.WriteString(" ? ")
	if err := n.IfTrue.Accept(t); err != nil {
		return err
	}
	t.sb.WriteString(" : ")
	if err := n.IfElse.Accept(t); err != nil {
		return err
	}
	t.sb.WriteString(")")
	return nil
}

func (t *Transformer) VisitAttr(n *exprlang.Attr) error {
	if err := n.Value.Accept(t); err != nil {
		return err
	}
	t.sb.WriteString("." + n.Name)
	return nil
}

func (t *Transformer) VisitIndex(n *exprlang.Index) error {
	if err := n.Value.Accept(t); err != nil {
		return err
	}
	t.sb.WriteString("[")
	if err := n.Idx.Accept(t); err != nil {
		return err
	}
	t.sb.WriteString("]")
	return nil
}

func (t *Transformer) VisitCall(n *exprlang.Call) error {
	if err := n.Callee.Accept(t); err != nil {
		return err
	}
	t.sb.WriteString("(")
	for i, arg := range n.Args {
		if i > 0 {
			t.sb.WriteString(", ")
		}
		if err := arg.Accept(t); err != nil {
			return err
		}
	}
	t.sb.WriteString(")")
	return nil
}
