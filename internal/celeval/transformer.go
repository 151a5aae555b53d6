// Package celeval evaluates the expressions pkg/fstrlit's component E
// produces by lowering them through google/cel-go. It is a supplemental
// capability layered on top of the core: pkg/fstrlit never imports this
// package and never evaluates expressions itself. Only cmd/fstrparse's
// `eval` subcommand and internal/service's optional `evaluate` mode call
// it, operating on the AST the core already produced.
package celeval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/twinfer/fstrparse/pkg/exprlang"
)

// Transformer walks an exprlang.Expr and renders it as CEL source text.
// It implements exprlang.Visitor.
type Transformer struct {
	sb strings.Builder
}

// NewTransformer creates an empty Transformer.
func NewTransformer() *Transformer { return &Transformer{} }

// Transform renders node as a CEL expression string.
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

func (t *Transformer) VisitNullLit(*exprlang.NullLit) error {
	t.sb.WriteString("null")
	return nil
}

func (t *Transformer) VisitIdent(n *exprlang.Ident) error {
	t.sb.WriteString(n.Name)
	return nil
}

func (t *Transformer) VisitUnaryOp(n *exprlang.UnaryOp) error {
	op := ""
	switch n.Op {
	case exprlang.UnaryNot:
		op = "!"
	case exprlang.UnaryNeg:
		op = "-"
	case exprlang.UnaryBitwiseNot:
		// CEL has no bitwise-not operator token; StdLib exposes none
		// either, so this lowers to a "bitNot(x)" function call against
		// the extension function registered in environment.go.
		t.sb.WriteString("bitNot(")
		if err := n.Arg.Accept(t); err != nil {
			return err
		}
		t.sb.WriteString(")")
		return nil
	default:
		return fmt.Errorf("unsupported unary operator %v", n.Op)
	}
	t.sb.WriteString(op)
	return n.Arg.Accept(t)
}

var binOpCELSymbol = map[exprlang.BinaryOpKind]string{
	exprlang.BinAdd: "+", exprlang.BinSub: "-", exprlang.BinMul: "*",
	exprlang.BinDiv: "/", exprlang.BinMod: "%",
	exprlang.BinEq: "==", exprlang.BinNotEq: "!=",
	exprlang.BinLt: "<", exprlang.BinGt: ">", exprlang.BinLtEq: "<=", exprlang.BinGtEq: ">=",
	exprlang.BinAnd: "&&", exprlang.BinOr: "||",
}

// binOpCELFunc covers operators CEL has no infix syntax for, lowered
// instead to the bitwise extension functions registered in
// environment.go.
var binOpCELFunc = map[exprlang.BinaryOpKind]string{
	exprlang.BinBitAnd: "bitAnd", exprlang.BinBitOr: "bitOr", exprlang.BinBitXor: "bitXor",
	exprlang.BinLShift: "bitShiftLeft", exprlang.BinRShift: "bitShiftRight",
}

func (t *Transformer) VisitBinaryOp(n *exprlang.BinaryOp) error {
	if fn, ok := binOpCELFunc[n.Op]; ok {
		t.sb.WriteString(fn)
		t.sb.WriteString("(")
		if err := n.Arg1.Accept(t); err != nil {
			return err
		}
		t.sb.WriteString(", ")
		if err := n.Arg2.Accept(t); err != nil {
			return err
		}
		t.sb.WriteString(")")
		return nil
	}

	sym, ok := binOpCELSymbol[n.Op]
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
	t.sb.WriteString(".")
	t.sb.WriteString(n.Name)
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
