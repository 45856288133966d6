package exec

import (
	"fmt"

	"github.com/luigitni/relcore/storage"
)

// Expr is the narrow expression tree evaluated by the projection operator:
// column references, integer and string literals, and binary arithmetic.
type Expr interface {
	// Type infers the static output type of the expression against schema.
	Type(schema *Schema) (storage.FieldType, error)
	// Eval evaluates the expression against the bindings in env.
	Eval(env *Env) (storage.Value, error)
	// IsColumnRef reports whether the expression is a bare column
	// reference, and if so its qualifier and name.
	IsColumnRef() (qualifier string, name string, ok bool)
	String() string
}

// ColumnRef is a bare reference to a column, optionally qualified by table
// name.
type ColumnRef struct {
	Qualifier string
	Name      string
}

func (c ColumnRef) Type(schema *Schema) (storage.FieldType, error) {
	idx, err := schema.IndexOf(c.Qualifier, c.Name)
	if err != nil {
		return 0, err
	}
	return schema.Columns()[idx].Type, nil
}

func (c ColumnRef) Eval(env *Env) (storage.Value, error) {
	return env.Resolve(c.Qualifier, c.Name)
}

func (c ColumnRef) IsColumnRef() (string, string, bool) {
	return c.Qualifier, c.Name, true
}

func (c ColumnRef) String() string {
	if c.Qualifier == "" {
		return c.Name
	}
	return c.Qualifier + "." + c.Name
}

// IntLiteral is a constant of type storage.INT.
type IntLiteral struct {
	Value storage.Int
}

func (l IntLiteral) Type(*Schema) (storage.FieldType, error) {
	return storage.INT, nil
}

func (l IntLiteral) Eval(*Env) (storage.Value, error) {
	return storage.ValueFromInteger[storage.Int](storage.SizeOfInt, l.Value), nil
}

func (l IntLiteral) IsColumnRef() (string, string, bool) {
	return "", "", false
}

func (l IntLiteral) String() string {
	return fmt.Sprintf("%d", l.Value)
}

// StringLiteral is a constant of type storage.TEXT.
type StringLiteral struct {
	Value string
}

func (l StringLiteral) Type(*Schema) (storage.FieldType, error) {
	return storage.TEXT, nil
}

func (l StringLiteral) Eval(*Env) (storage.Value, error) {
	return storage.ValueFromGoString(l.Value), nil
}

func (l StringLiteral) IsColumnRef() (string, string, bool) {
	return "", "", false
}

func (l StringLiteral) String() string {
	return fmt.Sprintf("%q", l.Value)
}

// BinaryOperator is the operator of a BinaryOp expression.
type BinaryOperator int

const (
	OpAdd BinaryOperator = iota
	OpSub
	OpMul
)

func (op BinaryOperator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	default:
		return "?"
	}
}

// BinaryOp is arithmetic over two integer-typed operands. The teaching
// engine does not infer mixed-type arithmetic; both operands are expected
// to evaluate to storage.INT.
type BinaryOp struct {
	Op          BinaryOperator
	Left, Right Expr
}

func (b BinaryOp) Type(schema *Schema) (storage.FieldType, error) {
	if _, err := b.Left.Type(schema); err != nil {
		return 0, err
	}
	if _, err := b.Right.Type(schema); err != nil {
		return 0, err
	}
	return storage.INT, nil
}

func (b BinaryOp) Eval(env *Env) (storage.Value, error) {
	lv, err := b.Left.Eval(env)
	if err != nil {
		return nil, err
	}

	rv, err := b.Right.Eval(env)
	if err != nil {
		return nil, err
	}

	l := storage.ValueAsInteger[storage.Int](lv)
	r := storage.ValueAsInteger[storage.Int](rv)

	var result storage.Int
	switch b.Op {
	case OpAdd:
		result = l + r
	case OpSub:
		result = l - r
	case OpMul:
		result = l * r
	}

	return storage.ValueFromInteger[storage.Int](storage.SizeOfInt, result), nil
}

func (b BinaryOp) IsColumnRef() (string, string, bool) {
	return "", "", false
}

func (b BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// exprEqual reports structural equality between two expression trees.
func exprEqual(a, b Expr) bool {
	switch av := a.(type) {
	case ColumnRef:
		bv, ok := b.(ColumnRef)
		return ok && av == bv
	case IntLiteral:
		bv, ok := b.(IntLiteral)
		return ok && av == bv
	case StringLiteral:
		bv, ok := b.(StringLiteral)
		return ok && av == bv
	case BinaryOp:
		bv, ok := b.(BinaryOp)
		return ok && av.Op == bv.Op && exprEqual(av.Left, bv.Left) && exprEqual(av.Right, bv.Right)
	default:
		return false
	}
}
