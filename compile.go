package tangent

import (
	"errors"
	"fmt"

	"github.com/ezachrisen/tangent/ident"
)

// defaultMaxDepth is the deepest tree Compile accepts unless the MaxDepth
// option says otherwise.
const defaultMaxDepth = 1000

// Expr is a compiled expression tree: a tree whose operators have been
// checked against the types of their operands.
// Only Compile creates an Expr, so every Expr can be evaluated,
// and an Expr is never modified after it is created.
type Expr struct {
	root Node

	// typ is the type Eval produces; never Untyped
	typ Type
}

// CompileOptions holds the settings used by Compile.
// See the functional options below for the meaning.
type CompileOptions struct {
	DefaultType Type
	MaxDepth    int
}

// CompileOption sets a compile option.
type CompileOption func(f *CompileOptions)

// Given an array of CompileOption functions, apply their effect
// on the CompileOptions struct.
func applyCompileOptions(o *CompileOptions, opts ...CompileOption) {
	for _, opt := range opts {
		opt(o)
	}
}

// DefaultType sets the type of an expression built only of identity
// elements. It has no effect on an expression with leaves, whose type is
// inferred from them.
// Default: Int
func DefaultType(t Type) CompileOption {
	return func(f *CompileOptions) {
		f.DefaultType = t
	}
}

// MaxDepth sets the deepest tree Compile will accept.
// Default: 1000
func MaxDepth(n int) CompileOption {
	return func(f *CompileOptions) {
		f.MaxDepth = n
	}
}

// Compile checks that every operator in the tree is defined for the types of
// its operands and returns the compiled expression.
//
// Mixed numeric types are allowed; the operand of the smaller type is
// converted to the larger one, in the order Int, Decimal, Float.
// Bool values combine only with bools, through And, Or, Xor and Not.
// Shifts require integer operands.
func Compile(root Node, opts ...CompileOption) (*Expr, error) {
	if root == nil {
		return nil, errors.New("compiling nil expression")
	}

	o := CompileOptions{
		MaxDepth: defaultMaxDepth,
	}
	applyCompileOptions(&o, opts...)

	if d := Depth(root); d > o.MaxDepth {
		return nil, fmt.Errorf("%w: depth %d exceeds the maximum of %d", ErrTooDeep, d, o.MaxDepth)
	}

	t, err := TypeOf(root)
	if err != nil {
		return nil, err
	}

	typ, err := rootType(root, o.DefaultType)
	if err != nil {
		return nil, err
	}
	if t != (Untyped{}) {
		typ = t
	}

	return &Expr{root: root, typ: typ}, nil
}

// MustCompile is like Compile but panics if the tree does not compile.
// It simplifies building expressions from trees known to be valid.
func MustCompile(root Node, opts ...CompileOption) *Expr {
	e, err := Compile(root, opts...)
	if err != nil {
		panic(fmt.Sprintf("tangent: compiling %s: %v", Format(root), err))
	}
	return e
}

// derived returns an expression for a tree produced from e, such as its
// derivative. The new expression has e's type: identity elements left
// without a typed operand take e's type, and a result of a smaller numeric
// type is converted up to it.
func (e *Expr) derived(root Node) (*Expr, error) {
	t, err := TypeOf(root)
	if err != nil {
		return nil, err
	}
	if t != (Untyped{}) {
		if _, ok := promote(t, e.typ); !ok && t != e.typ {
			return nil, fmt.Errorf("%w: %s has type %s, wanted %s", ErrTypeMismatch, Format(root), t, e.typ)
		}
	}
	return &Expr{root: root, typ: e.typ}, nil
}

// Root returns the root node of the tree.
func (e *Expr) Root() Node {
	return e.root
}

// Type is the type Eval produces.
func (e *Expr) Type() Type {
	return e.typ
}

// Eval evaluates the expression.
func (e *Expr) Eval() (v Value, err error) {
	v, err = Eval(e.root, e.typ)
	if err != nil {
		return Value{}, err
	}
	return convert(v, e.typ)
}

// Deriv returns the derivative of the expression with respect to the
// variable identified by tag. The result is already reduced.
func (e *Expr) Deriv(tag ident.Tag) (*Expr, error) {
	d, err := Deriv(e.root, tag.ID)
	if err != nil {
		return nil, err
	}
	return e.derived(d)
}

// Reduce returns the simplified expression.
func (e *Expr) Reduce() (*Expr, error) {
	r, err := Reduce(e.root)
	if err != nil {
		return nil, err
	}
	return e.derived(r)
}

// String renders the expression in infix notation.
func (e *Expr) String() string {
	return Format(e.root)
}

// TypeOf infers the type of the tree, and checks that each operator is
// defined for the types of its operands. A tree built only of identity
// elements is Untyped.
func TypeOf(n Node) (Type, error) {
	switch x := n.(type) {
	case Leaf:
		if x.Value.Type == nil || x.Value.Val == nil {
			return nil, fmt.Errorf("%w: leaf %s has no value", ErrTypeMismatch, x.Tag)
		}
		return x.Value.Type, nil
	case Identity:
		return Untyped{}, nil
	case Unary:
		t, err := TypeOf(x.X)
		if err != nil {
			return nil, err
		}
		switch {
		case x.Op == OpNeg && isNumeric(t):
			return t, nil
		case x.Op == OpNot && (t == Bool{} || isInteger(t)):
			return t, nil
		}
		return nil, fmt.Errorf("%w: %s of %s in %s", ErrTypeMismatch, x.Op, t, Format(x))
	case Binary:
		lt, err := TypeOf(x.L)
		if err != nil {
			return nil, err
		}
		rt, err := TypeOf(x.R)
		if err != nil {
			return nil, err
		}
		if t, ok := binaryType(x.Op, lt, rt); ok {
			return t, nil
		}
		return nil, fmt.Errorf("%w: %s between %s and %s in %s", ErrTypeMismatch, x.Op, lt, rt, Format(x))
	case nil:
		return nil, fmt.Errorf("%w: missing operand", ErrTypeMismatch)
	}
	return nil, fmt.Errorf("%w: unknown node %T", ErrTypeMismatch, n)
}

func binaryType(op Op, l, r Type) (Type, bool) {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv, OpRem:
		return promote(l, r)
	case OpAnd, OpOr, OpXor:
		if l == (Bool{}) && r == (Bool{}) {
			return Bool{}, true
		}
		if isInteger(l) && isInteger(r) {
			return promote(l, r)
		}
	case OpShl, OpShr:
		if isInteger(l) && isInteger(r) {
			return l, true
		}
	}
	return nil, false
}
