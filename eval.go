package tangent

import (
	"fmt"
	"runtime"
)

// Eval evaluates the tree bottom-up, applying the host operator at every node.
//
// Zero and One take the type of the operands they are combined with: in
// x + One, One is a float if x is a float. A sub-tree built only of identity
// elements takes the type of its context, so One / (One + One) is 0.5 inside
// a float expression and 0 inside an int expression. If the whole tree is
// built of identity elements, def is its type; a nil def means Int.
//
// Operators that need integers (bitwise operators, shifts and Not) give their
// identity operands type Int whatever the context.
//
// Division by zero is not detected. Integer division and remainder by zero
// fail with the Go runtime error wrapped in ErrEval, float division yields an
// infinity or NaN, and decimal division returns the decimal library's error.
func Eval(n Node, def Type) (v Value, err error) {
	defer recoverEval(&err)

	want, err := rootType(n, def)
	if err != nil {
		return Value{}, err
	}
	return eval(n, want)
}

// rootType is the type the identity elements directly under the root take.
func rootType(n Node, def Type) (Type, error) {
	t, err := TypeOf(n)
	if err != nil {
		return nil, err
	}
	if t != (Untyped{}) {
		return t, nil
	}
	if def == nil || def == (Untyped{}) || !isNumeric(def) {
		return Int{}, nil
	}
	return def, nil
}

// recoverEval turns a runtime panic raised by the host arithmetic into an
// error wrapping ErrEval. Other panics are not recovered.
func recoverEval(err *error) {
	if r := recover(); r != nil {
		re, ok := r.(runtime.Error)
		if !ok {
			panic(r)
		}
		*err = fmt.Errorf("%w: %v", ErrEval, re)
	}
}

// eval evaluates n in a context of type want.
func eval(n Node, want Type) (Value, error) {
	switch x := n.(type) {
	case Leaf:
		return x.Value, nil
	case Identity:
		return identityValue(x, want)
	}

	ctx, err := operandContexts(n, want)
	if err != nil {
		return Value{}, err
	}

	switch x := n.(type) {
	case Unary:
		v, err := eval(x.X, ctx[0])
		if err != nil {
			return Value{}, err
		}
		return unary(x.Op, v)
	case Binary:
		l, err := eval(x.L, ctx[0])
		if err != nil {
			return Value{}, err
		}
		r, err := eval(x.R, ctx[1])
		if err != nil {
			return Value{}, err
		}
		return binary(x.Op, l, r)
	}
	return Value{}, fmt.Errorf("%w: cannot evaluate %T", ErrTypeMismatch, n)
}

// identityValue is the value of Zero or One as a t.
func identityValue(i Identity, t Type) (Value, error) {
	var n int64
	if i == One {
		n = 1
	}
	return convert(IntValue(n), t)
}

// operandContexts returns, for each operand of the operator node n, the type
// the identity elements in that operand take when n is evaluated in a context
// of type want.
func operandContexts(n Node, want Type) ([]Type, error) {
	t, err := TypeIn(n, want)
	if err != nil {
		return nil, err
	}
	switch x := n.(type) {
	case Unary:
		return []Type{t}, nil
	case Binary:
		if x.Op == OpShl || x.Op == OpShr {
			// the count does not take the type of the shifted value
			return []Type{t, Int{}}, nil
		}
		return []Type{t, t}, nil
	}
	return nil, fmt.Errorf("%w: unknown node %T", ErrTypeMismatch, n)
}

// TypeIn returns the type of the value n produces when it is evaluated in a
// context of type want. It is the type TypeOf infers, unless n is built only
// of identity elements: then it is want, or Int if the operator at the root
// of n needs integers.
func TypeIn(n Node, want Type) (Type, error) {
	t, err := TypeOf(n)
	if err != nil {
		return nil, err
	}
	if t != (Untyped{}) {
		return t, nil
	}
	switch x := n.(type) {
	case Unary:
		if x.Op == OpNeg {
			return TypeIn(x.X, want)
		}
		return Int{}, nil
	case Binary:
		switch x.Op {
		case OpAdd, OpSub, OpMul, OpDiv, OpRem:
			return want, nil
		}
		return Int{}, nil
	}
	return want, nil
}
