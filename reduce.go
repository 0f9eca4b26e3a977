package tangent

// Reduce simplifies the tree by rewriting identity-element patterns.
//
// Children are reduced first; the parent is then matched against the
// patterns for its operator, most specific first, and rebuilt from its
// reduced children if no pattern applies. Only the shapes of Zero and One
// are inspected: the value of a leaf is never looked at.
//
//	Add(Zero, Zero)  Zero        Sub(Zero, Zero)  Zero
//	Add(One, Zero)   One         Sub(One, Zero)   One
//	Add(Zero, One)   One         Sub(Zero, One)   Neg(One)
//	Add(L, Zero)     L           Sub(One, One)    Zero
//	Add(Zero, R)     R           Sub(L, Zero)     L
//	                             Sub(Zero, R)     Neg(R)
//
//	Mul(Zero, _)     Zero        Div(_, Zero)     no rule, ErrNoRule
//	Mul(_, Zero)     Zero        Div(One, One)    Div(One, One)
//	Mul(One, One)    One         Div(Zero, R)     Zero
//	Mul(L, One)      L           Div(L, One)      L
//	Mul(One, R)      R
//
//	Neg(Zero)        Zero
//
// Add(One, One) and Neg(One) are left as they are: identity elements are
// symbolic and never folded into other constants. Bitwise, shift, remainder
// and Not nodes have no patterns and are rebuilt from their reduced children.
//
// Reduce never modifies its input, and reducing a reduced tree returns an
// identical tree.
func Reduce(n Node) (Node, error) {
	switch x := n.(type) {
	case Unary:
		c, err := Reduce(x.X)
		if err != nil {
			return nil, err
		}
		if x.Op == OpNeg {
			return reduceNeg(c), nil
		}
		return Unary{Op: x.Op, X: c}, nil
	case Binary:
		l, err := Reduce(x.L)
		if err != nil {
			return nil, err
		}
		r, err := Reduce(x.R)
		if err != nil {
			return nil, err
		}
		switch x.Op {
		case OpAdd:
			return reduceAdd(l, r), nil
		case OpSub:
			return reduceSub(l, r), nil
		case OpMul:
			return reduceMul(l, r), nil
		case OpDiv:
			return reduceDiv(l, r)
		default:
			return Binary{Op: x.Op, L: l, R: r}, nil
		}
	default:
		// leaves and identity elements are already reduced
		return n, nil
	}
}

// is reports whether n is the identity element i.
func is(n Node, i Identity) bool {
	id, ok := n.(Identity)
	return ok && id == i
}

func reduceNeg(x Node) Node {
	if is(x, Zero) {
		return Zero
	}
	return Neg(x)
}

func reduceAdd(l, r Node) Node {
	switch {
	case is(l, Zero) && is(r, Zero):
		return Zero
	case is(l, One) && is(r, Zero), is(l, Zero) && is(r, One):
		return One
	case is(r, Zero):
		return l
	case is(l, Zero):
		return r
	}
	return Add(l, r)
}

func reduceSub(l, r Node) Node {
	switch {
	case is(l, Zero) && is(r, Zero):
		return Zero
	case is(l, One) && is(r, Zero):
		return One
	case is(l, Zero) && is(r, One):
		return Neg(One)
	case is(l, One) && is(r, One):
		return Zero
	case is(r, Zero):
		return l
	case is(l, Zero):
		return reduceNeg(r)
	}
	return Sub(l, r)
}

func reduceMul(l, r Node) Node {
	switch {
	case is(l, Zero), is(r, Zero):
		return Zero
	case is(l, One) && is(r, One):
		return One
	case is(r, One):
		return l
	case is(l, One):
		return r
	}
	return Mul(l, r)
}

func reduceDiv(l, r Node) (Node, error) {
	switch {
	case is(r, Zero):
		return nil, &RuleError{Stage: "reduce", Op: OpDiv.String(), Node: Div(l, r)}
	case is(l, One) && is(r, One):
		return Div(One, One), nil
	case is(l, Zero):
		return Zero, nil
	case is(r, One):
		return l, nil
	}
	return Div(l, r), nil
}
