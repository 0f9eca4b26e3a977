package tangent

import (
	"github.com/ezachrisen/tangent/ident"
	"github.com/ezachrisen/tangent/logic"
)

// Deriv returns the partial derivative of the tree with respect to the
// variable identified by id.
//
// Children are differentiated first, and every tree a rule combines is
// reduced as soon as it is built, before it becomes part of its parent:
//
//	d(leaf)   One if the leaf's tag is id, else Zero
//	d(Zero), d(One)  Zero
//	d(-T)     -dT
//	d(L + R)  dL + dR
//	d(L - R)  dL - dR
//	d(L * R)  dL*R + L*dR
//	d(L / R)  dL/R - (L/(R*R))*dR
//
// Reducing at every step keeps the intermediate trees small; reducing only
// the final result would let nested products and quotients grow
// exponentially before any simplification happens.
//
// Bitwise, shift, remainder and Not nodes have no rule, and any tree that
// contains one fails with ErrNoDerivative. A quotient whose denominator
// reduces to Zero fails with ErrNoRule.
func Deriv(n Node, id ident.Ident) (Node, error) {
	switch x := n.(type) {
	case Leaf:
		return logic.Select[Node](ident.Equal(x.Tag.ID, id), One, Zero), nil
	case Identity:
		return Zero, nil
	case Unary:
		if x.Op != OpNeg {
			return nil, &RuleError{Stage: "deriv", Op: x.Op.String(), Node: x}
		}
		d, err := Deriv(x.X, id)
		if err != nil {
			return nil, err
		}
		return Reduce(Neg(d))
	case Binary:
		switch x.Op {
		case OpAdd, OpSub, OpMul, OpDiv:
		default:
			return nil, &RuleError{Stage: "deriv", Op: x.Op.String(), Node: x}
		}

		dl, err := Deriv(x.L, id)
		if err != nil {
			return nil, err
		}
		dr, err := Deriv(x.R, id)
		if err != nil {
			return nil, err
		}

		switch x.Op {
		case OpAdd, OpSub:
			return Reduce(Binary{Op: x.Op, L: dl, R: dr})
		case OpMul:
			return derivProduct(x.L, x.R, dl, dr)
		default:
			return derivQuotient(x.L, x.R, dl, dr)
		}
	}
	return nil, &RuleError{Stage: "deriv", Op: "unknown", Node: n}
}

// derivProduct builds dL*R + L*dR.
func derivProduct(l, r, dl, dr Node) (Node, error) {
	a, err := Reduce(Mul(dl, r))
	if err != nil {
		return nil, err
	}
	b, err := Reduce(Mul(l, dr))
	if err != nil {
		return nil, err
	}
	return Reduce(Add(a, b))
}

// derivQuotient builds dL/R - (L/(R*R))*dR.
func derivQuotient(l, r, dl, dr Node) (Node, error) {
	a, err := Reduce(Div(dl, r))
	if err != nil {
		return nil, err
	}
	rr, err := Reduce(Mul(r, r))
	if err != nil {
		return nil, err
	}
	q, err := Reduce(Div(l, rr))
	if err != nil {
		return nil, err
	}
	b, err := Reduce(Mul(q, dr))
	if err != nil {
		return nil, err
	}
	return Reduce(Sub(a, b))
}
