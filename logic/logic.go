// Package logic provides the two-valued logic kernel used by tangent to make
// decisions about expression trees, such as whether a leaf is the variable
// being differentiated.
//
// The algebra is closed over exactly two values, True and False, and every
// operation is total.
package logic

// Bool is one of the two logic values.
type Bool bool

const (
	False Bool = false
	True  Bool = true
)

// Of converts a Go bool to a Bool.
func Of(b bool) Bool { return Bool(b) }

// Not returns the complement of b.
func Not(b Bool) Bool {
	switch b {
	case True:
		return False
	default:
		return True
	}
}

// And is true only when both a and b are true.
func And(a, b Bool) Bool {
	if a == True && b == True {
		return True
	}
	return False
}

// Or is true when at least one of a and b is true.
func Or(a, b Bool) Bool {
	if a == True || b == True {
		return True
	}
	return False
}

// Xor is true when exactly one of a and b is true.
func Xor(a, b Bool) Bool {
	return Or(And(a, Not(b)), And(Not(a), b))
}

// All folds And over the values. The empty conjunction is True.
func All(bs ...Bool) Bool {
	acc := True
	for _, b := range bs {
		acc = And(acc, b)
	}
	return acc
}

// Select returns ifTrue when c is True, and ifFalse otherwise.
// Both branches are built by the caller; use SelectFunc when only the
// chosen branch should be constructed.
func Select[T any](c Bool, ifTrue, ifFalse T) T {
	if c == True {
		return ifTrue
	}
	return ifFalse
}

// SelectFunc calls and returns the result of ifTrue when c is True, and of
// ifFalse otherwise. The other function is never called.
func SelectFunc[T any](c Bool, ifTrue, ifFalse func() T) T {
	if c == True {
		return ifTrue()
	}
	return ifFalse()
}

func (b Bool) String() string {
	if b == True {
		return "True"
	}
	return "False"
}
