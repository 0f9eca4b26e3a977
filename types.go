package tangent

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v2"
)

// Type defines a type in the tangent type system.
// Every leaf value has a type, and Compile infers the type of every
// operator node from the types of its children.
type Type interface {
	// Implements the stringer interface
	String() string

	// Zero returns the additive identity of the type as a native Go value.
	Zero() interface{}
}

// Int defines a signed 64-bit integer type.
type Int struct{}

// Float defines a 64-bit floating point type.
type Float struct{}

// Decimal defines an exact decimal type backed by apd.Decimal.
type Decimal struct{}

// Bool defines a type for true/false.
type Bool struct{}

// Untyped is the type of the identity elements Zero and One before the
// context they are used in fixes their type.
type Untyped struct{}

// Zero Methods
func (Int) Zero() interface{}     { return int64(0) }
func (Float) Zero() interface{}   { return float64(0.0) }
func (Decimal) Zero() interface{} { return apd.New(0, 0) }
func (Bool) Zero() interface{}    { return false }
func (Untyped) Zero() interface{} { return int64(0) }

// String Methods
func (Int) String() string     { return "int" }
func (Float) String() string   { return "float" }
func (Decimal) String() string { return "decimal" }
func (Bool) String() string    { return "bool" }
func (Untyped) String() string { return "untyped" }

// ParseType parses the name of a type and returns the type.
// The names are the lower-case type names: int, float, decimal and bool.
func ParseType(t string) (Type, error) {
	switch strings.TrimSpace(t) {
	case "int":
		return Int{}, nil
	case "float":
		return Float{}, nil
	case "decimal":
		return Decimal{}, nil
	case "bool":
		return Bool{}, nil
	default:
		return nil, fmt.Errorf("unrecognized type: %s", t)
	}
}

// rank orders the numeric types for promotion; the larger rank wins.
// Bool is not numeric and has no rank.
func rank(t Type) (int, bool) {
	switch t.(type) {
	case Untyped:
		return 0, true
	case Int:
		return 1, true
	case Decimal:
		return 2, true
	case Float:
		return 3, true
	}
	return 0, false
}

// isNumeric reports whether t takes part in arithmetic.
func isNumeric(t Type) bool {
	_, ok := rank(t)
	return ok
}

// isInteger reports whether t supports bitwise operations and shifts.
func isInteger(t Type) bool {
	switch t.(type) {
	case Int, Untyped:
		return true
	}
	return false
}

// promote returns the type a binary arithmetic operation on values of
// type a and b produces; the smaller type is converted up to the larger.
func promote(a, b Type) (Type, bool) {
	ra, ok := rank(a)
	if !ok {
		return nil, false
	}
	rb, ok := rank(b)
	if !ok {
		return nil, false
	}
	if ra >= rb {
		return a, true
	}
	return b, true
}
