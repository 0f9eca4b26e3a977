package tangent

import (
	"reflect"

	"github.com/cockroachdb/apd/v2"
	"github.com/ezachrisen/tangent/ident"
)

// Node is an element of an expression tree.
//
// The implementations are Leaf, Identity, Unary and Binary. Nodes are
// immutable values: every operation on a tree returns a new tree, and
// sub-trees may be shared freely between trees.
type Node interface {
	// Kind names the shape of the node: Leaf, Zero, One, or the operator name.
	Kind() string
	node()
}

// Leaf holds a concrete value and the tag of the variable it stands for.
type Leaf struct {
	Value Value
	Tag   ident.Tag
}

// Identity is one of the symbolic identity elements, Zero and One.
// An identity carries no value of its own; it takes the type of the
// expression it is used in.
type Identity uint8

const (
	// Zero is the additive identity.
	Zero Identity = iota
	// One is the multiplicative identity.
	One
)

// Unary applies Op (OpNeg or OpNot) to X.
type Unary struct {
	Op Op
	X  Node
}

// Binary applies Op to L and R.
type Binary struct {
	Op Op
	L  Node
	R  Node
}

func (Leaf) node()     {}
func (Identity) node() {}
func (Unary) node()    {}
func (Binary) node()   {}

func (Leaf) Kind() string { return "Leaf" }

func (i Identity) Kind() string {
	if i == One {
		return "One"
	}
	return "Zero"
}

func (u Unary) Kind() string  { return u.Op.String() }
func (b Binary) Kind() string { return b.Op.String() }

// Scalar is the set of Go types a leaf can be built from.
type Scalar interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 |
		~float32 | ~float64 |
		~bool
}

// Var returns a leaf holding v, for the variable identified by tag.
// Signed and small unsigned integers become Int values, floats become Float
// values and bools become Bool values.
func Var[T Scalar](v T, tag ident.Tag) Leaf {
	rv := reflect.ValueOf(v)
	var val Value
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		val = IntValue(rv.Int())
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		val = IntValue(int64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		val = FloatValue(rv.Float())
	default:
		val = BoolValue(rv.Bool())
	}
	return Leaf{Value: val, Tag: tag}
}

// DecimalVar returns a leaf holding an exact decimal value.
func DecimalVar(d *apd.Decimal, tag ident.Tag) Leaf {
	return Leaf{Value: DecimalValue(d), Tag: tag}
}

// Neg returns the node -x.
func Neg(x Node) Unary { return Unary{Op: OpNeg, X: x} }

// Not returns the node !x: logical not for bools, bitwise complement for integers.
func Not(x Node) Unary { return Unary{Op: OpNot, X: x} }

// Add returns the node l + r.
func Add(l, r Node) Binary { return Binary{Op: OpAdd, L: l, R: r} }

// Sub returns the node l - r.
func Sub(l, r Node) Binary { return Binary{Op: OpSub, L: l, R: r} }

// Mul returns the node l * r.
func Mul(l, r Node) Binary { return Binary{Op: OpMul, L: l, R: r} }

// Div returns the node l / r.
func Div(l, r Node) Binary { return Binary{Op: OpDiv, L: l, R: r} }

// Rem returns the node l % r.
func Rem(l, r Node) Binary { return Binary{Op: OpRem, L: l, R: r} }

// And returns the node l & r.
func And(l, r Node) Binary { return Binary{Op: OpAnd, L: l, R: r} }

// Or returns the node l | r.
func Or(l, r Node) Binary { return Binary{Op: OpOr, L: l, R: r} }

// Xor returns the node l ^ r.
func Xor(l, r Node) Binary { return Binary{Op: OpXor, L: l, R: r} }

// Shl returns the node l << r.
func Shl(l, r Node) Binary { return Binary{Op: OpShl, L: l, R: r} }

// Shr returns the node l >> r.
func Shr(l, r Node) Binary { return Binary{Op: OpShr, L: l, R: r} }
