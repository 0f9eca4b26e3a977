package tangent_test

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/ezachrisen/tangent"
	"github.com/ezachrisen/tangent/ident"
	"github.com/ezachrisen/tangent/logic"
)

// -------------------------------------------------- SAMPLE EXPRESSION

// quotient returns w = (x + y*x) / z with x = 8, y = 2, z = -1, using the
// identifiers of the tags X, Y and Z.
func quotient() tangent.Node {
	x := tangent.Var(8.0, ident.Tag{Name: "x", ID: ident.X.ID})
	y := tangent.Var(2.0, ident.Tag{Name: "y", ID: ident.Y.ID})
	z := tangent.Var(-1.0, ident.Tag{Name: "z", ID: ident.Z.ID})
	return tangent.Div(tangent.Add(x, tangent.Mul(y, x)), z)
}

// -------------------------------------------------- RANDOM TREES

// generator builds random trees from a fixed seed.
// Every variable has a single value, whichever leaf it appears in.
type generator struct {
	r          *rand.Rand
	tags       []ident.Tag
	values     []tangent.Value
	ops        []tangent.Op
	identities bool // whether Zero and One may appear
}

var arithmetic = []tangent.Op{tangent.OpAdd, tangent.OpSub, tangent.OpMul, tangent.OpDiv, tangent.OpNeg}

var integerOps = []tangent.Op{
	tangent.OpAdd, tangent.OpSub, tangent.OpMul, tangent.OpDiv, tangent.OpRem, tangent.OpNeg,
	tangent.OpAnd, tangent.OpOr, tangent.OpXor, tangent.OpShl, tangent.OpShr, tangent.OpNot,
}

// newFloatGenerator returns a generator of float trees over the variables
// A to D.
func newFloatGenerator(seed int64, ops []tangent.Op, identities bool) *generator {
	g := &generator{
		r:          rand.New(rand.NewSource(seed)),
		tags:       []ident.Tag{ident.A, ident.B, ident.C, ident.D},
		ops:        ops,
		identities: identities,
	}
	for range g.tags {
		// non-zero multiples of 0.5 in [-4, 4]
		v := float64(g.r.Intn(8)+1) / 2
		if g.r.Intn(2) == 0 {
			v = -v
		}
		g.values = append(g.values, tangent.FloatValue(v))
	}
	return g
}

// newIntGenerator returns a generator of int trees over the variables A to D.
func newIntGenerator(seed int64, ops []tangent.Op, identities bool) *generator {
	g := &generator{
		r:          rand.New(rand.NewSource(seed)),
		tags:       []ident.Tag{ident.A, ident.B, ident.C, ident.D},
		ops:        ops,
		identities: identities,
	}
	for range g.tags {
		v := int64(g.r.Intn(9) - 4)
		if v == 0 {
			v = 5
		}
		g.values = append(g.values, tangent.IntValue(v))
	}
	return g
}

func (g *generator) tree(depth int) tangent.Node {
	if depth == 0 || g.r.Intn(4) == 0 {
		return g.leaf()
	}
	op := g.ops[g.r.Intn(len(g.ops))]
	if op.IsUnary() {
		return tangent.Unary{Op: op, X: g.tree(depth - 1)}
	}
	return tangent.Binary{Op: op, L: g.tree(depth - 1), R: g.tree(depth - 1)}
}

func (g *generator) leaf() tangent.Node {
	if g.identities {
		switch g.r.Intn(5) {
		case 0:
			return tangent.Zero
		case 1:
			return tangent.One
		}
	}
	i := g.r.Intn(len(g.tags))
	return tangent.Leaf{Value: g.values[i], Tag: g.tags[i]}
}

// -------------------------------------------------- DUAL NUMBERS

// dual evaluates a float tree built of Add, Sub, Mul, Div and Neg in
// forward mode, returning the value and the derivative with respect to id.
// It is an oracle for Deriv that shares no code with it.
func dual(n tangent.Node, id ident.Ident) (v, d float64, err error) {
	switch x := n.(type) {
	case tangent.Leaf:
		f, ok := x.Value.Float()
		if !ok {
			return 0, 0, fmt.Errorf("leaf %s is not numeric", x.Tag)
		}
		if ident.Equal(x.Tag.ID, id) == logic.True {
			return f, 1, nil
		}
		return f, 0, nil
	case tangent.Identity:
		if x == tangent.One {
			return 1, 0, nil
		}
		return 0, 0, nil
	case tangent.Unary:
		v, d, err := dual(x.X, id)
		if err != nil || x.Op != tangent.OpNeg {
			return 0, 0, fmt.Errorf("unsupported %s: %v", x.Op, err)
		}
		return -v, -d, nil
	case tangent.Binary:
		l, dl, err := dual(x.L, id)
		if err != nil {
			return 0, 0, err
		}
		r, dr, err := dual(x.R, id)
		if err != nil {
			return 0, 0, err
		}
		switch x.Op {
		case tangent.OpAdd:
			return l + r, dl + dr, nil
		case tangent.OpSub:
			return l - r, dl - dr, nil
		case tangent.OpMul:
			return l * r, dl*r + l*dr, nil
		case tangent.OpDiv:
			return l / r, dl/r - (l/(r*r))*dr, nil
		}
		return 0, 0, fmt.Errorf("unsupported %s", x.Op)
	}
	return 0, 0, fmt.Errorf("unknown node %T", n)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// near reports whether a and b agree to a relative tolerance.
func near(a, b float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= 1e-7*scale
}
