package tangent_test

import (
	"errors"
	"testing"

	"github.com/ezachrisen/tangent"
	"github.com/ezachrisen/tangent/ident"
	"github.com/kr/pretty"
	"github.com/matryer/is"
)

func TestDerivQuotient(t *testing.T) {
	x := tangent.Var(8.0, ident.X)
	y := tangent.Var(2.0, ident.Y)
	z := tangent.Var(-1.0, ident.Z)
	num := tangent.Add(x, tangent.Mul(y, x))

	cases := map[string]struct {
		wrt       ident.Tag
		want      tangent.Node
		wantStr   string
		wantValue float64
	}{
		"x": {
			wrt:       ident.X,
			want:      tangent.Div(tangent.Add(tangent.One, y), z),
			wantStr:   "(1 + y) / z",
			wantValue: -3,
		},
		"y": {
			wrt:       ident.Y,
			want:      tangent.Div(x, z),
			wantStr:   "x / z",
			wantValue: -8,
		},
		"z": {
			wrt:       ident.Z,
			want:      tangent.Neg(tangent.Div(num, tangent.Mul(z, z))),
			wantStr:   "-((x + y * x) / (z * z))",
			wantValue: -24,
		},
		"unrelated variable": {
			wrt:       ident.W,
			want:      tangent.Zero,
			wantStr:   "0",
			wantValue: 0,
		},
	}

	e := tangent.MustCompile(quotient())
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			is := is.New(t)
			d, err := e.Deriv(c.wrt)
			is.NoErr(err)
			if !tangent.Equal(d.Root(), c.want) {
				t.Fatalf("wrong derivative: %s", pretty.Diff(d.Root(), c.want))
			}
			is.Equal(d.String(), c.wantStr)

			v, err := d.Eval()
			is.NoErr(err)
			is.Equal(v, tangent.FloatValue(c.wantValue))
		})
	}
}

func TestDerivLeaves(t *testing.T) {
	is := is.New(t)

	d, err := tangent.Deriv(tangent.Var(3, ident.A), ident.A.ID)
	is.NoErr(err)
	is.Equal(d, tangent.One)

	d, err = tangent.Deriv(tangent.Var(3, ident.A), ident.B.ID)
	is.NoErr(err)
	is.Equal(d, tangent.Zero)

	// the name of a tag plays no part
	d, err = tangent.Deriv(tangent.Var(3, ident.Tag{Name: "speed", ID: ident.A.ID}), ident.A.ID)
	is.NoErr(err)
	is.Equal(d, tangent.One)

	d, err = tangent.Deriv(tangent.Var(3, ident.Tag{Name: "A", ID: ident.Q.ID}), ident.A.ID)
	is.NoErr(err)
	is.Equal(d, tangent.Zero)

	for _, i := range []tangent.Identity{tangent.Zero, tangent.One} {
		d, err := tangent.Deriv(i, ident.A.ID)
		is.NoErr(err)
		is.Equal(d, tangent.Zero)
	}
}

func TestDerivRules(t *testing.T) {
	a := tangent.Var(3, ident.A)
	b := tangent.Var(5, ident.B)

	cases := map[string]struct {
		n    tangent.Node
		want tangent.Node
	}{
		"sum":                {n: tangent.Add(a, b), want: tangent.One},
		"sum with itself":    {n: tangent.Add(a, a), want: tangent.Add(tangent.One, tangent.One)},
		"difference":         {n: tangent.Sub(b, a), want: tangent.Neg(tangent.One)},
		"self difference":    {n: tangent.Sub(a, a), want: tangent.Zero},
		"negation":           {n: tangent.Neg(a), want: tangent.Neg(tangent.One)},
		"negated constant":   {n: tangent.Neg(b), want: tangent.Zero},
		"product":            {n: tangent.Mul(a, b), want: b},
		"square":             {n: tangent.Mul(a, a), want: tangent.Add(a, a)},
		"constant product":   {n: tangent.Mul(b, b), want: tangent.Zero},
		"quotient numerator": {n: tangent.Div(a, b), want: tangent.Div(tangent.One, b)},
		"reciprocal": {
			n:    tangent.Div(b, a),
			want: tangent.Neg(tangent.Div(b, tangent.Mul(a, a))),
		},
		"self quotient": {
			n: tangent.Div(a, a),
			want: tangent.Sub(
				tangent.Div(tangent.One, a),
				tangent.Div(a, tangent.Mul(a, a))),
		},
	}

	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			d, err := tangent.Deriv(c.n, ident.A.ID)
			if err != nil {
				t.Fatal(err)
			}
			if !tangent.Equal(d, c.want) {
				t.Errorf("d/dA %s = %s, wanted %s", tangent.Format(c.n), tangent.Format(d), tangent.Format(c.want))
			}
		})
	}
}

func TestDerivUndefined(t *testing.T) {
	a := tangent.Var(3, ident.A)
	b := tangent.Var(5, ident.B)

	cases := map[string]struct {
		n        tangent.Node
		wantKind string
	}{
		"bitwise and":       {n: tangent.And(a, b), wantKind: "BitAnd"},
		"bitwise or":        {n: tangent.Or(a, b), wantKind: "BitOr"},
		"bitwise xor":       {n: tangent.Xor(a, b), wantKind: "BitXor"},
		"shift left":        {n: tangent.Shl(a, b), wantKind: "Shl"},
		"shift right":       {n: tangent.Shr(a, b), wantKind: "Shr"},
		"remainder":         {n: tangent.Rem(a, b), wantKind: "Rem"},
		"not":               {n: tangent.Not(a), wantKind: "Not"},
		"nested":            {n: tangent.Mul(b, tangent.Add(a, tangent.Shl(a, b))), wantKind: "Shl"},
		"away from the var": {n: tangent.Add(a, tangent.And(b, b)), wantKind: "BitAnd"},
	}

	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			is := is.New(t)
			_, err := tangent.Deriv(c.n, ident.A.ID)
			is.True(errors.Is(err, tangent.ErrNoDerivative))

			var re *tangent.RuleError
			is.True(errors.As(err, &re))
			is.Equal(re.Op, c.wantKind)
			is.Equal(err.Error(), "differentiation undefined for node kind "+c.wantKind)
		})
	}
}

func TestDerivZeroDenominator(t *testing.T) {
	is := is.New(t)
	a := tangent.Var(3, ident.A)

	_, err := tangent.Deriv(tangent.Div(a, tangent.Sub(tangent.One, tangent.One)), ident.A.ID)
	is.True(errors.Is(err, tangent.ErrNoRule))
	is.True(!errors.Is(err, tangent.ErrNoDerivative))
}

func TestDerivDoesNotModifyInput(t *testing.T) {
	is := is.New(t)

	n := quotient()
	before := tangent.Format(n)
	_, err := tangent.Deriv(n, ident.Z.ID)
	is.NoErr(err)
	is.Equal(tangent.Format(n), before)
	is.True(tangent.Equal(n, quotient()))
}

func TestDerivKeepsType(t *testing.T) {
	is := is.New(t)

	// the derivative of a float expression is a float, even when it is a constant
	e := tangent.MustCompile(tangent.Mul(tangent.Var(1.5, ident.F), tangent.Var(4.0, ident.G)))
	d, err := e.Deriv(ident.H)
	is.NoErr(err)
	is.Equal(d.Root(), tangent.Zero)
	is.Equal(d.Type(), tangent.Float{})

	v, err := d.Eval()
	is.NoErr(err)
	is.Equal(v, tangent.FloatValue(0))
}

func TestDerivIdentityContext(t *testing.T) {
	is := is.New(t)

	// the identity elements left in the derivative are floats
	x := tangent.Var(3.0, ident.X)
	e := tangent.MustCompile(tangent.Div(x, tangent.Add(tangent.One, tangent.One)))

	v, err := e.Eval()
	is.NoErr(err)
	is.Equal(v, tangent.FloatValue(1.5))

	d, err := e.Deriv(ident.X)
	is.NoErr(err)
	is.Equal(d.String(), "1 / (1 + 1)")
	is.Equal(d.Type(), tangent.Float{})

	v, err = d.Eval()
	is.NoErr(err)
	is.Equal(v, tangent.FloatValue(0.5))
}

func TestReduceKeepsType(t *testing.T) {
	is := is.New(t)

	// dropping the float operand leaves an int tree; the value is still a float
	n := tangent.Var(4, ident.N)
	e := tangent.MustCompile(tangent.Add(n, tangent.Mul(tangent.Var(2.5, ident.F), tangent.Zero)))
	is.Equal(e.Type(), tangent.Float{})

	r, err := e.Reduce()
	is.NoErr(err)
	is.Equal(r.String(), "N")
	is.Equal(r.Type(), tangent.Float{})

	v, err := r.Eval()
	is.NoErr(err)
	is.Equal(v, tangent.FloatValue(4))
}
