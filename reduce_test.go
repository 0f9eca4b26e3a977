package tangent_test

import (
	"errors"
	"testing"

	"github.com/ezachrisen/tangent"
	"github.com/ezachrisen/tangent/ident"
	"github.com/kr/pretty"
	"github.com/matryer/is"
)

func TestReduceRules(t *testing.T) {
	a := tangent.Var(3, ident.A)
	b := tangent.Var(5, ident.B)
	zero, one := tangent.Zero, tangent.One

	cases := map[string]struct {
		n    tangent.Node
		want tangent.Node
	}{
		"leaf":         {n: a, want: a},
		"zero":         {n: zero, want: zero},
		"one":          {n: one, want: one},
		"0 + 0":        {n: tangent.Add(zero, zero), want: zero},
		"1 + 0":        {n: tangent.Add(one, zero), want: one},
		"0 + 1":        {n: tangent.Add(zero, one), want: one},
		"a + 0":        {n: tangent.Add(a, zero), want: a},
		"0 + a":        {n: tangent.Add(zero, a), want: a},
		"1 + 1 stays":  {n: tangent.Add(one, one), want: tangent.Add(one, one)},
		"a + 1 stays":  {n: tangent.Add(a, one), want: tangent.Add(a, one)},
		"0 - 0":        {n: tangent.Sub(zero, zero), want: zero},
		"1 - 0":        {n: tangent.Sub(one, zero), want: one},
		"0 - 1":        {n: tangent.Sub(zero, one), want: tangent.Neg(one)},
		"1 - 1":        {n: tangent.Sub(one, one), want: zero},
		"a - 0":        {n: tangent.Sub(a, zero), want: a},
		"0 - a":        {n: tangent.Sub(zero, a), want: tangent.Neg(a)},
		"a - a stays":  {n: tangent.Sub(a, a), want: tangent.Sub(a, a)},
		"0 * a":        {n: tangent.Mul(zero, a), want: zero},
		"a * 0":        {n: tangent.Mul(a, zero), want: zero},
		"0 * 1":        {n: tangent.Mul(zero, one), want: zero},
		"1 * 1":        {n: tangent.Mul(one, one), want: one},
		"a * 1":        {n: tangent.Mul(a, one), want: a},
		"1 * a":        {n: tangent.Mul(one, a), want: a},
		"0 / a":        {n: tangent.Div(zero, a), want: zero},
		"a / 1":        {n: tangent.Div(a, one), want: a},
		"1 / 1 stays":  {n: tangent.Div(one, one), want: tangent.Div(one, one)},
		"1 / a stays":  {n: tangent.Div(one, a), want: tangent.Div(one, a)},
		"-0":           {n: tangent.Neg(zero), want: zero},
		"-1 stays":     {n: tangent.Neg(one), want: tangent.Neg(one)},
		"--a stays":    {n: tangent.Neg(tangent.Neg(a)), want: tangent.Neg(tangent.Neg(a))},
		"children":     {n: tangent.Add(tangent.Mul(a, one), tangent.Mul(b, zero)), want: a},
		"deep":         {n: tangent.Mul(tangent.Add(zero, tangent.Sub(one, one)), b), want: zero},
		"0 - (0 - 1)":  {n: tangent.Sub(zero, tangent.Sub(zero, one)), want: tangent.Neg(tangent.Neg(one))},
		"0 - (a * 0)":  {n: tangent.Sub(zero, tangent.Mul(a, zero)), want: zero},
		"bitwise":      {n: tangent.And(tangent.Add(a, zero), tangent.Mul(one, b)), want: tangent.And(a, b)},
		"shift":        {n: tangent.Shl(tangent.Add(a, zero), zero), want: tangent.Shl(a, zero)},
		"remainder":    {n: tangent.Rem(tangent.Mul(a, one), b), want: tangent.Rem(a, b)},
		"not":          {n: tangent.Not(tangent.Sub(a, zero)), want: tangent.Not(a)},
		"leaf value 0": {n: tangent.Add(a, tangent.Var(0, ident.Z)), want: tangent.Add(a, tangent.Var(0, ident.Z))},
	}

	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			got, err := tangent.Reduce(c.n)
			if err != nil {
				t.Fatal(err)
			}
			if !tangent.Equal(got, c.want) {
				t.Errorf("reduce %s = %s, wanted %s\n%s", tangent.Format(c.n), tangent.Format(got), tangent.Format(c.want),
					pretty.Diff(got, c.want))
			}
		})
	}
}

func TestReduceZeroDenominator(t *testing.T) {
	a := tangent.Var(3, ident.A)
	zero, one := tangent.Zero, tangent.One

	cases := map[string]tangent.Node{
		"a / 0":         tangent.Div(a, zero),
		"0 / 0":         tangent.Div(zero, zero),
		"1 / 0":         tangent.Div(one, zero),
		"a / (1 - 1)":   tangent.Div(a, tangent.Sub(one, one)),
		"a / (a * 0)":   tangent.Div(a, tangent.Mul(a, zero)),
		"nested":        tangent.Add(a, tangent.Neg(tangent.Div(one, zero))),
		"inside a bits": tangent.And(a, tangent.Div(a, zero)),
	}

	for k, n := range cases {
		t.Run(k, func(t *testing.T) {
			is := is.New(t)
			_, err := tangent.Reduce(n)
			is.True(errors.Is(err, tangent.ErrNoRule))

			var re *tangent.RuleError
			is.True(errors.As(err, &re))
			is.Equal(re.Stage, "reduce")
			is.Equal(re.Op, "Div")
		})
	}
}

func TestReduceSubOneOne(t *testing.T) {
	is := is.New(t)

	n := tangent.Sub(tangent.One, tangent.One)
	r, err := tangent.Reduce(n)
	is.NoErr(err)
	is.Equal(r, tangent.Zero)

	// the rewrite preserves the value for every result type
	for _, typ := range []tangent.Type{tangent.Int{}, tangent.Float{}, tangent.Decimal{}} {
		before, err := tangent.MustCompile(n, tangent.DefaultType(typ)).Eval()
		is.NoErr(err)
		after, err := tangent.MustCompile(r, tangent.DefaultType(typ)).Eval()
		is.NoErr(err)
		is.True(before.Equal(after))
	}
}

func TestReduceExpr(t *testing.T) {
	is := is.New(t)

	f := tangent.Var(2.5, ident.Tag{Name: "f", ID: ident.F.ID})
	e := tangent.MustCompile(tangent.Add(tangent.Mul(f, tangent.Zero), tangent.One))
	is.Equal(e.Type(), tangent.Float{})

	r, err := e.Reduce()
	is.NoErr(err)
	is.Equal(r.Root(), tangent.One)
	is.Equal(r.Type(), tangent.Float{})

	v, err := r.Eval()
	is.NoErr(err)
	is.Equal(v, tangent.FloatValue(1))

	// the original is unchanged
	is.Equal(e.String(), "f * 0 + 1")
}

func TestReduceIdempotent(t *testing.T) {
	is := is.New(t)

	for seed := int64(0); seed < 300; seed++ {
		g := newIntGenerator(seed, integerOps, true)
		n := g.tree(6)

		once, err := tangent.Reduce(n)
		if err != nil {
			is.True(errors.Is(err, tangent.ErrNoRule))
			continue
		}
		twice, err := tangent.Reduce(once)
		is.NoErr(err)
		if !tangent.Equal(once, twice) {
			t.Fatalf("seed %d: reduce is not idempotent on %s: %s then %s", seed, tangent.Format(n), tangent.Format(once), tangent.Format(twice))
		}
		is.True(tangent.Size(once) <= tangent.Size(n))
	}
}
