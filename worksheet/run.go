package worksheet

import (
	"math"

	"github.com/ezachrisen/tangent"
	"github.com/ezachrisen/tangent/cel"
	"github.com/ezachrisen/tangent/ident"
	"github.com/pkg/errors"
)

// Run evaluates every expression in the worksheet, and every derivative
// listed for it, in document order.
//
// Each derivative is reduced, and the report shows the reduced form.
// The first failure stops the run and is returned.
func (w *Worksheet) Run(opts ...Option) (*Report, error) {
	o := RunOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	s, err := w.Schema()
	if err != nil {
		return nil, err
	}

	var copts []tangent.CompileOption
	if w.DefaultType != "" {
		t, err := tangent.ParseType(w.DefaultType)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalid, "default type: %v", err)
		}
		copts = append(copts, tangent.DefaultType(t))
	}

	ns := ident.NewNamespace()
	p := cel.NewParser(s, ns)
	data := w.Data()

	rep := &Report{Name: w.Name}
	for _, x := range w.Expressions {
		o.logf("worksheet %s: expression %s: %s", w.Name, x.ID, x.Expr)

		n, err := p.Parse(x.Expr, data)
		if err != nil {
			return nil, errors.Wrapf(err, "expression %s", x.ID)
		}
		e, err := tangent.Compile(n, copts...)
		if err != nil {
			return nil, errors.Wrapf(err, "compiling expression %s", x.ID)
		}

		row, err := o.row(x.ID, e, "", e)
		if err != nil {
			return nil, err
		}
		rep.Rows = append(rep.Rows, row)

		for _, name := range x.Derivatives {
			tag, err := ns.Declare(name)
			if err != nil {
				return nil, errors.Wrapf(err, "expression %s", x.ID)
			}
			d, err := e.Deriv(tag)
			if err != nil {
				return nil, errors.Wrapf(err, "expression %s: derivative with respect to %s", x.ID, name)
			}
			o.logf("worksheet %s: expression %s: d/d%s = %s", w.Name, x.ID, name, d)

			row, err := o.row(x.ID, e, name, d)
			if err != nil {
				return nil, err
			}
			rep.Rows = append(rep.Rows, row)
		}
	}
	return rep, nil
}

// row evaluates result, the expression itself or one of its derivatives,
// and checks the value with the secondary evaluator if there is one.
func (o *RunOptions) row(id string, e *tangent.Expr, wrt string, result *tangent.Expr) (Row, error) {
	what := id
	if wrt != "" {
		what = id + " d/d" + wrt
	}

	v, err := result.Eval()
	if err != nil {
		return Row{}, errors.Wrapf(err, "evaluating %s", what)
	}

	if o.Evaluator != nil {
		v2, err := o.Evaluator.Evaluate(result)
		if err != nil {
			return Row{}, errors.Wrapf(err, "evaluating %s with the secondary evaluator", what)
		}
		if !agree(v, v2) {
			return Row{}, errors.Wrapf(ErrMismatch, "%s: %s = %s, secondary evaluator returned %s", what, result, v, v2)
		}
	}

	return Row{
		ID:     id,
		Expr:   e.String(),
		Wrt:    wrt,
		Result: result.String(),
		Value:  v,
	}, nil
}

// agree reports whether two evaluations produced the same value.
// Two float NaN values agree.
func agree(a, b tangent.Value) bool {
	if a.Equal(b) {
		return true
	}
	x, ok := a.Val.(float64)
	if !ok {
		return false
	}
	y, ok := b.Val.(float64)
	return ok && math.IsNaN(x) && math.IsNaN(y)
}
