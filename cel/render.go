package cel

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ezachrisen/tangent"
	celgo "github.com/google/cel-go/cel"
)

// Render returns CEL source that computes the same value as the expression.
//
// CEL has no implicit conversions, so every leaf is written as a literal of
// its type, and integer operands of floating point operations are wrapped in
// double(). Zero and One are written as int or double literals, depending on
// the type they take in their context. Operators CEL lacks are written as
// calls to the functions NewEnv declares.
//
// Decimal expressions cannot be rendered and return ErrUnsupported.
func Render(e *tangent.Expr) (string, error) {
	var r renderer
	if err := r.expr(e); err != nil {
		return "", err
	}
	return r.sb.String(), nil
}

// renderer writes a tangent tree as CEL source.
type renderer struct {
	sb strings.Builder

	// params makes leaves CEL variables instead of literals, so that the
	// source does not depend on the values of the leaves
	params bool
	decls  []celgo.EnvOption
	types  []string
	values map[string]any
}

func (r *renderer) expr(e *tangent.Expr) error {
	t := e.Type()
	if t == (tangent.Decimal{}) {
		return fmt.Errorf("%w: decimal values", ErrUnsupported)
	}
	return r.node(e.Root(), t, t)
}

// node writes n, evaluated in a context of type want, as a CEL expression of
// type target.
func (r *renderer) node(n tangent.Node, want, target tangent.Type) error {
	t, err := tangent.TypeIn(n, want)
	if err != nil {
		return err
	}

	switch t.(type) {
	case tangent.Decimal:
		return fmt.Errorf("%w: decimal values", ErrUnsupported)
	case tangent.Int:
		if target != (tangent.Float{}) {
			break
		}
		if id, ok := n.(tangent.Identity); ok {
			r.identity(id, target)
			return nil
		}
		r.sb.WriteString("double(")
		if err := r.node(n, want, t); err != nil {
			return err
		}
		r.sb.WriteString(")")
		return nil
	}

	switch x := n.(type) {
	case tangent.Leaf:
		return r.leaf(x)
	case tangent.Identity:
		r.identity(x, t)
		return nil
	case tangent.Unary:
		return r.unary(x, t)
	case tangent.Binary:
		return r.binary(x, t)
	}
	return fmt.Errorf("%w: node %T", ErrUnsupported, n)
}

func (r *renderer) leaf(l tangent.Leaf) error {
	if !r.params {
		return renderValue(&r.sb, l.Value)
	}

	var ct *celgo.Type
	switch l.Value.Val.(type) {
	case int64:
		ct = celgo.IntType
	case float64:
		ct = celgo.DoubleType
	case bool:
		ct = celgo.BoolType
	default:
		return fmt.Errorf("%w: value %v of type %s", ErrUnsupported, l.Value, l.Value.Type)
	}

	name := "v" + strconv.Itoa(len(r.decls))
	r.decls = append(r.decls, celgo.Variable(name, ct))
	r.types = append(r.types, l.Value.Type.String())
	if r.values == nil {
		r.values = map[string]any{}
	}
	r.values[name] = l.Value.Val
	r.sb.WriteString(name)
	return nil
}

func renderValue(sb *strings.Builder, v tangent.Value) error {
	switch x := v.Val.(type) {
	case int64:
		if x == math.MinInt64 {
			// the literal 9223372036854775808 does not fit in an int
			sb.WriteString(`int("-9223372036854775808")`)
			return nil
		}
		sb.WriteString(strconv.FormatInt(x, 10))
	case float64:
		sb.WriteString(floatLiteral(x))
	case bool:
		sb.WriteString(strconv.FormatBool(x))
	default:
		return fmt.Errorf("%w: value %v of type %s", ErrUnsupported, v, v.Type)
	}
	return nil
}

func floatLiteral(f float64) string {
	switch {
	case math.IsNaN(f):
		return `double("NaN")`
	case math.IsInf(f, 1):
		return `double("Inf")`
	case math.IsInf(f, -1):
		return `double("-Inf")`
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func (r *renderer) identity(i tangent.Identity, t tangent.Type) {
	v := "0"
	if i == tangent.One {
		v = "1"
	}
	if t == (tangent.Float{}) {
		v += ".0"
	}
	r.sb.WriteString(v)
}

func (r *renderer) unary(u tangent.Unary, t tangent.Type) error {
	switch {
	case u.Op == tangent.OpNeg:
		r.sb.WriteString("-(")
	case u.Op == tangent.OpNot && t == (tangent.Bool{}):
		r.sb.WriteString("!(")
	case u.Op == tangent.OpNot:
		r.sb.WriteString(fnBitNot + "(")
	default:
		return fmt.Errorf("%w: operator %s", ErrUnsupported, u.Op)
	}
	if err := r.node(u.X, t, t); err != nil {
		return err
	}
	r.sb.WriteString(")")
	return nil
}

func (r *renderer) binary(b tangent.Binary, t tangent.Type) error {
	_, isBool := t.(tangent.Bool)
	_, isFloat := t.(tangent.Float)

	// the count of a shift is always an int; it does not take the type of
	// the shifted value
	rt := t
	if b.Op == tangent.OpShl || b.Op == tangent.OpShr {
		rt = tangent.Int{}
	}

	var fn, infix string
	switch b.Op {
	case tangent.OpAdd, tangent.OpSub, tangent.OpMul, tangent.OpDiv:
		infix = b.Op.Symbol()
	case tangent.OpRem:
		if isFloat {
			fn = fnFmod
		} else {
			infix = "%"
		}
	case tangent.OpAnd:
		if isBool {
			infix = "&&"
		} else {
			fn = fnBitAnd
		}
	case tangent.OpOr:
		if isBool {
			infix = "||"
		} else {
			fn = fnBitOr
		}
	case tangent.OpXor:
		if isBool {
			infix = "!="
		} else {
			fn = fnXor
		}
	case tangent.OpShl:
		fn = fnShl
	case tangent.OpShr:
		fn = fnShr
	default:
		return fmt.Errorf("%w: operator %s", ErrUnsupported, b.Op)
	}

	if fn != "" {
		r.sb.WriteString(fn)
	}
	r.sb.WriteString("(")
	if err := r.node(b.L, t, t); err != nil {
		return err
	}
	if fn != "" {
		r.sb.WriteString(", ")
	} else {
		r.sb.WriteString(" " + infix + " ")
	}
	if err := r.node(b.R, rt, rt); err != nil {
		return err
	}
	r.sb.WriteString(")")
	return nil
}
