package tangent

import (
	"fmt"
	"math"
	"strconv"

	"github.com/cockroachdb/apd/v2"
	"github.com/ezachrisen/tangent/logic"
)

// Value is the result of evaluation, and the payload of a leaf.
// Inspect the Type to determine what it is.
//
// The Go type stored in Val depends on the Type:
//
//	Int           int64
//	Float         float64
//	Decimal       *apd.Decimal
//	Bool          bool
type Value struct {
	Val  interface{} // the value stored
	Type Type        // the tangent type stored
}

// decimalContext is used for all decimal arithmetic.
var decimalContext = apd.BaseContext.WithPrecision(34)

// IntValue returns an Int value.
func IntValue(i int64) Value { return Value{Val: i, Type: Int{}} }

// FloatValue returns a Float value.
func FloatValue(f float64) Value { return Value{Val: f, Type: Float{}} }

// BoolValue returns a Bool value.
func BoolValue(b bool) Value { return Value{Val: b, Type: Bool{}} }

// DecimalValue returns a Decimal value. The decimal is copied.
func DecimalValue(d *apd.Decimal) Value {
	return Value{Val: new(apd.Decimal).Set(d), Type: Decimal{}}
}

// Int returns the value as an int64 if it is an Int value.
func (v Value) Int() (int64, bool) {
	i, ok := v.Val.(int64)
	return i, ok && isInteger(v.Type)
}

// Float returns any numeric value as a float64.
func (v Value) Float() (float64, bool) {
	switch x := v.Val.(type) {
	case float64:
		return x, true
	case int64:
		return float64(x), true
	case *apd.Decimal:
		f, err := x.Float64()
		return f, err == nil
	}
	return 0, false
}

// Bool returns the value as a bool if it is a Bool value.
func (v Value) Bool() (bool, bool) {
	b, ok := v.Val.(bool)
	return b, ok
}

// Decimal returns Int and Decimal values as a decimal.
func (v Value) Decimal() (*apd.Decimal, bool) {
	switch x := v.Val.(type) {
	case *apd.Decimal:
		return x, true
	case int64:
		return apd.New(x, 0), true
	}
	return nil, false
}

func (v Value) String() string {
	switch x := v.Val.(type) {
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case *apd.Decimal:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return "<nil>"
	}
	return fmt.Sprintf("%v", v.Val)
}

// Equal reports whether v and o have the same type and value.
// Float NaN values are never equal.
func (v Value) Equal(o Value) bool {
	if v.Type == nil || o.Type == nil || v.Type.String() != o.Type.String() {
		return false
	}
	switch x := v.Val.(type) {
	case *apd.Decimal:
		y, ok := o.Val.(*apd.Decimal)
		return ok && x.Cmp(y) == 0
	default:
		return v.Val == o.Val
	}
}

// convert returns v as a value of type t. Only conversions up the
// promotion order are supported.
func convert(v Value, t Type) (Value, error) {
	if v.Type.String() == t.String() {
		return v, nil
	}
	switch t.(type) {
	case Int:
		if i, ok := v.Int(); ok {
			return IntValue(i), nil
		}
	case Decimal:
		if d, ok := v.Decimal(); ok {
			return Value{Val: d, Type: Decimal{}}, nil
		}
	case Float:
		if f, ok := v.Float(); ok {
			return FloatValue(f), nil
		}
	}
	return Value{}, fmt.Errorf("%w: cannot convert %s to %s", ErrTypeMismatch, v.Type, t)
}

// unary applies the host operator to the operand.
func unary(op Op, x Value) (Value, error) {
	switch op {
	case OpNeg:
		switch v := x.Val.(type) {
		case int64:
			return Value{Val: -v, Type: x.Type}, nil
		case float64:
			return FloatValue(-v), nil
		case *apd.Decimal:
			d := new(apd.Decimal)
			if _, err := decimalContext.Neg(d, v); err != nil {
				return Value{}, fmt.Errorf("%w: %v", ErrEval, err)
			}
			return Value{Val: d, Type: Decimal{}}, nil
		}
	case OpNot:
		switch v := x.Val.(type) {
		case bool:
			return BoolValue(bool(logic.Not(logic.Of(v)))), nil
		case int64:
			return Value{Val: ^v, Type: x.Type}, nil
		}
	}
	return Value{}, fmt.Errorf("%w: %s of %s", ErrTypeMismatch, op, x.Type)
}

// binary applies the host operator to the operands, converting the operand
// of the smaller type up to the larger one first.
//
// Integer division and remainder by zero, and negative shift counts, panic
// exactly as they do in Go; the caller recovers them.
func binary(op Op, l Value, r Value) (Value, error) {
	switch op {
	case OpAnd, OpOr, OpXor:
		if lb, ok := l.Bool(); ok {
			rb, ok := r.Bool()
			if !ok {
				break
			}
			return BoolValue(bool(logicOp(op, logic.Of(lb), logic.Of(rb)))), nil
		}
		return integerOp(op, l, r)
	case OpShl, OpShr:
		x, ok := l.Int()
		if !ok {
			break
		}
		n, ok := r.Int()
		if !ok {
			break
		}
		if op == OpShl {
			return Value{Val: x << n, Type: l.Type}, nil
		}
		return Value{Val: x >> n, Type: l.Type}, nil
	case OpAdd, OpSub, OpMul, OpDiv, OpRem:
		t, ok := promote(l.Type, r.Type)
		if !ok {
			break
		}
		lc, err := convert(l, t)
		if err != nil {
			return Value{}, err
		}
		rc, err := convert(r, t)
		if err != nil {
			return Value{}, err
		}
		switch t.(type) {
		case Int:
			return integerOp(op, lc, rc)
		case Float:
			return floatOp(op, lc.Val.(float64), rc.Val.(float64)), nil
		case Decimal:
			return decimalOp(op, lc.Val.(*apd.Decimal), rc.Val.(*apd.Decimal))
		}
	}
	return Value{}, fmt.Errorf("%w: %s between %s and %s", ErrTypeMismatch, op, l.Type, r.Type)
}

func logicOp(op Op, a, b logic.Bool) logic.Bool {
	switch op {
	case OpAnd:
		return logic.And(a, b)
	case OpOr:
		return logic.Or(a, b)
	default:
		return logic.Xor(a, b)
	}
}

func integerOp(op Op, l, r Value) (Value, error) {
	x, ok := l.Int()
	if !ok {
		return Value{}, fmt.Errorf("%w: %s of %s", ErrTypeMismatch, op, l.Type)
	}
	y, ok := r.Int()
	if !ok {
		return Value{}, fmt.Errorf("%w: %s of %s", ErrTypeMismatch, op, r.Type)
	}
	t, _ := promote(l.Type, r.Type)

	var z int64
	switch op {
	case OpAdd:
		z = x + y
	case OpSub:
		z = x - y
	case OpMul:
		z = x * y
	case OpDiv:
		z = x / y
	case OpRem:
		z = x % y
	case OpAnd:
		z = x & y
	case OpOr:
		z = x | y
	case OpXor:
		z = x ^ y
	default:
		return Value{}, fmt.Errorf("%w: %s of %s", ErrTypeMismatch, op, t)
	}
	return Value{Val: z, Type: t}, nil
}

func floatOp(op Op, x, y float64) Value {
	switch op {
	case OpAdd:
		return FloatValue(x + y)
	case OpSub:
		return FloatValue(x - y)
	case OpMul:
		return FloatValue(x * y)
	case OpDiv:
		return FloatValue(x / y)
	default:
		return FloatValue(math.Mod(x, y))
	}
}

func decimalOp(op Op, x, y *apd.Decimal) (Value, error) {
	d := new(apd.Decimal)
	var err error
	switch op {
	case OpAdd:
		_, err = decimalContext.Add(d, x, y)
	case OpSub:
		_, err = decimalContext.Sub(d, x, y)
	case OpMul:
		_, err = decimalContext.Mul(d, x, y)
	case OpDiv:
		_, err = decimalContext.Quo(d, x, y)
	default:
		_, err = decimalContext.Rem(d, x, y)
	}
	if err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrEval, err)
	}
	return Value{Val: d, Type: Decimal{}}, nil
}
