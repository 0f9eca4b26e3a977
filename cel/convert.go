package cel

// This file converts values between Go, tangent and CEL.
// Data passed to Parse is plain Go (as decoded from YAML or JSON) and is
// converted to the type the schema declares:
//   - toValue
//
// Values produced by a CEL program are converted back to tangent values:
//   - fromRefVal

import (
	"fmt"
	"math"
	"reflect"

	"github.com/cockroachdb/apd/v2"
	"github.com/ezachrisen/tangent"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// toValue converts a Go value to a tangent value of type t.
// Integers convert to floats and decimals; floats convert to ints only if
// they have no fractional part. Strings convert to decimals.
func toValue(v any, t tangent.Type) (tangent.Value, error) {
	if d, ok := v.(*apd.Decimal); ok {
		if _, ok := t.(tangent.Decimal); ok {
			return tangent.DecimalValue(d), nil
		}
		return tangent.Value{}, fmt.Errorf("%w: decimal value for %s variable", ErrConversion, t)
	}

	rv := reflect.ValueOf(v)
	switch t.(type) {
	case tangent.Bool:
		if rv.Kind() == reflect.Bool {
			return tangent.BoolValue(rv.Bool()), nil
		}
	case tangent.Int:
		if i, ok := asInt(rv); ok {
			return tangent.IntValue(i), nil
		}
		if f, ok := asFloat(rv); ok && f == math.Trunc(f) && math.Abs(f) < math.MaxInt64 {
			return tangent.IntValue(int64(f)), nil
		}
	case tangent.Float:
		if f, ok := asFloat(rv); ok {
			return tangent.FloatValue(f), nil
		}
		if i, ok := asInt(rv); ok {
			return tangent.FloatValue(float64(i)), nil
		}
	case tangent.Decimal:
		if i, ok := asInt(rv); ok {
			return tangent.DecimalValue(apd.New(i, 0)), nil
		}
		if rv.Kind() == reflect.String {
			d, _, err := apd.NewFromString(rv.String())
			if err != nil {
				return tangent.Value{}, fmt.Errorf("%w: %v", ErrConversion, err)
			}
			return tangent.DecimalValue(d), nil
		}
		if f, ok := asFloat(rv); ok {
			d, err := new(apd.Decimal).SetFloat64(f)
			if err != nil {
				return tangent.Value{}, fmt.Errorf("%w: %v", ErrConversion, err)
			}
			return tangent.DecimalValue(d), nil
		}
	}
	return tangent.Value{}, fmt.Errorf("%w: %v (%T) to %s", ErrConversion, v, v, t)
}

func asInt(rv reflect.Value) (int64, bool) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		return int64(u), u <= math.MaxInt64
	}
	return 0, false
}

func asFloat(rv reflect.Value) (float64, bool) {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// fromRefVal converts the result of a CEL program to a tangent value of
// type want.
func fromRefVal(r ref.Val, want tangent.Type) (tangent.Value, error) {
	switch want.(type) {
	case tangent.Int:
		if i, ok := r.(types.Int); ok {
			return tangent.IntValue(int64(i)), nil
		}
	case tangent.Float:
		if d, ok := r.(types.Double); ok {
			return tangent.FloatValue(float64(d)), nil
		}
	case tangent.Bool:
		if b, ok := r.(types.Bool); ok {
			return tangent.BoolValue(bool(b)), nil
		}
	}
	return tangent.Value{}, fmt.Errorf("%w: CEL returned %v (%s), expected %s", ErrConversion, r.Value(), r.Type().TypeName(), want)
}
