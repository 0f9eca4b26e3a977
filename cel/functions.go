package cel

import (
	"fmt"
	"math"

	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// Names of the functions that give CEL the operators it lacks.
// Parse maps calls to them to tangent nodes, and Render emits them.
const (
	fnBitAnd = "bitand"
	fnBitOr  = "bitor"
	fnXor    = "xor"
	fnShl    = "shl"
	fnShr    = "shr"
	fnBitNot = "bitnot"
	fnFmod   = "fmod"
)

// functions returns the CEL declarations, with Go bindings, of the bitwise,
// shift and floating point remainder functions.
func functions() []celgo.EnvOption {
	return []celgo.EnvOption{
		intBinary(fnBitAnd, func(a, b int64) (int64, error) { return a & b, nil }),
		intBinary(fnBitOr, func(a, b int64) (int64, error) { return a | b, nil }),
		intBinary(fnXor, func(a, b int64) (int64, error) { return a ^ b, nil }),
		intBinary(fnShl, func(a, b int64) (int64, error) {
			if b < 0 {
				return 0, fmt.Errorf("negative shift amount %d", b)
			}
			return a << b, nil
		}),
		intBinary(fnShr, func(a, b int64) (int64, error) {
			if b < 0 {
				return 0, fmt.Errorf("negative shift amount %d", b)
			}
			return a >> b, nil
		}),
		celgo.Function(fnBitNot,
			celgo.Overload(fnBitNot+"_int", []*celgo.Type{celgo.IntType}, celgo.IntType,
				celgo.UnaryBinding(func(v ref.Val) ref.Val {
					i, ok := v.(types.Int)
					if !ok {
						return types.MaybeNoSuchOverloadErr(v)
					}
					return ^i
				}))),
		celgo.Function(fnFmod,
			celgo.Overload(fnFmod+"_double_double", []*celgo.Type{celgo.DoubleType, celgo.DoubleType}, celgo.DoubleType,
				celgo.BinaryBinding(func(lhs, rhs ref.Val) ref.Val {
					x, ok := lhs.(types.Double)
					if !ok {
						return types.MaybeNoSuchOverloadErr(lhs)
					}
					y, ok := rhs.(types.Double)
					if !ok {
						return types.MaybeNoSuchOverloadErr(rhs)
					}
					return types.Double(math.Mod(float64(x), float64(y)))
				}))),
	}
}

// intBinary declares a function of two ints returning an int, backed by f.
func intBinary(name string, f func(a, b int64) (int64, error)) celgo.EnvOption {
	return celgo.Function(name,
		celgo.Overload(fmt.Sprintf("%s_int_int", name),
			[]*celgo.Type{celgo.IntType, celgo.IntType},
			celgo.IntType,
			celgo.BinaryBinding(func(lhs, rhs ref.Val) ref.Val {
				x, ok := lhs.(types.Int)
				if !ok {
					return types.MaybeNoSuchOverloadErr(lhs)
				}
				y, ok := rhs.(types.Int)
				if !ok {
					return types.MaybeNoSuchOverloadErr(rhs)
				}
				z, err := f(int64(x), int64(y))
				if err != nil {
					return types.NewErr("function %s: %v", name, err)
				}
				return types.Int(z)
			})))
}

// NewEnv returns a CEL environment that declares the functions tangent
// expressions use, plus any options given.
// Use it to build the environment passed to WithFixedEnv.
func NewEnv(opts ...celgo.EnvOption) (*celgo.Env, error) {
	return celgo.NewEnv(append(functions(), opts...)...)
}
