// Package cel connects tangent to Google's cel-go expression language.
//
// See https://github.com/google/cel-go and https://opensource.google/projects/cel for more information
// about CEL. The expressions you write must be valid CEL: https://github.com/google/cel-spec.
//
// The package works in both directions:
//
// A Parser reads CEL source and builds a tangent tree from it, so that
// expressions can be written as text instead of composed in Go:
//
//	s := tangent.Schema{
//	    Elements: []tangent.DataElement{
//	        {Name: "x", Type: tangent.Float{}},
//	        {Name: "y", Type: tangent.Float{}},
//	    },
//	}
//	p := cel.NewParser(s, nil)
//	n, err := p.Parse("x * y + 1", map[string]any{"x": 8.0, "y": 2.0})
//
// An Evaluator renders a compiled tangent expression back to CEL and runs
// it. Because CEL's arithmetic is implemented independently of Go's, the
// Evaluator is a useful check on tangent.Native.
//
// # Operators
//
// The arithmetic operators + - * / % and unary - are written as in CEL.
// On bools, && and || are And and Or, and ! is Not. CEL has no bitwise or
// shift operators; use these functions instead:
//
//	bitand(a, b)   a & b
//	bitor(a, b)    a | b
//	xor(a, b)      a ^ b
//	shl(a, n)      a << n
//	shr(a, n)      a >> n
//	bitnot(a)      ^a
//	fmod(a, b)     floating point remainder
//
// # Literals
//
// The literals 0 and 1 are the identity elements tangent.Zero and
// tangent.One, whatever their CEL type. Other numeric and bool literals
// become constant leaves tagged ConstTag, which never match a variable
// when differentiating.
//
// # Differences from native evaluation
//
// CEL reports integer overflow as an error where Go wraps around, and CEL has
// no decimal type, so decimal expressions are refused with ErrUnsupported.
package cel
