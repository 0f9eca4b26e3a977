package cel

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/ezachrisen/tangent"
	"github.com/ezachrisen/tangent/ident"
	celgo "github.com/google/cel-go/cel"
	celast "github.com/google/cel-go/common/ast"
	"github.com/google/cel-go/common/operators"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

var (
	// ErrUnsupported is returned for CEL constructs and tangent types that
	// have no counterpart on the other side.
	ErrUnsupported = errors.New("unsupported")

	// ErrUndeclared is returned when an expression refers to a name the
	// schema does not declare.
	ErrUndeclared = errors.New("undeclared variable")

	// ErrMissingValue is returned when the data has no value for a
	// variable the expression uses.
	ErrMissingValue = errors.New("missing value")

	// ErrConversion is returned when a value cannot be converted to the
	// type it is declared as.
	ErrConversion = errors.New("conversion failed")
)

// ConstTag is the tag of leaves made from numeric literals. Its identifier
// is nil, so it never identifies the same variable as any other tag.
var ConstTag = ident.Tag{Name: "#const"}

// Parser turns CEL source into tangent trees.
//
// Identifiers must be declared in the schema. Each is given a tag from the
// namespace, so the same name always yields the same tag, and the leaf value
// is taken from the data passed to Parse.
//
// The literals 0 and 1 (and 0.0 and 1.0) become the identity elements Zero
// and One; other literals become leaves tagged ConstTag.
type Parser struct {
	schema tangent.Schema
	ns     *ident.Namespace

	once sync.Once
	env  *celgo.Env
	err  error
}

// NewParser returns a parser for expressions over the variables in s.
// If ns is nil the parser uses a namespace of its own.
func NewParser(s tangent.Schema, ns *ident.Namespace) *Parser {
	if ns == nil {
		ns = ident.NewNamespace()
	}
	return &Parser{schema: s, ns: ns}
}

// Namespace returns the namespace variable tags are declared in.
func (p *Parser) Namespace() *ident.Namespace {
	return p.ns
}

// Parse parses src and returns the tree it describes.
// Parse is safe for concurrent use.
func (p *Parser) Parse(src string, data map[string]any) (tangent.Node, error) {
	p.once.Do(func() {
		p.env, p.err = NewEnv()
	})
	if p.err != nil {
		return nil, fmt.Errorf("creating CEL environment: %w", p.err)
	}

	ast, iss := p.env.Parse(src)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("parsing %q: %w", src, iss.Err())
	}
	return p.node(ast.NativeRep().Expr(), data)
}

func (p *Parser) node(e celast.Expr, data map[string]any) (tangent.Node, error) {
	switch e.Kind() {
	case celast.LiteralKind:
		return literal(e.AsLiteral())
	case celast.IdentKind:
		return p.variable(e.AsIdent(), data)
	case celast.CallKind:
		return p.call(e.AsCall(), data)
	}
	return nil, fmt.Errorf("%w: expression kind %v", ErrUnsupported, e.Kind())
}

func literal(v ref.Val) (tangent.Node, error) {
	switch x := v.(type) {
	case types.Int:
		return intLiteral(int64(x)), nil
	case types.Uint:
		if uint64(x) > math.MaxInt64 {
			return nil, fmt.Errorf("%w: literal %du does not fit in an int", ErrConversion, uint64(x))
		}
		return intLiteral(int64(x)), nil
	case types.Double:
		switch float64(x) {
		case 0:
			return tangent.Zero, nil
		case 1:
			return tangent.One, nil
		}
		return tangent.Var(float64(x), ConstTag), nil
	case types.Bool:
		return tangent.Var(bool(x), ConstTag), nil
	}
	return nil, fmt.Errorf("%w: literal %v of type %s", ErrUnsupported, v.Value(), v.Type().TypeName())
}

func intLiteral(i int64) tangent.Node {
	switch i {
	case 0:
		return tangent.Zero
	case 1:
		return tangent.One
	}
	return tangent.Var(i, ConstTag)
}

func (p *Parser) variable(name string, data map[string]any) (tangent.Node, error) {
	el, ok := p.schema.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUndeclared, name)
	}
	raw, ok := data[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingValue, name)
	}
	v, err := toValue(raw, el.Type)
	if err != nil {
		return nil, fmt.Errorf("variable %s: %w", name, err)
	}
	tag, err := p.ns.Declare(name)
	if err != nil {
		return nil, err
	}
	return tangent.Leaf{Value: v, Tag: tag}, nil
}

var binaryOps = map[string]tangent.Op{
	operators.Add:        tangent.OpAdd,
	operators.Subtract:   tangent.OpSub,
	operators.Multiply:   tangent.OpMul,
	operators.Divide:     tangent.OpDiv,
	operators.Modulo:     tangent.OpRem,
	operators.LogicalAnd: tangent.OpAnd,
	operators.LogicalOr:  tangent.OpOr,
	fnBitAnd:             tangent.OpAnd,
	fnBitOr:              tangent.OpOr,
	fnXor:                tangent.OpXor,
	fnShl:                tangent.OpShl,
	fnShr:                tangent.OpShr,
	fnFmod:               tangent.OpRem,
}

var unaryOps = map[string]tangent.Op{
	operators.Negate:     tangent.OpNeg,
	operators.LogicalNot: tangent.OpNot,
	fnBitNot:             tangent.OpNot,
}

func (p *Parser) call(c celast.CallExpr, data map[string]any) (tangent.Node, error) {
	name := c.FunctionName()
	if c.IsMemberFunction() {
		return nil, fmt.Errorf("%w: member function %s", ErrUnsupported, name)
	}

	args := make([]tangent.Node, 0, len(c.Args()))
	for _, a := range c.Args() {
		n, err := p.node(a, data)
		if err != nil {
			return nil, err
		}
		args = append(args, n)
	}

	if op, ok := unaryOps[name]; ok && len(args) == 1 {
		return tangent.Unary{Op: op, X: args[0]}, nil
	}
	if op, ok := binaryOps[name]; ok && len(args) == 2 {
		return tangent.Binary{Op: op, L: args[0], R: args[1]}, nil
	}
	return nil, fmt.Errorf("%w: function %s with %d arguments", ErrUnsupported, name, len(args))
}
