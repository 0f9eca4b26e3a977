package cel

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ezachrisen/tangent"
	celgo "github.com/google/cel-go/cel"
)

// Evaluator is a tangent.Evaluator that renders the expression as CEL
// source and runs it with cel-go.
//
// The leaves of the expression are passed to the program as variables, so
// the source depends only on the shape of the tree and the types of its
// leaves. Programs are compiled once per shape and cached. An Evaluator is
// safe for concurrent use.
type Evaluator struct {
	mu       sync.Mutex
	env      *celgo.Env
	programs map[string]celgo.Program
}

// EvaluatorOption is a functional option that sets options on the Evaluator.
type EvaluatorOption func(e *Evaluator)

// WithFixedEnv uses env to compile every program instead of the default
// environment. The environment must declare the functions NewEnv declares;
// build it with NewEnv and add options to it.
func WithFixedEnv(env *celgo.Env) EvaluatorOption {
	return func(e *Evaluator) {
		e.env = env
	}
}

// NewEvaluator creates a new CEL Evaluator.
func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := Evaluator{
		programs: map[string]celgo.Program{},
	}
	for _, opt := range opts {
		opt(&e)
	}
	return &e
}

// Evaluate renders e as CEL, runs it and returns the result as a value of
// type e.Type().
func (ev *Evaluator) Evaluate(e *tangent.Expr) (tangent.Value, error) {
	r := renderer{params: true}
	if err := r.expr(e); err != nil {
		return tangent.Value{}, err
	}
	src := r.sb.String()

	prg, err := ev.program(src, &r)
	if err != nil {
		return tangent.Value{}, err
	}

	vars := r.values
	if vars == nil {
		vars = map[string]any{}
	}
	out, _, err := prg.Eval(vars)
	if err != nil {
		return tangent.Value{}, fmt.Errorf("%w: evaluating %s with %v: %v", tangent.ErrEval, src, vars, err)
	}
	return fromRefVal(out, e.Type())
}

// program returns the cached program for src, whose variables r declares,
// compiling it if needed.
func (ev *Evaluator) program(src string, r *renderer) (celgo.Program, error) {
	key := src + " " + strings.Join(r.types, ",")

	ev.mu.Lock()
	defer ev.mu.Unlock()

	if prg, ok := ev.programs[key]; ok {
		return prg, nil
	}

	if ev.env == nil {
		env, err := NewEnv()
		if err != nil {
			return nil, fmt.Errorf("creating CEL environment: %w", err)
		}
		ev.env = env
	}

	env := ev.env
	if len(r.decls) > 0 {
		var err error
		env, err = ev.env.Extend(r.decls...)
		if err != nil {
			return nil, fmt.Errorf("declaring the variables of %s: %w", src, err)
		}
	}

	ast, iss := env.Compile(src)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("compiling %s: %w", src, iss.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("generating program %s: %w", src, err)
	}
	ev.programs[key] = prg
	return prg, nil
}
