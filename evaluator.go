package tangent

// Evaluator is the interface implemented by types that can evaluate a
// compiled expression.
//
// Native evaluates with Go's own arithmetic. Other implementations hand the
// tree to a different expression language, which makes them useful as an
// independent check on the native result.
type Evaluator interface {
	// Evaluate returns the value of the expression. The value has the type
	// reported by e.Type().
	Evaluate(e *Expr) (Value, error)
}

// Native evaluates expressions with Eval.
type Native struct{}

// Evaluate returns e.Eval().
func (Native) Evaluate(e *Expr) (Value, error) {
	return e.Eval()
}
