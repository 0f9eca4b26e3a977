package tangent

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch is returned by Compile when an operator is applied to
	// operands whose types it is not defined for.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrNoDerivative is returned when differentiating through a node kind
	// that has no differentiation rule (bitwise, shift, remainder and Not).
	ErrNoDerivative = errors.New("differentiation undefined")

	// ErrNoRule is returned when a tree contains a shape the simplifier
	// offers no rule for: a division whose denominator is Zero.
	ErrNoRule = errors.New("no reduction rule")

	// ErrEval wraps failures raised by the host arithmetic during evaluation,
	// such as integer division by zero.
	ErrEval = errors.New("evaluation failed")

	// ErrTooDeep is returned by Compile for trees deeper than the MaxDepth option.
	ErrTooDeep = errors.New("expression too deep")
)

// RuleError reports that a stage (differentiation or reduction) has no rule
// for a node.
type RuleError struct {
	Stage string // "deriv" or "reduce"
	Op    string // the kind of node that was refused
	Node  Node   // the refused sub-tree
}

func (e *RuleError) Error() string {
	switch e.Stage {
	case "deriv":
		return fmt.Sprintf("differentiation undefined for node kind %s", e.Op)
	default:
		return fmt.Sprintf("no reduction rule for %s", Format(e.Node))
	}
}

func (e *RuleError) Unwrap() error {
	if e.Stage == "deriv" {
		return ErrNoDerivative
	}
	return ErrNoRule
}
