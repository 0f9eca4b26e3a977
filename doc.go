// Package tangent is a small computer-algebra engine. Expressions are trees
// of typed leaves and operators, and a tree can be evaluated to a value,
// differentiated with respect to a variable, and simplified.
//
// Typical use is as follows:
//
//  1. Give each variable a tag, from package ident or a Namespace
//  2. Build a tree from leaves (Var), the identity elements Zero and One,
//     and the operators (Add, Mul, Neg, ...)
//  3. Compile the tree, which checks the operand types of every operator
//  4. Evaluate it, differentiate it, or reduce it
//  5. Inspect the results, or print them with Tree, Table or Trace
//
// The cel package builds trees from CEL source text instead, and package
// worksheet runs YAML documents of expressions through both.
//
// # Trees
//
// A Node is a Leaf, an Identity, a Unary or a Binary. Trees are values: no
// operation modifies its input, and derivatives and reductions are new
// trees. Sub-trees may be shared between trees.
//
// A leaf holds a Value and the Tag of the variable it stands for. Two leaves
// are the same variable when their tags' identifiers are equal (see
// ident.Equal); the value and the name of the tag play no part.
//
// Zero and One are the additive and multiplicative identities. They have no
// type of their own: when evaluated, they take the type of the value they
// are combined with, so One / (One + One) is 0.5 in a float expression and 0
// in an int expression. An expression built only of identity elements has
// the type set by DefaultType. Derivatives and reductions keep the type of
// the expression they came from.
//
// # Types
//
// Leaves hold Int, Float, Decimal or Bool values. Numeric operands of
// different types are converted to the larger type, in the order Int,
// Decimal, Float. Bools combine only with bools, through And, Or, Xor and
// Not. Bitwise operators and shifts need integer operands.
//
// # Differentiation
//
// Deriv applies the sum, difference, product and quotient rules. Every
// tree a rule builds is reduced before it is combined into its parent, which
// keeps derivatives of nested products small. Bitwise, shift, remainder and
// Not nodes cannot be differentiated, and Deriv returns ErrNoDerivative.
//
// # Reduction
//
// Reduce removes identity elements: x*1 is x, x+0 is x, 0*x is 0, and so on.
// It matches only the shapes Zero and One. The value of a leaf is never
// inspected, so a leaf holding 0 is not removed. A division by Zero has no
// rule and fails with ErrNoRule.
//
// Division by a value that happens to be zero is not detected: it does what
// Go does. Integer division panics, and Eval returns the panic as ErrEval;
// float division returns an infinity or NaN.
package tangent
