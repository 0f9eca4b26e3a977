package tangent

// Op is the operator of a Unary or Binary node.
type Op int

const (
	OpNeg Op = iota
	OpNot
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpAnd
	OpOr
	OpXor
	OpShl
	OpShr
	OpRem
)

var opNames = [...]string{
	OpNeg: "Neg",
	OpNot: "Not",
	OpAdd: "Add",
	OpSub: "Sub",
	OpMul: "Mul",
	OpDiv: "Div",
	OpAnd: "BitAnd",
	OpOr:  "BitOr",
	OpXor: "BitXor",
	OpShl: "Shl",
	OpShr: "Shr",
	OpRem: "Rem",
}

var opSymbols = [...]string{
	OpNeg: "-",
	OpNot: "!",
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpAnd: "&",
	OpOr:  "|",
	OpXor: "^",
	OpShl: "<<",
	OpShr: ">>",
	OpRem: "%",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return "Op(?)"
	}
	return opNames[o]
}

// Symbol is the infix symbol of the operator.
func (o Op) Symbol() string {
	if o < 0 || int(o) >= len(opSymbols) {
		return "?"
	}
	return opSymbols[o]
}

// IsUnary reports whether the operator takes a single operand.
func (o Op) IsUnary() bool {
	return o == OpNeg || o == OpNot
}

// precedence follows Go's binary operator precedence.
func (o Op) precedence() int {
	switch o {
	case OpMul, OpDiv, OpRem, OpShl, OpShr, OpAnd:
		return 5
	case OpAdd, OpSub, OpOr, OpXor:
		return 4
	}
	return 6
}
