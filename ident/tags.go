package ident

import "github.com/ezachrisen/tangent/logic"

// Tag names a variable. Two tags refer to the same variable when their
// identifiers are equal; the name is only a label used when printing.
type Tag struct {
	Name string
	ID   Ident
}

// NewTag returns a tag with the identifier allocated to index n.
func NewTag(name string, n uint) Tag {
	return Tag{Name: name, ID: FromIndex(n)}
}

// Is reports whether t and o identify the same variable.
func (t Tag) Is(o Tag) logic.Bool {
	return Equal(t.ID, o.ID)
}

func (t Tag) String() string {
	return t.Name
}

// The pre-defined tags, one per letter of the alphabet.
var (
	A = NewTag("A", 0)
	B = NewTag("B", 1)
	C = NewTag("C", 2)
	D = NewTag("D", 3)
	E = NewTag("E", 4)
	F = NewTag("F", 5)
	G = NewTag("G", 6)
	H = NewTag("H", 7)
	I = NewTag("I", 8)
	J = NewTag("J", 9)
	K = NewTag("K", 10)
	L = NewTag("L", 11)
	M = NewTag("M", 12)
	N = NewTag("N", 13)
	O = NewTag("O", 14)
	P = NewTag("P", 15)
	Q = NewTag("Q", 16)
	R = NewTag("R", 17)
	S = NewTag("S", 18)
	T = NewTag("T", 19)
	U = NewTag("U", 20)
	V = NewTag("V", 21)
	W = NewTag("W", 22)
	X = NewTag("X", 23)
	Y = NewTag("Y", 24)
	Z = NewTag("Z", 25)
)

// Letters holds the pre-defined tags in index order.
var Letters = []Tag{A, B, C, D, E, F, G, H, I, J, K, L, M, N, O, P, Q, R, S, T, U, V, W, X, Y, Z}
