// Package ident provides identifiers for expression variables and the
// equality engine that decides whether two identifiers name the same variable.
//
// An identifier is built from two binary symbols, B0 and B1, and a pairing
// constructor. Equality is structural: bits are equal when they are the same
// symbol, pairs are equal when both components are equal, and a bit never
// equals a pair. The decision is made with the logic kernel, so composite
// identifiers are compared as the conjunction of their components.
//
// Identifiers are allocated by index (see FromIndex), which yields the same
// space as fixed-length bit strings: distinct indexes give distinct
// identifiers.
package ident

import (
	"strings"

	"github.com/ezachrisen/tangent/logic"
)

// Ident is an opaque variable identifier.
// The only implementations are Bit and Pair.
type Ident interface {
	String() string
	ident()
}

// Bit is one of the two leaf symbols of an identifier.
type Bit uint8

const (
	B0 Bit = 0
	B1 Bit = 1
)

// Pair combines two identifiers into a composite identifier.
type Pair struct {
	Left  Ident
	Right Ident
}

func (Bit) ident()  {}
func (Pair) ident() {}

func (b Bit) String() string {
	if b == B1 {
		return "1"
	}
	return "0"
}

func (p Pair) String() string {
	s := strings.Builder{}
	s.WriteString("(")
	s.WriteString(str(p.Left))
	s.WriteString(",")
	s.WriteString(str(p.Right))
	s.WriteString(")")
	return s.String()
}

func str(id Ident) string {
	if id == nil {
		return "<nil>"
	}
	return id.String()
}

// truth maps a bit to the logic value it stands for.
func (b Bit) truth() logic.Bool {
	return logic.Of(b == B1)
}

// Equal decides whether a and b are the same identifier.
// A nil identifier is not equal to anything, including another nil.
func Equal(a, b Ident) logic.Bool {
	switch x := a.(type) {
	case Bit:
		y, ok := b.(Bit)
		if !ok {
			return logic.False
		}
		return logic.Not(logic.Xor(x.truth(), y.truth()))
	case Pair:
		y, ok := b.(Pair)
		if !ok {
			return logic.False
		}
		return logic.And(Equal(x.Left, y.Left), Equal(x.Right, y.Right))
	default:
		return logic.False
	}
}

// FromIndex returns the identifier allocated to index n.
//
// The bits of n, least significant first and without leading zeros (0 is the
// single bit B0), are folded into nested pairs so that the most significant
// bit is the outermost left component:
//
//	0 -> 0
//	1 -> 1
//	2 -> (1,0)
//	5 -> (1,(0,1))
func FromIndex(n uint) Ident {
	var id Ident = Bit(n & 1)
	for n >>= 1; n > 0; n >>= 1 {
		id = Pair{Left: Bit(n & 1), Right: id}
	}
	return id
}

// Index returns the index an identifier was allocated to by FromIndex.
// The boolean is false if the identifier does not have the shape FromIndex
// produces.
func Index(id Ident) (uint, bool) {
	if p, ok := id.(Pair); ok && p.Left != B1 {
		// FromIndex never produces a leading zero bit
		return 0, false
	}
	return bits(id)
}

func bits(id Ident) (uint, bool) {
	switch x := id.(type) {
	case Bit:
		return uint(x), true
	case Pair:
		b, ok := x.Left.(Bit)
		if !ok {
			return 0, false
		}
		rest, ok := bits(x.Right)
		if !ok {
			return 0, false
		}
		return uint(b)<<Len(x.Right) | rest, true
	}
	return 0, false
}

// Len is the number of bits in the identifier.
func Len(id Ident) int {
	switch x := id.(type) {
	case Bit:
		return 1
	case Pair:
		return Len(x.Left) + Len(x.Right)
	}
	return 0
}
