package tangent

import (
	"github.com/ezachrisen/tangent/ident"
	"github.com/ezachrisen/tangent/logic"
	"github.com/hashicorp/go-set/v3"
)

// Equal reports whether a and b are structurally identical trees.
// Leaves are identical when their tags identify the same variable and their
// values are equal.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case Leaf:
		y, ok := b.(Leaf)
		return ok && x.Tag.Is(y.Tag) == logic.True && x.Value.Equal(y.Value)
	case Identity:
		y, ok := b.(Identity)
		return ok && x == y
	case Unary:
		y, ok := b.(Unary)
		return ok && x.Op == y.Op && Equal(x.X, y.X)
	case Binary:
		y, ok := b.(Binary)
		return ok && x.Op == y.Op && Equal(x.L, y.L) && Equal(x.R, y.R)
	}
	return false
}

// Size is the number of nodes in the tree.
func Size(n Node) int {
	switch x := n.(type) {
	case Unary:
		return 1 + Size(x.X)
	case Binary:
		return 1 + Size(x.L) + Size(x.R)
	case nil:
		return 0
	}
	return 1
}

// Depth is the number of nodes on the longest path from the root to a leaf.
func Depth(n Node) int {
	switch x := n.(type) {
	case Unary:
		return 1 + Depth(x.X)
	case Binary:
		return 1 + max(Depth(x.L), Depth(x.R))
	case nil:
		return 0
	}
	return 1
}

// Variables returns the tags of the leaves in the tree, each variable once,
// in the order they first appear from left to right. Leaves without an
// identifier are constants, not variables, and are skipped.
func Variables(n Node) []ident.Tag {
	seen := set.New[ident.Ident](8)
	var tags []ident.Tag
	walk(n, func(n Node) {
		if l, ok := n.(Leaf); ok && l.Tag.ID != nil && seen.Insert(l.Tag.ID) {
			tags = append(tags, l.Tag)
		}
	})
	return tags
}

// walk calls f for n and every node below it, parents before children,
// left before right.
func walk(n Node, f func(Node)) {
	if n == nil {
		return
	}
	f(n)
	switch x := n.(type) {
	case Unary:
		walk(x.X, f)
	case Binary:
		walk(x.L, f)
		walk(x.R, f)
	}
}
