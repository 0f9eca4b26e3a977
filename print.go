package tangent

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/ezachrisen/tangent/ident"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
)

// maxTreeDepth limits how deep Tree renders.
const maxTreeDepth = 20

// Format renders the tree in infix notation, using Go operator precedence
// and only the parentheses the precedence requires.
// Leaves are shown by their variable name, Zero and One as 0 and 1.
func Format(n Node) string {
	var sb strings.Builder
	format(&sb, n)
	return sb.String()
}

func format(sb *strings.Builder, n Node) {
	switch x := n.(type) {
	case Leaf:
		sb.WriteString(leafName(x))
	case Identity:
		if x == One {
			sb.WriteString("1")
		} else {
			sb.WriteString("0")
		}
	case Unary:
		sb.WriteString(x.Op.Symbol())
		switch x.X.(type) {
		case Leaf, Identity:
			format(sb, x.X)
		default:
			sb.WriteString("(")
			format(sb, x.X)
			sb.WriteString(")")
		}
	case Binary:
		p := x.Op.precedence()
		formatOperand(sb, x.L, func(q int) bool { return q < p })
		sb.WriteString(" ")
		sb.WriteString(x.Op.Symbol())
		sb.WriteString(" ")
		// operators are left-associative, so a right operand of equal
		// precedence needs parentheses
		formatOperand(sb, x.R, func(q int) bool { return q <= p })
	case nil:
		sb.WriteString("<nil>")
	default:
		fmt.Fprintf(sb, "%v", n)
	}
}

func formatOperand(sb *strings.Builder, n Node, paren func(int) bool) {
	b, ok := n.(Binary)
	if !ok || !paren(b.Op.precedence()) {
		format(sb, n)
		return
	}
	sb.WriteString("(")
	format(sb, n)
	sb.WriteString(")")
}

// leafName is the variable name of the leaf, or its value if the leaf
// stands for an unnamed constant.
func leafName(l Leaf) string {
	if l.Tag.Name == "" || strings.HasPrefix(l.Tag.Name, "#") {
		return l.Value.String()
	}
	return l.Tag.Name
}

// label is the one-line description of a node used by Tree and Table.
func label(n Node) string {
	switch x := n.(type) {
	case Leaf:
		if l := leafName(x); l != x.Value.String() {
			return fmt.Sprintf("%s = %s", l, x.Value)
		}
		return x.Value.String()
	case nil:
		return "<nil>"
	}
	return n.Kind()
}

// Tree returns a multi-line drawing of the tree, one node per line.
//
//	Div
//	├── Add
//	│   ├── x = 8
//	│   └── Mul
//	│       ├── y = 2
//	│       └── x = 8
//	└── z = -1
func (e *Expr) Tree() string {
	if e == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(label(e.root))
	sb.WriteString("\n")
	buildTree(&sb, e.root, "", 0)
	return sb.String()
}

// buildTree recursively writes the children of n with tree characters
// (├──, └──, │). depth limits recursion to maxTreeDepth levels.
func buildTree(sb *strings.Builder, n Node, prefix string, depth int) {
	if depth >= maxTreeDepth {
		return
	}
	children := childrenOf(n)
	for i, child := range children {
		var connector, childPrefix string
		if i == len(children)-1 {
			connector = "└── "
			childPrefix = "    "
		} else {
			connector = "├── "
			childPrefix = "│   "
		}
		sb.WriteString(prefix)
		sb.WriteString(connector)
		sb.WriteString(label(child))
		sb.WriteString("\n")
		buildTree(sb, child, prefix+childPrefix, depth+1)
	}
}

func childrenOf(n Node) []Node {
	switch x := n.(type) {
	case Unary:
		return []Node{x.X}
	case Binary:
		return []Node{x.L, x.R}
	}
	return nil
}

// Table renders every node of the expression in a table, parents before
// children, with the type the node evaluates to and its infix text.
func (e *Expr) Table() string {
	tw := table.NewWriter()
	tw.SetTitle("\nTANGENT EXPRESSION\n")
	tw.AppendHeader(table.Row{"\nNode", "\nType", "\nExpression"})

	maxWidthOfExpressionColumn := 40
	rows, maxExprLength := nodesToRows(e.root, 0)
	for _, r := range rows {
		tw.AppendRow(r)
	}

	vars := lo.Map(Variables(e.root), func(t ident.Tag, _ int) string { return t.Name })
	tw.AppendFooter(table.Row{
		fmt.Sprintf("%s nodes", humanize.Comma(int64(Size(e.root)))),
		fmt.Sprintf("depth %s", humanize.Comma(int64(Depth(e.root)))),
		strings.Join(vars, ", "),
	})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1},
		{Number: 2},
		{Number: 3, WidthMax: maxWidthOfExpressionColumn},
	})

	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	style.Format.Footer = text.FormatDefault
	// Only add the row separator if the expression is wide enough to wrap.
	if maxExprLength > maxWidthOfExpressionColumn {
		style.Options.SeparateRows = true
	}
	tw.SetStyle(style)
	return tw.Render()
}

func nodesToRows(n Node, depth int) ([]table.Row, int) {
	indent := strings.Repeat("  ", depth)
	expr := Format(n)

	typ := "?"
	if t, err := TypeOf(n); err == nil {
		typ = t.String()
	}

	rows := []table.Row{{indent + label(n), typ, expr}}
	maxExprLength := len(expr)
	if depth >= maxTreeDepth {
		return rows, maxExprLength
	}
	for _, c := range childrenOf(n) {
		cr, maxLen := nodesToRows(c, depth+1)
		if maxLen > maxExprLength {
			maxExprLength = maxLen
		}
		rows = append(rows, cr...)
	}
	return rows, maxExprLength
}
