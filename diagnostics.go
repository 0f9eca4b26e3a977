package tangent

import (
	"fmt"
	"strings"

	"github.com/Delta456/box-cli-maker/v2"
	"github.com/alexeyco/simpletable"
	"github.com/ezachrisen/tangent/ident"
)

// ValueSource tells where the value of a node in a trace came from.
type ValueSource int

const (
	// Input values are held by leaves.
	Input ValueSource = iota
	// Constant values are the identity elements Zero and One.
	Constant
	// Evaluated values were computed by an operator.
	Evaluated
)

func (s ValueSource) String() string {
	switch s {
	case Input:
		return "Input"
	case Constant:
		return "Constant"
	case Evaluated:
		return "Evaluated"
	}
	return fmt.Sprintf("ValueSource(%d)", int(s))
}

// Diagnostics records the value of every node of an evaluated tree.
type Diagnostics struct {
	Expr     string // infix text of the sub-tree
	Kind     string // kind of the node
	Value    Value
	Source   ValueSource
	Children []Diagnostics
	Offset   int // position of the node in a pre-order walk of the tree
}

// Trace evaluates the expression like Eval, and records the value of every
// node along the way. Identity elements are reported with the type they take
// in their context.
func (e *Expr) Trace() (d *Diagnostics, err error) {
	defer recoverEval(&err)

	want, err := rootType(e.root, e.typ)
	if err != nil {
		return nil, err
	}

	offset := 0
	root, err := trace(e.root, want, &offset)
	if err != nil {
		return nil, err
	}
	root.Value, err = convert(root.Value, e.typ)
	if err != nil {
		return nil, err
	}
	return &root, nil
}

func trace(n Node, want Type, offset *int) (Diagnostics, error) {
	d := Diagnostics{
		Expr:   Format(n),
		Kind:   n.Kind(),
		Offset: *offset,
	}
	*offset++

	switch x := n.(type) {
	case Leaf, Identity:
		v, err := eval(x, want)
		if err != nil {
			return d, err
		}
		d.Value = v
		d.Source = Constant
		if _, ok := x.(Leaf); ok {
			d.Source = Input
		}
		return d, nil
	}

	ctx, err := operandContexts(n, want)
	if err != nil {
		return d, err
	}

	d.Source = Evaluated
	var vals []Value
	for i, c := range childrenOf(n) {
		cd, err := trace(c, ctx[i], offset)
		if err != nil {
			return d, err
		}
		d.Children = append(d.Children, cd)
		vals = append(vals, cd.Value)
	}

	switch x := n.(type) {
	case Unary:
		d.Value, err = unary(x.Op, vals[0])
	case Binary:
		d.Value, err = binary(x.Op, vals[0], vals[1])
	}
	return d, err
}

// AsString renders the diagnostics as a report. If e is not nil, the report
// includes the expression and a table of its variables.
func (d *Diagnostics) AsString(e *Expr) string {
	Box := box.New(box.Config{Px: 2, Py: 1, Type: "Double", Color: "Cyan", TitlePos: "Top", ContentAlign: "Left"})

	s := strings.Builder{}
	if e != nil {
		s.WriteString("Expression:\n")
		s.WriteString("-----------\n")
		s.WriteString(wordWrap(e.String(), 100))
		s.WriteString("\n\n")
	}

	t := d.diagnosticTable()
	s.WriteString("Evaluation State:\n")
	s.WriteString("-----------------\n")
	s.WriteString(t.String())

	if e != nil {
		if vt := variableTable(e.root); vt != nil {
			s.WriteString("\n\n")
			s.WriteString("Input Data:\n")
			s.WriteString("-----------\n")
			s.WriteString(vt.String())
		}
	}
	return Box.String("TANGENT EVALUATION DIAGNOSTIC REPORT", s.String())
}

// variableTable lists each variable of the tree once, with its value.
// It returns nil if the tree has no variables.
func variableTable(n Node) *simpletable.Table {
	leaves := map[ident.Ident]Leaf{}
	walk(n, func(n Node) {
		if l, ok := n.(Leaf); ok {
			if _, seen := leaves[l.Tag.ID]; !seen {
				leaves[l.Tag.ID] = l
			}
		}
	})

	vars := Variables(n)
	if len(vars) == 0 {
		return nil
	}

	table := simpletable.New()
	table.Header = &simpletable.Header{
		Cells: []*simpletable.Cell{
			{Align: simpletable.AlignCenter, Text: "Name"},
			{Align: simpletable.AlignCenter, Text: "Type"},
			{Align: simpletable.AlignCenter, Text: "Value"},
		},
	}

	for _, v := range vars {
		l := leaves[v.ID]
		r := []*simpletable.Cell{
			{Text: leafName(l)},
			{Text: fmt.Sprintf("%s", l.Value.Type)},
			{Align: simpletable.AlignRight, Text: l.Value.String()},
		}
		table.Body.Cells = append(table.Body.Cells, r)
	}

	table.SetStyle(simpletable.StyleUnicode)
	return table
}

func (d *Diagnostics) diagnosticTable() *simpletable.Table {
	table := simpletable.New()
	table.Header = &simpletable.Header{
		Cells: []*simpletable.Cell{
			{Align: simpletable.AlignCenter, Text: "Node"},
			{Align: simpletable.AlignCenter, Text: "Expression"},
			{Align: simpletable.AlignCenter, Text: "Type"},
			{Align: simpletable.AlignCenter, Text: "Value"},
			{Align: simpletable.AlignCenter, Text: "Source"},
		},
	}

	for _, cd := range flattenDiagnostics(*d) {
		r := []*simpletable.Cell{
			{Align: simpletable.AlignRight, Text: fmt.Sprintf("%d", cd.Offset)},
			{Text: cd.Expr},
			{Text: fmt.Sprintf("%s", cd.Value.Type)},
			{Align: simpletable.AlignRight, Text: cd.Value.String()},
			{Text: cd.Source.String()},
		}
		table.Body.Cells = append(table.Body.Cells, r)
	}

	table.SetStyle(simpletable.StyleUnicode)
	return table
}

// flattenDiagnostics lists d and all of its descendants in pre-order, which
// is the order of their offsets.
func flattenDiagnostics(d Diagnostics) []Diagnostics {
	l := []Diagnostics{d}
	for _, c := range d.Children {
		l = append(l, flattenDiagnostics(c)...)
	}
	return l
}

func wordWrap(text string, lineWidth int) string {
	words := strings.Fields(strings.TrimSpace(text))
	if len(words) == 0 {
		return text
	}
	wrapped := words[0]
	spaceLeft := lineWidth - len(wrapped)
	for _, word := range words[1:] {
		if len(word)+1 > spaceLeft {
			wrapped += "\n" + word
			spaceLeft = lineWidth - len(word)
		} else {
			wrapped += " " + word
			spaceLeft -= 1 + len(word)
		}
	}
	return wrapped
}
