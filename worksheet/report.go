package worksheet

import (
	"strings"

	"github.com/ezachrisen/tangent"
	"github.com/gobuffalo/plush"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Report is the outcome of running a worksheet: one row for every
// expression, followed by one row for each of its derivatives.
type Report struct {
	Name string
	Rows []Row
}

// Row is the value of an expression, or of its derivative with respect to
// the variable Wrt.
type Row struct {
	ID     string        // id of the expression
	Expr   string        // the expression
	Wrt    string        // variable the derivative is taken with respect to; empty for the expression itself
	Result string        // the expression, or its reduced derivative
	Value  tangent.Value // value of Result
}

// Find returns the row for the expression id, or its derivative with
// respect to wrt if wrt is not empty.
func (r *Report) Find(id, wrt string) (Row, bool) {
	return lo.Find(r.Rows, func(row Row) bool {
		return row.ID == id && row.Wrt == wrt
	})
}

func (r *Report) String() string {
	tw := table.NewWriter()
	tw.SetTitle("\n" + strings.ToUpper(r.Name) + "\n")
	tw.AppendHeader(table.Row{"\nExpression", "\nd/d", "\nResult", "Result\nType", "\nValue"})

	maxWidthOfResultColumn := 60
	for _, row := range r.Rows {
		id := row.ID
		if row.Wrt != "" {
			id = "  " + row.ID
		}
		tw.AppendRow(table.Row{id, row.Wrt, row.Result, row.Value.Type, row.Value})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1},
		{Number: 2},
		{Number: 3, WidthMax: maxWidthOfResultColumn},
		{Number: 4},
		{Number: 5, Align: text.AlignRight},
	})

	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)
	return tw.Render()
}

const markdownTemplate = `# <%= raw(name) %>

| Expression | d/d | Result | Type | Value |
|---|---|---|---|---|
<%= for (row) in rows { %>| <%= raw(row.ID) %> | <%= raw(row.Wrt) %> | ` + "`" + `<%= raw(row.Result) %>` + "`" + ` | <%= raw(row.Type) %> | <%= raw(row.Value) %> |
<% } %>`

// markdownRow is a Row with every field formatted for a Markdown table cell.
type markdownRow struct {
	ID     string
	Wrt    string
	Result string
	Type   string
	Value  string
}

// Markdown renders the report as a Markdown document with a single table.
func (r *Report) Markdown() (string, error) {
	cell := strings.NewReplacer("|", `\|`, "\n", " ")
	rows := lo.Map(r.Rows, func(row Row, _ int) markdownRow {
		return markdownRow{
			ID:     cell.Replace(row.ID),
			Wrt:    cell.Replace(row.Wrt),
			Result: cell.Replace(row.Result),
			Type:   row.Value.Type.String(),
			Value:  row.Value.String(),
		}
	})

	ctx := plush.NewContext()
	ctx.Set("name", r.Name)
	ctx.Set("rows", rows)
	out, err := plush.Render(markdownTemplate, ctx)
	if err != nil {
		return "", errors.Wrap(err, "rendering markdown report")
	}
	return out, nil
}
