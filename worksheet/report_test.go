package worksheet_test

import (
	"strings"
	"testing"

	"github.com/ezachrisen/tangent"
	"github.com/ezachrisen/tangent/worksheet"
	"github.com/matryer/is"
)

func TestReportString(t *testing.T) {
	rep, err := load(t, "quotient.yaml").Run()
	if err != nil {
		t.Fatal(err)
	}

	s := rep.String()
	for _, want := range []string{
		"QUOTIENT",
		"(x + y * x) / z",
		"(1 + y) / z",
		"x * z",
		"float",
		"-24",
		"-16",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("report does not contain %q:\n%s", want, s)
		}
	}
}

func TestReportMarkdown(t *testing.T) {
	is := is.New(t)

	rep, err := load(t, "quotient.yaml").Run()
	is.NoErr(err)

	md, err := rep.Markdown()
	is.NoErr(err)

	for _, want := range []string{
		"# quotient\n",
		"| Expression | d/d | Result | Type | Value |",
		"| w |  | `(x + y * x) / z` | float | -24 |",
		"| w | x | `(1 + y) / z` | float | -3 |",
		"| product | y | `x * z` | float | -8 |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown does not contain %q:\n%s", want, md)
		}
	}
}

func TestReportMarkdownEscapes(t *testing.T) {
	is := is.New(t)

	rep := worksheet.Report{
		Name: "bits",
		Rows: []worksheet.Row{
			{ID: "or", Result: "a | b", Value: tangent.IntValue(7)},
		},
	}
	md, err := rep.Markdown()
	is.NoErr(err)
	is.True(strings.Contains(md, "`a \\| b`"))
	is.True(strings.Contains(md, "| int | 7 |"))
}

func TestReportFind(t *testing.T) {
	is := is.New(t)

	rep, err := load(t, "quotient.yaml").Run()
	is.NoErr(err)

	row, ok := rep.Find("w", "y")
	is.True(ok)
	is.Equal(row.Expr, "(x + y * x) / z")
	is.Equal(row.Result, "x / z")

	_, ok = rep.Find("w", "q")
	is.True(!ok)
	_, ok = rep.Find("v", "")
	is.True(!ok)
}
