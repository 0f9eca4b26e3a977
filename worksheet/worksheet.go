// Package worksheet runs problem documents: a set of variables with values,
// and a list of expressions to evaluate and differentiate.
//
// A worksheet is written in YAML:
//
//	name: quotient
//	variables:
//	  - {name: x, type: float, value: 8}
//	  - {name: y, type: float, value: 2}
//	  - {name: z, type: float, value: -1}
//	expressions:
//	  - id: w
//	    expr: (x + y * x) / z
//	    derivatives: [y, z]
//
// Expressions are CEL source (see package cel). Run evaluates every
// expression, and every derivative listed for it, and returns a Report.
package worksheet

import (
	"io"
	"log"
	"os"

	"github.com/ezachrisen/tangent"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalid is returned by Load for documents that are well-formed YAML
	// but not a valid worksheet.
	ErrInvalid = errors.New("invalid worksheet")

	// ErrMismatch is returned by Run when the secondary evaluator does not
	// agree with native evaluation.
	ErrMismatch = errors.New("evaluators disagree")
)

// Worksheet is a problem document.
type Worksheet struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	DefaultType string       `yaml:"default_type,omitempty"` // type of results built only of 0 and 1
	Variables   []Variable   `yaml:"variables"`
	Expressions []Expression `yaml:"expressions"`
}

// Variable declares a variable and binds its value.
type Variable struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"` // int, float, decimal or bool
	Value       any    `yaml:"value"`
	Description string `yaml:"description,omitempty"`
}

// Expression is an expression to evaluate, and the variables to
// differentiate it with respect to.
type Expression struct {
	ID          string   `yaml:"id"`
	Expr        string   `yaml:"expr"`
	Derivatives []string `yaml:"derivatives,omitempty"`
}

// Load reads and validates a worksheet.
func Load(r io.Reader) (*Worksheet, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var w Worksheet
	if err := dec.Decode(&w); err != nil {
		return nil, errors.Wrap(err, "decoding worksheet")
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &w, nil
}

// LoadFile reads and validates the worksheet in the named file.
func LoadFile(path string) (*Worksheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening worksheet")
	}
	defer f.Close()

	w, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return w, nil
}

// Validate checks that variable names and expression IDs are unique, that
// every variable has a known type and a value, and that every derivative
// is taken with respect to a declared variable.
func (w *Worksheet) Validate() error {
	if _, err := w.Schema(); err != nil {
		return err
	}

	vars := map[string]bool{}
	for _, v := range w.Variables {
		if v.Value == nil {
			return errors.Wrapf(ErrInvalid, "variable %s has no value", v.Name)
		}
		vars[v.Name] = true
	}

	if w.DefaultType != "" {
		if _, err := tangent.ParseType(w.DefaultType); err != nil {
			return errors.Wrapf(ErrInvalid, "default type: %v", err)
		}
	}

	ids := map[string]bool{}
	for i, e := range w.Expressions {
		if e.ID == "" {
			return errors.Wrapf(ErrInvalid, "expression %d has no id", i)
		}
		if ids[e.ID] {
			return errors.Wrapf(ErrInvalid, "expression id %s is used twice", e.ID)
		}
		ids[e.ID] = true
		if e.Expr == "" {
			return errors.Wrapf(ErrInvalid, "expression %s is empty", e.ID)
		}
		for _, d := range e.Derivatives {
			if !vars[d] {
				return errors.Wrapf(ErrInvalid, "expression %s: derivative with respect to undeclared variable %s", e.ID, d)
			}
		}
	}
	return nil
}

// Schema returns the schema describing the worksheet's variables.
func (w *Worksheet) Schema() (tangent.Schema, error) {
	s := tangent.Schema{
		ID:          w.Name,
		Name:        w.Name,
		Description: w.Description,
	}
	for _, v := range w.Variables {
		t, err := tangent.ParseType(v.Type)
		if err != nil {
			return tangent.Schema{}, errors.Wrapf(ErrInvalid, "variable %s: %v", v.Name, err)
		}
		s.Elements = append(s.Elements, tangent.DataElement{
			Name:        v.Name,
			Type:        t,
			Description: v.Description,
		})
	}
	if err := s.Validate(); err != nil {
		return tangent.Schema{}, errors.Wrap(ErrInvalid, err.Error())
	}
	return s, nil
}

// Data returns the variable values keyed by name.
func (w *Worksheet) Data() map[string]any {
	data := make(map[string]any, len(w.Variables))
	for _, v := range w.Variables {
		data[v.Name] = v.Value
	}
	return data
}

// RunOptions holds the settings used by Run.
type RunOptions struct {
	Evaluator tangent.Evaluator
	Logger    *log.Logger
}

// Option sets a run option.
type Option func(o *RunOptions)

// WithEvaluator evaluates every result a second time with ev, and fails
// the run if the values differ.
// Default: no second evaluation.
func WithEvaluator(ev tangent.Evaluator) Option {
	return func(o *RunOptions) {
		o.Evaluator = ev
	}
}

// WithLogger logs progress to l.
// Default: no logging.
func WithLogger(l *log.Logger) Option {
	return func(o *RunOptions) {
		o.Logger = l
	}
}

func (o *RunOptions) logf(format string, args ...any) {
	if o.Logger != nil {
		o.Logger.Printf(format, args...)
	}
}
