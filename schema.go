package tangent

import (
	"fmt"
	"strings"
)

// Schema defines the variables (names) and their data types that expression
// sources may refer to. Front ends use it to turn names into typed leaves.
type Schema struct {
	// Identifier for the schema. Useful for the hosting application; not used by tangent internally.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`
	// User-friendly name for the schema
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// A user-friendly description of the schema
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// List of data elements supported by this schema
	Elements []DataElement `json:"elements,omitempty" yaml:"elements,omitempty"`
}

// DataElement defines a named variable in a schema
type DataElement struct {
	// Short, user-friendly name of the variable. This is the name
	// that will be used in expressions to refer to data passed in.
	Name string `json:"name"`

	// One of Int, Float, Decimal or Bool.
	Type Type `json:"type"`

	// Optional description of the variable.
	Description string `json:"description"`
}

func (s *Schema) String() string {
	x := strings.Builder{}
	x.WriteString(s.ID)
	if s.Name != "" {
		x.WriteString("  '" + s.Name + "'")
	}
	x.WriteString("\n")
	for _, e := range s.Elements {
		x.WriteString(e.String())
		x.WriteString("\n")
	}

	return x.String()
}

func (e *DataElement) String() string {
	return fmt.Sprintf("  %s (%s)", e.Name, e.Type)
}

// Lookup returns the element with the given name.
func (s *Schema) Lookup(name string) (DataElement, bool) {
	for _, e := range s.Elements {
		if e.Name == name {
			return e, true
		}
	}
	return DataElement{}, false
}

// Validate checks that every element has a name, a numeric or bool type,
// and that no name is used twice.
func (s *Schema) Validate() error {
	seen := map[string]bool{}
	for i, e := range s.Elements {
		if e.Name == "" {
			return fmt.Errorf("schema %s: element %d has no name", s.ID, i)
		}
		if seen[e.Name] {
			return fmt.Errorf("schema %s: element %s is declared twice", s.ID, e.Name)
		}
		seen[e.Name] = true
		switch e.Type.(type) {
		case Int, Float, Decimal, Bool:
		default:
			return fmt.Errorf("schema %s: element %s has unsupported type %v", s.ID, e.Name, e.Type)
		}
	}
	return nil
}
