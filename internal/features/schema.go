package features

import (
	"fmt"
	"math"
)

// Spec describes one model input.
type Spec struct {
	Name     string
	Min      *float64 // Lower bound accepted from the form. nil means unbounded.
	Default  *float64 // Pre-fill value. nil means the field starts empty.
	Required bool     // Whether the empty sentinel blocks a prediction.
}

// Vector maps feature name to value. A vector handed to the classifier
// carries exactly one finite entry per schema feature.
type Vector map[string]float64

// Row is a vector laid out in schema order.
type Row []float64

// Schema is the ordered set of features the classifier was trained on.
// It is built once and never mutated.
type Schema struct {
	specs []Spec
	index map[string]int
}

// NewSchema builds a schema from specs, rejecting empty or duplicate names.
func NewSchema(specs []Spec) (*Schema, error) {
	index := make(map[string]int, len(specs))
	copied := make([]Spec, len(specs))
	for i, s := range specs {
		if s.Name == "" {
			return nil, fmt.Errorf("feature %d: empty name", i)
		}
		if _, dup := index[s.Name]; dup {
			return nil, fmt.Errorf("feature %q: duplicate name", s.Name)
		}
		index[s.Name] = i
		copied[i] = s
	}
	return &Schema{specs: copied, index: index}, nil
}

// Len returns the number of features.
func (s *Schema) Len() int {
	return len(s.specs)
}

// Names returns feature names in training order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.specs))
	for i, sp := range s.specs {
		names[i] = sp.Name
	}
	return names
}

// Specs returns a copy of the specs in training order.
func (s *Schema) Specs() []Spec {
	out := make([]Spec, len(s.specs))
	copy(out, s.specs)
	return out
}

// SpecFor returns the spec for name.
func (s *Schema) SpecFor(name string) (Spec, error) {
	i, ok := s.index[name]
	if !ok {
		return Spec{}, &ErrUnknownFeature{Name: name}
	}
	return s.specs[i], nil
}

// Index returns the training position of name, or -1.
func (s *Schema) Index(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}
	return -1
}

// Defaults returns a vector holding every feature's default value.
// Features without a default are omitted.
func (s *Schema) Defaults() Vector {
	v := make(Vector, len(s.specs))
	for _, sp := range s.specs {
		if sp.Default != nil {
			v[sp.Name] = *sp.Default
		}
	}
	return v
}

// Row lays v out in schema order. v must hold exactly the schema's names.
func (s *Schema) Row(v Vector) (Row, error) {
	if len(v) != len(s.specs) {
		return nil, fmt.Errorf("vector has %d features, schema has %d", len(v), len(s.specs))
	}
	row := make(Row, len(s.specs))
	for i, sp := range s.specs {
		val, ok := v[sp.Name]
		if !ok {
			return nil, fmt.Errorf("vector is missing %q", sp.Name)
		}
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, fmt.Errorf("feature %q is not finite", sp.Name)
		}
		row[i] = val
	}
	return row, nil
}
