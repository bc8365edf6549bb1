package diagnosis

import (
	"errors"
	"fmt"
	"math"

	"github.com/abhisek/bcdetect/internal/features"
)

// Constraints are passed to the provider alongside each field name.
type Constraints struct {
	Min     *float64
	Default *float64
}

// InputProvider yields one scalar per named field. Form widgets, HTTP
// requests and input files all implement it.
type InputProvider interface {
	NumberInput(name string, c Constraints) (float64, error)
}

// ValuesProvider serves values from a map. Absent names read as the empty
// sentinel.
type ValuesProvider map[string]float64

func (p ValuesProvider) NumberInput(name string, _ Constraints) (float64, error) {
	return p[name], nil
}

// CollectInputs asks p for every feature in schema order and reports
// whether all required features were filled in.
func CollectInputs(schema *features.Schema, p InputProvider) (features.Vector, Completeness, error) {
	specs := schema.Specs()
	vec := make(features.Vector, len(specs))
	for _, sp := range specs {
		v, err := p.NumberInput(sp.Name, Constraints{Min: sp.Min, Default: sp.Default})
		if err != nil {
			return nil, Incomplete, &ErrInvalidInput{Feature: sp.Name, Err: err}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, Incomplete, &ErrInvalidInput{Feature: sp.Name, Err: errors.New("value is not a finite number")}
		}
		if sp.Min != nil && v < *sp.Min {
			return nil, Incomplete, &ErrInvalidInput{Feature: sp.Name, Err: fmt.Errorf("%g is below the minimum %g", v, *sp.Min)}
		}
		vec[sp.Name] = v
	}

	if len(MissingFields(schema, vec)) > 0 {
		return vec, Incomplete, nil
	}
	return vec, Complete, nil
}

// MissingFields lists required features whose value is the empty sentinel,
// in schema order.
func MissingFields(schema *features.Schema, vec features.Vector) []string {
	var missing []string
	for _, sp := range schema.Specs() {
		if sp.Required && vec[sp.Name] == features.EmptySentinel {
			missing = append(missing, sp.Name)
		}
	}
	return missing
}
