package features

import "fmt"

// ErrUnknownFeature indicates a lookup for a name the schema does not define.
// It points at drift between the caller and the trained model's inputs.
type ErrUnknownFeature struct {
	Name string
}

func (e *ErrUnknownFeature) Error() string {
	return fmt.Sprintf("unknown feature %q", e.Name)
}
