package diagnosis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/bcdetect/internal/features"
)

// IncompleteMessage is shown when a required field is still empty.
const IncompleteMessage = "Please fill in all fields before making a prediction."

// ErrIncomplete indicates at least one required field equals the empty
// sentinel. The user can fix it and resubmit.
type ErrIncomplete struct {
	Missing []string
}

func (e *ErrIncomplete) Error() string {
	return IncompleteMessage
}

// ErrInvalidInput indicates a form value that could not be accepted
// (unparsable, below its minimum, or not finite).
type ErrInvalidInput struct {
	Feature string
	Err     error
}

func (e *ErrInvalidInput) Error() string {
	return fmt.Sprintf("invalid value for %q: %v", e.Feature, e.Err)
}

func (e *ErrInvalidInput) Unwrap() error { return e.Err }

// ErrInvalidFeatureVector indicates a vector that does not match the schema.
// This is drift between the caller and the trained model, not a user error.
type ErrInvalidFeatureVector struct {
	Size    int
	Want    int
	Missing []string
	Extra   []string
	Reason  string
}

func (e *ErrInvalidFeatureVector) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid feature vector: %d features, want %d", e.Size, e.Want)
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, "; missing %s", strings.Join(e.Missing, ", "))
	}
	if len(e.Extra) > 0 {
		fmt.Fprintf(&b, "; unexpected %s", strings.Join(e.Extra, ", "))
	}
	if e.Reason != "" {
		b.WriteString("; ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

// ErrClassifierFailure wraps any error raised by the classifier.
type ErrClassifierFailure struct {
	Err error
}

func (e *ErrClassifierFailure) Error() string {
	return fmt.Sprintf("classifier failure: %v", e.Err)
}

func (e *ErrClassifierFailure) Unwrap() error { return e.Err }

// ErrorKind tags an error for exhaustive handling by surfaces.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindIncomplete
	KindInvalidInput
	KindClassifierFailure
	KindUnknownFeature
	KindInvalidFeatureVector
	KindUnexpected
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindIncomplete:
		return "incomplete"
	case KindInvalidInput:
		return "invalid-input"
	case KindClassifierFailure:
		return "classifier-failure"
	case KindUnknownFeature:
		return "unknown-feature"
	case KindInvalidFeatureVector:
		return "invalid-feature-vector"
	default:
		return "unexpected"
	}
}

// KindOf classifies err.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	var (
		incomplete *ErrIncomplete
		invalidIn  *ErrInvalidInput
		clf        *ErrClassifierFailure
		unknown    *features.ErrUnknownFeature
		invalidVec *ErrInvalidFeatureVector
	)
	switch {
	case errors.As(err, &incomplete):
		return KindIncomplete
	case errors.As(err, &invalidIn):
		return KindInvalidInput
	case errors.As(err, &clf):
		return KindClassifierFailure
	case errors.As(err, &unknown):
		return KindUnknownFeature
	case errors.As(err, &invalidVec):
		return KindInvalidFeatureVector
	default:
		return KindUnexpected
	}
}

// IsFatal reports whether err signals schema drift or a bug rather than
// something the user can fix by resubmitting.
func IsFatal(err error) bool {
	switch KindOf(err) {
	case KindNone, KindIncomplete, KindInvalidInput, KindClassifierFailure:
		return false
	default:
		return true
	}
}

// UserMessage renders err for display next to the form.
func UserMessage(err error) string {
	switch KindOf(err) {
	case KindNone:
		return ""
	case KindIncomplete:
		return IncompleteMessage
	case KindInvalidInput:
		return err.Error()
	case KindClassifierFailure:
		var clf *ErrClassifierFailure
		errors.As(err, &clf)
		return fmt.Sprintf("Error in prediction: %v", clf.Err)
	default:
		return fmt.Sprintf("Unexpected error: %v", err)
	}
}
