package diagnosis

import "github.com/abhisek/bcdetect/internal/features"

// Label is the diagnosis derived from the classifier's class output.
type Label string

const (
	LabelBenign    Label = "Benign"
	LabelMalignant Label = "Malignant"
)

// malignantClass is the raw class the model emits for malignant tumors.
const malignantClass int64 = 1

// LabelFromRaw maps a raw class to a Label: 1 is Malignant, every other
// class is Benign.
func LabelFromRaw(raw int64) Label {
	if raw == malignantClass {
		return LabelMalignant
	}
	return LabelBenign
}

// Result is the outcome of one prediction. It lives for one request.
type Result struct {
	Label Label
	Raw   int64 // Class value the classifier returned
}

// Completeness reports whether every required field was filled in.
type Completeness int

const (
	Complete Completeness = iota
	Incomplete
)

func (c Completeness) String() string {
	if c == Complete {
		return "complete"
	}
	return "incomplete"
}

// State is the position of a request in its cycle.
//
//	AwaitingInput -> Complete -> Predicting -> Decided | Failed
//
// An incomplete or invalid submission stays in AwaitingInput.
type State int

const (
	StateAwaitingInput State = iota
	StateComplete
	StatePredicting
	StateDecided
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateAwaitingInput:
		return "awaiting-input"
	case StateComplete:
		return "complete"
	case StatePredicting:
		return "predicting"
	case StateDecided:
		return "decided"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is everything a surface needs to render one submission.
type Outcome struct {
	RequestID string
	State     State
	Vector    features.Vector // Collected values; nil if collection failed
	Missing   []string        // Required fields still at the empty sentinel
	Result    *Result         // Non-nil only when State == StateDecided
	Guidance  *GuidanceBlock  // Non-nil only when State == StateDecided
	Err       error           // Non-nil for AwaitingInput with a message, and for Failed
}
