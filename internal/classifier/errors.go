package classifier

import "fmt"

// ErrModelNotFound indicates the configured model file does not exist.
type ErrModelNotFound struct {
	Path string
	Err  error
}

func (e *ErrModelNotFound) Error() string {
	return fmt.Sprintf("model file not found: %s", e.Path)
}

func (e *ErrModelNotFound) Unwrap() error { return e.Err }

// ErrRuntimeUnavailable indicates the onnxruntime shared library could not
// be located or initialized.
type ErrRuntimeUnavailable struct {
	Err error
}

func (e *ErrRuntimeUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("onnxruntime unavailable: %v", e.Err)
	}
	return "onnxruntime unavailable"
}

func (e *ErrRuntimeUnavailable) Unwrap() error { return e.Err }

// ErrShapeMismatch indicates a row whose width differs from the model input.
type ErrShapeMismatch struct {
	Want int
	Got  int
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("row has %d features, model expects %d", e.Got, e.Want)
}

// ErrNoResponse is returned by MockClassifier when its queue is empty.
type ErrNoResponse struct{}

func (e *ErrNoResponse) Error() string {
	return "classifier has no response queued"
}
