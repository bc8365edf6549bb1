package classifier

import (
	"context"

	"github.com/abhisek/bcdetect/internal/features"
)

// Classifier is a trained binary model.
type Classifier interface {
	// Predict returns one class label per row. Rows must be laid out in the
	// schema order the model was trained with.
	Predict(ctx context.Context, rows []features.Row) ([]int64, error)

	// ModelID identifies the loaded model for logs and headers.
	ModelID() string
}
