package diagnosis

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/bcdetect/internal/classifier"
	"github.com/abhisek/bcdetect/internal/features"
)

// Service validates form input and runs the classifier. The schema and
// classifier are fixed at construction and shared read-only by every request.
type Service struct {
	schema     *features.Schema
	classifier classifier.Classifier
	logger     *zap.Logger
}

// NewService creates a diagnosis service. A nil logger disables logging.
func NewService(schema *features.Schema, c classifier.Classifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		schema:     schema,
		classifier: c,
		logger:     logger.Named("diagnosis"),
	}
}

// Schema returns the feature schema the service validates against.
func (s *Service) Schema() *features.Schema {
	return s.schema
}

// ModelID returns the classifier's model identifier.
func (s *Service) ModelID() string {
	return s.classifier.ModelID()
}

// Predict classifies a complete vector. The vector must carry exactly the
// schema's features; it is laid out in training order before the call.
func (s *Service) Predict(ctx context.Context, vec features.Vector) (*Result, error) {
	if err := s.checkVector(vec); err != nil {
		return nil, err
	}

	row, err := s.schema.Row(vec)
	if err != nil {
		return nil, &ErrInvalidFeatureVector{Size: len(vec), Want: s.schema.Len(), Reason: err.Error()}
	}

	labels, err := s.classifier.Predict(ctx, []features.Row{row})
	if err != nil {
		return nil, &ErrClassifierFailure{Err: err}
	}
	if len(labels) == 0 {
		return nil, &ErrClassifierFailure{Err: errors.New("classifier returned no labels")}
	}

	raw := labels[0]
	return &Result{Label: LabelFromRaw(raw), Raw: raw}, nil
}

func (s *Service) checkVector(vec features.Vector) error {
	var missing, extra []string
	for _, name := range s.schema.Names() {
		if _, ok := vec[name]; !ok {
			missing = append(missing, name)
		}
	}
	for name := range vec {
		if s.schema.Index(name) < 0 {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)

	if len(vec) != s.schema.Len() || len(missing) > 0 || len(extra) > 0 {
		return &ErrInvalidFeatureVector{
			Size:    len(vec),
			Want:    s.schema.Len(),
			Missing: missing,
			Extra:   extra,
		}
	}

	for _, name := range s.schema.Names() {
		if v := vec[name]; math.IsNaN(v) || math.IsInf(v, 0) {
			return &ErrInvalidFeatureVector{
				Size:   len(vec),
				Want:   s.schema.Len(),
				Reason: "feature " + name + " is not finite",
			}
		}
	}
	return nil
}

// Submit runs one full collect, validate, predict cycle for a submission.
func (s *Service) Submit(ctx context.Context, p InputProvider) Outcome {
	out := Outcome{
		RequestID: uuid.New().String(),
		State:     StateAwaitingInput,
	}
	log := s.logger.With(zap.String("request_id", out.RequestID))

	vec, completeness, err := CollectInputs(s.schema, p)
	if err != nil {
		out.Err = err
		s.report(log, out)
		return out
	}
	out.Vector = vec

	if completeness == Incomplete {
		out.Missing = MissingFields(s.schema, vec)
		out.Err = &ErrIncomplete{Missing: out.Missing}
		s.report(log, out)
		return out
	}

	out.State = StateComplete
	out.State = StatePredicting
	result, err := s.Predict(ctx, vec)
	if err != nil {
		out.State = StateFailed
		out.Err = err
		s.report(log, out)
		return out
	}

	guidance := GuidanceFor(result.Label)
	out.State = StateDecided
	out.Result = result
	out.Guidance = &guidance
	s.report(log, out)
	return out
}

// report logs a finished cycle. Fatal kinds are logged at error level with
// a stack trace; user-recoverable kinds are not.
func (s *Service) report(log *zap.Logger, out Outcome) {
	kind := KindOf(out.Err)
	switch kind {
	case KindNone:
		log.Info("prediction decided",
			zap.String("label", string(out.Result.Label)),
			zap.Int64("raw", out.Result.Raw),
		)
	case KindIncomplete:
		log.Info("submission incomplete", zap.Strings("missing", out.Missing))
	case KindInvalidInput:
		log.Info("submission rejected", zap.Error(out.Err))
	case KindClassifierFailure:
		log.Warn("prediction failed", zap.Error(out.Err))
	case KindUnknownFeature, KindInvalidFeatureVector, KindUnexpected:
		log.Error("schema mismatch between form and classifier",
			zap.String("kind", kind.String()),
			zap.Error(out.Err),
			zap.Stack("stack"),
		)
	}
}
