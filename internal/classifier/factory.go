package classifier

import (
	"fmt"

	"go.uber.org/zap"
)

// New creates a Classifier from configuration, wrapped with logging.
// The model is loaded once here and shared for the rest of the process.
func New(cfg Config, width int, logger *zap.Logger) (Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Classifier
	switch cfg.Backend {
	case "onnx":
		m, err := LoadONNX(cfg, width)
		if err != nil {
			return nil, fmt.Errorf("initializing onnx classifier: %w", err)
		}
		base = m
	case "mock":
		m := NewMockClassifier()
		if cfg.MockLabel != nil {
			m.SetFallback(MockResponse{Labels: []int64{*cfg.MockLabel}})
		}
		base = m
	default:
		return nil, fmt.Errorf("unknown classifier backend: %q", cfg.Backend)
	}

	if logger == nil {
		return base, nil
	}
	return WithLogging(base, logger), nil
}
