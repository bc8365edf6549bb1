package classifier

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/bcdetect/internal/features"
)

// LoggingClassifier is a decorator that logs every prediction call.
// Feature values are never logged.
type LoggingClassifier struct {
	inner  Classifier
	logger *zap.Logger
}

// WithLogging wraps a Classifier with call logging.
func WithLogging(c Classifier, logger *zap.Logger) Classifier {
	return &LoggingClassifier{inner: c, logger: logger.Named("classifier")}
}

func (l *LoggingClassifier) Predict(ctx context.Context, rows []features.Row) ([]int64, error) {
	start := time.Now()
	labels, err := l.inner.Predict(ctx, rows)

	fields := []zap.Field{
		zap.String("model", l.inner.ModelID()),
		zap.Int("rows", len(rows)),
		zap.Duration("latency", time.Since(start)),
	}
	if err != nil {
		l.logger.Warn("predict failed", append(fields, zap.Error(err))...)
		return labels, err
	}
	l.logger.Debug("predict", append(fields, zap.Int64s("labels", labels))...)
	return labels, nil
}

func (l *LoggingClassifier) ModelID() string {
	return l.inner.ModelID()
}

// Close releases the wrapped classifier if it holds resources.
func (l *LoggingClassifier) Close() error {
	if c, ok := l.inner.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
