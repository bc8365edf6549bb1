package classifier

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/abhisek/bcdetect/internal/features"
)

// ONNXClassifier runs a scikit-learn model exported with skl2onnx.
// The session is bound to one pre-allocated [1, width] input and [1] label
// tensor, so rows are scored one at a time.
type ONNXClassifier struct {
	session   *ort.AdvancedSession
	input     *ort.Tensor[float32]
	output    *ort.Tensor[int64]
	width     int
	modelPath string

	mu sync.Mutex
}

// LoadONNX checks the model file, initializes onnxruntime, and builds the session.
func LoadONNX(cfg Config, width int) (*ONNXClassifier, error) {
	if width <= 0 {
		return nil, errors.New("model input width must be positive")
	}
	if cfg.ModelPath == "" {
		return nil, errors.New("model path is empty")
	}
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, &ErrModelNotFound{Path: cfg.ModelPath, Err: err}
	}

	libPath := cfg.SharedLibraryPath
	if libPath == "" {
		libPath = resolveSharedLibraryPath(filepath.Dir(cfg.ModelPath))
	}
	if libPath == "" {
		return nil, &ErrRuntimeUnavailable{
			Err: errors.New("shared library not found; set BCDETECT_ONNXRUNTIME_LIB or ONNXRUNTIME_SHARED_LIBRARY_PATH"),
		}
	}
	if !ort.IsInitialized() {
		ort.SetSharedLibraryPath(libPath)
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, &ErrRuntimeUnavailable{Err: err}
		}
	}

	input, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(width)))
	if err != nil {
		return nil, fmt.Errorf("allocate %s tensor: %w", cfg.InputName, err)
	}
	output, err := ort.NewEmptyTensor[int64](ort.NewShape(1))
	if err != nil {
		input.Destroy()
		return nil, fmt.Errorf("allocate %s tensor: %w", cfg.OutputName, err)
	}

	session, err := ort.NewAdvancedSession(
		cfg.ModelPath,
		[]string{cfg.InputName},
		[]string{cfg.OutputName},
		[]ort.Value{input},
		[]ort.Value{output},
		nil,
	)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, fmt.Errorf("create onnx session: %w", err)
	}

	return &ONNXClassifier{
		session:   session,
		input:     input,
		output:    output,
		width:     width,
		modelPath: cfg.ModelPath,
	}, nil
}

// Predict scores each row in turn.
func (m *ONNXClassifier) Predict(ctx context.Context, rows []features.Row) ([]int64, error) {
	if m == nil || m.session == nil {
		return nil, errors.New("onnx classifier not initialized")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	labels := make([]int64, 0, len(rows))
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(row) != m.width {
			return nil, &ErrShapeMismatch{Want: m.width, Got: len(row)}
		}

		data := m.input.GetData()
		for i, v := range row {
			data[i] = float32(v)
		}

		if err := m.session.Run(); err != nil {
			return nil, fmt.Errorf("onnx run: %w", err)
		}
		labels = append(labels, m.output.GetData()[0])
	}
	return labels, nil
}

// ModelID returns the model file name.
func (m *ONNXClassifier) ModelID() string {
	return "onnx:" + filepath.Base(m.modelPath)
}

// Close releases the session and its tensors.
func (m *ONNXClassifier) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	if m.session != nil {
		errs = append(errs, m.session.Destroy())
		m.session = nil
	}
	if m.input != nil {
		errs = append(errs, m.input.Destroy())
	}
	if m.output != nil {
		errs = append(errs, m.output.Destroy())
	}
	return errors.Join(errs...)
}

// resolveSharedLibraryPath locates a platform-specific onnxruntime library.
// ONNXRUNTIME_SHARED_LIBRARY_PATH wins; otherwise common names and locations
// are probed, starting next to the model.
func resolveSharedLibraryPath(modelDir string) string {
	if env := strings.TrimSpace(os.Getenv("ONNXRUNTIME_SHARED_LIBRARY_PATH")); env != "" {
		return env
	}

	names := []string{
		"libonnxruntime.so",
		"onnxruntime.so",
		"libonnxruntime.dylib",
		"onnxruntime.dylib",
		"onnxruntime.dll",
	}
	dirs := []string{
		modelDir,
		filepath.Join(modelDir, "lib"),
		".",
		"/opt/homebrew/lib",
		"/usr/local/lib",
		"/usr/lib",
	}

	for _, dir := range dirs {
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}
