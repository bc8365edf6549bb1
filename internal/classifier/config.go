package classifier

import (
	"fmt"
	"os"
)

// Config selects and configures the classifier backend.
type Config struct {
	// Backend selects the implementation.
	// Values: "onnx", "mock"
	Backend string `yaml:"backend"`

	// ModelPath is the ONNX export of the trained model.
	ModelPath string `yaml:"model_path"`

	// SharedLibraryPath overrides onnxruntime library discovery.
	SharedLibraryPath string `yaml:"shared_library_path"`

	// InputName and OutputName are the graph's tensor names. skl2onnx
	// exports use "float_input" and "output_label".
	InputName  string `yaml:"input_name"`
	OutputName string `yaml:"output_name"`

	// MockLabel is the class the mock backend returns for every row.
	// Unset, the mock backend fails every prediction.
	MockLabel *int64 `yaml:"mock_label"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend:    "onnx",
		ModelPath:  "breast_cancer_detector.onnx",
		InputName:  "float_input",
		OutputName: "output_label",
	}
}

// ApplyEnv overrides fields from BCDETECT_* environment variables.
func (c *Config) ApplyEnv() {
	if b := os.Getenv("BCDETECT_CLASSIFIER"); b != "" {
		c.Backend = b
	}
	if p := os.Getenv("BCDETECT_MODEL"); p != "" {
		c.ModelPath = p
	}
	if l := os.Getenv("BCDETECT_ONNXRUNTIME_LIB"); l != "" {
		c.SharedLibraryPath = l
	}
}

// Validate checks that the selected backend has what it needs.
func (c Config) Validate() error {
	switch c.Backend {
	case "onnx":
		if c.ModelPath == "" {
			return fmt.Errorf("classifier.model_path is required for the onnx backend")
		}
		if c.InputName == "" || c.OutputName == "" {
			return fmt.Errorf("classifier.input_name and classifier.output_name are required for the onnx backend")
		}
	case "mock":
		// Nothing to load.
	default:
		return fmt.Errorf("unknown classifier backend: %q", c.Backend)
	}
	return nil
}
