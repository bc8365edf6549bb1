package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/bcdetect/internal/features"
)

// execute runs the root command with args against a throwaway config and
// log file, returning stdout.
func execute(t *testing.T, cfgYAML string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgYAML), 0o644))

	for _, name := range []string{"model", "backend", "log-level"} {
		require.NoError(t, rootCmd.PersistentFlags().Set(name, ""))
	}
	require.NoError(t, predictCmd.Flags().Set("input", ""))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{
		"--config", cfgPath,
		"--log-file", filepath.Join(dir, "bcdetect.log"),
	}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeInput(t *testing.T, values map[string]float64) string {
	t.Helper()
	data, err := yaml.Marshal(values)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "sample.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

const mockMalignant = `
classifier:
  backend: mock
  mock_label: 1
`

func TestFeaturesCommand(t *testing.T) {
	out, err := execute(t, "", "features")
	require.NoError(t, err)
	assert.Contains(t, out, "mean radius")
	assert.Contains(t, out, "worst fractal dimension")
	assert.Contains(t, out, "30 features")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "bcdetect "))
}

func TestPredictCommand_Decided(t *testing.T) {
	input := writeInput(t, features.BreastCancer().Defaults())
	out, err := execute(t, mockMalignant, "predict", "--input", input)
	require.NoError(t, err)
	assert.Contains(t, out, "The tumor is likely: Malignant")
	assert.Contains(t, out, "Risk factors and next steps")
}

func TestPredictCommand_JSONInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"mean radius": 12.1, "mean texture": 14.2}`), 0o644))

	_, err := execute(t, mockMalignant, "predict", "--input", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Please fill in all fields before making a prediction.")
	assert.Contains(t, err.Error(), "mean perimeter")
}

func TestPredictCommand_UnknownFeature(t *testing.T) {
	values := features.BreastCancer().Defaults()
	values["tumor color"] = 2
	_, err := execute(t, mockMalignant, "predict", "--input", writeInput(t, values))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tumor color")
}

func TestPredictCommand_ClassifierFailure(t *testing.T) {
	input := writeInput(t, features.BreastCancer().Defaults())
	_, err := execute(t, "classifier:\n  backend: mock\n", "predict", "--input", input)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Error in prediction:"), err.Error())
}

func TestPredictCommand_MissingModel(t *testing.T) {
	input := writeInput(t, features.BreastCancer().Defaults())
	missing := filepath.Join(t.TempDir(), "nope.onnx")
	_, err := execute(t, "", "predict", "--input", input, "--backend", "onnx", "--model", missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load classifier")
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	t.Setenv("BCDETECT_CLASSIFIER", "onnx")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.yaml"), []byte("log:\n  level: warn\n"), 0o644))

	cmd := featuresCmd
	_ = cmd.InheritedFlags() // merge the root's persistent flags
	require.NoError(t, rootCmd.PersistentFlags().Set("config", filepath.Join(dir, "c.yaml")))
	require.NoError(t, rootCmd.PersistentFlags().Set("backend", "mock"))
	require.NoError(t, rootCmd.PersistentFlags().Set("log-level", "debug"))
	t.Cleanup(func() {
		_ = rootCmd.PersistentFlags().Set("backend", "")
		_ = rootCmd.PersistentFlags().Set("log-level", "")
	})

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "mock", cfg.Classifier.Backend, "flag beats env")
	assert.Equal(t, "debug", cfg.Log.Level, "flag beats file")
}
