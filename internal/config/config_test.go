package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.True(t, cfg.Form.PrefillDefaults)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeFile(t, `
classifier:
  backend: mock
server:
  addr: "127.0.0.1:9090"
form:
  prefill_defaults: false
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mock", cfg.Classifier.Backend)
	assert.Equal(t, "float_input", cfg.Classifier.InputName)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.False(t, cfg.Form.PrefillDefaults)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
}

func TestLoad_ExplicitEmptyValuesFilled(t *testing.T) {
	path := writeFile(t, `
server:
  addr: ""
log:
  level: ""
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_Malformed(t *testing.T) {
	path := writeFile(t, "server: [not, a, map")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("BCDETECT_CLASSIFIER", "mock")
	t.Setenv("BCDETECT_ADDR", ":7000")
	t.Setenv("BCDETECT_LOG_LEVEL", "debug")
	t.Setenv("BCDETECT_LOG_FILE", "/tmp/bcdetect.log")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "mock", cfg.Classifier.Backend)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/bcdetect.log", cfg.Log.File)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"mock backend", func(c *Config) { c.Classifier.Backend = "mock" }, false},
		{"unknown backend", func(c *Config) { c.Classifier.Backend = "tensorflow" }, true},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, true},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"negative rotation", func(c *Config) { c.Log.MaxBackups = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("BCDETECT_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "bcdetect", "config.yaml"), p)

	t.Setenv("BCDETECT_CONFIG", "/etc/bcdetect.yaml")
	p, err = DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/bcdetect.yaml", p)
}
