// Package config loads bcdetect settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/bcdetect/internal/classifier"
)

// Config holds bcdetect configuration.
type Config struct {
	Classifier classifier.Config `yaml:"classifier"`
	Server     ServerConfig      `yaml:"server"`
	Log        LogConfig         `yaml:"log"`
	Form       FormConfig        `yaml:"form"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"` // HTTP listen address, e.g. ":8080"
}

type LogConfig struct {
	Level      string `yaml:"level"`        // debug | info | warn | error
	File       string `yaml:"file"`         // empty: stderr (serve, predict) or DefaultLogPath (TUI)
	MaxSizeMB  int    `yaml:"max_size_mb"`  // rotate after this many megabytes
	MaxBackups int    `yaml:"max_backups"`  // rotated files to keep
	MaxAgeDays int    `yaml:"max_age_days"` // days to keep rotated files
}

type FormConfig struct {
	// PrefillDefaults seeds each form field with its documented default.
	// When false, every field starts at the empty sentinel.
	PrefillDefaults bool `yaml:"prefill_defaults"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Classifier: classifier.DefaultConfig(),
		Server:     ServerConfig{Addr: ":8080"},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Form: FormConfig{PrefillDefaults: true},
	}
}

// Load reads configuration from a YAML file. Keys absent from the file keep
// their default values. If the file doesn't exist, Load returns the defaults
// and no error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

// applyDefaults fills fields a file explicitly set to their zero value.
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Classifier.Backend == "" {
		cfg.Classifier.Backend = def.Classifier.Backend
	}
	if cfg.Classifier.InputName == "" {
		cfg.Classifier.InputName = def.Classifier.InputName
	}
	if cfg.Classifier.OutputName == "" {
		cfg.Classifier.OutputName = def.Classifier.OutputName
	}
}

// ApplyEnv overrides fields from BCDETECT_* environment variables.
func (c *Config) ApplyEnv() {
	c.Classifier.ApplyEnv()
	if a := os.Getenv("BCDETECT_ADDR"); a != "" {
		c.Server.Addr = a
	}
	if l := os.Getenv("BCDETECT_LOG_LEVEL"); l != "" {
		c.Log.Level = l
	}
	if f := os.Getenv("BCDETECT_LOG_FILE"); f != "" {
		c.Log.File = f
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := c.Classifier.Validate(); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %q", c.Log.Level)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("log rotation limits must not be negative")
	}
	return nil
}

// DefaultPath returns the config file location.
// Uses $BCDETECT_CONFIG if set, otherwise $XDG_CONFIG_HOME/bcdetect/config.yaml,
// falling back to ~/.config/bcdetect/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv("BCDETECT_CONFIG"); p != "" {
		return p, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "bcdetect", "config.yaml"), nil
}
