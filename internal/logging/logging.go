// Package logging builds the zap logger shared by every bcdetect surface.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/abhisek/bcdetect/internal/config"
)

// New returns a JSON logger. When cfg.File is set, output is written to a
// rotating file; otherwise it goes to stderr. The returned close function
// flushes and releases the file.
func New(cfg config.LogConfig) (*zap.Logger, func() error, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	var (
		sink    zapcore.WriteSyncer
		closeFn = func() error { return nil }
	)
	if cfg.File != "" {
		if err := ensureDir(cfg.File); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		sink = zapcore.AddSync(rotator)
		closeFn = rotator.Close
	} else {
		sink = zapcore.Lock(os.Stderr)
	}

	logger := NewWithWriter(sink, level)
	return logger, func() error {
		_ = logger.Sync()
		return closeFn()
	}, nil
}

// NewWithWriter builds a JSON logger writing to w at the given level.
func NewWithWriter(w io.Writer, level zapcore.Level) *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core, zap.AddCaller()).Named("bcdetect")
}

// ParseLevel maps a config level name to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level: %q", s)
	}
}

// DefaultLogPath returns the log file used by the TUI.
// Uses $BCDETECT_LOG if set, otherwise $XDG_STATE_HOME/bcdetect/bcdetect.log,
// falling back to ~/.local/state/bcdetect/bcdetect.log.
func DefaultLogPath() (string, error) {
	if p := os.Getenv("BCDETECT_LOG"); p != "" {
		return p, nil
	}

	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "bcdetect", "bcdetect.log"), nil
}

// ensureDir creates the parent directory of path if it doesn't exist.
func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
