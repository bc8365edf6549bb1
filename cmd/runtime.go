package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/bcdetect/internal/app"
	"github.com/abhisek/bcdetect/internal/classifier"
	"github.com/abhisek/bcdetect/internal/config"
	"github.com/abhisek/bcdetect/internal/diagnosis"
	"github.com/abhisek/bcdetect/internal/features"
	"github.com/abhisek/bcdetect/internal/logging"
)

// runtime is everything a command needs to serve predictions.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *diagnosis.Service
	closers []func() error
}

// Close releases the classifier and flushes the logger.
func (r *runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			fmt.Fprintln(os.Stderr, "Warning: cleanup failed:", err)
		}
	}
}

// loadConfig reads the config file, then applies env vars and flags.
// Priority: flags, then BCDETECT_* env vars, then the file, then defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	if v, _ := cmd.Flags().GetString("model"); v != "" {
		cfg.Classifier.ModelPath = v
	}
	if v, _ := cmd.Flags().GetString("backend"); v != "" {
		cfg.Classifier.Backend = v
	}
	if v, _ := cmd.Flags().GetString("log-file"); v != "" {
		cfg.Log.File = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// buildRuntime loads config, sets up logging, and loads the classifier.
// The TUI owns the terminal, so its logs always go to a file.
func buildRuntime(cmd *cobra.Command, ownsTerminal bool) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if ownsTerminal && cfg.Log.File == "" {
		p, err := logging.DefaultLogPath()
		if err != nil {
			return nil, fmt.Errorf("resolve log path: %w", err)
		}
		cfg.Log.File = p
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	rt := &runtime{cfg: cfg, logger: logger, closers: []func() error{closeLog}}

	schema := features.BreastCancer()
	clf, err := classifier.New(cfg.Classifier, schema.Len(), logger)
	if err != nil {
		logger.Error("classifier unavailable",
			zap.String("backend", cfg.Classifier.Backend),
			zap.String("model", cfg.Classifier.ModelPath),
			zap.Error(err),
		)
		rt.Close()
		return nil, fmt.Errorf("load classifier: %w", err)
	}
	if c, ok := clf.(io.Closer); ok {
		rt.closers = append(rt.closers, c.Close)
	}

	rt.service = diagnosis.NewService(schema, clf, logger)
	logger.Info("classifier loaded", zap.String("model", clf.ModelID()))
	return rt, nil
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := buildRuntime(cmd, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	return app.Run(app.Options{
		Service:         rt.service,
		PrefillDefaults: rt.cfg.Form.PrefillDefaults,
		Logger:          rt.logger,
	})
}
