package config

import (
	"fmt"

	"github.com/knadh/koanf/providers/file"
	"go.uber.org/zap"
)

// Watcher reloads a config file whenever it changes on disk
type Watcher struct {
	provider *file.File
}

// Watch calls onChange with every valid reload of path. Invalid files are
// logged and skipped; the previous configuration stays in effect.
func Watch(path string, logger *zap.Logger, onChange func(*Config)) (*Watcher, error) {
	f := file.Provider(path)
	err := f.Watch(func(_ interface{}, err error) {
		if err != nil {
			logger.Warn("config watch error", zap.String("path", path), zap.Error(err))
			return
		}

		cfg, err := Load(path)
		if err == nil {
			err = cfg.Validate()
		}
		if err != nil {
			logger.Warn("ignoring config reload", zap.String("path", path), zap.Error(err))
			return
		}

		logger.Info("config reloaded", zap.String("path", path), zap.Int("projects", len(cfg.Projects)))
		onChange(cfg)
	})
	if err != nil {
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	return &Watcher{provider: f}, nil
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.provider.Unwatch()
}
