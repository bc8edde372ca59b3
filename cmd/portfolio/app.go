package main

import (
	"net/http"

	"go.uber.org/zap"

	"hassak.dev/internal/config"
	"hassak.dev/internal/observability"
	"hassak.dev/internal/resolver"
	"hassak.dev/internal/services"
)

// app wires the services shared by every command
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	metrics  *observability.Collector
	projects *services.ProjectService
}

func newApp(cfg *config.Config, logger *zap.Logger) *app {
	metrics := observability.NewCollector("portfolio")
	res := resolver.New(cfg.RawBaseURL, cfg.CodeBaseURL, cfg.Branch)
	fetcher := services.NewHTTPReadmeFetcher(&http.Client{Timeout: cfg.FetchTimeout})
	keymap := services.Keymap{Next: cfg.NextKey, Prev: cfg.PrevKey, Reset: cfg.ResetKey}

	if !keymap.ResetReachable() {
		logger.Debug("selection reset key is shadowed", zap.String("reset_key", cfg.ResetKey))
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics,
		projects: services.NewProjectService(cfg.Projects, fetcher, res, keymap, logger, metrics),
	}
}
