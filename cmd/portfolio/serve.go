package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hassak.dev/internal/config"
	"hassak.dev/internal/handlers"
	"hassak.dev/internal/markdown"
	"hassak.dev/internal/services"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portfolio web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if serveAddr != "" {
			cfg.Addr = serveAddr
		}

		a := newApp(cfg, logger)
		views := services.NewViewRegistry(a.projects, cfg.MaxViews, cfg.ViewTTL, logger)
		defer views.Close()

		if serveWatch {
			w, err := config.Watch(cfgFile, logger, func(next *config.Config) {
				a.projects.Replace(next.Projects)
			})
			if err != nil {
				return err
			}
			defer w.Close()
		}

		srv := &http.Server{
			Addr: cfg.Addr,
			Handler: handlers.SetupRoutes(handlers.Dependencies{
				Config:   cfg,
				Projects: a.projects,
				Views:    views,
				Markdown: markdown.New(cfg.CodeStyle),
				Logger:   logger,
				Metrics:  a.metrics,
			}),
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("portfolio server listening", zap.String("addr", cfg.Addr), zap.Int("projects", len(cfg.Projects)))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serving: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload the project list when the config file changes")
	rootCmd.AddCommand(serveCmd)
}
