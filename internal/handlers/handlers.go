package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"hassak.dev/internal/config"
	"hassak.dev/internal/markdown"
	"hassak.dev/internal/middleware"
	"hassak.dev/internal/observability"
	"hassak.dev/internal/services"
)

// Dependencies are the services the routes are built on
type Dependencies struct {
	Config   *config.Config
	Projects *services.ProjectService
	Views    *services.ViewRegistry
	Markdown *markdown.Renderer
	Logger   *zap.Logger
	Metrics  *observability.Collector
}

// SetupRoutes configures all routes and returns the router
func SetupRoutes(d Dependencies) http.Handler {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.Logger(d.Logger, d.Metrics))

	// Initialize handlers
	projectHandler := NewProjectHandler(d.Projects)
	viewHandler := NewViewHandler(d.Views, d.Config.RenderWait)
	pageHandler := NewPageHandler(d.Views, d.Markdown, d.Config, d.Logger)

	// API routes
	r.Route("/api", func(r chi.Router) {
		corsOpts := cors.Options{
			AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}
		if d.Config.AllowAllOrigins {
			corsOpts.AllowedOrigins = []string{"*"}
		}
		r.Use(cors.Handler(corsOpts))

		// Project endpoints
		r.Get("/projects", projectHandler.ListProjects)
		r.Get("/projects/{index}", projectHandler.GetProject)

		// Page view endpoints
		r.Post("/views", viewHandler.CreateView)
		r.Get("/views/{id}", viewHandler.GetView)
		r.Delete("/views/{id}", viewHandler.DeleteView)
		r.Post("/views/{id}/keys", viewHandler.PressKey)
		r.Post("/views/{id}/projects/{index}/toggle", viewHandler.ToggleReadme)

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	r.Handle("/metrics", d.Metrics.Handler())

	// Page
	r.Get("/", pageHandler.Index)
	r.Get("/views/{id}", pageHandler.Show)
	r.Post("/views/{id}/projects/{index}/toggle", pageHandler.Toggle)

	return r
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("encoding JSON response", zap.Error(err))
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrViewNotFound), errors.Is(err, services.ErrProjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrReadmeUnavailable):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// indexParam parses the {index} URL parameter
func indexParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "index"))
}
