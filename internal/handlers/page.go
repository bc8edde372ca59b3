package handlers

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"hassak.dev/internal/config"
	"hassak.dev/internal/markdown"
	"hassak.dev/internal/models"
	"hassak.dev/internal/services"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/page.html"))

// PageHandler renders the portfolio page
type PageHandler struct {
	views    *services.ViewRegistry
	markdown *markdown.Renderer
	cfg      *config.Config
	logger   *zap.Logger
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(views *services.ViewRegistry, md *markdown.Renderer, cfg *config.Config, logger *zap.Logger) *PageHandler {
	return &PageHandler{views: views, markdown: md, cfg: cfg, logger: logger}
}

type projectCard struct {
	Index       int
	Name        string
	RepoPageURL string
	HasReadme   bool
	Visible     bool
	ReadmeHTML  template.HTML
}

type pageData struct {
	ViewID   string
	Title    string
	Heading  string
	Links    []models.Link
	Projects []projectCard
}

// Index handles GET / by mounting a fresh page view
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	id, view := h.views.Create()

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RenderWait)
	defer cancel()
	if err := view.Wait(ctx); err != nil {
		h.logger.Debug("rendering before every readme settled", zap.String("view", id), zap.Error(err))
	}

	h.render(w, id, view)
}

// Show handles GET /views/{id}
func (h *PageHandler) Show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view, err := h.views.Get(id)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	h.render(w, id, view)
}

// Toggle handles the README form button
func (h *PageHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view, err := h.views.Get(id)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	index, err := indexParam(r)
	if err == nil {
		// no button exists without a readme, so failures here are ignored
		_, _ = view.Toggle(index)
	}
	http.Redirect(w, r, fmt.Sprintf("/views/%s#project-%d", id, index), http.StatusSeeOther)
}

func (h *PageHandler) render(w http.ResponseWriter, id string, view *services.PageView) {
	data := pageData{
		ViewID:  id,
		Title:   h.cfg.Title,
		Heading: h.cfg.Heading,
		Links:   h.cfg.Links,
	}

	for _, p := range view.Projects() {
		card := projectCard{
			Index:       p.Index,
			Name:        p.Name,
			RepoPageURL: p.RepoPageURL,
			HasReadme:   p.Readme.HasContent,
			Visible:     p.Readme.Visible,
		}
		if card.HasReadme && card.Visible {
			html, err := h.markdown.Render(p.Readme.Content)
			if err != nil {
				h.logger.Warn("rendering readme", zap.String("project", p.Name), zap.Error(err))
			}
			card.ReadmeHTML = html
		}
		data.Projects = append(data.Projects, card)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		h.logger.Error("executing page template", zap.Error(err))
	}
}
