package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"hassak.dev/internal/models"
	"hassak.dev/internal/services"
)

var validate = validator.New()

// ViewHandler exposes page views over JSON
type ViewHandler struct {
	views      *services.ViewRegistry
	renderWait time.Duration
}

// NewViewHandler creates a new ViewHandler
func NewViewHandler(views *services.ViewRegistry, renderWait time.Duration) *ViewHandler {
	return &ViewHandler{views: views, renderWait: renderWait}
}

type keyRequest struct {
	Key string `json:"key" validate:"required,max=32"`
}

type keyResponse struct {
	Handled   bool                     `json:"handled"`
	Selection models.SelectionResponse `json:"selection"`
}

type toggleResponse struct {
	Visible bool `json:"visible"`
}

func viewResponse(id string, v *services.PageView) models.PageViewResponse {
	return models.PageViewResponse{
		ID:        id,
		Projects:  v.Projects(),
		Selection: v.SelectionResponse(),
	}
}

// CreateView handles POST /api/views. With ?wait=true the response is held
// until READMEs settle or the render wait elapses.
func (h *ViewHandler) CreateView(w http.ResponseWriter, r *http.Request) {
	id, view := h.views.Create()

	if r.URL.Query().Get("wait") == "true" {
		ctx, cancel := context.WithTimeout(r.Context(), h.renderWait)
		_ = view.Wait(ctx)
		cancel()
	}

	respondJSON(w, http.StatusCreated, viewResponse(id, view))
}

// GetView handles GET /api/views/{id}
func (h *ViewHandler) GetView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view, err := h.views.Get(id)
	if err != nil {
		respondError(w, statusFor(err), "Page view not found")
		return
	}
	respondJSON(w, http.StatusOK, viewResponse(id, view))
}

// DeleteView handles DELETE /api/views/{id}
func (h *ViewHandler) DeleteView(w http.ResponseWriter, r *http.Request) {
	if err := h.views.Remove(chi.URLParam(r, "id")); err != nil {
		respondError(w, statusFor(err), "Page view not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PressKey handles POST /api/views/{id}/keys
func (h *ViewHandler) PressKey(w http.ResponseWriter, r *http.Request) {
	view, err := h.views.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, statusFor(err), "Page view not found")
		return
	}

	var req keyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid key")
		return
	}

	handled := view.HandleKey(req.Key)
	respondJSON(w, http.StatusOK, keyResponse{Handled: handled, Selection: view.SelectionResponse()})
}

// ToggleReadme handles POST /api/views/{id}/projects/{index}/toggle
func (h *ViewHandler) ToggleReadme(w http.ResponseWriter, r *http.Request) {
	view, err := h.views.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, statusFor(err), "Page view not found")
		return
	}

	index, err := indexParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid project index")
		return
	}

	visible, err := view.Toggle(index)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, toggleResponse{Visible: visible})
}
