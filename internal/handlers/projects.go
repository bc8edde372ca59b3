package handlers

import (
	"net/http"

	"hassak.dev/internal/services"
)

// ProjectHandler handles project-related endpoints
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(ps *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: ps}
}

// ListProjects handles GET /api/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.projectService.List())
}

// GetProject handles GET /api/projects/{index}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	index, err := indexParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid project index")
		return
	}

	project, err := h.projectService.Project(index)
	if err != nil {
		respondError(w, statusFor(err), "Project not found")
		return
	}

	respondJSON(w, http.StatusOK, project)
}
