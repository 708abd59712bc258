package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hearthapp/hearth/internal/api/middleware"
	"github.com/hearthapp/hearth/internal/api/request"
	"github.com/hearthapp/hearth/internal/api/response"
	"github.com/hearthapp/hearth/internal/domain"
	"github.com/hearthapp/hearth/internal/service"
)

// DependencyHandler handles dependency operations.
type DependencyHandler struct {
	deps *service.DependencyService
}

// NewDependencyHandler creates a new DependencyHandler.
func NewDependencyHandler(deps *service.DependencyService) *DependencyHandler {
	return &DependencyHandler{deps: deps}
}

// ListDependencies handles GET /v1/tasks/{taskID}/dependencies.
func (h *DependencyHandler) ListDependencies(w http.ResponseWriter, r *http.Request) {
	deps, err := h.deps.ListForTask(r.Context(), middleware.GetScope(r.Context()), chi.URLParam(r, "taskID"))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, deps)
}

// ListProjectDependencies handles GET /v1/projects/{projectID}/dependencies.
func (h *DependencyHandler) ListProjectDependencies(w http.ResponseWriter, r *http.Request) {
	edges, err := h.deps.ListForProject(r.Context(), middleware.GetScope(r.Context()), chi.URLParam(r, "projectID"))
	if err != nil {
		response.Error(w, err)
		return
	}

	if edges == nil {
		edges = []*domain.DependencyEdge{}
	}

	response.OK(w, edges)
}

// AddDependency handles POST /v1/tasks/{taskID}/dependencies.
func (h *DependencyHandler) AddDependency(w http.ResponseWriter, r *http.Request) {
	var req request.AddDependencyRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, domain.NewValidationError([]string{"Invalid JSON body"}))
		return
	}

	input := service.AddDependencyInput{
		DependentTaskID: chi.URLParam(r, "taskID"),
		BlockingTaskID:  req.BlockingTaskID,
	}
	if req.DependencyType != nil {
		input.DependencyType = domain.DependencyType(*req.DependencyType)
	}

	edge, err := h.deps.AddDependency(r.Context(), middleware.GetScope(r.Context()), input)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, edge)
}

// RemoveDependency handles DELETE /v1/dependencies/{dependencyID}.
func (h *DependencyHandler) RemoveDependency(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.RemoveDependency(r.Context(), middleware.GetScope(r.Context()), chi.URLParam(r, "dependencyID")); err != nil {
		response.Error(w, err)
		return
	}

	response.NoContent(w)
}
