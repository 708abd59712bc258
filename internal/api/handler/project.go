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

// ProjectHandler handles project and project template operations.
type ProjectHandler struct {
	projects  *service.ProjectService
	templates *service.TemplateService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projects *service.ProjectService, templates *service.TemplateService) *ProjectHandler {
	return &ProjectHandler{projects: projects, templates: templates}
}

// CreateProject handles POST /v1/projects.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req request.CreateProjectRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, domain.NewValidationError([]string{"Invalid JSON body"}))
		return
	}

	if details := request.Validate(&req); len(details) > 0 {
		response.Error(w, domain.NewValidationError(details))
		return
	}

	input := service.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      projectStatus(req.Status),
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		Budget:      req.Budget,
		Notes:       req.Notes,
	}

	project, err := h.projects.Create(r.Context(), middleware.GetScope(r.Context()), input)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, project)
}

// ListProjects handles GET /v1/projects.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context(), middleware.GetScope(r.Context()))
	if err != nil {
		response.Error(w, err)
		return
	}

	if projects == nil {
		projects = []*domain.Project{}
	}

	response.OK(w, projects)
}

// GetProject handles GET /v1/projects/{projectID}.
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projects.Get(r.Context(), middleware.GetScope(r.Context()), chi.URLParam(r, "projectID"))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, project)
}

// VerifyProject handles GET /v1/projects/{projectID}/verify.
func (h *ProjectHandler) VerifyProject(w http.ResponseWriter, r *http.Request) {
	report, err := h.projects.Verify(r.Context(), middleware.GetScope(r.Context()), chi.URLParam(r, "projectID"))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, report)
}

// UpdateProject handles PATCH /v1/projects/{projectID}.
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateProjectRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, domain.NewValidationError([]string{"Invalid JSON body"}))
		return
	}

	if details := request.Validate(&req); len(details) > 0 {
		response.Error(w, domain.NewValidationError(details))
		return
	}

	project, err := h.projects.Update(r.Context(), middleware.GetScope(r.Context()), chi.URLParam(r, "projectID"), service.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      projectStatus(req.Status),
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		Budget:      req.Budget,
		Notes:       req.Notes,
	})
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, project)
}

// DeleteProject handles DELETE /v1/projects/{projectID}.
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.projects.Delete(r.Context(), middleware.GetScope(r.Context()), chi.URLParam(r, "projectID")); err != nil {
		response.Error(w, err)
		return
	}

	response.NoContent(w)
}

// ListTemplates handles GET /v1/projects/templates.
func (h *ProjectHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	category := domain.TemplateCategory(r.URL.Query().Get("category"))
	response.OK(w, h.templates.List(category))
}

// CreateFromTemplate handles POST /v1/projects/templates.
func (h *ProjectHandler) CreateFromTemplate(w http.ResponseWriter, r *http.Request) {
	var req request.CreateFromTemplateRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, domain.NewValidationError([]string{"Invalid JSON body"}))
		return
	}

	if details := request.Validate(&req); len(details) > 0 {
		response.Error(w, domain.NewValidationError(details))
		return
	}

	input := service.InstantiateTemplateInput{TemplateID: req.TemplateID}
	if c := req.Customizations; c != nil {
		input.Name = c.Name
		input.Description = c.Description
		input.StartDate = c.StartDate
		input.Budget = c.Budget
		input.Notes = c.Notes
	}

	project, err := h.templates.Instantiate(r.Context(), middleware.GetScope(r.Context()), input)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, project)
}

func projectStatus(s *string) *domain.ProjectStatus {
	if s == nil {
		return nil
	}
	status := domain.ProjectStatus(*s)
	return &status
}
