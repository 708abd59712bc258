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

// TaskHandler handles task CRUD operations.
type TaskHandler struct {
	tasks *service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// CreateTask handles POST /v1/projects/{projectID}/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTaskRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, domain.NewValidationError([]string{"Invalid JSON body"}))
		return
	}

	if details := request.Validate(&req); len(details) > 0 {
		response.Error(w, domain.NewValidationError(details))
		return
	}

	task, err := h.tasks.Create(r.Context(), middleware.GetScope(r.Context()), chi.URLParam(r, "projectID"), service.CreateTaskInput{
		Name:           req.Name,
		Description:    req.Description,
		Status:         taskStatus(req.Status),
		SortOrder:      req.SortOrder,
		AssigneeID:     req.AssigneeID,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
	})
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, task)
}

// ListTasks handles GET /v1/projects/{projectID}/tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.List(r.Context(), middleware.GetScope(r.Context()), chi.URLParam(r, "projectID"))
	if err != nil {
		response.Error(w, err)
		return
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}

	response.OK(w, tasks)
}

// GetTask handles GET /v1/tasks/{taskID}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.tasks.Get(r.Context(), middleware.GetScope(r.Context()), chi.URLParam(r, "taskID"))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, task)
}

// UpdateTask handles PATCH /v1/tasks/{taskID}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateTaskRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, domain.NewValidationError([]string{"Invalid JSON body"}))
		return
	}

	if details := request.Validate(&req); len(details) > 0 {
		response.Error(w, domain.NewValidationError(details))
		return
	}

	task, err := h.tasks.Update(r.Context(), middleware.GetScope(r.Context()), chi.URLParam(r, "taskID"), service.UpdateTaskInput{
		Name:           req.Name,
		Description:    req.Description,
		Status:         taskStatus(req.Status),
		SortOrder:      req.SortOrder,
		AssigneeID:     req.AssigneeID,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
	})
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, task)
}

// DeleteTask handles DELETE /v1/tasks/{taskID}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.tasks.Delete(r.Context(), middleware.GetScope(r.Context()), chi.URLParam(r, "taskID")); err != nil {
		response.Error(w, err)
		return
	}

	response.NoContent(w)
}

func taskStatus(s *string) *domain.TaskStatus {
	if s == nil {
		return nil
	}
	status := domain.TaskStatus(*s)
	return &status
}
