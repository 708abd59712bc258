package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hearthapp/hearth/internal/domain"
	"github.com/hearthapp/hearth/internal/storage"
	"github.com/hearthapp/hearth/pkg/idgen"
)

// TaskService handles task business logic.
type TaskService struct {
	store storage.Store
	audit auditRecorder
}

// NewTaskService creates a new TaskService.
func NewTaskService(store storage.Store, audit AuditSink, log *zap.Logger) *TaskService {
	return &TaskService{
		store: store,
		audit: auditRecorder{sink: audit, log: nopIfNil(log)},
	}
}

// CreateTaskInput contains the input for creating a task.
type CreateTaskInput struct {
	Name        string
	Description *string
	Status         *domain.TaskStatus
	SortOrder      *int
	AssigneeID     *string
	DueDate        *time.Time
	EstimatedHours *float64
	ActualHours    *float64
}

// UpdateTaskInput contains the fields that can be changed on a task.
type UpdateTaskInput struct {
	Name        *string
	Description *string
	Status         *domain.TaskStatus
	SortOrder      *int
	AssigneeID     *string
	DueDate        *time.Time
	EstimatedHours *float64
	ActualHours    *float64
}

const (
	taskStatusMessage     = "status must be one of PENDING, IN_PROGRESS, COMPLETED, BLOCKED, CANCELLED"
	estimatedHoursMessage = "estimated hours must be a positive number"
	actualHoursMessage    = "actual hours must be a positive number"
)

// Create adds a task to a project. Without an explicit sort order the task
// is placed after the existing ones.
func (s *TaskService) Create(ctx context.Context, scope domain.Scope, projectID string, input CreateTaskInput) (*domain.Task, error) {
	name := strings.TrimSpace(input.Name)
	var details []string
	if name == "" {
		details = append(details, "name is required")
	}
	status := domain.TaskPending
	if input.Status != nil {
		status = *input.Status
	}
	if !status.IsValid() {
		details = append(details, taskStatusMessage)
	}
	if input.EstimatedHours != nil && *input.EstimatedHours < 0 {
		details = append(details, estimatedHoursMessage)
	}
	if input.ActualHours != nil && *input.ActualHours < 0 {
		details = append(details, actualHoursMessage)
	}
	if len(details) > 0 {
		return nil, domain.NewValidationError(details)
	}

	project, err := s.store.Projects().Get(ctx, projectID)
	if isNotFound(err) {
		return nil, domain.NewProjectNotFoundError(projectID)
	}
	if err != nil {
		return nil, storageError(err)
	}
	if !scope.Owns(project.FamilyID) {
		return nil, domain.NewForbiddenError("")
	}

	sortOrder := 0
	if input.SortOrder != nil {
		sortOrder = *input.SortOrder
	} else {
		existing, err := s.store.Tasks().ListByProject(ctx, projectID)
		if err != nil {
			return nil, storageError(err)
		}
		for _, t := range existing {
			if t.SortOrder >= sortOrder {
				sortOrder = t.SortOrder + 1
			}
		}
	}

	id, err := idgen.NewTaskID()
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ID:             id,
		ProjectID:      projectID,
		FamilyID:       project.FamilyID,
		Name:           name,
		Description:    input.Description,
		Status:         status,
		SortOrder:      sortOrder,
		AssigneeID:     input.AssigneeID,
		DueDate:        utcPtr(input.DueDate),
		EstimatedHours: input.EstimatedHours,
		ActualHours:    input.ActualHours,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.Tasks().Create(ctx, task); err != nil {
		return nil, storageError(err)
	}

	s.audit.record(ctx, domain.NewAuditEntry(scope, domain.ActionTaskCreate).
		With("project_id", projectID).
		With("task_id", task.ID))
	return task, nil
}

// Get retrieves a task with its dependencies.
func (s *TaskService) Get(ctx context.Context, scope domain.Scope, id string) (*domain.TaskDetail, error) {
	task, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	deps, err := s.store.Dependencies().ListForTask(ctx, id)
	if err != nil {
		return nil, storageError(err)
	}
	return &domain.TaskDetail{Task: task, BlockedBy: deps.BlockedBy, Blocks: deps.Blocks}, nil
}

// List returns the tasks of a project.
func (s *TaskService) List(ctx context.Context, scope domain.Scope, projectID string) ([]*domain.Task, error) {
	project, err := s.store.Projects().Get(ctx, projectID)
	if isNotFound(err) {
		return nil, domain.NewProjectNotFoundError(projectID)
	}
	if err != nil {
		return nil, storageError(err)
	}
	if !scope.Owns(project.FamilyID) {
		return nil, domain.NewForbiddenError("")
	}

	tasks, err := s.store.Tasks().ListByProject(ctx, projectID)
	if err != nil {
		return nil, storageError(err)
	}
	return tasks, nil
}

// Update changes the supplied fields of a task.
func (s *TaskService) Update(ctx context.Context, scope domain.Scope, id string, input UpdateTaskInput) (*domain.Task, error) {
	task, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	var changed []string
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.NewValidationError([]string{"name cannot be empty"})
		}
		task.Name = name
		changed = append(changed, "name")
	}
	if input.Description != nil {
		task.Description = input.Description
		changed = append(changed, "description")
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, domain.NewValidationError([]string{taskStatusMessage})
		}
		task.Status = *input.Status
		changed = append(changed, "status")
	}
	if input.SortOrder != nil {
		task.SortOrder = *input.SortOrder
		changed = append(changed, "sort_order")
	}
	if input.AssigneeID != nil {
		task.AssigneeID = input.AssigneeID
		changed = append(changed, "assignee_id")
	}
	if input.DueDate != nil {
		task.DueDate = utcPtr(input.DueDate)
		changed = append(changed, "due_date")
	}
	if input.EstimatedHours != nil {
		if *input.EstimatedHours < 0 {
			return nil, domain.NewValidationError([]string{estimatedHoursMessage})
		}
		task.EstimatedHours = input.EstimatedHours
		changed = append(changed, "estimated_hours")
	}
	if input.ActualHours != nil {
		if *input.ActualHours < 0 {
			return nil, domain.NewValidationError([]string{actualHoursMessage})
		}
		task.ActualHours = input.ActualHours
		changed = append(changed, "actual_hours")
	}
	if len(changed) == 0 {
		return task, nil
	}

	task.UpdatedAt = time.Now().UTC()
	if err := s.store.Tasks().Update(ctx, task); err != nil {
		if isNotFound(err) {
			return nil, domain.NewTaskNotFoundError("", id)
		}
		return nil, storageError(err)
	}

	s.audit.record(ctx, domain.NewAuditEntry(scope, domain.ActionTaskUpdate).
		With("project_id", task.ProjectID).
		With("task_id", task.ID).
		With("fields", strings.Join(changed, ",")))
	return task, nil
}

// Delete removes a task and every edge touching it.
func (s *TaskService) Delete(ctx context.Context, scope domain.Scope, id string) error {
	task, err := s.load(ctx, scope, id)
	if err != nil {
		return err
	}
	if err := s.store.Tasks().Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return domain.NewTaskNotFoundError("", id)
		}
		return storageError(err)
	}

	s.audit.record(ctx, domain.NewAuditEntry(scope, domain.ActionTaskDelete).
		With("project_id", task.ProjectID).
		With("task_id", task.ID))
	return nil
}

func (s *TaskService) load(ctx context.Context, scope domain.Scope, id string) (*domain.Task, error) {
	task, err := s.store.Tasks().Get(ctx, id)
	if isNotFound(err) {
		return nil, domain.NewTaskNotFoundError("", id)
	}
	if err != nil {
		return nil, storageError(err)
	}
	if !scope.Owns(task.FamilyID) {
		return nil, domain.NewForbiddenError("")
	}
	return task, nil
}
