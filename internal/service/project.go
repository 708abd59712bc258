package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hearthapp/hearth/internal/domain"
	"github.com/hearthapp/hearth/internal/graph"
	"github.com/hearthapp/hearth/internal/storage"
	"github.com/hearthapp/hearth/pkg/idgen"
)

// ProjectService handles project business logic.
type ProjectService struct {
	store storage.Store
	audit auditRecorder
}

// NewProjectService creates a new ProjectService.
func NewProjectService(store storage.Store, audit AuditSink, log *zap.Logger) *ProjectService {
	return &ProjectService{
		store: store,
		audit: auditRecorder{sink: audit, log: nopIfNil(log)},
	}
}

// CreateProjectInput contains the input for creating a project.
type CreateProjectInput struct {
	Name        string
	Description *string
	Status      *domain.ProjectStatus
	StartDate   *time.Time
	DueDate     *time.Time
	Budget      *float64
	Notes       *string
}

// UpdateProjectInput contains the fields that can be changed on a project.
// Nil fields are left untouched.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *domain.ProjectStatus
	StartDate   *time.Time
	DueDate     *time.Time
	Budget      *float64
	Notes       *string
}

const (
	projectStatusMessage = "status must be one of ACTIVE, ON_HOLD, COMPLETED, CANCELLED"
	budgetMessage        = "budget must be a positive number"
	dueDateMessage       = "due date must be after start date"
)

// Create creates a new project owned by the caller's family.
func (s *ProjectService) Create(ctx context.Context, scope domain.Scope, input CreateProjectInput) (*domain.Project, error) {
	project, err := s.create(ctx, scope, input)
	if err != nil {
		return nil, err
	}
	s.audit.record(ctx, domain.NewAuditEntry(scope, domain.ActionProjectCreate).
		With("project_id", project.ID).
		With("name", project.Name))
	return project, nil
}

func (s *ProjectService) create(ctx context.Context, scope domain.Scope, input CreateProjectInput) (*domain.Project, error) {
	name := strings.TrimSpace(input.Name)
	var details []string
	if name == "" {
		details = append(details, "name is required")
	}
	status := domain.ProjectActive
	if input.Status != nil {
		status = *input.Status
	}
	if !status.IsValid() {
		details = append(details, projectStatusMessage)
	}
	if input.Budget != nil && *input.Budget < 0 {
		details = append(details, budgetMessage)
	}
	if !domain.DatesInOrder(input.StartDate, input.DueDate) {
		details = append(details, dueDateMessage)
	}
	if len(details) > 0 {
		return nil, domain.NewValidationError(details)
	}

	id, err := idgen.NewProjectID()
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	now := time.Now().UTC()
	project := &domain.Project{
		ID:          id,
		FamilyID:    scope.FamilyID,
		Name:        name,
		Description: input.Description,
		Status:      status,
		StartDate:   utcPtr(input.StartDate),
		DueDate:     utcPtr(input.DueDate),
		Budget:      input.Budget,
		Notes:       input.Notes,
		CreatedByID: scope.MemberID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Projects().Create(ctx, project); err != nil {
		return nil, storageError(err)
	}
	return project, nil
}

// Get retrieves a project with its tasks.
func (s *ProjectService) Get(ctx context.Context, scope domain.Scope, id string) (*domain.Project, error) {
	project, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	tasks, err := s.store.Tasks().ListByProject(ctx, id)
	if err != nil {
		return nil, storageError(err)
	}
	project.Tasks = tasks
	return project, nil
}

// List returns the caller's family projects.
func (s *ProjectService) List(ctx context.Context, scope domain.Scope) ([]*domain.Project, error) {
	projects, err := s.store.Projects().ListByFamily(ctx, scope.FamilyID)
	if err != nil {
		return nil, storageError(err)
	}
	return projects, nil
}

// Update changes the supplied fields of a project.
func (s *ProjectService) Update(ctx context.Context, scope domain.Scope, id string, input UpdateProjectInput) (*domain.Project, error) {
	project, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	var changed []string
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.NewValidationError([]string{"name cannot be empty"})
		}
		project.Name = name
		changed = append(changed, "name")
	}
	if input.Description != nil {
		project.Description = input.Description
		changed = append(changed, "description")
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, domain.NewValidationError([]string{projectStatusMessage})
		}
		project.Status = *input.Status
		changed = append(changed, "status")
	}
	if input.Budget != nil {
		if *input.Budget < 0 {
			return nil, domain.NewValidationError([]string{budgetMessage})
		}
		project.Budget = input.Budget
		changed = append(changed, "budget")
	}
	if input.Notes != nil {
		project.Notes = input.Notes
		changed = append(changed, "notes")
	}
	if input.StartDate != nil {
		project.StartDate = utcPtr(input.StartDate)
		changed = append(changed, "start_date")
	}
	if input.DueDate != nil {
		project.DueDate = utcPtr(input.DueDate)
		changed = append(changed, "due_date")
	}
	// Checked against the merged values so a lone due date cannot precede
	// the stored start date.
	if !domain.DatesInOrder(project.StartDate, project.DueDate) {
		return nil, domain.NewValidationError([]string{dueDateMessage})
	}
	if len(changed) == 0 {
		return project, nil
	}

	project.UpdatedAt = time.Now().UTC()
	err = s.store.WithProjectTx(ctx, id, func(tx storage.TxStore) error {
		return tx.Projects().Update(ctx, project)
	})
	if isNotFound(err) {
		return nil, domain.NewProjectNotFoundError(id)
	}
	if err != nil {
		return nil, storageError(err)
	}

	s.audit.record(ctx, domain.NewAuditEntry(scope, domain.ActionProjectUpdate).
		With("project_id", project.ID).
		With("fields", strings.Join(changed, ",")))
	return project, nil
}

// Delete removes a project together with its tasks and dependency edges.
func (s *ProjectService) Delete(ctx context.Context, scope domain.Scope, id string) error {
	project, err := s.load(ctx, scope, id)
	if err != nil {
		return err
	}

	var taskCount, edgeCount int
	err = s.store.WithProjectTx(ctx, id, func(tx storage.TxStore) error {
		tasks, err := tx.Tasks().ListByProject(ctx, id)
		if err != nil {
			return err
		}
		edges, err := tx.Dependencies().ListForProject(ctx, id)
		if err != nil {
			return err
		}
		taskCount, edgeCount = len(tasks), len(edges)
		return tx.Projects().Delete(ctx, id)
	})
	if isNotFound(err) {
		return domain.NewProjectNotFoundError(id)
	}
	if err != nil {
		return storageError(err)
	}

	s.audit.record(ctx, domain.NewAuditEntry(scope, domain.ActionProjectDelete).
		With("project_id", project.ID).
		With("name", project.Name).
		With("tasks_deleted", strconv.Itoa(taskCount)).
		With("dependencies_deleted", strconv.Itoa(edgeCount)))
	return nil
}

// Verify reports whether the project's stored edges are acyclic.
func (s *ProjectService) Verify(ctx context.Context, scope domain.Scope, id string) (*domain.GraphReport, error) {
	if _, err := s.load(ctx, scope, id); err != nil {
		return nil, err
	}
	tasks, err := s.store.Tasks().ListByProject(ctx, id)
	if err != nil {
		return nil, storageError(err)
	}
	edges, err := s.store.Dependencies().ListForProject(ctx, id)
	if err != nil {
		return nil, storageError(err)
	}
	return &domain.GraphReport{
		ProjectID: id,
		TaskCount: len(tasks),
		EdgeCount: len(edges),
		Acyclic:   !graph.New(edges).HasCycle(),
	}, nil
}

func (s *ProjectService) load(ctx context.Context, scope domain.Scope, id string) (*domain.Project, error) {
	project, err := s.store.Projects().Get(ctx, id)
	if isNotFound(err) {
		return nil, domain.NewProjectNotFoundError(id)
	}
	if err != nil {
		return nil, storageError(err)
	}
	if !scope.Owns(project.FamilyID) {
		return nil, domain.NewForbiddenError("")
	}
	return project, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
