package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hearthapp/hearth/internal/domain"
	"github.com/hearthapp/hearth/internal/storage"
)

// TemplateService lists the built-in project templates and turns them into
// projects. Template edges go through DependencyService so they get the
// same checks as edges added by hand.
type TemplateService struct {
	store     storage.Store
	projects  *ProjectService
	tasks     *TaskService
	deps      *DependencyService
	audit     auditRecorder
	log       *zap.Logger
	templates []domain.ProjectTemplate
}

// NewTemplateService creates a new TemplateService over the built-in catalog.
func NewTemplateService(store storage.Store, projects *ProjectService, tasks *TaskService, deps *DependencyService, audit AuditSink, log *zap.Logger) *TemplateService {
	log = nopIfNil(log)
	return &TemplateService{
		store:     store,
		projects:  projects,
		tasks:     tasks,
		deps:      deps,
		audit:     auditRecorder{sink: audit, log: log},
		log:       log,
		templates: builtinTemplates,
	}
}

// InstantiateTemplateInput selects a template and overrides its defaults.
type InstantiateTemplateInput struct {
	TemplateID  string
	Name        *string
	Description *string
	StartDate   *time.Time
	Budget      *float64
	Notes       *string
}

// List returns the templates, optionally restricted to one category.
func (s *TemplateService) List(category domain.TemplateCategory) []domain.ProjectTemplate {
	if category == "" {
		return s.templates
	}
	out := []domain.ProjectTemplate{}
	for _, t := range s.templates {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// Get returns the template with the given id.
func (s *TemplateService) Get(id string) (*domain.ProjectTemplate, error) {
	for i := range s.templates {
		if s.templates[i].ID == id {
			return &s.templates[i], nil
		}
	}
	return nil, domain.NewTemplateNotFoundError(id)
}

// Instantiate creates a project from a template. Tasks are created first and
// the template's edges are then added one by one. If any step fails the
// partially built project is removed.
func (s *TemplateService) Instantiate(ctx context.Context, scope domain.Scope, input InstantiateTemplateInput) (*domain.Project, error) {
	if strings.TrimSpace(input.TemplateID) == "" {
		return nil, domain.NewInvalidArgumentError("Template ID is required")
	}
	tpl, err := s.Get(input.TemplateID)
	if err != nil {
		return nil, err
	}

	start := time.Now().UTC()
	if input.StartDate != nil {
		start = input.StartDate.UTC()
	}
	due := start.AddDate(0, 0, tpl.EstimatedDays)

	create := CreateProjectInput{
		Name:        tpl.Name,
		Description: &tpl.Description,
		StartDate:   &start,
		DueDate:     &due,
		Budget:      &tpl.SuggestedBudget,
		Notes:       input.Notes,
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		create.Name = *input.Name
	}
	if input.Description != nil && *input.Description != "" {
		create.Description = input.Description
	}
	if input.Budget != nil {
		create.Budget = input.Budget
	}

	project, err := s.projects.create(ctx, scope, create)
	if err != nil {
		return nil, err
	}

	if err := s.populate(ctx, scope, project, tpl, start); err != nil {
		s.discard(project.ID, err)
		return nil, err
	}

	s.audit.record(ctx, domain.NewAuditEntry(scope, domain.ActionProjectCreate).
		With("project_id", project.ID).
		With("name", project.Name).
		With("template_id", tpl.ID).
		With("tasks_created", strconv.Itoa(len(project.Tasks))))
	s.log.Info("project created from template",
		zap.String("project_id", project.ID),
		zap.String("template_id", tpl.ID),
		zap.Int("tasks", len(project.Tasks)))
	return project, nil
}

func (s *TemplateService) populate(ctx context.Context, scope domain.Scope, project *domain.Project, tpl *domain.ProjectTemplate, start time.Time) error {
	ids := make(map[string]string, len(tpl.Tasks))
	project.Tasks = make([]*domain.Task, 0, len(tpl.Tasks))
	for i, tt := range tpl.Tasks {
		order := i
		input := CreateTaskInput{
			Name:           tt.Name,
			Description:    &tpl.Tasks[i].Description,
			SortOrder:      &order,
			EstimatedHours: &tpl.Tasks[i].EstimatedHours,
		}
		if tt.DaysFromStart != nil {
			due := start.AddDate(0, 0, *tt.DaysFromStart)
			input.DueDate = &due
		}
		task, err := s.tasks.Create(ctx, scope, project.ID, input)
		if err != nil {
			return err
		}
		ids[tt.Name] = task.ID
		project.Tasks = append(project.Tasks, task)
	}

	for _, tt := range tpl.Tasks {
		for _, blocking := range tt.DependsOn {
			blockingID, ok := ids[blocking]
			if !ok {
				continue
			}
			_, err := s.deps.AddDependency(ctx, scope, AddDependencyInput{
				DependentTaskID: ids[tt.Name],
				BlockingTaskID:  blockingID,
				DependencyType:  domain.DefaultDependencyType,
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// discard removes a project whose template instantiation failed. It runs
// detached from the request context so a cancelled request still cleans up.
func (s *TemplateService) discard(projectID string, cause error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := s.store.WithProjectTx(ctx, projectID, func(tx storage.TxStore) error {
		return tx.Projects().Delete(ctx, projectID)
	})
	if err != nil {
		s.log.Error("failed to discard partial project",
			zap.String("project_id", projectID),
			zap.NamedError("cause", cause),
			zap.Error(err))
	}
}
