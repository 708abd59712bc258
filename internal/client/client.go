package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hearthapp/hearth/internal/domain"
)

// Headers carrying the caller's identity.
const (
	MemberHeader = "X-Hearth-Member"
	FamilyHeader = "X-Hearth-Family"
	RoleHeader   = "X-Hearth-Role"
)

// Client is an HTTP client for the Hearth server API.
type Client struct {
	baseURL string       // http://host:port
	scope   domain.Scope // sent as identity headers
	http    *http.Client
}

// NewClient creates a new Hearth API client acting as scope.
func NewClient(baseURL string, scope domain.Scope) *Client {
	return &Client{
		baseURL: baseURL,
		scope:   scope,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// =============================================================================
// Health
// =============================================================================

// Health checks if the server is healthy.
func (c *Client) Health(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/v1/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return wrapConnectionError(fmt.Errorf("health check failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ErrServerUnhealthy
	}

	return nil
}

// =============================================================================
// Projects
// =============================================================================

// CreateProject creates a project in the caller's family.
func (c *Client) CreateProject(ctx context.Context, name, description string) (*domain.Project, error) {
	body := createProjectRequest{Name: name}
	if description != "" {
		body.Description = &description
	}

	var project domain.Project
	if err := c.do(ctx, http.MethodPost, "/v1/projects", body, http.StatusCreated, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// ListProjects returns the caller's family projects.
func (c *Client) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	var projects []*domain.Project
	if err := c.do(ctx, http.MethodGet, "/v1/projects", nil, http.StatusOK, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject retrieves a project with its tasks.
func (c *Client) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	var project domain.Project
	if err := c.do(ctx, http.MethodGet, projectPath(id, ""), nil, http.StatusOK, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject applies the non-nil fields of updates to a project.
func (c *Client) UpdateProject(ctx context.Context, id string, updates ProjectUpdates) (*domain.Project, error) {
	var project domain.Project
	if err := c.do(ctx, http.MethodPatch, projectPath(id, ""), updates, http.StatusOK, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject deletes a project with its tasks and edges.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, projectPath(id, ""), nil, http.StatusNoContent, nil)
}

// ListTemplates returns the project templates. An empty category returns all of them.
func (c *Client) ListTemplates(ctx context.Context, category string) ([]domain.ProjectTemplate, error) {
	path := "/v1/projects/templates"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var templates []domain.ProjectTemplate
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// CreateProjectFromTemplate creates a project with the tasks and edges of a template.
func (c *Client) CreateProjectFromTemplate(ctx context.Context, templateID string, custom *TemplateCustomizations) (*domain.Project, error) {
	body := createFromTemplateRequest{TemplateID: templateID, Customizations: custom}

	var project domain.Project
	if err := c.do(ctx, http.MethodPost, "/v1/projects/templates", body, http.StatusCreated, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// VerifyProject reports whether the project's dependency graph is acyclic.
func (c *Client) VerifyProject(ctx context.Context, id string) (*domain.GraphReport, error) {
	var report domain.GraphReport
	if err := c.do(ctx, http.MethodGet, projectPath(id, "/verify"), nil, http.StatusOK, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// ListProjectDependencies returns every edge of a project.
func (c *Client) ListProjectDependencies(ctx context.Context, id string) ([]*domain.DependencyEdge, error) {
	var edges []*domain.DependencyEdge
	if err := c.do(ctx, http.MethodGet, projectPath(id, "/dependencies"), nil, http.StatusOK, &edges); err != nil {
		return nil, err
	}
	return edges, nil
}

// =============================================================================
// Task CRUD
// =============================================================================

// CreateTask creates a new task in a project.
func (c *Client) CreateTask(ctx context.Context, projectID, name, description string) (*domain.Task, error) {
	body := createTaskRequest{Name: name}
	if description != "" {
		body.Description = &description
	}

	var task domain.Task
	if err := c.do(ctx, http.MethodPost, projectPath(projectID, "/tasks"), body, http.StatusCreated, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ListTasks returns the tasks of a project in sort order.
func (c *Client) ListTasks(ctx context.Context, projectID string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := c.do(ctx, http.MethodGet, projectPath(projectID, "/tasks"), nil, http.StatusOK, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask retrieves a task with its dependencies.
func (c *Client) GetTask(ctx context.Context, id string) (*domain.TaskDetail, error) {
	var task domain.TaskDetail
	if err := c.do(ctx, http.MethodGet, taskPath(id, ""), nil, http.StatusOK, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies the non-nil fields of updates to a task.
func (c *Client) UpdateTask(ctx context.Context, id string, updates TaskUpdates) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodPatch, taskPath(id, ""), updates, http.StatusOK, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask deletes a task and its edges.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, taskPath(id, ""), nil, http.StatusNoContent, nil)
}

// =============================================================================
// Dependencies
// =============================================================================

// AddDependency records that dependentID is blocked by blockingID. An empty
// dependencyType lets the server apply its default.
func (c *Client) AddDependency(ctx context.Context, dependentID, blockingID, dependencyType string) (*domain.DependencyEdge, error) {
	body := addDependencyRequest{BlockingTaskID: blockingID}
	if dependencyType != "" {
		body.DependencyType = &dependencyType
	}

	var edge domain.DependencyEdge
	if err := c.do(ctx, http.MethodPost, taskPath(dependentID, "/dependencies"), body, http.StatusCreated, &edge); err != nil {
		return nil, err
	}
	return &edge, nil
}

// RemoveDependency deletes an edge by id.
func (c *Client) RemoveDependency(ctx context.Context, edgeID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/dependencies/"+url.PathEscape(edgeID), nil, http.StatusNoContent, nil)
}

// ListDependencies returns both directions of edges touching a task.
func (c *Client) ListDependencies(ctx context.Context, taskID string) (*domain.TaskDependencies, error) {
	var deps domain.TaskDependencies
	if err := c.do(ctx, http.MethodGet, taskPath(taskID, "/dependencies"), nil, http.StatusOK, &deps); err != nil {
		return nil, err
	}
	return &deps, nil
}

// =============================================================================
// Audit
// =============================================================================

// QueryAudit returns the family's audit entries, newest first.
func (c *Client) QueryAudit(ctx context.Context, q AuditQuery) ([]*domain.AuditEntry, error) {
	var entries []*domain.AuditEntry
	if err := c.do(ctx, http.MethodGet, "/v1/audit"+q.encode(), nil, http.StatusOK, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// =============================================================================
// Helper Methods
// =============================================================================

func projectPath(id, suffix string) string {
	return "/v1/projects/" + url.PathEscape(id) + suffix
}

func taskPath(id, suffix string) string {
	return "/v1/tasks/" + url.PathEscape(id) + suffix
}

// do sends a request, checks for the expected status, and decodes the
// response into out when it is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, want int, out interface{}) error {
	var (
		req *http.Request
		err error
	)
	if body != nil {
		req, err = c.newJSONRequest(ctx, method, path, body)
	} else {
		req, err = c.newRequest(ctx, method, path, nil)
	}
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return wrapConnectionError(fmt.Errorf("%s %s failed: %w", method, path, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return parseErrorResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// newRequest creates a new HTTP request with the identity headers.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(MemberHeader, c.scope.MemberID)
	req.Header.Set(FamilyHeader, c.scope.FamilyID)
	req.Header.Set(RoleHeader, string(c.scope.Role))

	return req, nil
}

// newJSONRequest creates a new HTTP request with JSON body.
func (c *Client) newJSONRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := c.newRequest(ctx, method, path, &buf)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	return req, nil
}
