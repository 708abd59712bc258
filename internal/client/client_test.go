package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthapp/hearth/internal/api"
	"github.com/hearthapp/hearth/internal/domain"
	"github.com/hearthapp/hearth/internal/storage/sqlite"
)

var parentScope = domain.Scope{FamilyID: "fam-1", MemberID: "parent-1", Role: domain.RoleParent}

// newLiveClient serves the real router over a fresh SQLite store.
func newLiveClient(t *testing.T, scope domain.Scope) *Client {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "hearth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	srv := httptest.NewServer(api.NewRouter(api.Deps{Store: store}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, scope)
}

// =============================================================================
// Request Building Tests
// =============================================================================

func TestClient_IdentityHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	c := NewClient(server.URL, domain.Scope{FamilyID: "fam-9", MemberID: "mem-9", Role: domain.RoleChild})
	_, err := c.ListProjects(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "mem-9", got.Get(MemberHeader))
	assert.Equal(t, "fam-9", got.Get(FamilyHeader))
	assert.Equal(t, "CHILD", got.Get(RoleHeader))
}

func TestClient_ContentType(t *testing.T) {
	var contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.Project{ID: "prj_1"})
	}))
	defer server.Close()

	c := NewClient(server.URL, parentScope)
	_, err := c.CreateProject(context.Background(), "Garden", "")
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
}

func TestAuditQuery_Encode(t *testing.T) {
	assert.Equal(t, "", AuditQuery{}.encode())

	q := AuditQuery{
		Action:   "PROJECT_DEPENDENCY_ADDED",
		MemberID: "mem-1",
		Start:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Limit:    5,
	}
	assert.Equal(t, "?action=PROJECT_DEPENDENCY_ADDED&limit=5&member=mem-1&start=2026-01-02T03%3A04%3A05Z", q.encode())
}

// =============================================================================
// Health Tests
// =============================================================================

func TestHealth_ServerRunning(t *testing.T) {
	c := newLiveClient(t, parentScope)
	assert.NoError(t, c.Health(context.Background()))
}

func TestHealth_ServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewClient(server.URL, parentScope)
	assert.ErrorIs(t, c.Health(context.Background()), ErrServerUnhealthy)
}

func TestHealth_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	c := NewClient(addr, parentScope)
	assert.ErrorIs(t, c.Health(context.Background()), ErrServerNotRunning)
}

// =============================================================================
// Error Mapping Tests
// =============================================================================

func TestErrorResponse_MapsToDomainError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":{"code":"CYCLE_DETECTED","message":"Circular dependency detected","context":{"dependent_task_id":"a"}}}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, parentScope)
	_, err := c.AddDependency(context.Background(), "a", "b", "")

	de, ok := domain.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindConflict, de.Kind)
	assert.Equal(t, domain.ErrCodeCycleDetected, de.Code)
	assert.Equal(t, "a", de.Context["dependent_task_id"])
}

func TestErrorResponse_NonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	c := NewClient(server.URL, parentScope)
	_, err := c.ListProjects(context.Background())
	require.Error(t, err)
	_, ok := domain.AsDomainError(err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "upstream down")
}

// =============================================================================
// End-to-end Tests
// =============================================================================

func TestClient_DependencyWorkflow(t *testing.T) {
	ctx := context.Background()
	c := newLiveClient(t, parentScope)

	project, err := c.CreateProject(ctx, "Garden", "Spring planting")
	require.NoError(t, err)

	buy, err := c.CreateTask(ctx, project.ID, "Buy seeds", "")
	require.NoError(t, err)
	plant, err := c.CreateTask(ctx, project.ID, "Plant seeds", "")
	require.NoError(t, err)
	water, err := c.CreateTask(ctx, project.ID, "Water", "")
	require.NoError(t, err)

	edge, err := c.AddDependency(ctx, plant.ID, buy.ID, "")
	require.NoError(t, err)
	assert.Equal(t, domain.FinishToStart, edge.DependencyType)

	_, err = c.AddDependency(ctx, water.ID, plant.ID, "BLOCKING")
	require.NoError(t, err)

	_, err = c.AddDependency(ctx, buy.ID, water.ID, "")
	assert.True(t, domain.IsKind(err, domain.KindConflict))
	de, _ := domain.AsDomainError(err)
	assert.Equal(t, domain.ErrCodeCycleDetected, de.Code)

	deps, err := c.ListDependencies(ctx, plant.ID)
	require.NoError(t, err)
	assert.Len(t, deps.BlockedBy, 1)
	assert.Len(t, deps.Blocks, 1)

	report, err := c.VerifyProject(ctx, project.ID)
	require.NoError(t, err)
	assert.True(t, report.Acyclic)
	assert.Equal(t, 2, report.EdgeCount)

	require.NoError(t, c.RemoveDependency(ctx, edge.ID))
	err = c.RemoveDependency(ctx, edge.ID)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	edges, err := c.ListProjectDependencies(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, edges, 1)

	entries, err := c.QueryAudit(ctx, AuditQuery{Action: string(domain.ActionRemoveEdge)})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, edge.ID, entries[0].Metadata["dependency_id"])
}

func TestClient_TaskLifecycle(t *testing.T) {
	ctx := context.Background()
	c := newLiveClient(t, parentScope)

	project, err := c.CreateProject(ctx, "Kitchen", "")
	require.NoError(t, err)
	task, err := c.CreateTask(ctx, project.ID, "Clean oven", "")
	require.NoError(t, err)

	status := string(domain.TaskCompleted)
	updated, err := c.UpdateTask(ctx, task.ID, TaskUpdates{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCompleted, updated.Status)

	tasks, err := c.ListTasks(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	got, err := c.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, got.Tasks, 1)

	require.NoError(t, c.DeleteTask(ctx, task.ID))
	_, err = c.GetTask(ctx, task.ID)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestClient_ValidationDetails(t *testing.T) {
	ctx := context.Background()
	c := newLiveClient(t, parentScope)

	_, err := c.CreateProject(ctx, "", "")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidArgument))
	assert.Equal(t, []string{"name is required"}, Details(err))
}

func TestClient_ChildIsForbidden(t *testing.T) {
	c := newLiveClient(t, domain.Scope{FamilyID: "fam-1", MemberID: "kid", Role: domain.RoleChild})

	_, err := c.ListProjects(context.Background())
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
	assert.False(t, errors.Is(err, ErrServerNotRunning))
}

func TestClient_ProjectLifecycle(t *testing.T) {
	c := newLiveClient(t, parentScope)
	ctx := context.Background()

	project, err := c.CreateProject(ctx, "Attic", "")
	require.NoError(t, err)

	budget := 800.0
	notes := "ask about insulation"
	updated, err := c.UpdateProject(ctx, project.ID, ProjectUpdates{Budget: &budget, Notes: &notes})
	require.NoError(t, err)
	require.NotNil(t, updated.Budget)
	assert.Equal(t, 800.0, *updated.Budget)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, notes, *updated.Notes)

	require.NoError(t, c.DeleteProject(ctx, project.ID))
	_, err = c.GetProject(ctx, project.ID)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestClient_Templates(t *testing.T) {
	c := newLiveClient(t, parentScope)
	ctx := context.Background()

	templates, err := c.ListTemplates(ctx, "home")
	require.NoError(t, err)
	require.NotEmpty(t, templates)
	for _, tpl := range templates {
		assert.Equal(t, domain.TemplateHome, tpl.Category)
	}

	name := "Big move"
	project, err := c.CreateProjectFromTemplate(ctx, "moving-house", &TemplateCustomizations{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, project.Name)
	assert.Len(t, project.Tasks, 12)

	report, err := c.VerifyProject(ctx, project.ID)
	require.NoError(t, err)
	assert.True(t, report.Acyclic)

	_, err = c.CreateProjectFromTemplate(ctx, "space-launch", nil)
	de, ok := domain.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrCodeTemplateNotFound, de.Code)
}
