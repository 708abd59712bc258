package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hearthapp/hearth/internal/domain"
	"github.com/hearthapp/hearth/internal/metrics"
	"github.com/hearthapp/hearth/internal/storage/sqlite"
)

var (
	parent      = domain.Scope{FamilyID: "fam-1", MemberID: "parent-1", Role: domain.RoleParent}
	otherFamily = domain.Scope{FamilyID: "fam-2", MemberID: "parent-2", Role: domain.RoleParent}
)

type fixture struct {
	store     *sqlite.Store
	deps      *DependencyService
	projects  *ProjectService
	tasks     *TaskService
	templates *TemplateService
	metrics   *metrics.Metrics
	logs      *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithSink(t, nil)
}

// newFixtureWithSink wires services to a real SQLite store. A nil sink
// means the store's own audit repository.
func newFixtureWithSink(t *testing.T, sink AuditSink) *fixture {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "hearth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	if sink == nil {
		sink = store.AuditLogs()
	}
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)
	_, m := metrics.NewRegistry()

	f := &fixture{
		store:    store,
		deps:     NewDependencyService(store, sink, log, m),
		projects: NewProjectService(store, sink, log),
		tasks:    NewTaskService(store, sink, log),
		metrics:  m,
		logs:     logs,
	}
	f.templates = NewTemplateService(store, f.projects, f.tasks, f.deps, sink, log)
	return f
}

func (f *fixture) project(t *testing.T, scope domain.Scope, name string) *domain.Project {
	t.Helper()
	p, err := f.projects.Create(context.Background(), scope, CreateProjectInput{Name: name})
	require.NoError(t, err)
	return p
}

func (f *fixture) task(t *testing.T, scope domain.Scope, projectID, name string) *domain.Task {
	t.Helper()
	task, err := f.tasks.Create(context.Background(), scope, projectID, CreateTaskInput{Name: name})
	require.NoError(t, err)
	return task
}

func (f *fixture) edgeCount(t *testing.T, projectID string) int {
	t.Helper()
	edges, err := f.store.Dependencies().ListForProject(context.Background(), projectID)
	require.NoError(t, err)
	return len(edges)
}

func (f *fixture) add(scope domain.Scope, dependent, blocking string) (*domain.DependencyEdge, error) {
	return f.deps.AddDependency(context.Background(), scope, AddDependencyInput{
		DependentTaskID: dependent,
		BlockingTaskID:  blocking,
	})
}

// failingSink rejects every audit write.
type failingSink struct {
	mu    sync.Mutex
	calls int
}

func (s *failingSink) Log(ctx context.Context, entry *domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return errors.New("audit store offline")
}

func requireKind(t *testing.T, err error, kind domain.ErrorKind, code domain.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	de, ok := domain.AsDomainError(err)
	require.True(t, ok, "expected domain error, got %T: %v", err, err)
	require.Equal(t, kind, de.Kind, "kind for %v", err)
	require.Equal(t, code, de.Code, "code for %v", err)
}
