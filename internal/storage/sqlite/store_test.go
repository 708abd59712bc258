package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/hearthapp/hearth/internal/domain"
	"github.com/hearthapp/hearth/internal/storage"
)

// setupTestDB opens a file-backed store in a temp dir.
func setupTestDB(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "hearth.db"))
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func seedProject(t *testing.T, s *Store, id, familyID string) *domain.Project {
	t.Helper()
	now := time.Now().UTC()
	p := &domain.Project{
		ID: id, FamilyID: familyID, Name: "Project " + id,
		Status: domain.ProjectActive, CreatedByID: "parent-1",
		CreatedAt: now, UpdatedAt: now,
	}
	if err := s.Projects().Create(context.Background(), p); err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	return p
}

func seedTask(t *testing.T, s *Store, id, projectID string) *domain.Task {
	t.Helper()
	now := time.Now().UTC()
	task := &domain.Task{
		ID: id, ProjectID: projectID, Name: "Task " + id,
		Status: domain.TaskPending, CreatedAt: now, UpdatedAt: now,
	}
	if err := s.Tasks().Create(context.Background(), task); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	return task
}

func seedEdge(t *testing.T, s *Store, id, dependent, blocking string) *domain.DependencyEdge {
	t.Helper()
	edge := &domain.DependencyEdge{
		ID: id, DependentTaskID: dependent, BlockingTaskID: blocking,
		DependencyType: domain.FinishToStart, CreatedAt: time.Now().UTC(),
	}
	if err := s.Dependencies().Insert(context.Background(), edge); err != nil {
		t.Fatalf("failed to insert edge: %v", err)
	}
	return edge
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hearth.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	v1, err := GetCurrentVersion(s1.db)
	if err != nil {
		t.Fatalf("GetCurrentVersion: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()
	v2, _ := GetCurrentVersion(s2.db)

	if v1 < 2 || v1 != v2 {
		t.Errorf("versions = %d, %d; want equal and >= 2", v1, v2)
	}
}

func TestOpen_InMemory(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) error = %v", err)
	}
	defer s.Close()

	seedProject(t, s, "prj_1", "fam-1")
	if _, err := s.Projects().Get(context.Background(), "prj_1"); err != nil {
		t.Errorf("Get() error = %v", err)
	}
}

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		name    string
		want    int
		wantErr bool
	}{
		{"001_initial_schema.sql", 1, false},
		{"012_add_index.sql", 12, false},
		{"initial.sql", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractVersion(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("extractVersion() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("extractVersion() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestProjects(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	seedProject(t, s, "prj_a", "fam-1")
	seedProject(t, s, "prj_b", "fam-1")
	seedProject(t, s, "prj_c", "fam-2")

	t.Run("get", func(t *testing.T) {
		p, err := s.Projects().Get(ctx, "prj_a")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if p.FamilyID != "fam-1" || p.Status != domain.ProjectActive || p.CreatedAt.IsZero() {
			t.Errorf("Get() = %+v", p)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := s.Projects().Get(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Get() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("list by family", func(t *testing.T) {
		list, err := s.Projects().ListByFamily(ctx, "fam-1")
		if err != nil {
			t.Fatalf("ListByFamily() error = %v", err)
		}
		if len(list) != 2 {
			t.Errorf("len = %d, want 2", len(list))
		}
	})

	t.Run("duplicate id", func(t *testing.T) {
		now := time.Now()
		err := s.Projects().Create(ctx, &domain.Project{ID: "prj_a", FamilyID: "fam-1", Name: "x",
			Status: domain.ProjectActive, CreatedByID: "p", CreatedAt: now, UpdatedAt: now})
		if !errors.Is(err, storage.ErrDuplicate) {
			t.Errorf("Create() error = %v, want ErrDuplicate", err)
		}
	})
}

func TestProjects_UpdateAndDelete(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()
	p := seedProject(t, s, "prj_1", "fam-1")
	seedTask(t, s, "tsk_a", "prj_1")
	seedTask(t, s, "tsk_b", "prj_1")
	seedEdge(t, s, "dep_1", "tsk_b", "tsk_a")

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	budget := 75.5
	notes := "bring chairs"
	p.StartDate = &start
	p.Budget = &budget
	p.Notes = &notes
	p.Status = domain.ProjectCompleted
	if err := s.Projects().Update(ctx, p); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := s.Projects().Get(ctx, "prj_1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.StartDate == nil || !got.StartDate.Equal(start) {
		t.Errorf("StartDate = %v, want %v", got.StartDate, start)
	}
	if got.DueDate != nil {
		t.Errorf("DueDate = %v, want nil", got.DueDate)
	}
	if got.Budget == nil || *got.Budget != budget {
		t.Errorf("Budget = %v, want %v", got.Budget, budget)
	}
	if got.Notes == nil || *got.Notes != notes {
		t.Errorf("Notes = %v, want %q", got.Notes, notes)
	}
	if got.Status != domain.ProjectCompleted {
		t.Errorf("Status = %s", got.Status)
	}

	missing := *p
	missing.ID = "prj_missing"
	if err := s.Projects().Update(ctx, &missing); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Update missing: got %v, want ErrNotFound", err)
	}

	err = s.WithProjectTx(ctx, "prj_1", func(tx storage.TxStore) error {
		return tx.Projects().Delete(ctx, "prj_1")
	})
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Tasks().Get(ctx, "tsk_a"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("task survived project delete: %v", err)
	}
	if _, err := s.Dependencies().FindByID(ctx, "dep_1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("edge survived project delete: %v", err)
	}
	if err := s.Projects().Delete(ctx, "prj_1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second Delete: got %v, want ErrNotFound", err)
	}
}

func TestTasks_PlanningFields(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()
	seedProject(t, s, "prj_1", "fam-1")
	task := seedTask(t, s, "tsk_a", "prj_1")

	due := time.Date(2026, 8, 3, 18, 0, 0, 0, time.UTC)
	assignee := "kid-1"
	estimated := 0.5
	task.DueDate = &due
	task.AssigneeID = &assignee
	task.EstimatedHours = &estimated
	if err := s.Tasks().Update(ctx, task); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := s.Tasks().Get(ctx, "tsk_a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("DueDate = %v, want %v", got.DueDate, due)
	}
	if got.AssigneeID == nil || *got.AssigneeID != assignee {
		t.Errorf("AssigneeID = %v", got.AssigneeID)
	}
	if got.EstimatedHours == nil || *got.EstimatedHours != estimated {
		t.Errorf("EstimatedHours = %v", got.EstimatedHours)
	}
	if got.ActualHours != nil {
		t.Errorf("ActualHours = %v, want nil", *got.ActualHours)
	}
}

func TestTasks(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()
	seedProject(t, s, "prj_1", "fam-1")
	seedTask(t, s, "tsk_a", "prj_1")
	seedTask(t, s, "tsk_b", "prj_1")

	t.Run("get resolves family", func(t *testing.T) {
		task, err := s.Tasks().Get(ctx, "tsk_a")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if task.FamilyID != "fam-1" || task.ProjectID != "prj_1" {
			t.Errorf("Get() = %+v", task)
		}
	})

	t.Run("update", func(t *testing.T) {
		task, _ := s.Tasks().Get(ctx, "tsk_b")
		task.Status = domain.TaskInProgress
		task.SortOrder = 7
		task.SetDescription("bring ladder")
		task.UpdatedAt = time.Now()
		if err := s.Tasks().Update(ctx, task); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		got, _ := s.Tasks().Get(ctx, "tsk_b")
		if got.Status != domain.TaskInProgress || got.SortOrder != 7 || got.Description == nil {
			t.Errorf("after Update() = %+v", got)
		}
	})

	t.Run("list orders by sort order", func(t *testing.T) {
		tasks, err := s.Tasks().ListByProject(ctx, "prj_1")
		if err != nil {
			t.Fatalf("ListByProject() error = %v", err)
		}
		if len(tasks) != 2 || tasks[0].ID != "tsk_a" {
			t.Errorf("ListByProject() order wrong: %v", tasks)
		}
	})

	t.Run("update missing", func(t *testing.T) {
		err := s.Tasks().Update(ctx, &domain.Task{ID: "nope", Status: domain.TaskPending})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Update() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("unknown project rejected by foreign key", func(t *testing.T) {
		now := time.Now()
		err := s.Tasks().Create(ctx, &domain.Task{ID: "tsk_x", ProjectID: "missing", Name: "x",
			Status: domain.TaskPending, CreatedAt: now, UpdatedAt: now})
		if err == nil {
			t.Error("Create() with unknown project should fail")
		}
	})
}

func TestDependencies(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()
	seedProject(t, s, "prj_1", "fam-1")
	seedTask(t, s, "tsk_a", "prj_1")
	seedTask(t, s, "tsk_b", "prj_1")
	seedTask(t, s, "tsk_c", "prj_1")
	seedEdge(t, s, "dep_1", "tsk_b", "tsk_a")
	seedEdge(t, s, "dep_2", "tsk_c", "tsk_b")

	t.Run("find by id and pair", func(t *testing.T) {
		e, err := s.Dependencies().FindByID(ctx, "dep_1")
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if e.DependentTaskID != "tsk_b" || e.BlockingTaskID != "tsk_a" || e.DependencyType != domain.FinishToStart {
			t.Errorf("FindByID() = %+v", e)
		}
		e, err = s.Dependencies().FindByPair(ctx, "tsk_c", "tsk_b")
		if err != nil || e.ID != "dep_2" {
			t.Errorf("FindByPair() = %v, %v", e, err)
		}
		if _, err := s.Dependencies().FindByPair(ctx, "tsk_a", "tsk_b"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("FindByPair() reverse error = %v, want ErrNotFound", err)
		}
	})

	t.Run("duplicate pair", func(t *testing.T) {
		err := s.Dependencies().Insert(ctx, &domain.DependencyEdge{ID: "dep_9", DependentTaskID: "tsk_b",
			BlockingTaskID: "tsk_a", DependencyType: domain.Blocking, CreatedAt: time.Now()})
		if !errors.Is(err, storage.ErrDuplicate) {
			t.Errorf("Insert() error = %v, want ErrDuplicate", err)
		}
	})

	t.Run("self edge rejected by check constraint", func(t *testing.T) {
		err := s.Dependencies().Insert(ctx, &domain.DependencyEdge{ID: "dep_self", DependentTaskID: "tsk_a",
			BlockingTaskID: "tsk_a", DependencyType: domain.Blocking, CreatedAt: time.Now()})
		if err == nil {
			t.Error("Insert() of self edge should fail")
		}
	})

	t.Run("list for project", func(t *testing.T) {
		edges, err := s.Dependencies().ListForProject(ctx, "prj_1")
		if err != nil {
			t.Fatalf("ListForProject() error = %v", err)
		}
		if len(edges) != 2 {
			t.Errorf("len = %d, want 2", len(edges))
		}
	})

	t.Run("list for task nests the other end", func(t *testing.T) {
		deps, err := s.Dependencies().ListForTask(ctx, "tsk_b")
		if err != nil {
			t.Fatalf("ListForTask() error = %v", err)
		}
		if len(deps.BlockedBy) != 1 || deps.BlockedBy[0].BlockingTask.ID != "tsk_a" {
			t.Errorf("BlockedBy = %+v", deps.BlockedBy)
		}
		if len(deps.Blocks) != 1 || deps.Blocks[0].DependentTask.ID != "tsk_c" {
			t.Errorf("Blocks = %+v", deps.Blocks)
		}
		if deps.BlockedBy[0].BlockingTask.Name != "Task tsk_a" {
			t.Errorf("nested name = %q", deps.BlockedBy[0].BlockingTask.Name)
		}
	})

	t.Run("delete by id", func(t *testing.T) {
		if err := s.Dependencies().DeleteByID(ctx, "dep_2"); err != nil {
			t.Fatalf("DeleteByID() error = %v", err)
		}
		if err := s.Dependencies().DeleteByID(ctx, "dep_2"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("second DeleteByID() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("deleting a task cascades to its edges", func(t *testing.T) {
		if err := s.Tasks().Delete(ctx, "tsk_a"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := s.Dependencies().FindByID(ctx, "dep_1"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("edge should be gone, got %v", err)
		}
	})
}

func TestWithProjectTx(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()
	seedProject(t, s, "prj_1", "fam-1")
	seedTask(t, s, "tsk_a", "prj_1")
	seedTask(t, s, "tsk_b", "prj_1")

	t.Run("rollback on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := s.WithProjectTx(ctx, "prj_1", func(tx storage.TxStore) error {
			if err := tx.Dependencies().Insert(ctx, &domain.DependencyEdge{ID: "dep_rb", DependentTaskID: "tsk_b",
				BlockingTaskID: "tsk_a", DependencyType: domain.FinishToStart, CreatedAt: time.Now()}); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("WithProjectTx() error = %v, want boom", err)
		}
		if _, err := s.Dependencies().FindByID(ctx, "dep_rb"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("rolled back edge should not exist, got %v", err)
		}
	})

	t.Run("commit", func(t *testing.T) {
		err := s.WithProjectTx(ctx, "prj_1", func(tx storage.TxStore) error {
			if _, err := tx.Tasks().Get(ctx, "tsk_a"); err != nil {
				return err
			}
			return tx.Dependencies().Insert(ctx, &domain.DependencyEdge{ID: "dep_ok", DependentTaskID: "tsk_b",
				BlockingTaskID: "tsk_a", DependencyType: domain.FinishToStart, CreatedAt: time.Now()})
		})
		if err != nil {
			t.Fatalf("WithProjectTx() error = %v", err)
		}
		if _, err := s.Dependencies().FindByID(ctx, "dep_ok"); err != nil {
			t.Errorf("committed edge missing: %v", err)
		}
	})

	t.Run("lock table is emptied", func(t *testing.T) {
		if n := s.locks.size(); n != 0 {
			t.Errorf("locks.size() = %d, want 0", n)
		}
	})
}

func TestAudit(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()
	scope := domain.Scope{FamilyID: "fam-1", MemberID: "parent-1", Role: domain.RoleParent}

	e1 := domain.NewAuditEntry(scope, domain.ActionAddEdge).With("dependency_id", "dep_1")
	if err := s.AuditLogs().Log(ctx, e1); err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if e1.ID == 0 {
		t.Error("Log() should set the entry ID")
	}
	e2 := domain.NewAuditEntry(scope, domain.ActionRemoveEdge)
	e2.CreatedAt = e1.CreatedAt.Add(time.Second)
	if err := s.AuditLogs().Log(ctx, e2); err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	other := domain.NewAuditEntry(domain.Scope{FamilyID: "fam-2", MemberID: "x"}, domain.ActionAddEdge)
	if err := s.AuditLogs().Log(ctx, other); err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	t.Run("family scoped newest first", func(t *testing.T) {
		entries, err := s.AuditLogs().Query(ctx, storage.AuditQueryOptions{FamilyID: "fam-1"})
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("len = %d, want 2", len(entries))
		}
		if entries[0].Action != domain.ActionRemoveEdge {
			t.Errorf("first action = %v, want newest", entries[0].Action)
		}
		if entries[1].Metadata["dependency_id"] != "dep_1" {
			t.Errorf("metadata = %v", entries[1].Metadata)
		}
	})

	t.Run("filter by action", func(t *testing.T) {
		action := string(domain.ActionAddEdge)
		entries, err := s.AuditLogs().Query(ctx, storage.AuditQueryOptions{FamilyID: "fam-1", Action: &action})
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("len = %d, want 1", len(entries))
		}
	})

	t.Run("limit", func(t *testing.T) {
		entries, _ := s.AuditLogs().Query(ctx, storage.AuditQueryOptions{FamilyID: "fam-1", Limit: 1})
		if len(entries) != 1 {
			t.Errorf("len = %d, want 1", len(entries))
		}
	})
}

func TestClose_Twice(t *testing.T) {
	s := setupTestDB(t)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestClose_Concurrent(t *testing.T) {
	s := setupTestDB(t)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Close()
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("Close() error = %v", err)
		}
	}
	if err := s.Ping(context.Background()); err == nil {
		t.Error("expected Ping to fail after Close")
	}
}
