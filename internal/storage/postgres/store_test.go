package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/sync/errgroup"

	"github.com/hearthapp/hearth/internal/domain"
	"github.com/hearthapp/hearth/internal/storage"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres integration test skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("hearth"),
		tcpostgres.WithUsername("hearth"),
		tcpostgres.WithPassword("hearth"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(ctr)
	})

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	store, err := Open(ctx, dsn, nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPostgresStore(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.Projects().Create(ctx, &domain.Project{
		ID: "prj_1", FamilyID: "fam-1", Name: "Garden", Status: domain.ProjectActive,
		CreatedByID: "parent-1", CreatedAt: now, UpdatedAt: now,
	}))
	for _, id := range []string{"tsk_a", "tsk_b", "tsk_c"} {
		require.NoError(t, s.Tasks().Create(ctx, &domain.Task{
			ID: id, ProjectID: "prj_1", Name: "Task " + id, Status: domain.TaskPending,
			CreatedAt: now, UpdatedAt: now,
		}))
	}

	t.Run("task get resolves family", func(t *testing.T) {
		task, err := s.Tasks().Get(ctx, "tsk_a")
		require.NoError(t, err)
		assert.Equal(t, "fam-1", task.FamilyID)
		assert.Nil(t, task.Description)

		_, err = s.Tasks().Get(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("edges", func(t *testing.T) {
		edge := &domain.DependencyEdge{ID: "dep_1", DependentTaskID: "tsk_b", BlockingTaskID: "tsk_a",
			DependencyType: domain.StartToStart, CreatedAt: now}
		require.NoError(t, s.Dependencies().Insert(ctx, edge))

		dup := *edge
		dup.ID = "dep_dup"
		assert.ErrorIs(t, s.Dependencies().Insert(ctx, &dup), storage.ErrDuplicate)

		got, err := s.Dependencies().FindByPair(ctx, "tsk_b", "tsk_a")
		require.NoError(t, err)
		assert.Equal(t, domain.StartToStart, got.DependencyType)

		deps, err := s.Dependencies().ListForTask(ctx, "tsk_a")
		require.NoError(t, err)
		require.Len(t, deps.Blocks, 1)
		assert.Equal(t, "tsk_b", deps.Blocks[0].DependentTask.ID)

		edges, err := s.Dependencies().ListForProject(ctx, "prj_1")
		require.NoError(t, err)
		assert.Len(t, edges, 1)
	})

	t.Run("project tx rollback", func(t *testing.T) {
		boom := errors.New("boom")
		err := s.WithProjectTx(ctx, "prj_1", func(tx storage.TxStore) error {
			if err := tx.Dependencies().Insert(ctx, &domain.DependencyEdge{ID: "dep_rb", DependentTaskID: "tsk_c",
				BlockingTaskID: "tsk_a", DependencyType: domain.Blocking, CreatedAt: now}); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		_, err = s.Dependencies().FindByID(ctx, "dep_rb")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("project tx serializes writers", func(t *testing.T) {
		var g errgroup.Group
		for i := 0; i < 8; i++ {
			g.Go(func() error {
				return s.WithProjectTx(ctx, "prj_1", func(tx storage.TxStore) error {
					_, err := tx.Dependencies().FindByPair(ctx, "tsk_c", "tsk_b")
					if err == nil {
						return nil
					}
					if !errors.Is(err, storage.ErrNotFound) {
						return err
					}
					return tx.Dependencies().Insert(ctx, &domain.DependencyEdge{
						ID: fmt.Sprintf("dep_race_%d", i), DependentTaskID: "tsk_c", BlockingTaskID: "tsk_b",
						DependencyType: domain.FinishToStart, CreatedAt: now,
					})
				})
			})
		}
		require.NoError(t, g.Wait())
	})

	t.Run("cascade delete", func(t *testing.T) {
		require.NoError(t, s.Tasks().Delete(ctx, "tsk_a"))
		_, err := s.Dependencies().FindByID(ctx, "dep_1")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("audit", func(t *testing.T) {
		scope := domain.Scope{FamilyID: "fam-1", MemberID: "parent-1", Role: domain.RoleParent}
		entry := domain.NewAuditEntry(scope, domain.ActionAddEdge).With("dependency_id", "dep_1")
		require.NoError(t, s.AuditLogs().Log(ctx, entry))
		assert.NotZero(t, entry.ID)

		entries, err := s.AuditLogs().Query(ctx, storage.AuditQueryOptions{FamilyID: "fam-1"})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "dep_1", entries[0].Metadata["dependency_id"])
	})

	t.Run("planning fields and project delete", func(t *testing.T) {
		p, err := s.Projects().Get(ctx, "prj_1")
		require.NoError(t, err)
		due := now.Add(72 * time.Hour).Truncate(time.Microsecond)
		budget := 40.0
		p.DueDate = &due
		p.Budget = &budget
		require.NoError(t, s.Projects().Update(ctx, p))

		got, err := s.Projects().Get(ctx, "prj_1")
		require.NoError(t, err)
		require.NotNil(t, got.DueDate)
		assert.True(t, due.Equal(*got.DueDate))
		require.NotNil(t, got.Budget)
		assert.Equal(t, 40.0, *got.Budget)
		assert.Nil(t, got.StartDate)

		task, err := s.Tasks().Get(ctx, "tsk_b")
		require.NoError(t, err)
		hours := 1.25
		task.ActualHours = &hours
		require.NoError(t, s.Tasks().Update(ctx, task))
		task, err = s.Tasks().Get(ctx, "tsk_b")
		require.NoError(t, err)
		require.NotNil(t, task.ActualHours)
		assert.Equal(t, 1.25, *task.ActualHours)

		require.NoError(t, s.Projects().Create(ctx, &domain.Project{
			ID: "prj_gone", FamilyID: "fam-1", Name: "Gone", Status: domain.ProjectActive,
			CreatedByID: "parent-1", CreatedAt: now, UpdatedAt: now,
		}))
		require.NoError(t, s.Tasks().Create(ctx, &domain.Task{
			ID: "tsk_gone", ProjectID: "prj_gone", Name: "Gone", Status: domain.TaskPending,
			CreatedAt: now, UpdatedAt: now,
		}))
		require.NoError(t, s.WithProjectTx(ctx, "prj_gone", func(tx storage.TxStore) error {
			return tx.Projects().Delete(ctx, "prj_gone")
		}))
		_, err = s.Tasks().Get(ctx, "tsk_gone")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, s.Projects().Delete(ctx, "prj_gone"), storage.ErrNotFound)
	})

	t.Run("migrations rerun cleanly", func(t *testing.T) {
		require.NoError(t, RunMigrations(ctx, s.pool))
	})
}
