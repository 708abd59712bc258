package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthapp/hearth/internal/domain"
)

func TestTaskService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, parent, "Garden")

	t.Run("create validates", func(t *testing.T) {
		bad := domain.TaskStatus("DONE")
		_, err := f.tasks.Create(ctx, parent, p.ID, CreateTaskInput{Name: "", Status: &bad})
		requireKind(t, err, domain.KindInvalidArgument, domain.ErrCodeValidationFailed)
		de, _ := domain.AsDomainError(err)
		assert.Len(t, de.Context["details"], 2)
	})

	t.Run("create in unknown project", func(t *testing.T) {
		_, err := f.tasks.Create(ctx, parent, "prj_missing", CreateTaskInput{Name: "x"})
		requireKind(t, err, domain.KindNotFound, domain.ErrCodeProjectNotFound)
	})

	t.Run("create in other family project", func(t *testing.T) {
		_, err := f.tasks.Create(ctx, otherFamily, p.ID, CreateTaskInput{Name: "x"})
		requireKind(t, err, domain.KindForbidden, domain.ErrCodeForbidden)
	})

	a := f.task(t, parent, p.ID, "Dig beds")
	b := f.task(t, parent, p.ID, "Plant seeds")
	assert.Equal(t, domain.TaskPending, a.Status)
	assert.Equal(t, 0, a.SortOrder)
	assert.Equal(t, 1, b.SortOrder)
	assert.Equal(t, "fam-1", b.FamilyID)

	_, err := f.add(parent, b.ID, a.ID)
	require.NoError(t, err)

	t.Run("get includes dependencies", func(t *testing.T) {
		detail, err := f.tasks.Get(ctx, parent, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "Plant seeds", detail.Name)
		require.Len(t, detail.BlockedBy, 1)
		assert.Equal(t, a.ID, detail.BlockedBy[0].BlockingTask.ID)
		assert.Empty(t, detail.Blocks)
	})

	t.Run("update", func(t *testing.T) {
		status := domain.TaskInProgress
		name := "Plant tomato seeds"
		updated, err := f.tasks.Update(ctx, parent, b.ID, UpdateTaskInput{Name: &name, Status: &status})
		require.NoError(t, err)
		assert.Equal(t, domain.TaskInProgress, updated.Status)
		assert.Equal(t, name, updated.Name)

		bad := domain.TaskStatus("nope")
		_, err = f.tasks.Update(ctx, parent, b.ID, UpdateTaskInput{Status: &bad})
		requireKind(t, err, domain.KindInvalidArgument, domain.ErrCodeValidationFailed)

		_, err = f.tasks.Update(ctx, otherFamily, b.ID, UpdateTaskInput{Name: &name})
		requireKind(t, err, domain.KindForbidden, domain.ErrCodeForbidden)
	})

	t.Run("list", func(t *testing.T) {
		tasks, err := f.tasks.List(ctx, parent, p.ID)
		require.NoError(t, err)
		assert.Len(t, tasks, 2)
	})

	t.Run("delete cascades edges", func(t *testing.T) {
		require.NoError(t, f.tasks.Delete(ctx, parent, a.ID))
		assert.Equal(t, 0, f.edgeCount(t, p.ID))

		err := f.tasks.Delete(ctx, parent, a.ID)
		requireKind(t, err, domain.KindNotFound, domain.ErrCodeTaskNotFound)
	})
}

func TestTaskService_PlanningFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, parent, "Birthday")

	assignee := "parent-2"
	due := time.Date(2026, 6, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	estimated := 2.5
	task, err := f.tasks.Create(ctx, parent, p.ID, CreateTaskInput{
		Name:           "Order cake",
		AssigneeID:     &assignee,
		DueDate:        &due,
		EstimatedHours: &estimated,
	})
	require.NoError(t, err)

	stored, err := f.store.Tasks().Get(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.AssigneeID)
	assert.Equal(t, assignee, *stored.AssigneeID)
	require.NotNil(t, stored.DueDate)
	assert.True(t, due.Equal(*stored.DueDate))
	assert.Equal(t, time.UTC, stored.DueDate.Location())
	require.NotNil(t, stored.EstimatedHours)
	assert.Equal(t, 2.5, *stored.EstimatedHours)
	assert.Nil(t, stored.ActualHours)

	actual := 3.0
	updated, err := f.tasks.Update(ctx, parent, task.ID, UpdateTaskInput{ActualHours: &actual})
	require.NoError(t, err)
	require.NotNil(t, updated.ActualHours)
	assert.Equal(t, 3.0, *updated.ActualHours)

	t.Run("negative hours rejected", func(t *testing.T) {
		negative := -0.5
		_, err := f.tasks.Create(ctx, parent, p.ID, CreateTaskInput{Name: "x", EstimatedHours: &negative})
		requireKind(t, err, domain.KindInvalidArgument, domain.ErrCodeValidationFailed)

		_, err = f.tasks.Update(ctx, parent, task.ID, UpdateTaskInput{ActualHours: &negative})
		requireKind(t, err, domain.KindInvalidArgument, domain.ErrCodeValidationFailed)
	})
}
