package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hearthapp/hearth/internal/domain"
	"github.com/hearthapp/hearth/internal/storage"
)

type taskRepository struct {
	q querier
}

const taskSelect = `
	SELECT t.id, t.project_id, p.family_id, t.name, t.description, t.status, t.sort_order,
	       t.assignee_id, t.due_date, t.estimated_hours, t.actual_hours, t.created_at, t.updated_at
	FROM project_tasks t
	JOIN projects p ON p.id = t.project_id
`

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO project_tasks (id, project_id, name, description, status, sort_order,
			assignee_id, due_date, estimated_hours, actual_hours, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		task.ID, task.ProjectID, task.Name, task.Description, string(task.Status), task.SortOrder,
		task.AssigneeID, task.DueDate, task.EstimatedHours, task.ActualHours,
		task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrDuplicate
		}
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *taskRepository) Get(ctx context.Context, id string) (*domain.Task, error) {
	task, err := scanTask(r.q.QueryRow(ctx, taskSelect+" WHERE t.id = $1", id))
	if notFound(err) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

func (r *taskRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	rows, err := r.q.Query(ctx, taskSelect+" WHERE t.project_id = $1 ORDER BY t.sort_order, t.created_at, t.id", projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE project_tasks
		SET name = $1, description = $2, status = $3, sort_order = $4,
			assignee_id = $5, due_date = $6, estimated_hours = $7, actual_hours = $8, updated_at = $9
		WHERE id = $10`,
		task.Name, task.Description, string(task.Status), task.SortOrder,
		task.AssigneeID, task.DueDate, task.EstimatedHours, task.ActualHours,
		task.UpdatedAt, task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return requireRow(tag)
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, "DELETE FROM project_tasks WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return requireRow(tag)
}

func requireRow(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	var status string
	if err := row.Scan(&task.ID, &task.ProjectID, &task.FamilyID, &task.Name, &task.Description,
		&status, &task.SortOrder, &task.AssigneeID, &task.DueDate, &task.EstimatedHours, &task.ActualHours,
		&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}
	task.Status = domain.TaskStatus(status)
	return &task, nil
}
