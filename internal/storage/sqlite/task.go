package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hearthapp/hearth/internal/domain"
	"github.com/hearthapp/hearth/internal/storage"
)

type taskRepository struct {
	db *sql.DB
	tx *sql.Tx
}

const taskSelect = `
	SELECT t.id, t.project_id, p.family_id, t.name, t.description, t.status, t.sort_order,
	       t.assignee_id, t.due_date, t.estimated_hours, t.actual_hours, t.created_at, t.updated_at
	FROM project_tasks t
	JOIN projects p ON p.id = t.project_id
`

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	_, err := pick(r.db, r.tx).ExecContext(ctx, `
		INSERT INTO project_tasks (id, project_id, name, description, status, sort_order,
			assignee_id, due_date, estimated_hours, actual_hours, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.ProjectID, task.Name, task.Description, task.Status, task.SortOrder,
		task.AssigneeID, nullableTime(task.DueDate), task.EstimatedHours, task.ActualHours,
		formatTime(task.CreatedAt), formatTime(task.UpdatedAt),
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
	row := pick(r.db, r.tx).QueryRowContext(ctx, taskSelect+" WHERE t.id = ?", id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

func (r *taskRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	rows, err := pick(r.db, r.tx).QueryContext(ctx,
		taskSelect+" WHERE t.project_id = ? ORDER BY t.sort_order, t.created_at, t.id", projectID)
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
	result, err := pick(r.db, r.tx).ExecContext(ctx, `
		UPDATE project_tasks
		SET name = ?, description = ?, status = ?, sort_order = ?,
			assignee_id = ?, due_date = ?, estimated_hours = ?, actual_hours = ?, updated_at = ?
		WHERE id = ?`,
		task.Name, task.Description, task.Status, task.SortOrder,
		task.AssigneeID, nullableTime(task.DueDate), task.EstimatedHours, task.ActualHours,
		formatTime(task.UpdatedAt), task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return requireRow(result)
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	result, err := pick(r.db, r.tx).ExecContext(ctx, "DELETE FROM project_tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var description, assignee, dueDate sql.NullString
	var estimated, actual sql.NullFloat64
	var createdAt, updatedAt string
	if err := row.Scan(&task.ID, &task.ProjectID, &task.FamilyID, &task.Name, &description,
		&task.Status, &task.SortOrder, &assignee, &dueDate, &estimated, &actual,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}
	task.Description = nullString(description)
	task.AssigneeID = nullString(assignee)
	task.DueDate = nullTime(dueDate)
	task.EstimatedHours = nullFloat(estimated)
	task.ActualHours = nullFloat(actual)
	task.CreatedAt = parseTime(createdAt)
	task.UpdatedAt = parseTime(updatedAt)
	return &task, nil
}
