package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hearthapp/hearth/internal/domain"
	"github.com/hearthapp/hearth/internal/storage"
)

type dependencyRepository struct {
	db *sql.DB
	tx *sql.Tx
}

const edgeColumns = "d.id, d.dependent_task_id, d.blocking_task_id, d.dependency_type, d.created_at"

func (r *dependencyRepository) FindByID(ctx context.Context, id string) (*domain.DependencyEdge, error) {
	row := pick(r.db, r.tx).QueryRowContext(ctx,
		"SELECT "+edgeColumns+" FROM task_dependencies d WHERE d.id = ?", id)
	return r.scanOne(row)
}

func (r *dependencyRepository) FindByPair(ctx context.Context, dependentID, blockingID string) (*domain.DependencyEdge, error) {
	row := pick(r.db, r.tx).QueryRowContext(ctx,
		"SELECT "+edgeColumns+" FROM task_dependencies d WHERE d.dependent_task_id = ? AND d.blocking_task_id = ?",
		dependentID, blockingID)
	return r.scanOne(row)
}

func (r *dependencyRepository) scanOne(row *sql.Row) (*domain.DependencyEdge, error) {
	var edge domain.DependencyEdge
	var createdAt string
	err := row.Scan(&edge.ID, &edge.DependentTaskID, &edge.BlockingTaskID, &edge.DependencyType, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dependency: %w", err)
	}
	edge.CreatedAt = parseTime(createdAt)
	return &edge, nil
}

func (r *dependencyRepository) ListForProject(ctx context.Context, projectID string) ([]*domain.DependencyEdge, error) {
	rows, err := pick(r.db, r.tx).QueryContext(ctx, `
		SELECT `+edgeColumns+`
		FROM task_dependencies d
		JOIN project_tasks t ON t.id = d.dependent_task_id
		WHERE t.project_id = ?
		ORDER BY d.created_at, d.id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project dependencies: %w", err)
	}
	defer rows.Close()

	edges := []*domain.DependencyEdge{}
	for rows.Next() {
		var edge domain.DependencyEdge
		var createdAt string
		if err := rows.Scan(&edge.ID, &edge.DependentTaskID, &edge.BlockingTaskID, &edge.DependencyType, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan dependency: %w", err)
		}
		edge.CreatedAt = parseTime(createdAt)
		edges = append(edges, &edge)
	}
	return edges, rows.Err()
}

func (r *dependencyRepository) ListForTask(ctx context.Context, taskID string) (*domain.TaskDependencies, error) {
	exec := pick(r.db, r.tx)
	result := &domain.TaskDependencies{
		TaskID:    taskID,
		BlockedBy: []domain.BlockedBy{},
		Blocks:    []domain.Blocks{},
	}

	rows, err := exec.QueryContext(ctx, `
		SELECT `+edgeColumns+`, t.id, t.name, t.status
		FROM task_dependencies d
		JOIN project_tasks t ON t.id = d.blocking_task_id
		WHERE d.dependent_task_id = ?
		ORDER BY d.created_at, d.id`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocking tasks: %w", err)
	}
	for rows.Next() {
		var item domain.BlockedBy
		var createdAt string
		if err := rows.Scan(&item.ID, &item.DependentTaskID, &item.BlockingTaskID, &item.DependencyType, &createdAt,
			&item.BlockingTask.ID, &item.BlockingTask.Name, &item.BlockingTask.Status); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan dependency: %w", err)
		}
		item.CreatedAt = parseTime(createdAt)
		result.BlockedBy = append(result.BlockedBy, item)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	rows, err = exec.QueryContext(ctx, `
		SELECT `+edgeColumns+`, t.id, t.name, t.status
		FROM task_dependencies d
		JOIN project_tasks t ON t.id = d.dependent_task_id
		WHERE d.blocking_task_id = ?
		ORDER BY d.created_at, d.id`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dependent tasks: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item domain.Blocks
		var createdAt string
		if err := rows.Scan(&item.ID, &item.DependentTaskID, &item.BlockingTaskID, &item.DependencyType, &createdAt,
			&item.DependentTask.ID, &item.DependentTask.Name, &item.DependentTask.Status); err != nil {
			return nil, fmt.Errorf("failed to scan dependency: %w", err)
		}
		item.CreatedAt = parseTime(createdAt)
		result.Blocks = append(result.Blocks, item)
	}
	return result, rows.Err()
}

func (r *dependencyRepository) Insert(ctx context.Context, edge *domain.DependencyEdge) error {
	_, err := pick(r.db, r.tx).ExecContext(ctx, `
		INSERT INTO task_dependencies (id, dependent_task_id, blocking_task_id, dependency_type, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		edge.ID, edge.DependentTaskID, edge.BlockingTaskID, edge.DependencyType, formatTime(edge.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrDuplicate
		}
		return fmt.Errorf("failed to insert dependency: %w", err)
	}
	return nil
}

func (r *dependencyRepository) DeleteByID(ctx context.Context, id string) error {
	result, err := pick(r.db, r.tx).ExecContext(ctx, "DELETE FROM task_dependencies WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete dependency: %w", err)
	}
	return requireRow(result)
}
