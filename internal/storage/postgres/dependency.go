package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hearthapp/hearth/internal/domain"
	"github.com/hearthapp/hearth/internal/storage"
)

type dependencyRepository struct {
	q querier
}

const edgeColumns = "d.id, d.dependent_task_id, d.blocking_task_id, d.dependency_type, d.created_at"

func (r *dependencyRepository) FindByID(ctx context.Context, id string) (*domain.DependencyEdge, error) {
	return r.findOne(ctx, "SELECT "+edgeColumns+" FROM task_dependencies d WHERE d.id = $1", id)
}

func (r *dependencyRepository) FindByPair(ctx context.Context, dependentID, blockingID string) (*domain.DependencyEdge, error) {
	return r.findOne(ctx,
		"SELECT "+edgeColumns+" FROM task_dependencies d WHERE d.dependent_task_id = $1 AND d.blocking_task_id = $2",
		dependentID, blockingID)
}

func (r *dependencyRepository) findOne(ctx context.Context, sql string, args ...any) (*domain.DependencyEdge, error) {
	edge, err := scanEdge(r.q.QueryRow(ctx, sql, args...))
	if notFound(err) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dependency: %w", err)
	}
	return edge, nil
}

func (r *dependencyRepository) ListForProject(ctx context.Context, projectID string) ([]*domain.DependencyEdge, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+edgeColumns+`
		FROM task_dependencies d
		JOIN project_tasks t ON t.id = d.dependent_task_id
		WHERE t.project_id = $1
		ORDER BY d.created_at, d.id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project dependencies: %w", err)
	}
	defer rows.Close()

	edges := []*domain.DependencyEdge{}
	for rows.Next() {
		edge, err := scanEdge(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dependency: %w", err)
		}
		edges = append(edges, edge)
	}
	return edges, rows.Err()
}

func (r *dependencyRepository) ListForTask(ctx context.Context, taskID string) (*domain.TaskDependencies, error) {
	result := &domain.TaskDependencies{
		TaskID:    taskID,
		BlockedBy: []domain.BlockedBy{},
		Blocks:    []domain.Blocks{},
	}

	rows, err := r.q.Query(ctx, `
		SELECT `+edgeColumns+`, t.id, t.name, t.status
		FROM task_dependencies d
		JOIN project_tasks t ON t.id = d.blocking_task_id
		WHERE d.dependent_task_id = $1
		ORDER BY d.created_at, d.id`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocking tasks: %w", err)
	}
	for rows.Next() {
		var item domain.BlockedBy
		var depType, status string
		if err := rows.Scan(&item.ID, &item.DependentTaskID, &item.BlockingTaskID, &depType, &item.CreatedAt,
			&item.BlockingTask.ID, &item.BlockingTask.Name, &status); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan dependency: %w", err)
		}
		item.DependencyType = domain.DependencyType(depType)
		item.BlockingTask.Status = domain.TaskStatus(status)
		result.BlockedBy = append(result.BlockedBy, item)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.q.Query(ctx, `
		SELECT `+edgeColumns+`, t.id, t.name, t.status
		FROM task_dependencies d
		JOIN project_tasks t ON t.id = d.dependent_task_id
		WHERE d.blocking_task_id = $1
		ORDER BY d.created_at, d.id`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dependent tasks: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item domain.Blocks
		var depType, status string
		if err := rows.Scan(&item.ID, &item.DependentTaskID, &item.BlockingTaskID, &depType, &item.CreatedAt,
			&item.DependentTask.ID, &item.DependentTask.Name, &status); err != nil {
			return nil, fmt.Errorf("failed to scan dependency: %w", err)
		}
		item.DependencyType = domain.DependencyType(depType)
		item.DependentTask.Status = domain.TaskStatus(status)
		result.Blocks = append(result.Blocks, item)
	}
	return result, rows.Err()
}

func (r *dependencyRepository) Insert(ctx context.Context, edge *domain.DependencyEdge) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO task_dependencies (id, dependent_task_id, blocking_task_id, dependency_type, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		edge.ID, edge.DependentTaskID, edge.BlockingTaskID, string(edge.DependencyType), edge.CreatedAt,
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
	tag, err := r.q.Exec(ctx, "DELETE FROM task_dependencies WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete dependency: %w", err)
	}
	return requireRow(tag)
}

func scanEdge(row pgx.Row) (*domain.DependencyEdge, error) {
	var edge domain.DependencyEdge
	var depType string
	if err := row.Scan(&edge.ID, &edge.DependentTaskID, &edge.BlockingTaskID, &depType, &edge.CreatedAt); err != nil {
		return nil, err
	}
	edge.DependencyType = domain.DependencyType(depType)
	return &edge, nil
}
