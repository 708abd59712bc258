package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hearthapp/hearth/internal/domain"
	"github.com/hearthapp/hearth/internal/storage"
)

type projectRepository struct {
	q querier
}

const projectColumns = "id, family_id, name, description, status, start_date, due_date, budget, notes, created_by_id, created_at, updated_at"

func (r *projectRepository) Create(ctx context.Context, p *domain.Project) error {
	_, err := r.q.Exec(ctx,
		"INSERT INTO projects ("+projectColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)",
		p.ID, p.FamilyID, p.Name, p.Description, string(p.Status),
		p.StartDate, p.DueDate, p.Budget, p.Notes,
		p.CreatedByID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrDuplicate
		}
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (r *projectRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	p, err := scanProject(r.q.QueryRow(ctx, "SELECT "+projectColumns+" FROM projects WHERE id = $1", id))
	if notFound(err) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

func (r *projectRepository) ListByFamily(ctx context.Context, familyID string) ([]*domain.Project, error) {
	rows, err := r.q.Query(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE family_id = $1 ORDER BY created_at, id", familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []*domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *projectRepository) Update(ctx context.Context, p *domain.Project) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE projects
		SET name = $1, description = $2, status = $3, start_date = $4, due_date = $5,
			budget = $6, notes = $7, updated_at = $8
		WHERE id = $9`,
		p.Name, p.Description, string(p.Status), p.StartDate, p.DueDate,
		p.Budget, p.Notes, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return requireRow(tag)
}

// Delete removes the project. Tasks and edges go with it through ON DELETE CASCADE.
func (r *projectRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, "DELETE FROM projects WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return requireRow(tag)
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	var status string
	if err := row.Scan(&p.ID, &p.FamilyID, &p.Name, &p.Description, &status,
		&p.StartDate, &p.DueDate, &p.Budget, &p.Notes,
		&p.CreatedByID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Status = domain.ProjectStatus(status)
	return &p, nil
}
